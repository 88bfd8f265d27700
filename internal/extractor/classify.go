package extractor

import (
	"regexp"
	"strconv"
	"strings"
)

// Shape predicates for classifying raw document lines into field candidates.
// These mirror the token shapes observed in the registry's PDF templates; a
// line matching none of the expected shapes for its section is simply left in
// the free-text pool.

var (
	dateRe   = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	brnRe    = regexp.MustCompile(`\b[A-Z]\d{8,9}\b`)
	digitRe  = regexp.MustCompile(`\d`)
	alphaRe  = regexp.MustCompile(`^[A-Za-z .&'()-]+$`)
	amountRe = regexp.MustCompile(`^-?[\d,]+(?:\.\d+)?$`)
	yearRe   = regexp.MustCompile(`^(19|20)\d{2}$`)
)

// roleVocabulary is the closed set of position titles observed in the
// dataset. Matching is exact after uppercasing and trimming.
var roleVocabulary = map[string]bool{
	"DIRECTOR":             true,
	"ALTERNATE DIRECTOR":   true,
	"SECRETARY":            true,
	"MANAGER":              true,
	"REGISTERED AGENT":     true,
	"AUTHORISED AGENT":     true,
	"MANAGEMENT COMPANY":   true,
	"LOCAL REPRESENTATIVE": true,
	"LIQUIDATOR":           true,
	"RECEIVER":             true,
	"ADMINISTRATOR":        true,
	"GERANT":               true,
	"ASSOCIE":              true,
}

// placeMarkers are substrings that identify an address line: known localities
// and road-type words seen across the jurisdiction's documents.
var placeMarkers = []string{
	"ROAD", "STREET", "AVENUE", "LANE", "MORCELLEMENT", "ROYAL",
	"PORT LOUIS", "EBENE", "QUATRE BORNES", "CUREPIPE", "VACOAS",
	"ROSE HILL", "PHOENIX", "MOKA", "FLACQ", "GRAND BAIE", "TAMARIN",
	"BEAU BASSIN", "FLOREAL", "RIVIERE", "TRIOLET", "GOODLANDS",
	"MAURITIUS", "CYBERCITY", "FLOOR", "SUITE", "TOWER", "BUILDING",
}

// IsDate reports whether a line is a bare dd/mm/yyyy date token.
func IsDate(line string) bool {
	return dateRe.MatchString(strings.TrimSpace(line))
}

// IsYear reports whether a line is a bare four-digit year.
func IsYear(line string) bool {
	return yearRe.MatchString(strings.TrimSpace(line))
}

// IsAmount reports whether a line is a numeric amount, allowing thousands
// separators and an optional decimal part.
func IsAmount(line string) bool {
	s := strings.TrimSpace(line)
	return s != "" && amountRe.MatchString(s)
}

// IsCurrency reports whether a token looks like a currency code: purely
// alphabetic, short, and uppercase. Currency tokens only count when the
// surrounding section also carries a digit token; callers enforce the
// co-occurrence.
func IsCurrency(line string) bool {
	s := strings.TrimSpace(line)
	if len(s) < 2 || len(s) > 3 {
		return false
	}
	return s == strings.ToUpper(s) && alphaRe.MatchString(s) && !digitRe.MatchString(s)
}

// IsAddress reports whether a line contains a known place-name or road-type
// substring.
func IsAddress(line string) bool {
	u := strings.ToUpper(line)
	for _, marker := range placeMarkers {
		if strings.Contains(u, marker) {
			return true
		}
	}
	return false
}

// IsPosition reports whether a line is drawn from the closed vocabulary of
// role titles.
func IsPosition(line string) bool {
	return roleVocabulary[strings.ToUpper(strings.TrimSpace(line))]
}

// IsName reports whether a line is plausible free text for a person or
// company name: non-empty, not a date, not an amount, not a bare role title.
func IsName(line string) bool {
	s := strings.TrimSpace(line)
	if s == "" || IsDate(s) || IsAmount(s) || IsPosition(s) || IsCurrency(s) {
		return false
	}
	return !IsAddress(s)
}

// HasBRN reports whether any line carries a business-registration-number
// pattern. Presence distinguishes a société commerciale from a société
// civile within the Domestic/Civil nature.
func HasBRN(lines []string) bool {
	for _, line := range lines {
		if brnRe.MatchString(line) {
			return true
		}
	}
	return false
}

// FindBRN returns the first business registration number in the lines.
func FindBRN(lines []string) string {
	for _, line := range lines {
		if m := brnRe.FindString(line); m != "" {
			return m
		}
	}
	return ""
}

// ParseAmount derives a numeric value from an amount token by stripping
// thousands separators and any other non-digit characters. The decimal part,
// when present, is dropped: the registry prints whole currency units.
func ParseAmount(line string) int64 {
	s := strings.TrimSpace(line)
	neg := strings.HasPrefix(s, "-") || (strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")"))
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	if neg {
		return -n
	}
	return n
}

// SplitFileNumber separates a registry file number into its digit-only
// company number and letter-only company type code. "C123456 PVT" yields
// ("123456", "CPVT").
func SplitFileNumber(fileNumber string) (number, typeCode string) {
	var digits, letters strings.Builder
	for _, r := range fileNumber {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z'):
			letters.WriteRune(r)
		}
	}
	return digits.String(), strings.ToUpper(letters.String())
}
