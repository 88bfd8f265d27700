package extractor

import "strings"

// Section locating. Every template section is bounded by its own literal
// header line and the header of whichever known section follows it; the
// following header is the exclusive upper bound.

// sectionHeaders maps section keys to the literal header text printed in the
// documents. Matching is case-insensitive on the trimmed line.
var sectionHeaders = map[string]string{
	SectionIdentity:         "Company Details",
	SectionBusiness:         "Business Details",
	SectionCertificates:     "Certificate (Issued by Registrar)",
	SectionOfficeBearers:    "Office Bearers",
	SectionShareholders:     "Shareholders",
	SectionMembers:          "Members",
	SectionAnnualReturns:    "Annual Return Filed",
	SectionFinancialSummary: "Summary of Financial Statements",
	SectionProfitStatement:  "Statement of Profit or Loss",
	SectionStatedCapital:    "Particulars of Stated Capital",
	SectionBalanceSheet:     "Balance Sheet",
	SectionCharges:          "Charges",
	SectionLiquidators:      "Liquidators",
	SectionReceivers:        "Receivers",
	SectionAdministrators:   "Administrators",
	SectionDetails:          "Winding Up / Dissolved Details",
	SectionObjections:       "Objections",
}

// sectionOrder is the order sections appear in the templates. Used to find
// the exclusive upper bound of a slice: the next known header that actually
// occurs in the document.
var sectionOrder = []string{
	SectionIdentity,
	SectionBusiness,
	SectionCertificates,
	SectionOfficeBearers,
	SectionShareholders,
	SectionMembers,
	SectionAnnualReturns,
	SectionFinancialSummary,
	SectionProfitStatement,
	SectionStatedCapital,
	SectionBalanceSheet,
	SectionCharges,
	SectionLiquidators,
	SectionReceivers,
	SectionAdministrators,
	SectionDetails,
	SectionObjections,
}

func isHeaderLine(line, header string) bool {
	return strings.EqualFold(strings.TrimSpace(line), header)
}

// headerIndex returns the line index of a section header, or -1.
func headerIndex(lines []string, section string) int {
	header := sectionHeaders[section]
	for i, line := range lines {
		if isHeaderLine(line, header) {
			return i
		}
	}
	return -1
}

// anyHeaderIndex returns the index of the first line at or after from that
// matches any known section header.
func anyHeaderIndex(lines []string, from int) int {
	for i := from; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		for _, key := range sectionOrder {
			if strings.EqualFold(trimmed, sectionHeaders[key]) {
				return i
			}
		}
	}
	return -1
}

// sliceSection returns the body lines of a section: everything between its
// header and the next known header (exclusive), with blank lines dropped.
// ok is false when the header does not occur in the document.
func sliceSection(lines []string, section string) (body []string, ok bool) {
	start := headerIndex(lines, section)
	if start < 0 {
		return nil, false
	}
	end := anyHeaderIndex(lines, start+1)
	if end < 0 {
		end = len(lines)
	}
	for _, line := range lines[start+1 : end] {
		if strings.TrimSpace(line) != "" {
			body = append(body, strings.TrimSpace(line))
		}
	}
	return body, true
}

// stripLabels removes known column-label lines from a section body. The
// templates repeat the label row on every printed page, so every occurrence
// is dropped, not just the first.
func stripLabels(body []string, labels []string) []string {
	labelSet := make(map[string]bool, len(labels))
	for _, l := range labels {
		labelSet[strings.ToUpper(l)] = true
	}
	var out []string
	for _, line := range body {
		if labelSet[strings.ToUpper(strings.TrimSpace(line))] {
			continue
		}
		out = append(out, line)
	}
	return out
}

// labelValue scans a section body for a "Label" line and returns the line
// that follows it. The templates print key/value pairs as consecutive lines.
func labelValue(body []string, label string) string {
	for i, line := range body {
		if strings.EqualFold(strings.TrimSpace(line), label) && i+1 < len(body) {
			return strings.TrimSpace(body[i+1])
		}
		// Inline "Label: value" variant.
		if rest, found := strings.CutPrefix(strings.TrimSpace(line), label+":"); found {
			return strings.TrimSpace(rest)
		}
	}
	return ""
}
