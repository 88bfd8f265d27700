package extractor

import "strings"

// Tabular section builders. Each applies the generic schema machinery and
// maps positional rows onto typed entries.

var chargeKinds = map[string]bool{
	"FIXED":              true,
	"FLOATING":           true,
	"FIXED AND FLOATING": true,
	"PLEDGE":             true,
}

func isChargeKind(line string) bool {
	return chargeKinds[strings.ToUpper(strings.TrimSpace(line))]
}

// shareClasses is the closed set of share-class designations printed in the
// shareholder column. The templates sometimes append "SHARES" to the class.
var shareClasses = map[string]bool{
	"ORDINARY":              true,
	"ORDINARY A":            true,
	"ORDINARY B":            true,
	"PREFERENCE":            true,
	"REDEEMABLE PREFERENCE": true,
	"MANAGEMENT":            true,
	"FOUNDER":               true,
}

func isShareClass(line string) bool {
	s := strings.ToUpper(strings.TrimSpace(line))
	return shareClasses[strings.TrimSuffix(s, " SHARES")]
}

// lifecycleEvents is the closed set of event designations printed in the
// winding up / dissolution section.
var lifecycleEvents = map[string]bool{
	"WOUND UP":        true,
	"WINDING UP":      true,
	"IN LIQUIDATION":  true,
	"IN RECEIVERSHIP": true,
	"DISSOLVED":       true,
	"STRUCK OFF":      true,
	"REMOVED":         true,
	"DEFUNCT":         true,
	"AMALGAMATED":     true,
	"CONVERTED":       true,
	"RESTORED":        true,
}

func isLifecycleEvent(line string) bool {
	return lifecycleEvents[strings.ToUpper(strings.TrimSpace(line))]
}

// objectionReasons is the closed set of reason designations printed in the
// objections section.
var objectionReasons = map[string]bool{
	"NAME SIMILARITY":    true,
	"PENDING LITIGATION": true,
	"OUTSTANDING DEBTS":  true,
	"UNPAID FEES":        true,
	"REGULATORY INQUIRY": true,
}

func isObjectionReason(line string) bool {
	return objectionReasons[strings.ToUpper(strings.TrimSpace(line))]
}

// attachColumn distributes an optional per-section column over n rows: one
// value per row when the counts line up, a single value broadcast to every
// row, and empty values otherwise. Mirrors how sectionCurrency attaches one
// currency token to a whole section.
func attachColumn(n int, values []string) []string {
	out := make([]string, n)
	switch {
	case len(values) == n:
		copy(out, values)
	case len(values) == 1:
		for i := range out {
			out[i] = values[0]
		}
	}
	return out
}

func extractCertificates(lines []string) []Certificate {
	rows, _ := extractTable(lines, TableSchema{
		Section: SectionCertificates,
		Labels:  []string{"Certificate Name", "Date Issued"},
		Fields: []Field{
			{Name: "name", Match: IsName},
			{Name: "issued", Match: IsDate},
		},
	})
	out := make([]Certificate, 0, len(rows))
	for _, r := range rows {
		out = append(out, Certificate{Name: r[0], Issued: r[1]})
	}
	return out
}

func extractOfficeBearers(lines []string) []OfficeBearer {
	rows, _ := extractTable(lines, TableSchema{
		Section: SectionOfficeBearers,
		Labels:  []string{"Position", "Name", "Address", "Date Appointed"},
		Fields: []Field{
			{Name: "position", Match: IsPosition},
			{Name: "name", Match: IsName},
			{Name: "address", Match: IsAddress},
			{Name: "appointed", Match: IsDate},
		},
	})
	out := make([]OfficeBearer, 0, len(rows))
	for _, r := range rows {
		out = append(out, OfficeBearer{Position: r[0], Name: r[1], Address: r[2], Appointed: r[3]})
	}
	return out
}

func extractShareholders(lines []string) []Shareholder {
	body, ok := sliceSection(lines, SectionShareholders)
	if !ok {
		return []Shareholder{}
	}
	body = stripLabels(body, []string{"Name", "Address", "No. of Shares", "Currency", "Share Class"})
	currency := sectionCurrency(body)

	// Class lines come out of the body before classification: a bare class
	// designation would otherwise be claimed as a name.
	var classes, rest []string
	for _, line := range body {
		if isShareClass(line) {
			classes = append(classes, strings.ToUpper(strings.TrimSpace(line)))
			continue
		}
		rest = append(rest, line)
	}

	fields := []Field{
		{Name: "name", Match: IsName},
		{Name: "address", Match: IsAddress},
		{Name: "shares", Match: IsAmount},
	}
	rows := zipRows(collectCandidates(rest, fields), fields)
	class := attachColumn(len(rows), classes)
	out := make([]Shareholder, 0, len(rows))
	for i, r := range rows {
		out = append(out, Shareholder{
			Name:     r[0],
			Address:  r[1],
			Shares:   ParseAmount(r[2]),
			Currency: currency,
			Class:    class[i],
		})
	}
	return out
}

func extractMembers(lines []string) []Member {
	rows, _ := extractTable(lines, TableSchema{
		Section: SectionMembers,
		Labels:  []string{"Name", "Address", "Date Joined"},
		Fields: []Field{
			{Name: "name", Match: IsName},
			{Name: "address", Match: IsAddress},
			{Name: "joined", Match: IsDate},
		},
	})
	out := make([]Member, 0, len(rows))
	for _, r := range rows {
		out = append(out, Member{Name: r[0], Address: r[1], Joined: r[2]})
	}
	return out
}

func extractAnnualReturns(lines []string) []AnnualReturn {
	rows, _ := extractTable(lines, TableSchema{
		Section: SectionAnnualReturns,
		Labels:  []string{"Year", "Date Filed"},
		Fields: []Field{
			{Name: "year", Match: IsYear},
			{Name: "filed", Match: IsDate},
		},
	})
	out := make([]AnnualReturn, 0, len(rows))
	for _, r := range rows {
		out = append(out, AnnualReturn{Year: int(ParseAmount(r[0])), Filed: r[1]})
	}
	return out
}

// extractFinancials pairs the section's date tokens: the templates print the
// period start and end as consecutive date lines per filed statement.
func extractFinancials(lines []string) []FinancialSummary {
	body, ok := sliceSection(lines, SectionFinancialSummary)
	if !ok {
		return []FinancialSummary{}
	}
	body = stripLabels(body, []string{"Period From", "Period To", "Currency"})
	currency := sectionCurrency(body)
	var dates []string
	for _, line := range body {
		if IsDate(line) {
			dates = append(dates, line)
		}
	}
	out := make([]FinancialSummary, 0, len(dates)/2)
	for i := 0; i+1 < len(dates); i += 2 {
		out = append(out, FinancialSummary{
			PeriodFrom: dates[i],
			PeriodTo:   dates[i+1],
			Currency:   currency,
		})
	}
	return out
}

// extractStatedCapital pairs the section's amount tokens: shares issued
// followed by the capital amount, one pair per share class line.
func extractStatedCapital(lines []string) []StatedCapitalEntry {
	body, ok := sliceSection(lines, SectionStatedCapital)
	if !ok {
		return []StatedCapitalEntry{}
	}
	body = stripLabels(body, []string{"Share Class", "Currency", "No. of Shares", "Stated Capital"})
	currency := sectionCurrency(body)
	var classes []string
	var amounts []string
	for _, line := range body {
		switch {
		case IsAmount(line):
			amounts = append(amounts, line)
		case IsCurrency(line):
			// claimed by sectionCurrency
		case IsName(line):
			classes = append(classes, line)
		}
	}
	n := len(amounts) / 2
	if len(classes) < n {
		n = len(classes)
	}
	out := make([]StatedCapitalEntry, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, StatedCapitalEntry{
			Class:        classes[i],
			Currency:     currency,
			SharesIssued: ParseAmount(amounts[2*i]),
			Amount:       ParseAmount(amounts[2*i+1]),
		})
	}
	return out
}

func extractCharges(lines []string) []Charge {
	body, ok := sliceSection(lines, SectionCharges)
	if !ok {
		return []Charge{}
	}
	body = stripLabels(body, []string{"Charge Holder", "Type", "Amount Secured", "Currency", "Date Created"})
	currency := sectionCurrency(body)
	fields := []Field{
		{Name: "kind", Match: isChargeKind},
		{Name: "holder", Match: IsName},
		{Name: "amount", Match: IsAmount},
		{Name: "created", Match: IsDate},
	}
	rows := zipRows(collectCandidates(body, fields), fields)
	out := make([]Charge, 0, len(rows))
	for _, r := range rows {
		out = append(out, Charge{
			Kind:     r[0],
			Holder:   r[1],
			Amount:   ParseAmount(r[2]),
			Currency: currency,
			Created:  r[3],
		})
	}
	return out
}

func extractAppointees(lines []string, section string) []Appointee {
	rows, _ := extractTable(lines, TableSchema{
		Section: section,
		Labels:  []string{"Name", "Address", "Date Appointed"},
		Fields: []Field{
			{Name: "name", Match: IsName},
			{Name: "address", Match: IsAddress},
			{Name: "appointed", Match: IsDate},
		},
	})
	out := make([]Appointee, 0, len(rows))
	for _, r := range rows {
		out = append(out, Appointee{Name: r[0], Address: r[1], Appointed: r[2]})
	}
	return out
}

// extractDetails reads lifecycle events with their dates. Free-text lines in
// the section body that are not a known event designation are the registrar's
// remarks, attached per row.
func extractDetails(lines []string) []LifecycleDetail {
	body, ok := sliceSection(lines, SectionDetails)
	if !ok {
		return []LifecycleDetail{}
	}
	body = stripLabels(body, []string{"Event", "Date", "Remarks"})

	var notes, rest []string
	for _, line := range body {
		if IsName(line) && !isLifecycleEvent(line) {
			notes = append(notes, strings.TrimSpace(line))
			continue
		}
		rest = append(rest, line)
	}

	fields := []Field{
		{Name: "event", Match: isLifecycleEvent},
		{Name: "date", Match: IsDate},
	}
	rows := zipRows(collectCandidates(rest, fields), fields)
	note := attachColumn(len(rows), notes)
	out := make([]LifecycleDetail, 0, len(rows))
	for i, r := range rows {
		out = append(out, LifecycleDetail{
			Event: strings.ToUpper(strings.TrimSpace(r[0])),
			Date:  r[1],
			Note:  note[i],
		})
	}
	return out
}

// extractObjections reads objection rows. Reason lines are drawn from a
// closed vocabulary and come out of the body first, so they are never claimed
// as the objector's name.
func extractObjections(lines []string) []Objection {
	body, ok := sliceSection(lines, SectionObjections)
	if !ok {
		return []Objection{}
	}
	body = stripLabels(body, []string{"Date Raised", "Raised By", "Reason"})

	var reasons, rest []string
	for _, line := range body {
		if isObjectionReason(line) {
			reasons = append(reasons, strings.ToUpper(strings.TrimSpace(line)))
			continue
		}
		rest = append(rest, line)
	}

	fields := []Field{
		{Name: "raised", Match: IsDate},
		{Name: "by", Match: IsName},
	}
	rows := zipRows(collectCandidates(rest, fields), fields)
	reason := attachColumn(len(rows), reasons)
	out := make([]Objection, 0, len(rows))
	for i, r := range rows {
		out = append(out, Objection{Raised: r[0], By: r[1], Reason: reason[i]})
	}
	return out
}
