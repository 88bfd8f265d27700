package extractor

// Key/value sections. The templates print these blocks as label lines each
// followed by a value line, with an occasional inline "Label: value" variant.

func extractIdentity(lines []string, category Category, nature Nature) (*Identity, error) {
	body, ok := sliceSection(lines, SectionIdentity)
	if !ok {
		return nil, &ParseError{Section: SectionIdentity, Message: "header not found"}
	}

	id := &Identity{
		Name:         labelValue(body, "Name"),
		FileNumber:   labelValue(body, "File No"),
		Category:     string(category),
		Nature:       string(nature),
		Status:       labelValue(body, "Status"),
		Incorporated: labelValue(body, "Date Incorporated"),
	}
	if id.Name == "" {
		return nil, &ParseError{Section: SectionIdentity, Message: "company name missing"}
	}
	id.CompanyNumber, id.CompanyType = SplitFileNumber(id.FileNumber)
	return id, nil
}

func extractBusiness(lines []string) *BusinessDetails {
	body, ok := sliceSection(lines, SectionBusiness)
	if !ok {
		return &BusinessDetails{}
	}
	return &BusinessDetails{
		BusinessName: labelValue(body, "Business Name"),
		BRN:          FindBRN(body),
		Activity:     labelValue(body, "Nature of Business"),
		Address:      labelValue(body, "Principal Place of Business"),
		Registered:   labelValue(body, "Date Registered"),
	}
}

func extractProfit(lines []string) *ProfitStatement {
	body, ok := sliceSection(lines, SectionProfitStatement)
	if !ok {
		return &ProfitStatement{}
	}
	return &ProfitStatement{
		Currency:    sectionCurrency(body),
		Turnover:    ParseAmount(labelValue(body, "Turnover")),
		GrossProfit: ParseAmount(labelValue(body, "Gross Profit")),
		NetProfit:   ParseAmount(labelValue(body, "Net Profit")),
	}
}

// sectionCurrency returns the section's currency code. A currency token only
// counts when the section also carries a digit token; an alphabetic code with
// no figures near it is label noise.
func sectionCurrency(body []string) string {
	hasDigit := false
	for _, line := range body {
		if digitRe.MatchString(line) {
			hasDigit = true
			break
		}
	}
	if !hasDigit {
		return ""
	}
	for _, line := range body {
		if IsCurrency(line) {
			return line
		}
	}
	return ""
}
