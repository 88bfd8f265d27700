package extractor

import "strings"

// Balance sheet parsing. The section nests labelled groups under the asset
// and liability sides; each group prints item label/amount line pairs and a
// trailing "Total" line.

var assetGroupHeaders = map[string]bool{
	"NON-CURRENT ASSETS": true,
	"CURRENT ASSETS":     true,
}

var liabilityGroupHeaders = map[string]bool{
	"EQUITY":                  true,
	"NON-CURRENT LIABILITIES": true,
	"CURRENT LIABILITIES":     true,
}

func extractBalanceSheet(lines []string) *BalanceSheet {
	body, ok := sliceSection(lines, SectionBalanceSheet)
	if !ok {
		return &BalanceSheet{Assets: []AccountGroup{}, Liabilities: []AccountGroup{}}
	}

	bs := &BalanceSheet{
		Currency:    sectionCurrency(body),
		Assets:      []AccountGroup{},
		Liabilities: []AccountGroup{},
	}

	var current *AccountGroup
	var currentIsAsset bool
	var pendingLabel string

	flush := func() {
		if current == nil {
			return
		}
		if current.Items == nil {
			current.Items = []AccountItem{}
		}
		if currentIsAsset {
			bs.Assets = append(bs.Assets, *current)
		} else {
			bs.Liabilities = append(bs.Liabilities, *current)
		}
		current = nil
	}

	for _, line := range body {
		upper := strings.ToUpper(strings.TrimSpace(line))
		switch {
		case assetGroupHeaders[upper]:
			flush()
			current = &AccountGroup{Label: upper, Items: []AccountItem{}}
			currentIsAsset = true
			pendingLabel = ""
		case liabilityGroupHeaders[upper]:
			flush()
			current = &AccountGroup{Label: upper, Items: []AccountItem{}}
			currentIsAsset = false
			pendingLabel = ""
		case current == nil:
			// Preamble (currency line, column labels); nothing to attach.
		case IsAmount(line):
			amount := ParseAmount(line)
			if strings.EqualFold(pendingLabel, "Total") {
				current.Total = amount
			} else if pendingLabel != "" {
				current.Items = append(current.Items, AccountItem{Label: pendingLabel, Amount: amount})
			}
			pendingLabel = ""
		case IsCurrency(line):
			// Currency already taken at section level.
		default:
			pendingLabel = strings.TrimSpace(line)
		}
	}
	flush()
	return bs
}
