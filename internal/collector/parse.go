package collector

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kavish/registry-harvester/internal/db"
)

var countRe = regexp.MustCompile(`\d[\d,]*`)

// parseResultCount extracts the integer from the portal's count element,
// which reads like "152 records found".
func parseResultCount(text string) (int, error) {
	m := countRe.FindString(text)
	if m == "" {
		return 0, fmt.Errorf("no digits in %q", text)
	}
	return strconv.Atoi(strings.ReplaceAll(m, ",", ""))
}

// parseResultRows parses one page of the results grid. Column order is fixed
// by the portal: name, file number, category, incorporation date, nature,
// status. Header rows and short rows are skipped.
func parseResultRows(html string) ([]db.CompanySummary, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse results page: %w", err)
	}

	var rows []db.CompanySummary
	doc.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() < 6 {
			return
		}
		cell := func(i int) string {
			return strings.TrimSpace(cells.Eq(i).Text())
		}
		name := cell(0)
		if name == "" {
			return
		}
		rows = append(rows, db.CompanySummary{
			Name:         name,
			FileNumber:   cell(1),
			Category:     cell(2),
			Incorporated: cell(3),
			Nature:       cell(4),
			Status:       cell(5),
		})
	})
	return rows, nil
}
