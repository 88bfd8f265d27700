package extractor

// Generic table extraction. Each tabular section is described by an ordered
// field schema; classification fills one candidate list per field, and rows
// are assembled positionally up to the shortest list. When one field's
// candidate count is short (a missing optional value), surplus rows in the
// other fields are discarded, not reordered or backfilled.

// Field is one column of a tabular section, with the shape predicate that
// claims candidate lines for it.
type Field struct {
	Name  string
	Match func(string) bool
}

// TableSchema describes one tabular section: the label lines to strip and
// the ordered field list.
type TableSchema struct {
	Section string
	Labels  []string
	Fields  []Field
}

// collectCandidates classifies body lines into per-field candidate lists.
// Each line is claimed by the first field whose predicate matches it; lines
// matching no field are ignored.
func collectCandidates(body []string, fields []Field) map[string][]string {
	candidates := make(map[string][]string, len(fields))
	for _, f := range fields {
		candidates[f.Name] = []string{}
	}
	for _, line := range body {
		for _, f := range fields {
			if f.Match(line) {
				candidates[f.Name] = append(candidates[f.Name], line)
				break
			}
		}
	}
	return candidates
}

// zipRows assembles positional rows from the candidate lists, truncating to
// the shortest list. This is the central extraction invariant.
func zipRows(candidates map[string][]string, fields []Field) [][]string {
	if len(fields) == 0 {
		return nil
	}
	n := -1
	for _, f := range fields {
		if l := len(candidates[f.Name]); n < 0 || l < n {
			n = l
		}
	}
	rows := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(fields))
		for j, f := range fields {
			row[j] = candidates[f.Name][i]
		}
		rows = append(rows, row)
	}
	return rows
}

// extractTable slices a schema's section out of the document, strips labels,
// classifies and zips. found is false when the section header is absent.
func extractTable(lines []string, schema TableSchema) (rows [][]string, found bool) {
	body, ok := sliceSection(lines, schema.Section)
	if !ok {
		return nil, false
	}
	body = stripLabels(body, schema.Labels)
	return zipRows(collectCandidates(body, schema.Fields), schema.Fields), true
}
