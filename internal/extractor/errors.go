package extractor

import "fmt"

// UnsupportedShapeError marks a document section shape that was never
// observed in the source templates. The pipeline treats it as fatal by
// design: aborting loudly is preferred over guessing a schema and silently
// dropping data. The coordinator maps this error to a process exit.
type UnsupportedShapeError struct {
	Category Category
	Nature   Nature
	Section  string
	Detail   string
}

func (e *UnsupportedShapeError) Error() string {
	if e.Nature != "" {
		return fmt.Sprintf("unsupported document shape: section %q for %s/%s: %s",
			e.Section, e.Category, e.Nature, e.Detail)
	}
	return fmt.Sprintf("unsupported document shape: section %q for %s: %s",
		e.Section, e.Category, e.Detail)
}

// ParseError reports a document whose layout deviates from the recognized
// templates in a way that is rejected rather than best-effort parsed.
type ParseError struct {
	Section string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in section %q: %s", e.Section, e.Message)
}
