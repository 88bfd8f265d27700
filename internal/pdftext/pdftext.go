// Package pdftext materializes stored registry documents to a scratch
// directory and extracts their text as ordered lines for section parsing.
package pdftext

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// CorruptFileError reports a document that cannot be parsed as a PDF. The
// owning company is invalidated and the file deleted when this surfaces.
type CorruptFileError struct {
	Path  string
	Cause error
}

func (e *CorruptFileError) Error() string {
	return fmt.Sprintf("corrupt pdf %s: %v", e.Path, e.Cause)
}

func (e *CorruptFileError) Unwrap() error {
	return e.Cause
}

// ExtractLines reads a PDF and returns its text as one string per visual
// row, page by page. Malformed files yield *CorruptFileError.
func ExtractLines(path string) (lines []string, err error) {
	// The pdf library panics on malformed cross-reference tables instead of
	// returning an error, so corruption is caught here.
	defer func() {
		if r := recover(); r != nil {
			lines = nil
			err = &CorruptFileError{Path: path, Cause: fmt.Errorf("%v", r)}
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, &CorruptFileError{Path: path, Cause: err}
	}
	defer func() { _ = f.Close() }()

	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, &CorruptFileError{Path: path, Cause: err}
		}
		for _, row := range rows {
			var sb strings.Builder
			for _, word := range row.Content {
				if sb.Len() > 0 {
					sb.WriteString(" ")
				}
				sb.WriteString(word.S)
			}
			line := strings.TrimSpace(sb.String())
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines, nil
}
