// Package extraction converts uploaded resume documents (PDF or DOCX byte
// streams) into flat text strings for the rest of the pipeline.
package extraction

import (
	"strings"

	"github.com/jmorrow/compliant-ats/internal/types"
)

// Extract converts a document's raw bytes into a flat text string according to
// its declared format. The returned text is trimmed of leading and trailing
// whitespace. A document whose bytes cannot be parsed as the declared format
// yields a *ParseError naming the candidate; a format outside the supported
// set yields an *UnsupportedFormatError. Single unreadable PDF pages do not
// fail the document, they contribute an empty string.
func Extract(doc types.Document) (string, error) {
	var text string
	var err error

	switch doc.Format {
	case types.FormatPDF:
		text, err = extractPDF(doc.Name, doc.Data)
	case types.FormatDOCX:
		text, err = extractDOCX(doc.Name, doc.Data)
	default:
		return "", &UnsupportedFormatError{Name: doc.Name, Format: string(doc.Format)}
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(text), nil
}
