package extraction

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF concatenates per-page text in page order. Pages that yield no
// extractable text contribute an empty string rather than an error; the whole
// document fails only when the bytes cannot be opened as a PDF at all.
// The reader operates on the full byte slice, so no prior stream position can
// leak in.
func extractPDF(name string, data []byte) (text string, err error) {
	// The pdf library panics on some malformed cross-reference tables;
	// convert that to a per-document ParseError instead of killing the batch.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ParseError{Name: name, Format: "pdf", Cause: fmt.Errorf("%v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ParseError{Name: name, Format: "pdf", Cause: err}
	}

	var sb strings.Builder
	total := reader.NumPage()
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			// Unreadable page: empty contribution, keep going.
			continue
		}
		sb.WriteString(pageText)
	}

	return sb.String(), nil
}
