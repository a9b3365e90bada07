package extraction

import (
	"archive/zip"
	"bytes"
	"io"
	"regexp"
	"strings"
)

var docxTagPattern = regexp.MustCompile(`<[^>]+>`)

// extractDOCX pulls paragraph text out of a DOCX archive in document order,
// one paragraph per line. A DOCX file is a ZIP container whose main content
// lives in word/document.xml; paragraph boundaries are </w:p> elements.
func extractDOCX(name string, data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ParseError{Name: name, Format: "docx", Cause: err}
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, openErr := f.Open()
			if openErr != nil {
				return "", &ParseError{Name: name, Format: "docx", Cause: openErr}
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", &ParseError{Name: name, Format: "docx", Cause: err}
			}
			break
		}
	}
	if len(docXML) == 0 {
		return "", &ParseError{Name: name, Format: "docx", Cause: errNoDocumentXML}
	}

	xml := string(docXML)
	// Paragraph ends become newlines, explicit tabs survive, every other tag
	// is markup noise.
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	text := docxTagPattern.ReplaceAllString(xml, "")
	text = decodeXMLEntities(text)

	return collapseSpaceRuns(text), nil
}

// decodeXMLEntities replaces the five predefined XML entities, the only ones
// word/document.xml may contain in text runs.
func decodeXMLEntities(s string) string {
	replacer := strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
		"&amp;", "&",
	)
	return replacer.Replace(s)
}

// collapseSpaceRuns collapses runs of spaces and tabs within lines but keeps
// the per-paragraph newlines intact.
func collapseSpaceRuns(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.Join(lines, "\n")
}
