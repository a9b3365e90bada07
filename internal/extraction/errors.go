package extraction

import (
	"errors"
	"fmt"
)

// errNoDocumentXML is returned when a ZIP archive parses but carries no
// word/document.xml entry, i.e. it is not actually a DOCX file.
var errNoDocumentXML = errors.New("no word/document.xml entry in archive")

// ParseError indicates a document could not be parsed as its declared format.
// It is scoped to one candidate; the rest of the batch proceeds.
type ParseError struct {
	Name   string
	Format string
	Cause  error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cannot parse %s as %s: %v", e.Name, e.Format, e.Cause)
	}
	return fmt.Sprintf("cannot parse %s as %s", e.Name, e.Format)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// UnsupportedFormatError indicates a declared format outside the supported set.
// Legacy binary .doc files land here: the caller must skip the document, not
// abort the batch.
type UnsupportedFormatError struct {
	Name   string
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("unsupported document format for %s: format not declared", e.Name)
	}
	return fmt.Sprintf("unsupported document format %q for %s: only pdf and docx can be processed", e.Format, e.Name)
}
