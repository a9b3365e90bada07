package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jmorrow/compliant-ats/internal/extraction"
	"github.com/jmorrow/compliant-ats/internal/feedback"
	"github.com/jmorrow/compliant-ats/internal/normalize"
	"github.com/jmorrow/compliant-ats/internal/pipeline"
	"github.com/jmorrow/compliant-ats/internal/ranking"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
// Malformed input is the caller's fault; upstream model failures are a
// bad gateway, not an internal error.
func HTTPStatus(err error) int {
	var (
		unsupportedErr *extraction.UnsupportedFormatError
		parseErr       *extraction.ParseError
		duplicateErr   *pipeline.DuplicateNameError
		validationErrs validator.ValidationErrors
		generationErr  *feedback.GenerationError
		normalizeErr   *normalize.Error
		embeddingErr   *ranking.EmbeddingError
	)

	switch {
	case errors.Is(err, ranking.ErrEmptyJobDescription),
		errors.As(err, &unsupportedErr),
		errors.As(err, &parseErr),
		errors.As(err, &duplicateErr),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest
	case errors.As(err, &generationErr),
		errors.As(err, &normalizeErr),
		errors.As(err, &embeddingErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
