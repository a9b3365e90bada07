// Package llm - util.go provides shared utilities for remote call handling.
package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
)

const (
	maxAttempts    = 3
	initialBackoff = 500 * time.Millisecond
)

// CollapseNewlines replaces embedded newlines with spaces. Embedding quality
// degrades with raw newlines in some services.
func CollapseNewlines(text string) string {
	return strings.ReplaceAll(text, "\n", " ")
}

// isTransient reports whether an API error is worth retrying: rate limiting
// or a server-side failure. Policy and validation rejections are never
// retried.
func isTransient(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429 || apiErr.Code >= 500
	}
	return false
}

// withRetry runs call with bounded attempts and doubling delay on transient
// API failures. Non-transient errors return immediately.
func withRetry(ctx context.Context, call func() error) error {
	backoff := initialBackoff

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = call()
		if err == nil {
			return nil
		}
		if !isTransient(err) || attempt == maxAttempts {
			return err
		}

		select {
		case <-time.After(backoff):
			backoff *= 2
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
