package openlibrary

import (
	"errors"
	"fmt"
)

// ErrInvalidWorkID is returned when an identifier does not match the
// OL<digits>W form. Validation failures are never suppressed.
var ErrInvalidWorkID = errors.New("invalid work id")

// StatusError reports a non-2xx response from Open Library.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("openlibrary: unexpected status %d for %s", e.StatusCode, e.URL)
}

// DecodeError reports a response body that could not be parsed as JSON.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("openlibrary: decoding response from %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// WorkFetchError wraps the fetch or decode failure behind a failed work
// resolution.
type WorkFetchError struct {
	WorkID string
	Err    error
}

func (e *WorkFetchError) Error() string {
	return fmt.Sprintf("openlibrary: fetching work %s: %v", e.WorkID, e.Err)
}

func (e *WorkFetchError) Unwrap() error { return e.Err }
