package crawler

import (
	"errors"
	"fmt"
)

// ErrDuplicateURL is reported by DocumentStore.Save when the URL is
// already persisted. The engine treats it as success-equivalent.
var ErrDuplicateURL = errors.New("document already exists")

// ErrJobNotFound is returned for status lookups of unknown job IDs.
var ErrJobNotFound = errors.New("job not found")

// FetchError marks a network-level failure (timeout, DNS, non-2xx)
// for a single URL. It never fails the job.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NewFetchError wraps err as a per-URL fetch failure.
func NewFetchError(url string, err error) error {
	return &FetchError{URL: url, Err: err}
}

// ParseError marks an unparseable payload (malformed HTML/PDF/DOCX)
// for a single URL. Handled exactly like FetchError.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// NewParseError wraps err as a per-URL parse failure.
func NewParseError(url string, err error) error {
	return &ParseError{URL: url, Err: err}
}

// StoreUnavailableError indicates the document store is unreachable.
// Fatal for the job: the engine transitions it to FAILED and halts
// further dispatch.
type StoreUnavailableError struct {
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("document store unavailable: %v", e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// IsStoreUnavailable reports whether err wraps a StoreUnavailableError.
func IsStoreUnavailable(err error) bool {
	var sue *StoreUnavailableError
	return errors.As(err, &sue)
}
