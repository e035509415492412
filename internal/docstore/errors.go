package docstore

import "errors"

var (
	// ErrNotFound indicates the requested document does not exist.
	// An expected outcome, not an infrastructure failure.
	ErrNotFound = errors.New("document not found")

	// ErrUnavailable indicates the underlying store could not serve the
	// request. Callers surface this as a server-side error.
	ErrUnavailable = errors.New("document store unavailable")
)
