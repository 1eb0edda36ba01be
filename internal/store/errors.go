package store

import "errors"

// Sentinel errors for the persistence layer. Callers match with errors.Is
// and surface a single generic message to the client.
var (
	// ErrStorageUnavailable means the backing store could not be opened at
	// all. Fatal for the session; later reads and writes will keep failing.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrReadFailed marks a transient failure of a single read operation.
	ErrReadFailed = errors.New("storage read failed")

	// ErrWriteFailed marks a transient failure of a single mutation.
	ErrWriteFailed = errors.New("storage write failed")
)
