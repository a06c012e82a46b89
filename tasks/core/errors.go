package core

import "errors"

// Tasks errors
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrTaskInvalidArgs = errors.New("task invalid args")
)

// ErrStoreUnavailable is returned when the document store was never reached
// or the connection has been lost.
var ErrStoreUnavailable = errors.New("store unavailable")
