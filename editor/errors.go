package editor

import "errors"

// Errors returned by session and manager operations.
var (
	ErrSessionClosed     = errors.New("session closed")
	ErrReentrantDispatch = errors.New("dispatch called during dispatch")
	ErrSessionExists     = errors.New("session name already registered")
	ErrSessionNotFound   = errors.New("session not found")
)
