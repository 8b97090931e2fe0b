package historykey

import "errors"

var (
	// ErrInvalidSenderID is returned for sender ids outside [1, MaxSenderID].
	ErrInvalidSenderID = errors.New("sender id must be a positive integer of at most six digits")

	// ErrInvalidKey is returned when a string does not look like a history key.
	ErrInvalidKey = errors.New("invalid history key")
)
