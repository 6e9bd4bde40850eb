package interfaces

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors every Repository backend must surface, so callers can
// discriminate them with errors.Is without knowing which backend is wired.
var (
	// ErrRecordNotFound is returned when a record does not exist
	ErrRecordNotFound = goerr.New("record not found")

	// ErrFeedbackAlreadySet is returned when owner feedback is attached to
	// a decision that already has feedback
	ErrFeedbackAlreadySet = goerr.New("owner feedback already set")
)
