package model

import "github.com/m-mizutani/goerr/v2"

// Validation errors for action payloads
var (
	ErrUnknownActionType      = goerr.New("unknown action type")
	ErrDetailsVariantMismatch = goerr.New("details payload does not match action type")
	ErrIncompleteDetails      = goerr.New("required details fields are missing")
)
