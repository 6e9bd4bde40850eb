package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Validation errors
	ErrInvalidProposal      = errors.New("invalid action proposal")
	ErrInvalidFeedback      = errors.New("invalid owner feedback")
	ErrInvalidReinforcement = errors.New("invalid preference reinforcement")

	// State machine errors
	ErrInvalidState    = errors.New("illegal state transition")
	ErrAlreadyExecuted = errors.New("action already executed")

	// Dispatch errors
	ErrNoHandler = errors.New("no execution handler registered for action type")

	// Immutability errors
	ErrImmutableFeedback = errors.New("owner feedback is terminal and cannot be overwritten")

	// Not found errors
	ErrActionNotFound     = errors.New("action not found")
	ErrDecisionNotFound   = errors.New("decision not found")
	ErrPreferenceNotFound = errors.New("preference not found")
)

// Context keys for error values
const (
	ActionIDKey   = "action_id"
	DecisionIDKey = "decision_id"
	ScopeKey      = "scope"
	StatusKey     = "status"
	ActionTypeKey = "action_type"
)
