package types

import "fmt"

// OwnerFeedback represents the owner's disposition of a recorded decision.
// Once set on a decision it is terminal and never overwritten.
type OwnerFeedback string

const (
	OwnerFeedbackApproved OwnerFeedback = "approved"
	OwnerFeedbackRejected OwnerFeedback = "rejected"
	OwnerFeedbackModified OwnerFeedback = "modified"
)

// AllOwnerFeedbacks returns all valid owner feedback values
func AllOwnerFeedbacks() []OwnerFeedback {
	return []OwnerFeedback{
		OwnerFeedbackApproved,
		OwnerFeedbackRejected,
		OwnerFeedbackModified,
	}
}

// IsValid checks if the owner feedback value is valid
func (f OwnerFeedback) IsValid() bool {
	switch f {
	case OwnerFeedbackApproved, OwnerFeedbackRejected, OwnerFeedbackModified:
		return true
	default:
		return false
	}
}

// String returns the string representation of the owner feedback
func (f OwnerFeedback) String() string {
	return string(f)
}

// ParseOwnerFeedback parses a string into an OwnerFeedback
func ParseOwnerFeedback(s string) (OwnerFeedback, error) {
	f := OwnerFeedback(s)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid owner feedback: %s", s)
	}
	return f, nil
}

// ReinforceDirection tells the preference learner whether an observation
// supports or contradicts a preference statement.
type ReinforceDirection string

const (
	ReinforceAffirm     ReinforceDirection = "affirm"
	ReinforceContradict ReinforceDirection = "contradict"
)

// IsValid checks if the reinforce direction is valid
func (d ReinforceDirection) IsValid() bool {
	return d == ReinforceAffirm || d == ReinforceContradict
}

// String returns the string representation of the reinforce direction
func (d ReinforceDirection) String() string {
	return string(d)
}
