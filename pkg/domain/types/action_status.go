package types

import "fmt"

// ActionStatus represents where an action is in its governance lifecycle
type ActionStatus string

const (
	ActionStatusPending  ActionStatus = "pending"
	ActionStatusApproved ActionStatus = "approved"
	ActionStatusRejected ActionStatus = "rejected"
	ActionStatusExecuted ActionStatus = "executed"
)

// AllActionStatuses returns all valid action statuses
func AllActionStatuses() []ActionStatus {
	return []ActionStatus{
		ActionStatusPending,
		ActionStatusApproved,
		ActionStatusRejected,
		ActionStatusExecuted,
	}
}

// IsValid checks if the action status is valid
func (s ActionStatus) IsValid() bool {
	switch s {
	case ActionStatusPending,
		ActionStatusApproved,
		ActionStatusRejected,
		ActionStatusExecuted:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is permitted from s
func (s ActionStatus) IsTerminal() bool {
	return s == ActionStatusRejected || s == ActionStatusExecuted
}

// CanTransitionTo reports whether the lifecycle permits moving from s to next.
// The graph is strict: pending → approved | rejected, approved → executed.
// Skipping a state (e.g. pending → executed) is never legal; even automated
// execution must pass through an explicit approval so every execution has a
// recorded approval event.
func (s ActionStatus) CanTransitionTo(next ActionStatus) bool {
	switch s {
	case ActionStatusPending:
		return next == ActionStatusApproved || next == ActionStatusRejected
	case ActionStatusApproved:
		return next == ActionStatusExecuted
	default:
		return false
	}
}

// String returns the string representation of the action status
func (s ActionStatus) String() string {
	return string(s)
}

// ParseActionStatus parses a string into an ActionStatus
func ParseActionStatus(s string) (ActionStatus, error) {
	status := ActionStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid action status: %s", s)
	}
	return status, nil
}
