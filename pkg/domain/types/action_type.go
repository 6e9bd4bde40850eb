package types

import "fmt"

// ActionType represents the kind of work an action proposes. The set is
// closed: new kinds are added as new constants, never as free-form strings.
type ActionType string

const (
	ActionTypePaymentReminder      ActionType = "payment_reminder"
	ActionTypeLeadResponse         ActionType = "lead_response"
	ActionTypeReviewReply          ActionType = "review_reply"
	ActionTypeScheduleOptimization ActionType = "schedule_optimization"
	ActionTypeAlert                ActionType = "alert"
)

// AllActionTypes returns all valid action types
func AllActionTypes() []ActionType {
	return []ActionType{
		ActionTypePaymentReminder,
		ActionTypeLeadResponse,
		ActionTypeReviewReply,
		ActionTypeScheduleOptimization,
		ActionTypeAlert,
	}
}

// IsValid checks if the action type is valid
func (t ActionType) IsValid() bool {
	switch t {
	case ActionTypePaymentReminder,
		ActionTypeLeadResponse,
		ActionTypeReviewReply,
		ActionTypeScheduleOptimization,
		ActionTypeAlert:
		return true
	default:
		return false
	}
}

// String returns the string representation of the action type
func (t ActionType) String() string {
	return string(t)
}

// ParseActionType parses a string into an ActionType
func ParseActionType(s string) (ActionType, error) {
	t := ActionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid action type: %s", s)
	}
	return t, nil
}
