package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/vigil-lab/argus/pkg/domain/types"
)

// ActionID is a UUID-based identifier for Action
type ActionID string

// NewActionID generates a new UUID v4 ActionID
func NewActionID() ActionID {
	return ActionID(uuid.New().String())
}

// Action represents a proposed unit of AI-suggested work awaiting human
// disposition. The engine is the only writer of Status; Details may only be
// mutated while the action is still pending.
type Action struct {
	ID              ActionID
	GoalID          GoalID // Optional: goal this action advances
	Type            types.ActionType
	Priority        types.Priority
	Status          types.ActionStatus
	Details         ActionDetails
	Reasoning       string // Proposer's justification; replaced only by an explicit edit
	ExecutionResult *ExecutionResult
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ExecutionResult records the outcome of a single execution attempt.
// Present if and only if the action status is executed.
type ExecutionResult struct {
	Success    bool
	Message    string
	ExternalID string // Optional: identifier assigned by the external system
	ExecutedAt time.Time
}

// ScheduleChange is one proposed slot move within a schedule optimization
type ScheduleChange struct {
	BookingID string
	From      time.Time
	To        time.Time
}

// PaymentReminderDetails is the payload for payment_reminder actions
type PaymentReminderDetails struct {
	RecipientID string
	Amount      int64 // Minor currency units
	Currency    string
	DaysOverdue int
	Message     string
}

// LeadResponseDetails is the payload for lead_response actions
type LeadResponseDetails struct {
	LeadID  string
	Channel string // e.g. "sms", "email"
	Message string
}

// ReviewReplyDetails is the payload for review_reply actions
type ReviewReplyDetails struct {
	ReviewID string
	Rating   int
	Reply    string
}

// ScheduleOptimizationDetails is the payload for schedule_optimization actions
type ScheduleOptimizationDetails struct {
	TargetDate time.Time
	Changes    []ScheduleChange
}

// AlertDetails is the payload for alert actions
type AlertDetails struct {
	Severity string
	Title    string
	Body     string
	Channel  string // Optional: delivery channel override
}

// ActionDetails is the kind-specific payload of an action. Exactly one
// variant must be set, and it must match the action's Type. A closed switch
// in Validate selects the variant; there are no alternate free-form keys.
type ActionDetails struct {
	PaymentReminder      *PaymentReminderDetails
	LeadResponse         *LeadResponseDetails
	ReviewReply          *ReviewReplyDetails
	ScheduleOptimization *ScheduleOptimizationDetails
	Alert                *AlertDetails
}

func (d ActionDetails) variantCount() int {
	n := 0
	if d.PaymentReminder != nil {
		n++
	}
	if d.LeadResponse != nil {
		n++
	}
	if d.ReviewReply != nil {
		n++
	}
	if d.ScheduleOptimization != nil {
		n++
	}
	if d.Alert != nil {
		n++
	}
	return n
}

// Validate checks that the payload carries exactly the variant required by t
// and that the variant's required fields are present.
func (d ActionDetails) Validate(t types.ActionType) error {
	if !t.IsValid() {
		return ErrUnknownActionType
	}
	if d.variantCount() != 1 {
		return ErrDetailsVariantMismatch
	}

	switch t {
	case types.ActionTypePaymentReminder:
		p := d.PaymentReminder
		if p == nil {
			return ErrDetailsVariantMismatch
		}
		if p.RecipientID == "" || p.Amount <= 0 {
			return ErrIncompleteDetails
		}

	case types.ActionTypeLeadResponse:
		p := d.LeadResponse
		if p == nil {
			return ErrDetailsVariantMismatch
		}
		if p.LeadID == "" || p.Message == "" {
			return ErrIncompleteDetails
		}

	case types.ActionTypeReviewReply:
		p := d.ReviewReply
		if p == nil {
			return ErrDetailsVariantMismatch
		}
		if p.ReviewID == "" || p.Reply == "" {
			return ErrIncompleteDetails
		}

	case types.ActionTypeScheduleOptimization:
		p := d.ScheduleOptimization
		if p == nil {
			return ErrDetailsVariantMismatch
		}
		if p.TargetDate.IsZero() || len(p.Changes) == 0 {
			return ErrIncompleteDetails
		}

	case types.ActionTypeAlert:
		p := d.Alert
		if p == nil {
			return ErrDetailsVariantMismatch
		}
		if p.Title == "" || p.Body == "" {
			return ErrIncompleteDetails
		}
	}

	return nil
}

// Summary returns a short human-readable description of the payload,
// used in notifications and audit records.
func (d ActionDetails) Summary(t types.ActionType) string {
	switch t {
	case types.ActionTypePaymentReminder:
		if d.PaymentReminder != nil {
			return "payment reminder to " + d.PaymentReminder.RecipientID
		}
	case types.ActionTypeLeadResponse:
		if d.LeadResponse != nil {
			return "lead response to " + d.LeadResponse.LeadID
		}
	case types.ActionTypeReviewReply:
		if d.ReviewReply != nil {
			return "reply to review " + d.ReviewReply.ReviewID
		}
	case types.ActionTypeScheduleOptimization:
		if d.ScheduleOptimization != nil {
			return "schedule optimization for " + d.ScheduleOptimization.TargetDate.Format("2006-01-02")
		}
	case types.ActionTypeAlert:
		if d.Alert != nil {
			return "alert: " + d.Alert.Title
		}
	}
	return string(t)
}
