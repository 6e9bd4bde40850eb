package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/vigil-lab/argus/pkg/domain/types"
)

// DecisionID is a UUID-based identifier for Decision
type DecisionID string

// NewDecisionID generates a new UUID v4 DecisionID
func NewDecisionID() DecisionID {
	return DecisionID(uuid.New().String())
}

// Decision is an immutable audit record of a consequential choice.
// Decision, Reasoning and Context are never updated after creation; the only
// permitted mutation is attaching owner feedback exactly once.
type Decision struct {
	ID            DecisionID
	Type          types.DecisionType
	ActionID      ActionID // Optional: action this decision concerns
	Context       map[string]any
	Decision      string
	Reasoning     string
	Outcome       string // Optional: filled in after the fact
	OwnerFeedback types.OwnerFeedback
	CreatedAt     time.Time
}

// HasFeedback reports whether owner feedback has been attached
func (d *Decision) HasFeedback() bool {
	return d.OwnerFeedback != ""
}
