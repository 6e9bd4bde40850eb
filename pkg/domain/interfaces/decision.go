package interfaces

import (
	"context"

	"github.com/vigil-lab/argus/pkg/domain/model"
	"github.com/vigil-lab/argus/pkg/domain/types"
)

// DecisionFilter narrows decision queries. A nil field means "any".
// FeedbackPending selects decisions whose owner feedback is still unset.
type DecisionFilter struct {
	Type            *types.DecisionType
	ActionID        *model.ActionID
	Feedback        *types.OwnerFeedback
	FeedbackPending bool
	Limit           int // Page size; implementations must not truncate silently below it
	Offset          int
}

// DecisionRepository defines the interface for Decision data access.
// The collection is append-only: besides AttachFeedback there is no update,
// and there is no delete.
type DecisionRepository interface {
	// Create stores a new decision, generating an ID if none is set
	Create(ctx context.Context, scope string, decision *model.Decision) (*model.Decision, error)

	// Get retrieves a decision by ID
	Get(ctx context.Context, scope string, id model.DecisionID) (*model.Decision, error)

	// List retrieves decisions matching filter, newest first
	List(ctx context.Context, scope string, filter DecisionFilter) ([]*model.Decision, error)

	// AttachFeedback sets owner feedback on a decision. It must fail if
	// feedback is already present; the first value is retained.
	AttachFeedback(ctx context.Context, scope string, id model.DecisionID, feedback types.OwnerFeedback) (*model.Decision, error)
}
