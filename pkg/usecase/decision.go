package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vigil-lab/argus/pkg/domain/interfaces"
	"github.com/vigil-lab/argus/pkg/domain/model"
	"github.com/vigil-lab/argus/pkg/domain/types"
)

// DecisionUseCase maintains the append-only audit trail. Records are never
// updated or deleted after creation; the single exception is attaching owner
// feedback, which happens exactly once per decision.
type DecisionUseCase struct {
	repo interfaces.Repository
}

func NewDecisionUseCase(repo interfaces.Repository) *DecisionUseCase {
	return &DecisionUseCase{repo: repo}
}

// RecordDecisionInput describes the decision event to be appended
type RecordDecisionInput struct {
	Type      types.DecisionType
	ActionID  model.ActionID
	Context   map[string]any
	Decision  string
	Reasoning string
	Outcome   string
}

// Record appends a new decision to the audit trail
func (uc *DecisionUseCase) Record(ctx context.Context, scope string, input RecordDecisionInput) (*model.Decision, error) {
	if !input.Type.IsValid() {
		return nil, goerr.Wrap(ErrInvalidProposal, "unknown decision type",
			goerr.V("decision_type", input.Type))
	}

	decision := &model.Decision{
		Type:      input.Type,
		ActionID:  input.ActionID,
		Context:   input.Context,
		Decision:  input.Decision,
		Reasoning: input.Reasoning,
		Outcome:   input.Outcome,
	}

	created, err := uc.repo.Decision().Create(ctx, scope, decision)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to record decision", goerr.V(ScopeKey, scope))
	}

	return created, nil
}

// Get retrieves a decision by ID
func (uc *DecisionUseCase) Get(ctx context.Context, scope string, id model.DecisionID) (*model.Decision, error) {
	decision, err := uc.repo.Decision().Get(ctx, scope, id)
	if err != nil {
		return nil, goerr.Wrap(ErrDecisionNotFound, "decision not found", goerr.V(DecisionIDKey, id))
	}

	return decision, nil
}

// List retrieves decisions matching the filter, newest first
func (uc *DecisionUseCase) List(ctx context.Context, scope string, filter interfaces.DecisionFilter) ([]*model.Decision, error) {
	decisions, err := uc.repo.Decision().List(ctx, scope, filter)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list decisions", goerr.V(ScopeKey, scope))
	}

	return decisions, nil
}

// AttachFeedback sets owner feedback on a decision. The first feedback wins:
// any later attempt fails with ErrImmutableFeedback and the stored value is
// retained unchanged.
func (uc *DecisionUseCase) AttachFeedback(ctx context.Context, scope string, id model.DecisionID, feedback types.OwnerFeedback) (*model.Decision, error) {
	if !feedback.IsValid() {
		return nil, goerr.Wrap(ErrInvalidFeedback, "unknown feedback value",
			goerr.V("feedback", feedback))
	}

	updated, err := uc.repo.Decision().AttachFeedback(ctx, scope, id, feedback)
	switch {
	case err == nil:
	case errors.Is(err, interfaces.ErrFeedbackAlreadySet):
		return nil, goerr.Wrap(ErrImmutableFeedback, "feedback already recorded",
			goerr.V(DecisionIDKey, id))
	case errors.Is(err, interfaces.ErrRecordNotFound):
		return nil, goerr.Wrap(ErrDecisionNotFound, "decision not found",
			goerr.V(DecisionIDKey, id))
	default:
		return nil, goerr.Wrap(err, "failed to attach feedback",
			goerr.V(DecisionIDKey, id))
	}

	return updated, nil
}
