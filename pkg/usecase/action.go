package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vigil-lab/argus/pkg/domain/interfaces"
	"github.com/vigil-lab/argus/pkg/domain/model"
	"github.com/vigil-lab/argus/pkg/domain/types"
	"github.com/vigil-lab/argus/pkg/utils/async"
)

// ActionUseCase is the action store: it owns the canonical record of every
// proposed action and is the only writer of its status field.
type ActionUseCase struct {
	repo      interfaces.Repository
	decisions *DecisionUseCase
	notifier  Notifier
}

func NewActionUseCase(repo interfaces.Repository, decisions *DecisionUseCase, notifier Notifier) *ActionUseCase {
	return &ActionUseCase{
		repo:      repo,
		decisions: decisions,
		notifier:  notifier,
	}
}

// ProposeInput is what an external proposal source supplies
type ProposeInput struct {
	Type      types.ActionType
	Priority  types.Priority
	Details   model.ActionDetails
	Reasoning string
	GoalID    model.GoalID
}

// Propose creates a new pending action. Structural completeness is checked
// for the given type; business plausibility is the proposer's problem.
// A failed proposal leaves no trace.
func (uc *ActionUseCase) Propose(ctx context.Context, scope string, input ProposeInput) (*model.Action, error) {
	if !input.Type.IsValid() {
		return nil, goerr.Wrap(ErrInvalidProposal, "unknown action type",
			goerr.V(ActionTypeKey, input.Type))
	}

	priority := input.Priority
	if priority == "" {
		priority = types.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, goerr.Wrap(ErrInvalidProposal, "unknown priority",
			goerr.V("priority", input.Priority))
	}

	if err := input.Details.Validate(input.Type); err != nil {
		return nil, goerr.Wrap(ErrInvalidProposal, "invalid details payload",
			goerr.V(ActionTypeKey, input.Type), goerr.V("cause", err.Error()))
	}

	action := &model.Action{
		GoalID:    input.GoalID,
		Type:      input.Type,
		Priority:  priority,
		Status:    types.ActionStatusPending,
		Details:   input.Details,
		Reasoning: input.Reasoning,
	}

	created, err := uc.repo.Action().Create(ctx, scope, action)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create action", goerr.V(ScopeKey, scope))
	}

	if _, err := uc.decisions.Record(ctx, scope, RecordDecisionInput{
		Type:     types.DecisionTypeProposal,
		ActionID: created.ID,
		Context: map[string]any{
			"action_type": created.Type.String(),
			"priority":    created.Priority.String(),
			"summary":     created.Details.Summary(created.Type),
		},
		Decision:  "proposed " + created.Details.Summary(created.Type),
		Reasoning: created.Reasoning,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to record proposal decision",
			goerr.V(ActionIDKey, created.ID))
	}

	// Notification is best-effort and off the request path: a slow or
	// failing notifier never fails the proposal
	if uc.notifier != nil {
		async.Dispatch(ctx, func(ctx context.Context) error {
			return uc.notifier.NotifyPendingAction(ctx, scope, created)
		})
	}

	return created, nil
}

// Edit replaces the details (and optionally the reasoning) of a pending
// action. Any other status fails with ErrInvalidState and mutates nothing.
func (uc *ActionUseCase) Edit(ctx context.Context, scope string, id model.ActionID, details model.ActionDetails, reasoning *string) (*model.Action, error) {
	updated, err := uc.repo.Action().Mutate(ctx, scope, id, func(a *model.Action) (*model.Action, error) {
		if a.Status != types.ActionStatusPending {
			return nil, goerr.Wrap(ErrInvalidState, "only pending actions can be edited",
				goerr.V(ActionIDKey, id), goerr.V(StatusKey, a.Status))
		}
		if err := details.Validate(a.Type); err != nil {
			return nil, goerr.Wrap(ErrInvalidProposal, "invalid details payload",
				goerr.V(ActionIDKey, id), goerr.V("cause", err.Error()))
		}

		a.Details = details
		if reasoning != nil {
			a.Reasoning = *reasoning
		}
		return a, nil
	})
	if err != nil {
		return nil, uc.mapMutateErr(err, id)
	}

	if _, err := uc.decisions.Record(ctx, scope, RecordDecisionInput{
		Type:     types.DecisionTypeEdit,
		ActionID: updated.ID,
		Context: map[string]any{
			"summary": updated.Details.Summary(updated.Type),
		},
		Decision:  "edited " + updated.Details.Summary(updated.Type),
		Reasoning: updated.Reasoning,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to record edit decision", goerr.V(ActionIDKey, id))
	}

	return updated, nil
}

// Approve moves a pending action to approved. Even automated approval goes
// through here, so every later execution has a recorded approval event.
func (uc *ActionUseCase) Approve(ctx context.Context, scope string, id model.ActionID) (*model.Action, error) {
	return uc.transition(ctx, scope, id, types.ActionStatusApproved, types.DecisionTypeApproval)
}

// Reject moves a pending action to rejected, which is terminal.
func (uc *ActionUseCase) Reject(ctx context.Context, scope string, id model.ActionID) (*model.Action, error) {
	return uc.transition(ctx, scope, id, types.ActionStatusRejected, types.DecisionTypeRejection)
}

func (uc *ActionUseCase) transition(ctx context.Context, scope string, id model.ActionID, next types.ActionStatus, decisionType types.DecisionType) (*model.Action, error) {
	updated, err := uc.repo.Action().Mutate(ctx, scope, id, func(a *model.Action) (*model.Action, error) {
		if !a.Status.CanTransitionTo(next) {
			return nil, goerr.Wrap(ErrInvalidState, "transition not permitted",
				goerr.V(ActionIDKey, id),
				goerr.V("from", a.Status), goerr.V("to", next))
		}
		a.Status = next
		return a, nil
	})
	if err != nil {
		return nil, uc.mapMutateErr(err, id)
	}

	if _, err := uc.decisions.Record(ctx, scope, RecordDecisionInput{
		Type:     decisionType,
		ActionID: updated.ID,
		Context: map[string]any{
			"action_type": updated.Type.String(),
			"summary":     updated.Details.Summary(updated.Type),
		},
		Decision:  string(next) + " " + updated.Details.Summary(updated.Type),
		Reasoning: updated.Reasoning,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to record transition decision",
			goerr.V(ActionIDKey, id))
	}

	return updated, nil
}

// MarkExecuted records the outcome of an execution attempt and moves the
// action to executed. Executed is a historical fact about the attempt:
// result.Success may be false, and any retry is a brand-new proposal.
func (uc *ActionUseCase) MarkExecuted(ctx context.Context, scope string, id model.ActionID, result model.ExecutionResult) (*model.Action, error) {
	if result.ExecutedAt.IsZero() {
		result.ExecutedAt = time.Now().UTC()
	}

	updated, err := uc.repo.Action().Mutate(ctx, scope, id, func(a *model.Action) (*model.Action, error) {
		if a.Status == types.ActionStatusExecuted {
			return nil, goerr.Wrap(ErrAlreadyExecuted, "duplicate execution attempt",
				goerr.V(ActionIDKey, id))
		}
		if !a.Status.CanTransitionTo(types.ActionStatusExecuted) {
			return nil, goerr.Wrap(ErrInvalidState, "only approved actions can be marked executed",
				goerr.V(ActionIDKey, id), goerr.V(StatusKey, a.Status))
		}

		a.Status = types.ActionStatusExecuted
		a.ExecutionResult = &result
		return a, nil
	})
	if err != nil {
		return nil, uc.mapMutateErr(err, id)
	}

	return updated, nil
}

// Get retrieves an action by ID
func (uc *ActionUseCase) Get(ctx context.Context, scope string, id model.ActionID) (*model.Action, error) {
	action, err := uc.repo.Action().Get(ctx, scope, id)
	if err != nil {
		return nil, goerr.Wrap(ErrActionNotFound, "action not found", goerr.V(ActionIDKey, id))
	}

	return action, nil
}

// List retrieves actions matching the given filters
func (uc *ActionUseCase) List(ctx context.Context, scope string, opts ...interfaces.ListActionOption) ([]*model.Action, error) {
	actions, err := uc.repo.Action().List(ctx, scope, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list actions", goerr.V(ScopeKey, scope))
	}

	return actions, nil
}

// Summary holds aggregate action counts for dashboards
type Summary struct {
	ByStatus map[string]int
	ByType   map[string]int
}

// Summarize returns aggregate counts by status and type
func (uc *ActionUseCase) Summarize(ctx context.Context, scope string) (*Summary, error) {
	byStatus, err := uc.repo.Action().CountByStatus(ctx, scope)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to count actions by status", goerr.V(ScopeKey, scope))
	}

	byType, err := uc.repo.Action().CountByType(ctx, scope)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to count actions by type", goerr.V(ScopeKey, scope))
	}

	return &Summary{ByStatus: byStatus, ByType: byType}, nil
}

// mapMutateErr translates repository Mutate failures: guard errors carry
// their own sentinels and pass through, everything else means the action
// does not exist.
func (uc *ActionUseCase) mapMutateErr(err error, id model.ActionID) error {
	switch {
	case errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrAlreadyExecuted),
		errors.Is(err, ErrInvalidProposal):
		return err
	default:
		return goerr.Wrap(ErrActionNotFound, "action not found", goerr.V(ActionIDKey, id))
	}
}
