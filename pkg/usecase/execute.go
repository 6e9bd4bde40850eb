package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vigil-lab/argus/pkg/domain/interfaces"
	"github.com/vigil-lab/argus/pkg/domain/model"
	"github.com/vigil-lab/argus/pkg/domain/types"
	"github.com/vigil-lab/argus/pkg/utils/logging"
)

// ExecUseCase dispatches approved actions to their registered handlers.
// The handler is invoked at most once per Execute call: a failed handler
// still moves the action to executed with Success=false, and any retry must
// go through a fresh proposal.
type ExecUseCase struct {
	repo      interfaces.Repository
	registry  interfaces.HandlerRegistry
	actions   *ActionUseCase
	decisions *DecisionUseCase
	timeout   time.Duration

	// Serializes concurrent Execute calls for the same action within this
	// process. Cross-process races are resolved by MarkExecuted.
	locks *keyedMutex
}

func NewExecUseCase(repo interfaces.Repository, registry interfaces.HandlerRegistry, actions *ActionUseCase, decisions *DecisionUseCase, timeout time.Duration) *ExecUseCase {
	return &ExecUseCase{
		repo:      repo,
		registry:  registry,
		actions:   actions,
		decisions: decisions,
		timeout:   timeout,
		locks:     newKeyedMutex(),
	}
}

// Execute runs an approved action through its handler and records the
// outcome. Precondition failures (not found, wrong status, already executed,
// no handler) return errors without touching the action; a handler failure
// is not an Execute failure, it is an executed action with Success=false.
func (uc *ExecUseCase) Execute(ctx context.Context, scope string, id model.ActionID) (*model.Action, error) {
	unlock := uc.locks.Lock(string(id))
	defer unlock()

	action, err := uc.actions.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if action.Status == types.ActionStatusExecuted {
		return nil, goerr.Wrap(ErrAlreadyExecuted, "action already executed",
			goerr.V(ActionIDKey, id))
	}
	if action.Status != types.ActionStatusApproved {
		return nil, goerr.Wrap(ErrInvalidState, "only approved actions can be executed",
			goerr.V(ActionIDKey, id), goerr.V(StatusKey, action.Status))
	}

	handler, ok := uc.registry.Lookup(action.Type)
	if !ok {
		// The action stays approved; registering a handler later makes it
		// executable again.
		return nil, goerr.Wrap(ErrNoHandler, "no handler registered",
			goerr.V(ActionIDKey, id), goerr.V(ActionTypeKey, action.Type))
	}

	result := uc.invoke(ctx, scope, action, handler)

	executed, err := uc.actions.MarkExecuted(ctx, scope, id, result)
	if err != nil {
		if errors.Is(err, ErrAlreadyExecuted) {
			// Another instance won the race after our handler ran. The
			// stored result is theirs; surface the conflict.
			return nil, err
		}
		return nil, goerr.Wrap(err, "failed to record execution result",
			goerr.V(ActionIDKey, id))
	}

	if _, err := uc.decisions.Record(ctx, scope, RecordDecisionInput{
		Type:     types.DecisionTypeExecution,
		ActionID: executed.ID,
		Context: map[string]any{
			"action_type": executed.Type.String(),
			"success":     result.Success,
		},
		Decision:  "executed " + executed.Details.Summary(executed.Type),
		Reasoning: executed.Reasoning,
		Outcome:   result.Message,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to record execution decision",
			goerr.V(ActionIDKey, id))
	}

	return executed, nil
}

// invoke runs the handler under the configured timeout and normalizes its
// outcome into an ExecutionResult. Handler errors and timeouts become
// Success=false results rather than propagating.
func (uc *ExecUseCase) invoke(ctx context.Context, scope string, action *model.Action, handler interfaces.ActionHandler) model.ExecutionResult {
	hctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	hr, err := handler.Handle(hctx, scope, action.Details)
	executedAt := time.Now().UTC()

	switch {
	case err != nil:
		logging.From(ctx).Warn("action handler failed",
			"action_id", action.ID,
			"action_type", action.Type,
			"error", err)
		msg := err.Error()
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(hctx.Err(), context.DeadlineExceeded) {
			msg = "handler timed out after " + uc.timeout.String()
		}
		return model.ExecutionResult{
			Success:    false,
			Message:    msg,
			ExecutedAt: executedAt,
		}

	case hr == nil:
		return model.ExecutionResult{
			Success:    false,
			Message:    "handler returned no result",
			ExecutedAt: executedAt,
		}

	default:
		return model.ExecutionResult{
			Success:    hr.Success,
			Message:    hr.Message,
			ExternalID: hr.ExternalID,
			ExecutedAt: executedAt,
		}
	}
}
