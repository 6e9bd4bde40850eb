package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vigil-lab/argus/pkg/domain/interfaces"
	"github.com/vigil-lab/argus/pkg/domain/model"
	"github.com/vigil-lab/argus/pkg/domain/types"
	"golang.org/x/sync/errgroup"
)

// bulkExecuteConcurrency caps parallel handler invocations in a bulk run
const bulkExecuteConcurrency = 4

// BulkUseCase applies an operation to a list of actions with
// partial-failure semantics: each action is attempted independently, the
// whole call never aborts, and the result reports per-action outcomes in
// input order.
type BulkUseCase struct {
	repo    interfaces.Repository
	actions *ActionUseCase
	exec    *ExecUseCase
}

func NewBulkUseCase(repo interfaces.Repository, actions *ActionUseCase, exec *ExecUseCase) *BulkUseCase {
	return &BulkUseCase{
		repo:    repo,
		actions: actions,
		exec:    exec,
	}
}

// BulkItemResult is the outcome for one action in a bulk call
type BulkItemResult struct {
	ActionID model.ActionID
	Action   *model.Action // Set on success
	Err      error         // Set on failure
}

// BulkResult aggregates per-action outcomes of one bulk call
type BulkResult struct {
	Results []BulkItemResult
}

// Succeeded returns the number of actions the operation succeeded for
func (r *BulkResult) Succeeded() int {
	n := 0
	for _, item := range r.Results {
		if item.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of actions the operation failed for
func (r *BulkResult) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// Approve approves each listed action independently. Actions that cannot be
// approved (missing, already decided) fail individually without affecting
// the rest.
func (uc *BulkUseCase) Approve(ctx context.Context, scope string, ids []model.ActionID) (*BulkResult, error) {
	if len(ids) == 0 {
		return nil, goerr.Wrap(ErrInvalidProposal, "empty action ID list")
	}

	result := &BulkResult{Results: make([]BulkItemResult, len(ids))}
	for i, id := range ids {
		action, err := uc.actions.Approve(ctx, scope, id)
		result.Results[i] = BulkItemResult{ActionID: id, Action: action, Err: err}
	}

	return result, nil
}

// Reject rejects each listed action independently
func (uc *BulkUseCase) Reject(ctx context.Context, scope string, ids []model.ActionID) (*BulkResult, error) {
	if len(ids) == 0 {
		return nil, goerr.Wrap(ErrInvalidProposal, "empty action ID list")
	}

	result := &BulkResult{Results: make([]BulkItemResult, len(ids))}
	for i, id := range ids {
		action, err := uc.actions.Reject(ctx, scope, id)
		result.Results[i] = BulkItemResult{ActionID: id, Action: action, Err: err}
	}

	return result, nil
}

// Execute dispatches every currently approved action in the scope with
// bounded concurrency. The candidate set is re-derived at call time rather
// than supplied by the caller, so actions decided between listing in a UI
// and pressing "execute all" are picked up or skipped based on their state
// now. An empty candidate set is a valid no-op.
func (uc *BulkUseCase) Execute(ctx context.Context, scope string) (*BulkResult, error) {
	approved, err := uc.repo.Action().List(ctx, scope, interfaces.WithActionStatus(types.ActionStatusApproved))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list approved actions", goerr.V(ScopeKey, scope))
	}

	result := &BulkResult{Results: make([]BulkItemResult, len(approved))}

	var eg errgroup.Group
	eg.SetLimit(bulkExecuteConcurrency)
	for i, candidate := range approved {
		id := candidate.ID
		eg.Go(func() error {
			action, err := uc.exec.Execute(ctx, scope, id)
			result.Results[i] = BulkItemResult{ActionID: id, Action: action, Err: err}
			return nil
		})
	}
	// Workers never return errors; per-action failures live in the results
	_ = eg.Wait()

	return result, nil
}
