package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vigil-lab/argus/pkg/domain/interfaces"
	"github.com/vigil-lab/argus/pkg/domain/model"
)

type actionRepository struct {
	mu      sync.RWMutex
	actions map[string]map[model.ActionID]*model.Action
}

func newActionRepository() *actionRepository {
	return &actionRepository{
		actions: make(map[string]map[model.ActionID]*model.Action),
	}
}

func (r *actionRepository) ensureScope(scope string) {
	if _, exists := r.actions[scope]; !exists {
		r.actions[scope] = make(map[model.ActionID]*model.Action)
	}
}

// copyAction creates a deep copy of an action
func copyAction(a *model.Action) *model.Action {
	cp := *a

	if a.ExecutionResult != nil {
		result := *a.ExecutionResult
		cp.ExecutionResult = &result
	}

	cp.Details = copyDetails(a.Details)
	return &cp
}

func copyDetails(d model.ActionDetails) model.ActionDetails {
	cp := model.ActionDetails{}
	if d.PaymentReminder != nil {
		v := *d.PaymentReminder
		cp.PaymentReminder = &v
	}
	if d.LeadResponse != nil {
		v := *d.LeadResponse
		cp.LeadResponse = &v
	}
	if d.ReviewReply != nil {
		v := *d.ReviewReply
		cp.ReviewReply = &v
	}
	if d.ScheduleOptimization != nil {
		v := *d.ScheduleOptimization
		v.Changes = make([]model.ScheduleChange, len(d.ScheduleOptimization.Changes))
		copy(v.Changes, d.ScheduleOptimization.Changes)
		cp.ScheduleOptimization = &v
	}
	if d.Alert != nil {
		v := *d.Alert
		cp.Alert = &v
	}
	return cp
}

func (r *actionRepository) Create(ctx context.Context, scope string, action *model.Action) (*model.Action, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureScope(scope)

	now := time.Now().UTC()
	created := copyAction(action)
	if created.ID == "" {
		created.ID = model.NewActionID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, exists := r.actions[scope][created.ID]; exists {
		return nil, goerr.New("action already exists", goerr.V("id", created.ID))
	}

	r.actions[scope][created.ID] = created
	return copyAction(created), nil
}

func (r *actionRepository) Get(ctx context.Context, scope string, id model.ActionID) (*model.Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ws, exists := r.actions[scope]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", id))
	}

	action, exists := ws[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", id))
	}

	return copyAction(action), nil
}

func (r *actionRepository) List(ctx context.Context, scope string, opts ...interfaces.ListActionOption) ([]*model.Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg := interfaces.BuildListActionConfig(opts...)

	ws, exists := r.actions[scope]
	if !exists {
		return []*model.Action{}, nil
	}

	actions := make([]*model.Action, 0, len(ws))
	for _, action := range ws {
		if cfg.Match(action.Status, action.Type, action.CreatedAt) {
			actions = append(actions, copyAction(action))
		}
	}

	sort.Slice(actions, func(i, j int) bool {
		return actions[i].CreatedAt.After(actions[j].CreatedAt)
	})

	return actions, nil
}

func (r *actionRepository) Mutate(ctx context.Context, scope string, id model.ActionID, fn interfaces.MutateActionFunc) (*model.Action, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws, exists := r.actions[scope]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", id))
	}

	existing, exists := ws[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", id))
	}

	// fn works on a copy so an aborted mutation leaves no trace
	mutated, err := fn(copyAction(existing))
	if err != nil {
		return nil, err
	}

	updated := copyAction(mutated)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.actions[scope][id] = updated
	return copyAction(updated), nil
}

func (r *actionRepository) CountByStatus(ctx context.Context, scope string) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int)
	for _, action := range r.actions[scope] {
		counts[action.Status.String()]++
	}
	return counts, nil
}

func (r *actionRepository) CountByType(ctx context.Context, scope string) (map[string]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[string]int)
	for _, action := range r.actions[scope] {
		counts[action.Type.String()]++
	}
	return counts, nil
}
