package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vigil-lab/argus/pkg/domain/interfaces"
	"github.com/vigil-lab/argus/pkg/domain/model"
	"github.com/vigil-lab/argus/pkg/domain/types"
)

type decisionRepository struct {
	mu        sync.RWMutex
	decisions map[string]map[model.DecisionID]*model.Decision
}

func newDecisionRepository() *decisionRepository {
	return &decisionRepository{
		decisions: make(map[string]map[model.DecisionID]*model.Decision),
	}
}

func (r *decisionRepository) ensureScope(scope string) {
	if _, exists := r.decisions[scope]; !exists {
		r.decisions[scope] = make(map[model.DecisionID]*model.Decision)
	}
}

// copyDecision creates a deep copy of a decision
func copyDecision(d *model.Decision) *model.Decision {
	cp := *d
	if d.Context != nil {
		cp.Context = make(map[string]any, len(d.Context))
		for k, v := range d.Context {
			cp.Context[k] = v
		}
	}
	return &cp
}

func (r *decisionRepository) Create(ctx context.Context, scope string, decision *model.Decision) (*model.Decision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureScope(scope)

	created := copyDecision(decision)
	if created.ID == "" {
		created.ID = model.NewDecisionID()
	}
	created.CreatedAt = time.Now().UTC()

	if _, exists := r.decisions[scope][created.ID]; exists {
		return nil, goerr.New("decision already exists", goerr.V("id", created.ID))
	}

	r.decisions[scope][created.ID] = created
	return copyDecision(created), nil
}

func (r *decisionRepository) Get(ctx context.Context, scope string, id model.DecisionID) (*model.Decision, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ws, exists := r.decisions[scope]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "decision not found", goerr.V("id", id))
	}

	decision, exists := ws[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "decision not found", goerr.V("id", id))
	}

	return copyDecision(decision), nil
}

func matchDecision(d *model.Decision, f interfaces.DecisionFilter) bool {
	if f.Type != nil && d.Type != *f.Type {
		return false
	}
	if f.ActionID != nil && d.ActionID != *f.ActionID {
		return false
	}
	if f.FeedbackPending && d.HasFeedback() {
		return false
	}
	if f.Feedback != nil && d.OwnerFeedback != *f.Feedback {
		return false
	}
	return true
}

func (r *decisionRepository) List(ctx context.Context, scope string, filter interfaces.DecisionFilter) ([]*model.Decision, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ws, exists := r.decisions[scope]
	if !exists {
		return []*model.Decision{}, nil
	}

	matched := make([]*model.Decision, 0, len(ws))
	for _, decision := range ws {
		if matchDecision(decision, filter) {
			matched = append(matched, copyDecision(decision))
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []*model.Decision{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}

	return matched, nil
}

func (r *decisionRepository) AttachFeedback(ctx context.Context, scope string, id model.DecisionID, feedback types.OwnerFeedback) (*model.Decision, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws, exists := r.decisions[scope]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "decision not found", goerr.V("id", id))
	}

	decision, exists := ws[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "decision not found", goerr.V("id", id))
	}

	if decision.HasFeedback() {
		return nil, goerr.Wrap(ErrFeedbackAlreadySet, "cannot overwrite owner feedback",
			goerr.V("id", id), goerr.V("existing", decision.OwnerFeedback))
	}

	decision.OwnerFeedback = feedback
	return copyDecision(decision), nil
}
