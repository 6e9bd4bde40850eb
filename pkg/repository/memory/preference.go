package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vigil-lab/argus/pkg/domain/model"
	"github.com/vigil-lab/argus/pkg/domain/types"
)

type preferenceRepository struct {
	mu          sync.RWMutex
	preferences map[string]map[model.PreferenceID]*model.LearnedPreference
}

func newPreferenceRepository() *preferenceRepository {
	return &preferenceRepository{
		preferences: make(map[string]map[model.PreferenceID]*model.LearnedPreference),
	}
}

func (r *preferenceRepository) ensureScope(scope string) {
	if _, exists := r.preferences[scope]; !exists {
		r.preferences[scope] = make(map[model.PreferenceID]*model.LearnedPreference)
	}
}

// copyPreference creates a deep copy of a preference
func copyPreference(p *model.LearnedPreference) *model.LearnedPreference {
	cp := *p
	cp.Examples = make([]string, len(p.Examples))
	copy(cp.Examples, p.Examples)
	return &cp
}

func (r *preferenceRepository) GetByKey(ctx context.Context, scope string, category types.PreferenceCategory, preference string) (*model.LearnedPreference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.preferences[scope] {
		if p.Category == category && p.Preference == preference {
			return copyPreference(p), nil
		}
	}

	return nil, goerr.Wrap(ErrNotFound, "preference not found",
		goerr.V("category", category), goerr.V("preference", preference))
}

func (r *preferenceRepository) Get(ctx context.Context, scope string, id model.PreferenceID) (*model.LearnedPreference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ws, exists := r.preferences[scope]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "preference not found", goerr.V("id", id))
	}

	p, exists := ws[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "preference not found", goerr.V("id", id))
	}

	return copyPreference(p), nil
}

func (r *preferenceRepository) List(ctx context.Context, scope string, category *types.PreferenceCategory) ([]*model.LearnedPreference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ws, exists := r.preferences[scope]
	if !exists {
		return []*model.LearnedPreference{}, nil
	}

	prefs := make([]*model.LearnedPreference, 0, len(ws))
	for _, p := range ws {
		if category != nil && p.Category != *category {
			continue
		}
		prefs = append(prefs, copyPreference(p))
	}

	// Highest confidence first for stable consumer reads
	sort.Slice(prefs, func(i, j int) bool {
		if prefs[i].Confidence != prefs[j].Confidence {
			return prefs[i].Confidence > prefs[j].Confidence
		}
		return prefs[i].Preference < prefs[j].Preference
	})

	return prefs, nil
}

func (r *preferenceRepository) Put(ctx context.Context, scope string, pref *model.LearnedPreference) (*model.LearnedPreference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ensureScope(scope)

	now := time.Now().UTC()
	stored := copyPreference(pref)
	if stored.ID == "" {
		stored.ID = model.NewPreferenceID()
	}
	if existing, ok := r.preferences[scope][stored.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	r.preferences[scope][stored.ID] = stored
	return copyPreference(stored), nil
}

func (r *preferenceRepository) Delete(ctx context.Context, scope string, id model.PreferenceID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ws, exists := r.preferences[scope]
	if !exists {
		return goerr.Wrap(ErrNotFound, "preference not found", goerr.V("id", id))
	}

	if _, exists := ws[id]; !exists {
		return goerr.Wrap(ErrNotFound, "preference not found", goerr.V("id", id))
	}

	delete(ws, id)
	return nil
}
