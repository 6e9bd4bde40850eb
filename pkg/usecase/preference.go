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

// PreferenceUseCase is the confidence-weighted preference learner. Each
// observation nudges confidence by a fixed fraction of the remaining
// distance to the bound, so confidence approaches but never reaches 0 or 1.
type PreferenceUseCase struct {
	repo   interfaces.Repository
	params LearnerParams

	// Serializes the read-modify-write in Reinforce per (scope, category,
	// preference) key. Without this, concurrent first observations of the
	// same statement each miss the lookup and create duplicate records.
	locks *keyedMutex
}

func NewPreferenceUseCase(repo interfaces.Repository, params LearnerParams) *PreferenceUseCase {
	return &PreferenceUseCase{repo: repo, params: params, locks: newKeyedMutex()}
}

// ReinforceInput is one observation about a preference statement
type ReinforceInput struct {
	Category   types.PreferenceCategory
	Preference string
	Direction  types.ReinforceDirection
	Example    string // Optional: concrete evidence for this observation
}

// Reinforce applies one observation to a preference, creating the record at
// the initial confidence if this is the first observation. Affirmations move
// confidence toward 1, contradictions toward 0, both by the learning-rate
// fraction of the remaining distance.
func (uc *PreferenceUseCase) Reinforce(ctx context.Context, scope string, input ReinforceInput) (*model.LearnedPreference, error) {
	if !input.Category.IsValid() {
		return nil, goerr.Wrap(ErrInvalidReinforcement, "unknown preference category",
			goerr.V("category", input.Category))
	}
	if input.Preference == "" {
		return nil, goerr.Wrap(ErrInvalidReinforcement, "empty preference statement")
	}
	if !input.Direction.IsValid() {
		return nil, goerr.Wrap(ErrInvalidReinforcement, "unknown reinforce direction",
			goerr.V("direction", input.Direction))
	}

	unlock := uc.locks.Lock(scope + "/" + input.Category.String() + "/" + input.Preference)
	defer unlock()

	pref, err := uc.repo.Preference().GetByKey(ctx, scope, input.Category, input.Preference)
	switch {
	case err == nil:
	case errors.Is(err, interfaces.ErrRecordNotFound):
		// First observation of this statement
		pref = &model.LearnedPreference{
			Category:   input.Category,
			Preference: input.Preference,
			Confidence: uc.params.InitialConfidence,
		}
	default:
		// A transient backend failure must not be mistaken for a first
		// observation, or it would reset an established confidence
		return nil, goerr.Wrap(err, "failed to load preference",
			goerr.V(ScopeKey, scope), goerr.V("preference", input.Preference))
	}

	switch input.Direction {
	case types.ReinforceAffirm:
		pref.Confidence += (1 - pref.Confidence) * uc.params.LearningRate
	case types.ReinforceContradict:
		pref.Confidence -= pref.Confidence * uc.params.LearningRate
	}

	if input.Example != "" {
		pref.Examples = append(pref.Examples, input.Example)
		if len(pref.Examples) > uc.params.ExampleCap {
			// Oldest examples fall off first
			pref.Examples = pref.Examples[len(pref.Examples)-uc.params.ExampleCap:]
		}
	}

	saved, err := uc.repo.Preference().Put(ctx, scope, pref)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save preference",
			goerr.V(ScopeKey, scope), goerr.V("preference", input.Preference))
	}

	return saved, nil
}

// Get retrieves a preference by ID
func (uc *PreferenceUseCase) Get(ctx context.Context, scope string, id model.PreferenceID) (*model.LearnedPreference, error) {
	pref, err := uc.repo.Preference().Get(ctx, scope, id)
	if err != nil {
		return nil, goerr.Wrap(ErrPreferenceNotFound, "preference not found",
			goerr.V("preference_id", id))
	}

	return pref, nil
}

// List retrieves preferences ordered by confidence descending, optionally
// restricted to one category
func (uc *PreferenceUseCase) List(ctx context.Context, scope string, category *types.PreferenceCategory) ([]*model.LearnedPreference, error) {
	if category != nil && !category.IsValid() {
		return nil, goerr.Wrap(ErrInvalidReinforcement, "unknown preference category",
			goerr.V("category", *category))
	}

	prefs, err := uc.repo.Preference().List(ctx, scope, category)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list preferences", goerr.V(ScopeKey, scope))
	}

	return prefs, nil
}

// Forget removes a preference entirely. Unlike a contradiction, which decays
// confidence, forgetting erases the record so the next observation starts
// over at the initial confidence.
func (uc *PreferenceUseCase) Forget(ctx context.Context, scope string, id model.PreferenceID) error {
	if _, err := uc.Get(ctx, scope, id); err != nil {
		return err
	}

	if err := uc.repo.Preference().Delete(ctx, scope, id); err != nil {
		return goerr.Wrap(err, "failed to delete preference", goerr.V("preference_id", id))
	}

	return nil
}

// Decay multiplies the confidence of preferences not reinforced since the
// cutoff by factor. The periodic worker calls this so stale preferences lose
// weight instead of staying authoritative forever. Saving bumps UpdatedAt,
// which keeps one sweep from decaying the same record twice.
func (uc *PreferenceUseCase) Decay(ctx context.Context, scope string, cutoff time.Time, factor float64) (int, error) {
	if factor <= 0 || factor >= 1 {
		return 0, goerr.Wrap(ErrInvalidReinforcement, "decay factor must be in (0,1)",
			goerr.V("factor", factor))
	}

	prefs, err := uc.repo.Preference().List(ctx, scope, nil)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list preferences for decay", goerr.V(ScopeKey, scope))
	}

	decayed := 0
	for _, pref := range prefs {
		if !pref.UpdatedAt.Before(cutoff) {
			continue
		}

		pref.Confidence *= factor
		if _, err := uc.repo.Preference().Put(ctx, scope, pref); err != nil {
			logging.From(ctx).Warn("failed to decay preference",
				"preference_id", pref.ID,
				"error", err)
			continue
		}
		decayed++
	}

	return decayed, nil
}
