package interfaces

import (
	"context"

	"github.com/vigil-lab/argus/pkg/domain/model"
	"github.com/vigil-lab/argus/pkg/domain/types"
)

// PreferenceRepository defines the interface for LearnedPreference data
// access. Confidence values are computed by the preference learner; the
// repository just stores what it is given.
type PreferenceRepository interface {
	// GetByKey retrieves the preference for a (category, preference) pair
	GetByKey(ctx context.Context, scope string, category types.PreferenceCategory, preference string) (*model.LearnedPreference, error)

	// Get retrieves a preference by ID
	Get(ctx context.Context, scope string, id model.PreferenceID) (*model.LearnedPreference, error)

	// List retrieves preferences, optionally restricted to one category
	List(ctx context.Context, scope string, category *types.PreferenceCategory) ([]*model.LearnedPreference, error)

	// Put creates or replaces a preference record
	Put(ctx context.Context, scope string, pref *model.LearnedPreference) (*model.LearnedPreference, error)

	// Delete removes a preference entirely
	Delete(ctx context.Context, scope string, id model.PreferenceID) error
}
