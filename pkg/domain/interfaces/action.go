package interfaces

import (
	"context"

	"github.com/vigil-lab/argus/pkg/domain/model"
)

// MutateActionFunc is applied to the current state of an action inside an
// atomic read-check-write. It must return the modified action or an error to
// abort the mutation; the error is surfaced to the caller unchanged.
type MutateActionFunc func(action *model.Action) (*model.Action, error)

// ActionRepository defines the interface for Action data access
type ActionRepository interface {
	// Create stores a new action, generating an ID if none is set
	Create(ctx context.Context, scope string, action *model.Action) (*model.Action, error)

	// Get retrieves an action by ID
	Get(ctx context.Context, scope string, id model.ActionID) (*model.Action, error)

	// List retrieves actions matching the given filters
	List(ctx context.Context, scope string, opts ...ListActionOption) ([]*model.Action, error)

	// Mutate atomically applies fn to the stored action. Concurrent Mutate
	// calls on the same ID serialize; the state fn observes is never stale.
	Mutate(ctx context.Context, scope string, id model.ActionID, fn MutateActionFunc) (*model.Action, error)

	// CountByStatus returns the number of actions per status
	CountByStatus(ctx context.Context, scope string) (map[string]int, error)

	// CountByType returns the number of actions per action type
	CountByType(ctx context.Context, scope string) (map[string]int, error)
}
