package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/vigil-lab/argus/pkg/domain/interfaces"
)

// Repository contract sentinels, shared across backends so callers can
// errors.Is them without importing a specific backend
var (
	ErrNotFound           = interfaces.ErrRecordNotFound
	ErrFeedbackAlreadySet = interfaces.ErrFeedbackAlreadySet
)

// Firestore is the production repository backend. Each tenant scope maps to
// a document under the scopes collection with per-entity subcollections, so
// cross-scope reads are impossible by construction.
type Firestore struct {
	client     *firestore.Client
	action     *actionRepository
	decision   *decisionRepository
	preference *preferenceRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections, used by tests to isolate runs
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.action.collectionPrefix = prefix
		f.decision.collectionPrefix = prefix
		f.preference.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID == "" {
		client, err = firestore.NewClient(ctx, projectID)
	} else {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:     client,
		action:     newActionRepository(client),
		decision:   newDecisionRepository(client),
		preference: newPreferenceRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Action() interfaces.ActionRepository {
	return f.action
}

func (f *Firestore) Decision() interfaces.DecisionRepository {
	return f.decision
}

func (f *Firestore) Preference() interfaces.PreferenceRepository {
	return f.preference
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

// scopeCollection resolves the top-level collection name for tenant scopes
func scopeCollection(prefix string) string {
	if prefix != "" {
		return prefix + "_scopes"
	}
	return "scopes"
}
