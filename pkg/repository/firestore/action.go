package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/vigil-lab/argus/pkg/domain/interfaces"
	"github.com/vigil-lab/argus/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type actionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newActionRepository(client *firestore.Client) *actionRepository {
	return &actionRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *actionRepository) collection(scope string) *firestore.CollectionRef {
	return r.client.Collection(scopeCollection(r.collectionPrefix)).Doc(scope).Collection("actions")
}

func (r *actionRepository) Create(ctx context.Context, scope string, action *model.Action) (*model.Action, error) {
	now := time.Now().UTC()
	created := *action
	if created.ID == "" {
		created.ID = model.NewActionID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.collection(scope).Doc(string(created.ID))
	if _, err := docRef.Create(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create action", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *actionRepository) Get(ctx context.Context, scope string, id model.ActionID) (*model.Action, error) {
	docSnap, err := r.collection(scope).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get action", goerr.V("id", id))
	}

	var a model.Action
	if err := docSnap.DataTo(&a); err != nil {
		return nil, goerr.Wrap(err, "failed to decode action", goerr.V("id", id))
	}

	return &a, nil
}

func (r *actionRepository) List(ctx context.Context, scope string, opts ...interfaces.ListActionOption) ([]*model.Action, error) {
	cfg := interfaces.BuildListActionConfig(opts...)

	query := r.collection(scope).Query
	if s := cfg.Status(); s != nil {
		query = query.Where("Status", "==", s.String())
	}
	if t := cfg.Type(); t != nil {
		query = query.Where("Type", "==", t.String())
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	actions := make([]*model.Action, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate actions")
		}

		var a model.Action
		if err := docSnap.DataTo(&a); err != nil {
			return nil, goerr.Wrap(err, "failed to decode action", goerr.V("doc_id", docSnap.Ref.ID))
		}

		// Time-range bounds are applied here to keep index requirements flat
		if !cfg.Match(a.Status, a.Type, a.CreatedAt) {
			continue
		}

		actions = append(actions, &a)
	}

	return actions, nil
}

func (r *actionRepository) Mutate(ctx context.Context, scope string, id model.ActionID, fn interfaces.MutateActionFunc) (*model.Action, error) {
	docRef := r.collection(scope).Doc(string(id))

	var updated *model.Action
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get action", goerr.V("id", id))
		}

		var current model.Action
		if err := doc.DataTo(&current); err != nil {
			return goerr.Wrap(err, "failed to decode action", goerr.V("id", id))
		}

		mutated, err := fn(&current)
		if err != nil {
			return err
		}

		mutated.ID = id
		mutated.CreatedAt = current.CreatedAt
		mutated.UpdatedAt = time.Now().UTC()

		if err := tx.Set(docRef, mutated); err != nil {
			return goerr.Wrap(err, "failed to update action", goerr.V("id", id))
		}

		updated = mutated
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *actionRepository) CountByStatus(ctx context.Context, scope string) (map[string]int, error) {
	return r.countByField(ctx, scope, func(a *model.Action) string {
		return a.Status.String()
	})
}

func (r *actionRepository) CountByType(ctx context.Context, scope string) (map[string]int, error) {
	return r.countByField(ctx, scope, func(a *model.Action) string {
		return a.Type.String()
	})
}

func (r *actionRepository) countByField(ctx context.Context, scope string, key func(*model.Action) string) (map[string]int, error) {
	iter := r.collection(scope).Documents(ctx)
	defer iter.Stop()

	counts := make(map[string]int)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate actions")
		}

		var a model.Action
		if err := docSnap.DataTo(&a); err != nil {
			return nil, goerr.Wrap(err, "failed to decode action", goerr.V("doc_id", docSnap.Ref.ID))
		}

		counts[key(&a)]++
	}

	return counts, nil
}
