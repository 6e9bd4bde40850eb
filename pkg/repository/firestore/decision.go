package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/vigil-lab/argus/pkg/domain/interfaces"
	"github.com/vigil-lab/argus/pkg/domain/model"
	"github.com/vigil-lab/argus/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type decisionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newDecisionRepository(client *firestore.Client) *decisionRepository {
	return &decisionRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *decisionRepository) collection(scope string) *firestore.CollectionRef {
	return r.client.Collection(scopeCollection(r.collectionPrefix)).Doc(scope).Collection("decisions")
}

func (r *decisionRepository) Create(ctx context.Context, scope string, decision *model.Decision) (*model.Decision, error) {
	created := *decision
	if created.ID == "" {
		created.ID = model.NewDecisionID()
	}
	created.CreatedAt = time.Now().UTC()

	docRef := r.collection(scope).Doc(string(created.ID))
	if _, err := docRef.Create(ctx, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to create decision", goerr.V("id", created.ID))
	}

	return &created, nil
}

func (r *decisionRepository) Get(ctx context.Context, scope string, id model.DecisionID) (*model.Decision, error) {
	docSnap, err := r.collection(scope).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "decision not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get decision", goerr.V("id", id))
	}

	var d model.Decision
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode decision", goerr.V("id", id))
	}

	return &d, nil
}

func (r *decisionRepository) List(ctx context.Context, scope string, filter interfaces.DecisionFilter) ([]*model.Decision, error) {
	query := r.collection(scope).Query
	if filter.Type != nil {
		query = query.Where("Type", "==", filter.Type.String())
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	matched := make([]*model.Decision, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate decisions")
		}

		var d model.Decision
		if err := docSnap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode decision", goerr.V("doc_id", docSnap.Ref.ID))
		}

		if filter.ActionID != nil && d.ActionID != *filter.ActionID {
			continue
		}
		if filter.FeedbackPending && d.HasFeedback() {
			continue
		}
		if filter.Feedback != nil && d.OwnerFeedback != *filter.Feedback {
			continue
		}

		matched = append(matched, &d)
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
	docRef := r.collection(scope).Doc(string(id))

	var updated *model.Decision
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "decision not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get decision", goerr.V("id", id))
		}

		var current model.Decision
		if err := doc.DataTo(&current); err != nil {
			return goerr.Wrap(err, "failed to decode decision", goerr.V("id", id))
		}

		if current.HasFeedback() {
			return goerr.Wrap(ErrFeedbackAlreadySet, "cannot overwrite owner feedback",
				goerr.V("id", id), goerr.V("existing", current.OwnerFeedback))
		}

		current.OwnerFeedback = feedback
		if err := tx.Set(docRef, &current); err != nil {
			return goerr.Wrap(err, "failed to update decision", goerr.V("id", id))
		}

		updated = &current
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
