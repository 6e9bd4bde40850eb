package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/vigil-lab/argus/pkg/domain/model"
	"github.com/vigil-lab/argus/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type preferenceRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newPreferenceRepository(client *firestore.Client) *preferenceRepository {
	return &preferenceRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *preferenceRepository) collection(scope string) *firestore.CollectionRef {
	return r.client.Collection(scopeCollection(r.collectionPrefix)).Doc(scope).Collection("preferences")
}

func (r *preferenceRepository) GetByKey(ctx context.Context, scope string, category types.PreferenceCategory, preference string) (*model.LearnedPreference, error) {
	iter := r.collection(scope).
		Where("Category", "==", category.String()).
		Where("Preference", "==", preference).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "preference not found",
			goerr.V("category", category), goerr.V("preference", preference))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query preference",
			goerr.V("category", category), goerr.V("preference", preference))
	}

	var p model.LearnedPreference
	if err := docSnap.DataTo(&p); err != nil {
		return nil, goerr.Wrap(err, "failed to decode preference", goerr.V("doc_id", docSnap.Ref.ID))
	}

	return &p, nil
}

func (r *preferenceRepository) Get(ctx context.Context, scope string, id model.PreferenceID) (*model.LearnedPreference, error) {
	docSnap, err := r.collection(scope).Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "preference not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get preference", goerr.V("id", id))
	}

	var p model.LearnedPreference
	if err := docSnap.DataTo(&p); err != nil {
		return nil, goerr.Wrap(err, "failed to decode preference", goerr.V("id", id))
	}

	return &p, nil
}

func (r *preferenceRepository) List(ctx context.Context, scope string, category *types.PreferenceCategory) ([]*model.LearnedPreference, error) {
	query := r.collection(scope).Query
	if category != nil {
		query = query.Where("Category", "==", category.String())
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	prefs := make([]*model.LearnedPreference, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate preferences")
		}

		var p model.LearnedPreference
		if err := docSnap.DataTo(&p); err != nil {
			return nil, goerr.Wrap(err, "failed to decode preference", goerr.V("doc_id", docSnap.Ref.ID))
		}

		prefs = append(prefs, &p)
	}

	sort.Slice(prefs, func(i, j int) bool {
		if prefs[i].Confidence != prefs[j].Confidence {
			return prefs[i].Confidence > prefs[j].Confidence
		}
		return prefs[i].Preference < prefs[j].Preference
	})

	return prefs, nil
}

func (r *preferenceRepository) Put(ctx context.Context, scope string, pref *model.LearnedPreference) (*model.LearnedPreference, error) {
	now := time.Now().UTC()
	stored := *pref
	stored.Examples = make([]string, len(pref.Examples))
	copy(stored.Examples, pref.Examples)

	if stored.ID == "" {
		stored.ID = model.NewPreferenceID()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	docRef := r.collection(scope).Doc(string(stored.ID))
	if _, err := docRef.Set(ctx, &stored); err != nil {
		return nil, goerr.Wrap(err, "failed to put preference", goerr.V("id", stored.ID))
	}

	return &stored, nil
}

func (r *preferenceRepository) Delete(ctx context.Context, scope string, id model.PreferenceID) error {
	docRef := r.collection(scope).Doc(string(id))

	// Firestore deletes are no-ops for missing docs, so check existence first
	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "preference not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check preference existence", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete preference", goerr.V("id", id))
	}

	return nil
}
