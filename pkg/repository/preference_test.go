package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/vigil-lab/argus/pkg/domain/interfaces"
	"github.com/vigil-lab/argus/pkg/domain/model"
	"github.com/vigil-lab/argus/pkg/domain/types"
	"github.com/vigil-lab/argus/pkg/repository/memory"
)

func runPreferenceRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Put then GetByKey", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		stored, err := repo.Preference().Put(ctx, testScope, &model.LearnedPreference{
			Category:   types.PreferenceTone,
			Preference: "friendly",
			Confidence: 0.3,
			Examples:   []string{"approved casual reply"},
		})
		gt.NoError(t, err).Required()
		gt.String(t, string(stored.ID)).NotEqual("")
		gt.Bool(t, stored.CreatedAt.IsZero()).False()

		got, err := repo.Preference().GetByKey(ctx, testScope, types.PreferenceTone, "friendly")
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(stored.ID)
		gt.Value(t, got.Confidence).Equal(0.3)
		gt.Array(t, got.Examples).Length(1)
	})

	t.Run("GetByKey distinguishes preferences within a category", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Preference().Put(ctx, testScope, &model.LearnedPreference{
			Category:   types.PreferenceTone,
			Preference: "friendly",
			Confidence: 0.3,
		})
		gt.NoError(t, err).Required()

		_, err = repo.Preference().GetByKey(ctx, testScope, types.PreferenceTone, "formal")
		gt.Value(t, err).NotNil()
		if !errors.Is(err, interfaces.ErrRecordNotFound) {
			t.Errorf("expected ErrRecordNotFound, got %v", err)
		}
	})

	t.Run("Put with existing ID replaces record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		stored, err := repo.Preference().Put(ctx, testScope, &model.LearnedPreference{
			Category:   types.PreferenceTiming,
			Preference: "send reminders in the morning",
			Confidence: 0.3,
		})
		gt.NoError(t, err).Required()

		stored.Confidence = 0.44
		stored.Examples = append(stored.Examples, "approved 9am send")
		updated, err := repo.Preference().Put(ctx, testScope, stored)
		gt.NoError(t, err).Required()

		gt.Value(t, updated.ID).Equal(stored.ID)
		gt.Value(t, updated.Confidence).Equal(0.44)

		all, err := repo.Preference().List(ctx, testScope, nil)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(1)
	})

	t.Run("List filters by category and orders by confidence", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Preference().Put(ctx, testScope, &model.LearnedPreference{
			Category:   types.PreferenceTone,
			Preference: "friendly",
			Confidence: 0.4,
		})
		gt.NoError(t, err).Required()

		_, err = repo.Preference().Put(ctx, testScope, &model.LearnedPreference{
			Category:   types.PreferenceTone,
			Preference: "avoid: exclamation marks",
			Confidence: 0.8,
		})
		gt.NoError(t, err).Required()

		_, err = repo.Preference().Put(ctx, testScope, &model.LearnedPreference{
			Category:   types.PreferencePricing,
			Preference: "never discount below 10%",
			Confidence: 0.6,
		})
		gt.NoError(t, err).Required()

		tone := types.PreferenceTone
		prefs, err := repo.Preference().List(ctx, testScope, &tone)
		gt.NoError(t, err).Required()
		gt.Array(t, prefs).Length(2)
		gt.Value(t, prefs[0].Preference).Equal("avoid: exclamation marks")

		all, err := repo.Preference().List(ctx, testScope, nil)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(3)
	})

	t.Run("Delete removes the record entirely", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		stored, err := repo.Preference().Put(ctx, testScope, &model.LearnedPreference{
			Category:   types.PreferenceTone,
			Preference: "friendly",
			Confidence: 0.5,
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Preference().Delete(ctx, testScope, stored.ID))

		_, err = repo.Preference().Get(ctx, testScope, stored.ID)
		gt.Value(t, err).NotNil()

		all, err := repo.Preference().List(ctx, testScope, nil)
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(0)
	})

	t.Run("Delete on missing preference returns ErrNotFound", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.Preference().Delete(ctx, testScope, model.NewPreferenceID())
		gt.Value(t, err).NotNil()
		if !errors.Is(err, interfaces.ErrRecordNotFound) {
			t.Errorf("expected ErrRecordNotFound, got %v", err)
		}
	})
}

func TestMemoryPreferenceRepository(t *testing.T) {
	runPreferenceRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestorePreferenceRepository(t *testing.T) {
	runPreferenceRepositoryTest(t, newFirestoreRepository)
}
