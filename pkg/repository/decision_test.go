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

func sampleDecision(dt types.DecisionType) *model.Decision {
	return &model.Decision{
		Type:      dt,
		Context:   map[string]any{"invoice_id": "inv-42", "days_overdue": int64(7)},
		Decision:  "proposed payment reminder",
		Reasoning: "customer is 7 days overdue",
	}
}

func runDecisionRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns ID and timestamp", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Decision().Create(ctx, testScope, sampleDecision(types.DecisionTypeProposal))
		gt.NoError(t, err).Required()

		gt.String(t, string(created.ID)).NotEqual("")
		gt.Bool(t, created.CreatedAt.IsZero()).False()
		gt.Value(t, created.OwnerFeedback).Equal(types.OwnerFeedback(""))
	})

	t.Run("Get round-trips context snapshot", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Decision().Create(ctx, testScope, sampleDecision(types.DecisionTypeProposal))
		gt.NoError(t, err).Required()

		got, err := repo.Decision().Get(ctx, testScope, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Context["invoice_id"]).Equal(any("inv-42"))
		gt.Value(t, got.Decision).Equal("proposed payment reminder")
	})

	t.Run("List filters by type and feedback state", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.Decision().Create(ctx, testScope, sampleDecision(types.DecisionTypeProposal))
		gt.NoError(t, err).Required()

		_, err = repo.Decision().Create(ctx, testScope, sampleDecision(types.DecisionTypeExecution))
		gt.NoError(t, err).Required()

		_, err = repo.Decision().AttachFeedback(ctx, testScope, first.ID, types.OwnerFeedbackApproved)
		gt.NoError(t, err).Required()

		proposals, err := repo.Decision().List(ctx, testScope, interfaces.DecisionFilter{
			Type: ptr(types.DecisionTypeProposal),
		})
		gt.NoError(t, err).Required()
		gt.Array(t, proposals).Length(1)

		pending, err := repo.Decision().List(ctx, testScope, interfaces.DecisionFilter{
			FeedbackPending: true,
		})
		gt.NoError(t, err).Required()
		gt.Array(t, pending).Length(1)
		gt.Value(t, pending[0].Type).Equal(types.DecisionTypeExecution)

		approved, err := repo.Decision().List(ctx, testScope, interfaces.DecisionFilter{
			Feedback: ptr(types.OwnerFeedbackApproved),
		})
		gt.NoError(t, err).Required()
		gt.Array(t, approved).Length(1)
		gt.Value(t, approved[0].ID).Equal(first.ID)
	})

	t.Run("List honors limit and offset", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			_, err := repo.Decision().Create(ctx, testScope, sampleDecision(types.DecisionTypeProposal))
			gt.NoError(t, err).Required()
		}

		page, err := repo.Decision().List(ctx, testScope, interfaces.DecisionFilter{Limit: 2})
		gt.NoError(t, err).Required()
		gt.Array(t, page).Length(2)

		rest, err := repo.Decision().List(ctx, testScope, interfaces.DecisionFilter{Limit: 10, Offset: 2})
		gt.NoError(t, err).Required()
		gt.Array(t, rest).Length(3)

		empty, err := repo.Decision().List(ctx, testScope, interfaces.DecisionFilter{Offset: 99})
		gt.NoError(t, err).Required()
		gt.Array(t, empty).Length(0)
	})

	t.Run("AttachFeedback is single-shot", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Decision().Create(ctx, testScope, sampleDecision(types.DecisionTypeProposal))
		gt.NoError(t, err).Required()

		updated, err := repo.Decision().AttachFeedback(ctx, testScope, created.ID, types.OwnerFeedbackModified)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.OwnerFeedback).Equal(types.OwnerFeedbackModified)

		_, err = repo.Decision().AttachFeedback(ctx, testScope, created.ID, types.OwnerFeedbackRejected)
		gt.Value(t, err).NotNil()
		if !errors.Is(err, interfaces.ErrFeedbackAlreadySet) {
			t.Errorf("expected ErrFeedbackAlreadySet, got %v", err)
		}

		// First value is retained
		got, err := repo.Decision().Get(ctx, testScope, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.OwnerFeedback).Equal(types.OwnerFeedbackModified)
	})

	t.Run("AttachFeedback on missing decision returns ErrNotFound", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Decision().AttachFeedback(ctx, testScope, model.NewDecisionID(), types.OwnerFeedbackApproved)
		gt.Value(t, err).NotNil()
		if !errors.Is(err, interfaces.ErrRecordNotFound) {
			t.Errorf("expected ErrRecordNotFound, got %v", err)
		}
	})
}

func ptr[T any](v T) *T {
	return &v
}

func TestMemoryDecisionRepository(t *testing.T) {
	runDecisionRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestFirestoreDecisionRepository(t *testing.T) {
	runDecisionRepositoryTest(t, newFirestoreRepository)
}
