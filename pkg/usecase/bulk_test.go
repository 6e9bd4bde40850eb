package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/vigil-lab/argus/pkg/domain/interfaces"
	"github.com/vigil-lab/argus/pkg/domain/model"
	"github.com/vigil-lab/argus/pkg/domain/types"
	"github.com/vigil-lab/argus/pkg/usecase"
)

func TestBulkApprovePartialFailure(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCases()

	a := gt.R1(uc.Action.Propose(ctx, testScope, paymentProposal())).NoError(t)
	b := gt.R1(uc.Action.Propose(ctx, testScope, paymentProposal())).NoError(t)
	c := gt.R1(uc.Action.Propose(ctx, testScope, alertProposal())).NoError(t)

	// B is already decided, so it must fail without blocking A and C
	gt.R1(uc.Action.Reject(ctx, testScope, b.ID)).NoError(t)

	result := gt.R1(uc.Bulk.Approve(ctx, testScope, []model.ActionID{a.ID, b.ID, c.ID})).NoError(t)
	gt.A(t, result.Results).Length(3)
	gt.N(t, result.Succeeded()).Equal(2)
	gt.N(t, result.Failed()).Equal(1)

	gt.NoError(t, result.Results[0].Err)
	gt.V(t, result.Results[0].Action.Status).Equal(types.ActionStatusApproved)
	gt.Error(t, result.Results[1].Err).Is(usecase.ErrInvalidState)
	gt.NoError(t, result.Results[2].Err)
	gt.V(t, result.Results[2].Action.Status).Equal(types.ActionStatusApproved)

	// B kept its rejected status
	gotB := gt.R1(uc.Action.Get(ctx, testScope, b.ID)).NoError(t)
	gt.V(t, gotB.Status).Equal(types.ActionStatusRejected)
}

func TestBulkApproveUnknownID(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCases()

	a := gt.R1(uc.Action.Propose(ctx, testScope, paymentProposal())).NoError(t)
	missing := model.NewActionID()

	result := gt.R1(uc.Bulk.Approve(ctx, testScope, []model.ActionID{missing, a.ID})).NoError(t)
	gt.Error(t, result.Results[0].Err).Is(usecase.ErrActionNotFound)
	gt.NoError(t, result.Results[1].Err)
}

func TestBulkRejectPartialFailure(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCases()

	a := gt.R1(uc.Action.Propose(ctx, testScope, paymentProposal())).NoError(t)
	b := gt.R1(uc.Action.Propose(ctx, testScope, paymentProposal())).NoError(t)
	gt.R1(uc.Action.Approve(ctx, testScope, b.ID)).NoError(t)

	result := gt.R1(uc.Bulk.Reject(ctx, testScope, []model.ActionID{a.ID, b.ID})).NoError(t)
	gt.NoError(t, result.Results[0].Err)
	gt.Error(t, result.Results[1].Err).Is(usecase.ErrInvalidState)
}

func TestBulkExecute(t *testing.T) {
	ctx := context.Background()
	uc, registry := newTestUseCases()

	registry.register(types.ActionTypePaymentReminder, handlerFunc(
		func(ctx context.Context, scope string, details model.ActionDetails) (*interfaces.HandlerResult, error) {
			return &interfaces.HandlerResult{Success: true, Message: "sent"}, nil
		}))

	a := gt.R1(uc.Action.Propose(ctx, testScope, paymentProposal())).NoError(t)
	b := gt.R1(uc.Action.Propose(ctx, testScope, paymentProposal())).NoError(t)
	c := gt.R1(uc.Action.Propose(ctx, testScope, paymentProposal())).NoError(t)

	// Only the approved set is dispatched: b (rejected) and c (still
	// pending) are not candidates at call time.
	gt.R1(uc.Action.Approve(ctx, testScope, a.ID)).NoError(t)
	gt.R1(uc.Action.Reject(ctx, testScope, b.ID)).NoError(t)

	result := gt.R1(uc.Bulk.Execute(ctx, testScope)).NoError(t)
	gt.A(t, result.Results).Length(1)
	gt.N(t, result.Succeeded()).Equal(1)
	gt.V(t, result.Results[0].ActionID).Equal(a.ID)
	gt.V(t, result.Results[0].Action.Status).Equal(types.ActionStatusExecuted)

	got := gt.R1(uc.Action.Get(ctx, testScope, c.ID)).NoError(t)
	gt.V(t, got.Status).Equal(types.ActionStatusPending)
}

func TestBulkExecuteRederivesCandidates(t *testing.T) {
	ctx := context.Background()
	uc, registry := newTestUseCases()

	registry.register(types.ActionTypePaymentReminder, handlerFunc(
		func(ctx context.Context, scope string, details model.ActionDetails) (*interfaces.HandlerResult, error) {
			return &interfaces.HandlerResult{Success: true, Message: "sent"}, nil
		}))

	a := gt.R1(uc.Action.Propose(ctx, testScope, paymentProposal())).NoError(t)
	gt.R1(uc.Action.Approve(ctx, testScope, a.ID)).NoError(t)
	gt.R1(uc.Bulk.Execute(ctx, testScope)).NoError(t)

	// Nothing approved remains, so a second run is an empty no-op rather
	// than a duplicate-execution error.
	result := gt.R1(uc.Bulk.Execute(ctx, testScope)).NoError(t)
	gt.A(t, result.Results).Length(0)
	gt.N(t, result.Failed()).Equal(0)
}

func TestBulkEmptyList(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestUseCases()

	_, err := uc.Bulk.Approve(ctx, testScope, nil)
	gt.Error(t, err).Is(usecase.ErrInvalidProposal)

	_, err = uc.Bulk.Reject(ctx, testScope, []model.ActionID{})
	gt.Error(t, err).Is(usecase.ErrInvalidProposal)
}
