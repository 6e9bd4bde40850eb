package handler_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/vigil-lab/argus/pkg/domain/interfaces"
	"github.com/vigil-lab/argus/pkg/domain/model"
	"github.com/vigil-lab/argus/pkg/domain/types"
	"github.com/vigil-lab/argus/pkg/service/handler"
)

type noopHandler struct{}

func (noopHandler) Handle(ctx context.Context, scope string, details model.ActionDetails) (*interfaces.HandlerResult, error) {
	return &interfaces.HandlerResult{Success: true}, nil
}

func TestRegistry(t *testing.T) {
	r := handler.NewRegistry()

	_, ok := r.Lookup(types.ActionTypeAlert)
	gt.B(t, ok).False()

	r.Register(types.ActionTypeAlert, noopHandler{})
	h, ok := r.Lookup(types.ActionTypeAlert)
	gt.B(t, ok).True()
	gt.V(t, h).NotNil()

	gt.A(t, r.Types()).Length(1)
}

type fakePoster struct {
	lastScope string
	lastAlert *model.AlertDetails
	err       error
}

func (p *fakePoster) PostAlert(ctx context.Context, scope string, alert *model.AlertDetails) (string, error) {
	p.lastScope = scope
	p.lastAlert = alert
	if p.err != nil {
		return "", p.err
	}
	return "1725180000.000100", nil
}

func TestAlertHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers alert", func(t *testing.T) {
		poster := &fakePoster{}
		h := handler.NewAlertHandler(poster)

		result := gt.R1(h.Handle(ctx, "biz-test", model.ActionDetails{
			Alert: &model.AlertDetails{Severity: "high", Title: "Churn risk", Body: "details"},
		})).NoError(t)

		gt.B(t, result.Success).True()
		gt.S(t, result.ExternalID).Equal("1725180000.000100")
		gt.S(t, poster.lastScope).Equal("biz-test")
		gt.S(t, poster.lastAlert.Title).Equal("Churn risk")
	})

	t.Run("missing details", func(t *testing.T) {
		h := handler.NewAlertHandler(&fakePoster{})
		_, err := h.Handle(ctx, "biz-test", model.ActionDetails{})
		gt.Error(t, err)
	})

	t.Run("delivery failure", func(t *testing.T) {
		poster := &fakePoster{err: errors.New("channel_not_found")}
		h := handler.NewAlertHandler(poster)

		_, err := h.Handle(ctx, "biz-test", model.ActionDetails{
			Alert: &model.AlertDetails{Title: "t", Body: "b"},
		})
		gt.Error(t, err)
	})
}
