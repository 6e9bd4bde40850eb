package handler

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vigil-lab/argus/pkg/domain/interfaces"
	"github.com/vigil-lab/argus/pkg/domain/model"
)

// AlertPoster is the delivery capability the alert handler needs
type AlertPoster interface {
	PostAlert(ctx context.Context, scope string, alert *model.AlertDetails) (string, error)
}

// AlertHandler executes alert actions by posting them through an AlertPoster
type AlertHandler struct {
	poster AlertPoster
}

func NewAlertHandler(poster AlertPoster) *AlertHandler {
	return &AlertHandler{poster: poster}
}

// Handle delivers the alert payload. The delivery timestamp becomes the
// execution's external ID.
func (h *AlertHandler) Handle(ctx context.Context, scope string, details model.ActionDetails) (*interfaces.HandlerResult, error) {
	if details.Alert == nil {
		return nil, goerr.New("alert handler invoked without alert details")
	}

	externalID, err := h.poster.PostAlert(ctx, scope, details.Alert)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to deliver alert",
			goerr.V("title", details.Alert.Title))
	}

	return &interfaces.HandlerResult{
		Success:    true,
		Message:    "alert delivered: " + details.Alert.Title,
		ExternalID: externalID,
	}, nil
}
