package slack

import (
	"context"

	"github.com/vigil-lab/argus/pkg/domain/model"
)

// Service is the outbound Slack surface: pending-action notifications for
// humans to act on, and alert delivery for the alert action type.
type Service interface {
	// NotifyPendingAction posts a message about an action awaiting review
	NotifyPendingAction(ctx context.Context, scope string, action *model.Action) error

	// PostAlert delivers an alert payload to its channel
	PostAlert(ctx context.Context, scope string, alert *model.AlertDetails) (string, error)
}
