package slack

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
	"github.com/vigil-lab/argus/pkg/domain/model"
	"github.com/vigil-lab/argus/pkg/domain/types"
)

// client implements Service interface
type client struct {
	api          *slack.Client
	channelID    string
	alertChannel string
}

// Option is a functional option for client configuration
type Option func(*client)

// WithAlertChannel routes alert deliveries to a separate channel.
// Without it, alerts go to the notification channel.
func WithAlertChannel(channelID string) Option {
	return func(c *client) {
		c.alertChannel = channelID
	}
}

// New creates a new Slack service with the provided bot token
func New(token, channelID string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channelID == "" {
		return nil, goerr.New("Slack channel ID is required")
	}

	c := &client{
		api:       slack.New(token),
		channelID: channelID,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// NotifyPendingAction posts a review request for a newly proposed action
func (c *client) NotifyPendingAction(ctx context.Context, scope string, action *model.Action) error {
	blocks := buildPendingActionBlocks(scope, action)

	_, _, err := c.api.PostMessageContext(ctx, c.channelID,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText("Action awaiting review: "+action.Details.Summary(action.Type), false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post pending action notification",
			goerr.V("channel", c.channelID), goerr.V("action_id", action.ID))
	}

	return nil
}

// PostAlert delivers an alert payload and returns the message timestamp,
// which serves as the external ID of the delivery
func (c *client) PostAlert(ctx context.Context, scope string, alert *model.AlertDetails) (string, error) {
	channel := c.alertChannel
	if channel == "" {
		channel = c.channelID
	}
	// An explicit channel on the alert overrides configuration
	if alert.Channel != "" {
		channel = alert.Channel
	}

	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, severityEmoji(alert.Severity)+" "+alert.Title, true, false),
		),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, alert.Body, false, false),
			nil, nil,
		),
		slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType,
				fmt.Sprintf("severity: %s | scope: %s", alert.Severity, scope), false, false),
		),
	}

	_, ts, err := c.api.PostMessageContext(ctx, channel,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(alert.Title, false),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post alert",
			goerr.V("channel", channel), goerr.V("title", alert.Title))
	}

	return ts, nil
}

func buildPendingActionBlocks(scope string, action *model.Action) []slack.Block {
	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, "*Type:*\n"+action.Type.String(), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, "*Priority:*\n"+priorityLabel(action.Priority), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, "*Scope:*\n"+scope, false, false),
		slack.NewTextBlockObject(slack.MarkdownType, "*Action ID:*\n"+string(action.ID), false, false),
	}

	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, ":hourglass: Action awaiting review", true, false),
		),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, action.Details.Summary(action.Type), false, false),
			fields, nil,
		),
	}

	if action.Reasoning != "" {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, "_"+action.Reasoning+"_", false, false),
		))
	}

	return blocks
}

func priorityLabel(p types.Priority) string {
	switch p {
	case types.PriorityUrgent:
		return ":rotating_light: urgent"
	case types.PriorityHigh:
		return ":arrow_up: high"
	case types.PriorityLow:
		return ":arrow_down: low"
	default:
		return p.String()
	}
}

func severityEmoji(severity string) string {
	switch strings.ToLower(severity) {
	case "critical", "high":
		return ":rotating_light:"
	case "medium":
		return ":warning:"
	default:
		return ":information_source:"
	}
}
