package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"
	"github.com/vigil-lab/argus/pkg/service/slack"
)

// Slack holds CLI flags for Slack notification configuration
type Slack struct {
	botToken     string
	channelID    string
	alertChannel string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack bot token for notifications",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("ARGUS_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel-id",
			Usage:       "Slack channel ID for pending action notifications",
			Category:    "Slack",
			Destination: &x.channelID,
			Sources:     cli.EnvVars("ARGUS_SLACK_CHANNEL_ID"),
		},
		&cli.StringFlag{
			Name:        "slack-alert-channel-id",
			Usage:       "Slack channel ID for alert deliveries (defaults to the notification channel)",
			Category:    "Slack",
			Destination: &x.alertChannel,
			Sources:     cli.EnvVars("ARGUS_SLACK_ALERT_CHANNEL_ID"),
		},
	}
}

// IsConfigured reports whether enough flags are set to build the service
func (x *Slack) IsConfigured() bool {
	return x.botToken != "" && x.channelID != ""
}

// Configure builds the Slack service, or returns nil when not configured
func (x *Slack) Configure() (slack.Service, error) {
	if !x.IsConfigured() {
		return nil, nil
	}

	var opts []slack.Option
	if x.alertChannel != "" {
		opts = append(opts, slack.WithAlertChannel(x.alertChannel))
	}

	return slack.New(x.botToken, x.channelID, opts...)
}

// LogValue renders the configuration without exposing the token
func (x *Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("configured", x.IsConfigured()),
		slog.String("channel_id", x.channelID),
		slog.String("alert_channel_id", x.alertChannel),
	)
}
