package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/watchtower-lab/slackbridge/pkg/domain/model"
	"github.com/watchtower-lab/slackbridge/pkg/domain/types"
	slacksvc "github.com/watchtower-lab/slackbridge/pkg/service/slack"
	"github.com/watchtower-lab/slackbridge/pkg/utils/logging"
	"golang.org/x/time/rate"
)

// Slack holds CLI flags for the Slack Web API client
type Slack struct {
	botToken       string
	teamName       string
	organizationID string
	rateLimit      float64
	rateBurst      int
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("SLACKBRIDGE_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-team-name",
			Usage:       "Name of the workspace the bot is installed in",
			Category:    "Slack",
			Destination: &x.teamName,
			Sources:     cli.EnvVars("SLACKBRIDGE_SLACK_TEAM_NAME"),
		},
		&cli.StringFlag{
			Name:        "slack-organization-id",
			Usage:       "Organization the installed integration belongs to",
			Category:    "Slack",
			Destination: &x.organizationID,
			Sources:     cli.EnvVars("SLACKBRIDGE_SLACK_ORGANIZATION_ID"),
		},
		&cli.FloatFlag{
			Name:        "slack-rate-limit",
			Usage:       "Slack Web API requests per second",
			Category:    "Slack",
			Value:       1.0,
			Destination: &x.rateLimit,
			Sources:     cli.EnvVars("SLACKBRIDGE_SLACK_RATE_LIMIT"),
		},
		&cli.IntFlag{
			Name:        "slack-rate-burst",
			Usage:       "Slack Web API request burst size",
			Category:    "Slack",
			Value:       3,
			Destination: &x.rateBurst,
			Sources:     cli.EnvVars("SLACKBRIDGE_SLACK_RATE_BURST"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.String("team-name", x.teamName),
		slog.String("organization-id", x.organizationID),
		slog.Float64("rate-limit", x.rateLimit),
		slog.Int("rate-burst", x.rateBurst),
	)
}

// BotToken returns the configured bot token
func (x *Slack) BotToken() string {
	return x.botToken
}

// IsConfigured reports whether a bot token was provided
func (x *Slack) IsConfigured() bool {
	return x.botToken != ""
}

// Integration returns the installed integration the flags describe
func (x *Slack) Integration() model.Integration {
	return model.Integration{
		ID:             "slack",
		OrganizationID: types.OrganizationID(x.organizationID),
		TeamName:       x.teamName,
		AccessToken:    x.botToken,
	}
}

// Configure builds the Slack Web API client from the installed
// integration's credentials
func (x *Slack) Configure() (*slacksvc.Client, error) {
	if x.botToken == "" {
		return nil, goerr.Wrap(ErrMissingBotToken, "set --slack-bot-token")
	}

	integration := x.Integration()
	if err := integration.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid slack integration")
	}

	client, err := slacksvc.New(integration.AccessToken,
		slacksvc.WithRateLimit(rate.Limit(x.rateLimit), x.rateBurst))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize slack client")
	}

	logging.Default().Info("Slack integration configured", "integration", integration)
	return client, nil
}
