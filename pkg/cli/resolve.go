package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/watchtower-lab/slackbridge/pkg/cli/config"
	slacksvc "github.com/watchtower-lab/slackbridge/pkg/service/slack"
)

// cmdResolve is a one-shot lookup for operators: it resolves a channel
// or user name directly against the workspace, with the long budget,
// and prints the outcome.
func cmdResolve() *cli.Command {
	var slackCfg config.Slack

	return &cli.Command{
		Name:      "resolve",
		Aliases:   []string{"r"},
		Usage:     "Resolve a channel or user name to its workspace ID",
		ArgsUsage: "<name>",
		Flags:     slackCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			name := c.Args().First()
			if name == "" {
				return goerr.New("name argument is required (e.g. '#general' or '@jane')")
			}

			client, err := slackCfg.Configure()
			if err != nil {
				return err
			}

			scheduler := slacksvc.NewScheduler(slacksvc.NewResolver(client))
			res, err := scheduler.ResolveChannelID(ctx, name, true)
			if err != nil {
				if errors.Is(err, slacksvc.ErrDuplicateDisplayName) {
					color.Red("multiple users share the display name %q; use the exact member name", name)
					return err
				}
				return err
			}

			switch {
			case res.Found():
				color.Green("%s%s -> %s", res.Prefix, slacksvc.StripChannelName(name), res.ChannelID)
			case res.TimedOut:
				color.Yellow("lookup for %q ran out of time", name)
			default:
				fmt.Printf("%s not found in the workspace\n", name)
			}

			return nil
		},
	}
}
