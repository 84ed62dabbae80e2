package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
	slacksvc "github.com/watchtower-lab/slackbridge/pkg/service/slack"
)

// Colors holds the CLI flag for the attachment color palette
type Colors struct {
	path string
}

func (x *Colors) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "colors-config",
			Usage:       "TOML file overriding the attachment color palette",
			Category:    "Messages",
			Destination: &x.path,
			Sources:     cli.EnvVars("SLACKBRIDGE_COLORS_CONFIG"),
		},
	}
}

// Configure loads the palette. Keys missing from the file keep their
// stock values.
func (x *Colors) Configure() (slacksvc.Colors, error) {
	colors := slacksvc.DefaultColors()
	if x.path == "" {
		return colors, nil
	}

	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(x.path)
	if err != nil {
		return colors, goerr.Wrap(err, "failed to read colors config", goerr.V("path", x.path))
	}

	var loaded slacksvc.Colors
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return colors, goerr.Wrap(err, "failed to parse colors config", goerr.V("path", x.path))
	}

	for level, color := range loaded.Levels {
		colors.Levels[level] = color
	}
	if loaded.Actioned != "" {
		colors.Actioned = loaded.Actioned
	}
	if loaded.Resolved != "" {
		colors.Resolved = loaded.Resolved
	}

	return colors, nil
}
