package config

import (
	"github.com/m-mizutani/coresync/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Update holds configuration of the update run
type Update struct {
	ConfigPath        string
	Root              string
	DryRun            bool
	KeepGoing         bool
	ContentTypes      []string
	MatchZipExtension bool
	NoColor           bool
}

// Flags returns CLI flags for the update run
func (c *Update) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Repository list file (.json or .toml)",
			Value:       "auto_update.json",
			Destination: &c.ConfigPath,
			Sources:     cli.EnvVars("CORESYNC_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "root",
			Usage:       "Installation root containing the Cores directory",
			Value:       ".",
			Destination: &c.Root,
			Sources:     cli.EnvVars("CORESYNC_ROOT"),
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Check for updates without downloading",
			Destination: &c.DryRun,
			Sources:     cli.EnvVars("CORESYNC_DRY_RUN"),
		},
		&cli.BoolFlag{
			Name:        "keep-going",
			Usage:       "Continue with remaining repositories when the API returns an error",
			Destination: &c.KeepGoing,
			Sources:     cli.EnvVars("CORESYNC_KEEP_GOING"),
		},
		&cli.StringSliceFlag{
			Name:        "content-type",
			Usage:       "Accepted content type of the core archive asset",
			Value:       model.DefaultZipContentTypes,
			Destination: &c.ContentTypes,
			Sources:     cli.EnvVars("CORESYNC_CONTENT_TYPE"),
		},
		&cli.BoolFlag{
			Name:        "match-zip-extension",
			Usage:       "Also accept assets named *.zip regardless of content type",
			Destination: &c.MatchZipExtension,
			Sources:     cli.EnvVars("CORESYNC_MATCH_ZIP_EXTENSION"),
		},
		&cli.BoolFlag{
			Name:        "no-color",
			Usage:       "Disable colored status output",
			Destination: &c.NoColor,
			Sources:     cli.EnvVars("CORESYNC_NO_COLOR"),
		},
	}
}

// AssetPolicy returns the asset selection policy
func (c *Update) AssetPolicy() model.AssetPolicy {
	return model.AssetPolicy{
		ContentTypes:   c.ContentTypes,
		MatchExtension: c.MatchZipExtension,
	}
}
