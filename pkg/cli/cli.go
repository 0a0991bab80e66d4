package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/coresync/pkg/cli/config"
	"github.com/m-mizutani/coresync/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var (
		loggerCfg config.Logger
		logger    *slog.Logger
		cmd       updateCommand
	)

	flags := append(loggerCfg.Flags(), cmd.Flags()...)

	app := &cli.Command{
		Name:    types.AppName,
		Usage:   "Update cores from their latest GitHub releases",
		Version: types.Version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return cmd.run(ctx, false)
		},
		Commands: []*cli.Command{
			cmdCheck(&cmd),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}
