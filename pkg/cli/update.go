package cli

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/m-mizutani/coresync/pkg/cli/config"
	"github.com/m-mizutani/coresync/pkg/domain/model"
	"github.com/m-mizutani/coresync/pkg/infra/console"
	"github.com/m-mizutani/coresync/pkg/infra/notify"
	"github.com/m-mizutani/coresync/pkg/infra/repolist"
	"github.com/m-mizutani/coresync/pkg/infra/storage"
	"github.com/m-mizutani/coresync/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

type updateCommand struct {
	update config.Update
	github config.GitHub
	sentry config.Sentry
	slack  config.Slack
}

func (x *updateCommand) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, x.update.Flags()...)
	flags = append(flags, x.github.Flags()...)
	flags = append(flags, x.sentry.Flags()...)
	flags = append(flags, x.slack.Flags()...)
	return flags
}

func cmdCheck(cmd *updateCommand) *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Report available updates without downloading",
		Action: func(ctx context.Context, c *cli.Command) error {
			return cmd.run(ctx, true)
		},
	}
}

func (x *updateCommand) run(ctx context.Context, forceDryRun bool) error {
	runID := uuid.NewString()
	logger := ctxlog.From(ctx).With("run_id", runID)
	ctx = ctxlog.With(ctx, logger)

	var errReporter *notify.Sentry
	if x.sentry.DSN != "" {
		s, err := notify.NewSentry(x.sentry.DSN, x.sentry.Env)
		if err != nil {
			return err
		}
		defer s.Flush()
		errReporter = s
	}

	entries, err := repolist.Load(x.update.ConfigPath)
	if err != nil {
		if errReporter != nil {
			errReporter.ReportError(ctx, nil, err)
		}
		return err
	}

	logger.Debug("Loaded repository list",
		"path", x.update.ConfigPath,
		"entry_count", len(entries),
		"github", x.github,
	)

	client, err := x.github.NewClient()
	if err != nil {
		return goerr.Wrap(err, "failed to create GitHub client")
	}

	opts := []usecase.UpdateOption{
		usecase.WithAssetPolicy(x.update.AssetPolicy()),
		usecase.WithDryRun(x.update.DryRun || forceDryRun),
		usecase.WithKeepGoing(x.update.KeepGoing),
		usecase.WithRunID(runID),
	}
	if errReporter != nil {
		opts = append(opts, usecase.WithErrorReporter(errReporter))
	}
	if x.slack.WebhookURL != "" {
		opts = append(opts, usecase.WithNotifier(notify.NewSlack(x.slack.WebhookURL)))
	}

	uc := usecase.NewUpdate(
		client,
		storage.New(x.update.Root),
		console.NewReporter(os.Stdout, x.update.NoColor),
		opts...,
	)

	summary, err := uc.Update(ctx, entries)
	if err != nil {
		return err
	}

	logger.Info("Update run finished",
		"updated", summary.Count(model.EntryUpdated),
		"skipped", summary.Count(model.EntrySkipped),
		"pending", summary.Count(model.EntryPending),
		"failed", summary.Count(model.EntryFailed),
	)
	return nil
}
