package usecase

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/coresync/pkg/domain/interfaces"
	"github.com/m-mizutani/coresync/pkg/domain/model"
	"github.com/m-mizutani/coresync/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type updateUseCase struct {
	client        interfaces.ReleaseClient
	store         interfaces.CoreStore
	reporter      interfaces.Reporter
	policy        model.AssetPolicy
	dryRun        bool
	keepGoing     bool
	runID         string
	errorReporter interfaces.ErrorReporter
	notifier      interfaces.Notifier
}

// UpdateOption is a functional option for the update use case
type UpdateOption func(*updateUseCase)

// WithAssetPolicy sets how the core archive is picked from release assets
func WithAssetPolicy(policy model.AssetPolicy) UpdateOption {
	return func(uc *updateUseCase) {
		uc.policy = policy
	}
}

// WithDryRun resolves every entry without downloading or installing
func WithDryRun(dryRun bool) UpdateOption {
	return func(uc *updateUseCase) {
		uc.dryRun = dryRun
	}
}

// WithKeepGoing treats API error payloads as a failure of the entry instead
// of aborting the run
func WithKeepGoing(keepGoing bool) UpdateOption {
	return func(uc *updateUseCase) {
		uc.keepGoing = keepGoing
	}
}

// WithRunID sets the identifier of the run reported in the summary
func WithRunID(runID string) UpdateOption {
	return func(uc *updateUseCase) {
		uc.runID = runID
	}
}

// WithErrorReporter forwards entry failures to r
func WithErrorReporter(r interfaces.ErrorReporter) UpdateOption {
	return func(uc *updateUseCase) {
		uc.errorReporter = r
	}
}

// WithNotifier delivers the run summary to n after the run
func WithNotifier(n interfaces.Notifier) UpdateOption {
	return func(uc *updateUseCase) {
		uc.notifier = n
	}
}

// NewUpdate creates a new instance of UpdateUseCase
func NewUpdate(
	client interfaces.ReleaseClient,
	store interfaces.CoreStore,
	reporter interfaces.Reporter,
	opts ...UpdateOption,
) interfaces.UpdateUseCase {
	uc := &updateUseCase{
		client:   client,
		store:    store,
		reporter: reporter,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Update processes entries one by one. Entry failures are recorded in the
// summary; an API error payload aborts the remaining entries unless
// keep-going is enabled.
func (uc *updateUseCase) Update(ctx context.Context, entries []*model.RepoEntry) (*model.RunSummary, error) {
	logger := ctxlog.From(ctx)
	summary := &model.RunSummary{RunID: uc.runID}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			uc.finish(ctx, summary)
			return summary, goerr.Wrap(err, "update run interrupted")
		}

		result := uc.processEntry(ctx, entry)
		summary.Results = append(summary.Results, result)

		if result.Err == nil {
			logger.Debug("Processed entry",
				"repository", entry.String(),
				"name", result.Name,
				"tag", result.Tag,
				"decision", result.Decision,
				"status", result.Status,
			)
			continue
		}

		logger.Error("Failed to process entry",
			"error", result.Err,
			"repository", entry.String(),
		)
		uc.reporter.Failed(entry, result.Err)
		if uc.errorReporter != nil {
			uc.errorReporter.ReportError(ctx, entry, result.Err)
		}

		if goerr.HasTag(result.Err, types.ErrTagAPIError) && !uc.keepGoing {
			uc.finish(ctx, summary)
			return summary, goerr.Wrap(result.Err, "aborted update run on API error",
				goerr.V("repository", entry.String()),
			)
		}
	}

	uc.finish(ctx, summary)
	return summary, nil
}

func (uc *updateUseCase) finish(ctx context.Context, summary *model.RunSummary) {
	uc.reporter.Summary(summary)

	if uc.notifier == nil {
		return
	}
	if err := uc.notifier.Notify(ctx, summary); err != nil {
		ctxlog.From(ctx).Warn("Failed to send run summary", "error", err)
	}
}

func (uc *updateUseCase) processEntry(ctx context.Context, entry *model.RepoEntry) *model.EntryResult {
	logger := ctxlog.From(ctx)
	result := &model.EntryResult{Entry: entry}
	fail := func(err error) *model.EntryResult {
		result.Status = model.EntryFailed
		result.Err = err
		return result
	}

	releases, err := uc.client.ListReleases(ctx, entry.Owner, entry.Project)
	if err != nil {
		return fail(err)
	}

	release := model.SelectRelease(releases, entry.AllowPrerelease)
	if release == nil {
		return fail(goerr.New("no matching release",
			goerr.T(types.ErrTagNoRelease),
			goerr.V("repository", entry.String()),
			goerr.V("release_count", len(releases)),
			goerr.V("allow_prerelease", entry.AllowPrerelease),
		))
	}
	result.Tag = release.Tag

	asset := uc.policy.Select(release.Assets)
	if asset == nil {
		return fail(goerr.New("no downloadable archive found",
			goerr.T(types.ErrTagNoAsset),
			goerr.V("repository", entry.String()),
			goerr.V("tag", release.Tag),
		))
	}

	name := model.DisplayName(entry, asset)
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return fail(goerr.New("cannot derive core name from asset",
			goerr.T(types.ErrTagNoAsset),
			goerr.V("asset", asset.Name),
		))
	}
	result.Name = name

	uc.reporter.ReleaseFound(entry, release)

	local, err := uc.store.LoadCoreRecord(ctx, name)
	if err != nil {
		return fail(err)
	}
	if local != nil {
		version := local.VersionString
		if v, ok := model.ExtractVersion(version); ok {
			version = v.String()
		}
		uc.reporter.LocalCoreFound(name, version)
	}

	result.Decision = model.Decide(local, release)
	logger.Debug("Resolved update decision",
		"repository", entry.String(),
		"name", name,
		"tag", release.Tag,
		"asset", asset.Name,
		"decision", result.Decision,
	)

	switch result.Decision {
	case model.DecisionSkip:
		uc.reporter.UpToDate()
		result.Status = model.EntrySkipped
		return result
	case model.DecisionUnversioned:
		uc.reporter.Unversioned()
	}

	if uc.dryRun {
		uc.reporter.WouldDownload(asset.DownloadURL)
		result.Status = model.EntryPending
		return result
	}

	uc.reporter.Downloading(asset.DownloadURL)
	if err := uc.install(ctx, asset); err != nil {
		return fail(err)
	}

	result.Status = model.EntryUpdated
	return result
}

// install downloads the asset to the temporary archive, extracts it over the
// installation tree and removes the archive
func (uc *updateUseCase) install(ctx context.Context, asset *model.AssetInfo) error {
	logger := ctxlog.From(ctx)
	archivePath := uc.store.ArchivePath()

	// The install root may not exist before the first core lands in it
	if err := os.MkdirAll(filepath.Dir(archivePath), 0755); err != nil {
		return goerr.Wrap(err, "failed to create install root",
			goerr.T(types.ErrTagDownload),
			goerr.V("path", filepath.Dir(archivePath)),
		)
	}

	f, err := os.Create(archivePath)
	if err != nil {
		return goerr.Wrap(err, "failed to create archive file",
			goerr.T(types.ErrTagDownload),
			goerr.V("path", archivePath),
		)
	}
	defer func() {
		if err := os.Remove(archivePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Failed to remove archive", "path", archivePath, "error", err)
		}
	}()

	size, err := uc.client.DownloadAsset(ctx, asset.DownloadURL, f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return goerr.Wrap(err, "failed to download core archive",
			goerr.T(types.ErrTagDownload),
			goerr.V("url", asset.DownloadURL),
		)
	}

	logger.Info("Downloaded core archive",
		"asset", asset.Name,
		"size_bytes", size,
	)

	installed, err := uc.store.Install(ctx, archivePath)
	if err != nil {
		return goerr.Wrap(err, "failed to install core archive",
			goerr.T(types.ErrTagExtract),
			goerr.V("asset", asset.Name),
		)
	}

	logger.Info("Installed core archive",
		"asset", asset.Name,
		"file_count", len(installed.Files),
		"total_size_bytes", installed.Size,
	)
	return nil
}
