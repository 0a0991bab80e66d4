package interfaces

import (
	"context"

	"github.com/m-mizutani/coresync/pkg/domain/model"
)

// UpdateUseCase defines the update pass over configured entries
type UpdateUseCase interface {
	// Update processes entries sequentially. The returned error is only set when the run was aborted.
	Update(ctx context.Context, entries []*model.RepoEntry) (*model.RunSummary, error)
}

// Reporter receives human readable progress of an update pass
type Reporter interface {
	ReleaseFound(entry *model.RepoEntry, release *model.ReleaseInfo)
	LocalCoreFound(name string, version string)
	Unversioned()
	Downloading(url string)
	WouldDownload(url string)
	UpToDate()
	Failed(entry *model.RepoEntry, err error)
	Summary(summary *model.RunSummary)
}

// Notifier delivers a run summary to an external channel
type Notifier interface {
	Notify(ctx context.Context, summary *model.RunSummary) error
}

// ErrorReporter forwards per-entry failures to an error tracking service
type ErrorReporter interface {
	ReportError(ctx context.Context, entry *model.RepoEntry, err error)
}
