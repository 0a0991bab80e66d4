package usecase_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/coresync/pkg/domain/interfaces/mocks"
	"github.com/m-mizutani/coresync/pkg/domain/model"
	"github.com/m-mizutani/coresync/pkg/domain/types"
	"github.com/m-mizutani/coresync/pkg/infra/console"
	"github.com/m-mizutani/coresync/pkg/infra/storage"
	"github.com/m-mizutani/coresync/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

const zipURL = "https://example.com/MyCore_1.1.0.zip"

// createCoreZip creates a core package archive declaring version
func createCoreZip(t *testing.T, name, version string) []byte {
	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	files := map[string]string{
		"Cores/" + name + "/core.json":     `{"core": {"metadata": {"version": "` + version + `"}}}`,
		"Cores/" + name + "/bitstream.rbf": "bits",
	}
	for filename, content := range files {
		writer, err := zipWriter.Create(filename)
		gt.NoError(t, err)
		_, err = writer.Write([]byte(content))
		gt.NoError(t, err)
	}
	gt.NoError(t, zipWriter.Close())
	return buf.Bytes()
}

func writeLocalCore(t *testing.T, root, name, version string) {
	dir := filepath.Join(root, "Cores", name)
	gt.NoError(t, os.MkdirAll(dir, 0755))
	content := `{"core": {"metadata": {"version": "` + version + `"}}}`
	gt.NoError(t, os.WriteFile(filepath.Join(dir, "core.json"), []byte(content), 0644))
}

func releaseWithZip(tag string) *model.ReleaseInfo {
	return &model.ReleaseInfo{
		Tag: tag,
		Assets: []*model.AssetInfo{
			{Name: "notes.txt", ContentType: "text/plain", DownloadURL: "https://example.com/notes.txt"},
			{Name: "MyCore_1.1.0.zip", ContentType: "application/x-zip-compressed", DownloadURL: zipURL},
		},
	}
}

func newClient(t *testing.T, releases map[string][]*model.ReleaseInfo, zipData []byte) *mocks.ReleaseClientMock {
	return &mocks.ReleaseClientMock{
		ListReleasesFunc: func(ctx context.Context, owner, project string) ([]*model.ReleaseInfo, error) {
			if owner == "broken" {
				return nil, goerr.New("API rate limit exceeded", goerr.T(types.ErrTagAPIError))
			}
			return releases[owner+"/"+project], nil
		},
		DownloadAssetFunc: func(ctx context.Context, downloadURL string, w io.Writer) (int64, error) {
			n, err := w.Write(zipData)
			return int64(n), err
		},
	}
}

func readVersion(t *testing.T, store *storage.Store, name string) string {
	record, err := store.LoadCoreRecord(context.Background(), name)
	gt.NoError(t, err)
	gt.Value(t, record).NotNil()
	return record.VersionString
}

func TestUpdateUseCase_FreshInstall(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store := storage.New(root)
	var out bytes.Buffer

	client := newClient(t, map[string][]*model.ReleaseInfo{
		"me/my-core": {releaseWithZip("v1.1.0")},
	}, createCoreZip(t, "MyCore", "1.1.0"))

	uc := usecase.NewUpdate(client, store, console.NewReporter(&out, true), usecase.WithRunID("run-1"))
	summary, err := uc.Update(ctx, []*model.RepoEntry{{Owner: "me", Project: "my-core"}})
	gt.NoError(t, err)

	gt.Value(t, summary.RunID).Equal("run-1")
	gt.Number(t, len(summary.Results)).Equal(1)
	gt.Value(t, summary.Results[0].Status).Equal(model.EntryUpdated)
	gt.Value(t, summary.Results[0].Decision).Equal(model.DecisionInstall)
	gt.Value(t, summary.Results[0].Name).Equal("MyCore")

	gt.Number(t, len(client.DownloadAssetCalls())).Equal(1)
	gt.Value(t, client.DownloadAssetCalls()[0].DownloadURL).Equal(zipURL)
	gt.Value(t, readVersion(t, store, "MyCore")).Equal("1.1.0")

	_, statErr := os.Stat(store.ArchivePath())
	gt.Value(t, os.IsNotExist(statErr)).Equal(true)

	gt.String(t, out.String()).Contains("Updating core, downloading " + zipURL)
	gt.String(t, out.String()).Contains("1 updated, 0 up to date, 0 pending, 0 failed")
}

func TestUpdateUseCase_CreatesMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "sdcard", "fresh")
	store := storage.New(root)
	var out bytes.Buffer

	client := newClient(t, map[string][]*model.ReleaseInfo{
		"me/my-core": {releaseWithZip("v1.1.0")},
	}, createCoreZip(t, "MyCore", "1.1.0"))

	uc := usecase.NewUpdate(client, store, console.NewReporter(&out, true))
	summary, err := uc.Update(context.Background(), []*model.RepoEntry{{Owner: "me", Project: "my-core"}})
	gt.NoError(t, err)

	gt.Value(t, summary.Results[0].Err).Nil()
	gt.Value(t, summary.Results[0].Status).Equal(model.EntryUpdated)
	gt.Value(t, readVersion(t, store, "MyCore")).Equal("1.1.0")
}

func TestUpdateUseCase_Decisions(t *testing.T) {
	tests := []struct {
		name       string
		local      string
		tag        string
		status     model.EntryStatus
		decision   model.Decision
		downloaded bool
		message    string
	}{
		{
			name:       "up to date",
			local:      "1.1.0",
			tag:        "v1.1.0",
			status:     model.EntrySkipped,
			decision:   model.DecisionSkip,
			downloaded: false,
			message:    "Up to date, skipping core.",
		},
		{
			name:       "local newer than release",
			local:      "1.2.0",
			tag:        "v1.1.0",
			status:     model.EntrySkipped,
			decision:   model.DecisionSkip,
			downloaded: false,
			message:    "Local core found: MyCore v1.2.0",
		},
		{
			name:       "upgrade",
			local:      "1.0",
			tag:        "v1.1.0",
			status:     model.EntryUpdated,
			decision:   model.DecisionUpgrade,
			downloaded: true,
			message:    "Local core found: MyCore v1.0.0",
		},
		{
			name:       "unversioned local core",
			local:      "beta",
			tag:        "v1.1.0",
			status:     model.EntryUpdated,
			decision:   model.DecisionUnversioned,
			downloaded: true,
			message:    "Core not semver'd, downloading just in case...",
		},
		{
			name:       "unversioned release",
			local:      "1.1.0",
			tag:        "nightly",
			status:     model.EntryUpdated,
			decision:   model.DecisionUnversioned,
			downloaded: true,
			message:    "Core not semver'd, downloading just in case...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			store := storage.New(root)
			writeLocalCore(t, root, "MyCore", tt.local)
			var out bytes.Buffer

			client := newClient(t, map[string][]*model.ReleaseInfo{
				"me/my-core": {releaseWithZip(tt.tag)},
			}, createCoreZip(t, "MyCore", "1.1.0"))

			uc := usecase.NewUpdate(client, store, console.NewReporter(&out, true))
			summary, err := uc.Update(context.Background(), []*model.RepoEntry{{Owner: "me", Project: "my-core"}})
			gt.NoError(t, err)

			result := summary.Results[0]
			gt.Value(t, result.Status).Equal(tt.status)
			gt.Value(t, result.Decision).Equal(tt.decision)
			gt.Value(t, len(client.DownloadAssetCalls()) > 0).Equal(tt.downloaded)
			gt.String(t, out.String()).Contains(tt.message)

			if tt.downloaded {
				gt.Value(t, readVersion(t, store, "MyCore")).Equal("1.1.0")
			} else {
				gt.Value(t, readVersion(t, store, "MyCore")).Equal(tt.local)
			}
		})
	}
}

func TestUpdateUseCase_EntryFailuresContinue(t *testing.T) {
	root := t.TempDir()
	store := storage.New(root)
	var out bytes.Buffer

	client := newClient(t, map[string][]*model.ReleaseInfo{
		"me/drafts": {{Tag: "v2.0.0", IsDraft: true}},
		"me/no-zip": {{Tag: "v1.0.0", Assets: []*model.AssetInfo{
			{Name: "notes.txt", ContentType: "text/plain"},
		}}},
		"me/my-core": {releaseWithZip("v1.1.0")},
	}, createCoreZip(t, "MyCore", "1.1.0"))

	uc := usecase.NewUpdate(client, store, console.NewReporter(&out, true))
	summary, err := uc.Update(context.Background(), []*model.RepoEntry{
		{Owner: "me", Project: "drafts"},
		{Owner: "me", Project: "no-zip"},
		{Owner: "me", Project: "my-core"},
	})
	gt.NoError(t, err)

	gt.Number(t, len(summary.Results)).Equal(3)
	gt.Value(t, goerr.HasTag(summary.Results[0].Err, types.ErrTagNoRelease)).Equal(true)
	gt.Value(t, goerr.HasTag(summary.Results[1].Err, types.ErrTagNoAsset)).Equal(true)
	gt.Value(t, summary.Results[2].Status).Equal(model.EntryUpdated)
	gt.Number(t, len(summary.Failed())).Equal(2)

	gt.String(t, out.String()).Contains("me/drafts: no matching release")
	gt.String(t, out.String()).Contains("me/no-zip: no downloadable archive found")
}

func TestUpdateUseCase_APIErrorAbortsRun(t *testing.T) {
	var out bytes.Buffer
	client := newClient(t, map[string][]*model.ReleaseInfo{
		"me/my-core": {releaseWithZip("v1.1.0")},
	}, createCoreZip(t, "MyCore", "1.1.0"))

	uc := usecase.NewUpdate(client, storage.New(t.TempDir()), console.NewReporter(&out, true))
	summary, err := uc.Update(context.Background(), []*model.RepoEntry{
		{Owner: "broken", Project: "repo"},
		{Owner: "me", Project: "my-core"},
	})

	gt.Error(t, err)
	gt.Value(t, goerr.HasTag(err, types.ErrTagAPIError)).Equal(true)
	gt.Number(t, len(summary.Results)).Equal(1)
	gt.Number(t, len(client.ListReleasesCalls())).Equal(1)
	gt.String(t, out.String()).Contains("API rate limit exceeded")
}

func TestUpdateUseCase_APIErrorKeepGoing(t *testing.T) {
	var out bytes.Buffer
	client := newClient(t, map[string][]*model.ReleaseInfo{
		"me/my-core": {releaseWithZip("v1.1.0")},
	}, createCoreZip(t, "MyCore", "1.1.0"))

	uc := usecase.NewUpdate(client, storage.New(t.TempDir()), console.NewReporter(&out, true),
		usecase.WithKeepGoing(true),
	)
	summary, err := uc.Update(context.Background(), []*model.RepoEntry{
		{Owner: "broken", Project: "repo"},
		{Owner: "me", Project: "my-core"},
	})

	gt.NoError(t, err)
	gt.Number(t, len(summary.Results)).Equal(2)
	gt.Value(t, summary.Results[0].Status).Equal(model.EntryFailed)
	gt.Value(t, summary.Results[1].Status).Equal(model.EntryUpdated)
}

func TestUpdateUseCase_DryRun(t *testing.T) {
	root := t.TempDir()
	store := storage.New(root)
	var out bytes.Buffer

	client := newClient(t, map[string][]*model.ReleaseInfo{
		"me/my-core": {releaseWithZip("v1.1.0")},
	}, createCoreZip(t, "MyCore", "1.1.0"))

	uc := usecase.NewUpdate(client, store, console.NewReporter(&out, true), usecase.WithDryRun(true))
	summary, err := uc.Update(context.Background(), []*model.RepoEntry{{Owner: "me", Project: "my-core"}})
	gt.NoError(t, err)

	gt.Value(t, summary.Results[0].Status).Equal(model.EntryPending)
	gt.Number(t, len(client.DownloadAssetCalls())).Equal(0)
	gt.String(t, out.String()).Contains("would download " + zipURL)

	record, err := store.LoadCoreRecord(context.Background(), "MyCore")
	gt.NoError(t, err)
	gt.Value(t, record).Nil()
}

func TestUpdateUseCase_DownloadFailureKeepsInstall(t *testing.T) {
	root := t.TempDir()
	store := storage.New(root)
	writeLocalCore(t, root, "MyCore", "1.0.0")
	var out bytes.Buffer

	client := &mocks.ReleaseClientMock{
		ListReleasesFunc: func(ctx context.Context, owner, project string) ([]*model.ReleaseInfo, error) {
			return []*model.ReleaseInfo{releaseWithZip("v1.1.0")}, nil
		},
		DownloadAssetFunc: func(ctx context.Context, downloadURL string, w io.Writer) (int64, error) {
			_, _ = w.Write([]byte("partial"))
			return 7, errors.New("connection reset")
		},
	}

	uc := usecase.NewUpdate(client, store, console.NewReporter(&out, true))
	summary, err := uc.Update(context.Background(), []*model.RepoEntry{{Owner: "me", Project: "my-core"}})
	gt.NoError(t, err)

	gt.Value(t, summary.Results[0].Status).Equal(model.EntryFailed)
	gt.Value(t, goerr.HasTag(summary.Results[0].Err, types.ErrTagDownload)).Equal(true)
	gt.Value(t, readVersion(t, store, "MyCore")).Equal("1.0.0")

	_, statErr := os.Stat(store.ArchivePath())
	gt.Value(t, os.IsNotExist(statErr)).Equal(true)
}

func TestUpdateUseCase_CorruptArchive(t *testing.T) {
	root := t.TempDir()
	store := storage.New(root)
	writeLocalCore(t, root, "MyCore", "1.0.0")
	var out bytes.Buffer

	client := newClient(t, map[string][]*model.ReleaseInfo{
		"me/my-core": {releaseWithZip("v1.1.0")},
	}, []byte("this is not valid zip data"))

	uc := usecase.NewUpdate(client, store, console.NewReporter(&out, true))
	summary, err := uc.Update(context.Background(), []*model.RepoEntry{{Owner: "me", Project: "my-core"}})
	gt.NoError(t, err)

	gt.Value(t, goerr.HasTag(summary.Results[0].Err, types.ErrTagExtract)).Equal(true)
	gt.Value(t, readVersion(t, store, "MyCore")).Equal("1.0.0")
}

func TestUpdateUseCase_StoreError(t *testing.T) {
	var out bytes.Buffer
	client := newClient(t, map[string][]*model.ReleaseInfo{
		"me/my-core": {releaseWithZip("v1.1.0")},
	}, nil)
	store := &mocks.CoreStoreMock{
		LoadCoreRecordFunc: func(ctx context.Context, name string) (*model.LocalCoreRecord, error) {
			return nil, errors.New("permission denied")
		},
	}

	uc := usecase.NewUpdate(client, store, console.NewReporter(&out, true))
	summary, err := uc.Update(context.Background(), []*model.RepoEntry{{Owner: "me", Project: "my-core"}})
	gt.NoError(t, err)

	gt.Value(t, summary.Results[0].Status).Equal(model.EntryFailed)
	gt.Number(t, len(store.LoadCoreRecordCalls())).Equal(1)
	gt.Value(t, store.LoadCoreRecordCalls()[0].Name).Equal("MyCore")
	gt.Number(t, len(client.DownloadAssetCalls())).Equal(0)
}

type recordingNotifier struct {
	summaries []*model.RunSummary
}

func (n *recordingNotifier) Notify(ctx context.Context, summary *model.RunSummary) error {
	n.summaries = append(n.summaries, summary)
	return errors.New("notification failures are only logged")
}

type recordingErrorReporter struct {
	entries []*model.RepoEntry
}

func (r *recordingErrorReporter) ReportError(ctx context.Context, entry *model.RepoEntry, err error) {
	r.entries = append(r.entries, entry)
}

func TestUpdateUseCase_NotifierAndErrorReporter(t *testing.T) {
	var out bytes.Buffer
	client := newClient(t, map[string][]*model.ReleaseInfo{
		"me/my-core": {releaseWithZip("v1.1.0")},
	}, createCoreZip(t, "MyCore", "1.1.0"))
	notifier := &recordingNotifier{}
	errReporter := &recordingErrorReporter{}

	entries := []*model.RepoEntry{
		{Owner: "me", Project: "missing"},
		{Owner: "me", Project: "my-core"},
	}
	uc := usecase.NewUpdate(client, storage.New(t.TempDir()), console.NewReporter(&out, true),
		usecase.WithNotifier(notifier),
		usecase.WithErrorReporter(errReporter),
	)
	summary, err := uc.Update(context.Background(), entries)
	gt.NoError(t, err)

	gt.Number(t, len(notifier.summaries)).Equal(1)
	gt.Value(t, notifier.summaries[0]).Equal(summary)
	gt.Number(t, len(errReporter.entries)).Equal(1)
	gt.Value(t, errReporter.entries[0]).Equal(entries[0])
}

func TestUpdateUseCase_CancelledContext(t *testing.T) {
	var out bytes.Buffer
	client := newClient(t, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	uc := usecase.NewUpdate(client, storage.New(t.TempDir()), console.NewReporter(&out, true))
	summary, err := uc.Update(ctx, []*model.RepoEntry{{Owner: "me", Project: "my-core"}})
	gt.Error(t, err)
	gt.Number(t, len(summary.Results)).Equal(0)
	gt.Number(t, len(client.ListReleasesCalls())).Equal(0)
}
