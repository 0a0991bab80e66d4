package interfaces

//go:generate moq -out mocks/github_mock.go -pkg mocks . ReleaseClient

import (
	"context"
	"io"

	"github.com/m-mizutani/coresync/pkg/domain/model"
)

// ReleaseClient defines operations for reading releases from the hosting service
type ReleaseClient interface {
	// ListReleases returns releases of the repository, newest first
	ListReleases(ctx context.Context, owner, project string) ([]*model.ReleaseInfo, error)

	// DownloadAsset writes the content at downloadURL to w and returns the number of bytes written
	DownloadAsset(ctx context.Context, downloadURL string, w io.Writer) (int64, error)
}
