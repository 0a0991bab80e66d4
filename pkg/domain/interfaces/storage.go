package interfaces

//go:generate moq -out mocks/storage_mock.go -pkg mocks . CoreStore

import (
	"context"

	"github.com/m-mizutani/coresync/pkg/domain/model"
)

// CoreStore defines operations on the local core installation tree
type CoreStore interface {
	// LoadCoreRecord reads the metadata of an installed core. It returns nil without error when the core is not installed.
	LoadCoreRecord(ctx context.Context, name string) (*model.LocalCoreRecord, error)

	// ArchivePath returns the path of the temporary archive file
	ArchivePath() string

	// Install extracts the archive at archivePath over the installation tree
	Install(ctx context.Context, archivePath string) (*model.InstallResult, error)
}
