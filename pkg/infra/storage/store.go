package storage

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/coresync/pkg/domain/model"
	"github.com/m-mizutani/coresync/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

const (
	coresDir       = "Cores"
	metadataFile   = "core.json"
	archiveFile    = "core.zip"
	stagingPattern = ".coresync-staging-*"
)

// Store is the local installation tree rooted at a directory, typically the
// root of an SD card
type Store struct {
	root string
}

// New creates a Store rooted at root
func New(root string) *Store {
	return &Store{root: root}
}

// ArchivePath returns the fixed path of the downloaded archive
func (s *Store) ArchivePath() string {
	return filepath.Join(s.root, archiveFile)
}

// MetadataPath returns the path of the metadata file of core name
func (s *Store) MetadataPath(name string) string {
	return filepath.Join(s.root, coresDir, name, metadataFile)
}

type coreMetadata struct {
	Core struct {
		Metadata struct {
			Version any `json:"version"`
		} `json:"metadata"`
	} `json:"core"`
}

// LoadCoreRecord reads Cores/<name>/core.json. It returns nil when the file
// does not exist. A file that cannot be parsed or has no string version
// yields a record with an empty version.
func (s *Store) LoadCoreRecord(ctx context.Context, name string) (*model.LocalCoreRecord, error) {
	logger := ctxlog.From(ctx)
	path := s.MetadataPath(name)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to read core metadata", goerr.V("path", path))
	}

	record := &model.LocalCoreRecord{Path: path}

	var meta coreMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		logger.Warn("Core metadata is not valid JSON", "path", path, "error", err)
		return record, nil
	}

	version, ok := meta.Core.Metadata.Version.(string)
	if !ok {
		logger.Warn("Core metadata has no version string", "path", path)
		return record, nil
	}
	record.VersionString = version

	return record, nil
}

// Install extracts the archive into a staging directory and then moves the
// staged files over the installation tree. A failed extraction leaves the
// tree untouched.
func (s *Store) Install(ctx context.Context, archivePath string) (*model.InstallResult, error) {
	logger := ctxlog.From(ctx)

	if err := os.MkdirAll(s.root, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create install root",
			goerr.T(types.ErrTagExtract),
			goerr.V("root", s.root),
		)
	}

	staging, err := os.MkdirTemp(s.root, stagingPattern)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create staging directory",
			goerr.T(types.ErrTagExtract),
			goerr.V("root", s.root),
		)
	}
	defer func() {
		if err := os.RemoveAll(staging); err != nil {
			logger.Warn("Failed to remove staging directory", "path", staging, "error", err)
		}
	}()

	logger.Debug("Created staging directory", "staging_dir", staging)

	result, err := extractZip(archivePath, staging)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to extract archive",
			goerr.T(types.ErrTagExtract),
			goerr.V("archive", archivePath),
		)
	}

	for _, rel := range result.Files {
		src := filepath.Join(staging, rel)
		dst := filepath.Join(s.root, rel)

		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return nil, goerr.Wrap(err, "failed to create parent directories",
				goerr.T(types.ErrTagExtract),
				goerr.V("path", filepath.Dir(dst)),
			)
		}
		if err := os.Rename(src, dst); err != nil {
			return nil, goerr.Wrap(err, "failed to move staged file into place",
				goerr.T(types.ErrTagExtract),
				goerr.V("src", src),
				goerr.V("dst", dst),
			)
		}
	}

	logger.Debug("Installed archive",
		"archive", archivePath,
		"file_count", len(result.Files),
		"total_size_bytes", result.Size,
	)

	return result, nil
}

// extractZip extracts regular files and directories of the archive into
// destDir. Result file paths are relative to destDir.
func extractZip(archivePath, destDir string) (*model.InstallResult, error) {
	zipReader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open zip archive")
	}
	defer zipReader.Close()

	result := &model.InstallResult{}
	seen := make(map[string]bool)
	for _, file := range zipReader.File {
		mode := file.FileInfo().Mode()
		if !mode.IsDir() && !mode.IsRegular() {
			// Symlinks and devices are not part of a core package
			continue
		}

		rel, err := extractFile(file, destDir)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to extract file", goerr.V("name", file.Name))
		}
		if mode.IsDir() || seen[rel] {
			continue
		}
		seen[rel] = true

		result.Files = append(result.Files, rel)
		result.Size += int64(file.UncompressedSize64)
	}

	return result, nil
}

// extractFile extracts a single entry and returns its path relative to destDir
func extractFile(file *zip.File, destDir string) (string, error) {
	// Reject entries escaping destDir
	destPath := filepath.Join(destDir, file.Name)
	if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", goerr.New("invalid file path in archive",
			goerr.V("file", file.Name),
			goerr.V("dest", destPath),
		)
	}
	rel, err := filepath.Rel(destDir, destPath)
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve relative path", goerr.V("file", file.Name))
	}

	if file.FileInfo().IsDir() {
		return rel, os.MkdirAll(destPath, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return "", goerr.Wrap(err, "failed to create parent directories", goerr.V("path", filepath.Dir(destPath)))
	}

	rc, err := file.Open()
	if err != nil {
		return "", goerr.Wrap(err, "failed to open file in zip", goerr.V("file", file.Name))
	}
	defer rc.Close()

	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.Mode().Perm()|0600)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create destination file", goerr.V("path", destPath))
	}

	if err := writeEntry(destFile, rc); err != nil {
		return "", goerr.Wrap(err, "failed to write file content", goerr.V("path", destPath))
	}

	return rel, nil
}

// writeEntry copies src into dst and closes dst. A failed close means the
// staged file may be truncated, so it is an error like a failed copy.
func writeEntry(dst io.WriteCloser, src io.Reader) error {
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return goerr.Wrap(err, "failed to copy file content")
	}
	if err := dst.Close(); err != nil {
		return goerr.Wrap(err, "failed to close file")
	}
	return nil
}
