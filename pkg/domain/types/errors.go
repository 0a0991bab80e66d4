package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrTagConfig marks an unusable configuration file
	ErrTagConfig = goerr.NewTag("config")
	// ErrTagAPIError marks an error object returned by the hosting API
	ErrTagAPIError = goerr.NewTag("api_error")
	// ErrTagNoRelease marks an entry without any applicable release
	ErrTagNoRelease = goerr.NewTag("no_release")
	// ErrTagNoAsset marks a release without a downloadable archive
	ErrTagNoAsset = goerr.NewTag("no_asset")
	// ErrTagDownload marks a failed asset download
	ErrTagDownload = goerr.NewTag("download")
	// ErrTagExtract marks a failed archive extraction
	ErrTagExtract = goerr.NewTag("extract")
)
