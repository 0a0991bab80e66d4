package model

import (
	"mime"
	"strings"
)

// DefaultZipContentTypes are content types accepted as a packaged core archive
var DefaultZipContentTypes = []string{
	"application/x-zip-compressed",
	"application/zip",
}

// AssetPolicy decides which release asset is the core archive
type AssetPolicy struct {
	ContentTypes   []string // Accepted content types, DefaultZipContentTypes when empty
	MatchExtension bool     // Also accept assets whose name ends with ".zip"
}

// Select returns the first asset in order that matches the policy, or nil
func (p AssetPolicy) Select(assets []*AssetInfo) *AssetInfo {
	types := p.ContentTypes
	if len(types) == 0 {
		types = DefaultZipContentTypes
	}

	for _, a := range assets {
		if a == nil {
			continue
		}
		if matchContentType(a.ContentType, types) {
			return a
		}
		if p.MatchExtension && strings.HasSuffix(strings.ToLower(a.Name), ".zip") {
			return a
		}
	}
	return nil
}

func matchContentType(contentType string, accepted []string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(contentType)
	}
	for _, t := range accepted {
		if strings.EqualFold(mediaType, strings.TrimSpace(t)) {
			return true
		}
	}
	return false
}

// DisplayName returns the local core name for an entry: the configured
// override, or the asset file name up to the first underscore.
func DisplayName(entry *RepoEntry, asset *AssetInfo) string {
	if entry.DisplayName != "" {
		return entry.DisplayName
	}
	name, _, _ := strings.Cut(asset.Name, "_")
	return name
}
