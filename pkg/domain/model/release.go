package model

// ReleaseInfo represents one release reported by the hosting API
type ReleaseInfo struct {
	Tag          string
	IsDraft      bool
	IsPrerelease bool
	Assets       []*AssetInfo
}

// AssetInfo represents one downloadable file attached to a release
type AssetInfo struct {
	Name        string
	ContentType string
	DownloadURL string
}

// SelectRelease returns the first release that is not a draft and, unless
// allowPrerelease is set, not a prerelease. releases must be ordered newest
// first. It returns nil when nothing remains.
func SelectRelease(releases []*ReleaseInfo, allowPrerelease bool) *ReleaseInfo {
	for _, r := range releases {
		if r == nil || r.IsDraft {
			continue
		}
		if r.IsPrerelease && !allowPrerelease {
			continue
		}
		return r
	}
	return nil
}
