package model

// LocalCoreRecord holds the installed version of a core as found in its
// metadata file
type LocalCoreRecord struct {
	Path          string // Path of the metadata file
	VersionString string // Raw core.metadata.version value, empty if unreadable
}

// Decision is the outcome of comparing a local core with a release
type Decision string

const (
	DecisionInstall     Decision = "install"     // No local core, fresh install
	DecisionUpgrade     Decision = "upgrade"     // Release is newer than the local core
	DecisionUnversioned Decision = "unversioned" // Versions cannot be compared, update anyway
	DecisionSkip        Decision = "skip"        // Local core is up to date
)

// NeedsUpdate reports whether the decision requires a download
func (d Decision) NeedsUpdate() bool {
	switch d {
	case DecisionInstall, DecisionUpgrade, DecisionUnversioned:
		return true
	default:
		return false
	}
}

// Decide compares the local core with the chosen release. A missing local
// record always installs. When either version is unknown the core is
// updated anyway.
func Decide(local *LocalCoreRecord, release *ReleaseInfo) Decision {
	if local == nil {
		return DecisionInstall
	}

	localVer, localOK := ExtractVersion(local.VersionString)
	releaseVer, releaseOK := ExtractVersion(release.Tag)
	if !localOK || !releaseOK {
		return DecisionUnversioned
	}

	if releaseVer.NewerThan(localVer) {
		return DecisionUpgrade
	}
	return DecisionSkip
}
