package model

import "fmt"

// RepoEntry is one configured repository to keep up to date
type RepoEntry struct {
	Owner           string // Hosting account or organization
	Project         string // Repository name
	DisplayName     string // Optional override for the local core directory name
	AllowPrerelease bool   // Accept releases marked as prerelease
}

// String returns "owner/project"
func (e *RepoEntry) String() string {
	return fmt.Sprintf("%s/%s", e.Owner, e.Project)
}
