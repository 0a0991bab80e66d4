package model

// InstallResult describes files placed by an archive extraction
type InstallResult struct {
	Files []string // Extracted file paths relative to the install root
	Size  int64    // Total uncompressed size in bytes
}

// EntryStatus is the final state of one processed entry
type EntryStatus string

const (
	EntryUpdated EntryStatus = "updated"
	EntrySkipped EntryStatus = "skipped"
	EntryPending EntryStatus = "pending" // Update needed but not applied (dry run)
	EntryFailed  EntryStatus = "failed"
)

// EntryResult is the outcome of processing one RepoEntry
type EntryResult struct {
	Entry    *RepoEntry
	Name     string   // Resolved display name, empty if resolution failed early
	Tag      string   // Selected release tag
	Decision Decision // Empty if resolution failed before deciding
	Status   EntryStatus
	Err      error
}

// RunSummary collects results of one update pass
type RunSummary struct {
	RunID   string
	Results []*EntryResult
}

// Count returns the number of results with the given status
func (s *RunSummary) Count(status EntryStatus) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// Failed returns results that ended in failure
func (s *RunSummary) Failed() []*EntryResult {
	var out []*EntryResult
	for _, r := range s.Results {
		if r.Status == EntryFailed {
			out = append(out, r)
		}
	}
	return out
}
