package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	// versionFinder captures the first dotted numeric run, e.g. "1.2.3" in "v1.2.3-rc"
	versionFinder = regexp.MustCompile(`\d+(?:\.\d+)+`)
	strictVersion = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
)

// Version is a normalized major.minor.patch triple
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// String returns "major.minor.patch"
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// NewerThan reports whether v is strictly greater than other. Equal versions
// are not newer.
func (v Version) NewerThan(other Version) bool {
	return v.semver().GreaterThan(other.semver())
}

func (v Version) semver() *semver.Version {
	return semver.New(v.Major, v.Minor, v.Patch, "", "")
}

// ExtractVersion finds a version in free-form text such as a release tag or
// a metadata string. Two-part versions get a zero patch component. The
// second return value is false when no three-part numeric version can be
// produced.
func ExtractVersion(s string) (Version, bool) {
	found := versionFinder.FindString(s)
	if found == "" {
		return Version{}, false
	}

	if strings.Count(found, ".") == 1 {
		found += ".0"
	}
	if !strictVersion.MatchString(found) {
		return Version{}, false
	}

	parts := strings.Split(found, ".")
	nums := make([]uint64, len(parts))
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return Version{}, false
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, true
}
