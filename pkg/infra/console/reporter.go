package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/coresync/pkg/domain/interfaces"
	"github.com/m-mizutani/coresync/pkg/domain/model"
)

type reporter struct {
	w      io.Writer
	info   *color.Color
	notice *color.Color
	alert  *color.Color
	action *color.Color
}

// NewReporter creates a Reporter printing colored status lines to w. Color
// follows fatih/color terminal detection unless noColor is set.
func NewReporter(w io.Writer, noColor bool) interfaces.Reporter {
	r := &reporter{
		w:      w,
		info:   color.New(color.FgBlue),
		notice: color.New(color.FgYellow),
		alert:  color.New(color.FgRed),
		action: color.New(color.FgGreen),
	}
	if noColor {
		for _, c := range []*color.Color{r.info, r.notice, r.alert, r.action} {
			c.DisableColor()
		}
	}
	return r
}

func (r *reporter) ReleaseFound(entry *model.RepoEntry, release *model.ReleaseInfo) {
	r.info.Fprintf(r.w, "%s: %s is the most recent release, checking local core...\n", entry, release.Tag)
}

func (r *reporter) LocalCoreFound(name string, version string) {
	r.notice.Fprintf(r.w, "Local core found: %s v%s\n", name, version)
}

func (r *reporter) Unversioned() {
	r.alert.Fprintln(r.w, "Core not semver'd, downloading just in case...")
}

func (r *reporter) Downloading(url string) {
	r.action.Fprintf(r.w, "Updating core, downloading %s...\n", url)
}

func (r *reporter) WouldDownload(url string) {
	r.action.Fprintf(r.w, "Update available, would download %s (dry run)\n", url)
}

func (r *reporter) UpToDate() {
	r.notice.Fprintln(r.w, "Up to date, skipping core.")
}

func (r *reporter) Failed(entry *model.RepoEntry, err error) {
	r.alert.Fprintf(r.w, "%s: %s\n", entry, err.Error())
}

func (r *reporter) Summary(summary *model.RunSummary) {
	line := fmt.Sprintf("%d updated, %d up to date, %d pending, %d failed",
		summary.Count(model.EntryUpdated),
		summary.Count(model.EntrySkipped),
		summary.Count(model.EntryPending),
		summary.Count(model.EntryFailed),
	)
	if summary.Count(model.EntryFailed) > 0 {
		r.alert.Fprintln(r.w, line)
		return
	}
	r.action.Fprintln(r.w, line)
}
