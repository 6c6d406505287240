package releasenotes

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/ariel-frischer/relnotes/internal/model"
)

// summaryWidth is the column budget for cutoff descriptions and pull request titles.
const summaryWidth = 60

const releaseNotesMarker = "[RELEASE NOTES]"

// reporter writes human-readable progress. A nil writer discards everything.
type reporter struct {
	w      io.Writer
	marker *color.Color
}

func newReporter(w io.Writer, useColor bool) *reporter {
	if w == nil {
		w = io.Discard
	}
	marker := color.New(color.FgGreen, color.Bold)
	if useColor {
		marker.EnableColor()
	} else {
		marker.DisableColor()
	}
	return &reporter{w: w, marker: marker}
}

func (r *reporter) line(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

func (r *reporter) blank() {
	fmt.Fprintln(r.w)
}

// pulls lists every scanned pull request, flagging the labeled ones.
func (r *reporter) pulls(pulls []*model.PullRequest, label string) {
	numWidth := numberWidth(pulls)
	for _, pr := range pulls {
		summary := pullSummary(pr, numWidth)
		if pr.HasLabel(label) {
			r.line("%s  %s", summary, r.marker.Sprint(releaseNotesMarker))
			continue
		}
		r.line("%s", summary)
	}
}

// pullSummary renders `<number>: [<base>] <title>` with the number padded to
// numWidth and the bracketed title padded or truncated to summaryWidth.
func pullSummary(pr *model.PullRequest, numWidth int) string {
	desc := fmt.Sprintf("[%s] %s", pr.BaseBranch, pr.Title)
	return truncateOrPad(strconv.Itoa(pr.Number), numWidth) + ": " + truncateOrPad(desc, summaryWidth)
}

func numberWidth(pulls []*model.PullRequest) int {
	highest := 0
	for _, pr := range pulls {
		highest = max(highest, pr.Number)
	}
	return len(strconv.Itoa(highest))
}

// truncateOrPad fits s to exactly width display columns, ending truncated
// text with "...".
func truncateOrPad(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "...")
	}
	return runewidth.FillRight(s, width)
}
