// Package report prints the per-track console listing of a schedule.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"showtracks/internal/schedule"
)

// Options tunes the console listing.
type Options struct {
	// TrackLabel is the fmt format of a track heading; it receives the
	// 1-based track number. Defaults to "Track %d".
	TrackLabel string
}

// Write prints one section per track, each listing its shows in scheduled
// order, followed by a summary line. Headings are styled only when w is a
// terminal.
func Write(w io.Writer, scheduled []schedule.Scheduled, trackCount int, opts Options) error {
	label := opts.TrackLabel
	if label == "" {
		label = "Track %d"
	}

	r := lipgloss.NewRenderer(w)
	heading := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	muted := r.NewStyle().Foreground(lipgloss.Color("#888888"))

	if len(scheduled) == 0 {
		_, err := fmt.Fprintln(w, muted.Render("No shows scheduled."))
		return err
	}

	for i, shows := range schedule.Group(scheduled, trackCount) {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, heading.Render(fmt.Sprintf(label, i+1))); err != nil {
			return err
		}
		for _, s := range shows {
			if _, err := fmt.Fprintln(w, Line(s.Show)); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintf(w, "\n%s\n", muted.Render(summary(len(scheduled), trackCount)))
	return err
}

// Line formats a single show as listed under its track.
func Line(s schedule.Show) string {
	return fmt.Sprintf("- title %s, time from %d t/m %d", s.Title, s.Start, s.End)
}

func summary(shows, tracks int) string {
	return fmt.Sprintf("%d %s on %d %s", shows, plural(shows, "show"), tracks, plural(tracks, "track"))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
