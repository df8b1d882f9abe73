/*
Package render turns a track assignment into a self-contained HTML page laid
out as a CSS grid: one column per track, one row per tick.

The page is produced by substituting computed fragments into a base
template. Each fragment has exactly one named placeholder:

	{{track_styles}}  one color rule per track
	{{track_slots}}   the track headers
	{{grid_rows}}     grid-template-rows value
	{{grid_columns}}  grid-template-columns value
	{{sessions}}      time labels and show cells

{{title}} and {{page_style}} are optional and may appear any number of times.
Everything else in the template is copied through unchanged.
*/
package render

import (
	_ "embed"
	"errors"
	"fmt"
	"html"
	"math/big"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/valyala/fasttemplate"

	"showtracks/internal/config"
	"showtracks/internal/schedule"
)

const (
	startTag = "{{"
	endTag   = "}}"
)

// Placeholder names.
const (
	TrackStyles = "track_styles"
	TrackSlots  = "track_slots"
	GridRows    = "grid_rows"
	GridColumns = "grid_columns"
	Sessions    = "sessions"
	Title       = "title"
	PageStyle   = "page_style"
)

var requiredPlaceholders = []string{TrackStyles, TrackSlots, GridRows, GridColumns, Sessions}

//go:embed base.html
var baseTemplate string

// ErrMissingPlaceholder is returned for a base template that does not
// contain each required placeholder exactly once.
var ErrMissingPlaceholder = errors.New("template placeholder must appear exactly once")

// ErrSpanTooLarge is returned when the shows cover more ticks than the
// configured row limit.
var ErrSpanTooLarge = errors.New("schedule spans too many ticks")

// Fragments are the computed pieces substituted into the base template.
type Fragments struct {
	TrackStyles string
	TrackSlots  string
	GridRows    string
	GridColumns string
	Sessions    string
}

// Renderer renders schedules with a fixed configuration and base template.
type Renderer struct {
	cfg  config.Config
	tmpl *fasttemplate.Template
	log  zerolog.Logger
}

// New prepares a Renderer. The built-in base template is used unless
// cfg.Template names a file.
func New(cfg config.Config, log zerolog.Logger) (*Renderer, error) {
	base := baseTemplate
	if cfg.Template != "" {
		data, err := os.ReadFile(cfg.Template)
		if err != nil {
			return nil, fmt.Errorf("error reading template: %w", err)
		}
		base = string(data)
		log.Debug().Str("template", cfg.Template).Msg("using custom base template")
	}
	return newRenderer(cfg, base, log)
}

func newRenderer(cfg config.Config, base string, log zerolog.Logger) (*Renderer, error) {
	for _, name := range requiredPlaceholders {
		if n := strings.Count(base, startTag+name+endTag); n != 1 {
			return nil, fmt.Errorf("%w: %s found %d times", ErrMissingPlaceholder, startTag+name+endTag, n)
		}
	}

	tmpl, err := fasttemplate.NewTemplate(base, startTag, endTag)
	if err != nil {
		return nil, fmt.Errorf("error parsing template: %w", err)
	}
	return &Renderer{cfg: cfg, tmpl: tmpl, log: log}, nil
}

// HTML renders the complete page for a schedule.
func (r *Renderer) HTML(scheduled []schedule.Scheduled, trackCount int) (string, error) {
	frags, err := r.Build(scheduled, trackCount)
	if err != nil {
		return "", err
	}
	r.log.Debug().
		Int("tracks", trackCount).
		Int("shows", len(scheduled)).
		Int("sessions_bytes", len(frags.Sessions)).
		Msg("fragments built")

	return r.tmpl.ExecuteStringStd(map[string]interface{}{
		TrackStyles: frags.TrackStyles,
		TrackSlots:  frags.TrackSlots,
		GridRows:    frags.GridRows,
		GridColumns: frags.GridColumns,
		Sessions:    frags.Sessions,
		Title:       html.EscapeString(r.cfg.Title),
		PageStyle:   r.pageStyle(),
	}), nil
}

// Build computes every fragment once.
func (r *Renderer) Build(scheduled []schedule.Scheduled, trackCount int) (Fragments, error) {
	swatches, err := Palette(trackCount, r.cfg.Colors.PaletteStart, r.cfg.Colors.PaletteEnd)
	if err != nil {
		return Fragments{}, err
	}

	t, err := spanTicks(scheduled, r.cfg.Layout.MaxRows)
	if err != nil {
		return Fragments{}, err
	}

	return Fragments{
		TrackStyles: trackStyles(swatches),
		TrackSlots:  r.trackSlots(trackCount),
		GridRows:    r.gridRows(t),
		GridColumns: r.gridColumns(trackCount),
		Sessions:    r.sessions(scheduled, t),
	}, nil
}

func (r *Renderer) pageStyle() string {
	return fmt.Sprintf(`:root {
  --font-family: %s;
  --font-size: %dpx;
  --text: %s;
  --background: %s;
  --gap: %s;
}`, r.cfg.Font.Family, r.cfg.Font.Size, r.cfg.Colors.Text, r.cfg.Colors.Background, r.cfg.Layout.Gap)
}

func trackStyles(swatches []Swatch) string {
	var b strings.Builder
	for i, s := range swatches {
		fmt.Fprintf(&b, ".%s { background-color: %s; color: %s; }\n", trackName(i+1), s.Background, s.Foreground)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (r *Renderer) trackSlots(trackCount int) string {
	var b strings.Builder
	for n := 1; n <= trackCount; n++ {
		fmt.Fprintf(&b, `<span class="track-slot %s" aria-hidden="true" style="grid-column: %s; grid-row: tracks;">%s</span>`+"\n",
			trackName(n), trackName(n), html.EscapeString(fmt.Sprintf(r.cfg.Labels.Track, n)))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// gridRows names a line before every tick row from the first start through
// one row past the last end, so a show ending at the last tick can close on
// the trailing line.
func (r *Renderer) gridRows(t ticks) string {
	rows := []string{"[tracks] " + r.cfg.Layout.HeaderHeight}
	for off := uint64(0); off < t.rows; off++ {
		rows = append(rows, fmt.Sprintf("[%s] %s", t.name(off), r.cfg.Layout.RowHeight))
	}
	return strings.Join(rows, "\n    ")
}

func (r *Renderer) gridColumns(trackCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[times] %s", r.cfg.Layout.TimeColumn)
	for n := 1; n <= trackCount; n++ {
		if n == 1 {
			fmt.Fprintf(&b, "\n    [%s-start] 1fr", trackName(n))
		} else {
			fmt.Fprintf(&b, "\n    [%s-end %s-start] 1fr", trackName(n-1), trackName(n))
		}
	}
	if trackCount > 0 {
		fmt.Fprintf(&b, "\n    [%s-end]", trackName(trackCount))
	}
	return b.String()
}

// sessions walks the ticks in order. Each tick gets one time label; shows
// starting on that tick follow their label so the markup reads in time
// order.
func (r *Renderer) sessions(scheduled []schedule.Scheduled, t ticks) string {
	if t.rows == 0 {
		return `<p class="empty">No shows scheduled</p>`
	}

	byStart := make(map[uint64][]schedule.Scheduled)
	for _, s := range scheduled {
		off := t.offset(s.Start)
		byStart[off] = append(byStart[off], s)
	}

	var b strings.Builder
	for off := uint64(0); off < t.rows; off++ {
		fmt.Fprintf(&b, `<h2 class="time-slot" style="grid-row: %s;">%s</h2>`+"\n",
			t.name(off), html.EscapeString(fmt.Sprintf(r.cfg.Labels.Time, t.tick(off))))
		for _, s := range byStart[off] {
			b.WriteString(session(s, t))
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func session(s schedule.Scheduled, t ticks) string {
	track := trackName(s.Track)
	return fmt.Sprintf(`<div class="session %s" style="grid-column: %s; grid-row: %s / %s;">`+
		`<h3 class="session-title">%s</h3>`+
		`<span class="session-time">%d t/m %d</span></div>`+"\n",
		track, track, t.name(t.offset(s.Start)), t.name(t.offset(s.End)+1),
		html.EscapeString(s.Title), s.Start, s.End)
}

func trackName(n int) string {
	return fmt.Sprintf("track-%d", n)
}

// ticks maps grid rows to ticks. Rows are addressed by their offset from the
// first tick, which stays in range even when the trailing row lies one past
// the largest int.
type ticks struct {
	first int
	rows  uint64
}

// spanTicks covers the first start through one past the last end. It fails
// when that needs more than maxRows rows.
func spanTicks(scheduled []schedule.Scheduled, maxRows int) (ticks, error) {
	first, last, ok := schedule.Span(scheduled)
	if !ok {
		return ticks{}, nil
	}
	// two's complement subtraction yields the exact distance for first <= last
	span := uint64(last) - uint64(first)
	if span >= uint64(maxRows)-1 {
		return ticks{}, fmt.Errorf("%w: ticks %d through %d exceed the limit of %d rows",
			ErrSpanTooLarge, first, last, maxRows)
	}
	return ticks{first: first, rows: span + 2}, nil
}

func (t ticks) offset(tick int) uint64 {
	return uint64(tick) - uint64(t.first)
}

func (t ticks) tick(off uint64) *big.Int {
	return new(big.Int).Add(big.NewInt(int64(t.first)), new(big.Int).SetUint64(off))
}

func (t ticks) name(off uint64) string {
	v := t.tick(off)
	if v.Sign() < 0 {
		return "time-m" + new(big.Int).Neg(v).String()
	}
	return "time-" + v.String()
}
