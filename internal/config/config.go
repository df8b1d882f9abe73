// Package config holds the YAML configuration of the show track renderer.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// DefaultInput is the show listing read when neither a flag nor the
// configuration names one.
const DefaultInput = "shows.txt"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// cssBreakers are characters that would let a value escape its declaration
// in the generated style block.
const cssBreakers = ";{}<>"

// Colors controls the page colors. The track palette is blended between
// PaletteStart and PaletteEnd.
type Colors struct {
	PaletteStart string `yaml:"palette_start"` // Color of track 1 (hex color code)
	PaletteEnd   string `yaml:"palette_end"`   // Color of the last track (hex color code)
	Background   string `yaml:"background"`    // Page background (hex color code)
	Text         string `yaml:"text"`          // Color of headers and time labels
}

// Layout holds CSS sizes, written verbatim into the page.
type Layout struct {
	TimeColumn   string `yaml:"time_column"`   // Width of the time label column (e.g. "4em")
	HeaderHeight string `yaml:"header_height"` // Height of the track header row
	RowHeight    string `yaml:"row_height"`    // Height of one tick row
	Gap          string `yaml:"gap"`           // Grid gap between cells
	MaxRows      int    `yaml:"max_rows"`      // Largest number of tick rows a page may hold
}

// Font is the page font.
type Font struct {
	Family string `yaml:"family"`
	Size   int    `yaml:"size"` // Base font size in pixels
}

// Labels are fmt formats taking a single integer.
type Labels struct {
	Track string `yaml:"track"` // Track header, receives the track number
	Time  string `yaml:"time"`  // Time label, receives the tick
}

// Config represents the complete configuration for a scheduling run. It maps
// directly onto the YAML file; keys missing from the file keep their
// default value.
type Config struct {
	Input    string `yaml:"input"`    // Show listing to schedule
	Output   string `yaml:"output"`   // HTML file to write; derived from Input when empty
	Title    string `yaml:"title"`    // Page title
	Open     bool   `yaml:"open"`     // Open the written page in the system viewer
	Template string `yaml:"template"` // Optional base template replacing the built-in one
	Colors   Colors `yaml:"colors"`
	Layout   Layout `yaml:"layout"`
	Font     Font   `yaml:"font"`
	Labels   Labels `yaml:"labels"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Input: DefaultInput,
		Title: "Show schedule",
		Open:  true,
		Colors: Colors{
			PaletteStart: "#3b4cc0",
			PaletteEnd:   "#f4a582",
			Background:   "#fafafa",
			Text:         "#222222",
		},
		Layout: Layout{
			TimeColumn:   "4em",
			HeaderHeight: "2.5em",
			RowHeight:    "1.5em",
			Gap:          "4px",
			MaxRows:      10000,
		},
		Font: Font{
			Family: "Helvetica, Arial, sans-serif",
			Size:   14,
		},
		Labels: Labels{
			Track: "Track %d",
			Time:  "%d:00",
		},
	}
}

// Load reads configPath on top of the defaults. An empty path returns the
// defaults unchanged. A relative template path is resolved against the
// directory of the configuration file.
func Load(configPath string) (Config, error) {
	config := Default()
	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("error parsing config file: %w", err)
	}

	if config.Template != "" && !filepath.IsAbs(config.Template) {
		config.Template = filepath.Join(filepath.Dir(configPath), config.Template)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks the values the renderer cannot recover from. Values that
// end up in the page's style block must not be able to close it.
func (c Config) Validate() error {
	colors := []struct{ name, hex string }{
		{"colors.palette_start", c.Colors.PaletteStart},
		{"colors.palette_end", c.Colors.PaletteEnd},
		{"colors.background", c.Colors.Background},
		{"colors.text", c.Colors.Text},
	}
	for _, col := range colors {
		if _, err := colorful.Hex(col.hex); err != nil {
			return fmt.Errorf("%w: %s %q is not a hex color", ErrInvalid, col.name, col.hex)
		}
	}

	styles := []struct{ name, value string }{
		{"font.family", c.Font.Family},
		{"layout.time_column", c.Layout.TimeColumn},
		{"layout.header_height", c.Layout.HeaderHeight},
		{"layout.row_height", c.Layout.RowHeight},
		{"layout.gap", c.Layout.Gap},
	}
	for _, st := range styles {
		if strings.TrimSpace(st.value) == "" || strings.ContainsAny(st.value, cssBreakers) {
			return fmt.Errorf("%w: %s %q is empty or contains one of %q", ErrInvalid, st.name, st.value, cssBreakers)
		}
	}

	if c.Font.Size <= 0 {
		return fmt.Errorf("%w: font.size must be positive, got %d", ErrInvalid, c.Font.Size)
	}
	if c.Layout.MaxRows < 2 {
		return fmt.Errorf("%w: layout.max_rows must be at least 2, got %d", ErrInvalid, c.Layout.MaxRows)
	}
	if !hasIntVerb(c.Labels.Track) {
		return fmt.Errorf("%w: labels.track %q needs a %%d verb", ErrInvalid, c.Labels.Track)
	}
	if !hasIntVerb(c.Labels.Time) {
		return fmt.Errorf("%w: labels.time %q needs a %%d verb", ErrInvalid, c.Labels.Time)
	}
	return nil
}

// OutputPath determines the HTML filename. An explicit Output wins;
// otherwise the input name gets an .html extension (e.g. "shows.txt"
// becomes "shows.html" next to it). An input that already ends in .html
// gets "shows.tracks.html" instead, and an explicit Output naming the
// input is rejected, so the listing is never overwritten.
func (c Config) OutputPath() (string, error) {
	if c.Output != "" {
		if filepath.Clean(c.Output) == filepath.Clean(c.Input) {
			return "", fmt.Errorf("%w: output %q would overwrite the input", ErrInvalid, c.Output)
		}
		return c.Output, nil
	}

	base := strings.TrimSuffix(c.Input, filepath.Ext(c.Input))
	out := base + ".html"
	if filepath.Clean(out) == filepath.Clean(c.Input) {
		out = base + ".tracks.html"
	}
	return out, nil
}

func hasIntVerb(format string) bool {
	return strings.Count(format, "%d") == 1 && strings.Count(format, "%") == 1
}
