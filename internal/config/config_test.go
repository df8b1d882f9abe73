package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultsWhenNoPath(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if c.Input != DefaultInput {
		t.Fatalf("expected default input %q, got %q", DefaultInput, c.Input)
	}
	if !c.Open {
		t.Fatalf("expected open to default to true")
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("default config is invalid: %v", err)
	}
}

func TestLoadMergesYamlOverDefaults(t *testing.T) {
	dir := t.TempDir()
	configYAML := strings.TrimSpace(`
input: festival.txt
open: false
template: base.html
colors:
  palette_start: "#000000"
labels:
  time: "t%d"
`)
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if c.Input != "festival.txt" || c.Open {
		t.Fatalf("top level keys not applied: %+v", c)
	}
	if c.Colors.PaletteStart != "#000000" {
		t.Fatalf("expected palette start override, got %q", c.Colors.PaletteStart)
	}
	if c.Colors.PaletteEnd != Default().Colors.PaletteEnd {
		t.Fatalf("expected palette end default, got %q", c.Colors.PaletteEnd)
	}
	if c.Labels.Time != "t%d" || c.Labels.Track != Default().Labels.Track {
		t.Fatalf("unexpected labels: %+v", c.Labels)
	}
	if c.Template != filepath.Join(dir, "base.html") {
		t.Fatalf("expected template resolved next to config, got %q", c.Template)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad palette", "colors:\n  palette_end: not-a-color\n"},
		{"zero font", "font:\n  size: 0\n"},
		{"track label without verb", "labels:\n  track: Track\n"},
		{"time label with two verbs", "labels:\n  time: \"%d-%d\"\n"},
		{"bad background", "colors:\n  background: \"red;}body{display:none\"\n"},
		{"bad text color", "colors:\n  text: blue\n"},
		{"font family closes block", "font:\n  family: \"Arial;} body { color: red\"\n"},
		{"gap closes style", "layout:\n  gap: \"4px</style>\"\n"},
		{"empty row height", "layout:\n  row_height: \"\"\n"},
		{"single row limit", "layout:\n  max_rows: 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadReportsYamlErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("colors: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "error parsing config file") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input, output, want string
	}{
		{"shows.txt", "", "shows.html"},
		{"data/festival.list", "", "data/festival.html"},
		{"noext", "", "noext.html"},
		{"shows.txt", "out/page.html", "out/page.html"},
		{"x.html", "", "x.tracks.html"},
		{"data/x.html", "", "data/x.tracks.html"},
	}
	for _, tt := range tests {
		c := Config{Input: tt.input, Output: tt.output}
		got, err := c.OutputPath()
		if err != nil {
			t.Fatalf("OutputPath(%q, %q) returned error: %v", tt.input, tt.output, err)
		}
		if got != tt.want {
			t.Fatalf("OutputPath(%q, %q) = %q, want %q", tt.input, tt.output, got, tt.want)
		}
	}
}

func TestOutputPathRejectsOverwritingInput(t *testing.T) {
	c := Config{Input: "data/shows.html", Output: "data/./shows.html"}
	if _, err := c.OutputPath(); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}
