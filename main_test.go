package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"showtracks/internal/showfile"
)

func writeShows(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "shows.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAppSchedulesAndWritesPage(t *testing.T) {
	dir := t.TempDir()
	input := writeShows(t, dir, "s1 29 33\ns2 2 9\ns3 44 47\ns4 26 30\ns5 15 20\n")

	var stdout, stderr bytes.Buffer
	var opened string
	app := newApp(&stdout, &stderr, func(path string) error {
		opened = path
		return nil
	})
	if err := app.Run([]string{"showtracks", "--input", input, "--title", "Festival"}); err != nil {
		t.Fatalf("Run returned error: %v\n%s", err, stderr.String())
	}

	if !strings.Contains(stdout.String(), "Track 2\n- title s1, time from 29 t/m 33\n") {
		t.Fatalf("unexpected listing:\n%s", stdout.String())
	}
	output := filepath.Join(dir, "shows.html")
	if opened != output {
		t.Fatalf("expected %s to be opened, got %q", output, opened)
	}
	page, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("expected page to be written: %v", err)
	}
	if !strings.Contains(string(page), "<title>Festival</title>") {
		t.Fatalf("expected title flag to reach the page")
	}
	if !strings.Contains(stderr.String(), "schedule page written") {
		t.Fatalf("expected progress log on stderr, got %q", stderr.String())
	}
}

func TestAppFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	input := writeShows(t, dir, "a 1 2\n")
	cfgPath := filepath.Join(dir, "config.yaml")
	cfgYAML := "input: nowhere.txt\noutput: " + filepath.Join(dir, "from-config.html") + "\nopen: true\n"
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	app := newApp(&stdout, &stderr, func(string) error {
		t.Fatalf("viewer should not be opened with --open=false")
		return nil
	})
	args := []string{"showtracks", "-c", cfgPath, "-i", input, "--open=false", "-q"}
	if err := app.Run(args); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected no listing with --quiet, got %q", stdout.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "from-config.html")); err != nil {
		t.Fatalf("expected output path from config: %v", err)
	}
}

func TestAppEmptyInput(t *testing.T) {
	dir := t.TempDir()
	input := writeShows(t, dir, "")

	var stdout, stderr bytes.Buffer
	app := newApp(&stdout, &stderr, func(string) error { return errors.New("no display") })
	if err := app.Run([]string{"showtracks", "-i", input}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(stdout.String(), "No shows scheduled.") {
		t.Fatalf("unexpected listing %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "could not open viewer") {
		t.Fatalf("expected viewer failure to be logged, got %q", stderr.String())
	}
}

func TestAppReportsMalformedInput(t *testing.T) {
	dir := t.TempDir()
	input := writeShows(t, dir, "ok 1 2\nbroken 3\n")

	var stdout, stderr bytes.Buffer
	app := newApp(&stdout, &stderr, func(string) error { return nil })
	err := app.Run([]string{"showtracks", "-i", input})
	var perr *showfile.ParseError
	if !errors.As(err, &perr) || perr.Line != 2 {
		t.Fatalf("expected parse error on line 2, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "shows.html")); !errors.Is(statErr, os.ErrNotExist) {
		t.Fatalf("expected no page for malformed input")
	}
}

func TestAppKeepsHTMLInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "x.html")
	listing := "a 1 2\nb 2 3\n"
	if err := os.WriteFile(input, []byte(listing), 0644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	app := newApp(&stdout, &stderr, func(string) error { return nil })
	if err := app.Run([]string{"showtracks", "-i", input, "-q"}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	data, err := os.ReadFile(input)
	if err != nil || string(data) != listing {
		t.Fatalf("input was modified: %q (%v)", data, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "x.tracks.html")); err != nil {
		t.Fatalf("expected page next to the input: %v", err)
	}

	err = app.Run([]string{"showtracks", "-i", input, "-o", input, "-q"})
	if err == nil || !strings.Contains(err.Error(), "would overwrite the input") {
		t.Fatalf("expected overwrite to be refused, got %v", err)
	}
}
