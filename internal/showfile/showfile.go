// Package showfile reads the whitespace separated show listing consumed by
// the scheduler. Each record is one line: <title> <start> <end>.
package showfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"showtracks/internal/schedule"
)

// ErrFieldCount is wrapped by a ParseError when a line does not hold exactly
// a title, a start and an end.
var ErrFieldCount = errors.New("expected <title> <start> <end>")

// ParseError points at the offending line of a show listing.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load opens filename and reads every show from it.
func Load(filename string) ([]schedule.Show, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("error opening show file: %w", err)
	}
	defer file.Close()

	shows, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filename, err)
	}
	return shows, nil
}

// Read parses shows from r in file order. Blank lines are skipped; every
// other line is a record, whatever character the title starts with.
func Read(r io.Reader) ([]schedule.Show, error) {
	var shows []schedule.Show

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		show, err := parseLine(line)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: line, Err: err}
		}
		shows = append(shows, show)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return shows, nil
}

func parseLine(line string) (schedule.Show, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return schedule.Show{}, fmt.Errorf("%w, got %d fields", ErrFieldCount, len(fields))
	}

	start, err := strconv.Atoi(fields[1])
	if err != nil {
		return schedule.Show{}, fmt.Errorf("start time: %w", err)
	}
	end, err := strconv.Atoi(fields[2])
	if err != nil {
		return schedule.Show{}, fmt.Errorf("end time: %w", err)
	}

	return schedule.Show{Title: fields[0], Start: start, End: end}, nil
}
