/*
Package main implements showtracks, a command line tool that spreads a list of
time-bounded shows over the smallest number of parallel tracks and renders the
result as a console listing and a grid-based HTML page.

The input is a plain text file with one show per line:

	<title> <start> <end>

Times are integer ticks and a show occupies its end tick, so a track that
carries a show ending at 9 can next take a show starting at 10.
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"showtracks/internal/config"
	"showtracks/internal/logx"
	"showtracks/internal/render"
	"showtracks/internal/report"
	"showtracks/internal/schedule"
	"showtracks/internal/showfile"
	"showtracks/internal/viewer"
)

// openFunc opens the written page; replaced in tests.
type openFunc func(path string) error

func main() {
	app := newApp(os.Stdout, os.Stderr, viewer.Open)
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer, open openFunc) *cli.App {
	return &cli.App{
		Name:            "showtracks",
		Usage:           "assign shows to the fewest parallel tracks and render the schedule",
		UsageText:       "showtracks [--input shows.txt] [--config config.yaml] [--output shows.html]",
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   fmt.Sprintf("show listing to schedule (default from config, else %q)", config.DefaultInput),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file (optional)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "HTML file to write (default: input name with .html)",
			},
			&cli.StringFlag{
				Name:  "title",
				Usage: "page title",
			},
			&cli.BoolFlag{
				Name:  "open",
				Value: true,
				Usage: "open the page in the system viewer",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "skip the console listing",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Action: func(c *cli.Context) error {
			log := logx.New(stderr, c.Bool("debug"))

			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			return run(cfg, !c.Bool("quiet"), stdout, log, open)
		},
	}
}

// loadConfig reads the configuration file and lets explicitly set flags
// override it.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return config.Config{}, fmt.Errorf("error loading configuration: %w", err)
	}

	if c.IsSet("input") {
		cfg.Input = c.String("input")
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("title") {
		cfg.Title = c.String("title")
	}
	if c.IsSet("open") {
		cfg.Open = c.Bool("open")
	}
	return cfg, nil
}

func run(cfg config.Config, listing bool, stdout io.Writer, log zerolog.Logger, open openFunc) error {
	shows, err := showfile.Load(cfg.Input)
	if err != nil {
		return err
	}
	log.Info().Int("shows", len(shows)).Str("input", cfg.Input).Msg("loaded shows")

	scheduled, trackCount := schedule.Assign(shows)
	log.Debug().
		Int("tracks", trackCount).
		Int("depth", schedule.Depth(shows)).
		Msg("tracks assigned")

	if listing {
		if err := report.Write(stdout, scheduled, trackCount, report.Options{TrackLabel: cfg.Labels.Track}); err != nil {
			return fmt.Errorf("error writing report: %w", err)
		}
	}

	renderer, err := render.New(cfg, log)
	if err != nil {
		return err
	}
	page, err := renderer.HTML(scheduled, trackCount)
	if err != nil {
		return fmt.Errorf("error rendering HTML: %w", err)
	}

	outputPath, err := cfg.OutputPath()
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, []byte(page), 0644); err != nil {
		return fmt.Errorf("error writing HTML file: %w", err)
	}
	log.Info().Str("output", outputPath).Int("tracks", trackCount).Msg("schedule page written")

	if cfg.Open {
		if err := open(outputPath); err != nil {
			// the page is on disk; a missing viewer is not fatal
			log.Warn().Err(err).Str("output", outputPath).Msg("could not open viewer")
		}
	}
	return nil
}
