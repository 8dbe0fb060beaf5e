//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/isokin"
)

var errInvalidArgCount = errors.New("expected exactly one argument: export file path")

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Parse an isokinetic export and report repetitions and analysis metrics",
		ArgsUsage: "<file>",
		Flags: append(parseFlags(),
			disableFlag(),
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"D"},
				Usage:   "Include all raw channel data in output",
			},
		),
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
			}

			cfg, err := settings(cmd)
			if err != nil {
				return err
			}

			disabled, err := parseRepetitions(cmd.String("disable"))
			if err != nil {
				return err
			}

			inputPath := cmd.Args().First()

			m, err := load(inputPath, cfg)
			if err != nil {
				return err
			}

			if err := disable(m, disabled); err != nil {
				return err
			}

			return outputMeasurement(inputPath, m, cfg.Format, cmd.Bool("debug"))
		},
	}
}

func disableFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "disable",
		Aliases: []string{"d"},
		Usage:   "Comma-separated repetition indexes (0-based) to exclude from the analysis",
	}
}

// disable toggles each listed repetition off.
func disable(m *isokin.Measurement, reps []int) error {
	for _, rep := range reps {
		if _, err := m.ToggleRepetition(rep); err != nil {
			return fmt.Errorf("--disable: %w", err)
		}
	}

	return nil
}

// parseRepetitions reads a comma-separated list of repetition indexes, dropping duplicates.
func parseRepetitions(raw string) ([]int, error) {
	var out []int

	for item := range strings.SplitSeq(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		rep, err := strconv.Atoi(item)
		if err != nil || rep < 0 {
			return nil, fmt.Errorf("invalid repetition index %q", item)
		}

		if !slices.Contains(out, rep) {
			out = append(out, rep)
		}
	}

	return out, nil
}
