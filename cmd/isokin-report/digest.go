package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/primordium/fault"
)

func digestCommand() *cli.Command {
	return &cli.Command{
		Name:      "digest",
		Usage:     "Produce a summary digest from an isokin JSONL report",
		ArgsUsage: "<report.jsonl>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "kind",
				Usage: "List files affected by an error or diagnostic kind (e.g., MalformedFileError)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return errors.New("expected exactly one argument: path to report.jsonl")
			}

			return runDigest(cmd.Args().First(), cmd.String("kind"))
		},
	}
}

func runDigest(reportPath, kindFilter string) error {
	records, err := readRecords(reportPath)
	if err != nil {
		return err
	}

	printDigest(records)

	if kindFilter != "" {
		printKindDetail(records, kindFilter)
	}

	return nil
}

func readRecords(path string) ([]digestRecord, error) {
	file, err := os.Open(path) //nolint:gosec // CLI tool opens user-specified report files
	if err != nil {
		return nil, fmt.Errorf("%w: opening report: %w", fault.ErrReadFailure, err)
	}
	defer file.Close()

	var records []digestRecord

	scanner := bufio.NewScanner(file)

	const maxLineSize = 16 * 1024 * 1024 // 16MB
	scanner.Buffer(make([]byte, 0, 1024*1024), maxLineSize)

	for scanner.Scan() {
		var rec digestRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			records = append(records, digestRecord{Error: fault.ErrInvalidJSON.Error(), ErrorKind: "ReportLineError"})

			continue
		}

		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading report: %w", fault.ErrReadFailure, err)
	}

	return records, nil
}

// kindCount tracks how many files carry an error or diagnostic kind.
type kindCount struct {
	Kind  string
	Files int
	Total int
}

func printDigest(records []digestRecord) {
	total := len(records)
	failed := 0
	failures := map[string]*kindCount{}
	diagnostics := map[string]*kindCount{}
	sides := map[string]int{}
	repDist := map[int]int{}
	saturated, jumps, stalls := 0, 0, 0

	runs := map[string]bool{}

	for _, rec := range records {
		if rec.Run != "" {
			runs[rec.Run] = true
		}

		if rec.Error != "" || rec.Analysis == nil {
			failed++

			bump(failures, rec.ErrorKind, 1)

			continue
		}

		sides[rec.Analysis.Summary.Side]++
		repDist[rec.Analysis.Summary.Repetitions]++

		if sat := rec.Analysis.Quality.Saturation; sat != nil && sat.Events > 0 {
			saturated++
		}

		if drop := rec.Analysis.Quality.Dropout; drop != nil {
			if drop.Deltas > 0 {
				jumps++
			}

			if drop.Stalls > 0 {
				stalls++
			}
		}

		perKind := map[string]int{}
		for _, diag := range rec.Analysis.Diagnostics {
			perKind[diag.Kind]++
		}

		for kind, n := range perKind {
			bump(diagnostics, kind, n)
		}
	}

	fmt.Println("=== Isokin Report Digest ===")
	fmt.Println()

	if len(runs) == 1 {
		for run := range runs {
			fmt.Printf("Run:           %s\n", run)
		}
	} else if len(runs) > 1 {
		fmt.Printf("Runs:          %d (merged reports)\n", len(runs))
	}

	fmt.Printf("Total files:   %d\n", total)
	fmt.Printf("Failed:        %d\n", failed)
	fmt.Printf("Parsed:        %d\n", total-failed)
	fmt.Println()

	fmt.Println("--- Sides ---")

	for _, side := range []string{"right", "left", "unknown"} {
		fmt.Printf("  %-8s %d\n", side+":", sides[side])
	}

	fmt.Println()
	fmt.Println("--- Repetitions Per File ---")

	counts := make([]int, 0, len(repDist))
	for reps := range repDist {
		counts = append(counts, reps)
	}

	slices.Sort(counts)

	for _, reps := range counts {
		fmt.Printf("  %d repetitions:  %d files\n", reps, repDist[reps])
	}

	fmt.Println()
	fmt.Println("--- Signal Quality (files) ---")
	fmt.Printf("  saturated torque:  %d\n", saturated)
	fmt.Printf("  torque jumps:      %d\n", jumps)
	fmt.Printf("  stalled rows:      %d\n", stalls)

	printKinds("Failures By Kind", failures)
	printKinds("Diagnostics By Kind", diagnostics)
}

func bump(counts map[string]*kindCount, kind string, n int) {
	if kind == "" {
		kind = "Error"
	}

	entry, ok := counts[kind]
	if !ok {
		entry = &kindCount{Kind: kind}
		counts[kind] = entry
	}

	entry.Files++
	entry.Total += n
}

func printKinds(title string, counts map[string]*kindCount) {
	if len(counts) == 0 {
		return
	}

	fmt.Println()
	fmt.Printf("--- %s ---\n", title)

	entries := make([]*kindCount, 0, len(counts))
	for _, entry := range counts {
		entries = append(entries, entry)
	}

	slices.SortFunc(entries, func(a, b *kindCount) int {
		return b.Files - a.Files
	})

	for _, entry := range entries {
		fmt.Printf("  %s\n", entry.Kind)
		fmt.Printf("    files: %d  occurrences: %d\n", entry.Files, entry.Total)
	}
}

func printKindDetail(records []digestRecord, kind string) {
	fmt.Println()

	var lines []string

	for _, rec := range records {
		file := rec.File
		if file == "" {
			file = "(redacted)"
		}

		if rec.ErrorKind == kind {
			lines = append(lines, fmt.Sprintf("  %s\n    %s", file, rec.Error))

			continue
		}

		if rec.Analysis == nil {
			continue
		}

		for _, diag := range rec.Analysis.Diagnostics {
			if diag.Kind == kind {
				lines = append(lines, fmt.Sprintf("  %s\n    %s", file, diag.Message))
			}
		}
	}

	if len(lines) == 0 {
		fmt.Printf("No files affected by %s\n", kind)

		return
	}

	fmt.Printf("=== %s: %d entries ===\n\n", kind, len(lines))

	for _, line := range lines {
		fmt.Println(line)
	}
}
