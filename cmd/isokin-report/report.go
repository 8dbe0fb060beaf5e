//nolint:wrapcheck
package main

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/farcloser/isokin"
	"github.com/farcloser/isokin/internal/config"
	"github.com/farcloser/isokin/internal/integration/codepage"
	"github.com/farcloser/isokin/internal/output"
)

const outputFile = "isokin-report.jsonl"

var (
	errNotDirectory = errors.New("not a directory")
	errNoExports    = errors.New("no .txt export files found")
)

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "Parse every export under a folder and write an isokin JSONL report",
		ArgsUsage: "<folder>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML configuration file (ISOKIN_* environment variables override it)",
			},
			&cli.BoolFlag{
				Name:  "redact-path",
				Usage: "Strip file paths from the report",
			},
			&cli.StringFlag{
				Name:    "encoding",
				Aliases: []string{"e"},
				Usage:   "Export file encoding: windows-1252, iso-8859-1, iso-8859-15, utf-8",
			},
			&cli.BoolFlag{
				Name:  "skip-invalid-rows",
				Usage: "Drop data rows that are not three numbers instead of failing the file",
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"j"},
				Usage:   "Number of concurrent workers (default: one per CPU)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Report path",
				Value:   outputFile,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return errors.New("expected exactly one argument: folder path")
			}

			cfg, err := config.Load(cmd.String("config"))
			if err != nil {
				return err
			}

			if cmd.IsSet("encoding") {
				cfg.Encoding = cmd.String("encoding")
			}

			if cmd.IsSet("skip-invalid-rows") {
				cfg.SkipInvalidRows = cmd.Bool("skip-invalid-rows")
			}

			if cmd.IsSet("workers") {
				cfg.Workers = cmd.Int("workers")
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			if cfg.Workers == 0 {
				cfg.Workers = runtime.NumCPU()
			}

			return runReport(ctx, cmd.Args().First(), cmd.String("output"), cmd.Bool("redact-path"), cfg)
		},
	}
}

func runReport(ctx context.Context, folder, reportPath string, redact bool, cfg config.Config) error {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%q: %w", folder, errNotDirectory)
	}

	files, err := collectExportFiles(folder)
	if err != nil {
		return fmt.Errorf("scanning folder: %w", err)
	}

	if len(files) == 0 {
		return fmt.Errorf("%q: %w", folder, errNoExports)
	}

	run := uuid.New().String()

	slog.Info("report run", "run", run, "folder", folder)
	fmt.Fprintf(os.Stderr, "Found %d files to parse (%d workers)\n", len(files), cfg.Workers)

	// Each file is independent: a failure is recorded in its own slot and never stops the others.
	startTime := time.Now()
	results := make([]Record, len(files))

	var progress atomic.Int64

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(cfg.Workers)

	for idx, filePath := range files {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				results[idx] = Record{File: filePath, Error: err.Error(), ErrorKind: "Canceled"}

				return nil
			}

			results[idx] = processFile(filePath, cfg)

			done := progress.Add(1)
			fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", done, len(files), filePath)

			return nil
		})
	}

	_ = group.Wait()

	out, err := os.Create(reportPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	failed := 0

	var totalDecode, totalParse time.Duration

	for idx := range results {
		record := &results[idx]
		record.Run = run

		if record.Error != "" {
			failed++

			slog.Warn("file failed", "file", files[idx], "kind", record.ErrorKind, "error", record.Error)
		}

		if record.Timing != nil {
			totalDecode += millisToDuration(record.Timing.DecodeMs)
			totalParse += millisToDuration(record.Timing.ParseMs)
		}

		if redact {
			record.File = ""
		}

		if err := enc.Encode(record); err != nil {
			slog.Error("writing record", "file", files[idx], "error", err)
		}
	}

	out.Close()

	if err := compressFile(reportPath); err != nil {
		slog.Error("compressing report", "error", err)
	}

	elapsed := time.Since(startTime)

	fmt.Fprintf(os.Stderr, "\nDone: %d files in %s (%d failed)\n", len(files), elapsed.Truncate(time.Millisecond), failed)
	fmt.Fprintf(os.Stderr, "Report written to %s (and %s.gz)\n", reportPath, reportPath)

	if parsed := len(files) - failed; parsed > 0 {
		fmt.Fprintf(os.Stderr, "  avg/file:    %s (decode: %s, parse: %s)\n",
			(totalDecode+totalParse)/time.Duration(parsed),
			totalDecode/time.Duration(parsed),
			totalParse/time.Duration(parsed),
		)
	}

	fmt.Fprintln(os.Stderr)

	return runDigest(reportPath, "")
}

func processFile(filePath string, cfg config.Config) Record {
	fileStart := time.Now()
	timing := &RecordTiming{}

	text, err := codepage.DecodeFile(filePath, cfg.Encoding)

	timing.DecodeMs = durationMs(time.Since(fileStart))

	if err != nil {
		return Record{File: filePath, Error: err.Error(), ErrorKind: isokin.ErrorKind(err), Timing: timing}
	}

	opts := isokin.DefaultOptions()
	opts.SkipInvalidRows = cfg.SkipInvalidRows
	opts.DefaultSampleRate = cfg.DefaultSampleRate

	parseStart := time.Now()

	m, err := isokin.Parse(text, opts)

	timing.ParseMs = durationMs(time.Since(parseStart))
	timing.TotalMs = durationMs(time.Since(fileStart))

	if err != nil {
		return Record{File: filePath, Error: err.Error(), ErrorKind: isokin.ErrorKind(err), Timing: timing}
	}

	return Record{
		File:     filePath,
		Analysis: output.MeasurementToMap(m, false),
		Timing:   timing,
	}
}

func durationMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}

func millisToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

func collectExportFiles(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if strings.ToLower(filepath.Ext(path)) == ".txt" {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)

	return files, nil
}

func compressFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // reading our own output file
	if err != nil {
		return err
	}

	gzFile, err := os.Create(path + ".gz")
	if err != nil {
		return err
	}
	defer gzFile.Close()

	gzWriter := gzip.NewWriter(gzFile)

	if _, err := gzWriter.Write(data); err != nil {
		return err
	}

	return gzWriter.Close()
}
