//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/isokin"
	"github.com/farcloser/isokin/internal/export"
	"github.com/farcloser/isokin/internal/types"
)

var (
	errExportArgs     = errors.New("expected exactly one argument: export file path")
	errUnknownExport  = errors.New("unknown export format (valid: csv, parquet, xlsx)")
	errColumnsRawOnly = errors.New("--columns requires --raw")
)

//nolint:gochecknoglobals
var exportFormats = []string{"csv", "parquet", "xlsx"}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Write the samples and derived channels as csv, parquet or xlsx",
		ArgsUsage: "<file>",
		Flags: append(parseFlags(),
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output path, - for stdout",
				Value:   "-",
			},
			&cli.StringFlag{
				Name:  "as",
				Usage: "Export format: csv, parquet, xlsx",
				Value: "csv",
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "csv only: export the sample table alone (force, velocity, angle)",
			},
			&cli.StringFlag{
				Name:  "columns",
				Usage: "csv --raw only: comma-separated column labels",
			},
		),
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errExportArgs, cmd.NArg())
			}

			if cmd.IsSet("columns") && !cmd.Bool("raw") {
				return errColumnsRawOnly
			}

			if !slices.Contains(exportFormats, cmd.String("as")) {
				return fmt.Errorf("%w: %q", errUnknownExport, cmd.String("as"))
			}

			cfg, err := settings(cmd)
			if err != nil {
				return err
			}

			m, err := load(cmd.Args().First(), cfg)
			if err != nil {
				return err
			}

			out, closer, err := openOutput(cmd.String("out"))
			if err != nil {
				return err
			}
			defer closer()

			records := export.Records(m.Data, m.PointCollections, m.SplitCollections[types.ChannelPower], m.SampleRate)

			switch cmd.String("as") {
			case "csv":
				if !cmd.Bool("raw") {
					return export.WriteCSV(out, export.RecordRows(records), export.RecordColumns)
				}

				columns := isokin.SampleColumns
				if cmd.IsSet("columns") {
					columns = strings.Split(cmd.String("columns"), ",")
				}

				return export.WriteCSV(out, m.Data.Rows(), columns)
			case "parquet":
				return export.WriteParquet(out, records)
			case "xlsx":
				return export.WriteXLSX(out, records, m.Analysis)
			default:
				return fmt.Errorf("%w: %q", errUnknownExport, cmd.String("as"))
			}
		},
	}
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}

	file, err := os.Create(path) //nolint:gosec // CLI tool writes user-specified paths
	if err != nil {
		return nil, func() {}, fmt.Errorf("creating %s: %w", path, err)
	}

	return file, func() { _ = file.Close() }, nil
}
