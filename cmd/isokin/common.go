//nolint:wrapcheck
package main

import (
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/isokin"
	"github.com/farcloser/isokin/internal/config"
	"github.com/farcloser/isokin/internal/integration/codepage"
)

func parseFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "YAML configuration file (ISOKIN_* environment variables override it)",
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
		&cli.FloatFlag{
			Name:  "sample-rate",
			Usage: "Sample rate in Hz when the file does not specify one",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: console, json, markdown",
		},
	}
}

// settings merges the configuration file and environment with explicitly set flags.
func settings(cmd *cli.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return config.Config{}, err
	}

	if cmd.IsSet("encoding") {
		cfg.Encoding = cmd.String("encoding")
	}

	if cmd.IsSet("skip-invalid-rows") {
		cfg.SkipInvalidRows = cmd.Bool("skip-invalid-rows")
	}

	if cmd.IsSet("sample-rate") {
		cfg.DefaultSampleRate = cmd.Float("sample-rate")
	}

	if cmd.IsSet("format") {
		cfg.Format = cmd.String("format")
	}

	return cfg, cfg.Validate()
}

// load decodes and parses one export file. Errors carry the file name and the error kind.
func load(path string, cfg config.Config) (*isokin.Measurement, error) {
	text, err := codepage.DecodeFile(path, cfg.Encoding)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	opts := isokin.DefaultOptions()
	opts.SkipInvalidRows = cfg.SkipInvalidRows
	opts.DefaultSampleRate = cfg.DefaultSampleRate

	m, err := isokin.Parse(text, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", path, isokin.ErrorKind(err), err)
	}

	return m, nil
}
