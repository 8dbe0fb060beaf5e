//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/isokin/internal/plot"
	"github.com/farcloser/isokin/internal/types"
)

var (
	errPlotArgs       = errors.New("expected exactly one argument: export file path")
	errUnknownChannel = errors.New("unknown channel (valid: torque, power, speed, angle, averagePowerExt, averagePowerFlex)")
	errUnknownImage   = errors.New("unknown image format (valid: png, svg)")
)

func plotCommand() *cli.Command {
	return &cli.Command{
		Name:      "plot",
		Usage:     "Draw one channel with its repetitions colored by direction",
		ArgsUsage: "<file>",
		Flags: append(parseFlags(),
			disableFlag(),
			&cli.StringFlag{
				Name:    "channel",
				Aliases: []string{"c"},
				Usage:   "Channel to draw: torque, power, speed, angle, averagePowerExt, averagePowerFlex",
				Value:   string(types.ChannelTorque),
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output path, - for stdout",
				Value:   "-",
			},
			&cli.StringFlag{
				Name:  "as",
				Usage: "Image format: png, svg",
				Value: string(plot.FormatPNG),
			},
		),
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errPlotArgs, cmd.NArg())
			}

			imageFormat := plot.Format(cmd.String("as"))
			if imageFormat != plot.FormatPNG && imageFormat != plot.FormatSVG {
				return fmt.Errorf("%w: %q", errUnknownImage, imageFormat)
			}

			cfg, err := settings(cmd)
			if err != nil {
				return err
			}

			disabled, err := parseRepetitions(cmd.String("disable"))
			if err != nil {
				return err
			}

			m, err := load(cmd.Args().First(), cfg)
			if err != nil {
				return err
			}

			if err := disable(m, disabled); err != nil {
				return err
			}

			key := types.ChannelKey(cmd.String("channel"))

			ch, ok := m.PointCollections[key]
			if !ok {
				return fmt.Errorf("%w: %q", errUnknownChannel, key)
			}

			out, closer, err := openOutput(cmd.String("out"))
			if err != nil {
				return err
			}
			defer closer()

			return plot.Render(out, ch, m.SplitCollections[key], m.SampleRate, imageFormat)
		},
	}
}
