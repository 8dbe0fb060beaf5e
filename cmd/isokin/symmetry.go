//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/isokin"
	"github.com/farcloser/isokin/internal/types"
)

var errSymmetryArgs = errors.New("expected exactly two arguments: left and right export files")

func symmetryCommand() *cli.Command {
	return &cli.Command{
		Name:      "symmetry",
		Usage:     "Compare the analysis of a left and a right measurement",
		ArgsUsage: "<left-file> <right-file>",
		Flags:     parseFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 2 { //nolint:mnd // left and right
				return fmt.Errorf("%w: got %d", errSymmetryArgs, cmd.NArg())
			}

			cfg, err := settings(cmd)
			if err != nil {
				return err
			}

			leftPath, rightPath := cmd.Args().Get(0), cmd.Args().Get(1)

			left, err := load(leftPath, cfg)
			if err != nil {
				return err
			}

			right, err := load(rightPath, cfg)
			if err != nil {
				return err
			}

			if left.Side == types.SideRight || right.Side == types.SideLeft {
				slog.Warn("sides look swapped", "left_file_side", left.Side.String(), "right_file_side", right.Side.String())
			}

			result := isokin.Symmetry(left.Analysis, right.Analysis)

			return outputSymmetry(leftPath+" | "+rightPath, result, cfg.Format)
		},
	}
}
