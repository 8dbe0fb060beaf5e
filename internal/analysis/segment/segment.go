// Package segment cuts the velocity channel into alternating extension and flexion splits.
package segment

import (
	"fmt"

	"github.com/farcloser/isokin/internal/analysis/shared"
	"github.com/farcloser/isokin/internal/types"
)

// Segment walks velocity and closes a split at every accepted sign change. Positive velocity is
// extension, negative is flexion, zero samples stay in the current split.
//
// A reversal at i is accepted only when the split it closes keeps at least two samples and the
// sample at i+1 does not swing back, so every split satisfies EndIndex > StartIndex. The splits
// cover [0, len(velocity)-1] without gaps and alternate direction.
//
// When no reversal is accepted the table is one split and a warning is returned alongside it.
func Segment(velocity []float64) (types.SplitCollection, *types.DegenerateSegmentationWarning, error) {
	count := len(velocity)
	if count < shared.MinSplitSamples {
		return types.SplitCollection{}, nil, fmt.Errorf("%w: %d samples, need at least %d",
			types.ErrInsufficientSamples, count, shared.MinSplitSamples)
	}

	current, found := firstDirection(velocity)

	var (
		splits []types.Split
		start  int
	)

	for idx := 1; idx < count-1; idx++ {
		dir, moving := direction(velocity[idx])
		if !moving || dir == current {
			continue
		}

		if idx-start < shared.MinSplitSamples {
			continue
		}

		if next, nextMoving := direction(velocity[idx+1]); nextMoving && next == current {
			continue
		}

		splits = append(splits, newSplit(start, idx-1, current))
		start = idx
		current = dir
	}

	splits = append(splits, newSplit(start, count-1, current))

	collection := types.SplitCollection{
		Splits:     splits,
		StartIndex: 0,
		EndIndex:   count - 1,
	}

	if len(splits) == 1 || !found {
		return collection, &types.DegenerateSegmentationWarning{Direction: current, Samples: count}, nil
	}

	return collection, nil, nil
}

func newSplit(start, end int, dir types.Direction) types.Split {
	return types.Split{
		StartIndex: start,
		EndIndex:   end,
		Direction:  dir,
		Color:      dir.Color(),
	}
}

// firstDirection returns the direction of the first non-zero sample. An all-zero channel reports
// extension and false.
func firstDirection(velocity []float64) (types.Direction, bool) {
	for _, v := range velocity {
		if dir, moving := direction(v); moving {
			return dir, true
		}
	}

	return types.Extension, false
}

func direction(v float64) (types.Direction, bool) {
	switch {
	case v > 0:
		return types.Extension, true
	case v < 0:
		return types.Flexion, true
	default:
		return types.Extension, false
	}
}
