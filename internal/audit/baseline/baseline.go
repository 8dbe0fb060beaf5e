// Package baseline measures the torque offset while the lever is at rest.
package baseline

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/farcloser/isokin/internal/types"
)

// RestVelocity is the speed (°/s) under which the lever is considered at rest.
const RestVelocity = 1.0

// Detect averages the torque of every resting sample. Gravity compensation or a drifting zero show up
// as a non-zero offset.
func Detect(table types.SampleTable) *types.BaselineResult {
	result := &types.BaselineResult{Samples: len(table)}

	rest := make([]float64, 0, len(table))

	for _, s := range table {
		if math.Abs(s.Velocity) < RestVelocity {
			rest = append(rest, s.Force)
		}
	}

	if len(rest) == 0 {
		return result
	}

	result.Offset = stat.Mean(rest, nil)
	result.RestSamples = len(rest)
	result.Defined = true

	return result
}
