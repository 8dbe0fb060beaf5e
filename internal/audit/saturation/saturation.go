// Package saturation finds runs of torque samples pinned at the channel extreme.
package saturation

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/farcloser/isokin/internal/types"
)

// MinRun is the shortest run of identical extreme samples counted as an event.
const MinRun = 3

// Detect scans values for runs of at least MinRun consecutive samples equal to the largest
// magnitude of the series. A signal that is zero everywhere never saturates.
func Detect(values []float64) *types.SaturationResult {
	result := &types.SaturationResult{Samples: len(values)}

	if len(values) == 0 {
		return result
	}

	hi, lo := floats.Max(values), floats.Min(values)

	level := hi
	if math.Abs(lo) > math.Abs(hi) {
		level = lo
	}

	if level == 0 {
		return result
	}

	result.Level = level

	consecutive := 0

	for _, v := range values {
		if v == level {
			consecutive++

			continue
		}

		record(result, consecutive)

		consecutive = 0
	}

	// Flush a trailing run
	record(result, consecutive)

	return result
}

func record(result *types.SaturationResult, run int) {
	if run < MinRun {
		return
	}

	result.Events++
	result.SaturatedSamples += run
	result.LongestRun = max(result.LongestRun, run)
}
