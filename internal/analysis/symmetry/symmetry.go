// Package symmetry compares left and right analysis values.
package symmetry

import (
	"math"

	"github.com/farcloser/isokin/internal/analysis/metric"
	"github.com/farcloser/isokin/internal/types"
)

// Percent returns 100 × min(|right|, |left|) / max(|right|, |left|).
// Two zeros are perfectly symmetric (100). A NaN or infinite input is undefined.
func Percent(right, left float64) types.SymmetryValue {
	if !finite(right) || !finite(left) {
		return types.SymmetryValue{Percent: math.NaN(), Defined: false}
	}

	r, l := math.Abs(right), math.Abs(left)
	if r == 0 && l == 0 {
		return types.SymmetryValue{Percent: 100, Defined: true}
	}

	return types.SymmetryValue{Percent: 100 * math.Min(r, l) / math.Max(r, l), Defined: true}
}

// Compare computes the symmetry of every table code present in both maps. Counts are not compared.
func Compare(left, right types.AnalysisMap) types.SymmetryResult {
	out := types.SymmetryResult{}

	for _, def := range metric.Definitions() {
		if def.Aggregation == metric.AggregateCount {
			continue
		}

		l, okLeft := left[def.Code]
		r, okRight := right[def.Code]

		if !okLeft || !okRight {
			continue
		}

		out[def.Code] = Percent(r, l)
	}

	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
