package symmetry_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farcloser/isokin/internal/analysis/symmetry"
	"github.com/farcloser/isokin/internal/types"
)

func TestPercent(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		right, left float64
		want        float64
	}{
		{100, 100, 100},
		{0, 0, 100},
		{50, 100, 50},
		{100, 50, 50},
		{-80, 100, 80},
		{-40, -50, 80},
		{0, 10, 0},
	}

	for _, tc := range testCases {
		got := symmetry.Percent(tc.right, tc.left)
		assert.True(t, got.Defined, "%v/%v", tc.right, tc.left)
		assert.InDelta(t, tc.want, got.Percent, 1e-12, "%v/%v", tc.right, tc.left)
	}

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		got := symmetry.Percent(bad, 10)
		assert.False(t, got.Defined)
		assert.True(t, math.IsNaN(got.Percent))

		got = symmetry.Percent(10, bad)
		assert.False(t, got.Defined)
	}
}

func TestPercentIsSymmetric(t *testing.T) {
	t.Parallel()

	for _, pair := range [][2]float64{{1, 3}, {-7, 2}, {0.5, 0.25}} {
		assert.Equal(t, symmetry.Percent(pair[0], pair[1]), symmetry.Percent(pair[1], pair[0]))
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	left := types.AnalysisMap{"112": 40, "212": math.NaN(), "170": 3, "130": 0, "999": 1}
	right := types.AnalysisMap{"112": 50, "212": 20, "170": 4, "130": 0, "999": 1, "300": 10}

	result := symmetry.Compare(left, right)

	assert.Len(t, result, 3)
	assert.InDelta(t, 80.0, result["112"].Percent, 1e-12)
	assert.False(t, result["212"].Defined)
	assert.InDelta(t, 100.0, result["130"].Percent, 0)
	assert.NotContains(t, result, "170")
	assert.NotContains(t, result, "300")
	assert.NotContains(t, result, "999")
}
