package segment_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/isokin/internal/analysis/segment"
	"github.com/farcloser/isokin/internal/types"
)

// requireWellFormed checks coverage without gaps, alternation and the minimum split length.
func requireWellFormed(t *testing.T, splits types.SplitCollection, count int) {
	t.Helper()

	require.NotEmpty(t, splits.Splits)
	assert.Equal(t, 0, splits.StartIndex)
	assert.Equal(t, count-1, splits.EndIndex)
	assert.Equal(t, 0, splits.Splits[0].StartIndex)
	assert.Equal(t, count-1, splits.Splits[len(splits.Splits)-1].EndIndex)

	for i, split := range splits.Splits {
		assert.Greater(t, split.EndIndex, split.StartIndex, "split %d", i)
		assert.Equal(t, split.Direction.Color(), split.Color)

		if i == 0 {
			continue
		}

		prev := splits.Splits[i-1]
		assert.Equal(t, prev.EndIndex+1, split.StartIndex, "gap before split %d", i)
		assert.NotEqual(t, prev.Direction, split.Direction, "split %d does not alternate", i)
	}
}

func TestSegmentMinimal(t *testing.T) {
	t.Parallel()

	splits, warning, err := segment.Segment([]float64{1, 1, -1, -1})
	require.NoError(t, err)
	assert.Nil(t, warning)

	assert.Equal(t, []types.Split{
		{StartIndex: 0, EndIndex: 1, Direction: types.Extension, Color: types.Extension.Color()},
		{StartIndex: 2, EndIndex: 3, Direction: types.Flexion, Color: types.Flexion.Color()},
	}, splits.Splits)
	assert.Equal(t, 1, splits.Repetitions())
}

func TestSegmentSine(t *testing.T) {
	t.Parallel()

	const count = 400

	velocity := make([]float64, count)
	for i := range velocity {
		velocity[i] = 60 * math.Sin(2*math.Pi*float64(i)/100)
	}

	splits, warning, err := segment.Segment(velocity)
	require.NoError(t, err)
	assert.Nil(t, warning)

	requireWellFormed(t, splits, count)
	assert.Len(t, splits.Splits, 8)
	assert.Equal(t, 4, splits.Repetitions())
	assert.Equal(t, types.Extension, splits.Splits[0].Direction)
}

func TestSegmentStartsWithFlexion(t *testing.T) {
	t.Parallel()

	velocity := []float64{0, -5, -10, -5, 0, 5, 10, 5, 0, -5, -10}

	splits, warning, err := segment.Segment(velocity)
	require.NoError(t, err)
	assert.Nil(t, warning)

	requireWellFormed(t, splits, len(velocity))
	require.Len(t, splits.Splits, 3)
	assert.Equal(t, types.Flexion, splits.Splits[0].Direction)
	assert.Equal(t, 2, splits.Repetitions())
}

func TestSegmentIgnoresGlitch(t *testing.T) {
	t.Parallel()

	velocity := []float64{10, 10, 10, -1, 10, 10, -10, -10, -10}

	splits, _, err := segment.Segment(velocity)
	require.NoError(t, err)

	requireWellFormed(t, splits, len(velocity))
	require.Len(t, splits.Splits, 2)
	assert.Equal(t, 5, splits.Splits[0].EndIndex)
}

func TestSegmentLastSampleReversal(t *testing.T) {
	t.Parallel()

	velocity := []float64{10, 10, 10, -10}

	splits, warning, err := segment.Segment(velocity)
	require.NoError(t, err)
	require.NotNil(t, warning)

	requireWellFormed(t, splits, len(velocity))
	assert.Len(t, splits.Splits, 1)
}

func TestSegmentDegenerate(t *testing.T) {
	t.Parallel()

	for name, velocity := range map[string][]float64{
		"one direction": {1, 2, 3, 2, 1},
		"all zero":      {0, 0, 0},
		"two samples":   {5, -5},
	} {
		splits, warning, err := segment.Segment(velocity)
		require.NoError(t, err, name)
		require.NotNil(t, warning, name)

		assert.ErrorIs(t, warning, types.ErrDegenerateSegmentation, name)
		assert.Equal(t, len(velocity), warning.Samples, name)
		requireWellFormed(t, splits, len(velocity))
		assert.Len(t, splits.Splits, 1, name)
	}
}

func TestSegmentInsufficientSamples(t *testing.T) {
	t.Parallel()

	for _, velocity := range [][]float64{nil, {3}} {
		_, _, err := segment.Segment(velocity)
		require.ErrorIs(t, err, types.ErrInsufficientSamples)
	}
}
