package isokin_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/isokin"
)

func parseFixture(t *testing.T) *isokin.Measurement {
	t.Helper()

	m, err := isokin.Parse(fixture("1\tright"), isokin.DefaultOptions())
	require.NoError(t, err)

	return m
}

func TestToggleRepetition(t *testing.T) {
	t.Parallel()

	m := parseFixture(t)

	changed, err := m.ToggleRepetition(0)
	require.NoError(t, err)
	assert.Equal(t, []isokin.Field{
		isokin.FieldSplitCollections,
		isokin.FieldAveragePowerExt,
		isokin.FieldAveragePowerFlex,
		isokin.FieldAnalysis,
		isokin.FieldRepetitions,
	}, changed)

	assert.Equal(t, map[int]bool{0: true}, m.DisabledSet())

	for key, collection := range m.SplitCollections {
		if key == "averagePowerExt" || key == "averagePowerFlex" {
			continue
		}

		assert.True(t, collection.Splits[0].Disabled, key)
		assert.True(t, collection.Splits[1].Disabled, key)
		assert.False(t, collection.Splits[2].Disabled, key)
		assert.False(t, collection.Splits[3].Disabled, key)
	}

	assert.InDelta(t, 54.0, m.Analysis["112"], 1e-12)
	assert.InDelta(t, 36.0, m.Analysis["212"], 1e-12)
	assert.InDelta(t, 1.0, m.Analysis["170"], 0)
	assert.InDelta(t, 0.0, m.Analysis["118"], 0)
	assert.Equal(t, []float64{54}, m.Repetitions["torquePeakExt"])
	assert.Equal(t, []float64{0, 0, 0, 0}, m.PointCollections["averagePowerExt"].Variance())
	assert.InDelta(t, 54*60*0.017453292519943295, m.PointCollections["averagePowerExt"].At(1), 1e-9)
}

func TestToggleRoundTrip(t *testing.T) {
	t.Parallel()

	m := parseFixture(t)

	analysis := m.Analysis
	reps := m.Repetitions
	splits := m.SplitCollections
	avgExt := m.PointCollections["averagePowerExt"].Values()
	avgFlex := m.PointCollections["averagePowerFlex"].Values()

	for _, rep := range []int{1, 0, 1, 0} {
		_, err := m.ToggleRepetition(rep)
		require.NoError(t, err)
	}

	assert.Equal(t, analysis, m.Analysis)
	assert.Equal(t, reps, m.Repetitions)
	assert.Equal(t, splits, m.SplitCollections)
	assert.Equal(t, avgExt, m.PointCollections["averagePowerExt"].Values())
	assert.Equal(t, avgFlex, m.PointCollections["averagePowerFlex"].Values())
	assert.Empty(t, m.DisabledSet())
}

func TestToggleKeepsPreviousSnapshot(t *testing.T) {
	t.Parallel()

	m := parseFixture(t)

	before := m.Analysis
	beforeSplits := m.SplitCollections["torque"]

	_, err := m.ToggleRepetition(1)
	require.NoError(t, err)

	assert.InDelta(t, 52.0, before["112"], 1e-12)
	assert.False(t, beforeSplits.Splits[2].Disabled)
	assert.InDelta(t, 50.0, m.Analysis["112"], 1e-12)
}

func TestToggleOutOfRange(t *testing.T) {
	t.Parallel()

	m := parseFixture(t)

	for _, index := range []int{-1, 2, 10} {
		changed, err := m.ToggleRepetition(index)
		require.ErrorIs(t, err, isokin.ErrRepetitionOutOfRange)
		assert.Nil(t, changed)
	}

	assert.Empty(t, m.DisabledSet())
	assert.InDelta(t, 52.0, m.Analysis["112"], 1e-12)
}

func TestToggleConcurrent(t *testing.T) {
	t.Parallel()

	m := parseFixture(t)
	expected := m.Analysis

	var wg sync.WaitGroup

	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := m.ToggleRepetition(1)
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	assert.Equal(t, expected, m.Analysis)
}

func TestRecompute(t *testing.T) {
	t.Parallel()

	m := parseFixture(t)
	original := m.Analysis

	first, err := isokin.Recompute(m, map[int]bool{0: true})
	require.NoError(t, err)

	second, err := isokin.Recompute(m, map[int]bool{0: true})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.InDelta(t, 54.0, first.Analysis["112"], 1e-12)
	assert.Equal(t, original, m.Analysis)
	assert.Empty(t, m.DisabledSet())

	all, err := isokin.Recompute(m, map[int]bool{0: false})
	require.NoError(t, err)
	assert.Equal(t, original, all.Analysis)

	_, err = m.ToggleRepetition(0)
	require.NoError(t, err)
	assert.Equal(t, first.Analysis, m.Analysis)
}

func TestRecomputeAllDisabled(t *testing.T) {
	t.Parallel()

	m := parseFixture(t)

	derived, err := isokin.Recompute(m, map[int]bool{0: true, 1: true})
	require.NoError(t, err)

	assert.Equal(t, 0, derived.AveragePowerExt.Len())
	assert.Equal(t, 0, derived.AveragePowerFlex.Len())
	assert.InDelta(t, 0.0, derived.Analysis["170"], 0)
	assert.NotContains(t, derived.Analysis, "112")
	assert.NotContains(t, derived.Analysis, "300")
	assert.Empty(t, derived.Repetitions)
}

func TestRecomputeOutOfRange(t *testing.T) {
	t.Parallel()

	m := parseFixture(t)

	_, err := isokin.Recompute(m, map[int]bool{5: true})
	require.ErrorIs(t, err, isokin.ErrRepetitionOutOfRange)

	_, err = isokin.Recompute(&isokin.Measurement{}, nil)
	require.Error(t, err)
}

func TestSymmetry(t *testing.T) {
	t.Parallel()

	right := parseFixture(t)

	left, err := isokin.Parse(fixture("2\tleft"), isokin.DefaultOptions())
	require.NoError(t, err)

	result := isokin.Symmetry(left.Analysis, right.Analysis)

	require.Contains(t, result, "112")
	assert.NotContains(t, result, "170")
	assert.InDelta(t, 100.0, result["112"].Percent, 1e-12)
	assert.InDelta(t, 100.0, result["114"].Percent, 1e-12)

	_, err = left.ToggleRepetition(1)
	require.NoError(t, err)

	result = isokin.Symmetry(left.Analysis, right.Analysis)
	assert.InDelta(t, 100*50.0/52.0, result["112"].Percent, 1e-9)
	assert.True(t, result["112"].Defined)

	assert.InDelta(t, 100.0, isokin.SymmetryPercent(0, 0).Percent, 0)
}
