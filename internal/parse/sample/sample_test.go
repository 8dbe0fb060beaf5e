package sample_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/isokin/internal/parse/sample"
	"github.com/farcloser/isokin/internal/types"
)

func dataSection(rows ...[]string) types.RawSection {
	sec := types.RawSection{Name: "Data"}
	for i, fields := range rows {
		sec.Rows = append(sec.Rows, types.Row{Line: i + 10, Fields: fields})
	}

	return sec
}

func TestExtract(t *testing.T) {
	t.Parallel()

	table, skipped, err := sample.Extract(dataSection(
		[]string{"10,5", "60", "-90"},
		[]string{"1e1", "-.5", "0"},
	), sample.Options{})
	require.NoError(t, err)
	assert.Empty(t, skipped)

	assert.Equal(t, types.SampleTable{
		{Force: 10.5, Velocity: 60, Angle: -90},
		{Force: 10, Velocity: -0.5, Angle: 0},
	}, table)
	assert.Equal(t, []float64{60, -0.5}, table.Column(types.ColumnVelocity))
	assert.Equal(t, [][]float64{{10.5, 60, -90}, {10, -0.5, 0}}, table.Rows())
}

func TestExtractInvalidRow(t *testing.T) {
	t.Parallel()

	testCases := map[string][]string{
		"too few fields":  {"1", "2"},
		"too many fields": {"1", "2", "3", "4"},
		"not a number":    {"1", "abc", "3"},
		"empty field":     {"1", "", "3"},
		"nan":             {"NaN", "1", "2"},
	}

	for name, fields := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, _, err := sample.Extract(dataSection([]string{"1", "2", "3"}, fields), sample.Options{})
			require.ErrorIs(t, err, types.ErrInvalidSampleRow)

			var rowErr *types.InvalidSampleRowError
			require.ErrorAs(t, err, &rowErr)
			assert.Equal(t, 11, rowErr.Line)
			assert.Equal(t, fields, rowErr.Fields)
		})
	}
}

func TestExtractSkipInvalidRows(t *testing.T) {
	t.Parallel()

	table, skipped, err := sample.Extract(dataSection(
		[]string{"1", "2", "3"},
		[]string{"x", "2", "3"},
		[]string{"4", "5", "6"},
	), sample.Options{SkipInvalidRows: true})
	require.NoError(t, err)
	assert.Len(t, table, 2)
	require.Len(t, skipped, 1)
	require.ErrorIs(t, skipped[0], types.ErrInvalidSampleRow)
}

func TestExtractEmpty(t *testing.T) {
	t.Parallel()

	_, _, err := sample.Extract(dataSection(), sample.Options{})
	require.ErrorIs(t, err, types.ErrMalformedFile)

	_, skipped, err := sample.Extract(dataSection([]string{"a", "b", "c"}), sample.Options{SkipInvalidRows: true})
	require.ErrorIs(t, err, types.ErrMalformedFile)
	assert.Len(t, skipped, 1)
}
