// Package sample extracts the numeric sample table from the data section.
package sample

import (
	"fmt"

	"github.com/farcloser/isokin/internal/parse/metadata"
	"github.com/farcloser/isokin/internal/types"
)

// Names are the accepted data section names.
//
//nolint:gochecknoglobals
var Names = []string{"Data", "data"}

type Options struct {
	// SkipInvalidRows drops rows that fail coercion and returns them as warnings instead of aborting.
	SkipInvalidRows bool
}

// Extract parses every row of section into a force, velocity, angle sample.
func Extract(section types.RawSection, opts Options) (types.SampleTable, []error, error) {
	table := make(types.SampleTable, 0, len(section.Rows))

	var skipped []error

	for _, row := range section.Rows {
		sample, err := parseRow(row)
		if err != nil {
			if !opts.SkipInvalidRows {
				return nil, nil, err
			}

			skipped = append(skipped, err)

			continue
		}

		table = append(table, sample)
	}

	if len(table) == 0 {
		return nil, skipped, fmt.Errorf("%w: [%s] holds no samples", types.ErrMalformedFile, section.Name)
	}

	return table, skipped, nil
}

func parseRow(row types.Row) (types.Sample, error) {
	if len(row.Fields) != types.SampleColumns {
		return types.Sample{}, &types.InvalidSampleRowError{
			Line:   row.Line,
			Fields: row.Fields,
			Reason: fmt.Sprintf("expected %d fields, got %d", types.SampleColumns, len(row.Fields)),
		}
	}

	var values [types.SampleColumns]float64

	for i, field := range row.Fields {
		n, ok := metadata.ParseNumber(field)
		if !ok {
			return types.Sample{}, &types.InvalidSampleRowError{
				Line:   row.Line,
				Fields: row.Fields,
				Reason: fmt.Sprintf("field %d is not a number", i+1),
			}
		}

		values[i] = n
	}

	return types.Sample{
		Force:    values[types.ColumnForce],
		Velocity: values[types.ColumnVelocity],
		Angle:    values[types.ColumnAngle],
	}, nil
}
