package isokin

import (
	"github.com/farcloser/isokin/internal/export"
)

// FormatCSV renders numeric rows under caller-supplied labels: ";" separated, "," as decimal mark,
// "\n" between lines and no trailing newline. It depends on nothing but the table shape.
func FormatCSV(rows [][]float64, columns []string) (string, error) {
	return export.FormatCSV(rows, columns)
}

// SampleColumns are the labels of SampleTable.Rows.
//
//nolint:gochecknoglobals
var SampleColumns = []string{"force", "velocity", "angle"}
