// Package export formats sample tables and per-sample records for external tools.
package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrColumnMismatch is returned when a row is not as wide as the column labels.
var ErrColumnMismatch = errors.New("row width does not match columns")

// FormatCSV renders rows under the given labels with ";" as separator and "," as decimal mark,
// lines joined by "\n" without a trailing newline.
func FormatCSV(rows [][]float64, columns []string) (string, error) {
	var buf bytes.Buffer

	if err := WriteCSV(&buf, rows, columns); err != nil {
		return "", err
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// WriteCSV streams the same format as FormatCSV, each line newline-terminated.
func WriteCSV(w io.Writer, rows [][]float64, columns []string) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'

	if err := writer.Write(columns); err != nil {
		return err
	}

	record := make([]string, len(columns))

	for i, row := range rows {
		if len(row) != len(columns) {
			return fmt.Errorf("%w: row %d has %d values, %d columns", ErrColumnMismatch, i, len(row), len(columns))
		}

		for j, v := range row {
			record[j] = DecimalComma(v)
		}

		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()

	return writer.Error()
}

// DecimalComma formats v with the shortest exact representation and a comma decimal mark.
func DecimalComma(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', -1, 64), ".", ",", 1)
}
