package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/farcloser/isokin/internal/analysis/metric"
	"github.com/farcloser/isokin/internal/types"
)

const (
	samplesSheet  = "samples"
	analysisSheet = "analysis"
)

// WriteXLSX writes a workbook with a samples sheet (one row per record) and an analysis sheet (one
// row per code present in analysis, in code order).
func WriteXLSX(w io.Writer, records []Record, analysis types.AnalysisMap) error {
	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName("Sheet1", samplesSheet); err != nil {
		return err
	}

	header := []any{"index", "time_s", "force", "velocity", "angle", "torque", "power", "speed", "repetition", "direction", "disabled"}
	if err := book.SetSheetRow(samplesSheet, "A1", &header); err != nil {
		return err
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		row := []any{r.Index, r.TimeS, r.Force, r.Velocity, r.Angle, r.Torque, r.Power, r.Speed, r.Repetition, r.Direction, r.Disabled}
		if err := book.SetSheetRow(samplesSheet, cell, &row); err != nil {
			return fmt.Errorf("writing sample %d: %w", r.Index, err)
		}
	}

	if _, err := book.NewSheet(analysisSheet); err != nil {
		return err
	}

	header = []any{"code", "metric", "direction", "aggregation", "value"}
	if err := book.SetSheetRow(analysisSheet, "A1", &header); err != nil {
		return err
	}

	line := 2

	for _, def := range metric.Definitions() {
		value, ok := analysis[def.Code]
		if !ok {
			continue
		}

		cell, err := excelize.CoordinatesToCellName(1, line)
		if err != nil {
			return err
		}

		row := []any{def.Code, string(def.Metric), directionLabel(def), def.Aggregation.String(), value}
		if err := book.SetSheetRow(analysisSheet, cell, &row); err != nil {
			return err
		}

		line++
	}

	return book.Write(w)
}

func directionLabel(def metric.Definition) string {
	if def.Aggregation == metric.AggregateRatio {
		return ""
	}

	return def.Direction.String()
}
