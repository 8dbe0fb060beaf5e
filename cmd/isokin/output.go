//nolint:wrapcheck
package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/farcloser/primordium/format"

	"github.com/farcloser/isokin"
	"github.com/farcloser/isokin/internal/analysis/metric"
	"github.com/farcloser/isokin/internal/output"
	"github.com/farcloser/isokin/internal/types"
)

// highlight is an analysis code shown in the friendly output.
type highlight struct {
	code  string
	label string
	unit  string
}

//nolint:gochecknoglobals // configuration data, effectively const
var highlights = []highlight{
	{code: "112", label: "peak torque (extension, mean)", unit: "Nm"},
	{code: "110", label: "peak torque (extension, best)", unit: "Nm"},
	{code: "212", label: "peak torque (flexion, mean)", unit: "Nm"},
	{code: "210", label: "peak torque (flexion, best)", unit: "Nm"},
	{code: "114", label: "angle of peak torque (extension)", unit: "°"},
	{code: "214", label: "angle of peak torque (flexion)", unit: "°"},
	{code: "122", label: "average power (extension)", unit: "W"},
	{code: "222", label: "average power (flexion)", unit: "W"},
	{code: "130", label: "total work (extension)", unit: "J"},
	{code: "230", label: "total work (flexion)", unit: "J"},
	{code: "118", label: "peak torque variation (extension)", unit: "%"},
	{code: "218", label: "peak torque variation (flexion)", unit: "%"},
	{code: "300", label: "flexion/extension ratio", unit: "%"},
}

func outputMeasurement(filePath string, m *isokin.Measurement, formatName string, debug bool) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	var meta map[string]any
	if debug {
		meta = output.MeasurementToMap(m, true)
	} else {
		meta = buildFriendlyOutput(m)
	}

	data := &format.Data{
		Object: filePath,
		Meta:   meta,
	}

	return formatter.PrintAll([]*format.Data{data}, os.Stdout)
}

// buildFriendlyOutput creates a user-friendly summary of the measurement.
func buildFriendlyOutput(m *isokin.Measurement) map[string]any {
	splits := m.SplitCollections[types.ChannelPower]
	disabled := m.DisabledSet()

	meta := map[string]any{
		"summary": fmt.Sprintf("%d samples at %g Hz, %d repetitions (%d disabled), %d diagnostics",
			len(m.Data), m.SampleRate, splits.Repetitions(), len(disabled), len(m.Diagnostics)),
		"session": map[string]any{
			"patient": m.Metadata.Session.Label("Patient"),
			"date":    m.Metadata.Session.Label("Date"),
			"sex":     m.Metadata.Session.Label("Sex"),
			"side":    m.Side.String(),
			"speed":   m.Metadata.Measurement.Label("Speed"),
		},
	}

	results := make(map[string]any)

	for _, h := range highlights {
		value, ok := m.Analysis[h.code]
		if !ok {
			continue
		}

		results[fmt.Sprintf("%s %s", h.code, h.label)] = fmt.Sprintf("%.1f %s", value, h.unit)
	}

	if len(results) > 0 {
		meta["analysis"] = results
	}

	reps := make([]any, 0, len(splits.Splits))

	for i, split := range splits.Splits {
		marker := "  "
		if split.Disabled {
			marker = "--"
		}

		reps = append(reps, fmt.Sprintf("%s #%d %s [%d-%d]",
			marker, types.RepetitionOf(i), split.Direction, split.StartIndex, split.EndIndex))
	}

	meta["splits"] = reps

	if quality := qualitySummary(m.Quality); len(quality) > 0 {
		meta["quality"] = quality
	}

	if len(m.Diagnostics) > 0 {
		diags := make([]any, 0, len(m.Diagnostics))
		for _, diag := range m.Diagnostics {
			diags = append(diags, fmt.Sprintf("[%s] %s", isokin.ErrorKind(diag), diag))
		}

		meta["diagnostics"] = diags
	}

	return meta
}

// qualitySummary lists the signal quality findings worth a look.
func qualitySummary(quality isokin.QualityResult) []any {
	var lines []any

	if sat := quality.Saturation; sat != nil && sat.Events > 0 {
		lines = append(lines, fmt.Sprintf("torque saturated at %.1f Nm: %d runs, longest %d samples",
			sat.Level, sat.Events, sat.LongestRun))
	}

	if base := quality.Baseline; base != nil && base.Defined {
		lines = append(lines, fmt.Sprintf("resting torque offset %.1f Nm over %d samples", base.Offset, base.RestSamples))
	}

	if drop := quality.Dropout; drop != nil && len(drop.Events) > 0 {
		lines = append(lines, fmt.Sprintf("%d torque jumps, %d stalled acquisitions", drop.DeltaCount, drop.StallCount))
	}

	return lines
}

func outputSymmetry(object string, result isokin.SymmetryResult, formatName string) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	codes := make([]string, 0, len(result))
	for code := range result {
		codes = append(codes, code)
	}

	slices.Sort(codes)

	lines := make(map[string]any, len(codes))

	for _, code := range codes {
		value := result[code]

		label := code
		if def, ok := metric.Lookup(code); ok {
			switch def.Aggregation {
			case metric.AggregateRatio:
				label = fmt.Sprintf("%s ratio %s/%s", code, def.Numerator, def.Denominator)
			case metric.AggregateCount:
			default:
				label = fmt.Sprintf("%s %s %s (%s)", code, def.Metric, def.Direction, def.Aggregation)
			}
		}

		if !value.Defined {
			lines[label] = "undefined"

			continue
		}

		lines[label] = fmt.Sprintf("%.1f%%", value.Percent)
	}

	data := &format.Data{
		Object: object,
		Meta: map[string]any{
			"symmetry": lines,
			"raw":      output.SymmetryToMap(result),
		},
	}

	return formatter.PrintAll([]*format.Data{data}, os.Stdout)
}
