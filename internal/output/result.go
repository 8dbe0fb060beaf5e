// Package output provides shared result serialization for isokin JSON output.
package output

import (
	"math"
	"slices"

	"github.com/farcloser/isokin"
	"github.com/farcloser/isokin/internal/analysis/metric"
	"github.com/farcloser/isokin/internal/types"
)

// MeasurementToMap converts a parsed measurement into the canonical map structure used for JSON and
// JSONL serialization. Raw channel values and sections are only included when full is set.
func MeasurementToMap(m *isokin.Measurement, full bool) map[string]any {
	meta := map[string]any{
		"summary": map[string]any{
			"samples":     len(m.Data),
			"sample_rate": m.SampleRate,
			"side":        m.Side.String(),
			"repetitions": m.SplitCollections[types.ChannelPower].Repetitions(),
			"disabled":    disabledList(m.DisabledSet()),
			"diagnostics": len(m.Diagnostics),
		},
		"metadata": map[string]any{
			"session":       RecordToMap(m.Metadata.Session),
			"measurement":   RecordToMap(m.Metadata.Measurement),
			"configuration": RecordToMap(m.Metadata.Configuration),
		},
		"analysis":    AnalysisToMap(m.Analysis),
		"repetitions": RepetitionsToMap(m.Repetitions),
		"channels":    ChannelsToMap(m.PointCollections, full),
		"splits":      SplitsToMap(m.SplitCollections[types.ChannelPower]),
		"quality":     QualityToMap(m.Quality),
	}

	if len(m.Diagnostics) > 0 {
		diags := make([]any, 0, len(m.Diagnostics))
		for _, diag := range m.Diagnostics {
			diags = append(diags, map[string]any{
				"kind":    isokin.ErrorKind(diag),
				"message": diag.Error(),
			})
		}

		meta["diagnostics"] = diags
	}

	if full {
		meta["analysis_header"] = RecordToMap(m.Metadata.Analysis)
	}

	return meta
}

// RecordToMap converts a metadata record to plain values.
func RecordToMap(rec types.Record) map[string]any {
	out := make(map[string]any, len(rec.Fields))
	for key, value := range rec.Fields {
		out[key] = value.Any()
	}

	return out
}

// AnalysisToMap annotates each code with its definition.
func AnalysisToMap(analysis types.AnalysisMap) map[string]any {
	out := make(map[string]any, len(analysis))

	for code, value := range analysis {
		entry := map[string]any{"value": value}

		if def, ok := metric.Lookup(code); ok {
			entry["aggregation"] = def.Aggregation.String()

			if def.Aggregation != metric.AggregateRatio {
				entry["direction"] = def.Direction.String()
			}

			if def.Metric != "" {
				entry["metric"] = string(def.Metric)
			}
		}

		out[code] = entry
	}

	return out
}

// RepetitionsToMap converts per-repetition metric series.
func RepetitionsToMap(reps types.RepetitionMetrics) map[string]any {
	out := make(map[string]any, len(reps))
	for key, values := range reps {
		out[key] = values
	}

	return out
}

// ChannelsToMap reports bounds per channel, and values when full is set.
func ChannelsToMap(channels map[types.ChannelKey]*types.Channel, full bool) map[string]any {
	out := make(map[string]any, len(channels))

	for key, ch := range channels {
		entry := map[string]any{
			"length": ch.Len(),
			"min":    ch.MinValue(),
			"max":    ch.MaxValue(),
		}

		if full {
			entry["values"] = ch.Values()
			if v := ch.Variance(); v != nil {
				entry["variance"] = v
			}
		}

		out[string(key)] = entry
	}

	return out
}

// SplitsToMap lists the splits of a collection.
func SplitsToMap(collection types.SplitCollection) []any {
	out := make([]any, 0, len(collection.Splits))

	for i, split := range collection.Splits {
		out = append(out, map[string]any{
			"repetition": types.RepetitionOf(i),
			"start":      split.StartIndex,
			"end":        split.EndIndex,
			"direction":  split.Direction.String(),
			"color":      split.Color,
			"disabled":   split.Disabled,
		})
	}

	return out
}

// QualityToMap converts the signal quality checks. Missing checks are omitted.
func QualityToMap(quality types.QualityResult) map[string]any {
	out := make(map[string]any, 3) //nolint:mnd // saturation, baseline, dropout

	if sat := quality.Saturation; sat != nil {
		out["saturation"] = map[string]any{
			"events":            sat.Events,
			"saturated_samples": sat.SaturatedSamples,
			"longest_run":       sat.LongestRun,
			"level":             sat.Level,
		}
	}

	if base := quality.Baseline; base != nil {
		entry := map[string]any{
			"rest_samples": base.RestSamples,
			"offset":       nil,
		}

		if base.Defined {
			entry["offset"] = base.Offset
		}

		out["baseline"] = entry
	}

	if drop := quality.Dropout; drop != nil {
		events := make([]any, 0, len(drop.Events))
		for _, event := range drop.Events {
			entry := map[string]any{
				"index":    event.Index,
				"time_s":   event.TimeSec,
				"type":     string(event.Type),
				"severity": event.Severity,
			}

			if event.Type == types.EventStall {
				entry["duration_ms"] = event.DurationMs
			}

			events = append(events, entry)
		}

		out["dropout"] = map[string]any{
			"deltas": drop.DeltaCount,
			"stalls": drop.StallCount,
			"events": events,
		}
	}

	return out
}

// SymmetryToMap converts a symmetry result. Undefined values serialize as nil.
func SymmetryToMap(result types.SymmetryResult) map[string]any {
	out := make(map[string]any, len(result))

	for code, value := range result {
		if !value.Defined || math.IsNaN(value.Percent) {
			out[code] = nil

			continue
		}

		out[code] = value.Percent
	}

	return out
}

func disabledList(set map[int]bool) []int {
	out := make([]int, 0, len(set))

	for rep := range set {
		out = append(out, rep)
	}

	slices.Sort(out)

	return out
}
