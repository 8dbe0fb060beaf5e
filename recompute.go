package isokin

import (
	"errors"
	"fmt"
	"maps"

	"github.com/farcloser/isokin/internal/analysis/channel"
	"github.com/farcloser/isokin/internal/analysis/metric"
	"github.com/farcloser/isokin/internal/analysis/symmetry"
	"github.com/farcloser/isokin/internal/types"
)

var errNotParsed = errors.New("measurement has no segmentation")

// Recompute rebuilds the derived fields for a disabled repetition set, keyed by repetition index.
// Repetitions absent from the set are enabled. The sample table, the primary channels and the split
// boundaries of m are left untouched, and m itself is not modified: the host decides whether to keep
// the result. Equal sets always yield identical output.
func Recompute(m *Measurement, disabled map[int]bool) (*Derived, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	base, err := m.baseSplits()
	if err != nil {
		return nil, err
	}

	for rep, off := range disabled {
		if off && (rep < 0 || rep >= base.Repetitions()) {
			return nil, fmt.Errorf("%w: %d (have %d)", types.ErrRepetitionOutOfRange, rep, base.Repetitions())
		}
	}

	return derive(base, m.PointCollections, m.SampleRate, disabled), nil
}

// ToggleRepetition flips the disabled state of both splits of a repetition and replaces the derived
// fields. Calls on one measurement are serialized. It returns the fields that changed.
func (m *Measurement) ToggleRepetition(index int) ([]Field, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	base, err := m.baseSplits()
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= base.Repetitions() {
		return nil, fmt.Errorf("%w: %d (have %d)", types.ErrRepetitionOutOfRange, index, base.Repetitions())
	}

	disabled := m.disabledSet()
	if disabled[index] {
		delete(disabled, index)
	} else {
		disabled[index] = true
	}

	m.apply(derive(base, m.PointCollections, m.SampleRate, disabled))

	changed := []Field{FieldSplitCollections}

	for i := 2 * index; i < min(2*index+2, len(base.Splits)); i++ {
		if base.Splits[i].Direction == types.Flexion {
			changed = append(changed, FieldAveragePowerFlex)
		} else {
			changed = append(changed, FieldAveragePowerExt)
		}
	}

	return append(changed, FieldAnalysis, FieldRepetitions), nil
}

// DisabledSet returns the currently disabled repetitions.
func (m *Measurement) DisabledSet() map[int]bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.disabledSet()
}

func (m *Measurement) disabledSet() map[int]bool {
	out := map[int]bool{}

	for i, split := range m.SplitCollections[types.ChannelPower].Splits {
		if split.Disabled {
			out[types.RepetitionOf(i)] = true
		}
	}

	return out
}

func (m *Measurement) baseSplits() (SplitCollection, error) {
	base, ok := m.SplitCollections[types.ChannelPower]
	if !ok || len(base.Splits) == 0 {
		return SplitCollection{}, errNotParsed
	}

	return base, nil
}

// apply swaps in freshly derived fields. Maps are replaced, never edited, so readers holding the
// previous ones keep a consistent view.
func (m *Measurement) apply(d *Derived) {
	points := maps.Clone(m.PointCollections)
	points[types.ChannelAveragePowerExt] = d.AveragePowerExt
	points[types.ChannelAveragePowerFlex] = d.AveragePowerFlex

	m.PointCollections = points
	m.SplitCollections = d.SplitCollections
	m.Analysis = d.Analysis
	m.Repetitions = d.Repetitions
}

func derive(
	base SplitCollection,
	channels map[ChannelKey]*Channel,
	sampleRate float64,
	disabled map[int]bool,
) *Derived {
	splits := base.WithDisabled(disabled)
	power := channels[types.ChannelPower].Values()

	avgExt := channel.Average(power, splits.Splits, types.Extension)
	avgFlex := channel.Average(power, splits.Splits, types.Flexion)

	collections := make(map[ChannelKey]SplitCollection, len(types.PrimaryChannels)+2)
	for _, key := range types.PrimaryChannels {
		collections[key] = splits.Clone()
	}

	collections[types.ChannelAveragePowerExt] = channel.AverageSplits(avgExt, types.Extension)
	collections[types.ChannelAveragePowerFlex] = channel.AverageSplits(avgFlex, types.Flexion)

	analysis, reps := metric.Aggregate(metric.SeriesFrom(channels, sampleRate), splits)

	return &Derived{
		SplitCollections: collections,
		AveragePowerExt:  avgExt,
		AveragePowerFlex: avgFlex,
		Analysis:         analysis,
		Repetitions:      reps,
	}
}

// Symmetry compares every analysis code present on both sides.
func Symmetry(left, right AnalysisMap) SymmetryResult {
	return symmetry.Compare(left, right)
}

// SymmetryPercent is 100 × min(|right|, |left|) / max(|right|, |left|). Two zeros give 100; a NaN
// or infinite input gives a value with Defined false.
func SymmetryPercent(right, left float64) SymmetryValue {
	return symmetry.Percent(right, left)
}
