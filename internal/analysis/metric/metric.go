// Package metric computes per-split scalar metrics and reduces them into the analysis map.
package metric

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"

	"github.com/farcloser/isokin/internal/analysis/shared"
	"github.com/farcloser/isokin/internal/types"
)

// Name is a semantic per-split metric.
type Name string

const (
	TorquePeak     Name = "torquePeak"
	TorquePeakPos  Name = "torquePeakPos"
	TorquePeakTime Name = "torquePeakTime"
	TorqueAvg      Name = "torqueAvg"
	PowerPeak      Name = "powerPeak"
	PowerAvg       Name = "powerAvg"
	Work           Name = "work"
	SpeedPeak      Name = "speedPeak"
	SpeedPeakPos   Name = "speedPeakPos"
	AngleMin       Name = "angleMin"
	AngleMax       Name = "angleMax"
	ROM            Name = "rom"
)

// Names lists every per-split metric.
//
//nolint:gochecknoglobals
var Names = []Name{
	TorquePeak, TorquePeakPos, TorquePeakTime, TorqueAvg,
	PowerPeak, PowerAvg, Work,
	SpeedPeak, SpeedPeakPos,
	AngleMin, AngleMax, ROM,
}

// Key is the repetition metrics key of a metric in a direction, e.g. torquePeakExt.
func Key(name Name, dir types.Direction) string {
	return string(name) + dir.Suffix()
}

// Series is the set of primary channels metrics are computed from.
type Series struct {
	Torque     []float64
	Power      []float64
	Speed      []float64
	Angle      []float64
	SampleRate float64 // Hz
}

// SeriesFrom picks the primary channels out of a channel map.
func SeriesFrom(channels map[types.ChannelKey]*types.Channel, sampleRate float64) Series {
	if sampleRate <= 0 {
		sampleRate = shared.DefaultSampleRate
	}

	return Series{
		Torque:     channels[types.ChannelTorque].Values(),
		Power:      channels[types.ChannelPower].Values(),
		Speed:      channels[types.ChannelSpeed].Values(),
		Angle:      channels[types.ChannelAngle].Values(),
		SampleRate: sampleRate,
	}
}

// Measure computes every metric of one split. Work is the trapezoidal integral of power over time
// with a constant step of 1/SampleRate.
func Measure(series Series, split types.Split) map[Name]float64 {
	lo, hi := split.StartIndex, split.EndIndex+1

	torque := series.Torque[lo:hi]
	power := series.Power[lo:hi]
	speed := series.Speed[lo:hi]
	angle := series.Angle[lo:hi]

	torqueIdx := peakIndex(torque)
	speedIdx := peakIndex(speed)
	angleMin := floats.Min(angle)
	angleMax := floats.Max(angle)

	return map[Name]float64{
		TorquePeak:     torque[torqueIdx],
		TorquePeakPos:  angle[torqueIdx],
		TorquePeakTime: float64(torqueIdx) / series.SampleRate,
		TorqueAvg:      stat.Mean(torque, nil),
		PowerPeak:      power[peakIndex(power)],
		PowerAvg:       stat.Mean(power, nil),
		Work:           work(power, series.SampleRate),
		SpeedPeak:      speed[speedIdx],
		SpeedPeakPos:   angle[speedIdx],
		AngleMin:       angleMin,
		AngleMax:       angleMax,
		ROM:            angleMax - angleMin,
	}
}

func work(power []float64, sampleRate float64) float64 {
	if len(power) < shared.MinSplitSamples {
		return 0
	}

	times := make([]float64, len(power))
	for i := range times {
		times[i] = float64(i) / sampleRate
	}

	return integrate.Trapezoidal(times, power)
}

// Aggregate measures every enabled split and reduces the results through the code table.
// Repetition metrics hold one value per enabled repetition owning that half, in repetition order.
func Aggregate(series Series, splits types.SplitCollection) (types.AnalysisMap, types.RepetitionMetrics) {
	values := map[types.Direction]map[Name][]float64{
		types.Extension: {},
		types.Flexion:   {},
	}
	counts := map[types.Direction]int{}
	reps := types.RepetitionMetrics{}

	for _, split := range splits.Splits {
		if split.Disabled {
			continue
		}

		counts[split.Direction]++

		measured := Measure(series, split)

		for _, name := range Names {
			v := measured[name]
			values[split.Direction][name] = append(values[split.Direction][name], v)
			reps[Key(name, split.Direction)] = append(reps[Key(name, split.Direction)], v)
		}
	}

	analysis := types.AnalysisMap{}

	for _, def := range table {
		switch def.Aggregation {
		case AggregateRatio:
			num, okNum := analysis[def.Numerator]
			den, okDen := analysis[def.Denominator]

			if okNum && okDen && den != 0 {
				analysis[def.Code] = 100 * math.Abs(num) / math.Abs(den)
			}
		case AggregateCount:
			analysis[def.Code] = float64(counts[def.Direction])
		default:
			if v, ok := reduce(values[def.Direction][def.Metric], def.Aggregation); ok {
				analysis[def.Code] = v
			}
		}
	}

	return analysis, reps
}

func reduce(vals []float64, agg Aggregation) (float64, bool) {
	if len(vals) == 0 {
		return 0, false
	}

	switch agg {
	case AggregatePeak:
		return vals[peakIndex(vals)], true
	case AggregateMean:
		return stat.Mean(vals, nil), true
	case AggregateSum:
		return floats.Sum(vals), true
	case AggregateCV:
		mean := stat.Mean(vals, nil)
		if mean == 0 {
			return 0, false
		}

		if len(vals) < 2 {
			return 0, true
		}

		return 100 * stat.StdDev(vals, nil) / math.Abs(mean), true
	default:
		return 0, false
	}
}

// peakIndex returns the index of the value with the largest magnitude, the first one on ties.
func peakIndex(vals []float64) int {
	best := 0

	for i, v := range vals {
		if math.Abs(v) > math.Abs(vals[best]) {
			best = i
		}
	}

	return best
}
