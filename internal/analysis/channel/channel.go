// Package channel derives the per-sample channels and the across-repetition average curves.
package channel

import (
	"gonum.org/v1/gonum/stat"

	"github.com/farcloser/isokin/internal/analysis/shared"
	"github.com/farcloser/isokin/internal/types"
)

// Conversion carries the per-file factors applied to the raw columns.
type Conversion struct {
	VelocityFactor float64 // speed = velocity × VelocityFactor (zero means 1)
	MirrorAngle    bool    // negate the angle, for left-side measurements
}

// Build derives the primary channels, each aligned 1:1 with the table:
//
//	torque = force
//	power  = force × velocity × π/180
//	speed  = velocity × VelocityFactor
//	angle  = angle, negated when MirrorAngle
func Build(table types.SampleTable, conv Conversion) map[types.ChannelKey]*types.Channel {
	factor := conv.VelocityFactor
	if factor == 0 {
		factor = 1
	}

	angleSign := 1.0
	if conv.MirrorAngle {
		angleSign = -1
	}

	torque := make([]float64, len(table))
	power := make([]float64, len(table))
	speed := make([]float64, len(table))
	angle := make([]float64, len(table))

	for i, s := range table {
		torque[i] = s.Force
		power[i] = s.Force * s.Velocity * shared.DegToRad
		speed[i] = s.Velocity * factor
		angle[i] = s.Angle * angleSign
	}

	return map[types.ChannelKey]*types.Channel{
		types.ChannelTorque: types.NewChannel(types.ChannelTorque, torque),
		types.ChannelPower:  types.NewChannel(types.ChannelPower, power),
		types.ChannelSpeed:  types.NewChannel(types.ChannelSpeed, speed),
		types.ChannelAngle:  types.NewChannel(types.ChannelAngle, angle),
	}
}

// AverageKey returns the average channel key for a direction.
func AverageKey(dir types.Direction) types.ChannelKey {
	if dir == types.Flexion {
		return types.ChannelAveragePowerFlex
	}

	return types.ChannelAveragePowerExt
}

// Average overlays the enabled splits of one direction, aligned on their first sample, and returns
// the mean power at each offset with its variance. The curve is as long as the longest enabled split;
// shorter splits stop contributing once they end, they are not stretched.
func Average(power []float64, splits []types.Split, dir types.Direction) *types.Channel {
	var selected []types.Split

	length := 0

	for _, split := range splits {
		if split.Disabled || split.Direction != dir {
			continue
		}

		selected = append(selected, split)
		length = max(length, split.Len())
	}

	means := make([]float64, length)
	variances := make([]float64, length)
	column := make([]float64, 0, len(selected))

	for offset := range length {
		column = column[:0]

		for _, split := range selected {
			if offset < split.Len() {
				column = append(column, power[split.StartIndex+offset])
			}
		}

		if len(column) == 1 {
			means[offset] = column[0]

			continue
		}

		means[offset], variances[offset] = stat.MeanVariance(column, nil)
	}

	ch := types.NewChannel(AverageKey(dir), means)
	ch.SetVariance(variances)

	return ch
}

// AverageSplits returns the split collection of an average channel: one split over the whole curve,
// or none when the curve is empty.
func AverageSplits(avg *types.Channel, dir types.Direction) types.SplitCollection {
	if avg.Len() == 0 {
		return types.SplitCollection{Splits: []types.Split{}}
	}

	return types.SplitCollection{
		Splits: []types.Split{{
			StartIndex: 0,
			EndIndex:   avg.Len() - 1,
			Direction:  dir,
			Color:      dir.Color(),
		}},
		StartIndex: 0,
		EndIndex:   avg.Len() - 1,
	}
}
