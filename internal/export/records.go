package export

import (
	"github.com/farcloser/isokin/internal/types"
)

// Record is one sample with its derived channels and the split it belongs to.
type Record struct {
	Index      int64
	TimeS      float64
	Force      float64
	Velocity   float64
	Angle      float64
	Torque     float64
	Power      float64
	Speed      float64
	Repetition int32
	Direction  string
	Disabled   bool
}

// Records joins the table, the primary channels and the splits into one record per sample.
func Records(
	table types.SampleTable,
	channels map[types.ChannelKey]*types.Channel,
	splits types.SplitCollection,
	sampleRate float64,
) []Record {
	out := make([]Record, len(table))

	for i, s := range table {
		out[i] = Record{
			Index:    int64(i),
			TimeS:    float64(i) / sampleRate,
			Force:    s.Force,
			Velocity: s.Velocity,
			Angle:    s.Angle,
			Torque:   channels[types.ChannelTorque].At(i),
			Power:    channels[types.ChannelPower].At(i),
			Speed:    channels[types.ChannelSpeed].At(i),
		}
	}

	for idx, split := range splits.Splits {
		for i := split.StartIndex; i <= split.EndIndex && i < len(out); i++ {
			out[i].Repetition = int32(types.RepetitionOf(idx)) //nolint:gosec // repetition counts are small
			out[i].Direction = split.Direction.String()
			out[i].Disabled = split.Disabled
		}
	}

	return out
}

// RecordColumns are the labels of the numeric part of a record, in RecordRows order.
//
//nolint:gochecknoglobals
var RecordColumns = []string{"time_s", "force", "velocity", "angle", "power", "speed", "repetition"}

// RecordRows flattens records into numeric rows matching RecordColumns.
func RecordRows(records []Record) [][]float64 {
	rows := make([][]float64, len(records))
	for i, r := range records {
		rows[i] = []float64{r.TimeS, r.Force, r.Velocity, r.Angle, r.Power, r.Speed, float64(r.Repetition)}
	}

	return rows
}
