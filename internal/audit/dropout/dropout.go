// Package dropout finds acquisition glitches in the sample table: sudden torque jumps and stalled
// rows.
package dropout

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/farcloser/isokin/internal/types"
)

type Options struct {
	DeltaThreshold float64 // fraction of the torque range; default 0.5
	StallMinMs     float64 // minimum stall to report; default 50ms
}

func DefaultOptions() Options {
	return Options{
		DeltaThreshold: 0.5,
		StallMinMs:     50.0,
	}
}

// scanner holds the running state of the detector.
type scanner struct {
	opts           Options
	sampleRate     float64
	torqueRange    float64
	minStallLength int
	result         *types.DropoutResult

	stallStart int
}

func newScanner(opts Options, sampleRate, torqueRange float64, samples int) *scanner {
	return &scanner{
		opts:           opts,
		sampleRate:     sampleRate,
		torqueRange:    torqueRange,
		minStallLength: max(int(math.Ceil(sampleRate*opts.StallMinMs/1000)), 2),
		result:         &types.DropoutResult{Samples: samples},
		stallStart:     -1,
	}
}

// processSample runs every check on the sample at index against its predecessor.
func (s *scanner) processSample(index int, prev, cur types.Sample) {
	// Delta detection.
	if s.torqueRange > 0 {
		jump := math.Abs(cur.Force-prev.Force) / s.torqueRange
		if jump > s.opts.DeltaThreshold {
			s.result.Events = append(s.result.Events, types.DropoutEvent{
				Index:    index,
				TimeSec:  float64(index) / s.sampleRate,
				Type:     types.EventDelta,
				Severity: jump,
			})
			s.result.DeltaCount++
		}
	}

	// Stall detection: a moving lever never reports the same row twice.
	if cur == prev && cur.Velocity != 0 {
		if s.stallStart < 0 {
			s.stallStart = index - 1
		}

		return
	}

	s.closeStall(index)
}

// closeStall emits the open stall, if long enough, ending before index.
func (s *scanner) closeStall(index int) {
	if s.stallStart < 0 {
		return
	}

	length := index - s.stallStart
	if length >= s.minStallLength {
		s.result.Events = append(s.result.Events, types.DropoutEvent{
			Index:      s.stallStart,
			TimeSec:    float64(s.stallStart) / s.sampleRate,
			Type:       types.EventStall,
			Severity:   float64(length),
			DurationMs: float64(length) / s.sampleRate * 1000,
		})
		s.result.StallCount++
	}

	s.stallStart = -1
}

// Detect scans table, sampled at sampleRate Hz. Zero options take their defaults.
func Detect(table types.SampleTable, sampleRate float64, opts Options) *types.DropoutResult {
	defaults := DefaultOptions()

	if opts.DeltaThreshold == 0 {
		opts.DeltaThreshold = defaults.DeltaThreshold
	}

	if opts.StallMinMs == 0 {
		opts.StallMinMs = defaults.StallMinMs
	}

	var torqueRange float64

	if len(table) > 0 {
		force := table.Column(types.ColumnForce)
		torqueRange = floats.Max(force) - floats.Min(force)
	}

	scan := newScanner(opts, sampleRate, torqueRange, len(table))

	for i := 1; i < len(table); i++ {
		scan.processSample(i, table[i-1], table[i])
	}

	scan.closeStall(len(table))

	return scan.result
}
