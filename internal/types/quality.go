package types

// SaturationResult contains torque saturation results: runs of samples pinned at the extreme value
// of the channel, as produced by a sensor at the end of its range.
type SaturationResult struct {
	Events           int
	SaturatedSamples int
	LongestRun       int
	Level            float64 // the extreme value the runs sit at
	Samples          int
}

// BaselineResult contains the resting torque offset, measured while the lever does not move.
type BaselineResult struct {
	Offset      float64 // mean torque at rest
	RestSamples int
	Samples     int
	Defined     bool // false when the file has no resting sample
}

// DropoutEventType names what a dropout event looks like.
type DropoutEventType string

const (
	EventDelta DropoutEventType = "delta" // sudden torque jump between consecutive samples
	EventStall DropoutEventType = "stall" // identical rows repeated while the lever moves
)

// A DropoutEvent is one acquisition glitch.
type DropoutEvent struct {
	Index      int
	TimeSec    float64
	Type       DropoutEventType
	Severity   float64 // delta: jump as a fraction of the torque range; stall: repeated rows
	DurationMs float64 // stalls only
}

// DropoutResult contains acquisition glitch results.
type DropoutResult struct {
	Events     []DropoutEvent
	DeltaCount int
	StallCount int
	Samples    int
}

// QualityResult groups the signal quality checks of one file. They only read the sample table and
// do not depend on which repetitions are disabled.
type QualityResult struct {
	Saturation *SaturationResult
	Baseline   *BaselineResult
	Dropout    *DropoutResult
}
