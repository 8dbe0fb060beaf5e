package shared

import "math"

const (
	DegToRad          = math.Pi / 180 // °/s to rad/s, so N·m × °/s × DegToRad yields W
	DefaultSampleRate = 100.0         // Hz, used when the configuration section lacks SampleRate
	MinSplitSamples   = 2             // a split always spans at least two samples
)
