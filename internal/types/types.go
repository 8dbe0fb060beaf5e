package types

import (
	"strconv"

	"gonum.org/v1/gonum/floats"
)

// Unknown is the value returned for metadata fields missing from a file.
const Unknown = "N/A"

// Row is one line of a section body, split on tabs.
type Row struct {
	Line   int // 1-based line number in the source text
	Fields []string
}

// RawSection is a bracketed section of an export file and its rows, in file order.
type RawSection struct {
	Name string
	Rows []Row
}

// Value is a decoded metadata value: a number, a string, or a tuple of values for rows with more
// than two columns (e.g. a code followed by its display label).
type Value struct {
	Text     string
	Number   float64
	IsNumber bool
	Tuple    []Value
}

// IsTuple reports whether the value came from a multi-column row.
func (v Value) IsTuple() bool {
	return len(v.Tuple) > 0
}

// String renders the value for display. Tuples render as their label.
func (v Value) String() string {
	switch {
	case v.IsTuple():
		return v.Label()
	case v.IsNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	default:
		return v.Text
	}
}

// Label returns the display label of a tuple (its second element), or the value itself otherwise.
func (v Value) Label() string {
	if len(v.Tuple) > 1 {
		return v.Tuple[1].String()
	}

	if len(v.Tuple) == 1 {
		return v.Tuple[0].String()
	}

	return v.String()
}

// Any returns the value as a plain Go value suitable for serialization.
func (v Value) Any() any {
	switch {
	case v.IsTuple():
		out := make([]any, len(v.Tuple))
		for i, item := range v.Tuple {
			out[i] = item.Any()
		}

		return out
	case v.IsNumber:
		return v.Number
	default:
		return v.Text
	}
}

// Record is a decoded metadata section. Lookups never fail: missing keys resolve to Unknown.
type Record struct {
	Section string
	Fields  map[string]Value
	Keys    []string // insertion order
}

// Get returns the value for key and whether it was present.
func (r Record) Get(key string) (Value, bool) {
	v, ok := r.Fields[key]

	return v, ok
}

// Lookup returns the value for key, or a Value holding Unknown.
func (r Record) Lookup(key string) Value {
	if v, ok := r.Fields[key]; ok {
		return v
	}

	return Value{Text: Unknown}
}

// Label returns the display label for key, or Unknown.
func (r Record) Label(key string) string {
	return r.Lookup(key).Label()
}

// Number returns the numeric value for key. Tuples yield their first element.
func (r Record) Number(key string) (float64, bool) {
	v, ok := r.Fields[key]
	if !ok {
		return 0, false
	}

	if v.IsTuple() {
		v = v.Tuple[0]
	}

	return v.Number, v.IsNumber
}

// Sample is one row of the data section.
type Sample struct {
	Force    float64
	Velocity float64
	Angle    float64
}

// Column identifies a column of the sample table.
type Column int

const (
	ColumnForce Column = iota
	ColumnVelocity
	ColumnAngle
)

// SampleColumns is the fixed width of a sample row.
const SampleColumns = 3

// SampleTable holds every sample of a file. The index is the time axis for every derived structure.
type SampleTable []Sample

// Column returns a copy of one column.
func (t SampleTable) Column(col Column) []float64 {
	out := make([]float64, len(t))

	for i, s := range t {
		switch col {
		case ColumnForce:
			out[i] = s.Force
		case ColumnVelocity:
			out[i] = s.Velocity
		case ColumnAngle:
			out[i] = s.Angle
		}
	}

	return out
}

// Rows returns the table as fixed-width numeric rows (force, velocity, angle).
func (t SampleTable) Rows() [][]float64 {
	out := make([][]float64, len(t))
	for i, s := range t {
		out[i] = []float64{s.Force, s.Velocity, s.Angle}
	}

	return out
}

// ChannelKey names a derived channel.
type ChannelKey string

const (
	ChannelTorque           ChannelKey = "torque"
	ChannelPower            ChannelKey = "power"
	ChannelSpeed            ChannelKey = "speed"
	ChannelAngle            ChannelKey = "angle"
	ChannelAveragePowerExt  ChannelKey = "averagePowerExt"
	ChannelAveragePowerFlex ChannelKey = "averagePowerFlex"
)

// PrimaryChannels are aligned 1:1 with the sample table.
//
//nolint:gochecknoglobals
var PrimaryChannels = []ChannelKey{ChannelTorque, ChannelPower, ChannelSpeed, ChannelAngle}

// Channel is a derived series with cached bounds. Values are only replaced through SetValues so the
// bounds cannot go stale.
type Channel struct {
	key      ChannelKey
	values   []float64
	variance []float64
	minValue float64
	maxValue float64
}

// NewChannel returns a channel over values. The slice is owned by the channel afterwards.
func NewChannel(key ChannelKey, values []float64) *Channel {
	c := &Channel{key: key}
	c.SetValues(values)

	return c
}

// SetValues replaces the values and recomputes the bounds. Variance is cleared.
func (c *Channel) SetValues(values []float64) {
	c.values = values
	c.variance = nil

	if len(values) == 0 {
		c.minValue, c.maxValue = 0, 0

		return
	}

	c.minValue = floats.Min(values)
	c.maxValue = floats.Max(values)
}

// SetVariance attaches a per-value variance series (average channels only).
func (c *Channel) SetVariance(variance []float64) {
	c.variance = variance
}

func (c *Channel) Key() ChannelKey      { return c.key }
func (c *Channel) Values() []float64    { return c.values }
func (c *Channel) Variance() []float64  { return c.variance }
func (c *Channel) Len() int             { return len(c.values) }
func (c *Channel) MinValue() float64    { return c.minValue }
func (c *Channel) MaxValue() float64    { return c.maxValue }
func (c *Channel) At(index int) float64 { return c.values[index] }

// Direction is the movement direction of a split.
type Direction int

const (
	Extension Direction = iota
	Flexion
)

func (d Direction) String() string {
	switch d {
	case Extension:
		return "extension"
	case Flexion:
		return "flexion"
	}

	return "unknown"
}

// Suffix is appended to metric names in repetition metrics.
func (d Direction) Suffix() string {
	if d == Flexion {
		return "Flex"
	}

	return "Ext"
}

// Color returns the rendering tag for the direction.
func (d Direction) Color() string {
	if d == Flexion {
		return "#1f77b4"
	}

	return "#d62728"
}

// Split is one stroke: an inclusive index range with a direction.
type Split struct {
	StartIndex int
	EndIndex   int
	Direction  Direction
	Color      string
	Disabled   bool
}

// Len is the number of samples covered.
func (s Split) Len() int {
	return s.EndIndex - s.StartIndex + 1
}

// SplitCollection is the ordered split list of one channel and its envelope.
type SplitCollection struct {
	Splits     []Split
	StartIndex int
	EndIndex   int
}

// Repetitions is the number of repetitions (pairs of adjacent splits, the last one possibly single).
func (c SplitCollection) Repetitions() int {
	return (len(c.Splits) + 1) / 2
}

// RepetitionOf returns the repetition index of split i.
func RepetitionOf(split int) int {
	return split / 2
}

// Clone returns a deep copy.
func (c SplitCollection) Clone() SplitCollection {
	out := c
	out.Splits = append([]Split(nil), c.Splits...)

	return out
}

// WithDisabled returns a copy where both halves of every repetition take their flag from disabled.
// Repetitions absent from the map are enabled.
func (c SplitCollection) WithDisabled(disabled map[int]bool) SplitCollection {
	out := c.Clone()
	for i := range out.Splits {
		out.Splits[i].Disabled = disabled[RepetitionOf(i)]
	}

	return out
}

// AnalysisMap holds aggregate results keyed by instrument code.
type AnalysisMap map[string]float64

// RepetitionMetrics holds one value per enabled repetition under a metric name such as torquePeakExt.
type RepetitionMetrics map[string][]float64

// SymmetryValue is a left/right comparison. Defined is false when an input was not a finite number.
type SymmetryValue struct {
	Percent float64
	Defined bool
}

// SymmetryResult maps an analysis code to the symmetry of its left and right values.
type SymmetryResult map[string]SymmetryValue

// Side is the measured leg or arm.
type Side int

const (
	SideUnknown Side = iota
	SideRight
	SideLeft
)

func (s Side) String() string {
	switch s {
	case SideRight:
		return "right"
	case SideLeft:
		return "left"
	case SideUnknown:
	}

	return "unknown"
}
