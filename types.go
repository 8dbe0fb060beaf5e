package isokin

import (
	"sync"

	"github.com/farcloser/isokin/internal/analysis/shared"
	"github.com/farcloser/isokin/internal/types"
)

type (
	RawSection        = types.RawSection
	Record            = types.Record
	Value             = types.Value
	SampleTable       = types.SampleTable
	Channel           = types.Channel
	ChannelKey        = types.ChannelKey
	Split             = types.Split
	SplitCollection   = types.SplitCollection
	Direction         = types.Direction
	Side              = types.Side
	AnalysisMap       = types.AnalysisMap
	RepetitionMetrics = types.RepetitionMetrics
	SymmetryValue     = types.SymmetryValue
	SymmetryResult    = types.SymmetryResult
	QualityResult     = types.QualityResult

	InvalidSampleRowError         = types.InvalidSampleRowError
	MissingMetadataFieldError     = types.MissingMetadataFieldError
	DegenerateSegmentationWarning = types.DegenerateSegmentationWarning
)

//nolint:gochecknoglobals
var (
	ErrMalformedFile          = types.ErrMalformedFile
	ErrInvalidSampleRow       = types.ErrInvalidSampleRow
	ErrMissingMetadataField   = types.ErrMissingMetadataField
	ErrDegenerateSegmentation = types.ErrDegenerateSegmentation
	ErrInsufficientSamples    = types.ErrInsufficientSamples
	ErrRepetitionOutOfRange   = types.ErrRepetitionOutOfRange
)

// ErrorKind names the error taxonomy entry of err ("MalformedFileError", ...), empty for nil.
func ErrorKind(err error) string {
	return types.ErrorKind(err)
}

// Options configures parsing.
type Options struct {
	// SkipInvalidRows drops data rows that fail numeric coercion instead of aborting the file.
	// Skipped rows are listed in Measurement.Diagnostics.
	SkipInvalidRows bool

	// DefaultSampleRate is used when the configuration section has no usable SampleRate (Hz).
	DefaultSampleRate float64
}

// DefaultOptions aborts on invalid rows and assumes 100 Hz when the file does not say.
func DefaultOptions() Options {
	return Options{
		SkipInvalidRows:   false,
		DefaultSampleRate: shared.DefaultSampleRate,
	}
}

// Metadata holds the decoded metadata sections. Absent sections decode to empty records.
type Metadata struct {
	Session       Record
	Measurement   Record
	Configuration Record
	Analysis      Record
}

// Measurement is the result of parsing one export file.
//
// Everything is derived once from the text. The Disabled flags of the splits are the only state
// that changes afterwards, through ToggleRepetition, which replaces the split collections, the
// average channels, Analysis and Repetitions as a whole instead of editing them in place.
type Measurement struct {
	Metadata   Metadata
	Sections   []RawSection
	Data       SampleTable
	SampleRate float64 // Hz
	Side       Side

	// torque, power, speed, angle, averagePowerExt, averagePowerFlex
	PointCollections map[ChannelKey]*Channel
	SplitCollections map[ChannelKey]SplitCollection

	Analysis    AnalysisMap
	Repetitions RepetitionMetrics

	// Signal quality of the sample table: saturation, resting offset, acquisition glitches.
	Quality QualityResult

	// Non-fatal findings: missing metadata fields, degenerate segmentation, skipped rows.
	Diagnostics []error

	mu sync.Mutex
}

// Derived is the part of a Measurement that depends on the disabled repetition set.
type Derived struct {
	SplitCollections map[ChannelKey]SplitCollection
	AveragePowerExt  *Channel
	AveragePowerFlex *Channel
	Analysis         AnalysisMap
	Repetitions      RepetitionMetrics
}

// Field names a derived field of a Measurement.
type Field string

const (
	FieldSplitCollections Field = "splitCollections"
	FieldAveragePowerExt  Field = "pointCollections.averagePowerExt"
	FieldAveragePowerFlex Field = "pointCollections.averagePowerFlex"
	FieldAnalysis         Field = "analysis"
	FieldRepetitions      Field = "repetitions"
)
