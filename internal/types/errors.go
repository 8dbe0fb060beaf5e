package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/farcloser/primordium/fault"
)

var (
	// ErrMalformedFile is returned when text has no recognizable section structure.
	ErrMalformedFile = errors.New("malformed file")
	// ErrInvalidSampleRow is wrapped by InvalidSampleRowError.
	ErrInvalidSampleRow = errors.New("invalid sample row")
	// ErrMissingMetadataField is wrapped by MissingMetadataFieldError.
	ErrMissingMetadataField = errors.New("missing metadata field")
	// ErrDegenerateSegmentation is wrapped by DegenerateSegmentationWarning.
	ErrDegenerateSegmentation = errors.New("degenerate segmentation")
	// ErrInsufficientSamples is returned when a table is too short to segment.
	ErrInsufficientSamples = errors.New("insufficient samples")
	// ErrRepetitionOutOfRange is returned when toggling a repetition that does not exist.
	ErrRepetitionOutOfRange = errors.New("repetition out of range")
)

// InvalidSampleRowError reports a data row that did not yield exactly three numbers.
type InvalidSampleRowError struct {
	Line   int
	Fields []string
	Reason string
}

func (e *InvalidSampleRowError) Error() string {
	return fmt.Sprintf("%s: line %d %q: %s", ErrInvalidSampleRow, e.Line, strings.Join(e.Fields, "\t"), e.Reason)
}

func (e *InvalidSampleRowError) Unwrap() error {
	return ErrInvalidSampleRow
}

// MissingMetadataFieldError is a non-fatal diagnostic: the field resolved to Unknown.
type MissingMetadataFieldError struct {
	Section string
	Field   string
}

func (e *MissingMetadataFieldError) Error() string {
	return fmt.Sprintf("%s: [%s] %s", ErrMissingMetadataField, e.Section, e.Field)
}

func (e *MissingMetadataFieldError) Unwrap() error {
	return ErrMissingMetadataField
}

// DegenerateSegmentationWarning is a non-fatal diagnostic: no reversal was found, the whole table is
// one split.
type DegenerateSegmentationWarning struct {
	Direction Direction
	Samples   int
}

func (e *DegenerateSegmentationWarning) Error() string {
	return fmt.Sprintf("%s: no direction reversal in %d samples, single %s split",
		ErrDegenerateSegmentation, e.Samples, e.Direction)
}

func (e *DegenerateSegmentationWarning) Unwrap() error {
	return ErrDegenerateSegmentation
}

// ErrorKind names the taxonomy entry of err, for per-file reporting.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedFile):
		return "MalformedFileError"
	case errors.Is(err, ErrInvalidSampleRow):
		return "InvalidSampleRowError"
	case errors.Is(err, ErrMissingMetadataField):
		return "MissingMetadataFieldError"
	case errors.Is(err, ErrDegenerateSegmentation):
		return "DegenerateSegmentationWarning"
	case errors.Is(err, ErrInsufficientSamples):
		return "InsufficientSamplesError"
	case errors.Is(err, fault.ErrReadFailure):
		return "ReadError"
	default:
		return "Error"
	}
}
