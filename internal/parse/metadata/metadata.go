// Package metadata decodes key/value sections into typed records.
package metadata

import (
	"math"
	"strconv"
	"strings"

	"github.com/farcloser/isokin/internal/types"
)

// Kind identifies a recognized metadata section.
type Kind int

const (
	KindSession Kind = iota
	KindMeasurement
	KindConfiguration
	KindAnalysis
)

func (k Kind) String() string {
	switch k {
	case KindSession:
		return "session"
	case KindMeasurement:
		return "measurement"
	case KindConfiguration:
		return "configuration"
	case KindAnalysis:
		return "analysis"
	}

	return "unknown"
}

// Kinds lists recognized sections in decoding order.
//
//nolint:gochecknoglobals
var Kinds = []Kind{KindSession, KindMeasurement, KindConfiguration, KindAnalysis}

// Names returns the accepted section names for a kind.
func (k Kind) Names() []string {
	switch k {
	case KindSession:
		return []string{"session"}
	case KindMeasurement:
		return []string{"Measurement", "measurement"}
	case KindConfiguration:
		return []string{"Configuration", "configuration"}
	case KindAnalysis:
		return []string{"Analysis", "analysis"}
	}

	return nil
}

// Expected returns the keys whose absence is reported as a diagnostic.
func (k Kind) Expected() []string {
	switch k {
	case KindSession:
		return []string{"Patient", "Date", "Sex"}
	case KindMeasurement:
		return []string{"Side", "Speed"}
	case KindConfiguration:
		return []string{"SampleRate"}
	default:
		return nil
	}
}

// Decode converts key<TAB>value rows into a record. Rows with more than two columns become tuples.
// A repeated key keeps its first position and its last value.
func Decode(section types.RawSection) types.Record {
	rec := types.Record{
		Section: section.Name,
		Fields:  make(map[string]types.Value, len(section.Rows)),
	}

	for _, row := range section.Rows {
		if len(row.Fields) == 0 || row.Fields[0] == "" {
			continue
		}

		key := row.Fields[0]

		var value types.Value

		switch len(row.Fields) {
		case 1:
			value = types.Value{}
		case 2:
			value = Coerce(row.Fields[1])
		default:
			tuple := make([]types.Value, 0, len(row.Fields)-1)
			for _, field := range row.Fields[1:] {
				tuple = append(tuple, Coerce(field))
			}

			value = types.Value{Tuple: tuple}
		}

		if _, seen := rec.Fields[key]; !seen {
			rec.Keys = append(rec.Keys, key)
		}

		rec.Fields[key] = value
	}

	return rec
}

// Check reports every expected key missing from the record.
func Check(rec types.Record, expected []string) []error {
	var diags []error

	for _, key := range expected {
		if _, ok := rec.Fields[key]; !ok {
			diags = append(diags, &types.MissingMetadataFieldError{Section: rec.Section, Field: key})
		}
	}

	return diags
}

// Coerce stores s as a number if and only if the whole trimmed string is one.
func Coerce(s string) types.Value {
	trimmed := strings.TrimSpace(s)
	if n, ok := ParseNumber(trimmed); ok {
		return types.Value{Text: trimmed, Number: n, IsNumber: true}
	}

	return types.Value{Text: trimmed}
}

// ParseNumber parses a finite decimal number with optional sign, leading or trailing point and
// exponent. A single comma is accepted as the decimal separator when no point is present.
func ParseNumber(s string) (float64, bool) {
	if s == "" || strings.ContainsAny(s, "xX_") {
		return 0, false
	}

	if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		s = strings.Replace(s, ",", ".", 1)
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}

	return n, true
}

// SideOf reads the measured side from a measurement record. The label wins over the numeric code
// (1 right, 2 left).
func SideOf(rec types.Record) types.Side {
	value, ok := rec.Get("Side")
	if !ok {
		return types.SideUnknown
	}

	switch strings.ToLower(value.Label()) {
	case "right", "r", "rechts":
		return types.SideRight
	case "left", "l", "links":
		return types.SideLeft
	}

	code, isNumber := rec.Number("Side")
	if !isNumber {
		return types.SideUnknown
	}

	switch code {
	case 1:
		return types.SideRight
	case 2: //nolint:mnd // instrument side code
		return types.SideLeft
	default:
		return types.SideUnknown
	}
}
