package metric

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/farcloser/isokin/internal/types"
)

// ErrUnknownCode is returned for analysis codes outside the instrument vocabulary.
var ErrUnknownCode = errors.New("unknown analysis code")

// Aggregation reduces per-repetition values into one analysis value.
type Aggregation int

const (
	AggregatePeak  Aggregation = iota // value with the largest magnitude, sign kept
	AggregateMean                     // arithmetic mean
	AggregateSum                      // total
	AggregateCV                       // coefficient of variation, percent
	AggregateCount                    // number of enabled splits
	AggregateRatio                    // 100 × |numerator| / |denominator|
)

func (a Aggregation) String() string {
	switch a {
	case AggregatePeak:
		return "peak"
	case AggregateMean:
		return "mean"
	case AggregateSum:
		return "sum"
	case AggregateCV:
		return "cv"
	case AggregateCount:
		return "count"
	case AggregateRatio:
		return "ratio"
	}

	return "unknown"
}

// Definition binds an instrument code to what it measures.
type Definition struct {
	Code        string
	Metric      Name // empty for counts and ratios
	Direction   types.Direction
	Aggregation Aggregation
	Numerator   string // ratios only
	Denominator string // ratios only
}

type offset struct {
	offset      int
	metric      Name
	aggregation Aggregation
}

// Extension codes are 100+offset, flexion codes 200+offset.
//
//nolint:gochecknoglobals // configuration data, effectively const
var offsets = []offset{
	{10, TorquePeak, AggregatePeak},
	{12, TorquePeak, AggregateMean},
	{14, TorquePeakPos, AggregateMean},
	{16, TorquePeakTime, AggregateMean},
	{18, TorquePeak, AggregateCV},
	{20, PowerPeak, AggregatePeak},
	{22, PowerAvg, AggregateMean},
	{24, TorqueAvg, AggregateMean},
	{30, Work, AggregateSum},
	{32, Work, AggregatePeak},
	{34, Work, AggregateMean},
	{40, SpeedPeak, AggregatePeak},
	{42, SpeedPeakPos, AggregateMean},
	{50, AngleMin, AggregateMean},
	{52, AngleMax, AggregateMean},
	{54, ROM, AggregateMean},
	{70, "", AggregateCount},
}

//nolint:gochecknoglobals
var (
	table  = buildTable()
	byCode = indexTable(table)
)

func buildTable() []Definition {
	defs := make([]Definition, 0, 2*len(offsets)+2)

	for _, dir := range []types.Direction{types.Extension, types.Flexion} {
		base := 100
		if dir == types.Flexion {
			base = 200
		}

		for _, off := range offsets {
			defs = append(defs, Definition{
				Code:        strconv.Itoa(base + off.offset),
				Metric:      off.metric,
				Direction:   dir,
				Aggregation: off.aggregation,
			})
		}
	}

	defs = append(defs,
		Definition{Code: "300", Aggregation: AggregateRatio, Numerator: "212", Denominator: "112"},
		Definition{Code: "302", Aggregation: AggregateRatio, Numerator: "230", Denominator: "130"},
	)

	if err := validateTable(defs); err != nil {
		panic(err)
	}

	return defs
}

func indexTable(defs []Definition) map[string]Definition {
	out := make(map[string]Definition, len(defs))
	for _, def := range defs {
		out[def.Code] = def
	}

	return out
}

func validateTable(defs []Definition) error {
	seen := make(map[string]Definition, len(defs))

	for _, def := range defs {
		if _, dup := seen[def.Code]; dup {
			return fmt.Errorf("duplicate analysis code %q", def.Code)
		}

		switch def.Aggregation {
		case AggregateCount:
		case AggregateRatio:
			for _, ref := range []string{def.Numerator, def.Denominator} {
				target, ok := seen[ref]
				if !ok || target.Aggregation == AggregateRatio {
					return fmt.Errorf("code %q: ratio operand %q must be a preceding direct code", def.Code, ref)
				}
			}
		default:
			if !slices.Contains(Names, def.Metric) {
				return fmt.Errorf("code %q: unknown metric %q", def.Code, def.Metric)
			}
		}

		seen[def.Code] = def
	}

	return nil
}

// Definitions returns the code table in code order.
func Definitions() []Definition {
	return slices.Clone(table)
}

// Lookup returns the definition of code.
func Lookup(code string) (Definition, bool) {
	def, ok := byCode[code]

	return def, ok
}

// Validate rejects maps carrying codes outside the table.
func Validate(analysis types.AnalysisMap) error {
	for code := range analysis {
		if _, ok := byCode[code]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownCode, code)
		}
	}

	return nil
}
