package isokin

import (
	"fmt"

	"github.com/farcloser/isokin/internal/analysis/channel"
	"github.com/farcloser/isokin/internal/analysis/segment"
	"github.com/farcloser/isokin/internal/analysis/shared"
	"github.com/farcloser/isokin/internal/parse/metadata"
	"github.com/farcloser/isokin/internal/parse/sample"
	"github.com/farcloser/isokin/internal/parse/section"
	"github.com/farcloser/isokin/internal/types"
)

/*
Usage:

text, err := codepage.DecodeFile(path, codepage.Default)
m, err := isokin.Parse(text, isokin.DefaultOptions())
if err != nil {
    fmt.Println(isokin.ErrorKind(err), err)
}

// Aggregates keyed by instrument code
fmt.Println(m.Analysis["112"]) // mean extension peak torque

// Drop the first repetition
changed, err := m.ToggleRepetition(0)

// Compare two sides
sym := isokin.Symmetry(left.Analysis, right.Analysis)

*/

// Parse runs the whole pipeline over one file's decoded text.
//
// It fails with ErrMalformedFile when the text has no section structure or no data, and with
// ErrInvalidSampleRow on the first bad data row unless opts.SkipInvalidRows is set. Missing metadata
// never fails the parse; it is reported in Diagnostics.
func Parse(text string, opts Options) (*Measurement, error) {
	if opts.DefaultSampleRate <= 0 {
		opts.DefaultSampleRate = shared.DefaultSampleRate
	}

	sections, err := section.Tokenize(text)
	if err != nil {
		return nil, err
	}

	m := &Measurement{Sections: sections}

	records := make(map[metadata.Kind]types.Record, len(metadata.Kinds))
	described := false

	for _, kind := range metadata.Kinds {
		sec, found := section.Find(sections, kind.Names()...)
		if !found {
			sec = types.RawSection{Name: kind.Names()[0]}
		} else if kind != metadata.KindAnalysis {
			described = true
		}

		rec := metadata.Decode(sec)
		records[kind] = rec
		m.Diagnostics = append(m.Diagnostics, metadata.Check(rec, kind.Expected())...)
	}

	if !described {
		return nil, fmt.Errorf("%w: no session, measurement or configuration section", types.ErrMalformedFile)
	}

	m.Metadata = Metadata{
		Session:       records[metadata.KindSession],
		Measurement:   records[metadata.KindMeasurement],
		Configuration: records[metadata.KindConfiguration],
		Analysis:      records[metadata.KindAnalysis],
	}

	dataSection, found := section.Find(sections, sample.Names...)
	if !found {
		return nil, fmt.Errorf("%w: no data section", types.ErrMalformedFile)
	}

	table, skipped, err := sample.Extract(dataSection, sample.Options{SkipInvalidRows: opts.SkipInvalidRows})
	if err != nil {
		return nil, err
	}

	m.Data = table
	m.Diagnostics = append(m.Diagnostics, skipped...)

	m.SampleRate = opts.DefaultSampleRate
	if rate, ok := m.Metadata.Configuration.Number("SampleRate"); ok && rate > 0 {
		m.SampleRate = rate
	}

	m.Side = metadata.SideOf(m.Metadata.Measurement)

	conv := channel.Conversion{MirrorAngle: m.Side == types.SideLeft}
	if factor, ok := m.Metadata.Configuration.Number("VelocityFactor"); ok && factor != 0 {
		conv.VelocityFactor = factor
	}

	m.PointCollections = channel.Build(table, conv)
	m.Quality = audit(table, m.PointCollections[types.ChannelTorque], m.SampleRate)

	splits, warning, err := segment.Segment(table.Column(types.ColumnVelocity))
	if err != nil {
		return nil, err
	}

	if warning != nil {
		m.Diagnostics = append(m.Diagnostics, warning)
	}

	derived := derive(splits, m.PointCollections, m.SampleRate, nil)
	m.apply(derived)

	return m, nil
}
