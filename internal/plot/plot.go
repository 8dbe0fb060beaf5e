// Package plot renders a channel as a chart, one colored series per split.
package plot

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/farcloser/isokin/internal/types"
)

var (
	errNothingToPlot = errors.New("channel has no split to plot")
	errUnknownFormat = errors.New("unknown plot format (valid: png, svg)")
)

// Format is an image format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

const (
	width  = 1200
	height = 500
)

// Units per channel, for the Y axis.
//
//nolint:gochecknoglobals
var units = map[types.ChannelKey]string{
	types.ChannelTorque:           "Nm",
	types.ChannelPower:            "W",
	types.ChannelSpeed:            "°/s",
	types.ChannelAngle:            "°",
	types.ChannelAveragePowerExt:  "W",
	types.ChannelAveragePowerFlex: "W",
}

// Render draws every split of ch over time (index / sampleRate). Enabled splits take their
// direction color, disabled ones are drawn gray and dashed.
func Render(w io.Writer, ch *types.Channel, splits types.SplitCollection, sampleRate float64, format Format) error {
	var provider chart.RendererProvider

	switch format {
	case FormatPNG:
		provider = chart.PNG
	case FormatSVG:
		provider = chart.SVG
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, format)
	}

	series := make([]chart.Series, 0, len(splits.Splits))

	for i, split := range splits.Splits {
		if split.EndIndex >= ch.Len() {
			continue
		}

		xs := make([]float64, 0, split.Len())
		ys := make([]float64, 0, split.Len())

		for idx := split.StartIndex; idx <= split.EndIndex; idx++ {
			xs = append(xs, float64(idx)/sampleRate)
			ys = append(ys, ch.At(idx))
		}

		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("#%d %s", types.RepetitionOf(i), split.Direction),
			XValues: xs,
			YValues: ys,
			Style:   style(split),
		})
	}

	if len(series) == 0 {
		return fmt.Errorf("%w: %s", errNothingToPlot, ch.Key())
	}

	graph := chart.Chart{
		Title:      string(ch.Key()),
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "s"},
		YAxis:      chart.YAxis{Name: units[ch.Key()]},
		Series:     series,
	}

	// A flat channel has no range to scale to.
	if ch.MinValue() == ch.MaxValue() {
		graph.YAxis.Range = &chart.ContinuousRange{Min: ch.MinValue() - 1, Max: ch.MaxValue() + 1}
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(provider, w)
}

func style(split types.Split) chart.Style {
	if split.Disabled {
		return chart.Style{
			StrokeColor:     chart.ColorAlternateGray,
			StrokeWidth:     1,
			StrokeDashArray: []float64{4, 4},
		}
	}

	return chart.Style{
		StrokeColor: drawing.ColorFromHex(strings.TrimPrefix(split.Color, "#")),
		StrokeWidth: 1.5, //nolint:mnd // line width in points
	}
}
