package plot_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farcloser/isokin/internal/plot"
	"github.com/farcloser/isokin/internal/types"
)

func torque() (*types.Channel, types.SplitCollection) {
	ch := types.NewChannel(types.ChannelTorque, []float64{0, 20, 40, 20, 0, -10, -30, -10})
	splits := types.SplitCollection{
		Splits: []types.Split{
			{StartIndex: 0, EndIndex: 3, Direction: types.Extension, Color: types.Extension.Color()},
			{StartIndex: 4, EndIndex: 7, Direction: types.Flexion, Color: types.Flexion.Color(), Disabled: true},
		},
		EndIndex: 7,
	}

	return ch, splits
}

func TestRenderPNG(t *testing.T) {
	t.Parallel()

	ch, splits := torque()

	var buf bytes.Buffer

	require.NoError(t, plot.Render(&buf, ch, splits, 100, plot.FormatPNG))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestRenderSVG(t *testing.T) {
	t.Parallel()

	ch, splits := torque()

	var buf bytes.Buffer

	require.NoError(t, plot.Render(&buf, ch, splits, 100, plot.FormatSVG))
	assert.Contains(t, buf.String(), "<svg")
	assert.Contains(t, buf.String(), "#0 extension")
}

func TestRenderFlatChannel(t *testing.T) {
	t.Parallel()

	ch := types.NewChannel(types.ChannelSpeed, []float64{60, 60, 60})
	splits := types.SplitCollection{Splits: []types.Split{{EndIndex: 2, Color: types.Extension.Color()}}}

	var buf bytes.Buffer

	require.NoError(t, plot.Render(&buf, ch, splits, 100, plot.FormatSVG))
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()

	ch, splits := torque()

	var buf bytes.Buffer

	require.Error(t, plot.Render(&buf, ch, splits, 100, plot.Format("gif")))

	empty := types.NewChannel(types.ChannelAveragePowerExt, nil)
	require.Error(t, plot.Render(&buf, empty, types.SplitCollection{Splits: []types.Split{}}, 100, plot.FormatPNG))
}
