package baseline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farcloser/isokin/internal/audit/baseline"
	"github.com/farcloser/isokin/internal/types"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	result := baseline.Detect(types.SampleTable{
		{Force: 4, Velocity: 0},
		{Force: 60, Velocity: 60},
		{Force: 6, Velocity: 0.5},
		{Force: 40, Velocity: -60},
	})

	assert.True(t, result.Defined)
	assert.Equal(t, 2, result.RestSamples)
	assert.Equal(t, 4, result.Samples)
	assert.InDelta(t, 5.0, result.Offset, 1e-12)
}

func TestDetectNoRest(t *testing.T) {
	t.Parallel()

	result := baseline.Detect(types.SampleTable{{Force: 10, Velocity: 60}, {Force: 12, Velocity: -60}})

	assert.False(t, result.Defined)
	assert.Zero(t, result.RestSamples)
	assert.InDelta(t, 0.0, result.Offset, 0)
}
