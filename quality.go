package isokin

import (
	"github.com/farcloser/isokin/internal/audit/baseline"
	"github.com/farcloser/isokin/internal/audit/dropout"
	"github.com/farcloser/isokin/internal/audit/saturation"
	"github.com/farcloser/isokin/internal/types"
)

func audit(table SampleTable, torque *Channel, sampleRate float64) QualityResult {
	return types.QualityResult{
		Saturation: saturation.Detect(torque.Values()),
		Baseline:   baseline.Detect(table),
		Dropout:    dropout.Detect(table, sampleRate, dropout.DefaultOptions()),
	}
}
