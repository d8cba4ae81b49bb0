// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package chart

import (
	"math"

	"github.com/c2h5oh/datasize"
	"golang.org/x/perf/benchunit"
	"gonum.org/v1/plot"
)

// blockSizeTicks labels X ticks as byte counts.
type blockSizeTicks struct {
	plot.DefaultTicks
}

var _ plot.Ticker = blockSizeTicks{}

func (t blockSizeTicks) Ticks(min, max float64) []plot.Tick {
	ticks := t.DefaultTicks.Ticks(min, max)
	for i := range ticks {
		tk := &ticks[i]
		if tk.Label == "" || tk.Value < 0 || tk.Value != math.Trunc(tk.Value) {
			continue
		}
		tk.Label = datasize.ByteSize(tk.Value).String()
	}
	return ticks
}

// durationTicks labels logarithmic Y ticks given in milliseconds with SI
// scaled seconds.
type durationTicks struct {
	plot.LogTicks
}

var _ plot.Ticker = durationTicks{}

func (t durationTicks) Ticks(min, max float64) []plot.Tick {
	ticks := t.LogTicks.Ticks(min, max)
	for i := range ticks {
		tk := &ticks[i]
		if tk.Label == "" {
			continue
		}
		tk.Label = formatMilliseconds(tk.Value)
	}
	return ticks
}

func formatMilliseconds(ms float64) string {
	return benchunit.Scale(ms/1e3, benchunit.Decimal) + "s"
}
