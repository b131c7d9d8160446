package indicator

import (
	"fmt"

	"github.com/markcheno/go-talib"
	"github.com/raykavin/fluid/pkg/chart"
	"github.com/raykavin/fluid/pkg/core"
)

// BollingerBands creates upper/middle/lower bands over the closing price.
// When fill is set the area between the outer bands is shaded.
func BollingerBands(period int, deviation float64, bandColor, midColor string, fill bool) chart.Indicator {
	return &bollingerBands{
		BaseIndicator: BaseIndicator{Period: period, Color: bandColor},
		Deviation:     deviation,
		MidColor:      midColor,
		Fill:          fill,
	}
}

type bollingerBands struct {
	BaseIndicator
	Deviation float64
	MidColor  string
	Fill      bool
}

func (bb bollingerBands) Warmup() int { return bb.Period - 1 }

func (bb bollingerBands) Name() string {
	return fmt.Sprintf("BOLL(%d, %.0f)", bb.Period, bb.Deviation)
}

func (bb bollingerBands) Overlay() bool { return true }

func (bb bollingerBands) Traces(bars core.Bars) []chart.Trace {
	if !ValidateBars(bars, bb.Warmup()) {
		return nil
	}

	upper, mid, lower := talib.BBands(bars.Closes(), bb.Period, bb.Deviation, bb.Deviation, talib.SMA)
	times := bars.Times()

	upper, _ = TrimData(upper, times, bb.Warmup())
	mid, _ = TrimData(mid, times, bb.Warmup())
	lower, times = TrimData(lower, times, bb.Warmup())

	upperTrace := chart.LineTrace("Upper "+bb.Name(), bb.Color, times, upper)
	midTrace := chart.LineTrace(bb.Name(), bb.MidColor, times, mid)
	lowerTrace := chart.LineTrace("Lower "+bb.Name(), bb.Color, times, lower)
	if bb.Fill {
		lowerTrace.Fill = "tonexty"
		lowerTrace.FillColor = "rgba(128, 128, 128, 0.15)"
	}

	// lower follows upper so "tonexty" shades the band between them
	return []chart.Trace{midTrace, upperTrace, lowerTrace}
}
