package indicator

import (
	"fmt"

	"github.com/markcheno/go-talib"
	"github.com/raykavin/fluid/pkg/chart"
	"github.com/raykavin/fluid/pkg/core"
)

// RSI creates a Relative Strength Index study drawn in its own panel.
func RSI(period int, color string) chart.Indicator {
	return &rsi{BaseIndicator{Period: period, Color: color}}
}

type rsi struct {
	BaseIndicator
}

func (r rsi) Warmup() int { return r.Period }

func (r rsi) Name() string { return fmt.Sprintf("RSI(%d)", r.Period) }

func (r rsi) Overlay() bool { return false }

func (r rsi) Traces(bars core.Bars) []chart.Trace {
	if !ValidateBars(bars, r.Warmup()) {
		return nil
	}

	values, times := TrimData(talib.Rsi(bars.Closes(), r.Period), bars.Times(), r.Warmup())
	return []chart.Trace{chart.LineTrace(r.Name(), r.Color, times, values)}
}
