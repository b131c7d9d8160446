package indicator

import (
	"fmt"

	"github.com/markcheno/go-talib"
	"github.com/raykavin/fluid/pkg/chart"
	"github.com/raykavin/fluid/pkg/core"
)

// SMA creates a simple moving average drawn over the candles.
func SMA(period int, color string) chart.Indicator {
	return &sma{BaseIndicator{Period: period, Color: color}}
}

type sma struct {
	BaseIndicator
}

func (s sma) Warmup() int { return s.Period - 1 }

func (s sma) Name() string { return fmt.Sprintf("SMA(%d)", s.Period) }

func (s sma) Overlay() bool { return true }

func (s sma) Traces(bars core.Bars) []chart.Trace {
	if !ValidateBars(bars, s.Warmup()) {
		return nil
	}

	values, times := TrimData(talib.Sma(bars.Closes(), s.Period), bars.Times(), s.Warmup())
	return []chart.Trace{chart.LineTrace(s.Name(), s.Color, times, values)}
}
