package indicator

import (
	"time"

	"github.com/raykavin/fluid/pkg/core"
)

// BaseIndicator holds the settings shared by every study.
type BaseIndicator struct {
	Period int
	Color  string
}

// ValidateBars checks at least one bar is left once the warmup head is dropped.
func ValidateBars(bars core.Bars, warmup int) bool {
	return len(bars) > warmup
}

// TrimData drops the warmup head where talib leaves zeros.
func TrimData(data []float64, times []time.Time, warmup int) ([]float64, []time.Time) {
	if warmup <= 0 || len(data) <= warmup {
		return data, times
	}
	return data[warmup:], times[warmup:]
}
