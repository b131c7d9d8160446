// Package format turns raw provider values into display strings.
// Every function is pure and locale independent.
package format

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/raykavin/fluid/pkg/core"
)

const (
	// LongDateLayout renders "Month DD, YYYY".
	LongDateLayout = "January 02, 2006"
	// NotAvailable is shown for absent or unformattable values.
	NotAvailable = "N/A"
	// CurrencySuffix follows every currency amount.
	CurrencySuffix = "$"
)

// Valid epoch range, years 1 through 9999 UTC.
const (
	minEpoch = -62135596800
	maxEpoch = 253402300799
)

// Integer inserts comma thousands separators: 1234567 -> "1,234,567".
func Integer(x int64) string {
	return humanize.Comma(x)
}

// LongDate renders seconds since the Unix epoch as a UTC long-form date.
func LongDate(seconds float64) (string, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < minEpoch || seconds > maxEpoch {
		return "", fmt.Errorf("%w: %v", core.ErrInvalidTimestamp, seconds)
	}

	sec, frac := math.Modf(seconds)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC().Format(LongDateLayout), nil
}

// LongDateOf accepts any numeric-looking value (numbers, json.Number, numeric strings).
func LongDateOf(v any) (string, error) {
	seconds, ok := core.Number(v)
	if !ok {
		return "", fmt.Errorf("%w: %v", core.ErrInvalidTimestamp, v)
	}
	return LongDate(seconds)
}

// Currency rounds x to decimals places and appends the currency suffix.
// Ties round half to even on the exact binary value, as strconv does.
func Currency(x float64, decimals int) string {
	return Decimal(x, decimals) + " " + CurrencySuffix
}

// Decimal rounds x to decimals places without grouping.
func Decimal(x float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return strconv.FormatFloat(x, 'f', decimals, 64)
}
