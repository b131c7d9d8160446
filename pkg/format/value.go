package format

import (
	"fmt"
	"math"

	"github.com/raykavin/fluid/pkg/core"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	KindCount Kind = iota
	KindCurrency
	KindPercentage
	KindTimestamp
	KindRatio
)

func (k Kind) String() string {
	switch k {
	case KindCount:
		return "count"
	case KindCurrency:
		return "currency"
	case KindPercentage:
		return "percentage"
	case KindTimestamp:
		return "timestamp"
	case KindRatio:
		return "ratio"
	default:
		return "unknown"
	}
}

// Value is a displayable metric. Only the fields relevant to Kind are read.
type Value struct {
	Kind     Kind
	Number   float64 // count, amount, percentage points or ratio
	Epoch    any     // seconds since epoch, for KindTimestamp
	Decimals int     // precision for currency, percentage and ratio
	Unit     string  // suffix for counts, e.g. "shares"
}

func Count(n float64, unit string) Value { return Value{Kind: KindCount, Number: n, Unit: unit} }

func Amount(x float64, decimals int) Value {
	return Value{Kind: KindCurrency, Number: x, Decimals: decimals}
}

func Percentage(x float64, decimals int) Value {
	return Value{Kind: KindPercentage, Number: x, Decimals: decimals}
}

func Timestamp(epoch any) Value { return Value{Kind: KindTimestamp, Epoch: epoch} }

func Ratio(x float64, decimals int) Value {
	return Value{Kind: KindRatio, Number: x, Decimals: decimals}
}

// Format renders the value with the rule of its kind.
func (v Value) Format() (string, error) {
	switch v.Kind {
	case KindCount:
		n := math.Round(v.Number)
		if !core.Finite(n) || n >= 1<<63 || n < -(1<<63) {
			return "", fmt.Errorf("count out of range: %v", v.Number)
		}
		return withUnit(Integer(int64(n)), v.Unit), nil
	case KindCurrency:
		return Currency(v.Number, v.Decimals), nil
	case KindPercentage:
		return Decimal(v.Number, v.Decimals) + "%", nil
	case KindTimestamp:
		return LongDateOf(v.Epoch)
	case KindRatio:
		return Decimal(v.Number, v.Decimals), nil
	default:
		return "", fmt.Errorf("unknown metric kind %d", v.Kind)
	}
}

// Display formats v and falls back to fallback on any error.
func Display(v Value, fallback string) string {
	s, err := v.Format()
	if err != nil {
		return fallback
	}
	return s
}

// FromField builds a Value of the given kind from a record field.
// ok is false when the field is absent or not numeric.
func FromField(f core.Field, template Value) (Value, bool) {
	if f.Err() != nil {
		return Value{}, false
	}

	if template.Kind == KindTimestamp {
		template.Epoch = f.Value
		return template, true
	}

	n, ok := f.Float()
	if !ok {
		return Value{}, false
	}
	template.Number = n
	return template, true
}

func withUnit(s, unit string) string {
	if unit == "" {
		return s
	}
	return s + " " + unit
}
