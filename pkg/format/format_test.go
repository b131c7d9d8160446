package format

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/raykavin/fluid/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteger(t *testing.T) {
	tests := map[int64]string{
		0:             "0",
		7:             "7",
		999:           "999",
		1000:          "1,000",
		1234567:       "1,234,567",
		-1234567:      "-1,234,567",
		2950000000000: "2,950,000,000,000",
	}

	for in, want := range tests {
		assert.Equal(t, want, Integer(in), "Integer(%d)", in)
	}
}

func TestInteger_RoundTrip(t *testing.T) {
	for _, x := range []int64{0, 1, 12, 123, 1234, 98765, 1 << 40, math.MaxInt64, -5, -1000, math.MinInt64 + 1} {
		got := Integer(x)
		parsed, err := strconv.ParseInt(strings.ReplaceAll(got, ",", ""), 10, 64)
		require.NoError(t, err)
		assert.Equal(t, x, parsed)
	}
}

func TestInteger_NoSeparatorBelowThousand(t *testing.T) {
	for x := int64(0); x < 1000; x++ {
		assert.NotContains(t, Integer(x), ",")
	}
}

func TestLongDate(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z][a-z]+ \d{2}, \d{4}$`)

	got, err := LongDate(1699574400)
	require.NoError(t, err)
	assert.Equal(t, "November 10, 2023", got)

	got, err = LongDate(0)
	require.NoError(t, err)
	assert.Equal(t, "January 01, 1970", got)

	for _, e := range []float64{-86400, 1, 951782400, 4102444800} {
		got, err := LongDate(e)
		require.NoError(t, err)
		assert.Regexp(t, pattern, got)
	}

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e20, -1e20} {
		_, err := LongDate(bad)
		assert.ErrorIs(t, err, core.ErrInvalidTimestamp, "input %v", bad)
	}
}

func TestLongDateOf(t *testing.T) {
	got, err := LongDateOf(int64(1699574400))
	require.NoError(t, err)
	assert.Equal(t, "November 10, 2023", got)

	got, err = LongDateOf(json.Number("1699574400"))
	require.NoError(t, err)
	assert.Equal(t, "November 10, 2023", got)

	got, err = LongDateOf(" 1699574400 ")
	require.NoError(t, err)
	assert.Equal(t, "November 10, 2023", got)

	for _, bad := range []any{"yesterday", nil, true, []int{1}} {
		_, err := LongDateOf(bad)
		assert.ErrorIs(t, err, core.ErrInvalidTimestamp, "input %v", bad)
	}
}

func TestCurrency(t *testing.T) {
	assert.Equal(t, "172.57 $", Currency(172.5678, 2))
	assert.Equal(t, "199.620 $", Currency(199.62, 3))
	assert.Equal(t, "-3.10 $", Currency(-3.1, 2))
	assert.Equal(t, "0.12 $", Currency(0.125, 2), "exact ties round half to even")
	assert.Equal(t, "5 $", Currency(4.6, -1))
}

func TestValue_Format(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"count", Count(52164720, "shares"), "52,164,720 shares"},
		{"market cap", Count(2950000000000, CurrencySuffix), "2,950,000,000,000 $"},
		{"currency", Amount(189.7, 2), "189.70 $"},
		{"percentage", Percentage(0.4432, 2), "0.44%"},
		{"ratio", Ratio(2.317, 2), "2.32"},
		{"timestamp", Timestamp(1699574400.0), "November 10, 2023"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.value.Format()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDisplay_Fallback(t *testing.T) {
	assert.Equal(t, NotAvailable, Display(Timestamp("soon"), NotAvailable))
	assert.Equal(t, NotAvailable, Display(Count(math.NaN(), ""), NotAvailable))
	assert.Equal(t, NotAvailable, Display(Count(1e19, "shares"), NotAvailable))
	assert.Equal(t, NotAvailable, Display(Count(-1e19, "shares"), NotAvailable))
	assert.Equal(t, "9,000,000,000,000,000,000 shares", Display(Count(9e18, "shares"), NotAvailable))
	assert.Equal(t, NotAvailable, Display(Value{Kind: Kind(42)}, NotAvailable))
}

func TestFromField(t *testing.T) {
	record := core.Record{"pegRatio": 1.8, "lastDividendDate": int64(1699574400), "sector": "Tech"}

	v, ok := FromField(record.Lookup("pegRatio"), Ratio(0, 2))
	require.True(t, ok)
	assert.Equal(t, "1.80", Display(v, NotAvailable))

	v, ok = FromField(record.Lookup("lastDividendDate"), Timestamp(nil))
	require.True(t, ok)
	assert.Equal(t, "November 10, 2023", Display(v, NotAvailable))

	_, ok = FromField(record.Lookup("dividendYield"), Percentage(0, 2))
	assert.False(t, ok)

	_, ok = FromField(record.Lookup("sector"), Ratio(0, 2))
	assert.False(t, ok)
}
