package core

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Lookup(t *testing.T) {
	record := Record{
		"previousClose": 172.5,
		"volume":        int64(1200),
		"dividendYield": nil,
	}

	field := record.Lookup("pegRatio")
	assert.True(t, field.Absent())
	assert.Equal(t, Absent, field)

	assert.True(t, record.Lookup("dividendYield").Absent(), "null values count as absent")

	price, ok := record.Lookup("previousClose").Float()
	assert.True(t, ok)
	assert.Equal(t, 172.5, price)

	volume, ok := record.Lookup("volume").Int()
	assert.True(t, ok)
	assert.Equal(t, int64(1200), volume)

	var nilRecord Record
	assert.True(t, nilRecord.Lookup("anything").Absent())
}

func TestField_FloatNonNumeric(t *testing.T) {
	_, ok := Record{"currency": "USD"}.Lookup("currency").Float()
	assert.False(t, ok)
}

func TestSourceError_Is(t *testing.T) {
	cause := errors.New("connection reset")
	err := Unavailable("fred", "GDP", cause)

	assert.ErrorIs(t, err, ErrDataSourceUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "fred: GDP")

	wrapped := fmt.Errorf("economic tab: %w", err)
	assert.ErrorIs(t, wrapped, ErrDataSourceUnavailable)
	assert.Same(t, err, Unavailable("yahoo", "x", err))
	assert.NoError(t, Unavailable("fred", "GDP", nil))
}

func TestField_NonFiniteIsNotANumber(t *testing.T) {
	record := Record{"pegRatio": "NaN", "beta": math.Inf(1), "marketCap": "Infinity"}

	for name := range record {
		_, ok := record.Lookup(name).Float()
		assert.False(t, ok, name)
	}
}

func TestField_Err(t *testing.T) {
	record := Record{"previousClose": 172.5}

	assert.NoError(t, record.Lookup("previousClose").Err())
	assert.ErrorIs(t, record.Lookup("pegRatio").Err(), ErrMissingField)
}

func TestParseFinite(t *testing.T) {
	x, err := ParseFinite("1.25")
	assert.NoError(t, err)
	assert.Equal(t, 1.25, x)

	for _, bad := range []string{"NaN", "nan", "Inf", "-Infinity", "1e400"} {
		_, err := ParseFinite(bad)
		assert.Error(t, err, bad)
	}
	_, err = ParseFinite("NaN")
	assert.ErrorIs(t, err, ErrNotFinite)
}
