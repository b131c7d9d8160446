package metric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	s := Summarize("close", []float64{2, 4, 4, 4, 5, 5, 7, 9})

	assert.Equal(t, "close", s.Name)
	assert.Equal(t, 8, s.Count)
	assert.InDelta(t, 5.0, s.Mean, 1e-12)
	assert.InDelta(t, 2.138089935, s.Std, 1e-9)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 9.0, s.Max)
}

func TestSummarize_Degenerate(t *testing.T) {
	empty := Summarize("volume", nil)
	assert.Zero(t, empty.Count)
	assert.True(t, math.IsNaN(empty.Mean))

	single := Summarize("open", []float64{3, math.NaN()})
	assert.Equal(t, 1, single.Count)
	assert.Equal(t, 3.0, single.Mean)
	assert.True(t, math.IsNaN(single.Std))
}

func TestBootstrap(t *testing.T) {
	values := []float64{0.01, -0.02, 0.015, 0.003, -0.004, 0.02, 0.0, -0.01}

	interval := Bootstrap(values, Mean, 500, 0.95)
	require.LessOrEqual(t, interval.Lower, interval.Upper)
	assert.GreaterOrEqual(t, interval.Lower, -0.02)
	assert.LessOrEqual(t, interval.Upper, 0.02)
	assert.InDelta(t, Mean(values), interval.Mean, 0.005)

	assert.Equal(t, BootstrapInterval{}, Bootstrap(nil, Mean, 10, 0.9))
}
