package report

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/raykavin/fluid/pkg/chart"
	"github.com/raykavin/fluid/pkg/core"
	"github.com/raykavin/fluid/pkg/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	var buf bytes.Buffer
	Metrics(&buf, "AAPL", []dashboard.Metric{
		{Label: "Today's Price (Close)", Value: "172.57 $"},
		{Label: "PEG Ratio", Hint: "Price per Earning divided by Growth", Value: "N/A"},
	})

	out := buf.String()
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "172.57 $")
	assert.Contains(t, out, "PEG Ratio (Price per Earning divided by Growth)")
	assert.Contains(t, out, "N/A")
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	Summary(&buf, []dashboard.SummaryRow{{Column: "close", Count: 3, Mean: "2.0000", Std: "1.0000", Min: "1.0000", Max: "3.0000"}})
	assert.Contains(t, buf.String(), "COLUMN")
	assert.Contains(t, buf.String(), "close")
}

func TestReturns(t *testing.T) {
	bars := make(core.Bars, 40)
	for i := range bars {
		bars[i] = core.Bar{
			Time:  time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Close: 100 + 3*math.Sin(float64(i)),
		}
	}

	var buf bytes.Buffer
	require.NoError(t, Returns(&buf, bars))
	assert.Contains(t, buf.String(), "DAILY RETURN")
	assert.Contains(t, buf.String(), "MEAN RETURN")

	buf.Reset()
	require.NoError(t, Returns(&buf, bars[:1]))
	assert.Contains(t, buf.String(), "not enough bars")
}

func TestSection(t *testing.T) {
	series := core.MustTimeSeries(
		core.Point{Time: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), Value: 1.5},
		core.Point{Time: time.Date(2020, 2, 1, 0, 0, 0, 0, time.UTC), Value: 1.75},
	)
	spec, err := chart.RenderOverlay(chart.Overlay("Rates (%)",
		chart.Labeled{Series: series, Label: "U.S."},
		chart.Labeled{Series: series, Label: "CAN"},
	))
	require.NoError(t, err)

	var buf bytes.Buffer
	Section(&buf, dashboard.Panel{Title: "Interest Rates", Chart: &spec})
	out := buf.String()
	assert.Contains(t, out, "## Interest Rates")
	assert.Contains(t, out, "2020-02-01")
	assert.Contains(t, out, "1.75")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("U.S.")), bytes.Index(buf.Bytes(), []byte("CAN")))

	buf.Reset()
	Section(&buf, dashboard.Panel{Title: "GDP", Error: "fred: GDP: timeout"})
	assert.Contains(t, buf.String(), "error: fred: GDP: timeout")
}

func TestTickers(t *testing.T) {
	var buf bytes.Buffer
	Tickers(&buf, []string{"AAPL (Apple Inc.)", "msft"})
	assert.Contains(t, buf.String(), "MSFT")
	assert.Contains(t, buf.String(), "Apple Inc.")
}

func TestLongCellsStayOnOneLine(t *testing.T) {
	label := "BRK-B (Berkshire Hathaway Inc. New Class B Common Stock)"

	var buf bytes.Buffer
	Tickers(&buf, []string{label})
	assert.Contains(t, buf.String(), label)

	series := core.MustTimeSeries(core.Point{Time: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), Value: 1})
	name := "Median household income in the United States (current dollars)"
	spec, err := chart.RenderOverlay(chart.Overlay("USD", chart.Labeled{Series: series, Label: name}))
	require.NoError(t, err)

	buf.Reset()
	Section(&buf, dashboard.Panel{Title: "Median Income", Chart: &spec})
	assert.Contains(t, buf.String(), name)
}
