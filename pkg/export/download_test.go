package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/raykavin/fluid/pkg/core"
	"github.com/raykavin/fluid/pkg/dashboard"
	"github.com/raykavin/fluid/pkg/directory"
	"github.com/raykavin/fluid/pkg/logger/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dailyPrices returns one bar per calendar day in [start, end).
type dailyPrices struct {
	calls [][2]time.Time
	fail  bool
}

func (d *dailyPrices) PriceHistory(_ context.Context, _ string, start, end time.Time) (core.Bars, error) {
	d.calls = append(d.calls, [2]time.Time{start, end})
	if d.fail {
		return nil, errors.New("connection reset")
	}

	var bars core.Bars
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		bars = append(bars, core.Bar{Time: day, Open: 1, High: 2, Low: 0.5, Close: 1.25, AdjClose: 1.25, Volume: 10})
	}
	return bars, nil
}

func (d *dailyPrices) Snapshot(context.Context, string) (core.Record, error) {
	return core.Record{}, nil
}

func newDownloader(prices core.PriceSource) Downloader {
	clock := func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }
	service := dashboard.New(prices, nil, directory.New("AAPL (Apple Inc.)"),
		dashboard.WithClock(clock),
		dashboard.WithLogger(zerolog.Nop()),
	)
	return NewDownloader(service, zerolog.Nop(), nil)
}

func TestDownload(t *testing.T) {
	prices := &dailyPrices{}
	start := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	symbol, bars, err := newDownloader(prices).Download(context.Background(), "AAPL (Apple Inc.)", &buf, WithInterval(start, end))
	require.NoError(t, err)
	assert.Equal(t, "AAPL", symbol)

	require.Len(t, prices.calls, 2)
	assert.Equal(t, start, prices.calls[0][0])
	assert.Equal(t, start.AddDate(1, 0, 0), prices.calls[0][1])
	assert.Equal(t, end, prices.calls[1][1])

	days := int(end.Sub(start) / (24 * time.Hour))
	assert.Len(t, bars, days)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, days+1)
	assert.Equal(t, core.BarHeader, records[0])
	assert.Equal(t, []string{"2022-06-01", "1.0000", "2.0000", "0.5000", "1.2500", "1.2500", "10"}, records[1])
	assert.Equal(t, "2023-12-31", records[days][0])
}

func TestDownloadDefaults(t *testing.T) {
	prices := &dailyPrices{}

	_, bars, err := newDownloader(prices).Download(context.Background(), "AAPL", &bytes.Buffer{}, WithPeriod("10d"))
	require.NoError(t, err)

	require.Len(t, prices.calls, 1)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), prices.calls[0][0])
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), prices.calls[0][1])
	assert.Len(t, bars, 10)
}

func TestDownloadErrors(t *testing.T) {
	tests := []struct {
		name    string
		ticker  string
		options []Option
		fail    bool
		target  error
	}{
		{name: "unknown ticker", ticker: "MSFT", target: core.ErrUnknownTicker},
		{
			name:    "inverted range",
			ticker:  "AAPL",
			options: []Option{WithInterval(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))},
			target:  core.ErrInvalidRange,
		},
		{name: "source failure", ticker: "AAPL", fail: true, target: core.ErrDataSourceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prices := &dailyPrices{fail: tt.fail}
			_, _, err := newDownloader(prices).Download(context.Background(), tt.ticker, &bytes.Buffer{}, tt.options...)
			assert.ErrorIs(t, err, tt.target)
		})
	}

	t.Run("bad period", func(t *testing.T) {
		_, _, err := newDownloader(&dailyPrices{}).Download(context.Background(), "AAPL", &bytes.Buffer{}, WithPeriod("soon"))
		assert.Error(t, err)
	})
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	bars := core.Bars{{Time: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Open: 1.23456, High: 2, Low: 1, Close: 1.5, AdjClose: 1.4, Volume: 1e6}}

	require.NoError(t, WriteCSV(&buf, bars))
	assert.Equal(t, "date,open,high,low,close,adj_close,volume\n2024-01-02,1.2346,2.0000,1.0000,1.5000,1.4000,1000000\n", buf.String())
}
