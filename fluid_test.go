package fluid

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/raykavin/fluid/internal/config"
	"github.com/raykavin/fluid/pkg/core"
	"github.com/raykavin/fluid/pkg/directory"
	"github.com/raykavin/fluid/pkg/logger/zerolog"
	"github.com/raykavin/fluid/pkg/provider/fred"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPrices struct {
	history int
}

func (c *countingPrices) PriceHistory(_ context.Context, _ string, start, _ time.Time) (core.Bars, error) {
	c.history++
	return core.Bars{{Time: start, Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 100}}, nil
}

func (c *countingPrices) Snapshot(context.Context, string) (core.Record, error) {
	return core.Record{"previousClose": 172.57}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:       config.AppConfig{Name: "Fluid Investing", Port: 8080},
		Log:       config.LogConfig{Level: "info"},
		Tickers:   config.TickersConfig{File: "unused.xlsx"},
		Prices:    config.PricesConfig{Source: config.SourceYahoo},
		Fetch:     config.FetchConfig{Timeout: time.Second, Retries: 0},
		Cache:     config.CacheConfig{Enabled: true, Path: ":memory:", TTL: time.Minute},
		Dashboard: config.DashboardConfig{DefaultStart: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func TestNewApp(t *testing.T) {
	t.Run("cached prices", func(t *testing.T) {
		prices := &countingPrices{}
		app, err := NewApp(testConfig(),
			WithLogger(zerolog.Nop()),
			WithDirectory(directory.New("AAPL (Apple Inc.)")),
			WithPriceSource(prices),
		)
		require.NoError(t, err)
		defer app.Close()

		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 2; i++ {
			symbol, bars, err := app.Service().History(context.Background(), "AAPL (Apple Inc.)", start, end)
			require.NoError(t, err)
			assert.Equal(t, "AAPL", symbol)
			assert.Len(t, bars, 1)
		}
		assert.Equal(t, 1, prices.history)
	})

	t.Run("cache disabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.Cache.Enabled = false
		prices := &countingPrices{}

		app, err := NewApp(cfg,
			WithLogger(zerolog.Nop()),
			WithDirectory(directory.New("AAPL")),
			WithPriceSource(prices),
		)
		require.NoError(t, err)
		require.NoError(t, app.Close())

		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 2; i++ {
			_, _, err := app.Service().History(context.Background(), "AAPL", start, start.AddDate(0, 1, 0))
			require.NoError(t, err)
		}
		assert.Equal(t, 2, prices.history)
	})

	t.Run("invalid configuration", func(t *testing.T) {
		cfg := testConfig()
		cfg.App.Port = 0

		_, err := NewApp(cfg, WithLogger(zerolog.Nop()), WithDirectory(directory.New("AAPL")))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "app.port")
	})

	t.Run("missing ticker file", func(t *testing.T) {
		cfg := testConfig()
		cfg.Tickers.File = t.TempDir() + "/missing.xlsx"

		_, err := NewApp(cfg, WithLogger(zerolog.Nop()))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load ticker list")
	})
}

func TestCSVPrices(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "AAPL.csv"),
		[]byte("date,open,high,low,close,volume\n2024-01-02,1,2,0.5,1.5,100\n"), 0o600))

	cfg := testConfig()
	cfg.Prices = config.PricesConfig{Source: config.SourceCSV, CSVDir: dir}

	app, err := NewApp(cfg, WithLogger(zerolog.Nop()), WithDirectory(directory.New("AAPL")))
	require.NoError(t, err)
	defer app.Close()

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, bars, err := app.Service().History(context.Background(), "AAPL", start, start.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, 1.5, bars[0].Close)
}

func TestMissingFredKey(t *testing.T) {
	app, err := NewApp(testConfig(),
		WithLogger(zerolog.Nop()),
		WithDirectory(directory.New("AAPL")),
		WithPriceSource(&countingPrices{}),
	)
	require.NoError(t, err)
	defer app.Close()

	assert.False(t, app.EconomicsEnabled())

	view := app.Service().Economic(context.Background())
	require.NotEmpty(t, view.Groups)
	for _, group := range view.Groups {
		for _, panel := range group.Sections {
			assert.Nil(t, panel.Chart)
			assert.NotEmpty(t, panel.Error, panel.Title)
		}
	}

	_, err = disabledSource{err: fred.ErrMissingAPIKey}.NamedSeries(context.Background(), "GDP")
	assert.True(t, errors.Is(err, core.ErrDataSourceUnavailable))
	assert.True(t, errors.Is(err, fred.ErrMissingAPIKey))
}

func TestCacheRefresh(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Refresh = "0 22 * * *"
	prices := &countingPrices{}

	app, err := NewApp(cfg, WithLogger(zerolog.Nop()), WithDirectory(directory.New("AAPL")), WithPriceSource(prices))
	require.NoError(t, err)
	defer app.Close()

	scheduler, err := app.scheduleRefresh()
	require.NoError(t, err)
	require.NotNil(t, scheduler)
	require.Len(t, scheduler.Entries(), 1)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fetch := func() {
		_, _, err := app.Service().History(context.Background(), "AAPL", start, start.AddDate(0, 1, 0))
		require.NoError(t, err)
	}

	fetch()
	fetch()
	assert.Equal(t, 1, prices.history)

	app.refreshCache()
	fetch()
	assert.Equal(t, 2, prices.history)

	cfg.Cache.Refresh = ""
	scheduler, err = app.scheduleRefresh()
	require.NoError(t, err)
	assert.Nil(t, scheduler)
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger(config.LogConfig{Level: "debug", TimeFormat: time.RFC3339})
	require.NoError(t, err)
	assert.NotNil(t, log)

	_, err = NewLogger(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}

func TestDefaultLog(t *testing.T) {
	assert.NotNil(t, DefaultLog)

	t.Setenv(envLogJSON, "maybe")
	_, err := initLogger()
	assert.Error(t, err)
}
