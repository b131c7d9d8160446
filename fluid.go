// Package fluid wires the Fluid Investing dashboard: configuration, data
// sources, the fetch cache, the dashboard service and the web server.
package fluid

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/raykavin/fluid/internal/config"
	"github.com/raykavin/fluid/pkg/core"
	"github.com/raykavin/fluid/pkg/dashboard"
	"github.com/raykavin/fluid/pkg/directory"
	"github.com/raykavin/fluid/pkg/logger"
	"github.com/raykavin/fluid/pkg/logger/zerolog"
	"github.com/raykavin/fluid/pkg/provider"
	"github.com/raykavin/fluid/pkg/provider/csvfeed"
	"github.com/raykavin/fluid/pkg/provider/fred"
	"github.com/raykavin/fluid/pkg/provider/yahoo"
	"github.com/raykavin/fluid/pkg/storage"
	"github.com/raykavin/fluid/pkg/web"
)

// DefaultLog is the default logger instance
var DefaultLog logger.Logger

// App owns the long-lived collaborators of one process.
type App struct {
	cfg       *config.Config
	log       logger.Logger
	tickers   *directory.Directory
	cache     *storage.BuntCache
	prices    core.PriceSource
	economics core.EconomicSource
	service   *dashboard.Service
}

// Option is a functional option for configuring an App
type Option func(*App)

func WithLogger(log logger.Logger) Option {
	return func(app *App) {
		app.log = log
	}
}

// WithDirectory skips loading the ticker list from cfg.Tickers.
func WithDirectory(tickers *directory.Directory) Option {
	return func(app *App) {
		app.tickers = tickers
	}
}

// WithPriceSource replaces the Yahoo client.
func WithPriceSource(source core.PriceSource) Option {
	return func(app *App) {
		app.prices = source
	}
}

// WithEconomicSource replaces the FRED client.
func WithEconomicSource(source core.EconomicSource) Option {
	return func(app *App) {
		app.economics = source
	}
}

// NewApp loads the ticker directory and builds the data sources described by cfg.
func NewApp(cfg *config.Config, options ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &App{cfg: cfg, log: DefaultLog}
	for _, option := range options {
		option(app)
	}
	if app.log == nil {
		app.log = zerolog.Nop()
	}

	if err := app.initializeTickers(); err != nil {
		return nil, err
	}
	if err := app.initializeCache(); err != nil {
		return nil, err
	}
	app.initializeSources()

	app.service = dashboard.New(app.prices, app.economics, app.tickers,
		dashboard.WithCatalog(cfg.Sections()),
		dashboard.WithFetchTimeout(cfg.Fetch.Timeout),
		dashboard.WithDefaultStart(cfg.Dashboard.DefaultStart),
		dashboard.WithLogger(app.log),
	)
	return app, nil
}

func (a *App) initializeTickers() error {
	if a.tickers != nil {
		return nil
	}

	tickers, err := directory.Load(a.cfg.Tickers.File, a.cfg.Tickers.Sheet, a.cfg.Tickers.Column)
	if err != nil {
		return fmt.Errorf("load ticker list: %w", err)
	}

	a.log.WithFields(map[string]any{
		"file":    a.cfg.Tickers.File,
		"tickers": tickers.Len(),
	}).Info("ticker list loaded")
	a.tickers = tickers
	return nil
}

func (a *App) initializeCache() error {
	if !a.cfg.Cache.Enabled {
		return nil
	}

	cache, err := storage.NewBuntCache(a.cfg.Cache.Path, a.cfg.Cache.TTL)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	a.cache = cache
	return nil
}

func (a *App) initializeSources() {
	httpClient := &http.Client{Timeout: a.cfg.Fetch.Timeout + 5*time.Second}

	switch {
	case a.prices != nil:
	case a.cfg.Prices.Source == config.SourceCSV:
		a.log.WithField("dir", a.cfg.Prices.CSVDir).Info("reading prices from CSV files")
		a.prices = csvfeed.New(a.cfg.Prices.CSVDir)
	default:
		a.prices = yahoo.New(
			yahoo.WithHTTPClient(httpClient),
			yahoo.WithBaseURL(a.cfg.Yahoo.BaseURL),
			yahoo.WithCookieURL(a.cfg.Yahoo.CookieURL),
			yahoo.WithUserAgent(a.cfg.Yahoo.UserAgent),
			yahoo.WithRetries(a.cfg.Fetch.Retries),
			yahoo.WithLogger(a.log),
		)
	}

	if a.economics == nil {
		client, err := fred.New(a.cfg.Fred.APIKey,
			fred.WithHTTPClient(httpClient),
			fred.WithBaseURL(a.cfg.Fred.BaseURL),
			fred.WithRetries(a.cfg.Fetch.Retries),
			fred.WithLogger(a.log),
		)
		if err != nil {
			a.log.WithError(err).Warn("economic indicators are disabled")
			a.economics = disabledSource{err: err}
		} else {
			a.economics = client
		}
	}

	if a.cache != nil {
		a.prices = provider.CachedPrices{Source: a.prices, Cache: a.cache, Log: a.log}
		a.economics = provider.CachedEconomics{Source: a.economics, Cache: a.cache, Log: a.log}
	}
}

// Service returns the dashboard service.
func (a *App) Service() *dashboard.Service { return a.service }

// EconomicsEnabled reports whether a FRED API key was configured.
func (a *App) EconomicsEnabled() bool {
	source := a.economics
	if cached, ok := source.(provider.CachedEconomics); ok {
		source = cached.Source
	}
	_, disabled := source.(disabledSource)
	return !disabled
}

// Serve runs the web UI until ctx is canceled.
func (a *App) Serve(ctx context.Context) error {
	options := []web.Option{web.WithPort(a.cfg.App.Port), web.WithAppName(a.cfg.App.Name)}
	if a.cfg.App.Debug {
		options = append(options, web.WithDebug())
	}

	server, err := web.NewServer(a.service, a.log, options...)
	if err != nil {
		return err
	}

	scheduler, err := a.scheduleRefresh()
	if err != nil {
		return err
	}
	if scheduler != nil {
		scheduler.Start()
		defer scheduler.Stop()
		a.log.WithField("schedule", a.cfg.Cache.Refresh).Info("cache refresh scheduled")
	}

	return server.Start(ctx)
}

// Close releases the cache.
func (a *App) Close() error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Close()
}

// disabledSource answers every request with the configuration error that disabled it.
type disabledSource struct {
	err error
}

func (d disabledSource) NamedSeries(_ context.Context, id string) (core.TimeSeries, error) {
	return core.TimeSeries{}, core.Unavailable("fred", id, d.err)
}

// NewLogger builds the process logger from the log section of the configuration.
func NewLogger(cfg config.LogConfig) (logger.Logger, error) {
	return zerolog.New(zerolog.Options{
		Level:      cfg.Level,
		TimeLayout: cfg.TimeFormat,
		Colored:    cfg.Color,
		JSON:       cfg.JSON,
	})
}
