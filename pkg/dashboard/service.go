// Package dashboard assembles the views of the three tabs: the per-ticker
// dashboard, the economic indicators and the forecasting placeholder.
//
// Every interaction is one synchronous pass. Fetch failures never fail a view;
// they are reported on the panel that needed the data.
package dashboard

import (
	"context"
	"time"

	"github.com/raykavin/fluid/pkg/chart"
	"github.com/raykavin/fluid/pkg/chart/indicator"
	"github.com/raykavin/fluid/pkg/core"
	"github.com/raykavin/fluid/pkg/directory"
	"github.com/raykavin/fluid/pkg/logger"
	"github.com/raykavin/fluid/pkg/logger/zerolog"
)

const DefaultFetchTimeout = 20 * time.Second

// DefaultStart is the initial value of the start date picker.
var DefaultStart = time.Date(2022, time.January, 1, 0, 0, 0, 0, time.UTC)

// Service builds views from the configured data sources.
type Service struct {
	prices       core.PriceSource
	economics    core.EconomicSource
	tickers      *directory.Directory
	catalog      []Section
	studies      []chart.Indicator
	fetchTimeout time.Duration
	defaultStart time.Time
	now          func() time.Time
	log          logger.Logger
}

// Option defines a function type for configuring a Service
type Option func(*Service)

// WithCatalog replaces the economic sections.
func WithCatalog(sections []Section) Option {
	return func(s *Service) {
		s.catalog = sections
	}
}

// WithStudies replaces the indicators drawn on the price chart.
func WithStudies(studies ...chart.Indicator) Option {
	return func(s *Service) {
		s.studies = studies
	}
}

// WithFetchTimeout bounds every single call to a data source.
func WithFetchTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		s.fetchTimeout = timeout
	}
}

func WithDefaultStart(start time.Time) Option {
	return func(s *Service) {
		s.defaultStart = start
	}
}

// WithClock overrides time.Now, used for the default end date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// DefaultStudies mirrors the classic quant figure: RSI(20), filled Bollinger
// Bands(20, 2) and volume.
func DefaultStudies() []chart.Indicator {
	return []chart.Indicator{
		indicator.RSI(20, "#2db5b5"),
		indicator.BollingerBands(20, 2, "magenta", "grey", true),
		indicator.Volume("#3d9970", "#ff4136"),
	}
}

// New creates a Service. The ticker directory is read-only and shared.
func New(prices core.PriceSource, economics core.EconomicSource, tickers *directory.Directory, options ...Option) *Service {
	service := &Service{
		prices:       prices,
		economics:    economics,
		tickers:      tickers,
		catalog:      DefaultCatalog(),
		studies:      DefaultStudies(),
		fetchTimeout: DefaultFetchTimeout,
		defaultStart: DefaultStart,
		now:          time.Now,
		log:          zerolog.Nop(),
	}

	for _, option := range options {
		option(service)
	}

	if service.tickers == nil {
		service.tickers = directory.New()
	}
	return service
}

// Tickers exposes the directory backing the ticker selector.
func (s *Service) Tickers() *directory.Directory { return s.tickers }

// Catalog returns the economic sections in display order.
func (s *Service) Catalog() []Section {
	out := make([]Section, len(s.catalog))
	copy(out, s.catalog)
	return out
}

// Today is the current date as a UTC midnight.
func (s *Service) Today() time.Time { return day(s.now()) }

// Window fills the zero bounds of a date range with the defaults: the
// configured start date and today. Dates are truncated to whole UTC days.
func (s *Service) Window(start, end time.Time) (time.Time, time.Time, error) {
	if start.IsZero() {
		start = s.defaultStart
	}
	if end.IsZero() {
		end = s.now()
	}

	start, end = day(start), day(end)
	if !start.Before(end) {
		return start, end, core.ErrInvalidRange
	}
	return start, end, nil
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// History resolves ticker and downloads its daily bars over the window.
func (s *Service) History(ctx context.Context, ticker string, start, end time.Time) (string, core.Bars, error) {
	symbol, err := s.tickers.Resolve(ticker)
	if err != nil {
		return "", nil, err
	}

	start, end, err = s.Window(start, end)
	if err != nil {
		return symbol, nil, err
	}

	bars, err := s.fetchHistory(ctx, symbol, start, end)
	return symbol, bars, err
}

func (s *Service) fetchHistory(ctx context.Context, symbol string, start, end time.Time) (core.Bars, error) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	begin := time.Now()
	bars, err := s.prices.PriceHistory(ctx, symbol, start, end)
	s.log.WithFields(map[string]any{
		"symbol":  symbol,
		"elapsed": time.Since(begin).String(),
	}).Debug("price history fetched")
	return bars, core.Unavailable("prices", symbol, err)
}

func (s *Service) fetchSnapshot(ctx context.Context, symbol string) (core.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	record, err := s.prices.Snapshot(ctx, symbol)
	return record, core.Unavailable("prices", symbol, err)
}

func (s *Service) fetchSeries(ctx context.Context, id string) (core.TimeSeries, error) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	series, err := s.economics.NamedSeries(ctx, id)
	return series, core.Unavailable("economics", id, err)
}
