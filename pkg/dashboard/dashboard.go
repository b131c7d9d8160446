package dashboard

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/raykavin/fluid/pkg/chart"
	"github.com/raykavin/fluid/pkg/core"
	"github.com/raykavin/fluid/pkg/format"
	"github.com/raykavin/fluid/pkg/metric"
)

const (
	Headline = "Simply because, making money should be free."
	Intro    = "Stock investing across three exchanges: NYSE, NASDAQ and TSX. " +
		"Select a tab from the sidebar to start investing."

	rawPrecision = 4
)

// Request is one interaction with the Dashboard tab. Zero dates take the defaults.
type Request struct {
	Ticker  string
	Start   time.Time
	End     time.Time
	ShowRaw bool
}

// Panel is a titled block of the page. Error is set instead of the content
// when the data behind the panel could not be fetched.
type Panel struct {
	Title string      `json:"title"`
	Note  string      `json:"note,omitempty"`
	Chart *chart.Spec `json:"chart,omitempty"`
	Error string      `json:"error,omitempty"`
}

// RawPanel lists the downloaded bars and a per-column summary.
type RawPanel struct {
	Title   string       `json:"title"`
	Header  []string     `json:"header,omitempty"`
	Rows    [][]string   `json:"rows,omitempty"`
	Summary []SummaryRow `json:"summary,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// SummaryRow is a formatted metric.Summary.
type SummaryRow struct {
	Column string `json:"column"`
	Count  int    `json:"count"`
	Mean   string `json:"mean"`
	Std    string `json:"std"`
	Min    string `json:"min"`
	Max    string `json:"max"`
}

type MetricsPanel struct {
	Title   string   `json:"title"`
	Metrics []Metric `json:"metrics,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// DashboardView is everything the Dashboard tab shows for one ticker.
type DashboardView struct {
	Title   string       `json:"title"`
	Intro   string       `json:"intro"`
	Symbol  string       `json:"symbol"`
	Label   string       `json:"label"`
	Header  string       `json:"header"`
	Start   string       `json:"start"`
	End     string       `json:"end"`
	Price   Panel        `json:"price"`
	Raw     *RawPanel    `json:"raw,omitempty"`
	Metrics MetricsPanel `json:"metrics"`
}

// Dashboard builds the Dashboard tab. It fails only for an unknown ticker
// (core.ErrUnknownTicker) or an empty date range (core.ErrInvalidRange).
func (s *Service) Dashboard(ctx context.Context, req Request) (DashboardView, error) {
	symbol, err := s.tickers.Resolve(req.Ticker)
	if err != nil {
		return DashboardView{}, err
	}

	start, end, err := s.Window(req.Start, req.End)
	if err != nil {
		return DashboardView{}, err
	}

	label, _ := s.tickers.Label(symbol)
	view := DashboardView{
		Title:  Headline,
		Intro:  Intro,
		Symbol: symbol,
		Label:  label,
		Header: "Stock Price : " + symbol,
		Start:  start.Format(time.DateOnly),
		End:    end.Format(time.DateOnly),
		Price:  Panel{Title: symbol},
	}

	log := s.log.WithField("symbol", symbol)

	bars, err := s.fetchHistory(ctx, symbol, start, end)
	if err != nil {
		log.WithError(err).Warn("price history unavailable")
		view.Price.Error = fmt.Sprintf("Price history for %s is unavailable: %v", symbol, err)
	} else if figure, err := chart.PriceFigure(symbol, bars, s.studies...); err != nil {
		view.Price.Error = noDataMessage(symbol, start, end, err)
	} else {
		view.Price.Chart = &figure
	}

	if req.ShowRaw {
		view.Raw = rawPanel(bars, view.Price.Error)
	}

	view.Metrics = MetricsPanel{Title: "Additional Metrics"}
	record, err := s.fetchSnapshot(ctx, symbol)
	if err != nil {
		log.WithError(err).Warn("snapshot unavailable")
		view.Metrics.Error = fmt.Sprintf("Metrics for %s are unavailable: %v", symbol, err)
	} else {
		view.Metrics.Metrics = BuildMetrics(record, DefaultMetrics())
	}

	return view, nil
}

// Snapshot resolves ticker and formats its metrics.
func (s *Service) Snapshot(ctx context.Context, ticker string) (string, []Metric, error) {
	symbol, err := s.tickers.Resolve(ticker)
	if err != nil {
		return "", nil, err
	}

	record, err := s.fetchSnapshot(ctx, symbol)
	if err != nil {
		return symbol, nil, err
	}
	return symbol, BuildMetrics(record, DefaultMetrics()), nil
}

func noDataMessage(symbol string, start, end time.Time, err error) string {
	if errors.Is(err, core.ErrEmptySeriesSet) {
		return fmt.Sprintf("No price data for %s between %s and %s.",
			symbol, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	return fmt.Sprintf("Price chart for %s failed: %v", symbol, err)
}

func rawPanel(bars core.Bars, fetchErr string) *RawPanel {
	panel := &RawPanel{Title: "Raw data"}
	if fetchErr != "" {
		panel.Error = fetchErr
		return panel
	}

	panel.Header = core.BarHeader
	panel.Rows = make([][]string, len(bars))
	for i, bar := range bars {
		panel.Rows[i] = bar.ToSlice(rawPrecision)
	}
	panel.Summary = SummarizeBars(bars)
	return panel
}

// SummarizeBars describes every numeric column of bars.
func SummarizeBars(bars core.Bars) []SummaryRow {
	columns := []struct {
		name   string
		values []float64
	}{
		{"open", bars.Opens()},
		{"high", bars.Highs()},
		{"low", bars.Lows()},
		{"close", bars.Closes()},
		{"adj_close", adjCloses(bars)},
		{"volume", bars.Volumes()},
	}

	rows := make([]SummaryRow, 0, len(columns))
	for _, column := range columns {
		summary := metric.Summarize(column.name, column.values)
		rows = append(rows, SummaryRow{
			Column: summary.Name,
			Count:  summary.Count,
			Mean:   statistic(summary.Mean),
			Std:    statistic(summary.Std),
			Min:    statistic(summary.Min),
			Max:    statistic(summary.Max),
		})
	}
	return rows
}

func adjCloses(bars core.Bars) []float64 {
	out := make([]float64, len(bars))
	for i, bar := range bars {
		out[i] = bar.AdjClose
	}
	return out
}

func statistic(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return format.NotAvailable
	}
	return format.Decimal(x, rawPrecision)
}
