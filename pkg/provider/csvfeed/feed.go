// Package csvfeed serves daily prices from CSV files, one file per symbol.
// It reads the files written by the history export and gives the dashboard
// an offline price source.
package csvfeed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/raykavin/fluid/pkg/core"
	"github.com/samber/lo"
)

const sourceName = "csv"

// volumeDays is the window of the averageVolume10days field.
const volumeDays = 10

var (
	ErrMissingColumn = errors.New("missing column")
	requiredColumns  = []string{"open", "high", "low", "close", "volume"}
)

// Feed reads {dir}/{SYMBOL}.csv on every request.
type Feed struct {
	dir string
}

func New(dir string) *Feed {
	return &Feed{dir: dir}
}

// PriceHistory returns the bars of symbol with start <= date < end.
func (f *Feed) PriceHistory(_ context.Context, symbol string, start, end time.Time) (core.Bars, error) {
	if !start.Before(end) {
		return nil, core.ErrInvalidRange
	}

	bars, err := f.read(symbol)
	if err != nil {
		return nil, core.Unavailable(sourceName, symbol, err)
	}

	return lo.Filter(bars, func(bar core.Bar, _ int) bool {
		return !bar.Time.Before(start) && bar.Time.Before(end)
	}), nil
}

// Snapshot derives the price fields of a quote summary from the last year of bars.
// Fundamentals such as marketCap are absent.
func (f *Feed) Snapshot(_ context.Context, symbol string) (core.Record, error) {
	bars, err := f.read(symbol)
	if err != nil {
		return nil, core.Unavailable(sourceName, symbol, err)
	}
	if len(bars) == 0 {
		return core.Record{}, nil
	}

	last := bars[len(bars)-1]
	year := lo.Filter(bars, func(bar core.Bar, _ int) bool {
		return bar.Time.After(last.Time.AddDate(-1, 0, 0))
	})
	recent := bars[max(0, len(bars)-volumeDays):]

	return core.Record{
		"previousClose":       last.Close,
		"volume":              last.Volume,
		"averageVolume10days": lo.Sum(core.Bars(recent).Volumes()) / float64(len(recent)),
		"fiftyTwoWeekHigh":    lo.Max(core.Bars(year).Highs()),
		"fiftyTwoWeekLow":     lo.Min(core.Bars(year).Lows()),
	}, nil
}

func (f *Feed) read(symbol string) (core.Bars, error) {
	file, err := os.Open(filepath.Join(f.dir, strings.ToUpper(symbol)+".csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	lines, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, nil
	}

	headers, err := parseHeaders(lines[0])
	if err != nil {
		return nil, err
	}

	bars := make(core.Bars, 0, len(lines)-1)
	for i, line := range lines[1:] {
		bar, err := parseBar(line, headers)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// parseHeaders maps column names to indexes. Dates come from either a "date"
// column (YYYY-MM-DD) or a "time" column (unix seconds).
func parseHeaders(headers []string) (map[string]int, error) {
	headerMap := make(map[string]int, len(headers))
	for index, header := range headers {
		headerMap[strings.ToLower(strings.TrimSpace(header))] = index
	}

	_, hasDate := headerMap["date"]
	_, hasTime := headerMap["time"]
	if !hasDate && !hasTime {
		return nil, fmt.Errorf("%w: date", ErrMissingColumn)
	}
	for _, column := range requiredColumns {
		if _, ok := headerMap[column]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, column)
		}
	}
	return headerMap, nil
}

// parseBar parses a CSV line into a bar
func parseBar(line []string, headerMap map[string]int) (core.Bar, error) {
	var bar core.Bar
	var err error

	if index, ok := headerMap["date"]; ok {
		if bar.Time, err = time.Parse(time.DateOnly, line[index]); err != nil {
			return core.Bar{}, err
		}
	} else {
		timestamp, err := strconv.ParseInt(line[headerMap["time"]], 10, 64)
		if err != nil {
			return core.Bar{}, err
		}
		y, m, d := time.Unix(timestamp, 0).UTC().Date()
		bar.Time = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	fields := []struct {
		name string
		dst  *float64
	}{
		{"open", &bar.Open},
		{"high", &bar.High},
		{"low", &bar.Low},
		{"close", &bar.Close},
		{"volume", &bar.Volume},
	}
	for _, field := range fields {
		if *field.dst, err = core.ParseFinite(line[headerMap[field.name]]); err != nil {
			return core.Bar{}, fmt.Errorf("%s: %w", field.name, err)
		}
	}

	bar.AdjClose = bar.Close
	if index, ok := headerMap["adj_close"]; ok {
		if bar.AdjClose, err = core.ParseFinite(line[index]); err != nil {
			return core.Bar{}, fmt.Errorf("adj_close: %w", err)
		}
	}

	return bar, nil
}
