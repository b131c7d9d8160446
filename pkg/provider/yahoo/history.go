package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/raykavin/fluid/pkg/core"
	"github.com/tidwall/gjson"
)

var errNoData = errors.New("no data returned")

// PriceHistory downloads daily bars for symbol with start <= date < end.
// Sessions with missing prices are skipped.
func (c *Client) PriceHistory(ctx context.Context, symbol string, start, end time.Time) (core.Bars, error) {
	if !start.Before(end) {
		return nil, core.ErrInvalidRange
	}

	query := url.Values{}
	query.Set("period1", strconv.FormatInt(start.Unix(), 10))
	query.Set("period2", strconv.FormatInt(end.Unix(), 10))
	query.Set("interval", "1d")
	query.Set("includeAdjustedClose", "true")
	query.Set("events", "div,splits")

	body, err := c.get(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), query)
	if err != nil {
		return nil, core.Unavailable(sourceName, symbol, err)
	}

	bars, err := parseChart(body, start, end)
	if err != nil {
		return nil, core.Unavailable(sourceName, symbol, err)
	}

	if c.log != nil {
		c.log.WithFields(map[string]any{"symbol": symbol, "bars": len(bars)}).Debug("price history loaded")
	}
	return bars, nil
}

func parseChart(body []byte, start, end time.Time) (core.Bars, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("malformed chart response")
	}

	doc := gjson.ParseBytes(body)
	if desc := doc.Get("chart.error.description"); desc.Exists() {
		return nil, fmt.Errorf("api error: %s", desc.String())
	}

	result := doc.Get("chart.result.0")
	if !result.Exists() {
		return nil, errNoData
	}

	offset := time.Duration(result.Get("meta.gmtoffset").Int()) * time.Second
	stamps := result.Get("timestamp").Array()
	quote := result.Get("indicators.quote.0")
	opens := quote.Get("open").Array()
	highs := quote.Get("high").Array()
	lows := quote.Get("low").Array()
	closes := quote.Get("close").Array()
	volumes := quote.Get("volume").Array()
	adjusted := result.Get("indicators.adjclose.0.adjclose").Array()

	bars := make(core.Bars, 0, len(stamps))
	seen := make(map[time.Time]struct{}, len(stamps))
	for i, ts := range stamps {
		closeValue, ok := number(closes, i)
		if !ok {
			continue
		}

		// exchange-local trading day, stored as midnight UTC
		local := time.Unix(ts.Int(), 0).UTC().Add(offset)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
		if day.Before(start.UTC().Truncate(24*time.Hour)) || !day.Before(end) {
			continue
		}
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}

		bar := core.Bar{Time: day, Close: closeValue, AdjClose: closeValue}
		bar.Open, _ = number(opens, i)
		bar.High, _ = number(highs, i)
		bar.Low, _ = number(lows, i)
		bar.Volume, _ = number(volumes, i)
		if adj, ok := number(adjusted, i); ok {
			bar.AdjClose = adj
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// number reads values[i], reporting false for nulls, non-finite values and short arrays.
func number(values []gjson.Result, i int) (float64, bool) {
	if i >= len(values) || values[i].Type != gjson.Number {
		return 0, false
	}
	x := values[i].Float()
	return x, core.Finite(x)
}
