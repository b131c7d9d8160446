// Package fred reads macroeconomic series from the St. Louis Fed FRED API.
package fred

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/raykavin/fluid/pkg/core"
	"github.com/raykavin/fluid/pkg/logger"
	"github.com/raykavin/fluid/pkg/provider"
	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL = "https://api.stlouisfed.org"
	DefaultRetries = 2

	sourceName = "fred"
	// FRED marks missing observations with a single dot
	missingValue = "."
)

var ErrMissingAPIKey = errors.New("fred: api key is required")

// Client implements core.EconomicSource.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	retries int
	log     logger.Logger
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.http = client
	}
}

func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = base
	}
}

func WithRetries(retries int) Option {
	return func(c *Client) {
		c.retries = retries
	}
}

func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a FRED client. An API key is mandatory.
func New(apiKey string, options ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	client := &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		retries: DefaultRetries,
	}
	for _, option := range options {
		option(client)
	}
	return client, nil
}

// NamedSeries downloads every observation of the series id (e.g. "GDP", "CPIAUCSL").
// Observations without a value are dropped.
func (c *Client) NamedSeries(ctx context.Context, id string) (core.TimeSeries, error) {
	query := url.Values{}
	query.Set("series_id", id)
	query.Set("api_key", c.apiKey)
	query.Set("file_type", "json")
	query.Set("sort_order", "asc")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/fred/series/observations?"+query.Encode(), nil)
	if err != nil {
		return core.TimeSeries{}, fmt.Errorf("build request: %w", err)
	}

	body, err := provider.Fetch(ctx, c.http, req, c.retries, c.log)
	if err != nil {
		return core.TimeSeries{}, core.Unavailable(sourceName, id, err)
	}

	series, err := parseObservations(body)
	if err != nil {
		return core.TimeSeries{}, core.Unavailable(sourceName, id, err)
	}

	if c.log != nil {
		c.log.WithFields(map[string]any{"series": id, "points": series.Len()}).Debug("series loaded")
	}
	return series, nil
}

func parseObservations(body []byte) (core.TimeSeries, error) {
	if !gjson.ValidBytes(body) {
		return core.TimeSeries{}, errors.New("malformed observations response")
	}

	doc := gjson.ParseBytes(body)
	if msg := doc.Get("error_message"); msg.Exists() {
		return core.TimeSeries{}, fmt.Errorf("api error: %s", msg.String())
	}

	observations := doc.Get("observations").Array()
	points := make([]core.Point, 0, len(observations))
	for _, obs := range observations {
		raw := obs.Get("value").String()
		if raw == missingValue || raw == "" {
			continue
		}

		value, err := core.ParseFinite(raw)
		if err != nil {
			return core.TimeSeries{}, fmt.Errorf("observation %s: %w", obs.Get("date").String(), err)
		}

		date, err := time.Parse(time.DateOnly, obs.Get("date").String())
		if err != nil {
			return core.TimeSeries{}, fmt.Errorf("observation date: %w", err)
		}

		points = append(points, core.Point{Time: date, Value: value})
	}

	return core.NewTimeSeries(points)
}
