// Package yahoo is a Yahoo Finance client for daily price history and quote summaries.
package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/raykavin/fluid/pkg/logger"
	"github.com/raykavin/fluid/pkg/provider"
)

const (
	DefaultBaseURL   = "https://query1.finance.yahoo.com"
	DefaultCookieURL = "https://fc.yahoo.com"
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) fluid/1.0"
	DefaultRetries   = 2

	sourceName = "yahoo"
)

// Client implements core.PriceSource on top of the Yahoo Finance HTTP API.
// Quote summaries need a session cookie and crumb, fetched on first use.
type Client struct {
	http      *http.Client
	baseURL   string
	cookieURL string
	userAgent string
	retries   int
	log       logger.Logger

	mu    sync.Mutex
	crumb string
}

// Option defines a function type for configuring a Client
type Option func(*Client)

// WithHTTPClient replaces the default client, which has a 30s timeout.
// A client without a cookie jar is copied and given one.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.http = client
	}
}

// WithCookieURL sets the page visited to obtain the session cookie. Empty skips the visit.
func WithCookieURL(cookieURL string) Option {
	return func(c *Client) {
		c.cookieURL = cookieURL
	}
}

// WithBaseURL points the client at another host, e.g. a test server.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = base
	}
}

func WithUserAgent(agent string) Option {
	return func(c *Client) {
		c.userAgent = agent
	}
}

// WithRetries sets how many times a failed request is retried.
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

// New creates a Yahoo client with the provided options.
func New(options ...Option) *Client {
	client := &Client{
		http:      &http.Client{Timeout: 30 * time.Second},
		baseURL:   DefaultBaseURL,
		cookieURL: DefaultCookieURL,
		userAgent: DefaultUserAgent,
		retries:   DefaultRetries,
	}

	for _, option := range options {
		option(client)
	}

	if client.http == nil {
		client.http = &http.Client{Timeout: 30 * time.Second}
	}
	if client.http.Jar == nil {
		// cookiejar.New only fails on a broken public suffix list
		jar, _ := cookiejar.New(nil)
		withJar := *client.http
		withJar.Jar = jar
		client.http = &withJar
	}

	return client
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	return provider.Fetch(ctx, c.http, req, c.retries, c.log)
}
