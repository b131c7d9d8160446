// Package provider holds the HTTP plumbing shared by the market and economic
// data clients, plus caching decorators for their sources.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jpillora/backoff"
	"github.com/raykavin/fluid/pkg/logger"
)

// MaxBodySize bounds how much of a response body is read.
const MaxBodySize = 10 << 20

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	Code int
	URL  string
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d from %s", e.Code, e.URL)
	}
	return fmt.Sprintf("unexpected status %d from %s: %s", e.Code, e.URL, e.Body)
}

// Temporary reports whether retrying the request may succeed.
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// setupBackoffRetry creates the retry schedule used by Fetch.
func setupBackoffRetry() *backoff.Backoff {
	return &backoff.Backoff{
		Min:    200 * time.Millisecond,
		Max:    2 * time.Second,
		Factor: 2,
		Jitter: true,
	}
}

// Fetch performs req and returns the response body. Transport errors, 429 and
// 5xx answers are retried up to retries extra times; the request must not carry
// a body. Other non-2xx answers fail immediately with a *StatusError.
func Fetch(ctx context.Context, client *http.Client, req *http.Request, retries int, log logger.Logger) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if retries < 0 {
		retries = 0
	}

	b := setupBackoffRetry()
	var lastErr error

	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			wait := b.Duration()
			if log != nil {
				log.WithFields(map[string]any{
					"url":     endpoint(req.URL),
					"attempt": attempt,
					"wait":    wait.String(),
				}).WithError(lastErr).Debug("retrying request")
			}

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
		}

		body, err := do(ctx, client, req)
		if err == nil {
			return body, nil
		}
		lastErr = err

		var statusErr *StatusError
		if errors.As(err, &statusErr) && !statusErr.Temporary() {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

func do(ctx context.Context, client *http.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req.Clone(ctx))
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return nil, fmt.Errorf("%s %s: %w", urlErr.Op, endpoint(req.URL), urlErr.Err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := string(body)
		if len(snippet) > 256 {
			snippet = snippet[:256]
		}
		return nil, &StatusError{Code: resp.StatusCode, URL: endpoint(req.URL), Body: snippet}
	}

	return body, nil
}

// endpoint drops the query so credentials passed as parameters never reach logs or errors.
func endpoint(u *url.URL) string {
	return u.Scheme + "://" + u.Host + u.Path
}
