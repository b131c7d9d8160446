package yahoo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/raykavin/fluid/pkg/provider"
)

// crumbPath serves the crumb quoteSummary expects next to the session cookie; without both it answers 401.
const crumbPath = "/v1/test/getcrumb"

// sessionCrumb returns the cached crumb, running the cookie handshake when
// there is none yet or when the cached one equals stale.
func (c *Client) sessionCrumb(ctx context.Context, stale string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.crumb != "" && c.crumb != stale {
		return c.crumb, nil
	}

	if err := c.primeCookies(ctx); err != nil {
		return "", err
	}

	body, err := c.get(ctx, crumbPath, nil)
	if err != nil {
		return "", fmt.Errorf("fetch crumb: %w", err)
	}

	crumb := strings.TrimSpace(string(body))
	if crumb == "" || strings.ContainsAny(crumb, "{<") {
		return "", errors.New("fetch crumb: no crumb in response")
	}

	if c.log != nil {
		c.log.Debug("yahoo session crumb acquired")
	}
	c.crumb = crumb
	return crumb, nil
}

// primeCookies visits the cookie URL so the jar holds a session cookie. The
// page usually answers 404; only transport errors count.
func (c *Client) primeCookies(ctx context.Context) error {
	if c.cookieURL == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cookieURL, nil)
	if err != nil {
		return fmt.Errorf("build cookie request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("cookie handshake: %w", err)
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, provider.MaxBodySize))
	return nil
}

// getWithCrumb performs an authenticated GET. A 401 means the crumb expired:
// it is refreshed once and the request repeated.
func (c *Client) getWithCrumb(ctx context.Context, path string, query url.Values) ([]byte, error) {
	crumb, err := c.sessionCrumb(ctx, "")
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, path, crumbQuery(query, crumb))
	var statusErr *provider.StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusUnauthorized {
		return body, err
	}

	if c.log != nil {
		c.log.WithField("path", path).Debug("yahoo crumb rejected, refreshing session")
	}

	crumb, err = c.sessionCrumb(ctx, crumb)
	if err != nil {
		return nil, err
	}
	return c.get(ctx, path, crumbQuery(query, crumb))
}

func crumbQuery(query url.Values, crumb string) url.Values {
	q := make(url.Values, len(query)+1)
	for key, values := range query {
		q[key] = values
	}
	q.Set("crumb", crumb)
	return q
}
