// Package pageviews provides methods for querying the Wikimedia Pageviews API.
package pageviews

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/antonholmquist/jason"
	"github.com/rs/zerolog"
)

// Defaults used by New unless overridden with options.
const (
	DefaultBaseURL = "https://wikimedia.org/api/rest_v1/metrics"
	DefaultProject = "en.wikipedia.org"
	DefaultAccess  = "all-access"
	DefaultAgent   = "user"
)

// Client is a client for the Wikimedia Pageviews API. A Client holds no
// state between calls and is safe for concurrent use.
type Client struct {
	httpc     *http.Client
	log       zerolog.Logger
	urls      urls
	userAgent string
	limit     int
}

// Option configures a Client created by New.
type Option func(*Client)

// WithHTTPClient makes the Client issue requests through httpc instead of
// a default http.Client. Timeouts, TLS, proxies, and connection pooling
// all belong to httpc.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithBaseURL overrides the API base URL (no trailing slash),
// e.g. "https://wikimedia.org/api/rest_v1/metrics".
func WithBaseURL(base string) Option {
	return func(c *Client) { c.urls.base = base }
}

// WithProject sets the project whose pageviews are queried, e.g.
// "en.wikipedia.org", "de.wikipedia.org", or "commons.wikimedia.org".
func WithProject(project string) Option {
	return func(c *Client) { c.urls.project = project }
}

// WithAccess filters by access method: "desktop", "mobile-app", or
// "mobile-web". The default, "all-access", does not filter.
func WithAccess(access string) Option {
	return func(c *Client) { c.urls.access = access }
}

// WithAgent filters per-article counts by agent type: "automated" or
// "spider". The default, "user", counts human traffic; "all-agents" does
// not filter.
func WithAgent(agent string) Option {
	return func(c *Client) { c.urls.agent = agent }
}

// WithLimit caps the number of entries returned by the MostViewedFor*
// methods. Zero, the default, applies no cap; the service itself returns
// at most 1000 entries per list.
func WithLimit(n int) Option {
	return func(c *Client) { c.limit = n }
}

// WithLogger sets the logger used for per-request debug logging.
// The Client is silent by default.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New returns a Client that identifies itself with the given User-Agent
// string on every request. userAgent must be non-empty and should include
// contact information, per the Wikimedia API etiquette
// (https://www.mediawiki.org/wiki/REST_API).
func New(userAgent string, opts ...Option) (*Client, error) {
	if userAgent == "" {
		return nil, errors.New("pageviews: userAgent must be non-empty")
	}

	c := &Client{
		httpc: &http.Client{},
		log:   zerolog.Nop(),
		urls: urls{
			base:    DefaultBaseURL,
			project: DefaultProject,
			access:  DefaultAccess,
			agent:   DefaultAgent,
		},
		userAgent: userAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// get issues a GET request to the given URL and parses the JSON response.
// Non-2xx responses become a *NotFoundError or *APIError; failures before
// a status line is read are returned wrapped.
func (c *Client) get(ctx context.Context, url string) (*jason.Object, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("pageviews: unable to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.log.Debug().Str("url", url).Err(err).Msg("request failed")
		return nil, fmt.Errorf("pageviews: GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("pageviews: reading response from %s: %w", url, err)
	}

	c.log.Debug().
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, extractAPIError(resp.StatusCode, body, url)
	}

	obj, err := jason.NewObjectFromBytes(body)
	if err != nil {
		return nil, fmt.Errorf("pageviews: parsing response from %s: %w", url, err)
	}
	return obj, nil
}
