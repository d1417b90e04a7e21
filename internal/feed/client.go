package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	defaultTimeout     = 15 * time.Second
	defaultUserAgent   = "newsagg/1.0 (+https://github.com/gauthierbraillon/newsagg)"
	defaultMaxBodySize = 10 << 20
)

// ErrInvalidURL is returned when a feed source is not an absolute http(s) URL.
var ErrInvalidURL = errors.New("invalid feed URL")

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout bounds a single feed fetch, including reading the body.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header sent to feed servers.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHostInterval spaces requests to the same host by at least d.
// Zero disables rate limiting.
func WithHostInterval(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.limiter = newHostLimiter(d)
		} else {
			c.limiter = nil
		}
	}
}

// WithMaxBodySize caps how many bytes of a feed document are read.
// Larger documents are truncated and fail to parse.
func WithMaxBodySize(n int64) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// Client retrieves and parses RSS, Atom and JSON feeds. It is safe for
// concurrent use.
type Client struct {
	httpClient  HTTPClient
	timeout     time.Duration
	userAgent   string
	maxBodySize int64
	limiter     *hostLimiter
}

// NewClient creates a new feed client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient:  &http.Client{},
		timeout:     defaultTimeout,
		userAgent:   defaultUserAgent,
		maxBodySize: defaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads feedURL and parses it. The whole operation is bounded by
// the client timeout, so a hung server always ends in an error.
func (c *Client) Fetch(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	u, err := validateURL(feedURL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.wait(ctx, u.Host); err != nil {
			return nil, fmt.Errorf("rate limiting failed for %s: %w", feedURL, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/feed+json, application/xml;q=0.9, */*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", feedURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, feedURL)
	}

	feed, err := newParser().Parse(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", feedURL, err)
	}
	return feed, nil
}

func validateURL(feedURL string) (*url.URL, error) {
	u, err := url.Parse(feedURL)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidURL, feedURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w %q: scheme must be http or https", ErrInvalidURL, feedURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w %q: missing host", ErrInvalidURL, feedURL)
	}
	return u, nil
}

func statusError(statusCode int, feedURL string) error {
	switch statusCode {
	case http.StatusNotFound, http.StatusGone:
		return fmt.Errorf("feed not found (HTTP %d) at %s", statusCode, feedURL)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("feed access denied (HTTP %d) at %s", statusCode, feedURL)
	case http.StatusTooManyRequests:
		return fmt.Errorf("feed rate limit exceeded (HTTP %d) at %s", statusCode, feedURL)
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return fmt.Errorf("feed server error (HTTP %d) at %s", statusCode, feedURL)
	default:
		return fmt.Errorf("feed returned HTTP %d for %s", statusCode, feedURL)
	}
}
