package venue

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	"marquee/internal/logging"
	"marquee/internal/services"
)

// Client fetches the venue's public calendar page.
type Client struct {
	calendarURL string
	userAgent   string
	httpClient  *http.Client
	logger      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient creates a calendar page fetcher. The user agent matters: the
// venue serves a bot-challenge page to clients without a browser-like one.
func NewClient(calendarURL, userAgent string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		calendarURL: calendarURL,
		userAgent:   userAgent,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		logger:      logging.NewComponentLogger(logger, "venue"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchCalendar retrieves the calendar page and returns its markup decoded to
// UTF-8. Any transport failure or non-success status maps to the fetch
// failure marker for the HTTP boundary.
func (c *Client) FetchCalendar(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.calendarURL, nil)
	if err != nil {
		return "", services.Wrap(services.ErrFetch, "venue", "build request", c.calendarURL, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return "", services.Wrap(services.ErrFetch, "venue", "get calendar",
			fmt.Sprintf("latency=%v", latency), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", services.Wrap(services.ErrFetch, "venue", "get calendar",
			fmt.Sprintf("status %d", resp.StatusCode), nil)
	}

	// The venue occasionally serves non-UTF-8 markup; normalize before the
	// parser sees it.
	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", services.Wrap(services.ErrFetch, "venue", "decode charset", "", err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", services.Wrap(services.ErrFetch, "venue", "read body", "", err)
	}

	c.logger.Debug("calendar fetched",
		logging.Int("bytes", len(body)),
		logging.Duration("latency", latency))
	return string(body), nil
}
