// Package weather resolves a city name to coordinates, fetches current and daily
// conditions from Open-Meteo, and prepares the values a front end displays.
//
// Nothing in this package knows about a rendering surface. Every stage takes its
// inputs as parameters and reports through its return values, so the whole pipeline
// can be driven headlessly from tests or from an HTTP handler.
package weather

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Default Open-Meteo endpoints.
const (
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
)

// geocodingLanguage localizes place names in geocoding results.
const geocodingLanguage = "pt"

// Doer sends an HTTP request. *http.Client satisfies it, and so do the rate-limiting
// and instrumentation wrappers the service stacks in front of it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the geocoding and forecast endpoints. It holds no per-query
// state and is safe for concurrent use.
type Client struct {
	geocodingURL string
	forecastURL  string
	httpClient   Doer
	logger       *slog.Logger
	now          func() time.Time
}

// Option customizes a Client.
type Option func(*Client)

// WithClock replaces time.Now, which decides the forecast window.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithLogger sets the logger used for soft failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client. Empty URLs fall back to the public Open-Meteo
// endpoints and a nil doer falls back to http.DefaultClient.
func NewClient(geocodingURL, forecastURL string, httpClient Doer, opts ...Option) *Client {
	if geocodingURL == "" {
		geocodingURL = DefaultGeocodingURL
	}
	if forecastURL == "" {
		forecastURL = DefaultForecastURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		geocodingURL: geocodingURL,
		forecastURL:  forecastURL,
		httpClient:   httpClient,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getJSON issues a GET against base with the given query and decodes a 2xx body
// into dst. Transport failures and non-2xx statuses come back as *Error; a body
// that cannot be decoded is returned as a plain decode error so each caller can
// decide whether that is fatal.
func (c *Client) getJSON(ctx context.Context, op, base string, query url.Values, upstreamMsg string, dst any) error {
	reqURL, err := url.Parse(base)
	if err != nil {
		return &Error{Kind: KindValidation, Op: op, Msg: "invalid endpoint address", Err: err}
	}
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return transportError(op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug("upstream returned non-2xx status", "op", op, "status", resp.Status)
		return &Error{Kind: KindUpstream, Op: op, Msg: upstreamMsg}
	}

	return json.NewDecoder(resp.Body).Decode(dst)
}
