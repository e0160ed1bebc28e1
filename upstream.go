package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cor0nius/citysky/internal/weather"
	"golang.org/x/time/rate"
)

// This file contains the decorators stacked in front of the outbound HTTP client:
// a rate limiter that keeps the service within the upstream's fair-use limits, and
// instrumentation that records every upstream call as Prometheus metrics.

// rateLimitedDoer waits for a token before forwarding each request. Waiting
// honors the request context, so a canceled lookup stops waiting.
type rateLimitedDoer struct {
	next    weather.Doer
	limiter *rate.Limiter
}

// newRateLimitedDoer creates a doer allowing rps requests per second with the
// given burst. rps can be fractional for less than one request per second.
func newRateLimitedDoer(next weather.Doer, rps float64, burst int) *rateLimitedDoer {
	return &rateLimitedDoer{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (d *rateLimitedDoer) Do(req *http.Request) (*http.Response, error) {
	if err := d.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return d.next.Do(req)
}

// instrumentedDoer records the outcome and latency of each upstream call.
type instrumentedDoer struct {
	next weather.Doer
}

func (d *instrumentedDoer) Do(req *http.Request) (*http.Response, error) {
	host := req.URL.Host
	start := time.Now()
	resp, err := d.next.Do(req)
	upstreamRequestDuration.WithLabelValues(host).Observe(time.Since(start).Seconds())

	if err != nil {
		upstreamRequestsTotal.WithLabelValues(host, "error").Inc()
		return nil, err
	}
	upstreamRequestsTotal.WithLabelValues(host, strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}

// newUpstreamDoer builds the production chain: rate limiter, then metrics, then
// the real client. Time spent waiting for the limiter is not counted as latency.
func newUpstreamDoer(client *http.Client, rps float64, burst int) weather.Doer {
	return newRateLimitedDoer(&instrumentedDoer{next: client}, rps, burst)
}

var (
	_ weather.Doer = (*rateLimitedDoer)(nil)
	_ weather.Doer = (*instrumentedDoer)(nil)
)
