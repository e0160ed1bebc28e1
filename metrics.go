package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// This file defines the Prometheus metrics that are exposed by the application.

// httpRequestsTotal is a Prometheus counter vector that tracks the total number of HTTP requests.
// It is partitioned by the request's URL path, HTTP method, and the resulting status code.
var httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "citysky_http_requests_total",
	Help: "Total number of HTTP requests by path, method and code.",
}, []string{"path", "method", "code"})

// upstreamRequestsTotal counts calls to the geocoding and forecast endpoints.
// outcome is the HTTP status code, or "error" when the request never completed.
var upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "citysky_upstream_requests_total",
	Help: "Total number of upstream requests by host and outcome.",
}, []string{"host", "outcome"})

var upstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "citysky_upstream_request_duration_seconds",
	Help:    "Latency of upstream requests by host.",
	Buckets: prometheus.DefBuckets,
}, []string{"host"})

// lookupsTotal counts weather lookups by result kind ("ok", "not_found", ...).
var lookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "citysky_lookups_total",
	Help: "Total number of weather lookups by result.",
}, []string{"result"})
