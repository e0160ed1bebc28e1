package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/cor0nius/citysky/internal/weather"
)

// --- Mocks ---

// mockLookupService is a mock for the lookupService interface.
type mockLookupService struct {
	LookupFunc func(ctx context.Context, city string, opts weather.Options) (weather.Report, error)
}

func (m *mockLookupService) Lookup(ctx context.Context, city string, opts weather.Options) (weather.Report, error) {
	if m.LookupFunc != nil {
		return m.LookupFunc(ctx, city, opts)
	}
	return weather.Report{}, errors.New("LookupFunc not implemented in mock")
}

// mockDoer is a mock for the weather.Doer interface.
type mockDoer struct {
	DoFunc func(req *http.Request) (*http.Response, error)
	calls  int
}

func (m *mockDoer) Do(req *http.Request) (*http.Response, error) {
	m.calls++
	if m.DoFunc != nil {
		return m.DoFunc(req)
	}
	return nil, errors.New("DoFunc not implemented in mock")
}

// --- Helpers ---

func newTestAPIConfig(t *testing.T, lookup lookupService) *apiConfig {
	t.Helper()
	return &apiConfig{
		lookup:          lookup,
		forecastEnabled: true,
		port:            "8080",
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

var lisbonReport = weather.Report{
	Place:       "Lisboa, Portugal",
	Temperature: "19°C",
	Description: "Partly cloudy",
	Icon:        "partly-cloudy",
	ObservedAt:  "10/11/2025 15:00",
	Location: weather.Location{
		Latitude:    38.72,
		Longitude:   -9.13,
		DisplayName: "Lisboa",
		Country:     "Portugal",
	},
}
