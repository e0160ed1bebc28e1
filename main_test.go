package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cor0nius/citysky/internal/weather"
)

const (
	lisbonGeocodeJSON = `{"results":[{"name":"Lisboa","latitude":38.72,"longitude":-9.13,"country":"Portugal"}]}`
	lisbonCurrentJSON = `{"current_weather":{"temperature":18.6,"weathercode":2,"windspeed":9.4,"time":"2025-11-10T15:00"}}`
	lisbonDailyJSON   = `{"daily":{"time":["2025-11-10","2025-11-11","2025-11-12","2025-11-13","2025-11-14"],"temperature_2m_max":[21.4,19.6,20.2,22.8,23.0],"temperature_2m_min":[13.1,12.5,12.9,14.0,14.4],"weathercode":[2,61,3,1,0]}}`
)

// newUpstreamServer fakes both upstream endpoints on one server.
func newUpstreamServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/search", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("name") != "Lisboa" {
			_, _ = io.WriteString(w, `{"generationtime_ms":0.5}`)
			return
		}
		_, _ = io.WriteString(w, lisbonGeocodeJSON)
	})
	mux.HandleFunc("/v1/forecast", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("daily") != "" {
			_, _ = io.WriteString(w, lisbonDailyJSON)
			return
		}
		_, _ = io.WriteString(w, lisbonCurrentJSON)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newIntegrationConfig(t *testing.T) *apiConfig {
	t.Helper()
	upstream := newUpstreamServer(t)

	clearEnv(t)
	t.Setenv("GEOCODING_URL", upstream.URL+"/v1/search")
	t.Setenv("FORECAST_URL", upstream.URL+"/v1/forecast")
	t.Setenv("UPSTREAM_RPS", "100")
	t.Setenv("UPSTREAM_BURST", "10")

	cfg, err := NewAPIConfig(io.Discard)
	require.NoError(t, err)
	return cfg
}

func TestRouterWeatherLookup(t *testing.T) {
	cfg := newIntegrationConfig(t)
	server := httptest.NewServer(newRouter(cfg))
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/weather?city=Lisboa")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	_, err = uuid.Parse(resp.Header.Get(requestIDHeader))
	assert.NoError(t, err)

	var report weather.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))

	assert.Equal(t, "Lisboa, Portugal", report.Place)
	assert.Equal(t, "19°C", report.Temperature)
	assert.Equal(t, "Partly cloudy", report.Description)
	assert.Equal(t, "partly-cloudy", report.Icon)
	assert.Equal(t, "10/11/2025 15:00", report.ObservedAt)
	assert.Equal(t, "9 km/h", report.WindSpeed)
	require.Len(t, report.Forecast, 5)
	assert.Equal(t, weather.ForecastDay{
		Date:        "11/11/2025",
		Max:         "20°C",
		Min:         "13°C",
		Description: "Light rain",
		Icon:        "rain",
	}, report.Forecast[1])
}

func TestRouterWeatherErrors(t *testing.T) {
	cfg := newIntegrationConfig(t)
	server := httptest.NewServer(newRouter(cfg))
	defer server.Close()

	testCases := []struct {
		name       string
		query      string
		wantStatus int
		wantError  string
	}{
		{
			name:       "Empty City",
			query:      "city=",
			wantStatus: http.StatusBadRequest,
			wantError:  "Please enter a city name.",
		},
		{
			name:       "Blank City",
			query:      "city=%20%20",
			wantStatus: http.StatusBadRequest,
			wantError:  "Please enter a city name.",
		},
		{
			name:       "Unknown City",
			query:      "city=Atlantis",
			wantStatus: http.StatusNotFound,
			wantError:  "City not found. Please try again.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Get(server.URL + "/api/weather?" + tc.query)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			var body ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.wantError, body.Error)
		})
	}
}

func TestRouterAuxiliaryRoutes(t *testing.T) {
	cfg := newTestAPIConfig(t, &mockLookupService{})
	server := httptest.NewServer(newRouter(cfg))
	defer server.Close()

	for _, path := range []string{"/api/config", "/healthz", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			resp, err := http.Get(server.URL + path)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

func TestRunShutsDownOnCancel(t *testing.T) {
	cfg := newTestAPIConfig(t, &mockLookupService{})
	cfg.port = "0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg) }()

	// Give ListenAndServe a moment to bind before asking it to stop.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout):
		t.Fatalf("run did not return within %s", shutdownTimeout)
	}
}
