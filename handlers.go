package main

import (
	"context"
	"net/http"
	"strconv"

	"github.com/cor0nius/citysky/internal/weather"
)

// This file contains the HTTP handlers for the application. handlerWeather runs a
// single lookup per request and returns the display-ready report; the pipeline
// itself lives in internal/weather and never touches the response writer.

type lookupService interface {
	Lookup(ctx context.Context, city string, opts weather.Options) (weather.Report, error)
}

// ConfigResponse describes the server settings a client may adapt to.
type ConfigResponse struct {
	DevMode         bool `json:"dev_mode"`
	ForecastEnabled bool `json:"forecast_enabled"`
}

// @Summary      Get weather for a city
// @Description  Resolves the city, then returns its current conditions and, unless
// @Description  disabled, the five-day outlook. A failed outlook is omitted rather than
// @Description  failing the request.
// @Tags         weather
// @Produce      json
// @Param        city     query     string  true   "City name (e.g., 'São Paulo')"
// @Param        forecast query     bool    false  "Include the five-day outlook"
// @Success      200  {object}  weather.Report
// @Failure      400  {object}  ErrorResponse "Bad Request - Empty city name"
// @Failure      404  {object}  ErrorResponse "Not Found - City not found"
// @Failure      502  {object}  ErrorResponse "Bad Gateway - Upstream failure"
// @Router       /api/weather [get]
func (cfg *apiConfig) handlerWeather(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		cfg.respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed", nil)
		return
	}

	ctx := r.Context()
	logger := cfg.logger.With("query_id", requestIDFromContext(ctx))

	city := r.URL.Query().Get("city")
	opts := weather.Options{Forecast: cfg.forecastEnabled}
	if raw := r.URL.Query().Get("forecast"); raw != "" {
		forecast, err := strconv.ParseBool(raw)
		if err != nil {
			cfg.respondWithError(w, http.StatusBadRequest, "Invalid forecast parameter", nil)
			return
		}
		opts.Forecast = forecast
	}
	logger.Debug("weather lookup request", "city", city, "forecast", opts.Forecast)

	report, err := cfg.lookup.Lookup(ctx, city, opts)
	if err != nil {
		kind := weather.KindOf(err)
		lookupsTotal.WithLabelValues(kind.String()).Inc()
		status := statusForKind(kind)
		if status >= http.StatusInternalServerError {
			logger.Error("weather lookup failed", "city", city, "kind", kind.String(), "error", err)
		} else {
			logger.Info("weather lookup rejected", "city", city, "kind", kind.String(), "error", err)
		}
		cfg.respondWithError(w, status, weather.UserMessage(err), nil)
		return
	}
	lookupsTotal.WithLabelValues("ok").Inc()
	logger.Debug("weather lookup done", "place", report.Place, "forecast_days", len(report.Forecast))

	cfg.respondWithJSON(w, http.StatusOK, report)
}

// statusForKind maps a failure kind to the HTTP status returned to the client.
func statusForKind(kind weather.Kind) int {
	switch kind {
	case weather.KindValidation:
		return http.StatusBadRequest
	case weather.KindNotFound:
		return http.StatusNotFound
	case weather.KindTransport, weather.KindUpstream, weather.KindMalformed, weather.KindUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// @Summary      Get application configuration
// @Tags         configuration
// @Produce      json
// @Success      200  {object}  ConfigResponse
// @Router       /api/config [get]
func (cfg *apiConfig) handlerConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		cfg.respondWithError(w, http.StatusMethodNotAllowed, "Method Not Allowed", nil)
		return
	}

	cfg.respondWithJSON(w, http.StatusOK, ConfigResponse{
		DevMode:         cfg.devMode,
		ForecastEnabled: cfg.forecastEnabled,
	})
}

// handlerHealth answers liveness probes.
func (cfg *apiConfig) handlerHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
