package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := NewAPIConfig(os.Stdout)
	if err != nil {
		newLogger(os.Stderr, false).Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	cfg.logger.Debug("configuration loaded",
		"geocoding_url", cfg.geocodingURL,
		"forecast_url", cfg.forecastURL,
		"forecast_enabled", cfg.forecastEnabled,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		cfg.logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// newRouter registers the API routes and wraps them in the middleware chain.
func newRouter(cfg *apiConfig) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/weather", cfg.handlerWeather)
	mux.HandleFunc("/api/config", cfg.handlerConfig)
	mux.HandleFunc("/healthz", cfg.handlerHealth)
	mux.Handle("/metrics", promhttp.Handler())

	return requestIDMiddleware(corsMiddleware(metricsMiddleware(mux)))
}

// run serves until ctx is canceled, then drains in-flight lookups.
func run(ctx context.Context, cfg *apiConfig) error {
	server := &http.Server{
		Addr:              ":" + cfg.port,
		Handler:           newRouter(cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		cfg.logger.Info("starting server", "port", cfg.port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	cfg.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
