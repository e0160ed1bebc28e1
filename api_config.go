package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/cor0nius/citysky/internal/weather"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type apiConfig struct {
	geocodingURL    string
	forecastURL     string
	httpClient      weather.Doer
	httpTimeout     time.Duration
	upstreamRPS     float64
	upstreamBurst   int
	forecastEnabled bool
	lookup          lookupService
	port            string
	devMode         bool
	logger          *slog.Logger
}

// getEnv retrieves an environment variable by key, with a fallback value.
func getEnv(key, fallback string, logger *slog.Logger) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	logger.Info("environment variable not set, using fallback", "key", key, "fallback", fallback)
	return fallback
}

// getEnvAsInt retrieves an environment variable as an integer, with a fallback value.
// A value that does not parse yields the fallback together with an error.
func getEnvAsInt(key string, fallback int, logger *slog.Logger) (int, error) {
	valStr, ok := os.LookupEnv(key)
	if !ok || valStr == "" {
		logger.Info("environment variable not set, using fallback", "key", key, "fallback", fallback)
		return fallback, nil
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return fallback, fmt.Errorf("%s: invalid integer %q", key, valStr)
	}
	return val, nil
}

// getEnvAsFloat retrieves an environment variable as a float, with a fallback value.
func getEnvAsFloat(key string, fallback float64, logger *slog.Logger) (float64, error) {
	valStr, ok := os.LookupEnv(key)
	if !ok || valStr == "" {
		logger.Info("environment variable not set, using fallback", "key", key, "fallback", fallback)
		return fallback, nil
	}
	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		return fallback, fmt.Errorf("%s: invalid number %q", key, valStr)
	}
	return val, nil
}

// getEnvAsBool retrieves an environment variable as a bool, with a fallback value.
func getEnvAsBool(key string, fallback bool, logger *slog.Logger) (bool, error) {
	valStr, ok := os.LookupEnv(key)
	if !ok || valStr == "" {
		logger.Info("environment variable not set, using fallback", "key", key, "fallback", fallback)
		return fallback, nil
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return fallback, fmt.Errorf("%s: invalid boolean %q", key, valStr)
	}
	return val, nil
}

// envParser reads typed environment variables and keeps every parse failure.
type envParser struct {
	logger *slog.Logger
	errs   *multierror.Error
}

func (p *envParser) asInt(key string, fallback int) int {
	val, err := getEnvAsInt(key, fallback, p.logger)
	if err != nil {
		p.errs = multierror.Append(p.errs, err)
	}
	return val
}

func (p *envParser) asFloat(key string, fallback float64) float64 {
	val, err := getEnvAsFloat(key, fallback, p.logger)
	if err != nil {
		p.errs = multierror.Append(p.errs, err)
	}
	return val
}

func (p *envParser) asBool(key string, fallback bool) bool {
	val, err := getEnvAsBool(key, fallback, p.logger)
	if err != nil {
		p.errs = multierror.Append(p.errs, err)
	}
	return val
}

// fileConfig is the optional YAML file named by CONFIG_FILE. It supplies the
// fallbacks for the environment variables of the same name.
type fileConfig struct {
	GeocodingURL    string  `yaml:"geocoding_url"`
	ForecastURL     string  `yaml:"forecast_url"`
	Port            string  `yaml:"port"`
	HTTPTimeoutSec  int     `yaml:"http_timeout_sec"`
	UpstreamRPS     float64 `yaml:"upstream_rps"`
	UpstreamBurst   int     `yaml:"upstream_burst"`
	ForecastEnabled bool    `yaml:"forecast_enabled"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		GeocodingURL:    weather.DefaultGeocodingURL,
		ForecastURL:     weather.DefaultForecastURL,
		Port:            "8080",
		HTTPTimeoutSec:  10,
		UpstreamRPS:     5,
		UpstreamBurst:   5,
		ForecastEnabled: true,
	}
}

// loadConfigFile overlays the keys present in the YAML file at path onto fc.
// Unknown keys are rejected so a typo does not silently fall back to a default.
func loadConfigFile(path string, fc *fileConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// newLogger builds the text logger used in development or the JSON logger used
// everywhere else.
func newLogger(w io.Writer, devMode bool) *slog.Logger {
	if devMode {
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewJSONHandler(w, nil))
}

// NewAPIConfig reads the environment (and a .env file, if present) and wires the
// lookup service. Values come from, in increasing priority: built-in defaults, the
// YAML file named by CONFIG_FILE, and environment variables. Every unparseable or
// invalid setting is reported, not just the first one. DEV_MODE is the exception:
// it is read before the logger exists and anything but a true value means false.
func NewAPIConfig(logOutput io.Writer) (*apiConfig, error) {
	devMode, err := strconv.ParseBool(os.Getenv("DEV_MODE"))
	if err != nil {
		devMode = false
	}
	logger := newLogger(logOutput, devMode)

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, relying on environment variables")
	}

	fc := defaultFileConfig()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadConfigFile(path, &fc); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		logger.Info("config file loaded", "path", path)
	}

	env := &envParser{logger: logger}
	cfg := &apiConfig{
		geocodingURL:    getEnv("GEOCODING_URL", fc.GeocodingURL, logger),
		forecastURL:     getEnv("FORECAST_URL", fc.ForecastURL, logger),
		httpTimeout:     time.Duration(env.asInt("HTTP_TIMEOUT_SEC", fc.HTTPTimeoutSec)) * time.Second,
		upstreamRPS:     env.asFloat("UPSTREAM_RPS", fc.UpstreamRPS),
		upstreamBurst:   env.asInt("UPSTREAM_BURST", fc.UpstreamBurst),
		forecastEnabled: env.asBool("FORECAST_ENABLED", fc.ForecastEnabled),
		port:            getEnv("PORT", fc.Port, logger),
		devMode:         devMode,
		logger:          logger,
	}

	if err := multierror.Append(env.errs, cfg.validate()).ErrorOrNil(); err != nil {
		return nil, err
	}

	cfg.httpClient = newUpstreamDoer(
		&http.Client{Timeout: cfg.httpTimeout},
		cfg.upstreamRPS,
		cfg.upstreamBurst,
	)
	client := weather.NewClient(cfg.geocodingURL, cfg.forecastURL, cfg.httpClient,
		weather.WithLogger(logger.With("component", "weather")),
	)
	cfg.lookup = weather.NewService(client, logger.With("component", "lookup"))

	return cfg, nil
}

func (cfg *apiConfig) validate() error {
	var result *multierror.Error

	for key, raw := range map[string]string{
		"GEOCODING_URL": cfg.geocodingURL,
		"FORECAST_URL":  cfg.forecastURL,
	} {
		u, err := url.Parse(raw)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", key, err))
			continue
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			result = multierror.Append(result, fmt.Errorf("%s: unsupported scheme %q", key, u.Scheme))
		}
	}
	if cfg.httpTimeout < 0 {
		result = multierror.Append(result, fmt.Errorf("HTTP_TIMEOUT_SEC: must not be negative"))
	}
	if cfg.upstreamRPS <= 0 {
		result = multierror.Append(result, fmt.Errorf("UPSTREAM_RPS: must be positive, got %v", cfg.upstreamRPS))
	}
	if cfg.upstreamBurst < 1 {
		result = multierror.Append(result, fmt.Errorf("UPSTREAM_BURST: must be at least 1, got %d", cfg.upstreamBurst))
	}
	if p, err := strconv.Atoi(cfg.port); err != nil || p < 1 || p > 65535 {
		result = multierror.Append(result, fmt.Errorf("PORT: invalid port %q", cfg.port))
	}

	return result.ErrorOrNil()
}
