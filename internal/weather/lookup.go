package weather

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
)

// Fetcher is the set of upstream calls a lookup needs. *Client implements it.
type Fetcher interface {
	Resolve(ctx context.Context, city string) (Location, error)
	CurrentWeather(ctx context.Context, lat, lon float64) (Reading[Observation], error)
	DailyForecast(ctx context.Context, lat, lon float64) (Reading[[]DailyEntry], error)
}

var _ Fetcher = (*Client)(nil)

// Options controls what a lookup fetches.
type Options struct {
	// Forecast requests the five-day outlook alongside the current conditions.
	Forecast bool
}

// Report is everything a front end needs to render one lookup.
type Report struct {
	Place       string        `json:"place"`
	Temperature string        `json:"temperature"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	ObservedAt  string        `json:"observed_at"`
	WindSpeed   string        `json:"wind_speed,omitempty"`
	Location    Location      `json:"location"`
	Forecast    []ForecastDay `json:"forecast,omitempty"`
}

// ForecastDay is one display-ready row of the outlook.
type ForecastDay struct {
	Date        string `json:"date"`
	Max         string `json:"max"`
	Min         string `json:"min"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Service runs lookups. It keeps no state between calls, so one Service can serve
// any number of concurrent lookups.
type Service struct {
	fetcher Fetcher
	logger  *slog.Logger
	now     func() time.Time
}

// NewService creates a Service backed by the given fetcher.
func NewService(fetcher Fetcher, logger *slog.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}
}

// Lookup resolves the city, fetches its current conditions and, if asked, the
// daily outlook. Resolution and current-weather failures abort the lookup. The
// outlook is best effort: when it fails the report simply has no forecast.
func (s *Service) Lookup(ctx context.Context, city string, opts Options) (Report, error) {
	location, err := s.fetcher.Resolve(ctx, city)
	if err != nil {
		return Report{}, err
	}
	s.logger.Debug("city resolved", "city", location.DisplayName, "country", location.Country,
		"latitude", location.Latitude, "longitude", location.Longitude)

	var (
		current  Reading[Observation]
		forecast Reading[[]DailyEntry]
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		current, err = s.fetcher.CurrentWeather(ctx, location.Latitude, location.Longitude)
		return err
	})
	if opts.Forecast {
		g.Go(func() error {
			reading, err := s.fetcher.DailyForecast(ctx, location.Latitude, location.Longitude)
			if err != nil {
				s.logger.Warn("daily forecast unavailable, continuing without it",
					"city", location.DisplayName, "error", err)
				return nil
			}
			forecast = reading
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	observation, ok := current.Get()
	if !ok {
		return Report{}, &Error{Kind: KindUnavailable, Op: "current weather", Msg: msgWeatherUnavailable, Err: ErrWeatherUnavailable}
	}

	report := s.buildReport(location, observation)
	if entries, ok := forecast.Get(); ok {
		report.Forecast = buildForecast(entries)
	}
	return report, nil
}

func (s *Service) buildReport(location Location, obs Observation) Report {
	condition := Translate(obs.WeatherCode)
	report := Report{
		Place:       location.Label(),
		Temperature: FormatTemperature(obs.TemperatureCelsius),
		Description: condition.Description,
		Icon:        condition.Icon,
		ObservedAt:  FormatTimestamp(obs.ObservedAt, s.now),
		Location:    location,
	}
	if obs.WindSpeedKmh != nil {
		report.WindSpeed = fmt.Sprintf("%d km/h", roundToInt(*obs.WindSpeedKmh))
	}
	return report
}

func buildForecast(entries []DailyEntry) []ForecastDay {
	days := make([]ForecastDay, 0, len(entries))
	for _, e := range entries {
		condition := Translate(e.WeatherCode)
		days = append(days, ForecastDay{
			Date:        FormatDate(e.Date),
			Max:         FormatTemperature(e.TempMaxCelsius),
			Min:         FormatTemperature(e.TempMinCelsius),
			Description: condition.Description,
			Icon:        condition.Icon,
		})
	}
	return days
}

// FormatTemperature rounds to the nearest whole degree, e.g. 25.4 -> "25°C".
func FormatTemperature(celsius float64) string {
	return fmt.Sprintf("%d°C", roundToInt(celsius))
}

func roundToInt(v float64) int {
	// int conversion also folds -0 into 0.
	return int(math.Round(v))
}
