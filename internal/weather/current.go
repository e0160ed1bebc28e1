package weather

import (
	"context"
	"errors"
	"net/url"
	"strconv"
)

// Observation is a point-in-time reading at the queried coordinates.
type Observation struct {
	TemperatureCelsius float64
	WeatherCode        int
	// ObservedAt is local to the queried place, "YYYY-MM-DDTHH:MM[:SS]".
	ObservedAt string
	// WindSpeedKmh is nil when the upstream does not report it.
	WindSpeedKmh *float64
}

// CurrentWeather fetches the current conditions for the given coordinates.
// Coordinates are not range-checked. A payload without a usable current_weather
// record yields an absent Reading, not an error.
func (c *Client) CurrentWeather(ctx context.Context, lat, lon float64) (Reading[Observation], error) {
	const op = "current weather"

	query := url.Values{}
	query.Set("latitude", formatCoordinate(lat))
	query.Set("longitude", formatCoordinate(lon))
	query.Set("current_weather", "true")
	query.Set("timezone", "auto")

	var response currentWeatherResponse
	if err := c.getJSON(ctx, op, c.forecastURL, query, msgWeatherUpstream, &response); err != nil {
		var pipelineErr *Error
		if errors.As(err, &pipelineErr) {
			return Absent[Observation](), err
		}
		c.logger.Warn("could not decode current weather response", "error", err)
		return Absent[Observation](), nil
	}

	reading := parseCurrentWeather(response)
	if !reading.IsPresent() {
		c.logger.Warn("current weather missing from response", "latitude", lat, "longitude", lon)
	}
	return reading, nil
}

// parseCurrentWeather turns the decoded payload into a Reading. Temperature and
// weather code must both be present.
func parseCurrentWeather(response currentWeatherResponse) Reading[Observation] {
	cw := response.CurrentWeather
	if cw == nil || cw.Temperature == nil || cw.WeatherCode == nil {
		return Absent[Observation]()
	}
	return Present(Observation{
		TemperatureCelsius: *cw.Temperature,
		WeatherCode:        *cw.WeatherCode,
		ObservedAt:         cw.Time,
		WindSpeedKmh:       cw.WindSpeed,
	})
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// The following structs mirror the Open-Meteo current_weather payload. Pointers
// distinguish a missing field from a zero reading.
type currentWeatherResponse struct {
	CurrentWeather *currentWeatherJSON `json:"current_weather"`
}

type currentWeatherJSON struct {
	Temperature *float64 `json:"temperature"`
	WeatherCode *int     `json:"weathercode"`
	Time        string   `json:"time"`
	WindSpeed   *float64 `json:"windspeed"`
}
