package weather

import (
	"context"
	"errors"
	"net/url"
	"time"
)

// forecastDays is the length of the daily outlook, today included.
const forecastDays = 5

const dateLayout = "2006-01-02"

// DailyEntry is one day of the outlook.
type DailyEntry struct {
	Date           string
	TempMaxCelsius float64
	TempMinCelsius float64
	WeatherCode    int
}

// forecastWindow returns the first and last date of the outlook, starting on
// now's local date.
func forecastWindow(now time.Time) (string, string) {
	now = now.Local()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 0, forecastDays-1)
	return start.Format(dateLayout), end.Format(dateLayout)
}

// DailyForecast fetches the five-day outlook for the given coordinates. Entries
// are returned in the order the upstream sends them, which is chronological.
func (c *Client) DailyForecast(ctx context.Context, lat, lon float64) (Reading[[]DailyEntry], error) {
	const op = "daily forecast"

	startDate, endDate := forecastWindow(c.now())

	query := url.Values{}
	query.Set("latitude", formatCoordinate(lat))
	query.Set("longitude", formatCoordinate(lon))
	query.Set("daily", "temperature_2m_max,temperature_2m_min,weathercode")
	query.Set("timezone", "auto")
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)

	var response dailyForecastResponse
	if err := c.getJSON(ctx, op, c.forecastURL, query, msgForecastUpstream, &response); err != nil {
		var pipelineErr *Error
		if errors.As(err, &pipelineErr) {
			return Absent[[]DailyEntry](), err
		}
		c.logger.Warn("could not decode daily forecast response", "error", err)
		return Absent[[]DailyEntry](), nil
	}

	reading := parseDailyForecast(response)
	if !reading.IsPresent() {
		c.logger.Warn("daily forecast missing from response", "latitude", lat, "longitude", lon)
	}
	return reading, nil
}

// parseDailyForecast zips the index-aligned daily arrays. The outlook is all or
// nothing: a missing array, a null element, a length mismatch, dates that do not
// ascend or anything other than forecastDays days make the whole forecast absent.
func parseDailyForecast(response dailyForecastResponse) Reading[[]DailyEntry] {
	d := response.Daily
	if d == nil || d.Time == nil || d.TempMax == nil || d.TempMin == nil || d.WeatherCode == nil {
		return Absent[[]DailyEntry]()
	}
	n := len(d.Time)
	if n != forecastDays || len(d.TempMax) != n || len(d.TempMin) != n || len(d.WeatherCode) != n {
		return Absent[[]DailyEntry]()
	}

	entries := make([]DailyEntry, n)
	for i := range entries {
		date, maxC, minC, code := d.Time[i], d.TempMax[i], d.TempMin[i], d.WeatherCode[i]
		if date == nil || *date == "" || maxC == nil || minC == nil || code == nil {
			return Absent[[]DailyEntry]()
		}
		// ISO dates order lexically.
		if i > 0 && *date <= entries[i-1].Date {
			return Absent[[]DailyEntry]()
		}
		entries[i] = DailyEntry{
			Date:           *date,
			TempMaxCelsius: *maxC,
			TempMinCelsius: *minC,
			WeatherCode:    *code,
		}
	}
	return Present(entries)
}

type dailyForecastResponse struct {
	Daily *dailyJSON `json:"daily"`
}

// Elements are pointers because the upstream sends null for a day it has no
// value for.
type dailyJSON struct {
	Time        []*string  `json:"time"`
	TempMax     []*float64 `json:"temperature_2m_max"`
	TempMin     []*float64 `json:"temperature_2m_min"`
	WeatherCode []*int     `json:"weathercode"`
}
