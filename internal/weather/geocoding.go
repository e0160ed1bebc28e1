package weather

import (
	"context"
	"errors"
	"net/url"
)

// Location is a resolved place. It is created fresh for every successful lookup
// and never modified afterwards.
type Location struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	DisplayName string  `json:"display_name"`
	Country     string  `json:"country"`
}

// Label renders the place the way it is shown to users, e.g. "São Paulo, Brazil".
func (l Location) Label() string {
	if l.Country == "" {
		return l.DisplayName
	}
	return l.DisplayName + ", " + l.Country
}

// Resolve looks up the coordinates of a city. It asks the geocoder for a single
// match, so the first result is the answer; there is no ranking.
func (c *Client) Resolve(ctx context.Context, city string) (Location, error) {
	const op = "geocode"

	name, err := normalizeCityQuery(city)
	if err != nil {
		return Location{}, &Error{Kind: KindValidation, Op: op, Msg: "Please enter a valid city name.", Err: err}
	}
	if name == "" {
		return Location{}, &Error{Kind: KindValidation, Op: op, Msg: msgEmptyCity, Err: ErrEmptyCity}
	}

	query := url.Values{}
	query.Set("name", name)
	query.Set("count", "1")
	query.Set("language", geocodingLanguage)
	query.Set("format", "json")

	var response geocodingResponse
	if err := c.getJSON(ctx, op, c.geocodingURL, query, msgGeocodingUpstream, &response); err != nil {
		var pipelineErr *Error
		if errors.As(err, &pipelineErr) {
			return Location{}, err
		}
		return Location{}, &Error{Kind: KindMalformed, Op: op, Msg: "Failed to read city coordinates.", Err: err}
	}

	if len(response.Results) == 0 {
		c.logger.Debug("geocoding returned no results", "city", name)
		return Location{}, &Error{Kind: KindNotFound, Op: op, Msg: msgCityNotFound, Err: ErrCityNotFound}
	}

	result := response.Results[0]
	return Location{
		Latitude:    result.Latitude,
		Longitude:   result.Longitude,
		DisplayName: result.Name,
		Country:     result.Country,
	}, nil
}

// geocodingResponse mirrors the Open-Meteo geocoding payload. "results" is
// omitted entirely when nothing matches.
type geocodingResponse struct {
	Results []geocodingResult `json:"results"`
}

type geocodingResult struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
	Country   string  `json:"country"`
}
