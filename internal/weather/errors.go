package weather

import (
	"errors"
	"strings"
)

// Kind classifies a pipeline failure. Callers branch on the kind, never on the
// message text.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation means the caller supplied unusable input.
	KindValidation
	// KindTransport means the request never completed.
	KindTransport
	// KindUpstream means the request completed with a non-2xx status.
	KindUpstream
	// KindNotFound means the request succeeded but matched nothing.
	KindNotFound
	// KindMalformed means the response body could not be decoded.
	KindMalformed
	// KindUnavailable means the upstream returned no usable weather record.
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindUpstream:
		return "upstream"
	case KindNotFound:
		return "not_found"
	case KindMalformed:
		return "malformed"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

const (
	msgEmptyCity          = "Please enter a city name."
	msgCityNotFound       = "City not found. Please try again."
	msgGeocodingUpstream  = "Failed to fetch city coordinates."
	msgWeatherUpstream    = "Failed to fetch weather data."
	msgForecastUpstream   = "Failed to fetch forecast data."
	msgWeatherUnavailable = "Weather data unavailable."
	msgGeneric            = "Something went wrong. Please try again."
)

var (
	// ErrEmptyCity is matched by errors.Is for an empty or blank city name.
	ErrEmptyCity = errors.New("empty city name")
	// ErrCityNotFound is matched by errors.Is when geocoding returns no results.
	ErrCityNotFound = errors.New("no results found for the given city")
	// ErrWeatherUnavailable is matched by errors.Is when the current weather is absent.
	ErrWeatherUnavailable = errors.New("current weather absent from response")
)

// Error is the failure type returned by every pipeline stage.
type Error struct {
	Kind Kind
	// Op names the stage that failed, e.g. "geocode" or "current weather".
	Op string
	// Msg is the text shown to the end user.
	Msg string
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Msg)
	if e.Err != nil && e.Err.Error() != e.Msg {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// UserMessage turns any lookup failure into the single line shown to the user.
// Not-found failures always read the same; other pipeline failures show their own
// message, and foreign errors show their text or a generic fallback.
func UserMessage(err error) string {
	if err == nil {
		return msgGeneric
	}
	var e *Error
	if errors.As(err, &e) {
		if e.Kind == KindNotFound {
			return msgCityNotFound
		}
		if e.Msg != "" {
			return e.Msg
		}
		return msgGeneric
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return msgGeneric
}

func transportError(op string, err error) *Error {
	return &Error{Kind: KindTransport, Op: op, Msg: err.Error(), Err: err}
}
