package weather

// Icon identifiers understood by the front end's icon font.
const (
	IconClearSky     = "clear-sky"
	IconPartlyCloudy = "partly-cloudy"
	IconOvercast     = "overcast"
	IconFog          = "fog"
	IconRain         = "rain"
	IconSnow         = "snow"
	IconHail         = "hail"
	IconThunderstorm = "thunderstorm"
	IconNotAvailable = "not-available"
)

// UnknownCondition describes any code missing from the table.
const UnknownCondition = "Unknown condition"

// Condition is the human-readable form of a WMO weather code.
type Condition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// weatherCodes maps WMO codes to their display values. Read-only.
var weatherCodes = map[int]Condition{
	0:  {"Clear sky", IconClearSky},
	1:  {"Mostly clear", IconClearSky},
	2:  {"Partly cloudy", IconPartlyCloudy},
	3:  {"Overcast", IconOvercast},
	45: {"Fog", IconFog},
	48: {"Fog", IconFog},
	51: {"Light drizzle", IconRain},
	53: {"Moderate drizzle", IconRain},
	55: {"Dense drizzle", IconRain},
	61: {"Light rain", IconRain},
	63: {"Moderate rain", IconRain},
	65: {"Heavy rain", IconRain},
	71: {"Light snow", IconSnow},
	73: {"Moderate snow", IconSnow},
	75: {"Heavy snow", IconSnow},
	77: {"Hail", IconHail},
	80: {"Light rain showers", IconRain},
	81: {"Moderate rain showers", IconRain},
	82: {"Heavy rain showers", IconRain},
	85: {"Light snow showers", IconSnow},
	86: {"Heavy snow showers", IconSnow},
	95: {"Thunderstorm", IconThunderstorm},
	96: {"Thunderstorm with light hail", IconThunderstorm},
	99: {"Thunderstorm with heavy hail", IconThunderstorm},
}

// Translate returns the description and icon for a code. It is total: unmapped
// codes, negative ones included, get the fallback values.
func Translate(code int) Condition {
	if c, ok := weatherCodes[code]; ok {
		return c
	}
	return Condition{Description: UnknownCondition, Icon: IconNotAvailable}
}

// Describe returns the description for a code.
func Describe(code int) string {
	return Translate(code).Description
}

// Icon returns the icon identifier for a code.
func Icon(code int) string {
	return Translate(code).Icon
}
