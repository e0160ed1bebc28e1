package weather

import (
	"strings"
	"time"
)

const (
	displayDateTimeLayout = "02/01/2006 15:04"
	displayDateLayout     = "02/01/2006"
)

// fallbackLayouts are tried, in order, for timestamps that are not in the
// "date T time" shape the forecast source uses.
var fallbackLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.ANSIC,
	"02/01/2006 15:04",
	"02/01/2006",
	"Jan 2, 2006 15:04",
	"Jan 2, 2006",
	"2 Jan 2006 15:04",
	"2 Jan 2006",
}

// FormatTimestamp renders an upstream timestamp as "DD/MM/YYYY HH:MM".
//
// An empty input renders now(). "YYYY-MM-DDTHH:MM" and "YYYY-MM-DDTHH:MM:SS" are
// reformatted textually, so the wall time of the queried place is kept as is.
// Anything else goes through a list of generic layouts, and input that matches
// none of them is returned unchanged.
func FormatTimestamp(s string, now func() time.Time) string {
	if strings.TrimSpace(s) == "" {
		if now == nil {
			now = time.Now
		}
		return now().Local().Format(displayDateTimeLayout)
	}

	if out, ok := reformatDateTime(s); ok {
		return out
	}

	// Zone-less layouts are read as local wall time; zoned ones are converted.
	for _, layout := range fallbackLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t.Local().Format(displayDateTimeLayout)
		}
	}
	return s
}

// reformatDateTime handles the "YYYY-MM-DDTHH:MM[:SS]" shape without parsing it
// into a time.Time.
func reformatDateTime(s string) (string, bool) {
	parts := strings.Split(s, "T")
	if len(parts) != 2 {
		return "", false
	}
	day, ok := reformatDate(parts[0])
	if !ok {
		return "", false
	}

	timeParts := strings.Split(parts[1], ":")
	hour := timeParts[0]
	if hour == "" {
		return "", false
	}
	minute := "00"
	if len(timeParts) > 1 && timeParts[1] != "" {
		minute = timeParts[1]
	}
	return day + " " + hour + ":" + minute, true
}

func reformatDate(s string) (string, bool) {
	dateParts := strings.Split(s, "-")
	if len(dateParts) != 3 {
		return "", false
	}
	for _, p := range dateParts {
		if p == "" {
			return "", false
		}
	}
	return dateParts[2] + "/" + dateParts[1] + "/" + dateParts[0], true
}

// FormatDate renders a forecast date "YYYY-MM-DD" as "DD/MM/YYYY". Input in any
// other shape is returned unchanged.
func FormatDate(s string) string {
	if _, err := time.Parse(dateLayout, s); err != nil {
		return s
	}
	out, _ := reformatDate(s)
	return out
}
