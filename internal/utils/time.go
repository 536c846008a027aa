package utils

import "time"

const DefaultTimeFormat = "2006-01-02 15:04:05"

var (
	configuredLocation *time.Location
	configuredFormat   = DefaultTimeFormat
)

func InitTimezone(loc *time.Location, format string) {
	configuredLocation = loc
	configuredFormat = format
}

// FormatTime renders t in the configured location, or in t's own
// location when none was set.
func FormatTime(t time.Time) string {
	if configuredLocation == nil {
		return t.Format(configuredFormat)
	}
	return t.In(configuredLocation).Format(configuredFormat)
}
