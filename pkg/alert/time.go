package alert

import (
	"fmt"
	"time"
)

// TimestampLayout is the layout GitHub uses for alert dates.
const TimestampLayout = "2006-01-02T15:04:05Z"

// DisplayLayout is the layout used for dates in reports.
const DisplayLayout = "2006-01-02 15:04:05"

// ParseTimestamp parses a GitHub alert timestamp into a UTC instant.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// FormatTimestamp renders t for reports. The zero time renders as an empty string.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DisplayLayout)
}
