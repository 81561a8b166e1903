package status

import (
	"math"
	"strings"
	"time"
)

// Accepted date layouts, tried in order. Zoneless values are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses an ISO-8601 timestamp. The second return value is false
// when the value is empty or cannot be parsed.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseBound returns nil for absent or invalid dates
func parseBound(value string) *time.Time {
	t, ok := ParseDate(value)
	if !ok {
		return nil
	}
	return &t
}

// referenceTime resolves the zero time to the system clock
func referenceTime(now time.Time) time.Time {
	if now.IsZero() {
		return time.Now()
	}
	return now
}

// daysUntil returns the number of started days between now and end
func daysUntil(end, now time.Time) int {
	return int(math.Ceil(float64(end.Sub(now)) / float64(24*time.Hour)))
}
