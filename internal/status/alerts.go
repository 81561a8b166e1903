package status

import "time"

// IsExpiringWithin reports whether an active item ends within windowDays
// days of now (inclusive). start may be empty; when set it must parse and
// now must not precede it. Items that already ended are not reported.
// A zero now means time.Now().
func IsExpiringWithin(end string, windowDays int, now time.Time, start string) bool {
	days, ok := DaysUntilExpiry(end, now, start)
	if !ok {
		return false
	}
	return days >= 0 && days <= windowDays
}

// DaysUntilExpiry returns the number of started days until end for an item
// that is currently active. ok is false when end is missing or invalid, when
// a given start is invalid, or when now falls outside [start, end].
func DaysUntilExpiry(end string, now time.Time, start string) (days int, ok bool) {
	endAt, valid := ParseDate(end)
	if !valid {
		return 0, false
	}

	var startAt *time.Time
	if start != "" {
		parsed, valid := ParseDate(start)
		if !valid {
			return 0, false
		}
		startAt = &parsed
	}

	now = referenceTime(now)
	if startAt != nil && now.Before(*startAt) {
		return 0, false
	}
	if now.After(endAt) {
		return 0, false
	}

	return daysUntil(endAt, now), true
}

// ExpiryLevel is the alert severity for an item expiring in days: danger
// when it ends within the current day, warning otherwise.
func ExpiryLevel(days int) string {
	if days <= 0 {
		return LevelDanger
	}
	return LevelWarning
}
