package status

import "time"

// SalesStatus is the display status of a sales window
type SalesStatus string

const (
	SalesActive  SalesStatus = "Active"
	SalesPending SalesStatus = "Pending"
	SalesExpired SalesStatus = "Expired"
)

// ComputeSalesStatus classifies a sales window. A window with a missing or
// unparseable bound is always Active. A zero now means time.Now().
func ComputeSalesStatus(start, end string, now time.Time) SalesStatus {
	startAt, ok := ParseDate(start)
	if !ok {
		return SalesActive
	}
	endAt, ok := ParseDate(end)
	if !ok {
		return SalesActive
	}

	now = referenceTime(now)
	switch {
	case now.Before(startAt):
		return SalesPending
	case now.After(endAt):
		return SalesExpired
	default:
		return SalesActive
	}
}

// SalesBadgeClass maps a sales status to its badge class
func SalesBadgeClass(s SalesStatus) string {
	switch s {
	case SalesActive:
		return BadgeSuccess
	case SalesPending:
		return BadgeWarning
	default:
		return BadgeDanger
	}
}
