package status

import (
	"math"
	"time"

	"dashboard-service/internal/models"
)

// ItemStatus is the display status of an inventory item
type ItemStatus string

const (
	StatusAvailable ItemStatus = "Available"
	StatusDraft     ItemStatus = "Draft"
	StatusExpired   ItemStatus = "Expired"
	StatusSoldOut   ItemStatus = "Sold Out"
)

// InventoryStatus is the resolved status of an item together with the
// bounds and capacity it was computed from. Start and End are nil when the
// item has no usable date for that bound.
type InventoryStatus struct {
	Status        ItemStatus `json:"status"`
	Start         *time.Time `json:"start,omitempty"`
	End           *time.Time `json:"end,omitempty"`
	TotalCapacity float64    `json:"total_capacity"`
}

// DisplayMetrics extends InventoryStatus with rendering hints
type DisplayMetrics struct {
	InventoryStatus
	Sold          float64 `json:"sold"`
	UsagePercent  int     `json:"usage_percent"`
	BadgeClass    string  `json:"badge_class"`
	ProgressColor string  `json:"progress_color"`
}

// ResolveInventoryStatus classifies an item given its sold capacity.
// A zero now means time.Now().
//
// Rules are checked in order: expired, not yet started, sold out, available.
// An item with no capacity configured is never sold out.
func ResolveInventoryStatus(item models.InventoryItem, sold float64, now time.Time) InventoryStatus {
	now = referenceTime(now)

	result := InventoryStatus{
		Status:        StatusAvailable,
		Start:         parseBound(item.Start),
		End:           parseBound(item.End),
		TotalCapacity: item.Value,
	}

	switch {
	case result.End != nil && now.After(*result.End):
		result.Status = StatusExpired
	case result.Start != nil && now.Before(*result.Start):
		result.Status = StatusDraft
	case result.TotalCapacity > 0 && sold >= result.TotalCapacity:
		result.Status = StatusSoldOut
	}

	return result
}

// ComputeDisplayMetrics resolves the item status and derives the usage
// percentage, badge class and progress bar color.
func ComputeDisplayMetrics(item models.InventoryItem, sold float64, now time.Time) DisplayMetrics {
	resolved := ResolveInventoryStatus(item, sold, now)
	usage := UsagePercent(sold, resolved.TotalCapacity)

	return DisplayMetrics{
		InventoryStatus: resolved,
		Sold:            sold,
		UsagePercent:    usage,
		BadgeClass:      InventoryBadgeClass(resolved.Status),
		ProgressColor:   ProgressColor(usage, resolved.Status),
	}
}

// UsagePercent returns sold/total as a rounded percentage in [0,100].
// It is 0 when no capacity is configured.
func UsagePercent(sold, total float64) int {
	if total <= 0 {
		return 0
	}
	percent := int(math.Floor(sold/total*100 + 0.5))
	if percent > 100 {
		return 100
	}
	if percent < 0 {
		return 0
	}
	return percent
}

// InventoryBadgeClass maps an item status to its badge class
func InventoryBadgeClass(s ItemStatus) string {
	switch s {
	case StatusAvailable:
		return BadgeSuccess
	case StatusSoldOut, StatusExpired:
		return BadgeDanger
	default:
		return BadgeWarning
	}
}

// ProgressColor picks the progress bar color. Usage thresholds take
// precedence over the status.
func ProgressColor(usage int, s ItemStatus) string {
	switch {
	case usage >= 100:
		return ColorDanger
	case usage >= 50:
		return ColorWarning
	case s == StatusExpired:
		return ColorMuted
	case s == StatusDraft:
		return ColorWarning
	default:
		return ColorSuccess
	}
}
