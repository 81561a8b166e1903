package handlers

// InventoryItemResponse represents an inventory item with its display metrics
// @Description Inventory item with resolved status, usage and rendering hints
type InventoryItemResponse struct {
	// Unique item identifier (UUID)
	ID string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`

	// Item name
	Name string `json:"name" example:"Spring city tour"`

	// Item description
	Description string `json:"description" example:"Guided tour, 3 hours"`

	// Total capacity
	Value float64 `json:"value" example:"100"`

	// Start of the availability window (ISO 8601), omitted when not set
	Start string `json:"start,omitempty" example:"2024-03-01"`

	// End of the availability window (ISO 8601), omitted when not set
	End string `json:"end,omitempty" example:"2024-03-31"`

	// Resolved status: Available, Draft, Expired or Sold Out
	Status string `json:"status" example:"Available"`

	// Capacity consumed by linked sales
	Sold float64 `json:"sold" example:"40"`

	// Sold over total capacity, rounded, 0-100
	UsagePercent int `json:"usage_percent" example:"40"`

	// Badge class for the status
	BadgeClass string `json:"badge_class" example:"badge-success"`

	// Progress bar color
	ProgressColor string `json:"progress_color" example:"var(--color-success)"`

	// Creation timestamp (ISO 8601 format)
	CreatedAt string `json:"created_at" example:"2024-01-15T10:30:00Z"`

	// Last update timestamp (ISO 8601 format)
	UpdatedAt string `json:"updated_at" example:"2024-01-15T11:45:00Z"`
}

// ListItemsResponse represents the response for listing items
// @Description Response with paginated list of inventory items
type ListItemsResponse struct {
	// List of inventory items
	Items []InventoryItemResponse `json:"items"`

	// Total number of items
	Total int `json:"total" example:"100"`

	// Current page number
	Page int `json:"page" example:"1"`

	// Number of items per page
	PageSize int `json:"page_size" example:"10"`

	// Total number of pages
	TotalPages int `json:"total_pages" example:"10"`
}

// SaleResponse represents a sale with its window status
// @Description Sale record with resolved status and badge
type SaleResponse struct {
	ID string `json:"id" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`

	Name string `json:"name" example:"Group booking"`

	// Linked inventory item, omitted for unlinked sales
	InventoryLink string `json:"inventory_link,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`

	// Capacity consumed
	Capacity float64 `json:"capacity" example:"12"`

	Start string `json:"start,omitempty" example:"2024-03-01"`

	End string `json:"end,omitempty" example:"2024-03-10"`

	// Window status: Active, Pending or Expired
	Status string `json:"status" example:"Active"`

	BadgeClass string `json:"badge_class" example:"badge-success"`

	CreatedAt string `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

// ItemSalesResponse represents the sales linked to one item
// @Description Item with its display metrics and linked sales
type ItemSalesResponse struct {
	Item InventoryItemResponse `json:"item"`

	// Linked sales, oldest first
	Sales []SaleResponse `json:"sales"`
}

// ListSalesResponse represents the response for listing sales
type ListSalesResponse struct {
	Sales []SaleResponse `json:"sales"`
	Total int            `json:"total" example:"3"`
}

// ExpiryAlertResponse represents an item that is about to expire
// @Description Expiry alert with severity and rendering hints
type ExpiryAlertResponse struct {
	ItemID string `json:"item_id" example:"550e8400-e29b-41d4-a716-446655440000"`

	Name string `json:"name" example:"Spring city tour"`

	End string `json:"end" example:"2024-03-31"`

	// Started days until the end of the window, 0 on the last day
	DaysLeft int `json:"days_left" example:"2"`

	// Severity: danger on the last day, warning otherwise
	Level string `json:"level" example:"warning"`

	BadgeClass string `json:"badge_class" example:"badge-warning"`

	Color string `json:"color" example:"var(--color-warning)"`
}

// ExpiringAlertsResponse represents the response for expiry alerts
type ExpiringAlertsResponse struct {
	// Window used, in days
	WindowDays int `json:"window_days" example:"7"`

	// Alerts, soonest first
	Alerts []ExpiryAlertResponse `json:"alerts"`

	Total int `json:"total" example:"1"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Service string `json:"service" example:"dashboard-service"`
}
