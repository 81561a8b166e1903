package models

import "time"

// InventoryItem represents a sellable resource in the read model.
// Value is the total capacity; Start and End are ISO-8601 timestamps and an
// empty string means the bound is not set.
type InventoryItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Value       float64   `json:"value"`
	Start       string    `json:"start,omitempty"`
	End         string    `json:"end,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Capacity is a quantity of units consumed by a sale
type Capacity struct {
	Value float64 `json:"value"`
}

// SaleRecord represents a sale that consumes capacity of an inventory item.
// InventoryLink is empty when the sale is not linked to any item.
type SaleRecord struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	InventoryLink string    `json:"inventory_link,omitempty"`
	Capacity      Capacity  `json:"capacity"`
	Start         string    `json:"start,omitempty"`
	End           string    `json:"end,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ItemsPage is a page of inventory items as returned by the repository
type ItemsPage struct {
	Items []InventoryItem `json:"items"`
	Total int             `json:"total"`
}
