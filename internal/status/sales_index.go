package status

import "dashboard-service/internal/models"

// SalesIndex groups sale records by the inventory item they reference
type SalesIndex struct {
	// ByInventory holds the linked sales per item id, in input order
	ByInventory map[string][]models.SaleRecord
	// Sold holds the summed sale capacity per item id
	Sold map[string]float64
}

// BuildSalesIndex indexes sales by InventoryLink. Sales without a link are
// skipped.
func BuildSalesIndex(sales []models.SaleRecord) SalesIndex {
	index := SalesIndex{
		ByInventory: make(map[string][]models.SaleRecord),
		Sold:        make(map[string]float64),
	}

	for _, sale := range sales {
		key := sale.InventoryLink
		if key == "" {
			continue
		}
		index.ByInventory[key] = append(index.ByInventory[key], sale)
		index.Sold[key] += sale.Capacity.Value
	}

	return index
}

// SoldFor returns the sold capacity for an item id, 0 if it has no sales
func (s SalesIndex) SoldFor(itemID string) float64 {
	return s.Sold[itemID]
}

// SalesFor returns the sales linked to an item id
func (s SalesIndex) SalesFor(itemID string) []models.SaleRecord {
	return s.ByInventory[itemID]
}
