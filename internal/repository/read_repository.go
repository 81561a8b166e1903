package repository

import (
	"context"
	"sort"
	"sync"

	"dashboard-service/internal/models"
)

// ReadRepository defines the interface for read operations
type ReadRepository interface {
	FindItemByID(ctx context.Context, id string) (*models.InventoryItem, error)
	ListItems(ctx context.Context, page, pageSize int) ([]models.InventoryItem, int, error)
	ListAllItems(ctx context.Context) ([]models.InventoryItem, error)
	FindSaleByID(ctx context.Context, id string) (*models.SaleRecord, error)
	ListSales(ctx context.Context) ([]models.SaleRecord, error)
	ListSalesByItem(ctx context.Context, itemID string) ([]models.SaleRecord, error)
}

// InMemoryReadRepository keeps the read model in memory. Used in development
// (DB_DRIVER=memory) and tests.
type InMemoryReadRepository struct {
	mu    sync.RWMutex
	items map[string]models.InventoryItem
	sales map[string]models.SaleRecord
}

func NewInMemoryReadRepository() *InMemoryReadRepository {
	return &InMemoryReadRepository{
		items: make(map[string]models.InventoryItem),
		sales: make(map[string]models.SaleRecord),
	}
}

// SaveItem inserts or replaces an item
func (r *InMemoryReadRepository) SaveItem(item models.InventoryItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
}

// SaveSale inserts or replaces a sale
func (r *InMemoryReadRepository) SaveSale(sale models.SaleRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales[sale.ID] = sale
}

// DeleteItem removes an item. Linked sales are kept.
func (r *InMemoryReadRepository) DeleteItem(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

// DeleteSale removes a sale
func (r *InMemoryReadRepository) DeleteSale(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sales, id)
	return nil
}

// UpsertItem is SaveItem with the ReadModelWriter signature
func (r *InMemoryReadRepository) UpsertItem(ctx context.Context, item models.InventoryItem) error {
	r.SaveItem(item)
	return nil
}

// UpsertSale is SaveSale with the ReadModelWriter signature
func (r *InMemoryReadRepository) UpsertSale(ctx context.Context, sale models.SaleRecord) error {
	r.SaveSale(sale)
	return nil
}

func (r *InMemoryReadRepository) FindItemByID(ctx context.Context, id string) (*models.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.items[id]
	if !exists {
		return nil, ErrItemNotFound
	}
	return &item, nil
}

func (r *InMemoryReadRepository) ListItems(ctx context.Context, page, pageSize int) ([]models.InventoryItem, int, error) {
	items, _ := r.ListAllItems(ctx)
	total := len(items)

	start := (page - 1) * pageSize
	if start < 0 || start >= total {
		return []models.InventoryItem{}, total, nil
	}

	end := start + pageSize
	if end > total {
		end = total
	}

	return items[start:end], total, nil
}

func (r *InMemoryReadRepository) ListAllItems(ctx context.Context) ([]models.InventoryItem, error) {
	r.mu.RLock()
	items := make([]models.InventoryItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	r.mu.RUnlock()

	// Same order as the SQL repositories: newest first
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (r *InMemoryReadRepository) FindSaleByID(ctx context.Context, id string) (*models.SaleRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sale, exists := r.sales[id]
	if !exists {
		return nil, ErrSaleNotFound
	}
	return &sale, nil
}

func (r *InMemoryReadRepository) ListSales(ctx context.Context) ([]models.SaleRecord, error) {
	return r.filterSales(func(models.SaleRecord) bool { return true }), nil
}

func (r *InMemoryReadRepository) ListSalesByItem(ctx context.Context, itemID string) ([]models.SaleRecord, error) {
	return r.filterSales(func(sale models.SaleRecord) bool {
		return sale.InventoryLink == itemID
	}), nil
}

// filterSales returns matching sales oldest first, the order sales are aggregated in
func (r *InMemoryReadRepository) filterSales(keep func(models.SaleRecord) bool) []models.SaleRecord {
	r.mu.RLock()
	sales := make([]models.SaleRecord, 0, len(r.sales))
	for _, sale := range r.sales {
		if keep(sale) {
			sales = append(sales, sale)
		}
	}
	r.mu.RUnlock()

	sort.Slice(sales, func(i, j int) bool {
		if !sales[i].CreatedAt.Equal(sales[j].CreatedAt) {
			return sales[i].CreatedAt.Before(sales[j].CreatedAt)
		}
		return sales[i].ID < sales[j].ID
	})
	return sales
}

// ReadModelWriter applies inventory and sales changes to the read model
type ReadModelWriter interface {
	UpsertItem(ctx context.Context, item models.InventoryItem) error
	UpsertSale(ctx context.Context, sale models.SaleRecord) error
	DeleteItem(ctx context.Context, id string) error
	DeleteSale(ctx context.Context, id string) error
}

var (
	ErrItemNotFound = &RepositoryError{Message: "item not found"}
	ErrSaleNotFound = &RepositoryError{Message: "sale not found"}
)

type RepositoryError struct {
	Message string
}

func (e *RepositoryError) Error() string {
	return e.Message
}
