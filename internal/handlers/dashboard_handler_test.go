package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dashboard-service/internal/cache"
	"dashboard-service/internal/models"
	"dashboard-service/internal/repository"
	"dashboard-service/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCache is a mock implementation of cache.Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) DeleteByPattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func (m *MockCache) Close() error {
	return m.Called().Error(0)
}

// MockRepository is a mock implementation of repository.ReadRepository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindItemByID(ctx context.Context, id string) (*models.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockRepository) ListItems(ctx context.Context, page, pageSize int) ([]models.InventoryItem, int, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.InventoryItem), args.Int(1), args.Error(2)
}

func (m *MockRepository) ListAllItems(ctx context.Context) ([]models.InventoryItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InventoryItem), args.Error(1)
}

func (m *MockRepository) FindSaleByID(ctx context.Context, id string) (*models.SaleRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SaleRecord), args.Error(1)
}

func (m *MockRepository) ListSales(ctx context.Context) ([]models.SaleRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SaleRecord), args.Error(1)
}

func (m *MockRepository) ListSalesByItem(ctx context.Context, itemID string) ([]models.SaleRecord, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SaleRecord), args.Error(1)
}

const (
	itemAvailableID = "550e8400-e29b-41d4-a716-446655440000"
	itemSoldOutID   = "6ba7b810-9dad-11d1-80b4-00c04fd430c8"
	itemDraftID     = "6ba7b811-9dad-11d1-80b4-00c04fd430c8"
	itemExpiredID   = "6ba7b812-9dad-11d1-80b4-00c04fd430c8"
	itemLastDayID   = "6ba7b814-9dad-11d1-80b4-00c04fd430c8"
)

var (
	testNow     = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	testCreated = time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
)

// Helper function to create a test handler with a fixed clock
func createTestHandler(cacheClient cache.Cache, repo repository.ReadRepository) *DashboardHandler {
	return &DashboardHandler{
		logger:           zap.NewNop(),
		repository:       repo,
		cache:            cacheClient,
		cacheTTL:         300,
		expiryWindowDays: 7,
		now:              func() time.Time { return testNow },
	}
}

func createTestItem(id, name string, value float64, start, end string) models.InventoryItem {
	return models.InventoryItem{
		ID:        id,
		Name:      name,
		Value:     value,
		Start:     start,
		End:       end,
		CreatedAt: testCreated,
		UpdatedAt: testCreated,
	}
}

func testItems() []models.InventoryItem {
	return []models.InventoryItem{
		createTestItem(itemAvailableID, "Spring tour", 100, "2024-03-01", "2024-03-17"),
		createTestItem(itemSoldOutID, "Wine tasting", 10, "", ""),
		createTestItem(itemDraftID, "Easter market", 50, "2024-04-01", "2024-04-05"),
		createTestItem(itemExpiredID, "Winter fair", 20, "2024-02-01", "2024-03-10"),
		createTestItem(itemLastDayID, "Closing gala", 0, "", "2024-03-15T12:00:00Z"),
	}
}

func testSales() []models.SaleRecord {
	return []models.SaleRecord{
		{ID: "sale-1", Name: "Early birds", InventoryLink: itemAvailableID, Capacity: models.Capacity{Value: 40}, Start: "2024-03-01", End: "2024-03-10", CreatedAt: testCreated},
		{ID: "sale-2", Name: "Walk-ins", InventoryLink: itemAvailableID, Capacity: models.Capacity{Value: 10}, CreatedAt: testCreated.Add(time.Minute)},
		{ID: "sale-3", Name: "Club members", InventoryLink: itemSoldOutID, Capacity: models.Capacity{Value: 10}, Start: "2024-03-20", End: "2024-03-25", CreatedAt: testCreated.Add(2 * time.Minute)},
		{ID: "sale-4", Name: "Gift cards", Capacity: models.Capacity{Value: 3}, CreatedAt: testCreated.Add(3 * time.Minute)},
	}
}

func salesFor(itemID string) []models.SaleRecord {
	var linked []models.SaleRecord
	for _, sale := range testSales() {
		if sale.InventoryLink == itemID {
			linked = append(linked, sale)
		}
	}
	return linked
}

// Helper function to setup Gin router for testing
func setupTestRouter(handler *DashboardHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler(zap.NewNop()))
	v1 := router.Group("/api/v1")
	{
		v1.GET("/inventory/items", handler.ListItems)
		v1.GET("/inventory/items/:id", handler.GetItem)
		v1.GET("/inventory/items/:id/sales", handler.GetItemSales)
		v1.GET("/sales", handler.ListSales)
		v1.GET("/sales/:id", handler.GetSale)
		v1.GET("/alerts/expiring", handler.ExpiringAlerts)
	}
	return router
}

func performRequest(router *gin.Engine, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeErrorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	code, _ := body["error"].(string)
	return code
}

func TestListItems_CacheMiss(t *testing.T) {
	// Setup
	mockCache := new(MockCache)
	mockRepo := new(MockRepository)
	handler := createTestHandler(mockCache, mockRepo)
	router := setupTestRouter(handler)

	items := testItems()[:2]
	mockCache.On("Get", mock.Anything, mock.Anything).Return(nil, cache.ErrCacheMiss)
	mockCache.On("Set", mock.Anything, cache.ItemsPageKey(1, 10), mock.Anything, 300*time.Second).Return(nil)
	mockCache.On("Set", mock.Anything, cache.AllSalesKey(), mock.Anything, 300*time.Second).Return(nil)
	mockRepo.On("ListItems", mock.Anything, 1, 10).Return(items, 2, nil)
	mockRepo.On("ListSales", mock.Anything).Return(testSales(), nil)

	// Execute
	w := performRequest(router, "/api/v1/inventory/items?page=1&page_size=10")

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)

	var response ListItemsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Total)
	assert.Equal(t, 1, response.TotalPages)
	require.Len(t, response.Items, 2)

	available := response.Items[0]
	assert.Equal(t, itemAvailableID, available.ID)
	assert.Equal(t, "Available", available.Status)
	assert.Equal(t, 50.0, available.Sold)
	assert.Equal(t, 50, available.UsagePercent)
	assert.Equal(t, "badge-success", available.BadgeClass)
	assert.Equal(t, "var(--color-warning)", available.ProgressColor)
	assert.Equal(t, "2024-02-01T09:00:00Z", available.CreatedAt)

	soldOut := response.Items[1]
	assert.Equal(t, "Sold Out", soldOut.Status)
	assert.Equal(t, 100, soldOut.UsagePercent)
	assert.Equal(t, "badge-danger", soldOut.BadgeClass)
	assert.Equal(t, "var(--color-danger)", soldOut.ProgressColor)
}

func TestListItems_CacheHit(t *testing.T) {
	// Setup
	mockCache := new(MockCache)
	mockRepo := new(MockRepository)
	handler := createTestHandler(mockCache, mockRepo)
	router := setupTestRouter(handler)

	cachedPage, _ := json.Marshal(models.ItemsPage{Items: testItems()[2:4], Total: 5})
	cachedSales, _ := json.Marshal(testSales())
	mockCache.On("Get", mock.Anything, cache.ItemsPageKey(2, 2)).Return(cachedPage, nil)
	mockCache.On("Get", mock.Anything, cache.AllSalesKey()).Return(cachedSales, nil)

	// Execute
	w := performRequest(router, "/api/v1/inventory/items?page=2&page_size=2")

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	mockCache.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "ListItems", mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "ListSales", mock.Anything)

	var response ListItemsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 5, response.Total)
	assert.Equal(t, 3, response.TotalPages)
	require.Len(t, response.Items, 2)
	assert.Equal(t, "Draft", response.Items[0].Status)
	assert.Equal(t, "badge-warning", response.Items[0].BadgeClass)
	assert.Equal(t, "Expired", response.Items[1].Status)
	assert.Equal(t, "var(--color-muted)", response.Items[1].ProgressColor)
}

func TestListItems_NoCache(t *testing.T) {
	// Setup - handler without cache
	mockRepo := new(MockRepository)
	handler := createTestHandler(nil, mockRepo)
	router := setupTestRouter(handler)

	mockRepo.On("ListItems", mock.Anything, 1, 10).Return(testItems(), 5, nil)
	mockRepo.On("ListSales", mock.Anything).Return(testSales(), nil)

	// Execute
	w := performRequest(router, "/api/v1/inventory/items")

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)

	var response ListItemsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 1, response.Page)
	assert.Equal(t, 10, response.PageSize)
	assert.Len(t, response.Items, 5)
}

func TestListItems_PageSizeCapped(t *testing.T) {
	// Setup
	mockRepo := new(MockRepository)
	handler := createTestHandler(nil, mockRepo)
	router := setupTestRouter(handler)

	mockRepo.On("ListItems", mock.Anything, 1, 100).Return([]models.InventoryItem{}, 0, nil)
	mockRepo.On("ListSales", mock.Anything).Return([]models.SaleRecord{}, nil)

	// Execute
	w := performRequest(router, "/api/v1/inventory/items?page_size=500")

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)

	var response ListItemsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 100, response.PageSize)
	assert.Equal(t, 0, response.TotalPages)
	assert.NotNil(t, response.Items)
}

func TestListItems_InvalidPagination(t *testing.T) {
	testCases := []struct {
		name  string
		query string
	}{
		{"zero page", "page=0"},
		{"negative page", "page=-1"},
		{"non numeric page size", "page_size=abc"},
		{"zero page size", "page_size=0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Setup
			mockRepo := new(MockRepository)
			router := setupTestRouter(createTestHandler(nil, mockRepo))

			// Execute
			w := performRequest(router, "/api/v1/inventory/items?"+tc.query)

			// Assert
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "ValidationError", decodeErrorCode(t, w))
			mockRepo.AssertNotCalled(t, "ListItems", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestListItems_RepositoryError(t *testing.T) {
	// Setup
	mockRepo := new(MockRepository)
	router := setupTestRouter(createTestHandler(nil, mockRepo))
	mockRepo.On("ListItems", mock.Anything, 1, 10).Return(nil, 0, errors.New("database is locked"))

	// Execute
	w := performRequest(router, "/api/v1/inventory/items")

	// Assert
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "DatabaseError", decodeErrorCode(t, w))
}

func TestListItems_CacheWriteFailureIsIgnored(t *testing.T) {
	// Setup
	mockCache := new(MockCache)
	mockRepo := new(MockRepository)
	router := setupTestRouter(createTestHandler(mockCache, mockRepo))

	mockCache.On("Get", mock.Anything, mock.Anything).Return(nil, cache.ErrCacheMiss)
	mockCache.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("connection refused"))
	mockRepo.On("ListItems", mock.Anything, 1, 10).Return(testItems()[:1], 1, nil)
	mockRepo.On("ListSales", mock.Anything).Return(testSales(), nil)

	// Execute
	w := performRequest(router, "/api/v1/inventory/items")

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestGetItem_Success(t *testing.T) {
	// Setup
	mockRepo := new(MockRepository)
	router := setupTestRouter(createTestHandler(nil, mockRepo))

	item := testItems()[0]
	mockRepo.On("FindItemByID", mock.Anything, itemAvailableID).Return(&item, nil)
	mockRepo.On("ListSalesByItem", mock.Anything, itemAvailableID).Return(salesFor(itemAvailableID), nil)

	// Execute
	w := performRequest(router, "/api/v1/inventory/items/"+itemAvailableID)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)

	var response InventoryItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Spring tour", response.Name)
	assert.Equal(t, "2024-03-17", response.End)
	assert.Equal(t, "Available", response.Status)
	assert.Equal(t, 50.0, response.Sold)
	assert.Equal(t, 50, response.UsagePercent)
}

func TestGetItem_CacheHit(t *testing.T) {
	// Setup
	mockCache := new(MockCache)
	mockRepo := new(MockRepository)
	router := setupTestRouter(createTestHandler(mockCache, mockRepo))

	cachedItem, _ := json.Marshal(testItems()[1])
	cachedSales, _ := json.Marshal(salesFor(itemSoldOutID))
	mockCache.On("Get", mock.Anything, cache.ItemKey(itemSoldOutID)).Return(cachedItem, nil)
	mockCache.On("Get", mock.Anything, cache.ItemSalesKey(itemSoldOutID)).Return(cachedSales, nil)

	// Execute
	w := performRequest(router, "/api/v1/inventory/items/"+itemSoldOutID)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	mockCache.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "FindItemByID", mock.Anything, mock.Anything)

	var response InventoryItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Sold Out", response.Status)
}

func TestGetItem_InvalidID(t *testing.T) {
	// Setup
	mockRepo := new(MockRepository)
	router := setupTestRouter(createTestHandler(nil, mockRepo))

	// Execute
	w := performRequest(router, "/api/v1/inventory/items/invalid-id")

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "InvalidRequest", decodeErrorCode(t, w))
	mockRepo.AssertNotCalled(t, "FindItemByID", mock.Anything, mock.Anything)
}

func TestGetItem_NotFound(t *testing.T) {
	// Setup
	mockRepo := new(MockRepository)
	router := setupTestRouter(createTestHandler(nil, mockRepo))
	mockRepo.On("FindItemByID", mock.Anything, itemDraftID).Return(nil, repository.ErrItemNotFound)

	// Execute
	w := performRequest(router, "/api/v1/inventory/items/"+itemDraftID)

	// Assert
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ItemNotFound", decodeErrorCode(t, w))
	mockRepo.AssertNotCalled(t, "ListSalesByItem", mock.Anything, mock.Anything)
}

func TestGetItemSales_Success(t *testing.T) {
	// Setup
	mockRepo := new(MockRepository)
	router := setupTestRouter(createTestHandler(nil, mockRepo))

	item := testItems()[0]
	mockRepo.On("FindItemByID", mock.Anything, itemAvailableID).Return(&item, nil)
	mockRepo.On("ListSalesByItem", mock.Anything, itemAvailableID).Return(salesFor(itemAvailableID), nil)

	// Execute
	w := performRequest(router, "/api/v1/inventory/items/"+itemAvailableID+"/sales")

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)

	var response ItemSalesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 50.0, response.Item.Sold)
	require.Len(t, response.Sales, 2)
	assert.Equal(t, "sale-1", response.Sales[0].ID)
	assert.Equal(t, "Expired", response.Sales[0].Status)
	assert.Equal(t, "badge-danger", response.Sales[0].BadgeClass)
	assert.Equal(t, "sale-2", response.Sales[1].ID)
	assert.Equal(t, "Active", response.Sales[1].Status)
	assert.Equal(t, 10.0, response.Sales[1].Capacity)
}

func TestGetItemSales_NoSales(t *testing.T) {
	// Setup
	mockRepo := new(MockRepository)
	router := setupTestRouter(createTestHandler(nil, mockRepo))

	item := testItems()[2]
	mockRepo.On("FindItemByID", mock.Anything, itemDraftID).Return(&item, nil)
	mockRepo.On("ListSalesByItem", mock.Anything, itemDraftID).Return([]models.SaleRecord{}, nil)

	// Execute
	w := performRequest(router, "/api/v1/inventory/items/"+itemDraftID+"/sales")

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", mustField(t, w, "sales"))
}

func mustField(t *testing.T, w *httptest.ResponseRecorder, field string) string {
	t.Helper()
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	raw, ok := body[field]
	require.True(t, ok, "missing field %s", field)
	return string(raw)
}

func TestListSales(t *testing.T) {
	testCases := []struct {
		name        string
		query       string
		expectedIDs []string
	}{
		{"all", "", []string{"sale-1", "sale-2", "sale-3", "sale-4"}},
		{"active", "?status=Active", []string{"sale-2", "sale-4"}},
		{"pending", "?status=Pending", []string{"sale-3"}},
		{"expired", "?status=Expired", []string{"sale-1"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Setup
			mockRepo := new(MockRepository)
			router := setupTestRouter(createTestHandler(nil, mockRepo))
			mockRepo.On("ListSales", mock.Anything).Return(testSales(), nil)

			// Execute
			w := performRequest(router, "/api/v1/sales"+tc.query)

			// Assert
			assert.Equal(t, http.StatusOK, w.Code)

			var response ListSalesResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			ids := make([]string, len(response.Sales))
			for i, sale := range response.Sales {
				ids[i] = sale.ID
			}
			assert.Equal(t, tc.expectedIDs, ids)
			assert.Equal(t, len(tc.expectedIDs), response.Total)
		})
	}
}

func TestListSales_InvalidStatus(t *testing.T) {
	// Setup
	mockRepo := new(MockRepository)
	router := setupTestRouter(createTestHandler(nil, mockRepo))

	// Execute
	w := performRequest(router, "/api/v1/sales?status=Cancelled")

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockRepo.AssertNotCalled(t, "ListSales", mock.Anything)
}

func TestGetSale_CacheMiss(t *testing.T) {
	// Setup
	mockCache := new(MockCache)
	mockRepo := new(MockRepository)
	router := setupTestRouter(createTestHandler(mockCache, mockRepo))

	sale := testSales()[2]
	mockCache.On("Get", mock.Anything, cache.SaleKey("sale-3")).Return(nil, cache.ErrCacheMiss)
	mockCache.On("Set", mock.Anything, cache.SaleKey("sale-3"), mock.Anything, 300*time.Second).Return(nil)
	mockRepo.On("FindSaleByID", mock.Anything, "sale-3").Return(&sale, nil)

	// Execute
	w := performRequest(router, "/api/v1/sales/sale-3")

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)

	var response SaleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "sale-3", response.ID)
	assert.Equal(t, itemSoldOutID, response.InventoryLink)
	assert.Equal(t, "Pending", response.Status)
	assert.Equal(t, "badge-warning", response.BadgeClass)
}

func TestGetSale_CacheHit(t *testing.T) {
	// Setup
	mockCache := new(MockCache)
	mockRepo := new(MockRepository)
	router := setupTestRouter(createTestHandler(mockCache, mockRepo))

	cached, err := json.Marshal(testSales()[0])
	require.NoError(t, err)
	mockCache.On("Get", mock.Anything, cache.SaleKey("sale-1")).Return(cached, nil)

	// Execute
	w := performRequest(router, "/api/v1/sales/sale-1")

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertNotCalled(t, "FindSaleByID", mock.Anything, mock.Anything)

	var response SaleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Expired", response.Status)
	assert.Equal(t, 40.0, response.Capacity)
}

func TestGetSale_NotFound(t *testing.T) {
	// Setup
	mockRepo := new(MockRepository)
	router := setupTestRouter(createTestHandler(nil, mockRepo))
	mockRepo.On("FindSaleByID", mock.Anything, "missing").Return(nil, repository.ErrSaleNotFound)

	// Execute
	w := performRequest(router, "/api/v1/sales/missing")

	// Assert
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "SaleNotFound", decodeErrorCode(t, w))
}

func TestGetSale_RepositoryError(t *testing.T) {
	// Setup
	mockRepo := new(MockRepository)
	router := setupTestRouter(createTestHandler(nil, mockRepo))
	mockRepo.On("FindSaleByID", mock.Anything, "sale-1").Return(nil, errors.New("connection refused"))

	// Execute
	w := performRequest(router, "/api/v1/sales/sale-1")

	// Assert
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "DatabaseError", decodeErrorCode(t, w))
}

func TestExpiringAlerts(t *testing.T) {
	testCases := []struct {
		name           string
		query          string
		expectedWindow int
		expectedIDs    []string
	}{
		{"default window", "", 7, []string{itemLastDayID, itemAvailableID}},
		{"one day", "?days=1", 1, []string{itemLastDayID}},
		{"zero days", "?days=0", 0, []string{itemLastDayID}},
		{"wide window skips draft and expired", "?days=60", 60, []string{itemLastDayID, itemAvailableID}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Setup
			mockRepo := new(MockRepository)
			router := setupTestRouter(createTestHandler(nil, mockRepo))
			mockRepo.On("ListAllItems", mock.Anything).Return(testItems(), nil)

			// Execute
			w := performRequest(router, "/api/v1/alerts/expiring"+tc.query)

			// Assert
			assert.Equal(t, http.StatusOK, w.Code)

			var response ExpiringAlertsResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tc.expectedWindow, response.WindowDays)
			ids := make([]string, len(response.Alerts))
			for i, alert := range response.Alerts {
				ids[i] = alert.ItemID
			}
			assert.Equal(t, tc.expectedIDs, ids)
		})
	}
}

func TestExpiringAlerts_Levels(t *testing.T) {
	// Setup
	mockRepo := new(MockRepository)
	router := setupTestRouter(createTestHandler(nil, mockRepo))
	mockRepo.On("ListAllItems", mock.Anything).Return(testItems(), nil)

	// Execute
	w := performRequest(router, "/api/v1/alerts/expiring")

	// Assert
	require.Equal(t, http.StatusOK, w.Code)

	var response ExpiringAlertsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Alerts, 2)

	lastDay := response.Alerts[0]
	assert.Equal(t, 0, lastDay.DaysLeft)
	assert.Equal(t, "danger", lastDay.Level)
	assert.Equal(t, "badge-danger", lastDay.BadgeClass)
	assert.Equal(t, "var(--color-danger)", lastDay.Color)

	soon := response.Alerts[1]
	assert.Equal(t, "Spring tour", soon.Name)
	assert.Equal(t, 2, soon.DaysLeft)
	assert.Equal(t, "warning", soon.Level)
	assert.Equal(t, "badge-warning", soon.BadgeClass)
	assert.Equal(t, "var(--color-warning)", soon.Color)
}

func TestExpiringAlerts_InvalidDays(t *testing.T) {
	for _, days := range []string{"-1", "abc", "366"} {
		t.Run(days, func(t *testing.T) {
			// Setup
			mockRepo := new(MockRepository)
			router := setupTestRouter(createTestHandler(nil, mockRepo))

			// Execute
			w := performRequest(router, "/api/v1/alerts/expiring?days="+days)

			// Assert
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "ValidationError", decodeErrorCode(t, w))
			mockRepo.AssertNotCalled(t, "ListAllItems", mock.Anything)
		})
	}
}

func TestDashboardHandler_StatusRecomputedFromCachedRecords(t *testing.T) {
	// Setup
	repo := repository.NewInMemoryReadRepository()
	item := testItems()[0]
	repo.SaveItem(item)
	for _, sale := range salesFor(itemAvailableID) {
		repo.SaveSale(sale)
	}

	now := testNow
	handler := createTestHandler(cache.NewInMemoryCache(zap.NewNop()), repo)
	handler.now = func() time.Time { return now }
	router := setupTestRouter(handler)

	// Execute
	first := performRequest(router, "/api/v1/inventory/items/"+itemAvailableID)

	item.Name = "Renamed after caching"
	repo.SaveItem(item)
	now = time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC)

	second := performRequest(router, "/api/v1/inventory/items/"+itemAvailableID)

	// Assert
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)

	var before, after InventoryItemResponse
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &before))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &after))

	assert.Equal(t, "Available", before.Status)
	assert.Equal(t, "Spring tour", after.Name)
	assert.Equal(t, "Expired", after.Status)
	assert.Equal(t, "badge-danger", after.BadgeClass)
}
