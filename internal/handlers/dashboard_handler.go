package handlers

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"dashboard-service/internal/cache"
	"dashboard-service/internal/config"
	"dashboard-service/internal/models"
	"dashboard-service/internal/repository"
	"dashboard-service/internal/status"
	apperrors "dashboard-service/pkg/errors"
	"dashboard-service/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	maxWindowDays   = 365
)

type DashboardHandler struct {
	logger           *zap.Logger
	repository       repository.ReadRepository
	cache            cache.Cache
	cacheTTL         int
	expiryWindowDays int
	now              func() time.Time
}

// NewDashboardHandler creates the dashboard handler. cacheClient may be nil.
func NewDashboardHandler(repo repository.ReadRepository, cacheClient cache.Cache, cfg *config.Config, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		logger:           logger,
		repository:       repo,
		cache:            cacheClient,
		cacheTTL:         cfg.CacheTTL,
		expiryWindowDays: cfg.ExpiryWindowDays,
		now:              time.Now,
	}
}

// ListItems handles GET /api/v1/inventory/items
// @Summary      List inventory items
// @Description  Returns a page of inventory items, newest first. Each item carries its status,
// @Description  sold capacity, usage percentage and rendering hints, computed at request time.
//
// **Examples:**
// - Default pagination: `GET /api/v1/inventory/items`
// - Custom pagination: `GET /api/v1/inventory/items?page=2&page_size=20`
//
// **Invalid:**
// - `GET /api/v1/inventory/items?page=0`
// - `GET /api/v1/inventory/items?page_size=abc`
//
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        X-Request-ID  header    string  false  "Request ID for request tracking. If not provided, a new one will be generated."
// @Param        page          query     int     false  "Page number (default: 1, min: 1)" example(1)
// @Param        page_size     query     int     false  "Items per page (default: 10, min: 1, capped at 100)" example(10)
// @Success      200           {object}  ListItemsResponse
// @Failure      400           {object}  errors.StandardError  "Invalid pagination parameters"
// @Failure      401           {object}  errors.StandardError  "Missing or invalid bearer token"
// @Failure      500           {object}  errors.StandardError  "Read model unavailable"
// @Router       /inventory/items [get]
func (h *DashboardHandler) ListItems(c *gin.Context) {
	page, ok := positiveQueryInt(c, "page", 1)
	if !ok {
		h.abort(c, apperrors.NewValidationError("page must be a positive integer", "page"))
		return
	}
	pageSize, ok := positiveQueryInt(c, "page_size", defaultPageSize)
	if !ok {
		h.abort(c, apperrors.NewValidationError("page_size must be a positive integer", "page_size"))
		return
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	ctx := c.Request.Context()

	var itemsPage models.ItemsPage
	err := h.readThrough(ctx, cache.ItemsPageKey(page, pageSize), &itemsPage, func() error {
		items, total, err := h.repository.ListItems(ctx, page, pageSize)
		if err != nil {
			return err
		}
		itemsPage = models.ItemsPage{Items: items, Total: total}
		return nil
	})
	if err != nil {
		h.logger.Error("Failed to list items", zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
		h.abort(c, apperrors.NewDatabaseError("list items", err))
		return
	}

	sales, err := h.loadSales(ctx)
	if err != nil {
		h.logger.Error("Failed to list sales", zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
		h.abort(c, apperrors.NewDatabaseError("list sales", err))
		return
	}

	index := status.BuildSalesIndex(sales)
	now := h.now()

	responseItems := make([]InventoryItemResponse, len(itemsPage.Items))
	for i, item := range itemsPage.Items {
		responseItems[i] = toItemResponse(item, index.SoldFor(item.ID), now)
	}

	c.JSON(http.StatusOK, ListItemsResponse{
		Items:      responseItems,
		Total:      itemsPage.Total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (itemsPage.Total + pageSize - 1) / pageSize,
	})
}

// GetItem handles GET /api/v1/inventory/items/:id
// @Summary      Get inventory item by ID
// @Description  Returns one inventory item with its display metrics.
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        X-Request-ID  header    string  false  "Request ID for request tracking. If not provided, a new one will be generated."
// @Param        id            path      string  true   "Item ID (UUID)" example(550e8400-e29b-41d4-a716-446655440000)
// @Success      200           {object}  InventoryItemResponse
// @Failure      400           {object}  errors.StandardError  "Malformed UUID"
// @Failure      401           {object}  errors.StandardError  "Missing or invalid bearer token"
// @Failure      404           {object}  errors.StandardError  "Item not found"
// @Failure      500           {object}  errors.StandardError  "Read model unavailable"
// @Router       /inventory/items/{id} [get]
func (h *DashboardHandler) GetItem(c *gin.Context) {
	item, sales, ok := h.itemWithSales(c)
	if !ok {
		return
	}

	sold := status.BuildSalesIndex(sales).SoldFor(item.ID)
	c.JSON(http.StatusOK, toItemResponse(*item, sold, h.now()))
}

// GetItemSales handles GET /api/v1/inventory/items/:id/sales
// @Summary      List sales of an item
// @Description  Returns the item with its display metrics and every sale linked to it, oldest first,
// @Description  each with its window status.
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        X-Request-ID  header    string  false  "Request ID for request tracking. If not provided, a new one will be generated."
// @Param        id            path      string  true   "Item ID (UUID)" example(550e8400-e29b-41d4-a716-446655440000)
// @Success      200           {object}  ItemSalesResponse
// @Failure      400           {object}  errors.StandardError  "Malformed UUID"
// @Failure      401           {object}  errors.StandardError  "Missing or invalid bearer token"
// @Failure      404           {object}  errors.StandardError  "Item not found"
// @Failure      500           {object}  errors.StandardError  "Read model unavailable"
// @Router       /inventory/items/{id}/sales [get]
func (h *DashboardHandler) GetItemSales(c *gin.Context) {
	item, sales, ok := h.itemWithSales(c)
	if !ok {
		return
	}

	now := h.now()
	index := status.BuildSalesIndex(sales)
	linked := index.SalesFor(item.ID)

	responseSales := make([]SaleResponse, len(linked))
	for i, sale := range linked {
		responseSales[i] = toSaleResponse(sale, now)
	}

	c.JSON(http.StatusOK, ItemSalesResponse{
		Item:  toItemResponse(*item, index.SoldFor(item.ID), now),
		Sales: responseSales,
	})
}

// ListSales handles GET /api/v1/sales
// @Summary      List sales
// @Description  Returns every sale, oldest first, with its window status and badge.
// @Description  The optional status filter keeps only Active, Pending or Expired sales.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        X-Request-ID  header    string  false  "Request ID for request tracking. If not provided, a new one will be generated."
// @Param        status        query     string  false  "Status filter" Enums(Active, Pending, Expired)
// @Success      200           {object}  ListSalesResponse
// @Failure      400           {object}  errors.StandardError  "Unknown status filter"
// @Failure      401           {object}  errors.StandardError  "Missing or invalid bearer token"
// @Failure      500           {object}  errors.StandardError  "Read model unavailable"
// @Router       /sales [get]
func (h *DashboardHandler) ListSales(c *gin.Context) {
	filter := status.SalesStatus(c.Query("status"))
	switch filter {
	case "", status.SalesActive, status.SalesPending, status.SalesExpired:
	default:
		h.abort(c, apperrors.NewValidationError("status must be one of Active, Pending, Expired", "status"))
		return
	}

	sales, err := h.loadSales(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list sales", zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
		h.abort(c, apperrors.NewDatabaseError("list sales", err))
		return
	}

	now := h.now()
	responseSales := make([]SaleResponse, 0, len(sales))
	for _, sale := range sales {
		response := toSaleResponse(sale, now)
		if filter != "" && response.Status != string(filter) {
			continue
		}
		responseSales = append(responseSales, response)
	}

	c.JSON(http.StatusOK, ListSalesResponse{
		Sales: responseSales,
		Total: len(responseSales),
	})
}

// GetSale handles GET /api/v1/sales/:id
// @Summary      Get sale by ID
// @Description  Returns one sale with its window status and badge.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        X-Request-ID  header    string  false  "Request ID for request tracking. If not provided, a new one will be generated."
// @Param        id            path      string  true   "Sale ID"
// @Success      200           {object}  SaleResponse
// @Failure      401           {object}  errors.StandardError  "Missing or invalid bearer token"
// @Failure      404           {object}  errors.StandardError  "Sale not found"
// @Failure      500           {object}  errors.StandardError  "Read model unavailable"
// @Router       /sales/{id} [get]
func (h *DashboardHandler) GetSale(c *gin.Context) {
	saleID := c.Param("id")
	ctx := c.Request.Context()

	var sale models.SaleRecord
	err := h.readThrough(ctx, cache.SaleKey(saleID), &sale, func() error {
		found, err := h.repository.FindSaleByID(ctx, saleID)
		if err != nil {
			return err
		}
		sale = *found
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			h.abort(c, apperrors.NewSaleNotFound(saleID))
			return
		}
		h.logger.Error("Failed to find sale", zap.String("request_id", middleware.GetRequestID(c)), zap.String("sale_id", saleID), zap.Error(err))
		h.abort(c, apperrors.NewDatabaseError("find sale", err))
		return
	}

	c.JSON(http.StatusOK, toSaleResponse(sale, h.now()))
}

// ExpiringAlerts handles GET /api/v1/alerts/expiring
// @Summary      Expiry alerts
// @Description  Returns active items whose window ends within the given number of days, soonest first.
// @Description  Items ending today are reported with level danger, the rest with level warning.
// @Tags         alerts
// @Produce      json
// @Security     BearerAuth
// @Param        X-Request-ID  header    string  false  "Request ID for request tracking. If not provided, a new one will be generated."
// @Param        days          query     int     false  "Window in days (default from EXPIRY_WINDOW_DAYS, 0-365)" example(7)
// @Success      200           {object}  ExpiringAlertsResponse
// @Failure      400           {object}  errors.StandardError  "Invalid window"
// @Failure      401           {object}  errors.StandardError  "Missing or invalid bearer token"
// @Failure      500           {object}  errors.StandardError  "Read model unavailable"
// @Router       /alerts/expiring [get]
func (h *DashboardHandler) ExpiringAlerts(c *gin.Context) {
	windowDays := h.expiryWindowDays
	if raw := c.Query("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 || days > maxWindowDays {
			h.abort(c, apperrors.NewValidationError("days must be an integer between 0 and 365", "days"))
			return
		}
		windowDays = days
	}

	ctx := c.Request.Context()

	var items []models.InventoryItem
	err := h.readThrough(ctx, cache.AllItemsKey(), &items, func() error {
		var err error
		items, err = h.repository.ListAllItems(ctx)
		return err
	})
	if err != nil {
		h.logger.Error("Failed to list items", zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
		h.abort(c, apperrors.NewDatabaseError("list items", err))
		return
	}

	now := h.now()
	alerts := make([]ExpiryAlertResponse, 0)
	for _, item := range items {
		if !status.IsExpiringWithin(item.End, windowDays, now, item.Start) {
			continue
		}
		daysLeft, _ := status.DaysUntilExpiry(item.End, now, item.Start)
		level := status.ExpiryLevel(daysLeft)
		alerts = append(alerts, ExpiryAlertResponse{
			ItemID:     item.ID,
			Name:       item.Name,
			End:        item.End,
			DaysLeft:   daysLeft,
			Level:      level,
			BadgeClass: status.AlertBadgeClass(level),
			Color:      status.AlertColor(level),
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].DaysLeft != alerts[j].DaysLeft {
			return alerts[i].DaysLeft < alerts[j].DaysLeft
		}
		return alerts[i].Name < alerts[j].Name
	})

	c.JSON(http.StatusOK, ExpiringAlertsResponse{
		WindowDays: windowDays,
		Alerts:     alerts,
		Total:      len(alerts),
	})
}

// itemWithSales loads the item named by the :id parameter and its linked
// sales. It aborts the request and returns false on failure.
func (h *DashboardHandler) itemWithSales(c *gin.Context) (*models.InventoryItem, []models.SaleRecord, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.abort(c, apperrors.NewInvalidRequest("invalid item id", "Expected a UUID"))
		return nil, nil, false
	}
	itemID := id.String()
	ctx := c.Request.Context()

	var item models.InventoryItem
	err = h.readThrough(ctx, cache.ItemKey(itemID), &item, func() error {
		found, err := h.repository.FindItemByID(ctx, itemID)
		if err != nil {
			return err
		}
		item = *found
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			h.abort(c, apperrors.NewItemNotFound(itemID))
			return nil, nil, false
		}
		h.logger.Error("Failed to find item", zap.String("request_id", middleware.GetRequestID(c)), zap.String("item_id", itemID), zap.Error(err))
		h.abort(c, apperrors.NewDatabaseError("find item", err))
		return nil, nil, false
	}

	var sales []models.SaleRecord
	err = h.readThrough(ctx, cache.ItemSalesKey(itemID), &sales, func() error {
		var err error
		sales, err = h.repository.ListSalesByItem(ctx, itemID)
		return err
	})
	if err != nil {
		h.logger.Error("Failed to list item sales", zap.String("request_id", middleware.GetRequestID(c)), zap.String("item_id", itemID), zap.Error(err))
		h.abort(c, apperrors.NewDatabaseError("list item sales", err))
		return nil, nil, false
	}

	return &item, sales, true
}

func (h *DashboardHandler) loadSales(ctx context.Context) ([]models.SaleRecord, error) {
	var sales []models.SaleRecord
	err := h.readThrough(ctx, cache.AllSalesKey(), &sales, func() error {
		var err error
		sales, err = h.repository.ListSales(ctx)
		return err
	})
	return sales, err
}

// readThrough fills dest from the cache, or runs load (which fills dest)
// and caches the result. Cache failures never fail the request.
func (h *DashboardHandler) readThrough(ctx context.Context, key string, dest interface{}, load func() error) error {
	if h.cache != nil {
		if err := cache.GetJSON(ctx, h.cache, key, dest); err == nil {
			h.logger.Debug("Cache hit", zap.String("key", key))
			return nil
		}
	}

	if err := load(); err != nil {
		return err
	}

	if h.cache != nil {
		if err := cache.SetJSON(ctx, h.cache, key, dest, cache.TTL(h.cacheTTL)); err != nil {
			h.logger.Warn("Failed to cache read model",
				zap.String("request_id", middleware.RequestIDFromContext(ctx)),
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (h *DashboardHandler) abort(c *gin.Context, err *apperrors.StandardError) {
	c.Error(err)
	c.Abort()
}

func positiveQueryInt(c *gin.Context, name string, defaultValue int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, false
	}
	return value, true
}

func toItemResponse(item models.InventoryItem, sold float64, now time.Time) InventoryItemResponse {
	metrics := status.ComputeDisplayMetrics(item, sold, now)
	return InventoryItemResponse{
		ID:            item.ID,
		Name:          item.Name,
		Description:   item.Description,
		Value:         item.Value,
		Start:         item.Start,
		End:           item.End,
		Status:        string(metrics.Status),
		Sold:          metrics.Sold,
		UsagePercent:  metrics.UsagePercent,
		BadgeClass:    metrics.BadgeClass,
		ProgressColor: metrics.ProgressColor,
		CreatedAt:     item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     item.UpdatedAt.Format(time.RFC3339),
	}
}

func toSaleResponse(sale models.SaleRecord, now time.Time) SaleResponse {
	salesStatus := status.ComputeSalesStatus(sale.Start, sale.End, now)
	return SaleResponse{
		ID:            sale.ID,
		Name:          sale.Name,
		InventoryLink: sale.InventoryLink,
		Capacity:      sale.Capacity.Value,
		Start:         sale.Start,
		End:           sale.End,
		Status:        string(salesStatus),
		BadgeClass:    status.SalesBadgeClass(salesStatus),
		CreatedAt:     sale.CreatedAt.Format(time.RFC3339),
	}
}
