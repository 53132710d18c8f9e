package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository"
	"github.com/mamadbah2/stockroom/internal/service/inventory"
)

// InventoryHandler exposes category and item endpoints.
type InventoryHandler struct {
	svc    *inventory.Service
	logger *zap.Logger
}

// NewInventoryHandler builds the handler with its dependencies.
func NewInventoryHandler(svc *inventory.Service, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, logger: logger}
}

type addCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// ListCategories handles GET /api/categories.
func (h *InventoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// AddCategory handles POST /api/categories.
func (h *InventoryHandler) AddCategory(c *gin.Context) {
	var req addCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	category, err := h.svc.AddCategory(c.Request.Context(), session(c), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// DeleteCategory handles DELETE /api/categories/:id.
func (h *InventoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.svc.DeleteCategory(c.Request.Context(), session(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addItemRequest struct {
	Name       string `json:"name" binding:"required"`
	CategoryID string `json:"category_id"`
	Quantity   int    `json:"quantity"`
}

// ListItems handles GET /api/items with optional search and status filters.
func (h *InventoryHandler) ListItems(c *gin.Context) {
	opts := inventory.ListOptions{
		Search: c.Query("search"),
		Status: models.StockStatus(c.Query("status")),
	}
	items, err := h.svc.ListItems(c.Request.Context(), opts)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetItem handles GET /api/items/:id.
func (h *InventoryHandler) GetItem(c *gin.Context) {
	item, err := h.svc.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// AddItem handles POST /api/items.
func (h *InventoryHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	item, err := h.svc.AddItem(c.Request.Context(), session(c), req.Name, req.CategoryID, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

type updateItemRequest struct {
	Name      *string `json:"name"`
	Category  *string `json:"category_id"`
	Total     *int    `json:"total_quantity"`
	Remaining *int    `json:"remaining_quantity"`
}

// UpdateItem handles PATCH /api/items/:id.
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed body"})
		return
	}
	item, err := h.svc.UpdateItem(c.Request.Context(), session(c), c.Param("id"), repository.ItemUpdate{
		Name:      req.Name,
		Category:  req.Category,
		Total:     req.Total,
		Remaining: req.Remaining,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /api/items/:id.
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	if err := h.svc.DeleteItem(c.Request.Context(), session(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
