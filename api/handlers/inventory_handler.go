// api/handlers/inventory_handler.go
package handlers

import (
	"net/http"

	"github.com/rauf-alluviam/auto-rack-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// InventoryHandler handles stock listing and adjustment
type InventoryHandler struct {
	service service.Service
	log     *logrus.Logger
}

// NewInventoryHandler creates a new InventoryHandler instance
func NewInventoryHandler(svc service.Service, log *logrus.Logger) *InventoryHandler {
	return &InventoryHandler{
		service: svc,
		log:     log,
	}
}

// List handles GET /inventory
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.service.ListInventory(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("Failed to list inventory")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list inventory",
		})
		return
	}

	c.JSON(http.StatusOK, items)
}

// AdjustRequest is the body for PUT and POST /inventory. A non-numeric
// delta fails JSON binding and yields 400.
type AdjustRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Delta     *int   `json:"delta" binding:"required"`
}

// Adjust handles both PUT /inventory and POST /inventory. The two verbs
// used to be separate copies of the same handler; they now share this one.
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.WithError(err).Warn("Invalid inventory adjustment payload")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "product_id, size and a numeric delta are required",
		})
		return
	}

	item, err := h.service.AdjustStock(c.Request.Context(), req.ProductID, req.Size, *req.Delta)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSize):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Size must be one of S, M, L, XL",
			})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
		default:
			h.log.WithError(err).Error("Failed to adjust stock")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to adjust stock",
			})
		}
		return
	}

	c.JSON(http.StatusOK, item)
}

// CreateItemRequest is the body for POST /inventory/items
type CreateItemRequest struct {
	ProductName string `json:"product_name" binding:"required"`
}

// CreateItem handles POST /inventory/items
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "product_name is required",
		})
		return
	}

	item, err := h.service.CreateInventoryItem(c.Request.Context(), req.ProductName)
	if err != nil {
		h.log.WithError(err).Error("Failed to create inventory item")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create inventory item",
		})
		return
	}

	c.JSON(http.StatusCreated, item)
}
