// api/handlers/seller_handler.go
package handlers

import (
	"net/http"

	"github.com/rauf-alluviam/auto-rack-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SellerHandler serves the read-only seller views
type SellerHandler struct {
	service service.Service
	log     *logrus.Logger
}

// NewSellerHandler creates a new SellerHandler instance
func NewSellerHandler(svc service.Service, log *logrus.Logger) *SellerHandler {
	return &SellerHandler{
		service: svc,
		log:     log,
	}
}

// Dashboard handles GET /seller/dashboard
func (h *SellerHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("Failed to build dashboard")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to build dashboard",
		})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// History handles GET /seller/history: orders that are accepted or
// delivered, as display projections.
func (h *SellerHandler) History(c *gin.Context) {
	summaries, err := h.service.OrderHistory(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("Failed to load order history")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load order history",
		})
		return
	}

	c.JSON(http.StatusOK, summaries)
}

// StatusBoard handles GET /seller/status: accepted orders that carry a
// delivery estimate.
func (h *SellerHandler) StatusBoard(c *gin.Context) {
	summaries, err := h.service.StatusBoard(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("Failed to load status board")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load status board",
		})
		return
	}

	c.JSON(http.StatusOK, summaries)
}
