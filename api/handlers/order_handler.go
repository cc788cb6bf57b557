// api/handlers/order_handler.go
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rauf-alluviam/auto-rack-sub000/api/middleware"
	"github.com/rauf-alluviam/auto-rack-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// OrderHandler handles order intake and acceptance/status requests
type OrderHandler struct {
	service service.Service
	log     *logrus.Logger
}

// NewOrderHandler creates a new OrderHandler instance
func NewOrderHandler(svc service.Service, log *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		service: svc,
		log:     log,
	}
}

// OrderRef accepts an order id sent either as a JSON number or a string.
// The web clients are inconsistent about which they send.
type OrderRef string

// UnmarshalJSON strips surrounding quotes so both encodings land here
func (r *OrderRef) UnmarshalJSON(data []byte) error {
	*r = OrderRef(strings.Trim(string(data), `"`))
	return nil
}

// Uint parses the reference into a numeric order id
func (r OrderRef) Uint() (uint, error) {
	id, err := strconv.ParseUint(string(r), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// CreateOrderRequest is the POST /order contract
type CreateOrderRequest struct {
	ProductName     string `json:"product_name" binding:"required"`
	Quantity        int    `json:"quantity" binding:"required,gt=0"`
	Size            string `json:"size" binding:"required"`
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	Notes           string `json:"notes"`
}

// CreateOrder handles POST /order
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.WithError(err).Warn("Invalid order payload")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "product_name, quantity, size and delivery_address are required",
		})
		return
	}

	input := service.CreateOrderInput{
		ProductName:     req.ProductName,
		Quantity:        req.Quantity,
		Size:            req.Size,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
	}
	attachBuyer(c, &input)

	order, err := h.service.CreateOrder(c.Request.Context(), input)
	if err != nil {
		h.log.WithError(err).Error("Failed to create order")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create order",
		})
		return
	}

	c.JSON(http.StatusCreated, order.View())
}

// CreateOrderDetailedRequest is the POST /orders/create contract. Unlike
// POST /order it also requires the customer's display name.
type CreateOrderDetailedRequest struct {
	CustomerName    string `json:"customer_name" binding:"required"`
	ProductName     string `json:"product_name" binding:"required"`
	Quantity        int    `json:"quantity" binding:"required,gt=0"`
	Size            string `json:"size" binding:"required"`
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	Notes           string `json:"notes"`
}

// CreateOrderDetailed handles POST /orders/create
func (h *OrderHandler) CreateOrderDetailed(c *gin.Context) {
	var req CreateOrderDetailedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.WithError(err).Warn("Invalid order payload")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "customer_name, product_name, quantity, size and delivery_address are required",
		})
		return
	}

	input := service.CreateOrderInput{
		ProductName:     req.ProductName,
		Quantity:        req.Quantity,
		Size:            req.Size,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
		CustomerName:    req.CustomerName,
	}
	attachBuyer(c, &input)

	order, err := h.service.CreateOrder(c.Request.Context(), input)
	if err != nil {
		h.log.WithError(err).Error("Failed to create order")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create order",
		})
		return
	}

	c.JSON(http.StatusCreated, order.View())
}

// PlaceOrderRequest is the POST /place_order contract. Quantity is
// optional here and defaults to one.
type PlaceOrderRequest struct {
	ProductName     string `json:"product_name" binding:"required"`
	Quantity        int    `json:"quantity"`
	Size            string `json:"size" binding:"required"`
	DeliveryAddress string `json:"delivery_address" binding:"required"`
	Notes           string `json:"notes"`
}

// PlaceOrder handles POST /place_order
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.WithError(err).Warn("Invalid order payload")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "product_name, size and delivery_address are required",
		})
		return
	}

	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	input := service.CreateOrderInput{
		ProductName:     req.ProductName,
		Quantity:        req.Quantity,
		Size:            req.Size,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
	}
	attachBuyer(c, &input)

	order, err := h.service.CreateOrder(c.Request.Context(), input)
	if err != nil {
		h.log.WithError(err).Error("Failed to create order")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create order",
		})
		return
	}

	c.JSON(http.StatusCreated, order.View())
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	views, err := h.service.ListOrders(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("Failed to list orders")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list orders",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

// ListUserOrders handles GET /orders/User/:userId
func (h *OrderHandler) ListUserOrders(c *gin.Context) {
	idStr := c.Param("userId")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user ID",
		})
		return
	}

	views, err := h.service.ListOrdersForBuyer(c.Request.Context(), uint(id))
	if err != nil {
		h.log.WithError(err).Error("Failed to list user orders")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list orders",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

// AcceptOrderRequest is the POST /orders/accept contract
type AcceptOrderRequest struct {
	OrderID           OrderRef `json:"orderId"`
	EstimatedDelivery string   `json:"estimated_delivery"`
}

// AcceptOrder handles POST /orders/accept
func (h *OrderHandler) AcceptOrder(c *gin.Context) {
	var req AcceptOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if req.OrderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Order ID is required",
		})
		return
	}

	id, err := req.OrderID.Uint()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	order, err := h.service.AcceptOrder(c.Request.Context(), id, req.EstimatedDelivery)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		h.log.WithError(err).Error("Failed to accept order")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to accept order",
		})
		return
	}

	c.JSON(http.StatusOK, order.View())
}

// UpdateStatusRequest is the POST /orders/update contract
type UpdateStatusRequest struct {
	OrderID           OrderRef `json:"orderId"`
	Status            string   `json:"status"`
	EstimatedDelivery string   `json:"estimated_delivery"`
}

// UpdateOrderStatus handles POST /orders/update
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if req.OrderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Order ID is required",
		})
		return
	}
	if req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Status is required",
		})
		return
	}

	id, err := req.OrderID.Uint()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order ID",
		})
		return
	}

	order, err := h.service.UpdateOrderStatus(c.Request.Context(), id, req.Status, req.EstimatedDelivery)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		h.log.WithError(err).Error("Failed to update order status")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update order status",
		})
		return
	}

	c.JSON(http.StatusOK, order.View())
}

// ListTracking handles GET /orders/status
func (h *OrderHandler) ListTracking(c *gin.Context) {
	updates, err := h.service.ListAcceptedTracking(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("Failed to list tracking updates")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list tracking updates",
		})
		return
	}

	c.JSON(http.StatusOK, updates)
}

// attachBuyer binds the authenticated buyer to a new order when the
// request carried a valid session token. Anonymous intake stays allowed.
func attachBuyer(c *gin.Context, input *service.CreateOrderInput) {
	claims, err := middleware.ClaimsFromContext(c)
	if err != nil {
		return
	}

	buyerID := claims.UserID
	input.BuyerID = &buyerID
	if input.CustomerName == "" {
		input.CustomerName = claims.Name
	}
}
