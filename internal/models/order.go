package models

import (
	"time"
)

// OrderState is the canonical acceptance/fulfillment state of an order.
// It is the single source of truth for order progress; the legacy
// is_accepted/status/order_status fields exist only in OrderView.
type OrderState string

const (
	StatePending        OrderState = "Pending"
	StateAccepted       OrderState = "Accepted"
	StateRejected       OrderState = "Rejected"
	StateProcessing     OrderState = "Processing"
	StateQualityCheck   OrderState = "Quality Check"
	StatePackaging      OrderState = "Packaging"
	StateShipped        OrderState = "Shipped"
	StateOutForDelivery OrderState = "Out for Delivery"
	StateDelivered      OrderState = "Delivered"
)

// Order model represents a buyer's order for a rack or crate
type Order struct {
	Model
	ProductName     string     `json:"product_name" gorm:"Column:product_name"`
	Quantity        int        `json:"quantity" gorm:"Column:quantity"`
	Size            string     `json:"size" gorm:"Column:size"`
	DeliveryAddress string     `json:"delivery_address" gorm:"Column:delivery_address"`
	Notes           string     `json:"notes" gorm:"Column:notes;type:text"`
	CustomerName    string     `json:"customer_name" gorm:"Column:customer_name"`
	State           OrderState `json:"state" gorm:"Column:state;index"`
	ETA             *time.Time `json:"eta" gorm:"Column:eta"`
	EstimateRaw     string     `json:"-" gorm:"Column:estimated_delivery"`
	RejectionReason string     `json:"rejection_reason" gorm:"Column:rejection_reason"`
	ProcessingAt    *time.Time `json:"processing_at" gorm:"Column:processing_at"`
	ShippedAt       *time.Time `json:"shipped_at" gorm:"Column:shipped_at"`
	DeliveredAt     *time.Time `json:"delivered_at" gorm:"Column:delivered_at"`
	RejectedAt      *time.Time `json:"rejected_at" gorm:"Column:rejected_at"`
	Buyer           *User      `json:"buyer,omitempty" gorm:"foreignKey:BuyerID"`
	BuyerID         *uint      `json:"buyer_id" gorm:"Column:buyer_id"`
	Seller          *User      `json:"seller,omitempty" gorm:"foreignKey:SellerID"`
	SellerID        *uint      `json:"seller_id" gorm:"Column:seller_id"`
}

// TrackingUpdate is an append-only record written when an order transitions
// to Accepted. It duplicates several order fields for the status listing and
// is never consulted for later state derivation.
type TrackingUpdate struct {
	Model
	Reference         string     `json:"reference" gorm:"uniqueIndex;Column:reference"`
	Order             *Order     `json:"-" gorm:"foreignKey:OrderID"`
	OrderID           uint       `json:"order_id" gorm:"Column:order_id;index"`
	ProductName       string     `json:"product_name" gorm:"Column:product_name"`
	Quantity          int        `json:"quantity" gorm:"Column:quantity"`
	Size              string     `json:"size" gorm:"Column:size"`
	DeliveryAddress   string     `json:"delivery_address" gorm:"Column:delivery_address"`
	CustomerName      string     `json:"customer_name" gorm:"Column:customer_name"`
	EstimatedDelivery string     `json:"estimated_delivery" gorm:"Column:estimated_delivery"`
	ETA               *time.Time `json:"eta" gorm:"Column:eta"`
	Accepted          bool       `json:"accepted" gorm:"Column:accepted;index"`
}

// EstimateLayout is the wire format for delivery estimates
const EstimateLayout = "2006-01-02"

// OrderView is the serialization boundary for orders. The legacy clients
// read progress from is_accepted, status, and order_status; all three are
// derived from the canonical state so they can no longer disagree.
type OrderView struct {
	ID                uint       `json:"id"`
	ProductName       string     `json:"product_name"`
	Quantity          int        `json:"quantity"`
	Size              string     `json:"size"`
	DeliveryAddress   string     `json:"delivery_address"`
	Notes             string     `json:"notes,omitempty"`
	CustomerName      string     `json:"customer_name,omitempty"`
	IsAccepted        string     `json:"is_accepted"`
	Status            string     `json:"status"`
	OrderStatus       string     `json:"order_status"`
	EstimatedDelivery string     `json:"estimated_delivery"`
	ETA               *time.Time `json:"ETA,omitempty"`
	RejectionReason   string     `json:"rejection_reason,omitempty"`
	ProcessingAt      *time.Time `json:"processing_at,omitempty"`
	ShippedAt         *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
	RejectedAt        *time.Time `json:"rejected_at,omitempty"`
	BuyerID           *uint      `json:"buyer_id,omitempty"`
	SellerID          *uint      `json:"seller_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// EstimateString renders the canonical estimate for legacy readers:
// formatted ETA first, then the raw legacy string, then empty.
func (o *Order) EstimateString() string {
	if o.ETA != nil {
		return o.ETA.Format(EstimateLayout)
	}
	return o.EstimateRaw
}

// View projects an order onto the legacy wire shape
func (o *Order) View() OrderView {
	state := string(o.State)
	return OrderView{
		ID:                o.ID,
		ProductName:       o.ProductName,
		Quantity:          o.Quantity,
		Size:              o.Size,
		DeliveryAddress:   o.DeliveryAddress,
		Notes:             o.Notes,
		CustomerName:      o.CustomerName,
		IsAccepted:        state,
		Status:            state,
		OrderStatus:       state,
		EstimatedDelivery: o.EstimateString(),
		ETA:               o.ETA,
		RejectionReason:   o.RejectionReason,
		ProcessingAt:      o.ProcessingAt,
		ShippedAt:         o.ShippedAt,
		DeliveredAt:       o.DeliveredAt,
		RejectedAt:        o.RejectedAt,
		BuyerID:           o.BuyerID,
		SellerID:          o.SellerID,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

// Views projects a slice of orders
func Views(orders []*Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, o.View())
	}
	return views
}

// OrderSummary is the display projection used by the seller dashboard,
// history, and status board.
type OrderSummary struct {
	OrderID           uint   `json:"order_id"`
	CustomerName      string `json:"customer_name"`
	ProductName       string `json:"product_name"`
	Quantity          int    `json:"quantity"`
	Size              string `json:"size"`
	Status            string `json:"status"`
	EstimatedDelivery string `json:"estimated_delivery"`
	DeliveryAddress   string `json:"delivery_address"`
}

// Summary reshapes an order for seller-facing views. The fallback chains
// match the original clients: customer_name falls back to the buyer's
// account name and then the literal "Customer"; product_name falls back
// to the size code.
func (o *Order) Summary() OrderSummary {
	customer := o.CustomerName
	if customer == "" && o.Buyer != nil {
		customer = o.Buyer.Name
	}
	if customer == "" {
		customer = "Customer"
	}

	product := o.ProductName
	if product == "" {
		product = o.Size
	}

	return OrderSummary{
		OrderID:           o.ID,
		CustomerName:      customer,
		ProductName:       product,
		Quantity:          o.Quantity,
		Size:              o.Size,
		Status:            string(o.State),
		EstimatedDelivery: o.EstimateString(),
		DeliveryAddress:   o.DeliveryAddress,
	}
}
