package service

import (
	"context"
	"time"

	"github.com/rauf-alluviam/auto-rack-sub000/internal/models"
	"github.com/rauf-alluviam/auto-rack-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CreateOrderInput carries the validated fields of an intake request.
// The three creation endpoints bind different request shapes and all
// funnel into this one input.
type CreateOrderInput struct {
	ProductName     string
	Quantity        int
	Size            string
	DeliveryAddress string
	Notes           string
	CustomerName    string
	BuyerID         *uint
}

// CreateOrder writes a new order. Every order starts Pending with no
// delivery estimate, regardless of which endpoint created it.
func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	order := &models.Order{
		ProductName:     input.ProductName,
		Quantity:        input.Quantity,
		Size:            input.Size,
		DeliveryAddress: input.DeliveryAddress,
		Notes:           input.Notes,
		CustomerName:    input.CustomerName,
		BuyerID:         input.BuyerID,
		State:           models.StatePending,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"product":  order.ProductName,
		"quantity": order.Quantity,
	}).Info("Order created")

	return order, nil
}

// ListOrders returns every order as a legacy view
func (s *service) ListOrders(ctx context.Context) ([]models.OrderView, error) {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return nil, err
	}
	return models.Views(orders), nil
}

// ListOrdersForBuyer returns a buyer's orders as legacy views
func (s *service) ListOrdersForBuyer(ctx context.Context, buyerID uint) ([]models.OrderView, error) {
	orders, err := s.repo.ListOrdersByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	return models.Views(orders), nil
}

// AcceptOrder marks an order Accepted, records the delivery estimate, and
// appends a tracking record, all in one transaction.
func (s *service) AcceptOrder(ctx context.Context, orderID uint, estimate string) (*models.Order, error) {
	var accepted *models.Order

	err := s.repo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.Repository) error {
		order, err := txRepo.FindOrderByID(ctx, orderID)
		if err != nil {
			return err
		}

		order.State = models.StateAccepted
		setEstimate(order, estimate)

		if err := txRepo.UpdateOrder(ctx, order); err != nil {
			return err
		}
		if err := txRepo.CreateTrackingUpdate(ctx, trackingFor(order)); err != nil {
			return err
		}

		accepted = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithField("order_id", orderID).Info("Order accepted")
	return accepted, nil
}

// UpdateOrderStatus applies the status-mapping table and stage side
// effects. Unrecognized status strings are stored as-is; no transition
// ordering is enforced. A transition into Accepted appends a tracking
// record like the accept path does.
func (s *service) UpdateOrderStatus(ctx context.Context, orderID uint, status, estimate string) (*models.Order, error) {
	target, cancelled := models.NormalizeStatus(status)

	var updated *models.Order

	err := s.repo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.Repository) error {
		order, err := txRepo.FindOrderByID(ctx, orderID)
		if err != nil {
			return err
		}

		order.ApplyTransition(target, cancelled, time.Now())
		if estimate != "" {
			setEstimate(order, estimate)
		}

		if err := txRepo.UpdateOrder(ctx, order); err != nil {
			return err
		}
		if target == models.StateAccepted {
			if err := txRepo.CreateTrackingUpdate(ctx, trackingFor(order)); err != nil {
				return err
			}
		}

		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"order_id": orderID,
		"status":   string(target),
	}).Info("Order status updated")

	return updated, nil
}

// ListAcceptedTracking lists tracking records flagged accepted
func (s *service) ListAcceptedTracking(ctx context.Context) ([]*models.TrackingUpdate, error) {
	return s.repo.ListAcceptedTrackingUpdates(ctx)
}

// setEstimate parses the wire estimate into the canonical ETA. An
// unparseable value is kept verbatim in the legacy column so nothing the
// client sent is lost.
func setEstimate(order *models.Order, estimate string) {
	if estimate == "" {
		return
	}

	if t, err := time.Parse(models.EstimateLayout, estimate); err == nil {
		order.ETA = &t
		order.EstimateRaw = estimate
		return
	}
	if t, err := time.Parse(time.RFC3339, estimate); err == nil {
		order.ETA = &t
		order.EstimateRaw = estimate
		return
	}

	order.ETA = nil
	order.EstimateRaw = estimate
}

// trackingFor builds the append-only acceptance record for an order
func trackingFor(order *models.Order) *models.TrackingUpdate {
	return &models.TrackingUpdate{
		Reference:         uuid.New().String(),
		OrderID:           order.ID,
		ProductName:       order.ProductName,
		Quantity:          order.Quantity,
		Size:              order.Size,
		DeliveryAddress:   order.DeliveryAddress,
		CustomerName:      order.CustomerName,
		EstimatedDelivery: order.EstimateString(),
		ETA:               order.ETA,
		Accepted:          true,
	}
}
