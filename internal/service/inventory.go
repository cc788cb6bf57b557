package service

import (
	"context"

	"github.com/rauf-alluviam/auto-rack-sub000/internal/models"

	"github.com/sirupsen/logrus"
)

// CreateInventoryItem adds a product to the inventory with zeroed counters
func (s *service) CreateInventoryItem(ctx context.Context, productName string) (*models.InventoryItem, error) {
	item := &models.InventoryItem{
		ProductName: productName,
	}
	if err := s.repo.CreateInventoryItem(ctx, item); err != nil {
		return nil, err
	}

	s.log.WithField("product", productName).Info("Inventory item created")
	return item, nil
}

// ListInventory returns the full inventory collection
func (s *service) ListInventory(ctx context.Context) ([]*models.InventoryItem, error) {
	return s.repo.ListInventoryItems(ctx)
}

// AdjustStock applies a signed delta to one size counter and returns the
// item after the write. The increment itself is a single atomic update;
// no lower bound is applied, so a large negative delta can drive the
// counter below zero (the web client disables the control instead).
func (s *service) AdjustStock(ctx context.Context, productID uint, size string, delta int) (*models.InventoryItem, error) {
	column, ok := models.SizeColumns[size]
	if !ok {
		return nil, ErrInvalidSize
	}

	if err := s.repo.AdjustStock(ctx, productID, column, delta); err != nil {
		return nil, err
	}

	item, err := s.repo.FindInventoryItemByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"product_id": productID,
		"size":       size,
		"delta":      delta,
		"stock":      item.Stock(size),
	}).Info("Stock adjusted")

	return item, nil
}
