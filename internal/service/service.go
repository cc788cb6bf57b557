package service

import (
	"context"
	"errors"
	"time"

	"github.com/rauf-alluviam/auto-rack-sub000/internal/cache"
	"github.com/rauf-alluviam/auto-rack-sub000/internal/models"
	"github.com/rauf-alluviam/auto-rack-sub000/internal/repository"

	"github.com/sirupsen/logrus"
)

// Sentinel errors mapped to HTTP statuses by the handlers
var (
	ErrInvalidSize = errors.New("invalid size code")
)

// Service defines the business logic operations
type Service interface {
	// Order intake and listing
	CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.OrderView, error)
	ListOrdersForBuyer(ctx context.Context, buyerID uint) ([]models.OrderView, error)

	// Acceptance and status progression
	AcceptOrder(ctx context.Context, orderID uint, estimate string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uint, status, estimate string) (*models.Order, error)
	ListAcceptedTracking(ctx context.Context) ([]*models.TrackingUpdate, error)

	// Seller aggregation
	Dashboard(ctx context.Context) (*models.SellerDashboard, error)
	RefreshDashboard(ctx context.Context) error
	OrderHistory(ctx context.Context) ([]models.OrderSummary, error)
	StatusBoard(ctx context.Context) ([]models.OrderSummary, error)

	// Inventory
	CreateInventoryItem(ctx context.Context, productName string) (*models.InventoryItem, error)
	ListInventory(ctx context.Context) ([]*models.InventoryItem, error)
	AdjustStock(ctx context.Context, productID uint, size string, delta int) (*models.InventoryItem, error)

	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
}

// service is an implementation of the Service interface
type service struct {
	repo  repository.Repository
	cache cache.RedisClient
	log   *logrus.Logger

	dashboardTTL time.Duration
	recentOrders int
}

// ServiceConfig holds the configuration for the service
type ServiceConfig struct {
	Repository       repository.Repository
	Cache            cache.RedisClient
	Logger           *logrus.Logger
	DashboardTTL     time.Duration
	RecentOrderCount int
}

// NewService creates a new service instance
func NewService(cfg ServiceConfig) (Service, error) {
	if cfg.Repository == nil {
		return nil, errors.New("repository is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.DashboardTTL <= 0 {
		cfg.DashboardTTL = 30 * time.Second
	}
	if cfg.RecentOrderCount <= 0 {
		cfg.RecentOrderCount = 20
	}

	return &service{
		repo:         cfg.Repository,
		cache:        cfg.Cache,
		log:          cfg.Logger,
		dashboardTTL: cfg.DashboardTTL,
		recentOrders: cfg.RecentOrderCount,
	}, nil
}
