package repository

import (
	"context"

	"github.com/rauf-alluviam/auto-rack-sub000/internal/database"
	"github.com/rauf-alluviam/auto-rack-sub000/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Repository provides data access methods
type Repository interface {
	// Transaction support
	WithTransaction(ctx context.Context, fn func(ctx context.Context, txRepo Repository) error) error

	// Order operations
	CreateOrder(ctx context.Context, order *models.Order) error
	UpdateOrder(ctx context.Context, order *models.Order) error
	FindOrderByID(ctx context.Context, id uint) (*models.Order, error)
	ListOrders(ctx context.Context) ([]*models.Order, error)
	ListOrdersByBuyer(ctx context.Context, buyerID uint) ([]*models.Order, error)
	ListOrdersByStates(ctx context.Context, states ...models.OrderState) ([]*models.Order, error)
	ListAcceptedOrdersWithETA(ctx context.Context) ([]*models.Order, error)
	ListRecentOrders(ctx context.Context, limit int) ([]*models.Order, error)
	CountOrdersByState(ctx context.Context) (map[models.OrderState]int64, error)

	// TrackingUpdate operations
	CreateTrackingUpdate(ctx context.Context, update *models.TrackingUpdate) error
	ListAcceptedTrackingUpdates(ctx context.Context) ([]*models.TrackingUpdate, error)

	// InventoryItem operations
	CreateInventoryItem(ctx context.Context, item *models.InventoryItem) error
	FindInventoryItemByID(ctx context.Context, id uint) (*models.InventoryItem, error)
	ListInventoryItems(ctx context.Context) ([]*models.InventoryItem, error)
	AdjustStock(ctx context.Context, id uint, sizeColumn string, delta int) error

	// User operations
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id uint) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// repo is an implementation of the Repository interface
type repo struct {
	db database.DB
}

// dbWrapper lets a transaction handle satisfy database.DB
type dbWrapper struct {
	db *gorm.DB
}

func (w *dbWrapper) DB() (*gorm.DB, error) {
	return w.db, nil
}

func (w *dbWrapper) Close() error {
	return nil
}

// NewRepository creates a new repository instance
func NewRepository(db database.DB) Repository {
	return &repo{
		db: db,
	}
}

// WithTransaction executes the given function within a database transaction
func (r *repo) WithTransaction(ctx context.Context, fn func(ctx context.Context, txRepo Repository) error) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	return gormDB.Transaction(func(tx *gorm.DB) error {
		txRepo := &repo{
			db: &dbWrapper{db: tx},
		}
		return fn(ctx, txRepo)
	})
}

// Order operations implementation

func (r *repo) CreateOrder(ctx context.Context, order *models.Order) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	if err := gormDB.WithContext(ctx).Create(order).Error; err != nil {
		return errors.Wrap(err, "failed to create order")
	}
	return nil
}

func (r *repo) UpdateOrder(ctx context.Context, order *models.Order) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	if err := gormDB.WithContext(ctx).Save(order).Error; err != nil {
		return errors.Wrap(err, "failed to update order")
	}
	return nil
}

func (r *repo) FindOrderByID(ctx context.Context, id uint) (*models.Order, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var order models.Order
	if err := gormDB.WithContext(ctx).Preload("Buyer").Preload("Seller").First(&order, id).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find order")
	}

	return &order, nil
}

func (r *repo) ListOrders(ctx context.Context) ([]*models.Order, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var orders []*models.Order
	if err := gormDB.WithContext(ctx).Preload("Buyer").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

func (r *repo) ListOrdersByBuyer(ctx context.Context, buyerID uint) ([]*models.Order, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var orders []*models.Order
	if err := gormDB.WithContext(ctx).Preload("Buyer").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders by buyer")
	}

	return orders, nil
}

func (r *repo) ListOrdersByStates(ctx context.Context, states ...models.OrderState) ([]*models.Order, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var orders []*models.Order
	if err := gormDB.WithContext(ctx).Preload("Buyer").
		Where("state IN ?", states).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders by state")
	}

	return orders, nil
}

func (r *repo) ListAcceptedOrdersWithETA(ctx context.Context) ([]*models.Order, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var orders []*models.Order
	if err := gormDB.WithContext(ctx).Preload("Buyer").
		Where("state = ?", models.StateAccepted).
		Where("eta IS NOT NULL OR estimated_delivery <> ''").
		Order("eta ASC").
		Find(&orders).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list accepted orders")
	}

	return orders, nil
}

func (r *repo) ListRecentOrders(ctx context.Context, limit int) ([]*models.Order, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var orders []*models.Order
	query := gormDB.WithContext(ctx).Preload("Buyer").Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&orders).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list recent orders")
	}

	return orders, nil
}

func (r *repo) CountOrdersByState(ctx context.Context) (map[models.OrderState]int64, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var rows []struct {
		State models.OrderState
		Count int64
	}
	if err := gormDB.WithContext(ctx).Model(&models.Order{}).
		Select("state, count(*) as count").
		Group("state").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count orders by state")
	}

	counts := make(map[models.OrderState]int64, len(rows))
	for _, row := range rows {
		counts[row.State] = row.Count
	}

	return counts, nil
}

// TrackingUpdate operations implementation

func (r *repo) CreateTrackingUpdate(ctx context.Context, update *models.TrackingUpdate) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	if err := gormDB.WithContext(ctx).Create(update).Error; err != nil {
		return errors.Wrap(err, "failed to create tracking update")
	}
	return nil
}

func (r *repo) ListAcceptedTrackingUpdates(ctx context.Context) ([]*models.TrackingUpdate, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var updates []*models.TrackingUpdate
	if err := gormDB.WithContext(ctx).
		Where("accepted = ?", true).
		Order("created_at DESC").
		Find(&updates).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list tracking updates")
	}

	return updates, nil
}

// InventoryItem operations implementation

func (r *repo) CreateInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	if err := gormDB.WithContext(ctx).Create(item).Error; err != nil {
		return errors.Wrap(err, "failed to create inventory item")
	}
	return nil
}

func (r *repo) FindInventoryItemByID(ctx context.Context, id uint) (*models.InventoryItem, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var item models.InventoryItem
	if err := gormDB.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find inventory item")
	}

	return &item, nil
}

func (r *repo) ListInventoryItems(ctx context.Context) ([]*models.InventoryItem, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var items []*models.InventoryItem
	if err := gormDB.WithContext(ctx).Order("product_name ASC").Find(&items).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list inventory items")
	}

	return items, nil
}

// AdjustStock applies a single atomic increment to one size counter.
// sizeColumn must come from models.SizeColumns; callers validate the
// size code before reaching this method.
func (r *repo) AdjustStock(ctx context.Context, id uint, sizeColumn string, delta int) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	result := gormDB.WithContext(ctx).Model(&models.InventoryItem{}).
		Where("id = ?", id).
		UpdateColumn(sizeColumn, gorm.Expr(sizeColumn+" + ?", delta))
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to adjust stock")
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// User operations implementation

func (r *repo) CreateUser(ctx context.Context, user *models.User) error {
	gormDB, err := r.db.DB()
	if err != nil {
		return err
	}

	if err := gormDB.WithContext(ctx).Create(user).Error; err != nil {
		return errors.Wrap(err, "failed to create user")
	}
	return nil
}

func (r *repo) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := gormDB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	return &user, nil
}

func (r *repo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	gormDB, err := r.db.DB()
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := gormDB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return &user, nil
}
