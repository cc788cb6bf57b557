package service

import (
	"context"
	"sort"
	"time"

	"github.com/rauf-alluviam/auto-rack-sub000/internal/cache"
	"github.com/rauf-alluviam/auto-rack-sub000/internal/models"
	"github.com/rauf-alluviam/auto-rack-sub000/internal/repository"

	"gorm.io/gorm"
)

// fakeRepo is an in-memory Repository used by the service tests
type fakeRepo struct {
	orders    map[uint]*models.Order
	tracking  []*models.TrackingUpdate
	inventory map[uint]*models.InventoryItem
	users     map[uint]*models.User
	nextID    uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		orders:    make(map[uint]*models.Order),
		inventory: make(map[uint]*models.InventoryItem),
		users:     make(map[uint]*models.User),
		nextID:    1,
	}
}

func (f *fakeRepo) allocID() uint {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeRepo) WithTransaction(ctx context.Context, fn func(ctx context.Context, txRepo repository.Repository) error) error {
	return fn(ctx, f)
}

func (f *fakeRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	order.ID = f.allocID()
	copied := *order
	f.orders[order.ID] = &copied
	return nil
}

func (f *fakeRepo) UpdateOrder(ctx context.Context, order *models.Order) error {
	if _, ok := f.orders[order.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *order
	f.orders[order.ID] = &copied
	return nil
}

func (f *fakeRepo) FindOrderByID(ctx context.Context, id uint) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	if copied.BuyerID != nil {
		copied.Buyer = f.users[*copied.BuyerID]
	}
	return &copied, nil
}

func (f *fakeRepo) sortedOrders() []*models.Order {
	ids := make([]uint, 0, len(f.orders))
	for id := range f.orders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	orders := make([]*models.Order, 0, len(ids))
	for _, id := range ids {
		order, _ := f.FindOrderByID(context.Background(), id)
		orders = append(orders, order)
	}
	return orders
}

func (f *fakeRepo) ListOrders(ctx context.Context) ([]*models.Order, error) {
	return f.sortedOrders(), nil
}

func (f *fakeRepo) ListOrdersByBuyer(ctx context.Context, buyerID uint) ([]*models.Order, error) {
	var orders []*models.Order
	for _, order := range f.sortedOrders() {
		if order.BuyerID != nil && *order.BuyerID == buyerID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (f *fakeRepo) ListOrdersByStates(ctx context.Context, states ...models.OrderState) ([]*models.Order, error) {
	var orders []*models.Order
	for _, order := range f.sortedOrders() {
		for _, state := range states {
			if order.State == state {
				orders = append(orders, order)
				break
			}
		}
	}
	return orders, nil
}

func (f *fakeRepo) ListAcceptedOrdersWithETA(ctx context.Context) ([]*models.Order, error) {
	var orders []*models.Order
	for _, order := range f.sortedOrders() {
		if order.State == models.StateAccepted && (order.ETA != nil || order.EstimateRaw != "") {
			orders = append(orders, order)
		}
	}
	return orders, nil
}

func (f *fakeRepo) ListRecentOrders(ctx context.Context, limit int) ([]*models.Order, error) {
	orders := f.sortedOrders()
	if limit > 0 && len(orders) > limit {
		orders = orders[len(orders)-limit:]
	}
	return orders, nil
}

func (f *fakeRepo) CountOrdersByState(ctx context.Context) (map[models.OrderState]int64, error) {
	counts := make(map[models.OrderState]int64)
	for _, order := range f.orders {
		counts[order.State]++
	}
	return counts, nil
}

func (f *fakeRepo) CreateTrackingUpdate(ctx context.Context, update *models.TrackingUpdate) error {
	update.ID = f.allocID()
	copied := *update
	f.tracking = append(f.tracking, &copied)
	return nil
}

func (f *fakeRepo) ListAcceptedTrackingUpdates(ctx context.Context) ([]*models.TrackingUpdate, error) {
	var updates []*models.TrackingUpdate
	for _, update := range f.tracking {
		if update.Accepted {
			updates = append(updates, update)
		}
	}
	return updates, nil
}

func (f *fakeRepo) CreateInventoryItem(ctx context.Context, item *models.InventoryItem) error {
	item.ID = f.allocID()
	copied := *item
	f.inventory[item.ID] = &copied
	return nil
}

func (f *fakeRepo) FindInventoryItemByID(ctx context.Context, id uint) (*models.InventoryItem, error) {
	item, ok := f.inventory[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeRepo) ListInventoryItems(ctx context.Context) ([]*models.InventoryItem, error) {
	var items []*models.InventoryItem
	for _, item := range f.inventory {
		copied := *item
		items = append(items, &copied)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProductName < items[j].ProductName })
	return items, nil
}

func (f *fakeRepo) AdjustStock(ctx context.Context, id uint, sizeColumn string, delta int) error {
	item, ok := f.inventory[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	switch sizeColumn {
	case "stock_s":
		item.StockS += delta
	case "stock_m":
		item.StockM += delta
	case "stock_l":
		item.StockL += delta
	case "stock_xl":
		item.StockXL += delta
	default:
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (f *fakeRepo) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = f.allocID()
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeRepo) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeRepo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// fakeCache is an in-memory RedisClient used by the dashboard tests
type fakeCache struct {
	values map[string]string
	gets   int
	sets   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	f.gets++
	value, ok := f.values[key]
	if !ok {
		return "", cache.Nil
	}
	return value, nil
}

func (f *fakeCache) Set(ctx context.Context, key, value string, _ time.Duration) error {
	f.sets++
	f.values[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.values, key)
	return nil
}

func (f *fakeCache) Close() error { return nil }
