package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rauf-alluviam/auto-rack-sub000/api/routes"
	"github.com/rauf-alluviam/auto-rack-sub000/config"
	"github.com/rauf-alluviam/auto-rack-sub000/internal/auth"
	"github.com/rauf-alluviam/auto-rack-sub000/internal/models"
	"github.com/rauf-alluviam/auto-rack-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubService is an in-memory Service implementation backing the handler
// tests. It mirrors the store-backed semantics closely enough to exercise
// every handler path without a database.
type stubService struct {
	orders   map[uint]*models.Order
	tracking []*models.TrackingUpdate
	items    map[uint]*models.InventoryItem
	users    map[uint]*models.User
	nextID   uint
}

func newStubService() *stubService {
	return &stubService{
		orders: make(map[uint]*models.Order),
		items:  make(map[uint]*models.InventoryItem),
		users:  make(map[uint]*models.User),
		nextID: 1,
	}
}

func (s *stubService) allocID() uint {
	id := s.nextID
	s.nextID++
	return id
}

func (s *stubService) CreateOrder(ctx context.Context, input service.CreateOrderInput) (*models.Order, error) {
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
	order.ID = s.allocID()
	s.orders[order.ID] = order
	return order, nil
}

func (s *stubService) ListOrders(ctx context.Context) ([]models.OrderView, error) {
	views := make([]models.OrderView, 0, len(s.orders))
	for _, order := range s.orders {
		views = append(views, order.View())
	}
	return views, nil
}

func (s *stubService) ListOrdersForBuyer(ctx context.Context, buyerID uint) ([]models.OrderView, error) {
	views := make([]models.OrderView, 0)
	for _, order := range s.orders {
		if order.BuyerID != nil && *order.BuyerID == buyerID {
			views = append(views, order.View())
		}
	}
	return views, nil
}

func (s *stubService) AcceptOrder(ctx context.Context, orderID uint, estimate string) (*models.Order, error) {
	order, ok := s.orders[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	order.State = models.StateAccepted
	if estimate != "" {
		if t, err := time.Parse(models.EstimateLayout, estimate); err == nil {
			order.ETA = &t
		}
		order.EstimateRaw = estimate
	}

	s.tracking = append(s.tracking, &models.TrackingUpdate{
		OrderID:           order.ID,
		ProductName:       order.ProductName,
		EstimatedDelivery: order.EstimateString(),
		Accepted:          true,
	})
	return order, nil
}

func (s *stubService) UpdateOrderStatus(ctx context.Context, orderID uint, status, estimate string) (*models.Order, error) {
	order, ok := s.orders[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	target, cancelled := models.NormalizeStatus(status)
	order.ApplyTransition(target, cancelled, time.Now())
	if estimate != "" {
		order.EstimateRaw = estimate
	}
	return order, nil
}

func (s *stubService) ListAcceptedTracking(ctx context.Context) ([]*models.TrackingUpdate, error) {
	return s.tracking, nil
}

func (s *stubService) Dashboard(ctx context.Context) (*models.SellerDashboard, error) {
	counts := make(map[string]int64)
	var pending int64
	for _, order := range s.orders {
		counts[string(order.State)]++
		if order.State == models.StatePending {
			pending++
		}
	}
	return &models.SellerDashboard{
		GeneratedAt:        time.Now(),
		TotalOrders:        int64(len(s.orders)),
		AwaitingAcceptance: pending,
		StateCounts:        counts,
	}, nil
}

func (s *stubService) RefreshDashboard(ctx context.Context) error { return nil }

func (s *stubService) OrderHistory(ctx context.Context) ([]models.OrderSummary, error) {
	summaries := make([]models.OrderSummary, 0)
	for _, order := range s.orders {
		if order.State == models.StateAccepted || order.State == models.StateDelivered {
			summaries = append(summaries, order.Summary())
		}
	}
	return summaries, nil
}

func (s *stubService) StatusBoard(ctx context.Context) ([]models.OrderSummary, error) {
	summaries := make([]models.OrderSummary, 0)
	for _, order := range s.orders {
		if order.State == models.StateAccepted && order.EstimateString() != "" {
			summaries = append(summaries, order.Summary())
		}
	}
	return summaries, nil
}

func (s *stubService) CreateInventoryItem(ctx context.Context, productName string) (*models.InventoryItem, error) {
	item := &models.InventoryItem{ProductName: productName}
	item.ID = s.allocID()
	s.items[item.ID] = item
	return item, nil
}

func (s *stubService) ListInventory(ctx context.Context) ([]*models.InventoryItem, error) {
	items := make([]*models.InventoryItem, 0, len(s.items))
	for _, item := range s.items {
		items = append(items, item)
	}
	return items, nil
}

func (s *stubService) AdjustStock(ctx context.Context, productID uint, size string, delta int) (*models.InventoryItem, error) {
	if !models.ValidSize(size) {
		return nil, service.ErrInvalidSize
	}
	item, ok := s.items[productID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	switch size {
	case models.SizeS:
		item.StockS += delta
	case models.SizeM:
		item.StockM += delta
	case models.SizeL:
		item.StockL += delta
	case models.SizeXL:
		item.StockXL += delta
	}
	return item, nil
}

func (s *stubService) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = s.allocID()
	s.users[user.ID] = user
	return nil
}

func (s *stubService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

// newTestRouter wires the stub service through the real routes and
// middleware so requests exercise the same stack the server runs.
func newTestRouter(t *testing.T, svc service.Service) (*gin.Engine, *auth.TokenManager) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	tm, err := auth.NewTokenManager(config.AuthConfig{Secret: "test-signing-secret"})
	require.NoError(t, err)

	r := gin.New()
	routes.SetupRoutes(r, svc, tm, log)
	return r, tm
}

func issueToken(t *testing.T, tm *auth.TokenManager, userID uint, name string, role models.Role) string {
	t.Helper()

	token, err := tm.Issue(userID, name, role)
	require.NoError(t, err)
	return token
}

func doJSON(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
