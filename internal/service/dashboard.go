package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rauf-alluviam/auto-rack-sub000/internal/cache"
	"github.com/rauf-alluviam/auto-rack-sub000/internal/models"
)

// dashboardCacheKey is the Redis key for the seller dashboard snapshot
const dashboardCacheKey = "seller:dashboard"

// Dashboard returns the seller dashboard, read-through cached in Redis.
// A cache failure falls back to the store; the dashboard is never
// unavailable just because Redis is.
func (s *service) Dashboard(ctx context.Context) (*models.SellerDashboard, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, dashboardCacheKey); err == nil {
			var cached models.SellerDashboard
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			} else {
				s.log.WithError(err).Warn("Discarding unreadable dashboard cache entry")
			}
		} else if err != cache.Nil {
			s.log.WithError(err).Warn("Dashboard cache read failed")
		}
	}

	dashboard, err := s.buildDashboard(ctx)
	if err != nil {
		return nil, err
	}

	s.storeDashboard(ctx, dashboard)
	return dashboard, nil
}

// RefreshDashboard rebuilds the dashboard snapshot and overwrites the
// cache entry. The worker command runs this on a schedule so seller
// page loads mostly hit warm cache.
func (s *service) RefreshDashboard(ctx context.Context) error {
	dashboard, err := s.buildDashboard(ctx)
	if err != nil {
		return err
	}

	s.storeDashboard(ctx, dashboard)
	return nil
}

func (s *service) buildDashboard(ctx context.Context) (*models.SellerDashboard, error) {
	counts, err := s.repo.CountOrdersByState(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.ListRecentOrders(ctx, s.recentOrders)
	if err != nil {
		return nil, err
	}

	stateCounts := make(map[string]int64, len(counts))
	var total int64
	for state, count := range counts {
		stateCounts[string(state)] = count
		total += count
	}

	summaries := make([]models.OrderSummary, 0, len(recent))
	for _, order := range recent {
		summaries = append(summaries, order.Summary())
	}

	return &models.SellerDashboard{
		GeneratedAt:        time.Now(),
		TotalOrders:        total,
		AwaitingAcceptance: counts[models.StatePending],
		StateCounts:        stateCounts,
		RecentOrders:       summaries,
	}, nil
}

func (s *service) storeDashboard(ctx context.Context, dashboard *models.SellerDashboard) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(dashboard)
	if err != nil {
		s.log.WithError(err).Warn("Failed to marshal dashboard for cache")
		return
	}
	if err := s.cache.Set(ctx, dashboardCacheKey, string(raw), s.dashboardTTL); err != nil {
		s.log.WithError(err).Warn("Dashboard cache write failed")
	}
}

// OrderHistory lists orders a seller considers settled: accepted or
// delivered. Orders mid-pipeline (processing, shipped) are excluded,
// matching the original history endpoint.
func (s *service) OrderHistory(ctx context.Context) ([]models.OrderSummary, error) {
	orders, err := s.repo.ListOrdersByStates(ctx, models.StateAccepted, models.StateDelivered)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.OrderSummary, 0, len(orders))
	for _, order := range orders {
		summaries = append(summaries, order.Summary())
	}
	return summaries, nil
}

// StatusBoard lists accepted orders that carry a delivery estimate
func (s *service) StatusBoard(ctx context.Context) ([]models.OrderSummary, error) {
	orders, err := s.repo.ListAcceptedOrdersWithETA(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.OrderSummary, 0, len(orders))
	for _, order := range orders {
		summaries = append(summaries, order.Summary())
	}
	return summaries, nil
}
