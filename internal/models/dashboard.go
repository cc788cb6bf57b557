package models

import "time"

// SellerDashboard aggregates the order collection for the seller landing
// page. It is built from the store and cached as JSON in Redis.
type SellerDashboard struct {
	GeneratedAt        time.Time        `json:"generated_at"`
	TotalOrders        int64            `json:"total_orders"`
	AwaitingAcceptance int64            `json:"awaiting_acceptance"`
	StateCounts        map[string]int64 `json:"state_counts"`
	RecentOrders       []OrderSummary   `json:"recent_orders"`
}
