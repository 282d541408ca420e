package orders

import (
	"github.com/orderhub/backend/internal/domain/order"
)

// MarketplaceMeta is the display metadata block attached to
// single-marketplace results
type MarketplaceMeta struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// OrdersResult is a paginated single-marketplace result with the
// marketplace's display metadata attached
type OrdersResult struct {
	Page        *order.Page
	Marketplace MarketplaceMeta
}

// StatsSummary condenses the status distribution. Pending counts
// READY_TO_SHIP plus WAITING_PICKUP.
type StatsSummary struct {
	Total     int `json:"total"`
	Delivered int `json:"delivered"`
	Shipped   int `json:"shipped"`
	Pending   int `json:"pending"`
}

// StatisticsSnapshot is computed on demand and never persisted.
// Invariant: sum(ByMarketplace) == Total == sum(ByStatus).
type StatisticsSnapshot struct {
	Total         int            `json:"total"`
	ByMarketplace map[string]int `json:"byMarketplace"`
	ByStatus      map[string]int `json:"byStatus"`
	Summary       StatsSummary   `json:"summary"`
	RecentOrders  []order.Order  `json:"recentOrders"`
}

// MarketplaceSummary is the public listing entry for one marketplace
type MarketplaceSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Icon          string `json:"icon"`
	Color         string `json:"color"`
	MockEnabled   bool   `json:"mockEnabled"`
	APIConfigured bool   `json:"apiConfigured"`
}

// MarketplaceConfigView is the sanitized per-marketplace configuration
// returned by the config endpoint; credential material never leaves the
// process
type MarketplaceConfigView struct {
	Name          string `json:"name"`
	Icon          string `json:"icon"`
	Color         string `json:"color"`
	Enabled       bool   `json:"enabled"`
	MockEnabled   bool   `json:"mockEnabled"`
	APIConfigured bool   `json:"apiConfigured"`
	RequiresAuth  bool   `json:"requiresAuth"`
}

// CredentialCheckResult reports a presence-only credential validation
type CredentialCheckResult struct {
	Marketplace string `json:"marketplace"`
	Valid       bool   `json:"valid"`
	Error       string `json:"error,omitempty"`
}
