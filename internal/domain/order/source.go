package order

import "context"

// Source fetches canonical orders for a single marketplace. One
// implementation exists per data-source mode (mock, relational, remote)
// and is selected once at startup.
type Source interface {
	// FetchPage returns a filtered, paginated result for one marketplace.
	// The query must already be normalized.
	FetchPage(ctx context.Context, slug string, q Query) (*Page, error)

	// FetchAll returns every order for one marketplace, untagged and
	// unpaginated, for the engine to merge across sources.
	FetchAll(ctx context.Context, slug string) ([]Order, error)
}

// UnifiedSource is implemented by sources that can answer a unified
// (cross-marketplace) query in a single filtered, sorted, paginated
// fetch. The relational source implements it so that unified-scope
// pagination happens in the database instead of re-paginating
// per-source pages.
type UnifiedSource interface {
	FetchUnifiedPage(ctx context.Context, q Query) (*Page, error)
}

// StatsSource is implemented by sources that can derive statistics with
// dedicated aggregate queries instead of a full in-memory scan.
type StatsSource interface {
	CountByMarketplace(ctx context.Context) (map[string]int, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
	RecentOrders(ctx context.Context, n int) ([]Order, error)
}
