package orders

import (
	"context"
	"sync"
	"time"

	"github.com/orderhub/backend/internal/domain/marketplace"
	"github.com/orderhub/backend/internal/domain/order"
	"github.com/orderhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ServiceConfig holds the tunables of the aggregation engine
type ServiceConfig struct {
	Limits        order.Limits
	SourceTimeout time.Duration // per-marketplace fetch budget in unified mode
	StatsScanCap  int           // safety cap for the in-memory statistics scan
}

// DefaultServiceConfig returns the standard engine configuration
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Limits:        order.DefaultLimits(),
		SourceTimeout: 10 * time.Second,
		StatsScanCap:  10000,
	}
}

// Service is the aggregation engine: it orchestrates the active source
// across enabled marketplaces, merges, filters, sorts, paginates, and
// derives statistics. It holds no per-request state and no caches.
type Service struct {
	registry *marketplace.Registry
	source   order.Source
	cfg      ServiceConfig
	log      *zap.Logger
}

// NewService creates the aggregation engine. The source is the
// data-source strategy selected at startup.
func NewService(registry *marketplace.Registry, source order.Source, cfg ServiceConfig, log *zap.Logger) *Service {
	if cfg.Limits.DefaultLimit <= 0 || cfg.Limits.MaxLimit <= 0 {
		cfg.Limits = order.DefaultLimits()
	}
	if cfg.SourceTimeout <= 0 {
		cfg.SourceTimeout = 10 * time.Second
	}
	if cfg.StatsScanCap <= 0 {
		cfg.StatsScanCap = 10000
	}
	return &Service{
		registry: registry,
		source:   source,
		cfg:      cfg,
		log:      log,
	}
}

// GetOrders returns one marketplace's orders, filtered and paginated.
// Unknown slugs and disabled marketplaces are caller errors; a source
// failure propagates because there is nothing to degrade to.
func (s *Service) GetOrders(ctx context.Context, slug string, q order.Query) (*OrdersResult, error) {
	desc, ok := s.registry.Get(slug)
	if !ok {
		return nil, shared.MarketplaceNotConfigured(slug)
	}
	if !desc.Enabled {
		return nil, shared.MarketplaceDisabled(slug)
	}

	q = q.Normalize(s.cfg.Limits)
	page, err := s.source.FetchPage(ctx, slug, q)
	if err != nil {
		return nil, err
	}

	return &OrdersResult{
		Page:        page,
		Marketplace: MarketplaceMeta{Name: desc.Name, Icon: desc.Icon, Color: desc.Color},
	}, nil
}

// GetAllOrders runs the unified search across all enabled marketplaces.
// When the active source can answer unified queries itself (the
// relational source), filtering, sorting and pagination are pushed down
// to avoid re-paginating already-paginated per-source sets. Otherwise
// the engine merges in memory.
func (s *Service) GetAllOrders(ctx context.Context, q order.Query) (*order.Page, error) {
	q = q.Normalize(s.cfg.Limits)

	if unified, ok := s.source.(order.UnifiedSource); ok {
		return unified.FetchUnifiedPage(ctx, q)
	}

	merged := s.fetchMerged(ctx, q.Search)
	return order.Paginate(merged, q.Page, q.Limit), nil
}

// GetStatistics derives the on-demand statistics snapshot, preferring
// dedicated aggregate queries when the source offers them
func (s *Service) GetStatistics(ctx context.Context) (*StatisticsSnapshot, error) {
	if agg, ok := s.source.(order.StatsSource); ok {
		return s.statisticsFromAggregates(ctx, agg)
	}

	merged := s.fetchMerged(ctx, "")
	if len(merged) > s.cfg.StatsScanCap {
		s.log.Warn("statistics scan truncated at cap",
			zap.Int("cap", s.cfg.StatsScanCap),
			zap.Int("merged", len(merged)),
		)
		merged = merged[:s.cfg.StatsScanCap]
	}
	return buildSnapshot(merged), nil
}

// ListAvailableMarketplaces returns the enabled marketplaces' public
// listing entries in enumeration order
func (s *Service) ListAvailableMarketplaces() []MarketplaceSummary {
	enabled := s.registry.ListEnabled()
	out := make([]MarketplaceSummary, 0, len(enabled))
	for _, d := range enabled {
		out = append(out, MarketplaceSummary{
			ID:            d.Slug,
			Name:          d.Name,
			Icon:          d.Icon,
			Color:         d.Color,
			MockEnabled:   d.MockEnabled,
			APIConfigured: d.APIConfigured(),
		})
	}
	return out
}

// GetMarketplaceConfig returns the sanitized configuration for one
// marketplace
func (s *Service) GetMarketplaceConfig(slug string) (*MarketplaceConfigView, error) {
	desc, ok := s.registry.Get(slug)
	if !ok {
		return nil, shared.MarketplaceNotConfigured(slug)
	}
	return &MarketplaceConfigView{
		Name:          desc.Name,
		Icon:          desc.Icon,
		Color:         desc.Color,
		Enabled:       desc.Enabled,
		MockEnabled:   desc.MockEnabled,
		APIConfigured: desc.APIConfigured(),
		RequiresAuth:  desc.RequiresAuth,
	}, nil
}

// ValidateCredentials checks presence (not correctness) of the
// credential fields required by the marketplace's auth type
func (s *Service) ValidateCredentials(slug string) (*CredentialCheckResult, error) {
	desc, ok := s.registry.Get(slug)
	if !ok {
		return nil, shared.MarketplaceNotConfigured(slug)
	}
	check := desc.ValidateCredentials()
	return &CredentialCheckResult{
		Marketplace: slug,
		Valid:       check.Valid,
		Error:       check.Error,
	}, nil
}

// fetchMerged fetches every enabled marketplace concurrently, tags each
// order with its marketplace identity, merges in enumeration order,
// filters, and sorts by orderId. A failing marketplace is logged and
// skipped; it never aborts the aggregation. Results are slot-indexed so
// completion order cannot affect the merged order.
func (s *Service) fetchMerged(ctx context.Context, search string) []order.Order {
	enabled := s.registry.ListEnabled()
	results := make([][]order.Order, len(enabled))

	var wg sync.WaitGroup
	for i, desc := range enabled {
		wg.Add(1)
		go func(i int, desc *marketplace.Descriptor) {
			defer wg.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, s.cfg.SourceTimeout)
			defer cancel()

			fetched, err := s.source.FetchAll(fetchCtx, desc.Slug)
			if err != nil {
				s.log.Warn("skipping marketplace after fetch failure",
					zap.String("marketplace", desc.Slug),
					zap.Error(err),
				)
				return
			}

			info := desc.Info()
			tagged := make([]order.Order, len(fetched))
			for j, o := range fetched {
				tagged[j] = o.Tag(desc.Slug, info)
			}
			results[i] = tagged
		}(i, desc)
	}
	wg.Wait()

	var merged []order.Order
	for _, batch := range results {
		merged = append(merged, batch...)
	}

	merged = order.Filter(merged, search)
	order.SortByOrderID(merged)
	return merged
}

// statisticsFromAggregates builds the snapshot from dedicated aggregate
// queries (relational path)
func (s *Service) statisticsFromAggregates(ctx context.Context, agg order.StatsSource) (*StatisticsSnapshot, error) {
	byMarketplace, err := agg.CountByMarketplace(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := agg.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := agg.RecentOrders(ctx, 5)
	if err != nil {
		return nil, err
	}

	snapshot := &StatisticsSnapshot{
		ByMarketplace: byMarketplace,
		ByStatus:      make(map[string]int, len(byStatus)),
		RecentOrders:  recent,
	}
	for _, count := range byMarketplace {
		snapshot.Total += count
	}
	for status, count := range byStatus {
		snapshot.ByStatus[status.String()] = count
		switch {
		case status == order.StatusDelivered:
			snapshot.Summary.Delivered += count
		case status == order.StatusShipped:
			snapshot.Summary.Shipped += count
		case status.IsPending():
			snapshot.Summary.Pending += count
		}
	}
	snapshot.Summary.Total = snapshot.Total
	return snapshot, nil
}

// buildSnapshot scans a merged, sorted set and derives the snapshot
// (in-memory path)
func buildSnapshot(merged []order.Order) *StatisticsSnapshot {
	snapshot := &StatisticsSnapshot{
		Total:         len(merged),
		ByMarketplace: make(map[string]int),
		ByStatus:      make(map[string]int),
	}

	for _, o := range merged {
		snapshot.ByMarketplace[o.Marketplace]++
		snapshot.ByStatus[o.Status.String()]++
	}

	snapshot.Summary = StatsSummary{
		Total:     snapshot.Total,
		Delivered: snapshot.ByStatus[order.StatusDelivered.String()],
		Shipped:   snapshot.ByStatus[order.StatusShipped.String()],
		Pending: snapshot.ByStatus[order.StatusReadyToShip.String()] +
			snapshot.ByStatus[order.StatusWaitingPickup.String()],
	}

	recent := merged
	if len(recent) > 5 {
		recent = recent[:5]
	}
	snapshot.RecentOrders = append([]order.Order{}, recent...)
	return snapshot
}
