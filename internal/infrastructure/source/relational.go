package source

import (
	"context"
	"strings"

	"github.com/orderhub/backend/internal/domain/marketplace"
	"github.com/orderhub/backend/internal/domain/order"
	"github.com/orderhub/backend/internal/domain/shared"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// addressExpr flattens the normalized address row into the canonical
// single-line form. COALESCE keeps missing parts as empty strings so
// the rendered address never contains NULL.
const addressExpr = "COALESCE(a.street,'') || ', ' || COALESCE(a.number,'') || ' - ' || " +
	"COALESCE(a.neighborhood,'') || ' - ' || COALESCE(a.city,'') || ', ' || COALESCE(a.state,'')"

// searchCond is the SQL equivalent of the in-memory substring filter:
// the same five fields, lowered on both sides. LOWER+LIKE instead of
// ILIKE keeps the predicate portable across postgres and sqlite.
const searchCond = "(LOWER(o.original_order_id) LIKE ? OR LOWER(COALESCE(b.name,'')) LIKE ? OR " +
	"LOWER(COALESCE(o.product,'')) LIKE ? OR LOWER(" + addressExpr + ") LIKE ? OR LOWER(o.status) LIKE ?)"

// unifiedOrder sorts by orderId with the marketplace name as tie-break.
// orderId is unique only within a marketplace, so without the second
// key the count/data query pair could split cross-marketplace ties
// differently between requests.
const unifiedOrder = "o.original_order_id ASC, m.name ASC"

// orderRow is the scan target for the joined order projection
type orderRow struct {
	OrderID         string
	Buyer           string
	Product         string
	Status          string
	Address         string
	MarketplaceName string
}

// RelationalSource answers queries straight from the orders schema with
// filtering, sorting and pagination pushed into SQL. It implements the
// unified and statistics capabilities so cross-marketplace queries are
// resolved in one round trip instead of merging per-source pages.
type RelationalSource struct {
	db       *gorm.DB
	registry *marketplace.Registry
	log      *zap.Logger
}

// NewRelationalSource creates a relational source over db
func NewRelationalSource(db *gorm.DB, registry *marketplace.Registry, log *zap.Logger) *RelationalSource {
	return &RelationalSource{db: db, registry: registry, log: log}
}

// baseQuery builds the joined projection every read goes through
func (s *RelationalSource) baseQuery(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("orders o").
		Select("o.original_order_id AS order_id, "+
			"COALESCE(b.name,'') AS buyer, "+
			"COALESCE(o.product,'') AS product, "+
			"COALESCE(o.status,'') AS status, "+
			addressExpr+" AS address, "+
			"COALESCE(m.name,'') AS marketplace_name").
		Joins("LEFT JOIN marketplaces m ON m.id = o.marketplace_id").
		Joins("LEFT JOIN buyers b ON b.id = o.buyer_id").
		Joins("LEFT JOIN addresses a ON a.order_id = o.id")
}

func applySearch(q *gorm.DB, search string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" {
		return q
	}
	needle := "%" + strings.ToLower(search) + "%"
	return q.Where(searchCond, needle, needle, needle, needle, needle)
}

// FetchPage returns one marketplace's filtered page, paginated in SQL
func (s *RelationalSource) FetchPage(ctx context.Context, slug string, q order.Query) (*order.Page, error) {
	desc, ok := s.registry.Get(slug)
	if !ok {
		return nil, shared.MarketplaceNotConfigured(slug)
	}

	base := applySearch(s.baseQuery(ctx).Where("m.name = ?", desc.Name), q.Search)
	return s.paginate(base, q, false)
}

// FetchUnifiedPage answers a cross-marketplace query in a single
// filtered, sorted, paginated fetch
func (s *RelationalSource) FetchUnifiedPage(ctx context.Context, q order.Query) (*order.Page, error) {
	base := applySearch(s.baseQuery(ctx), q.Search)
	return s.paginate(base, q, true)
}

// paginate runs the count and data queries and assembles page metadata.
// tagged controls whether rows carry marketplace identity.
func (s *RelationalSource) paginate(base *gorm.DB, q order.Query, tagged bool) (*order.Page, error) {
	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, shared.DataUnavailable("", err)
	}

	var rows []orderRow
	err := base.Session(&gorm.Session{}).
		Order(unifiedOrder).
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Scan(&rows).Error
	if err != nil {
		return nil, shared.DataUnavailable("", err)
	}

	return order.NewPage(s.toOrders(rows, tagged), int(total), q.Page, q.Limit), nil
}

// FetchAll returns one marketplace's full set, untagged, for the
// in-memory merge path
func (s *RelationalSource) FetchAll(ctx context.Context, slug string) ([]order.Order, error) {
	desc, ok := s.registry.Get(slug)
	if !ok {
		return nil, shared.MarketplaceNotConfigured(slug)
	}

	var rows []orderRow
	err := s.baseQuery(ctx).
		Where("m.name = ?", desc.Name).
		Order(unifiedOrder).
		Scan(&rows).Error
	if err != nil {
		return nil, shared.DataUnavailable(slug, err)
	}
	return s.toOrders(rows, false), nil
}

// CountByMarketplace aggregates order counts keyed by marketplace slug
func (s *RelationalSource) CountByMarketplace(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Name  string
		Count int
	}
	err := s.db.WithContext(ctx).
		Table("orders o").
		Select("COALESCE(m.name,'') AS name, COUNT(*) AS count").
		Joins("LEFT JOIN marketplaces m ON m.id = o.marketplace_id").
		Group("m.name").
		Scan(&rows).Error
	if err != nil {
		return nil, shared.DataUnavailable("", err)
	}

	out := make(map[string]int, len(rows))
	for _, r := range rows {
		slug, ok := s.registry.SlugForName(r.Name)
		if !ok {
			// rows from marketplaces that are no longer configured keep
			// their stored display name as key
			slug = strings.ToLower(r.Name)
		}
		out[slug] += r.Count
	}
	return out, nil
}

// CountByStatus aggregates order counts by normalized status. Distinct
// raw values that normalize to the same status are merged.
func (s *RelationalSource) CountByStatus(ctx context.Context) (map[order.Status]int, error) {
	var rows []struct {
		Status string
		Count  int
	}
	err := s.db.WithContext(ctx).
		Table("orders o").
		Select("COALESCE(o.status,'') AS status, COUNT(*) AS count").
		Group("o.status").
		Scan(&rows).Error
	if err != nil {
		return nil, shared.DataUnavailable("", err)
	}

	out := make(map[order.Status]int, len(rows))
	for _, r := range rows {
		out[order.NormalizeStatus(r.Status)] += r.Count
	}
	return out, nil
}

// RecentOrders returns the n most recently created orders, tagged
func (s *RelationalSource) RecentOrders(ctx context.Context, n int) ([]order.Order, error) {
	var rows []orderRow
	err := s.baseQuery(ctx).
		Order("o.created_at DESC").
		Limit(n).
		Scan(&rows).Error
	if err != nil {
		return nil, shared.DataUnavailable("", err)
	}
	return s.toOrders(rows, true), nil
}

// toOrders maps scanned rows onto canonical orders, resolving the
// stored display name back to marketplace identity when tagging
func (s *RelationalSource) toOrders(rows []orderRow, tagged bool) []order.Order {
	out := make([]order.Order, len(rows))
	for i, r := range rows {
		o := order.Order{
			OrderID: r.OrderID,
			Buyer:   r.Buyer,
			Product: r.Product,
			Status:  order.NormalizeStatus(r.Status),
			Address: r.Address,
		}
		if tagged {
			if slug, ok := s.registry.SlugForName(r.MarketplaceName); ok {
				if desc, ok := s.registry.Get(slug); ok {
					o = o.Tag(slug, desc.Info())
				}
			}
		}
		out[i] = o
	}
	return out
}
