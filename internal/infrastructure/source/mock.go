package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/orderhub/backend/internal/domain/marketplace"
	"github.com/orderhub/backend/internal/domain/order"
	"github.com/orderhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// mockOrder is the wire shape of one entry in a mock dataset file
type mockOrder struct {
	OrderID string `json:"orderId"`
	Buyer   string `json:"buyer"`
	Product string `json:"product"`
	Status  string `json:"status"`
	Address string `json:"address"`
}

// MockSource serves orders from per-marketplace JSON dataset files. It
// reads the file on every fetch so datasets can be swapped without a
// restart; result sets are never cached.
type MockSource struct {
	dir      string
	registry *marketplace.Registry
	log      *zap.Logger
}

// NewMockSource creates a mock source reading datasets from dir
func NewMockSource(dir string, registry *marketplace.Registry, log *zap.Logger) *MockSource {
	return &MockSource{dir: dir, registry: registry, log: log}
}

// FetchAll loads the marketplace's dataset file and normalizes each
// entry. A missing or unparseable file is DATA_UNAVAILABLE.
func (s *MockSource) FetchAll(ctx context.Context, slug string) ([]order.Order, error) {
	desc, ok := s.registry.Get(slug)
	if !ok {
		return nil, shared.MarketplaceNotConfigured(slug)
	}
	if !desc.MockEnabled {
		return nil, shared.DataUnavailable(slug, fmt.Errorf("mock data disabled"))
	}

	file := desc.MockDataFile
	if file == "" {
		file = slug + "-orders.json"
	}

	raw, err := os.ReadFile(filepath.Join(s.dir, file))
	if err != nil {
		return nil, shared.DataUnavailable(slug, err)
	}

	var entries []mockOrder
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, shared.DataUnavailable(slug, fmt.Errorf("malformed dataset %s: %w", file, err))
	}

	orders := make([]order.Order, len(entries))
	for i, e := range entries {
		orders[i] = order.Order{
			OrderID: e.OrderID,
			Buyer:   e.Buyer,
			Product: e.Product,
			Status:  order.NormalizeStatus(e.Status),
			Address: e.Address,
		}
	}
	return orders, nil
}

// FetchPage filters and paginates the marketplace's dataset in memory
func (s *MockSource) FetchPage(ctx context.Context, slug string, q order.Query) (*order.Page, error) {
	orders, err := s.FetchAll(ctx, slug)
	if err != nil {
		return nil, err
	}
	return pageFromAll(orders, q), nil
}

// pageFromAll applies the in-memory filter/sort/paginate pipeline shared
// by the fetch-all sources
func pageFromAll(orders []order.Order, q order.Query) *order.Page {
	filtered := order.Filter(orders, q.Search)
	order.SortByOrderID(filtered)
	return order.Paginate(filtered, q.Page, q.Limit)
}
