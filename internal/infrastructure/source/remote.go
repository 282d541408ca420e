package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/orderhub/backend/internal/domain/marketplace"
	"github.com/orderhub/backend/internal/domain/order"
	"github.com/orderhub/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// remotePayload is the accepted response envelope from a marketplace
// API. A bare top-level array is also accepted.
type remotePayload struct {
	Orders []mockOrder `json:"orders"`
}

// FetchRecorder counts marketplace fetch outcomes. Satisfied by
// telemetry.Metrics.
type FetchRecorder interface {
	RecordSourceFetch(marketplace, outcome string)
}

// RemoteSource fetches orders from the configured marketplace APIs.
// A marketplace whose API is not configured, or whose fetch fails,
// falls back to the mock dataset so read paths keep answering; the
// fallback is always logged, never silent.
type RemoteSource struct {
	registry *marketplace.Registry
	client   *http.Client
	fallback *MockSource
	metrics  FetchRecorder
	log      *zap.Logger
}

// NewRemoteSource creates a remote source with a mock fallback.
// metrics may be nil.
func NewRemoteSource(registry *marketplace.Registry, client *http.Client, fallback *MockSource, metrics FetchRecorder, log *zap.Logger) *RemoteSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &RemoteSource{registry: registry, client: client, fallback: fallback, metrics: metrics, log: log}
}

func (s *RemoteSource) record(slug, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordSourceFetch(slug, outcome)
	}
}

// serveFallback answers from the mock dataset, counting the outcome:
// "fallback" when the mock serves, "error" when even that fails
func (s *RemoteSource) serveFallback(ctx context.Context, slug string) ([]order.Order, error) {
	orders, err := s.fallback.FetchAll(ctx, slug)
	if err != nil {
		s.record(slug, "error")
		return nil, err
	}
	s.record(slug, "fallback")
	return orders, nil
}

// FetchAll fetches one marketplace's orders from its API, falling back
// to mock data when the API is unconfigured or unreachable
func (s *RemoteSource) FetchAll(ctx context.Context, slug string) ([]order.Order, error) {
	desc, ok := s.registry.Get(slug)
	if !ok {
		return nil, shared.MarketplaceNotConfigured(slug)
	}

	if !desc.APIConfigured() {
		s.log.Info("marketplace API not configured, serving mock data",
			zap.String("marketplace", slug),
		)
		return s.serveFallback(ctx, slug)
	}

	orders, err := s.fetchRemote(ctx, desc)
	if err != nil {
		s.log.Warn("marketplace API fetch failed, serving mock data",
			zap.String("marketplace", slug),
			zap.Error(err),
		)
		return s.serveFallback(ctx, slug)
	}
	s.record(slug, "ok")
	return orders, nil
}

// FetchPage filters and paginates the fetched set in memory
func (s *RemoteSource) FetchPage(ctx context.Context, slug string, q order.Query) (*order.Page, error) {
	orders, err := s.FetchAll(ctx, slug)
	if err != nil {
		return nil, err
	}
	return pageFromAll(orders, q), nil
}

func (s *RemoteSource) fetchRemote(ctx context.Context, desc *marketplace.Descriptor) ([]order.Order, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, desc.APIBaseURL+desc.OrdersPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	applyAuth(req, desc)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, desc.Slug)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var payload remotePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		var bare []mockOrder
		if err2 := json.Unmarshal(body, &bare); err2 != nil {
			return nil, fmt.Errorf("unparseable response from %s: %w", desc.Slug, err)
		}
		payload.Orders = bare
	}

	orders := make([]order.Order, len(payload.Orders))
	for i, e := range payload.Orders {
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

// applyAuth sets the credential header matching the marketplace's auth
// type. Missing credentials produce an unauthenticated request; the
// remote rejection then triggers the logged fallback.
func applyAuth(req *http.Request, desc *marketplace.Descriptor) {
	switch desc.AuthType {
	case marketplace.AuthTypeBearer:
		if desc.Credentials.Token != "" {
			req.Header.Set("Authorization", "Bearer "+desc.Credentials.Token)
		}
	case marketplace.AuthTypeAPIKey:
		if desc.Credentials.APIKey != "" {
			req.Header.Set("X-API-Key", desc.Credentials.APIKey)
		}
	case marketplace.AuthTypeBasic:
		if desc.Credentials.Username != "" {
			req.SetBasicAuth(desc.Credentials.Username, desc.Credentials.Password)
		}
	}
}
