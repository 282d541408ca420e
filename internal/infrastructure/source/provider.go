package source

import (
	"fmt"
	"net/http"

	"github.com/orderhub/backend/internal/domain/marketplace"
	"github.com/orderhub/backend/internal/domain/order"
	"github.com/orderhub/backend/internal/infrastructure/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BuildRegistry maps the configured marketplace tables onto domain
// descriptors and builds the immutable registry
func BuildRegistry(cfgs []config.MarketplaceConfig) (*marketplace.Registry, error) {
	descriptors := make([]marketplace.Descriptor, 0, len(cfgs))
	for _, mc := range cfgs {
		descriptors = append(descriptors, marketplace.Descriptor{
			Slug:         mc.Slug,
			Name:         mc.Name,
			Icon:         mc.Icon,
			Color:        mc.Color,
			Enabled:      mc.Enabled,
			MockEnabled:  mc.MockEnabled,
			MockDataFile: mc.MockDataFile,
			APIBaseURL:   mc.APIBaseURL,
			OrdersPath:   mc.OrdersPath,
			AuthType:     marketplace.AuthType(mc.AuthType),
			RequiresAuth: mc.RequiresAuth,
			Credentials: marketplace.Credentials{
				Token:    mc.Token,
				APIKey:   mc.APIKey,
				Username: mc.Username,
				Password: mc.Password,
			},
		})
	}
	return marketplace.NewRegistry(descriptors)
}

// New selects the data-source strategy for the configured mode. The
// choice is made once at startup; db may be nil unless mode is "db",
// metrics may always be nil.
func New(cfg *config.DataConfig, registry *marketplace.Registry, db *gorm.DB, metrics FetchRecorder, log *zap.Logger) (order.Source, error) {
	switch cfg.Source {
	case "mock":
		return NewMockSource(cfg.MockDataDir, registry, log.Named("source.mock")), nil
	case "db":
		if db == nil {
			return nil, fmt.Errorf("data.source is db but no database connection was provided")
		}
		return NewRelationalSource(db, registry, log.Named("source.db")), nil
	case "api":
		fallback := NewMockSource(cfg.MockDataDir, registry, log.Named("source.mock"))
		client := &http.Client{Timeout: cfg.SourceTimeout}
		return NewRemoteSource(registry, client, fallback, metrics, log.Named("source.api")), nil
	default:
		return nil, fmt.Errorf("unknown data source mode %q", cfg.Source)
	}
}
