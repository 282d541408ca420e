package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/orderhub/backend/internal/application/orders"
	"github.com/orderhub/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMarketplaceRouter(t *testing.T) *gin.Engine {
	t.Helper()
	h := NewMarketplaceHandler(newOrdersService(t))

	engine := gin.New()
	engine.GET("/api/v1/marketplaces", h.List)
	engine.GET("/api/v1/marketplaces/:marketplace/config", h.GetConfig)
	engine.GET("/api/v1/marketplaces/:marketplace/auth/validate", h.ValidateAuth)
	return engine
}

func TestMarketplaceList(t *testing.T) {
	engine := newMarketplaceRouter(t)

	rec := doRequest(t, engine, http.MethodGet, "/api/v1/marketplaces")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                         `json:"success"`
		Data    []orders.MarketplaceSummary  `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 2, "disabled marketplaces are not listed")
	assert.Equal(t, "mercadolivre", resp.Data[0].ID)
	assert.Equal(t, "shopee", resp.Data[1].ID)
}

func TestMarketplaceGetConfig(t *testing.T) {
	engine := newMarketplaceRouter(t)

	t.Run("returns sanitized config", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/api/v1/marketplaces/shopee/config")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data orders.MarketplaceConfigView `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Shopee", resp.Data.Name)
		assert.True(t, resp.Data.Enabled)

		// no credential material in the raw body
		assert.NotContains(t, rec.Body.String(), "token")
		assert.NotContains(t, rec.Body.String(), "password")
	})

	t.Run("unknown marketplace is 404", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/api/v1/marketplaces/amazon/config")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestMarketplaceValidateAuth(t *testing.T) {
	engine := newMarketplaceRouter(t)

	t.Run("reports the presence check result", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/api/v1/marketplaces/shopee/auth/validate")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Data orders.CredentialCheckResult `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "shopee", resp.Data.Marketplace)
		assert.True(t, resp.Data.Valid, "marketplace without auth requirement validates")
	})

	t.Run("unknown marketplace is 404", func(t *testing.T) {
		rec := doRequest(t, engine, http.MethodGet, "/api/v1/marketplaces/amazon/auth/validate")
		require.Equal(t, http.StatusNotFound, rec.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeMarketplaceNotConfigured, resp.Error.Code)
	})
}
