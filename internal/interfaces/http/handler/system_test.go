package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemHealth(t *testing.T) {
	t.Run("reports ok without a database", func(t *testing.T) {
		engine := gin.New()
		engine.GET("/health", NewSystemHandler("development", nil).Health)

		rec := doRequest(t, engine, http.MethodGet, "/health")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, "development", resp.Environment)
		assert.Empty(t, resp.Database)
	})

	t.Run("reports database reachability", func(t *testing.T) {
		engine := gin.New()
		engine.GET("/health", NewSystemHandler("production", func() error { return nil }).Health)

		rec := doRequest(t, engine, http.MethodGet, "/health")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Database)
	})

	t.Run("degrades to 503 when the database is unreachable", func(t *testing.T) {
		engine := gin.New()
		engine.GET("/health", NewSystemHandler("production", func() error { return errors.New("down") }).Health)

		rec := doRequest(t, engine, http.MethodGet, "/health")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "degraded", resp.Status)
		assert.Equal(t, "unreachable", resp.Database)
	})
}

func TestSystemPing(t *testing.T) {
	engine := gin.New()
	engine.GET("/api/v1/system/ping", NewSystemHandler("development", nil).Ping)

	rec := doRequest(t, engine, http.MethodGet, "/api/v1/system/ping")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pong")
}
