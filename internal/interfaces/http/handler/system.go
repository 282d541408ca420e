package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandler handles health and system endpoints
type SystemHandler struct {
	BaseHandler
	startTime time.Time
	env       string
	pinger    func() error
}

// NewSystemHandler creates a new SystemHandler. pinger reports data
// store reachability and may be nil when no database is in play.
func NewSystemHandler(env string, pinger func() error) *SystemHandler {
	return &SystemHandler{
		startTime: time.Now(),
		env:       env,
		pinger:    pinger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status      string `json:"status" example:"ok"`
	Environment string `json:"environment" example:"development"`
	GoVersion   string `json:"go_version" example:"go1.25.5"`
	Uptime      string `json:"uptime" example:"1h30m45s"`
	Database    string `json:"database,omitempty" example:"ok"`
	Timestamp   string `json:"timestamp" example:"2026-08-30T12:00:00Z"`
}

// Health godoc
// @ID           healthCheck
// @Summary      Health check
// @Description  Reports process health and, when a database is configured, its reachability
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:      "ok",
		Environment: h.env,
		GoVersion:   runtime.Version(),
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}

	status := http.StatusOK
	if h.pinger != nil {
		if err := h.pinger(); err != nil {
			resp.Status = "degraded"
			resp.Database = "unreachable"
			status = http.StatusServiceUnavailable
		} else {
			resp.Database = "ok"
		}
	}

	c.JSON(status, resp)
}

// Ping godoc
// @ID           ping
// @Summary      Ping the API
// @Tags         system
// @Produce      json
// @Success      200 {object} map[string]any
// @Router       /system/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, gin.H{"message": "pong", "timestamp": time.Now().UTC().Format(time.RFC3339)})
}
