package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orderhub/backend/internal/application/orders"
	"github.com/orderhub/backend/internal/infrastructure/logger"
	"github.com/orderhub/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// OrdersHandler handles unified and per-marketplace order endpoints
type OrdersHandler struct {
	BaseHandler
	service *orders.Service
}

// NewOrdersHandler creates a new OrdersHandler
func NewOrdersHandler(service *orders.Service) *OrdersHandler {
	return &OrdersHandler{service: service}
}

// Search godoc
// @ID           searchOrders
// @Summary      Unified order search
// @Description  Searches orders across all enabled marketplaces with filtering and pagination
// @Tags         orders
// @Produce      json
// @Param        search query string false "Case-insensitive substring matched against orderId, buyer, product, address and status"
// @Param        page   query int    false "Page number (default 1)"
// @Param        limit  query int    false "Page size (default 10, max 100)"
// @Success      200 {object} dto.PagedResponse
// @Failure      503 {object} dto.Response
// @Router       /orders/search [get]
func (h *OrdersHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	page, err := h.service.GetAllOrders(c.Request.Context(), req.Query())
	if err != nil {
		logger.FromGin(c).Warn("Unified search failed", zap.Error(err))
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPagedResponse(page, nil))
}

// Stats godoc
// @ID           getOrderStats
// @Summary      Order statistics
// @Description  Returns aggregate order counts by marketplace and status, a condensed summary and the most recent orders
// @Tags         orders
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      503 {object} dto.Response
// @Router       /orders/stats [get]
func (h *OrdersHandler) Stats(c *gin.Context) {
	snapshot, err := h.service.GetStatistics(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Warn("Statistics query failed", zap.Error(err))
		h.HandleError(c, err)
		return
	}

	h.Success(c, snapshot)
}

// ListByMarketplace godoc
// @ID           listMarketplaceOrders
// @Summary      List one marketplace's orders
// @Description  Returns a filtered, paginated order listing for a single marketplace
// @Tags         orders
// @Produce      json
// @Param        marketplace path string true "Marketplace slug"
// @Param        search query string false "Case-insensitive substring filter"
// @Param        page   query int    false "Page number (default 1)"
// @Param        limit  query int    false "Page size (default 10, max 100)"
// @Success      200 {object} dto.PagedResponse
// @Failure      404 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Failure      503 {object} dto.Response
// @Router       /marketplaces/{marketplace}/orders [get]
func (h *OrdersHandler) ListByMarketplace(c *gin.Context) {
	var uri dto.MarketplaceURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid marketplace identifier")
		return
	}

	var req dto.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.service.GetOrders(c.Request.Context(), uri.Marketplace, req.Query())
	if err != nil {
		logger.FromGin(c).Warn("Marketplace order listing failed",
			zap.String("marketplace", uri.Marketplace),
			zap.Error(err),
		)
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPagedResponse(result.Page, &result.Marketplace))
}
