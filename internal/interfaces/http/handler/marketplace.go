package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/orderhub/backend/internal/application/orders"
	"github.com/orderhub/backend/internal/interfaces/http/dto"
)

// MarketplaceHandler handles marketplace catalog endpoints
type MarketplaceHandler struct {
	BaseHandler
	service *orders.Service
}

// NewMarketplaceHandler creates a new MarketplaceHandler
func NewMarketplaceHandler(service *orders.Service) *MarketplaceHandler {
	return &MarketplaceHandler{service: service}
}

// List godoc
// @ID           listMarketplaces
// @Summary      List available marketplaces
// @Description  Returns the enabled marketplaces with their display metadata and data-source readiness
// @Tags         marketplaces
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /marketplaces [get]
func (h *MarketplaceHandler) List(c *gin.Context) {
	h.Success(c, h.service.ListAvailableMarketplaces())
}

// GetConfig godoc
// @ID           getMarketplaceConfig
// @Summary      Get marketplace configuration
// @Description  Returns one marketplace's sanitized configuration; credential material is never included
// @Tags         marketplaces
// @Produce      json
// @Param        marketplace path string true "Marketplace slug"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /marketplaces/{marketplace}/config [get]
func (h *MarketplaceHandler) GetConfig(c *gin.Context) {
	var uri dto.MarketplaceURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid marketplace identifier")
		return
	}

	view, err := h.service.GetMarketplaceConfig(uri.Marketplace)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// ValidateAuth godoc
// @ID           validateMarketplaceAuth
// @Summary      Validate marketplace credentials
// @Description  Checks presence of the credential fields the marketplace's auth type requires. Does not call the remote API.
// @Tags         marketplaces
// @Produce      json
// @Param        marketplace path string true "Marketplace slug"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Router       /marketplaces/{marketplace}/auth/validate [get]
func (h *MarketplaceHandler) ValidateAuth(c *gin.Context) {
	var uri dto.MarketplaceURI
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid marketplace identifier")
		return
	}

	result, err := h.service.ValidateCredentials(uri.Marketplace)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
