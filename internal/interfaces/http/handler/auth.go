package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/orderhub/backend/internal/application/auth"
	"github.com/orderhub/backend/internal/interfaces/http/dto"
)

// AuthHandler handles login and token verification
type AuthHandler struct {
	BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login godoc
// @ID           login
// @Summary      Authenticate
// @Description  Verifies credentials and returns a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body auth.LoginInput true "Credentials"
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input auth.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.Error(c, 400, dto.ErrCodeValidation, "Username and password are required")
		return
	}

	result, err := h.service.Login(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Verify godoc
// @ID           verifyToken
// @Summary      Verify token
// @Description  Validates the bearer token and returns the user it identifies
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response
// @Router       /auth/verify [get]
func (h *AuthHandler) Verify(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		h.Unauthorized(c, "Missing bearer token")
		return
	}

	user, err := h.service.Verify(c.Request.Context(), token)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// bearerToken extracts the token from the Authorization header
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
