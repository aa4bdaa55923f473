package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loandocs/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "email and password are required")
		return
	}

	out, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, out)
}
