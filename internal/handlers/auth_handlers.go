package handlers

import (
	"errors"
	"log"
	"net/http"

	"boutique/internal/common"
	"boutique/internal/models"
	"boutique/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles admin authentication
type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// Login handles POST /auth/login
// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Credentials"
// @Success 200 {object} models.TokenResponse
// @Failure 401 {object} common.ErrorResponse
// @Failure 429 {object} common.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandlers) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
	}

	tokenResponse, err := h.authService.Login(c.Request().Context(), req.Username, req.Password, c.RealIP())
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		log.Printf("WARN: Failed login for %q from %s", req.Username, c.RealIP())
		return common.SendUnauthorizedError(c)
	case errors.Is(err, services.ErrTooManyAttempts):
		return common.SendError(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many login attempts, try again later")
	case err != nil:
		return respondError(c, err, "login")
	}

	return c.JSON(http.StatusOK, tokenResponse)
}

// Logout handles POST /admin/auth/logout by revoking the current token
func (h *AuthHandlers) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	session, ok := common.SessionFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.authService.Logout(ctx, session); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to revoke token")
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "Logged out successfully",
	})
}

// Session handles GET /admin/session
func (h *AuthHandlers) Session(c echo.Context) error {
	session, ok := common.SessionFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return c.JSON(http.StatusOK, session)
}
