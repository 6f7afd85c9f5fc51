package handlers

import (
	"net/http"

	"boutique/internal/common"
	"boutique/internal/models"
	"boutique/internal/services"

	"github.com/labstack/echo/v4"
)

// SettingsHandlers exposes the landing page section toggles and titles
type SettingsHandlers struct {
	settingsService services.SettingsService
}

func NewSettingsHandlers(settingsService services.SettingsService) *SettingsHandlers {
	return &SettingsHandlers{settingsService: settingsService}
}

func (h *SettingsHandlers) GetSettings(c echo.Context) error {
	settings, err := h.settingsService.Get(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Site settings")
	}
	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings handles PUT /admin/settings. Every field is replaced.
func (h *SettingsHandlers) UpdateSettings(c echo.Context) error {
	var req models.SiteSettings
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	settings, err := h.settingsService.Update(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, err, "Site settings")
	}
	return c.JSON(http.StatusOK, settings)
}
