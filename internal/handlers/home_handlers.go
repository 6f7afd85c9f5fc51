package handlers

import (
	"net/http"

	"boutique/internal/services"

	"github.com/labstack/echo/v4"
)

type HomeHandlers struct {
	homeService services.HomeService
}

func NewHomeHandlers(homeService services.HomeService) *HomeHandlers {
	return &HomeHandlers{homeService: homeService}
}

// GetHome handles GET /home
// @Summary Landing page payload
// @Description Settings plus every visible section of the landing page
// @Tags home
// @Produce json
// @Success 200 {object} models.HomePage
// @Router /home [get]
func (h *HomeHandlers) GetHome(c echo.Context) error {
	home, err := h.homeService.Get(c.Request().Context())
	if err != nil {
		return respondError(c, err, "home page")
	}
	c.Response().Header().Set("Cache-Control", "public, max-age=60")
	return c.JSON(http.StatusOK, home)
}
