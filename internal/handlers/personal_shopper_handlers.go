package handlers

import (
	"net/http"

	"boutique/internal/common"
	"boutique/internal/models"
	"boutique/internal/services"

	"github.com/labstack/echo/v4"
)

// PersonalShopperHandlers serves the single personal shopper block
type PersonalShopperHandlers struct {
	shopperService services.PersonalShopperService
}

func NewPersonalShopperHandlers(shopperService services.PersonalShopperService) *PersonalShopperHandlers {
	return &PersonalShopperHandlers{shopperService: shopperService}
}

// GetPersonalShopper handles GET /personal-shopper; 404 until the block is first saved
func (h *PersonalShopperHandlers) GetPersonalShopper(c echo.Context) error {
	ps, err := h.shopperService.Get(c.Request().Context())
	if err != nil {
		return respondError(c, err, "Personal shopper")
	}
	if ps == nil {
		return common.SendNotFoundError(c, "Personal shopper")
	}
	return c.JSON(http.StatusOK, ps)
}

// SavePersonalShopper handles PUT /admin/personal-shopper
func (h *PersonalShopperHandlers) SavePersonalShopper(c echo.Context) error {
	var req struct {
		ImageURL     string `json:"image_url"`
		Title        string `json:"title"`
		Description1 string `json:"description1"`
		Description2 string `json:"description2"`
		Description3 string `json:"description3"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	ps := &models.PersonalShopper{
		ImageURL:     req.ImageURL,
		Title:        req.Title,
		Description1: req.Description1,
		Description2: req.Description2,
		Description3: req.Description3,
	}
	if err := h.shopperService.Save(c.Request().Context(), ps); err != nil {
		return respondError(c, err, "Personal shopper")
	}
	return c.JSON(http.StatusOK, ps)
}

// ReplaceImage handles PUT /admin/personal-shopper/image
func (h *PersonalShopperHandlers) ReplaceImage(c echo.Context) error {
	file, closeFile, err := formImage(c, "file")
	if err != nil {
		return common.SendValidationError(c, "file", "an image file is required")
	}
	defer closeFile()

	ps, err := h.shopperService.ReplaceImage(c.Request().Context(), file)
	if err != nil {
		return respondError(c, err, "Personal shopper")
	}
	return c.JSON(http.StatusOK, ps)
}
