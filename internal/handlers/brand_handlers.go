package handlers

import (
	"net/http"

	"boutique/internal/common"
	"boutique/internal/models"
	"boutique/internal/services"

	"github.com/labstack/echo/v4"
)

// BrandHandlers handles HTTP requests for brands
type BrandHandlers struct {
	brandService services.BrandService
}

func NewBrandHandlers(brandService services.BrandService) *BrandHandlers {
	return &BrandHandlers{brandService: brandService}
}

type brandRequest struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url"`
}

// ListBrands handles GET /brands
// @Summary List brands
// @Tags brands
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /brands [get]
func (h *BrandHandlers) ListBrands(c echo.Context) error {
	brands, err := h.brandService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err, "brands")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"brands": brands,
		"count":  len(brands),
	})
}

// GetBrand handles GET /brands/:id
func (h *BrandHandlers) GetBrand(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	brand, err := h.brandService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Brand")
	}
	return c.JSON(http.StatusOK, brand)
}

// CreateBrand handles POST /admin/brands
func (h *BrandHandlers) CreateBrand(c echo.Context) error {
	var req brandRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	brand := &models.Brand{Name: req.Name, LogoURL: req.LogoURL}
	if err := h.brandService.Create(c.Request().Context(), brand); err != nil {
		return respondError(c, err, "Brand")
	}
	return c.JSON(http.StatusCreated, brand)
}

// UpdateBrand handles PUT /admin/brands/:id. An empty logo_url keeps the current logo.
func (h *BrandHandlers) UpdateBrand(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req brandRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	brand := &models.Brand{ID: id, Name: req.Name, LogoURL: req.LogoURL}
	if err := h.brandService.Update(c.Request().Context(), brand); err != nil {
		return respondError(c, err, "Brand")
	}
	return c.JSON(http.StatusOK, brand)
}

// DeleteBrand handles DELETE /admin/brands/:id. Products of the brand go with it.
func (h *BrandHandlers) DeleteBrand(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.brandService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "Brand")
	}
	return c.NoContent(http.StatusNoContent)
}

// ReplaceLogo handles PUT /admin/brands/:id/logo (multipart "file")
func (h *BrandHandlers) ReplaceLogo(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	file, closeFile, err := formImage(c, "file")
	if err != nil {
		return common.SendValidationError(c, "file", "an image file is required")
	}
	defer closeFile()

	brand, err := h.brandService.ReplaceLogo(c.Request().Context(), id, file)
	if err != nil {
		return respondError(c, err, "Brand")
	}
	return c.JSON(http.StatusOK, brand)
}
