package handlers

import (
	"net/http"
	"strings"

	"boutique/internal/common"
	"boutique/internal/models"
	"boutique/internal/services"

	"github.com/labstack/echo/v4"
)

// UploadHandlers expose the image pipeline directly to the admin UI
type UploadHandlers struct {
	imageService services.ImageService
}

func NewUploadHandlers(imageService services.ImageService) *UploadHandlers {
	return &UploadHandlers{imageService: imageService}
}

// UploadImage handles POST /admin/uploads
// @Summary Upload an optimized image
// @Description Validates, resizes to the category bounding box and stores a WebP. existing_url, when set, is deleted first.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image"
// @Param category formData string true "product, brand, category or slide"
// @Param existing_url formData string false "Public URL being replaced"
// @Success 201 {object} map[string]string
// @Failure 400 {object} common.ErrorResponse
// @Failure 413 {object} common.ErrorResponse
// @Failure 422 {object} common.ErrorResponse
// @Failure 502 {object} common.ErrorResponse
// @Router /admin/uploads [post]
func (h *UploadHandlers) UploadImage(c echo.Context) error {
	category, err := models.ParseAssetCategory(c.FormValue("category"))
	if err != nil {
		return common.SendValidationError(c, "category", err.Error())
	}

	file, closeFile, err := formImage(c, "file")
	if err != nil {
		return common.SendValidationError(c, "file", "an image file is required")
	}
	defer closeFile()

	url, err := h.imageService.Upload(c.Request().Context(), file, category, strings.TrimSpace(c.FormValue("existing_url")))
	if err != nil {
		return respondError(c, err, "image")
	}

	return c.JSON(http.StatusCreated, map[string]string{"url": url})
}

// DeleteImage handles DELETE /admin/uploads?path={category}s/{name}
func (h *UploadHandlers) DeleteImage(c echo.Context) error {
	path := strings.TrimSpace(c.QueryParam("path"))
	if err := h.imageService.Delete(c.Request().Context(), path); err != nil {
		return respondError(c, err, "image")
	}
	return c.NoContent(http.StatusNoContent)
}
