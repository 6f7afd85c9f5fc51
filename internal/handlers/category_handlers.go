package handlers

import (
	"log"
	"net/http"

	"boutique/internal/common"
	"boutique/internal/models"
	"boutique/internal/services"

	"github.com/labstack/echo/v4"
)

// CategoryHandlers handles category-related HTTP requests
type CategoryHandlers struct {
	categoryService services.CategoryService
}

func NewCategoryHandlers(categoryService services.CategoryService) *CategoryHandlers {
	return &CategoryHandlers{categoryService: categoryService}
}

type categoryRequest struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// ListCategories handles GET /categories
func (h *CategoryHandlers) ListCategories(c echo.Context) error {
	categories, err := h.categoryService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err, "categories")
	}

	log.Printf("DEBUG: ListCategories returned %d categories", len(categories))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories": categories,
		"count":      len(categories),
	})
}

// GetCategory handles GET /categories/:id
func (h *CategoryHandlers) GetCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	category, err := h.categoryService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Category")
	}
	return c.JSON(http.StatusOK, category)
}

// CreateCategory handles POST /admin/categories
func (h *CategoryHandlers) CreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	category := &models.Category{Name: req.Name, ImageURL: req.ImageURL}
	if err := h.categoryService.Create(c.Request().Context(), category); err != nil {
		return respondError(c, err, "Category")
	}
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles PUT /admin/categories/:id. An empty image_url keeps the current image.
func (h *CategoryHandlers) UpdateCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	category := &models.Category{ID: id, Name: req.Name, ImageURL: req.ImageURL}
	if err := h.categoryService.Update(c.Request().Context(), category); err != nil {
		return respondError(c, err, "Category")
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles DELETE /admin/categories/:id
func (h *CategoryHandlers) DeleteCategory(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.categoryService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "Category")
	}
	return c.NoContent(http.StatusNoContent)
}

// ReplaceImage handles PUT /admin/categories/:id/image
func (h *CategoryHandlers) ReplaceImage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	file, closeFile, err := formImage(c, "file")
	if err != nil {
		return common.SendValidationError(c, "file", "an image file is required")
	}
	defer closeFile()

	category, err := h.categoryService.ReplaceImage(c.Request().Context(), id, file)
	if err != nil {
		return respondError(c, err, "Category")
	}
	return c.JSON(http.StatusOK, category)
}
