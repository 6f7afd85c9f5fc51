package handlers

import (
	"net/http"

	"boutique/internal/common"
	"boutique/internal/models"
	"boutique/internal/services"

	"github.com/labstack/echo/v4"
)

// SlideHandlers serves the landing page hero carousel
type SlideHandlers struct {
	slideService services.HeroSlideService
}

func NewSlideHandlers(slideService services.HeroSlideService) *SlideHandlers {
	return &SlideHandlers{slideService: slideService}
}

type slideRequest struct {
	ImageURL    string `json:"image_url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *SlideHandlers) ListSlides(c echo.Context) error {
	slides, err := h.slideService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err, "slides")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"slides": slides,
		"count":  len(slides),
	})
}

func (h *SlideHandlers) GetSlide(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	slide, err := h.slideService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Slide")
	}
	return c.JSON(http.StatusOK, slide)
}

func (h *SlideHandlers) CreateSlide(c echo.Context) error {
	var req slideRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	slide := &models.HeroSlide{ImageURL: req.ImageURL, Title: req.Title, Description: req.Description}
	if err := h.slideService.Create(c.Request().Context(), slide); err != nil {
		return respondError(c, err, "Slide")
	}
	return c.JSON(http.StatusCreated, slide)
}

func (h *SlideHandlers) UpdateSlide(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req slideRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	slide := &models.HeroSlide{ID: id, ImageURL: req.ImageURL, Title: req.Title, Description: req.Description}
	if err := h.slideService.Update(c.Request().Context(), slide); err != nil {
		return respondError(c, err, "Slide")
	}
	return c.JSON(http.StatusOK, slide)
}

func (h *SlideHandlers) DeleteSlide(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.slideService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "Slide")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SlideHandlers) ReplaceImage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	file, closeFile, err := formImage(c, "file")
	if err != nil {
		return common.SendValidationError(c, "file", "an image file is required")
	}
	defer closeFile()

	slide, err := h.slideService.ReplaceImage(c.Request().Context(), id, file)
	if err != nil {
		return respondError(c, err, "Slide")
	}
	return c.JSON(http.StatusOK, slide)
}
