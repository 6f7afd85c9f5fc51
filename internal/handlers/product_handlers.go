package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"boutique/internal/common"
	"boutique/internal/models"
	"boutique/internal/services"

	"github.com/labstack/echo/v4"
)

const maxProductListLimit = 100

// ProductHandlers handles HTTP requests for products
type ProductHandlers struct {
	productService services.ProductService
}

func NewProductHandlers(productService services.ProductService) *ProductHandlers {
	return &ProductHandlers{productService: productService}
}

type productRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	BrandID     int64    `json:"brand_id"`
	CategoryID  int64    `json:"category_id"`
	IsFeatured  bool     `json:"is_featured"`
}

func (r *productRequest) toModel(id int64) *models.Product {
	return &models.Product{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Images:      r.Images,
		BrandID:     r.BrandID,
		CategoryID:  r.CategoryID,
		IsFeatured:  r.IsFeatured,
	}
}

// parseProductFilter reads brand_id, category_id, featured and limit from the query string
func parseProductFilter(c echo.Context) (models.ProductFilter, error) {
	var filter models.ProductFilter

	if raw := c.QueryParam("brand_id"); raw != "" {
		id, err := common.ParseID(raw, "brand_id")
		if err != nil {
			return filter, err
		}
		filter.BrandID = &id
	}
	if raw := c.QueryParam("category_id"); raw != "" {
		id, err := common.ParseID(raw, "category_id")
		if err != nil {
			return filter, err
		}
		filter.CategoryID = &id
	}
	if raw := c.QueryParam("featured"); raw != "" {
		featured, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return filter, err
		}
		filter.FeaturedOnly = featured
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return filter, err
		}
		if err := common.ValidatePositiveInteger(limit, "limit", maxProductListLimit); err != nil {
			return filter, err
		}
		filter.Limit = limit
	}
	return filter, nil
}

// ListProducts handles GET /products
// @Summary List products
// @Tags products
// @Produce json
// @Param brand_id query int false "Brand filter"
// @Param category_id query int false "Category filter"
// @Param featured query bool false "Featured products only"
// @Param limit query int false "Maximum number of products"
// @Success 200 {object} map[string]interface{}
// @Router /products [get]
func (h *ProductHandlers) ListProducts(c echo.Context) error {
	filter, err := parseProductFilter(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters: "+err.Error())
	}

	products, err := h.productService.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err, "products")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"products": products,
		"count":    len(products),
		"filter":   filter,
	})
}

// GetProduct handles GET /products/:id
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	product, err := h.productService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "Product")
	}
	return c.JSON(http.StatusOK, product)
}

// CreateProduct handles POST /admin/products
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	product := req.toModel(0)
	if err := h.productService.Create(c.Request().Context(), product); err != nil {
		return respondError(c, err, "Product")
	}
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /admin/products/:id
func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	product := req.toModel(id)
	if err := h.productService.Update(c.Request().Context(), product); err != nil {
		return respondError(c, err, "Product")
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /admin/products/:id
func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err, "Product")
	}
	return c.NoContent(http.StatusNoContent)
}

// AddImage handles POST /admin/products/:id/images (multipart "file")
func (h *ProductHandlers) AddImage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	file, closeFile, err := formImage(c, "file")
	if err != nil {
		return common.SendValidationError(c, "file", "an image file is required")
	}
	defer closeFile()

	product, err := h.productService.AddImage(c.Request().Context(), id, file)
	if err != nil {
		return respondError(c, err, "Product")
	}
	return c.JSON(http.StatusOK, product)
}

// RemoveImage handles DELETE /admin/products/:id/images?url=
func (h *ProductHandlers) RemoveImage(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	url := strings.TrimSpace(c.QueryParam("url"))
	if url == "" {
		return common.SendValidationError(c, "url", "url is required")
	}

	product, err := h.productService.RemoveImage(c.Request().Context(), id, url)
	if err != nil {
		return respondError(c, err, "Product image")
	}
	return c.JSON(http.StatusOK, product)
}
