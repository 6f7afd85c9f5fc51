package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"boutique/internal/common"
	"boutique/internal/models"
	"boutique/internal/repositories"
	"boutique/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CatalogHandlersTestSuite struct {
	suite.Suite
	brands   *MockBrandService
	products *MockProductService
	home     *MockHomeService
	settings *MockSettingsService
	e        *echo.Echo
}

func (suite *CatalogHandlersTestSuite) SetupTest() {
	suite.brands = new(MockBrandService)
	suite.products = new(MockProductService)
	suite.home = new(MockHomeService)
	suite.settings = new(MockSettingsService)

	brandHandlers := NewBrandHandlers(suite.brands)
	productHandlers := NewProductHandlers(suite.products)
	homeHandlers := NewHomeHandlers(suite.home)
	settingsHandlers := NewSettingsHandlers(suite.settings)

	suite.e = echo.New()
	suite.e.GET("/v1/home", homeHandlers.GetHome)
	suite.e.GET("/v1/brands", brandHandlers.ListBrands)
	suite.e.GET("/v1/brands/:id", brandHandlers.GetBrand)
	suite.e.POST("/v1/admin/brands", brandHandlers.CreateBrand)
	suite.e.DELETE("/v1/admin/brands/:id", brandHandlers.DeleteBrand)
	suite.e.PUT("/v1/admin/brands/:id/logo", brandHandlers.ReplaceLogo)
	suite.e.GET("/v1/products", productHandlers.ListProducts)
	suite.e.DELETE("/v1/admin/products/:id/images", productHandlers.RemoveImage)
	suite.e.PUT("/v1/admin/settings", settingsHandlers.UpdateSettings)
}

func TestCatalogHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogHandlersTestSuite))
}

func (suite *CatalogHandlersTestSuite) serve(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	suite.e.ServeHTTP(rec, req)
	return rec
}

func (suite *CatalogHandlersTestSuite) TestHome() {
	suite.home.On("Get", mock.Anything).Return(&models.HomePage{Settings: models.DefaultSiteSettings()}, nil).Once()

	rec := suite.serve(http.MethodGet, "/v1/home", "")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), `"brands_title":"Marcas que Trabalhamos"`)
}

func (suite *CatalogHandlersTestSuite) TestListBrands() {
	suite.brands.On("List", mock.Anything).Return([]*models.Brand{{ID: 1, Name: "Aura"}}, nil).Once()

	rec := suite.serve(http.MethodGet, "/v1/brands", "")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	var body struct {
		Brands []models.Brand `json:"brands"`
		Count  int            `json:"count"`
	}
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(suite.T(), 1, body.Count)
	assert.Equal(suite.T(), "Aura", body.Brands[0].Name)
}

func (suite *CatalogHandlersTestSuite) TestGetBrand_InvalidAndMissing() {
	rec := suite.serve(http.MethodGet, "/v1/brands/abc", "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)

	suite.brands.On("GetByID", mock.Anything, int64(9)).Return(nil, repositories.ErrNotFound).Once()
	rec = suite.serve(http.MethodGet, "/v1/brands/9", "")
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
}

func (suite *CatalogHandlersTestSuite) TestCreateBrand_ValidationError() {
	suite.brands.On("Create", mock.Anything, mock.Anything).Return(errors.Join(services.ErrValidation, errors.New("name is required"))).Once()

	rec := suite.serve(http.MethodPost, "/v1/admin/brands", `{"name":""}`)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), "VALIDATION_ERROR")
}

func (suite *CatalogHandlersTestSuite) TestCreateBrand() {
	suite.brands.On("Create", mock.Anything, mock.MatchedBy(func(b *models.Brand) bool { return b.Name == "Aura" })).
		Run(func(args mock.Arguments) { args.Get(1).(*models.Brand).ID = 3 }).
		Return(nil).Once()

	rec := suite.serve(http.MethodPost, "/v1/admin/brands", `{"name":"Aura","logo_url":"https://cdn.example.com/fotos-valeria/brands/a.webp"}`)
	assert.Equal(suite.T(), http.StatusCreated, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), `"id":3`)
}

func (suite *CatalogHandlersTestSuite) TestDeleteBrand() {
	suite.brands.On("Delete", mock.Anything, int64(3)).Return(nil).Once()

	rec := suite.serve(http.MethodDelete, "/v1/admin/brands/3", "")
	assert.Equal(suite.T(), http.StatusNoContent, rec.Code)
}

func (suite *CatalogHandlersTestSuite) TestReplaceLogo_InFlightReplaceConflicts() {
	suite.brands.On("ReplaceLogo", mock.Anything, int64(3), mock.Anything).
		Return(nil, fmt.Errorf("%w: brand:3 select while pending", services.ErrInvalidTransition)).Once()

	req := multipartRequest(suite.T(), http.MethodPut, "/v1/admin/brands/3/logo", nil, []byte("data"), "image/png")
	rec := httptest.NewRecorder()
	suite.e.ServeHTTP(rec, req)

	assert.Equal(suite.T(), http.StatusConflict, rec.Code)
	var body common.ErrorResponse
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(suite.T(), "CONFLICT", body.Error.Code)
}

func (suite *CatalogHandlersTestSuite) TestListProducts_ParsesFilter() {
	brandID := int64(2)
	suite.products.On("List", mock.Anything, models.ProductFilter{BrandID: &brandID, FeaturedOnly: true, Limit: 6}).
		Return([]*models.Product{}, nil).Once()

	rec := suite.serve(http.MethodGet, "/v1/products?brand_id=2&featured=true&limit=6", "")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	suite.products.AssertExpectations(suite.T())
}

func (suite *CatalogHandlersTestSuite) TestListProducts_RejectsBadFilter() {
	for _, q := range []string{"brand_id=x", "limit=0", "limit=1000", "featured=maybe"} {
		rec := suite.serve(http.MethodGet, "/v1/products?"+q, "")
		assert.Equal(suite.T(), http.StatusBadRequest, rec.Code, q)
	}
	suite.products.AssertNotCalled(suite.T(), "List", mock.Anything, mock.Anything)
}

func (suite *CatalogHandlersTestSuite) TestRemoveImage_RequiresURL() {
	rec := suite.serve(http.MethodDelete, "/v1/admin/products/1/images", "")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *CatalogHandlersTestSuite) TestUpdateSettings_MissingRow() {
	suite.settings.On("Update", mock.Anything, mock.Anything).Return(nil, services.ErrSettingsMissing).Once()

	rec := suite.serve(http.MethodPut, "/v1/admin/settings", `{"brands_title":"a","categories_title":"b","featured_products_title":"c"}`)
	assert.Equal(suite.T(), http.StatusServiceUnavailable, rec.Code)
}
