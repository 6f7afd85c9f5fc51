package services

import (
	"context"
	"errors"
	"testing"

	"boutique/internal/models"
	"boutique/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ProductServiceTestSuite struct {
	suite.Suite
	productRepo  *MockProductRepository
	brandRepo    *MockBrandRepository
	categoryRepo *MockCategoryRepository
	images       *MockImageService
	service      ProductService
	ctx          context.Context
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.productRepo = new(MockProductRepository)
	suite.brandRepo = new(MockBrandRepository)
	suite.categoryRepo = new(MockCategoryRepository)
	suite.images = new(MockImageService)
	suite.service = NewProductService(suite.productRepo, suite.brandRepo, suite.categoryRepo, suite.images, nil, nil)
	suite.ctx = context.Background()
}

func (suite *ProductServiceTestSuite) TearDownTest() {
	suite.productRepo.AssertExpectations(suite.T())
	suite.brandRepo.AssertExpectations(suite.T())
	suite.categoryRepo.AssertExpectations(suite.T())
	suite.images.AssertExpectations(suite.T())
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

func validProduct() *models.Product {
	return &models.Product{
		Name:        "Silk dress",
		Description: "Midi length",
		BrandID:     1,
		CategoryID:  2,
		Images:      []string{"https://cdn.example.com/fotos-valeria/products/a.webp"},
	}
}

func (suite *ProductServiceTestSuite) expectOwners() {
	suite.brandRepo.On("GetByID", suite.ctx, int64(1)).Return(&models.Brand{ID: 1, Name: "Aura"}, nil).Once()
	suite.categoryRepo.On("GetByID", suite.ctx, int64(2)).Return(&models.Category{ID: 2, Name: "Dresses"}, nil).Once()
}

func (suite *ProductServiceTestSuite) TestCreate_Validation() {
	cases := map[string]func(p *models.Product){
		"missing name":        func(p *models.Product) { p.Name = "" },
		"missing description": func(p *models.Product) { p.Description = " " },
		"missing brand":       func(p *models.Product) { p.BrandID = 0 },
		"missing category":    func(p *models.Product) { p.CategoryID = 0 },
		"no images":           func(p *models.Product) { p.Images = []string{""} },
	}
	for name, mutate := range cases {
		product := validProduct()
		mutate(product)
		err := suite.service.Create(suite.ctx, product)
		assert.ErrorIs(suite.T(), err, ErrValidation, name)
	}
	suite.productRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestCreate_UnknownBrand() {
	suite.brandRepo.On("GetByID", suite.ctx, int64(1)).Return(nil, repositories.ErrNotFound).Once()

	err := suite.service.Create(suite.ctx, validProduct())
	assert.ErrorIs(suite.T(), err, ErrValidation)
}

func (suite *ProductServiceTestSuite) TestCreate_Success() {
	product := validProduct()
	suite.expectOwners()
	suite.productRepo.On("Create", suite.ctx, product).Return(nil).Once()

	assert.NoError(suite.T(), suite.service.Create(suite.ctx, product))
}

func (suite *ProductServiceTestSuite) TestUpdate_RetiresRemovedImages() {
	existing := validProduct()
	existing.ID = 10
	existing.Images = []string{
		"https://cdn.example.com/fotos-valeria/products/a.webp",
		"https://cdn.example.com/fotos-valeria/products/b.webp",
	}
	product := validProduct()
	product.ID = 10

	suite.expectOwners()
	suite.productRepo.On("GetByID", suite.ctx, int64(10)).Return(existing, nil).Once()
	suite.productRepo.On("Update", suite.ctx, product).Return(nil).Once()
	suite.images.On("Retire", suite.ctx, models.AssetProduct, "https://cdn.example.com/fotos-valeria/products/b.webp").Once()

	assert.NoError(suite.T(), suite.service.Update(suite.ctx, product))
}

func (suite *ProductServiceTestSuite) TestDelete_RetiresEveryImage() {
	existing := validProduct()
	existing.ID = 11
	existing.Images = append(existing.Images, "https://cdn.example.com/fotos-valeria/products/c.webp")

	suite.productRepo.On("GetByID", suite.ctx, int64(11)).Return(existing, nil).Once()
	suite.productRepo.On("Delete", suite.ctx, int64(11)).Return(nil).Once()
	suite.images.On("Retire", suite.ctx, models.AssetProduct, mock.Anything).Twice()

	assert.NoError(suite.T(), suite.service.Delete(suite.ctx, 11))
}

func (suite *ProductServiceTestSuite) TestAddImage_PersistFailureRetiresUpload() {
	existing := validProduct()
	existing.ID = 12
	file := &UploadFile{Filename: "p.jpg", ContentType: "image/jpeg"}
	newURL := "https://cdn.example.com/fotos-valeria/products/product_1_zzzzzz.webp"

	suite.productRepo.On("GetByID", suite.ctx, int64(12)).Return(existing, nil).Once()
	suite.images.On("Upload", suite.ctx, file, models.AssetProduct, "").Return(newURL, nil).Once()
	suite.productRepo.On("Update", suite.ctx, mock.Anything).Return(errors.New("connection refused")).Once()
	suite.images.On("Retire", suite.ctx, models.AssetProduct, newURL).Once()

	product, err := suite.service.AddImage(suite.ctx, 12, file)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), product)
}

func (suite *ProductServiceTestSuite) TestAddImage_Appends() {
	existing := validProduct()
	existing.ID = 12
	file := &UploadFile{Filename: "p.jpg", ContentType: "image/jpeg"}
	newURL := "https://cdn.example.com/fotos-valeria/products/product_1_zzzzzz.webp"

	suite.productRepo.On("GetByID", suite.ctx, int64(12)).Return(existing, nil).Once()
	suite.images.On("Upload", suite.ctx, file, models.AssetProduct, "").Return(newURL, nil).Once()
	suite.productRepo.On("Update", suite.ctx, existing).Return(nil).Once()

	product, err := suite.service.AddImage(suite.ctx, 12, file)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), product.Images, 2)
	assert.Equal(suite.T(), newURL, product.Images[1])
}

func (suite *ProductServiceTestSuite) TestRemoveImage_KeepsLastImage() {
	existing := validProduct()
	existing.ID = 13

	suite.productRepo.On("GetByID", suite.ctx, int64(13)).Return(existing, nil).Once()

	_, err := suite.service.RemoveImage(suite.ctx, 13, existing.Images[0])
	assert.ErrorIs(suite.T(), err, ErrValidation)
}

func (suite *ProductServiceTestSuite) TestRemoveImage_UnknownURL() {
	existing := validProduct()
	existing.ID = 13

	suite.productRepo.On("GetByID", suite.ctx, int64(13)).Return(existing, nil).Once()

	_, err := suite.service.RemoveImage(suite.ctx, 13, "https://cdn.example.com/other.webp")
	assert.ErrorIs(suite.T(), err, repositories.ErrNotFound)
}

func (suite *ProductServiceTestSuite) TestList_PassesFilter() {
	brandID := int64(1)
	filter := models.ProductFilter{BrandID: &brandID, FeaturedOnly: true, Limit: 6}
	suite.productRepo.On("List", suite.ctx, filter).Return([]*models.Product{validProduct()}, nil).Once()

	products, err := suite.service.List(suite.ctx, filter)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), products, 1)
}
