package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"boutique/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type HomeServiceTestSuite struct {
	suite.Suite
	settingsRepo *MockSiteSettingsRepository
	slideRepo    *MockHeroSlideRepository
	categoryRepo *MockCategoryRepository
	brandRepo    *MockBrandRepository
	productRepo  *MockProductRepository
	shopperRepo  *MockPersonalShopperRepository
	cache        *MockCacheService
	service      HomeService
	ctx          context.Context
}

func (suite *HomeServiceTestSuite) SetupTest() {
	suite.settingsRepo = new(MockSiteSettingsRepository)
	suite.slideRepo = new(MockHeroSlideRepository)
	suite.categoryRepo = new(MockCategoryRepository)
	suite.brandRepo = new(MockBrandRepository)
	suite.productRepo = new(MockProductRepository)
	suite.shopperRepo = new(MockPersonalShopperRepository)
	suite.cache = new(MockCacheService)
	suite.ctx = context.Background()

	images := new(MockImageService)
	suite.service = NewHomeService(
		NewSettingsService(suite.settingsRepo, suite.cache, nil),
		NewHeroSlideService(suite.slideRepo, images, suite.cache, nil),
		NewCategoryService(suite.categoryRepo, suite.productRepo, images, suite.cache, nil),
		NewBrandService(suite.brandRepo, suite.productRepo, images, suite.cache, nil),
		NewProductService(suite.productRepo, suite.brandRepo, suite.categoryRepo, images, suite.cache, nil),
		NewPersonalShopperService(suite.shopperRepo, images, suite.cache, nil),
		suite.cache,
		time.Minute,
	)

	suite.cache.On("GetSettings", mock.Anything).Return(nil, nil).Maybe()
	suite.cache.On("SetSettings", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
}

func TestHomeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(HomeServiceTestSuite))
}

func (suite *HomeServiceTestSuite) TestGet_ServesCachedPage() {
	cached := &models.HomePage{Settings: models.DefaultSiteSettings()}
	suite.cache.On("GetHomePage", suite.ctx).Return(cached, nil).Once()

	home, err := suite.service.Get(suite.ctx)
	assert.NoError(suite.T(), err)
	assert.Same(suite.T(), cached, home)
	suite.settingsRepo.AssertNotCalled(suite.T(), "Get", mock.Anything)
}

func (suite *HomeServiceTestSuite) TestGet_BuildsEverySection() {
	settings := models.DefaultSiteSettings()
	settings.ID = 1
	featured := []*models.Product{{ID: 1, Name: "Featured", IsFeatured: true}}
	latest := []*models.Product{{ID: 2, Name: "Latest"}, {ID: 1, Name: "Featured", IsFeatured: true}}

	suite.cache.On("GetHomePage", suite.ctx).Return(nil, nil).Once()
	suite.settingsRepo.On("Get", mock.Anything).Return(settings, nil).Once()
	suite.slideRepo.On("List", mock.Anything).Return([]*models.HeroSlide{{ID: 1, Title: "Summer"}}, nil).Once()
	suite.categoryRepo.On("List", mock.Anything).Return([]*models.Category{{ID: 1, Name: "Dresses"}}, nil).Once()
	suite.brandRepo.On("List", mock.Anything).Return([]*models.Brand{{ID: 1, Name: "Aura"}}, nil).Once()
	suite.productRepo.On("List", mock.Anything, models.ProductFilter{FeaturedOnly: true, Limit: HomeSectionLimit}).Return(featured, nil).Once()
	suite.productRepo.On("List", mock.Anything, models.ProductFilter{Limit: HomeSectionLimit}).Return(latest, nil).Once()
	suite.shopperRepo.On("Get", mock.Anything).Return(&models.PersonalShopper{ID: 1, Title: "Valeria"}, nil).Once()
	suite.cache.On("SetHomePage", suite.ctx, mock.Anything, mock.Anything).Return(nil).Once()

	home, err := suite.service.Get(suite.ctx)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), home.HeroSlides, 1)
	assert.Len(suite.T(), home.Categories, 1)
	assert.Len(suite.T(), home.Brands, 1)
	assert.Equal(suite.T(), featured, home.FeaturedProducts)
	assert.Equal(suite.T(), latest, home.Products)
	assert.Equal(suite.T(), "Valeria", home.PersonalShopper.Title)
	suite.cache.AssertExpectations(suite.T())
}

func (suite *HomeServiceTestSuite) TestRefresh_HiddenSectionsAreNotQueried() {
	settings := models.DefaultSiteSettings()
	settings.ShowHeroSlides = false
	settings.ShowBrands = false
	settings.ShowFeaturedProducts = false
	settings.ShowAllProducts = false
	settings.ShowPersonalShopper = false

	suite.settingsRepo.On("Get", mock.Anything).Return(settings, nil).Once()
	suite.categoryRepo.On("List", mock.Anything).Return([]*models.Category{{ID: 1, Name: "Bags"}}, nil).Once()
	suite.cache.On("SetHomePage", suite.ctx, mock.Anything, mock.Anything).Return(nil).Once()

	home, err := suite.service.Refresh(suite.ctx)
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), home.HeroSlides)
	assert.Empty(suite.T(), home.Brands)
	assert.Empty(suite.T(), home.Products)
	assert.Nil(suite.T(), home.PersonalShopper)
	assert.Len(suite.T(), home.Categories, 1)
	suite.slideRepo.AssertNotCalled(suite.T(), "List", mock.Anything)
	suite.brandRepo.AssertNotCalled(suite.T(), "List", mock.Anything)
	suite.productRepo.AssertNotCalled(suite.T(), "List", mock.Anything, mock.Anything)
	suite.shopperRepo.AssertNotCalled(suite.T(), "Get", mock.Anything)
}

func (suite *HomeServiceTestSuite) TestRefresh_SectionFailureFailsPage() {
	settings := models.DefaultSiteSettings()
	settings.ShowHeroSlides = false
	settings.ShowCategories = false
	settings.ShowFeaturedProducts = false
	settings.ShowAllProducts = false
	settings.ShowPersonalShopper = false

	suite.settingsRepo.On("Get", mock.Anything).Return(settings, nil).Once()
	suite.brandRepo.On("List", mock.Anything).Return([]*models.Brand(nil), errors.New("too many connections")).Once()

	home, err := suite.service.Refresh(suite.ctx)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), home)
	suite.cache.AssertNotCalled(suite.T(), "SetHomePage", mock.Anything, mock.Anything, mock.Anything)
}
