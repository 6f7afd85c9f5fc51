package services

import (
	"context"
	"log"
	"time"

	"boutique/internal/caching"
	"boutique/internal/models"

	"golang.org/x/sync/errgroup"
)

// HomeSectionLimit caps the featured and latest product strips on the landing page
const HomeSectionLimit = 6

type HomeService interface {
	// Get serves the landing page, from cache when possible
	Get(ctx context.Context) (*models.HomePage, error)
	// Refresh rebuilds the landing page and stores it in the cache
	Refresh(ctx context.Context) (*models.HomePage, error)
}

type homeService struct {
	settings   SettingsService
	slides     HeroSlideService
	categories CategoryService
	brands     BrandService
	products   ProductService
	shopper    PersonalShopperService
	cache      caching.CacheService
	ttl        time.Duration
}

func NewHomeService(settings SettingsService, slides HeroSlideService, categories CategoryService, brands BrandService, products ProductService, shopper PersonalShopperService, cacheService caching.CacheService, ttl time.Duration) HomeService {
	return &homeService{
		settings:   settings,
		slides:     slides,
		categories: categories,
		brands:     brands,
		products:   products,
		shopper:    shopper,
		cache:      cacheService,
		ttl:        ttl,
	}
}

func (s *homeService) Get(ctx context.Context) (*models.HomePage, error) {
	if cached, err := s.cache.GetHomePage(ctx); cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("WARN: Cache error for home page: %v", err)
	}
	return s.Refresh(ctx)
}

func (s *homeService) Refresh(ctx context.Context) (*models.HomePage, error) {
	home, err := s.build(ctx)
	if err != nil {
		return nil, err
	}
	if cacheErr := s.cache.SetHomePage(ctx, home, s.ttl); cacheErr != nil {
		log.Printf("WARN: Failed to cache home page: %v", cacheErr)
	}
	return home, nil
}

func (s *homeService) build(ctx context.Context) (*models.HomePage, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	home := &models.HomePage{
		Settings:         settings,
		HeroSlides:       []*models.HeroSlide{},
		Categories:       []*models.Category{},
		Brands:           []*models.Brand{},
		FeaturedProducts: []*models.Product{},
		Products:         []*models.Product{},
	}

	g, gctx := errgroup.WithContext(ctx)
	if settings.ShowHeroSlides {
		g.Go(func() (err error) {
			home.HeroSlides, err = s.slides.List(gctx)
			return err
		})
	}
	if settings.ShowCategories {
		g.Go(func() (err error) {
			home.Categories, err = s.categories.List(gctx)
			return err
		})
	}
	if settings.ShowBrands {
		g.Go(func() (err error) {
			home.Brands, err = s.brands.List(gctx)
			return err
		})
	}
	if settings.ShowFeaturedProducts {
		g.Go(func() (err error) {
			home.FeaturedProducts, err = s.products.List(gctx, models.ProductFilter{FeaturedOnly: true, Limit: HomeSectionLimit})
			return err
		})
	}
	if settings.ShowAllProducts {
		g.Go(func() (err error) {
			home.Products, err = s.products.List(gctx, models.ProductFilter{Limit: HomeSectionLimit})
			return err
		})
	}
	if settings.ShowPersonalShopper {
		g.Go(func() (err error) {
			home.PersonalShopper, err = s.shopper.Get(gctx)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return home, nil
}
