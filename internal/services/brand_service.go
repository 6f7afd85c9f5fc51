package services

import (
	"context"
	"fmt"

	"boutique/internal/caching"
	"boutique/internal/events"
	"boutique/internal/models"
	"boutique/internal/repositories"
)

type BrandService interface {
	List(ctx context.Context) ([]*models.Brand, error)
	GetByID(ctx context.Context, id int64) (*models.Brand, error)
	Create(ctx context.Context, brand *models.Brand) error
	Update(ctx context.Context, brand *models.Brand) error
	Delete(ctx context.Context, id int64) error
	ReplaceLogo(ctx context.Context, id int64, file *UploadFile) (*models.Brand, error)
}

type brandService struct {
	brandRepo   repositories.BrandRepository
	productRepo repositories.ProductRepository
	images      ImageService
	notifier    *catalogNotifier
	fields      *assetFields
}

func NewBrandService(brandRepo repositories.BrandRepository, productRepo repositories.ProductRepository, images ImageService, cacheService caching.CacheService, publisher events.Publisher) BrandService {
	return &brandService{
		brandRepo:   brandRepo,
		productRepo: productRepo,
		images:      images,
		notifier:    &catalogNotifier{cache: cacheService, publisher: publisher},
		fields:      newAssetFields(),
	}
}

func (s *brandService) List(ctx context.Context) ([]*models.Brand, error) {
	return s.brandRepo.List(ctx)
}

func (s *brandService) GetByID(ctx context.Context, id int64) (*models.Brand, error) {
	return s.brandRepo.GetByID(ctx, id)
}

func (s *brandService) Create(ctx context.Context, brand *models.Brand) error {
	if err := required(brand.Name, "name"); err != nil {
		return err
	}
	if err := s.brandRepo.Create(ctx, brand); err != nil {
		return err
	}
	s.notifier.changed(ctx, events.CatalogCreated, "brand", brand.ID, brand.LogoURL)
	return nil
}

func (s *brandService) Update(ctx context.Context, brand *models.Brand) error {
	if err := required(brand.Name, "name"); err != nil {
		return err
	}
	if s.fields.pending(assetKey("brand", brand.ID)) {
		return fmt.Errorf("%w: brand %d logo replacement in progress", ErrInvalidTransition, brand.ID)
	}
	existing, err := s.brandRepo.GetByID(ctx, brand.ID)
	if err != nil {
		return err
	}
	if brand.LogoURL == "" {
		brand.LogoURL = existing.LogoURL
	}
	if err := s.brandRepo.Update(ctx, brand); err != nil {
		return err
	}
	if existing.LogoURL != brand.LogoURL {
		s.images.Retire(ctx, models.AssetBrand, existing.LogoURL)
	}
	s.notifier.changed(ctx, events.CatalogUpdated, "brand", brand.ID, brand.LogoURL)
	return nil
}

// Delete removes the brand and, through the cascade, its products. Their images
// are deleted afterwards on a best effort basis.
func (s *brandService) Delete(ctx context.Context, id int64) error {
	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	productImages, err := s.productRepo.ListImagesByBrand(ctx, id)
	if err != nil {
		return err
	}

	if err := s.brandRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.images.Retire(ctx, models.AssetBrand, brand.LogoURL)
	for _, url := range productImages {
		s.images.Retire(ctx, models.AssetProduct, url)
	}
	s.notifier.changed(ctx, events.CatalogDeleted, "brand", id, append([]string{brand.LogoURL}, productImages...)...)
	return nil
}

func (s *brandService) ReplaceLogo(ctx context.Context, id int64, file *UploadFile) (*models.Brand, error) {
	var brand *models.Brand
	load := func() (string, error) {
		var err error
		if brand, err = s.brandRepo.GetByID(ctx, id); err != nil {
			return "", err
		}
		return brand.LogoURL, nil
	}

	_, err := replaceAsset(ctx, s.fields, assetKey("brand", id), s.images, file, models.AssetBrand, load, func(url string) error {
		brand.LogoURL = url
		return s.brandRepo.Update(ctx, brand)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.changed(ctx, events.AssetUploaded, "brand", brand.ID, brand.LogoURL)
	return brand, nil
}
