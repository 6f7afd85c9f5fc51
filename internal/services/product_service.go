package services

import (
	"context"
	"errors"
	"slices"

	"boutique/internal/caching"
	"boutique/internal/events"
	"boutique/internal/models"
	"boutique/internal/repositories"
)

type ProductService interface {
	List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int64) error

	// Image gallery
	AddImage(ctx context.Context, id int64, file *UploadFile) (*models.Product, error)
	RemoveImage(ctx context.Context, id int64, url string) (*models.Product, error)
}

type productService struct {
	productRepo  repositories.ProductRepository
	brandRepo    repositories.BrandRepository
	categoryRepo repositories.CategoryRepository
	images       ImageService
	notifier     *catalogNotifier
	fields       *assetFields
}

func NewProductService(productRepo repositories.ProductRepository, brandRepo repositories.BrandRepository, categoryRepo repositories.CategoryRepository, images ImageService, cacheService caching.CacheService, publisher events.Publisher) ProductService {
	return &productService{
		productRepo:  productRepo,
		brandRepo:    brandRepo,
		categoryRepo: categoryRepo,
		images:       images,
		notifier:     &catalogNotifier{cache: cacheService, publisher: publisher},
		fields:       newAssetFields(),
	}
}

func (s *productService) List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	return s.productRepo.List(ctx, filter)
}

func (s *productService) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *productService) validate(ctx context.Context, product *models.Product) error {
	if err := required(product.Name, "name"); err != nil {
		return err
	}
	if err := required(product.Description, "description"); err != nil {
		return err
	}
	if product.BrandID <= 0 {
		return validationError("brand_id is required")
	}
	if product.CategoryID <= 0 {
		return validationError("category_id is required")
	}

	product.Images = slices.DeleteFunc(product.Images, func(u string) bool { return u == "" })
	if len(product.Images) == 0 {
		return validationError("at least one image is required")
	}

	if _, err := s.brandRepo.GetByID(ctx, product.BrandID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return validationError("brand %d does not exist", product.BrandID)
		}
		return err
	}
	if _, err := s.categoryRepo.GetByID(ctx, product.CategoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return validationError("category %d does not exist", product.CategoryID)
		}
		return err
	}
	return nil
}

func (s *productService) Create(ctx context.Context, product *models.Product) error {
	if err := s.validate(ctx, product); err != nil {
		return err
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return err
	}
	s.notifier.changed(ctx, events.CatalogCreated, "product", product.ID, product.Images...)
	return nil
}

func (s *productService) Update(ctx context.Context, product *models.Product) error {
	if err := s.validate(ctx, product); err != nil {
		return err
	}
	existing, err := s.productRepo.GetByID(ctx, product.ID)
	if err != nil {
		return err
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return err
	}

	for _, url := range existing.Images {
		if !slices.Contains(product.Images, url) {
			s.images.Retire(ctx, models.AssetProduct, url)
		}
	}
	s.notifier.changed(ctx, events.CatalogUpdated, "product", product.ID, product.Images...)
	return nil
}

// Delete removes the record first; image cleanup failures only leave orphans
func (s *productService) Delete(ctx context.Context, id int64) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}

	for _, url := range product.Images {
		s.images.Retire(ctx, models.AssetProduct, url)
	}
	s.notifier.changed(ctx, events.CatalogDeleted, "product", id, product.Images...)
	return nil
}

// AddImage appends a freshly uploaded image to the product gallery
func (s *productService) AddImage(ctx context.Context, id int64, file *UploadFile) (*models.Product, error) {
	var product *models.Product
	load := func() (string, error) {
		var err error
		product, err = s.productRepo.GetByID(ctx, id)
		return "", err
	}

	_, err := replaceAsset(ctx, s.fields, assetKey("product", id), s.images, file, models.AssetProduct, load, func(url string) error {
		product.Images = append(product.Images, url)
		return s.productRepo.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.changed(ctx, events.AssetUploaded, "product", product.ID, product.Images[len(product.Images)-1])
	return product, nil
}

func (s *productService) RemoveImage(ctx context.Context, id int64, url string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	idx := slices.Index(product.Images, url)
	if idx < 0 {
		return nil, repositories.ErrNotFound
	}
	if len(product.Images) == 1 {
		return nil, validationError("at least one image is required")
	}

	product.Images = slices.Delete(product.Images, idx, idx+1)
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.images.Retire(ctx, models.AssetProduct, url)
	s.notifier.changed(ctx, events.CatalogUpdated, "product", product.ID, product.Images...)
	return product, nil
}
