package services

import (
	"context"
	"fmt"

	"boutique/internal/caching"
	"boutique/internal/events"
	"boutique/internal/models"
	"boutique/internal/repositories"
)

type CategoryService interface {
	List(ctx context.Context) ([]*models.Category, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int64) error
	ReplaceImage(ctx context.Context, id int64, file *UploadFile) (*models.Category, error)
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
	images       ImageService
	notifier     *catalogNotifier
	fields       *assetFields
}

func NewCategoryService(categoryRepo repositories.CategoryRepository, productRepo repositories.ProductRepository, images ImageService, cacheService caching.CacheService, publisher events.Publisher) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		images:       images,
		notifier:     &catalogNotifier{cache: cacheService, publisher: publisher},
		fields:       newAssetFields(),
	}
}

func (s *categoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *categoryService) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

func (s *categoryService) Create(ctx context.Context, category *models.Category) error {
	if err := required(category.Name, "name"); err != nil {
		return err
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return err
	}
	s.notifier.changed(ctx, events.CatalogCreated, "category", category.ID, category.ImageURL)
	return nil
}

func (s *categoryService) Update(ctx context.Context, category *models.Category) error {
	if err := required(category.Name, "name"); err != nil {
		return err
	}
	if s.fields.pending(assetKey("category", category.ID)) {
		return fmt.Errorf("%w: category %d image replacement in progress", ErrInvalidTransition, category.ID)
	}
	existing, err := s.categoryRepo.GetByID(ctx, category.ID)
	if err != nil {
		return err
	}
	if category.ImageURL == "" {
		category.ImageURL = existing.ImageURL
	}
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return err
	}
	if existing.ImageURL != category.ImageURL {
		s.images.Retire(ctx, models.AssetCategoryImage, existing.ImageURL)
	}
	s.notifier.changed(ctx, events.CatalogUpdated, "category", category.ID, category.ImageURL)
	return nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	productImages, err := s.productRepo.ListImagesByCategory(ctx, id)
	if err != nil {
		return err
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.images.Retire(ctx, models.AssetCategoryImage, category.ImageURL)
	for _, url := range productImages {
		s.images.Retire(ctx, models.AssetProduct, url)
	}
	s.notifier.changed(ctx, events.CatalogDeleted, "category", id, append([]string{category.ImageURL}, productImages...)...)
	return nil
}

func (s *categoryService) ReplaceImage(ctx context.Context, id int64, file *UploadFile) (*models.Category, error) {
	var category *models.Category
	load := func() (string, error) {
		var err error
		if category, err = s.categoryRepo.GetByID(ctx, id); err != nil {
			return "", err
		}
		return category.ImageURL, nil
	}

	_, err := replaceAsset(ctx, s.fields, assetKey("category", id), s.images, file, models.AssetCategoryImage, load, func(url string) error {
		category.ImageURL = url
		return s.categoryRepo.Update(ctx, category)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.changed(ctx, events.AssetUploaded, "category", category.ID, category.ImageURL)
	return category, nil
}
