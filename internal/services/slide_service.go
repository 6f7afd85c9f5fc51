package services

import (
	"context"
	"fmt"

	"boutique/internal/caching"
	"boutique/internal/events"
	"boutique/internal/models"
	"boutique/internal/repositories"
)

type HeroSlideService interface {
	List(ctx context.Context) ([]*models.HeroSlide, error)
	GetByID(ctx context.Context, id int64) (*models.HeroSlide, error)
	Create(ctx context.Context, slide *models.HeroSlide) error
	Update(ctx context.Context, slide *models.HeroSlide) error
	Delete(ctx context.Context, id int64) error
	ReplaceImage(ctx context.Context, id int64, file *UploadFile) (*models.HeroSlide, error)
}

type heroSlideService struct {
	slideRepo repositories.HeroSlideRepository
	images    ImageService
	notifier  *catalogNotifier
	fields    *assetFields
}

func NewHeroSlideService(slideRepo repositories.HeroSlideRepository, images ImageService, cacheService caching.CacheService, publisher events.Publisher) HeroSlideService {
	return &heroSlideService{
		slideRepo: slideRepo,
		images:    images,
		notifier:  &catalogNotifier{cache: cacheService, publisher: publisher},
		fields:    newAssetFields(),
	}
}

func validateSlide(slide *models.HeroSlide) error {
	if err := required(slide.ImageURL, "image_url"); err != nil {
		return err
	}
	return required(slide.Title, "title")
}

func (s *heroSlideService) List(ctx context.Context) ([]*models.HeroSlide, error) {
	return s.slideRepo.List(ctx)
}

func (s *heroSlideService) GetByID(ctx context.Context, id int64) (*models.HeroSlide, error) {
	return s.slideRepo.GetByID(ctx, id)
}

func (s *heroSlideService) Create(ctx context.Context, slide *models.HeroSlide) error {
	if err := validateSlide(slide); err != nil {
		return err
	}
	if err := s.slideRepo.Create(ctx, slide); err != nil {
		return err
	}
	s.notifier.changed(ctx, events.CatalogCreated, "hero_slide", slide.ID, slide.ImageURL)
	return nil
}

func (s *heroSlideService) Update(ctx context.Context, slide *models.HeroSlide) error {
	if err := required(slide.Title, "title"); err != nil {
		return err
	}
	if s.fields.pending(assetKey("hero_slide", slide.ID)) {
		return fmt.Errorf("%w: hero slide %d image replacement in progress", ErrInvalidTransition, slide.ID)
	}
	existing, err := s.slideRepo.GetByID(ctx, slide.ID)
	if err != nil {
		return err
	}
	if slide.ImageURL == "" {
		slide.ImageURL = existing.ImageURL
	}
	if err := validateSlide(slide); err != nil {
		return err
	}
	if err := s.slideRepo.Update(ctx, slide); err != nil {
		return err
	}
	if existing.ImageURL != slide.ImageURL {
		s.images.Retire(ctx, models.AssetSlide, existing.ImageURL)
	}
	s.notifier.changed(ctx, events.CatalogUpdated, "hero_slide", slide.ID, slide.ImageURL)
	return nil
}

func (s *heroSlideService) Delete(ctx context.Context, id int64) error {
	slide, err := s.slideRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.slideRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.images.Retire(ctx, models.AssetSlide, slide.ImageURL)
	s.notifier.changed(ctx, events.CatalogDeleted, "hero_slide", id, slide.ImageURL)
	return nil
}

func (s *heroSlideService) ReplaceImage(ctx context.Context, id int64, file *UploadFile) (*models.HeroSlide, error) {
	var slide *models.HeroSlide
	load := func() (string, error) {
		var err error
		if slide, err = s.slideRepo.GetByID(ctx, id); err != nil {
			return "", err
		}
		return slide.ImageURL, nil
	}

	_, err := replaceAsset(ctx, s.fields, assetKey("hero_slide", id), s.images, file, models.AssetSlide, load, func(url string) error {
		slide.ImageURL = url
		return s.slideRepo.Update(ctx, slide)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.changed(ctx, events.AssetUploaded, "hero_slide", slide.ID, slide.ImageURL)
	return slide, nil
}
