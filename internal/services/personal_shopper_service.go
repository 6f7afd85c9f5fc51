package services

import (
	"context"
	"errors"

	"boutique/internal/caching"
	"boutique/internal/events"
	"boutique/internal/models"
	"boutique/internal/repositories"
)

type PersonalShopperService interface {
	// Get returns nil without error when the block has never been saved
	Get(ctx context.Context) (*models.PersonalShopper, error)
	// Save updates the existing block or creates it
	Save(ctx context.Context, ps *models.PersonalShopper) error
	ReplaceImage(ctx context.Context, file *UploadFile) (*models.PersonalShopper, error)
}

type personalShopperService struct {
	repo     repositories.PersonalShopperRepository
	images   ImageService
	notifier *catalogNotifier
	fields   *assetFields
}

func NewPersonalShopperService(repo repositories.PersonalShopperRepository, images ImageService, cacheService caching.CacheService, publisher events.Publisher) PersonalShopperService {
	return &personalShopperService{
		repo:     repo,
		images:   images,
		notifier: &catalogNotifier{cache: cacheService, publisher: publisher},
		fields:   newAssetFields(),
	}
}

func (s *personalShopperService) Get(ctx context.Context) (*models.PersonalShopper, error) {
	ps, err := s.repo.Get(ctx)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	return ps, err
}

func validatePersonalShopper(ps *models.PersonalShopper) error {
	checks := []struct{ value, field string }{
		{ps.ImageURL, "image_url"},
		{ps.Title, "title"},
		{ps.Description1, "description1"},
		{ps.Description2, "description2"},
		{ps.Description3, "description3"},
	}
	for _, c := range checks {
		if err := required(c.value, c.field); err != nil {
			return err
		}
	}
	return nil
}

func (s *personalShopperService) Save(ctx context.Context, ps *models.PersonalShopper) error {
	if err := validatePersonalShopper(ps); err != nil {
		return err
	}

	existing, err := s.Get(ctx)
	if err != nil {
		return err
	}

	if existing == nil {
		if err := s.repo.Create(ctx, ps); err != nil {
			return err
		}
		s.notifier.changed(ctx, events.CatalogCreated, "personal_shopper", ps.ID, ps.ImageURL)
		return nil
	}

	ps.ID = existing.ID
	ps.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, ps); err != nil {
		return err
	}
	if existing.ImageURL != ps.ImageURL {
		s.images.Retire(ctx, models.AssetSlide, existing.ImageURL)
	}
	s.notifier.changed(ctx, events.CatalogUpdated, "personal_shopper", ps.ID, ps.ImageURL)
	return nil
}

// ReplaceImage swaps the block's photo. The block must already exist since
// every other field is required.
func (s *personalShopperService) ReplaceImage(ctx context.Context, file *UploadFile) (*models.PersonalShopper, error) {
	var ps *models.PersonalShopper
	load := func() (string, error) {
		var err error
		if ps, err = s.repo.Get(ctx); err != nil {
			return "", err
		}
		return ps.ImageURL, nil
	}

	_, err := replaceAsset(ctx, s.fields, "personal_shopper", s.images, file, models.AssetSlide, load, func(url string) error {
		ps.ImageURL = url
		return s.repo.Update(ctx, ps)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.changed(ctx, events.AssetUploaded, "personal_shopper", ps.ID, ps.ImageURL)
	return ps, nil
}
