package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"boutique/internal/caching"
	"boutique/internal/events"
	"boutique/internal/models"
	"boutique/internal/repositories"
)

var ErrSettingsMissing = errors.New("site settings row is missing; run migrations")

type SettingsService interface {
	Get(ctx context.Context) (*models.SiteSettings, error)
	Update(ctx context.Context, settings *models.SiteSettings) (*models.SiteSettings, error)
}

type settingsService struct {
	repo     repositories.SiteSettingsRepository
	cache    caching.CacheService
	notifier *catalogNotifier
}

func NewSettingsService(repo repositories.SiteSettingsRepository, cacheService caching.CacheService, publisher events.Publisher) SettingsService {
	return &settingsService{
		repo:     repo,
		cache:    cacheService,
		notifier: &catalogNotifier{cache: cacheService, publisher: publisher},
	}
}

// Get falls back to the column defaults when the singleton row is absent
func (s *settingsService) Get(ctx context.Context) (*models.SiteSettings, error) {
	if cached, err := s.cache.GetSettings(ctx); cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("WARN: Cache error for site settings: %v", err)
	}

	settings, err := s.repo.Get(ctx)
	if errors.Is(err, repositories.ErrNotFound) {
		log.Printf("WARN: %v, serving defaults", ErrSettingsMissing)
		return models.DefaultSiteSettings(), nil
	}
	if err != nil {
		return nil, err
	}

	if cacheErr := s.cache.SetSettings(ctx, settings, 15*time.Minute); cacheErr != nil {
		log.Printf("WARN: Failed to cache site settings: %v", cacheErr)
	}
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, settings *models.SiteSettings) (*models.SiteSettings, error) {
	settings.BrandsTitle = strings.TrimSpace(settings.BrandsTitle)
	settings.CategoriesTitle = strings.TrimSpace(settings.CategoriesTitle)
	settings.FeaturedProductsTitle = strings.TrimSpace(settings.FeaturedProductsTitle)
	titles := []struct{ value, field string }{
		{settings.BrandsTitle, "brands_title"},
		{settings.CategoriesTitle, "categories_title"},
		{settings.FeaturedProductsTitle, "featured_products_title"},
	}
	for _, t := range titles {
		if err := required(t.value, t.field); err != nil {
			return nil, err
		}
	}

	existing, err := s.repo.Get(ctx)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrSettingsMissing
	}
	if err != nil {
		return nil, err
	}

	settings.ID = existing.ID
	settings.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to update site settings: %w", err)
	}

	s.notifier.changed(ctx, events.CatalogUpdated, "site_settings", settings.ID)
	return settings, nil
}
