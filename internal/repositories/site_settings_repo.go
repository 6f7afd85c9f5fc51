package repositories

import (
	"context"

	"boutique/internal/models"
)

type SiteSettingsRepository interface {
	// Get returns the singleton settings row
	Get(ctx context.Context) (*models.SiteSettings, error)
	Update(ctx context.Context, settings *models.SiteSettings) error
}

type siteSettingsRepo struct {
	db DBTX
}

func NewSiteSettingsRepo(db DBTX) SiteSettingsRepository {
	return &siteSettingsRepo{db: db}
}

func (r *siteSettingsRepo) Get(ctx context.Context) (*models.SiteSettings, error) {
	s := &models.SiteSettings{}
	query := `
		SELECT id, show_hero_slides, show_featured_products, show_brands, show_categories,
			show_all_products, show_personal_shopper, brands_title, categories_title,
			featured_products_title, created_at, updated_at
		FROM site_settings
		ORDER BY id ASC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query).Scan(&s.ID, &s.ShowHeroSlides, &s.ShowFeaturedProducts, &s.ShowBrands,
		&s.ShowCategories, &s.ShowAllProducts, &s.ShowPersonalShopper, &s.BrandsTitle, &s.CategoriesTitle,
		&s.FeaturedProductsTitle, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return s, nil
}

func (r *siteSettingsRepo) Update(ctx context.Context, s *models.SiteSettings) error {
	query := `
		UPDATE site_settings
		SET show_hero_slides = $1, show_featured_products = $2, show_brands = $3, show_categories = $4,
			show_all_products = $5, show_personal_shopper = $6, brands_title = $7, categories_title = $8,
			featured_products_title = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, s.ShowHeroSlides, s.ShowFeaturedProducts, s.ShowBrands, s.ShowCategories,
		s.ShowAllProducts, s.ShowPersonalShopper, s.BrandsTitle, s.CategoriesTitle,
		s.FeaturedProductsTitle, s.ID).Scan(&s.UpdatedAt)
	return mapNoRows(err)
}
