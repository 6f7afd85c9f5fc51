package models

import "time"

const (
	DefaultBrandsTitle           = "Marcas que Trabalhamos"
	DefaultCategoriesTitle       = "Categorias"
	DefaultFeaturedProductsTitle = "Produtos em Destaque"
)

// SiteSettings is a singleton row controlling which landing page sections are shown
type SiteSettings struct {
	ID                    int64     `json:"id" db:"id"`
	ShowHeroSlides        bool      `json:"show_hero_slides" db:"show_hero_slides"`
	ShowFeaturedProducts  bool      `json:"show_featured_products" db:"show_featured_products"`
	ShowBrands            bool      `json:"show_brands" db:"show_brands"`
	ShowCategories        bool      `json:"show_categories" db:"show_categories"`
	ShowAllProducts       bool      `json:"show_all_products" db:"show_all_products"`
	ShowPersonalShopper   bool      `json:"show_personal_shopper" db:"show_personal_shopper"`
	BrandsTitle           string    `json:"brands_title" db:"brands_title"`
	CategoriesTitle       string    `json:"categories_title" db:"categories_title"`
	FeaturedProductsTitle string    `json:"featured_products_title" db:"featured_products_title"`
	CreatedAt             time.Time `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultSiteSettings mirrors the column defaults of the site_settings table
func DefaultSiteSettings() *SiteSettings {
	return &SiteSettings{
		ShowHeroSlides:        true,
		ShowFeaturedProducts:  true,
		ShowBrands:            true,
		ShowCategories:        true,
		ShowAllProducts:       true,
		ShowPersonalShopper:   true,
		BrandsTitle:           DefaultBrandsTitle,
		CategoriesTitle:       DefaultCategoriesTitle,
		FeaturedProductsTitle: DefaultFeaturedProductsTitle,
	}
}
