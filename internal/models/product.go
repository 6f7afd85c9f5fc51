package models

import "time"

type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Images      []string  `json:"images" db:"images"`
	BrandID     int64     `json:"brand_id" db:"brand_id"`
	CategoryID  int64     `json:"category_id" db:"category_id"`
	IsFeatured  bool      `json:"is_featured" db:"is_featured"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// Populated by list/get queries that join the owning records
	Brand    *Brand    `json:"brand,omitempty" db:"-"`
	Category *Category `json:"category,omitempty" db:"-"`
}

// ProductFilter narrows product listings for the landing page and admin views
type ProductFilter struct {
	BrandID      *int64 `json:"brand_id,omitempty" query:"brand_id"`
	CategoryID   *int64 `json:"category_id,omitempty" query:"category_id"`
	FeaturedOnly bool   `json:"featured,omitempty" query:"featured"`
	Limit        int    `json:"limit,omitempty" query:"limit"` // 0 means no limit
}
