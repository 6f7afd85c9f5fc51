package repositories

import (
	"context"

	"boutique/internal/models"
)

type BrandRepository interface {
	Create(ctx context.Context, brand *models.Brand) error
	GetByID(ctx context.Context, id int64) (*models.Brand, error)
	Update(ctx context.Context, brand *models.Brand) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.Brand, error)
}

type brandRepo struct {
	db DBTX
}

func NewBrandRepo(db DBTX) BrandRepository {
	return &brandRepo{db: db}
}

func (r *brandRepo) Create(ctx context.Context, brand *models.Brand) error {
	query := `
		INSERT INTO brands (name, logo_url)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query, brand.Name, brand.LogoURL).Scan(&brand.ID, &brand.CreatedAt)
}

func (r *brandRepo) GetByID(ctx context.Context, id int64) (*models.Brand, error) {
	brand := &models.Brand{}
	query := `
		SELECT id, name, COALESCE(logo_url, ''), created_at
		FROM brands
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&brand.ID, &brand.Name, &brand.LogoURL, &brand.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return brand, nil
}

func (r *brandRepo) Update(ctx context.Context, brand *models.Brand) error {
	query := `UPDATE brands SET name = $1, logo_url = $2 WHERE id = $3`
	return expectAffected(r.db.Exec(ctx, query, brand.Name, brand.LogoURL, brand.ID))
}

// Delete cascades to the brand's products
func (r *brandRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM brands WHERE id = $1`
	return expectAffected(r.db.Exec(ctx, query, id))
}

func (r *brandRepo) List(ctx context.Context) ([]*models.Brand, error) {
	query := `
		SELECT id, name, COALESCE(logo_url, ''), created_at
		FROM brands
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	brands := []*models.Brand{}
	for rows.Next() {
		brand := &models.Brand{}
		if err := rows.Scan(&brand.ID, &brand.Name, &brand.LogoURL, &brand.CreatedAt); err != nil {
			return nil, err
		}
		brands = append(brands, brand)
	}
	return brands, rows.Err()
}
