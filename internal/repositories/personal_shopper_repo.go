package repositories

import (
	"context"

	"boutique/internal/models"
)

// PersonalShopperRepository manages the landing page "personal shopper" block.
// The table is treated as holding at most one meaningful row.
type PersonalShopperRepository interface {
	Get(ctx context.Context) (*models.PersonalShopper, error)
	Create(ctx context.Context, ps *models.PersonalShopper) error
	Update(ctx context.Context, ps *models.PersonalShopper) error
}

type personalShopperRepo struct {
	db DBTX
}

func NewPersonalShopperRepo(db DBTX) PersonalShopperRepository {
	return &personalShopperRepo{db: db}
}

func (r *personalShopperRepo) Get(ctx context.Context) (*models.PersonalShopper, error) {
	ps := &models.PersonalShopper{}
	query := `
		SELECT id, image_url, title, description1, description2, description3, created_at
		FROM personal_shopper
		ORDER BY id ASC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query).Scan(&ps.ID, &ps.ImageURL, &ps.Title,
		&ps.Description1, &ps.Description2, &ps.Description3, &ps.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return ps, nil
}

func (r *personalShopperRepo) Create(ctx context.Context, ps *models.PersonalShopper) error {
	query := `
		INSERT INTO personal_shopper (image_url, title, description1, description2, description3)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query, ps.ImageURL, ps.Title, ps.Description1, ps.Description2, ps.Description3).
		Scan(&ps.ID, &ps.CreatedAt)
}

func (r *personalShopperRepo) Update(ctx context.Context, ps *models.PersonalShopper) error {
	query := `
		UPDATE personal_shopper
		SET image_url = $1, title = $2, description1 = $3, description2 = $4, description3 = $5
		WHERE id = $6
	`
	return expectAffected(r.db.Exec(ctx, query, ps.ImageURL, ps.Title,
		ps.Description1, ps.Description2, ps.Description3, ps.ID))
}
