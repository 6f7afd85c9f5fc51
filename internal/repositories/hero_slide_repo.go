package repositories

import (
	"context"

	"boutique/internal/models"
)

type HeroSlideRepository interface {
	Create(ctx context.Context, slide *models.HeroSlide) error
	GetByID(ctx context.Context, id int64) (*models.HeroSlide, error)
	Update(ctx context.Context, slide *models.HeroSlide) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.HeroSlide, error)
}

type heroSlideRepo struct {
	db DBTX
}

func NewHeroSlideRepo(db DBTX) HeroSlideRepository {
	return &heroSlideRepo{db: db}
}

func (r *heroSlideRepo) Create(ctx context.Context, slide *models.HeroSlide) error {
	query := `
		INSERT INTO hero_slides (image_url, title, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query, slide.ImageURL, slide.Title, slide.Description).Scan(&slide.ID, &slide.CreatedAt)
}

func (r *heroSlideRepo) GetByID(ctx context.Context, id int64) (*models.HeroSlide, error) {
	slide := &models.HeroSlide{}
	query := `
		SELECT id, image_url, title, COALESCE(description, ''), created_at
		FROM hero_slides
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&slide.ID, &slide.ImageURL, &slide.Title, &slide.Description, &slide.CreatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return slide, nil
}

func (r *heroSlideRepo) Update(ctx context.Context, slide *models.HeroSlide) error {
	query := `UPDATE hero_slides SET image_url = $1, title = $2, description = $3 WHERE id = $4`
	return expectAffected(r.db.Exec(ctx, query, slide.ImageURL, slide.Title, slide.Description, slide.ID))
}

func (r *heroSlideRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM hero_slides WHERE id = $1`
	return expectAffected(r.db.Exec(ctx, query, id))
}

// List returns slides in carousel order, oldest first
func (r *heroSlideRepo) List(ctx context.Context) ([]*models.HeroSlide, error) {
	query := `
		SELECT id, image_url, title, COALESCE(description, ''), created_at
		FROM hero_slides
		ORDER BY created_at ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slides := []*models.HeroSlide{}
	for rows.Next() {
		slide := &models.HeroSlide{}
		if err := rows.Scan(&slide.ID, &slide.ImageURL, &slide.Title, &slide.Description, &slide.CreatedAt); err != nil {
			return nil, err
		}
		slides = append(slides, slide)
	}
	return slides, rows.Err()
}
