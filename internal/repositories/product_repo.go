package repositories

import (
	"context"

	"boutique/internal/models"

	"github.com/jackc/pgx/v5"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error)

	// Image URLs of products that a brand or category delete will cascade to
	ListImagesByBrand(ctx context.Context, brandID int64) ([]string, error)
	ListImagesByCategory(ctx context.Context, categoryID int64) ([]string, error)
}

type productRepo struct {
	db DBTX
}

func NewProductRepo(db DBTX) ProductRepository {
	return &productRepo{db: db}
}

const productSelect = `
		SELECT p.id, p.name, COALESCE(p.description, ''), COALESCE(p.images, '{}'),
			COALESCE(p.brand_id, 0), COALESCE(p.category_id, 0), p.is_featured, p.created_at,
			COALESCE(b.id, 0), COALESCE(b.name, ''), COALESCE(b.logo_url, ''), COALESCE(b.created_at, p.created_at),
			COALESCE(c.id, 0), COALESCE(c.name, ''), COALESCE(c.image_url, ''), COALESCE(c.created_at, p.created_at)
		FROM products p
		LEFT JOIN brands b ON b.id = p.brand_id
		LEFT JOIN categories c ON c.id = p.category_id
`

func scanProduct(row pgx.Row) (*models.Product, error) {
	p := &models.Product{}
	b := &models.Brand{}
	c := &models.Category{}
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Images,
		&p.BrandID, &p.CategoryID, &p.IsFeatured, &p.CreatedAt,
		&b.ID, &b.Name, &b.LogoURL, &b.CreatedAt,
		&c.ID, &c.Name, &c.ImageURL, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if b.ID != 0 {
		p.Brand = b
	}
	if c.ID != 0 {
		p.Category = c
	}
	return p, nil
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, description, images, brand_id, category_id, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query, product.Name, product.Description, product.Images,
		product.BrandID, product.CategoryID, product.IsFeatured).Scan(&product.ID, &product.CreatedAt)
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	product, err := scanProduct(r.db.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, mapNoRows(err)
	}
	return product, nil
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, images = $3, brand_id = $4, category_id = $5, is_featured = $6
		WHERE id = $7
	`
	return expectAffected(r.db.Exec(ctx, query, product.Name, product.Description, product.Images,
		product.BrandID, product.CategoryID, product.IsFeatured, product.ID))
}

func (r *productRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM products WHERE id = $1`
	return expectAffected(r.db.Exec(ctx, query, id))
}

// List returns products newest first. A zero Limit returns every match.
func (r *productRepo) List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	var limit any
	if filter.Limit > 0 {
		limit = filter.Limit
	}

	query := productSelect + `
		WHERE ($1::bigint IS NULL OR p.brand_id = $1)
			AND ($2::bigint IS NULL OR p.category_id = $2)
			AND (NOT $3 OR p.is_featured)
		ORDER BY p.created_at DESC
		LIMIT $4
	`
	rows, err := r.db.Query(ctx, query, filter.BrandID, filter.CategoryID, filter.FeaturedOnly, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *productRepo) ListImagesByBrand(ctx context.Context, brandID int64) ([]string, error) {
	return r.listImages(ctx, `SELECT unnest(images) FROM products WHERE brand_id = $1`, brandID)
}

func (r *productRepo) ListImagesByCategory(ctx context.Context, categoryID int64) ([]string, error) {
	return r.listImages(ctx, `SELECT unnest(images) FROM products WHERE category_id = $1`, categoryID)
}

func (r *productRepo) listImages(ctx context.Context, query string, id int64) ([]string, error) {
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}
