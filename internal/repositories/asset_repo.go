package repositories

import "context"

// AssetRepository answers which image URLs are still referenced by catalog records
type AssetRepository interface {
	ListReferencedURLs(ctx context.Context) ([]string, error)
}

type assetRepo struct {
	db DBTX
}

func NewAssetRepo(db DBTX) AssetRepository {
	return &assetRepo{db: db}
}

func (r *assetRepo) ListReferencedURLs(ctx context.Context) ([]string, error) {
	query := `
		SELECT url FROM (
			SELECT logo_url AS url FROM brands
			UNION SELECT image_url FROM categories
			UNION SELECT unnest(images) FROM products
			UNION SELECT image_url FROM hero_slides
			UNION SELECT image_url FROM personal_shopper
		) refs
		WHERE url IS NOT NULL AND url <> ''
	`
	rows, err := r.db.Query(ctx, query)
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
