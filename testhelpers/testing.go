package testhelpers

import (
	"context"
	"os"
	"testing"

	"boutique/internal/migrations"
	"boutique/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB connects to TEST_DATABASE_URL and migrates it. Tests are skipped when the variable is unset.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database test")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := migrations.Up(ctx, pool); err != nil {
		pool.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	db := &TestDB{
		Pool: pool,
		Cleanup: func() error {
			_, err := pool.Exec(context.Background(),
				`TRUNCATE products, brands, categories, hero_slides, personal_shopper RESTART IDENTITY CASCADE`)
			pool.Close()
			return err
		},
	}
	t.Cleanup(func() {
		if err := db.Cleanup(); err != nil {
			t.Logf("test database cleanup failed: %v", err)
		}
	})
	return db
}

// SetupTestBrand inserts a brand with a logo URL
func SetupTestBrand(t *testing.T, db *TestDB, name string) *models.Brand {
	t.Helper()

	brand := &models.Brand{Name: name, LogoURL: "http://localhost:9000/fotos-valeria/brands/" + name + ".webp"}
	err := db.Pool.QueryRow(context.Background(),
		`INSERT INTO brands (name, logo_url) VALUES ($1, $2) RETURNING id, created_at`,
		brand.Name, brand.LogoURL).Scan(&brand.ID, &brand.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test brand: %v", err)
	}
	return brand
}

// SetupTestCategory inserts a category with an image URL
func SetupTestCategory(t *testing.T, db *TestDB, name string) *models.Category {
	t.Helper()

	category := &models.Category{Name: name, ImageURL: "http://localhost:9000/fotos-valeria/categorys/" + name + ".webp"}
	err := db.Pool.QueryRow(context.Background(),
		`INSERT INTO categories (name, image_url) VALUES ($1, $2) RETURNING id, created_at`,
		category.Name, category.ImageURL).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}
	return category
}

// SetupTestProduct inserts a product owned by the given brand and category
func SetupTestProduct(t *testing.T, db *TestDB, brand *models.Brand, category *models.Category, featured bool) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:        "Vestido " + brand.Name,
		Description: "Test product description",
		Images:      []string{"http://localhost:9000/fotos-valeria/products/" + brand.Name + ".webp"},
		BrandID:     brand.ID,
		CategoryID:  category.ID,
		IsFeatured:  featured,
	}
	err := db.Pool.QueryRow(context.Background(), `
		INSERT INTO products (name, description, images, brand_id, category_id, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		product.Name, product.Description, product.Images, product.BrandID, product.CategoryID, product.IsFeatured,
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}
	return product
}
