package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var files embed.FS

const dir = "."

var ErrPending = errors.New("database schema is behind the embedded migrations")

func setup() error {
	goose.SetBaseFS(files)
	return goose.SetDialect("postgres")
}

func open(pool *pgxpool.Pool) *sql.DB {
	return stdlib.OpenDBFromPool(pool)
}

// Latest returns the newest migration version compiled into the binary
func Latest() (int64, error) {
	if err := setup(); err != nil {
		return 0, err
	}
	all, err := goose.CollectMigrations(dir, 0, goose.MaxVersion)
	if err != nil {
		return 0, err
	}
	last, err := all.Last()
	if err != nil {
		return 0, err
	}
	return last.Version, nil
}

func Up(ctx context.Context, pool *pgxpool.Pool) error {
	if err := setup(); err != nil {
		return err
	}
	db := open(pool)
	defer db.Close()

	if err := goose.UpContext(ctx, db, dir); err != nil {
		if errors.Is(err, goose.ErrNoNextVersion) {
			log.Printf("INFO: no migrations to apply")
			return nil
		}
		return fmt.Errorf("migrations.up: %w", err)
	}
	log.Printf("INFO: database migrations applied successfully")
	return nil
}

// Down rolls back the most recent migration
func Down(ctx context.Context, pool *pgxpool.Pool) error {
	if err := setup(); err != nil {
		return err
	}
	db := open(pool)
	defer db.Close()

	if err := goose.DownContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrations.down: %w", err)
	}
	return nil
}

func Status(ctx context.Context, pool *pgxpool.Pool) error {
	if err := setup(); err != nil {
		return err
	}
	db := open(pool)
	defer db.Close()

	return goose.StatusContext(ctx, db, dir)
}

// EnsureCurrent fails when the database has not been migrated to the latest embedded version.
// The server never migrates on its own; run `boutique migrate up` first.
func EnsureCurrent(ctx context.Context, pool *pgxpool.Pool) error {
	latest, err := Latest()
	if err != nil {
		return err
	}
	db := open(pool)
	defer db.Close()

	current, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("migrations.version: %w", err)
	}
	return checkVersion(current, latest)
}

func checkVersion(current, latest int64) error {
	if current < latest {
		return fmt.Errorf("%w: at version %d, want %d", ErrPending, current, latest)
	}
	return nil
}
