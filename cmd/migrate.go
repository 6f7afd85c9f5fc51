package main

import (
	"context"
	"errors"

	"boutique/internal/config"
	"boutique/internal/migrations"
	"boutique/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the catalog database schema",
	}

	cmd.AddCommand(
		migrateSubcommand("up", "Apply all pending migrations", migrations.Up),
		migrateSubcommand("down", "Roll back the most recent migration", migrations.Down),
		migrateSubcommand("status", "Print the applied state of every migration", migrations.Status),
	)
	return cmd
}

func migrateSubcommand(use, short string, run func(context.Context, *pgxpool.Pool) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := openDatabase(cmd.Context())
			if err != nil {
				return err
			}
			defer database.ClosePool(pool)

			return run(cmd.Context(), pool)
		},
	}
}

// openDatabase is shared by the commands that only need the catalog database
func openDatabase(ctx context.Context) (*pgxpool.Pool, error) {
	config.LoadDotEnv()
	cfg := config.New()
	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL environment variable is required")
	}
	return database.NewPool(ctx, cfg.DatabaseURL)
}
