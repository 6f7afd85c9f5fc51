package main

import (
	"errors"
	"fmt"

	"boutique/internal/repositories"
	"boutique/internal/services"
	"boutique/pkg/database"

	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}
	cmd.AddCommand(newAdminCreateCmd())
	return cmd
}

func newAdminCreateCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return errors.New("--username and --password are required")
			}

			pool, err := openDatabase(cmd.Context())
			if err != nil {
				return err
			}
			defer database.ClosePool(pool)

			authSvc := services.NewAuthService(repositories.NewAdminUserRepo(pool), nil, "", 0, 0)
			user, err := authSvc.CreateAdmin(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "admin username")
	cmd.Flags().StringVar(&password, "password", "", "admin password, at least 8 characters")
	return cmd
}
