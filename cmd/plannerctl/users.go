package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grupo-nexus/planner/internal/config"
	"github.com/grupo-nexus/planner/internal/factory"
	"github.com/grupo-nexus/planner/internal/logger"
	"github.com/grupo-nexus/planner/internal/services"
)

func init() {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Account administration (talks to the database directly)",
	}

	var email, name, password string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a planner account",
		Long: "Creates an account directly in the configured database. Used to " +
			"bootstrap the first account; the HTTP API has no open signup route.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password required")
			}

			log := logger.New("plannerctl")
			cfg, err := config.New()
			if err != nil {
				return err
			}
			ctx := context.Background()
			st, err := factory.NewStore(ctx, cfg, log)
			if err != nil {
				return err
			}

			user, err := services.NewUserService(st).CreateUser(ctx, email, name, password)
			if err != nil {
				return err
			}
			return printJSON(user)
		},
	}
	createCmd.Flags().StringVarP(&email, "email", "e", "", "Account email (required)")
	createCmd.Flags().StringVarP(&name, "name", "n", "", "Display name")
	createCmd.Flags().StringVarP(&password, "password", "p", "", "Password, 8 characters minimum (required)")
	_ = createCmd.MarkFlagRequired("email")
	_ = createCmd.MarkFlagRequired("password")
	usersCmd.AddCommand(createCmd)

	rootCmd.AddCommand(usersCmd)
}
