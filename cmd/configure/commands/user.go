package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/planwell/dayplan/internal/config"
	"github.com/planwell/dayplan/internal/database"
	"github.com/planwell/dayplan/internal/models"
)

// NewUserCmd creates the user command group
func NewUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	cmd.AddCommand(newUserCreateCmd())

	return cmd
}

func newUserCreateCmd() *cobra.Command {
	var username string
	var email string
	var admin bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || email == "" {
				return fmt.Errorf("--username and --email are required")
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			db, err := database.New(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer func() {
				if err := db.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
				}
			}()

			if err := db.Migrate(context.Background()); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			users := database.NewUserRepository(db)
			user := &models.User{
				ID:       uuid.New(),
				Username: username,
				Email:    email,
				IsAdmin:  admin,
				Profile:  models.Profile{},
			}

			if err := users.Create(context.Background(), user); err != nil {
				if database.IsUniqueViolation(err) {
					return fmt.Errorf("a user with that username or email already exists")
				}
				return fmt.Errorf("failed to create user: %w", err)
			}

			fmt.Printf("Created user %s (%s)\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().BoolVar(&admin, "admin", false, "Grant admin access")

	return cmd
}
