package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/planwell/dayplan/internal/config"
	"github.com/planwell/dayplan/internal/database"
	"github.com/planwell/dayplan/internal/services/token"
)

// NewTokenCmd creates the token command
func NewTokenCmd() *cobra.Command {
	var userID string
	var username string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for a user",
		Long:  "Mint an HS256 bearer token for an existing user, identified by --user-id or --username",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" && username == "" {
				return fmt.Errorf("--user-id or --username is required")
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

			users := database.NewUserRepository(db)
			ctx := context.Background()

			var id uuid.UUID
			if userID != "" {
				id, err = uuid.Parse(userID)
				if err != nil {
					return fmt.Errorf("invalid user ID: %w", err)
				}
				if _, err := users.GetByID(ctx, id); err != nil {
					return fmt.Errorf("failed to find user: %w", err)
				}
			} else {
				user, err := users.GetByUsername(ctx, username)
				if err != nil {
					return fmt.Errorf("failed to find user: %w", err)
				}
				id = user.ID
			}

			bearer, err := token.Mint(cfg.JWTSecret, id, ttl)
			if err != nil {
				return fmt.Errorf("failed to mint token: %w", err)
			}

			fmt.Println(bearer)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user-id", "", "User ID to mint a token for")
	cmd.Flags().StringVar(&username, "username", "", "Username to mint a token for")
	cmd.Flags().DurationVar(&ttl, "ttl", token.DefaultTTL, "Token lifetime")

	return cmd
}
