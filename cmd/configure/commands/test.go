package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/planwell/dayplan/internal/config"
	"github.com/planwell/dayplan/internal/database"
	"github.com/planwell/dayplan/internal/queue"
	"github.com/planwell/dayplan/internal/services/ai"
)

// NewTestCmd creates the test command
func NewTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test backend connectivity",
		Long:  "Check database, Redis, RabbitMQ and generation service connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			// Database
			fmt.Println("Testing database connection...")
			db, err := database.New(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("database connection failed: %w", err)
			}
			defer func() {
				if err := db.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
				}
			}()
			fmt.Println("✓ Database is reachable")

			// Redis
			fmt.Println("\nTesting Redis connection...")
			redisOpts, err := redis.ParseURL(cfg.RedisURL)
			if err != nil {
				return fmt.Errorf("invalid Redis URL: %w", err)
			}
			redisClient := redis.NewClient(redisOpts)
			defer func() {
				if err := redisClient.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to close Redis: %v\n", err)
				}
			}()
			if err := redisClient.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("Redis ping failed: %w", err)
			}
			fmt.Println("✓ Redis is reachable")

			// RabbitMQ (optional)
			if cfg.RabbitMQURL != "" {
				fmt.Println("\nTesting RabbitMQ connection...")
				jobQueue, err := queue.NewRabbitMQQueue(cfg.RabbitMQURL)
				if err != nil {
					return fmt.Errorf("RabbitMQ connection failed: %w", err)
				}
				defer func() {
					if err := jobQueue.Close(); err != nil {
						fmt.Fprintf(os.Stderr, "Warning: failed to close RabbitMQ: %v\n", err)
					}
				}()
				fmt.Println("✓ RabbitMQ is reachable")
			} else {
				fmt.Println("\nRabbitMQ not configured, skipping")
			}

			// Generation service
			fmt.Printf("\nTesting generation provider %q...\n", cfg.AIProvider)
			registry := ai.NewDefaultRegistry()
			provider, err := registry.GetProvider(cfg.AIProvider, cfg.AIConfig(), zap.NewNop())
			if err != nil {
				return fmt.Errorf("failed to create provider: %w", err)
			}
			if provider.Available(ctx) {
				fmt.Println("✓ Generation service is available")
			} else {
				fmt.Println("✗ Generation service is not available (schedules will use the rule-based path)")
			}

			fmt.Println("\n✓ Connectivity test complete")
			return nil
		},
	}

	return cmd
}
