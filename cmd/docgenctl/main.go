package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/letterforge/docgen-service/internal/core/service"
	"github.com/letterforge/docgen-service/internal/infrastructure/config"
	mongodb "github.com/letterforge/docgen-service/internal/infrastructure/db/mongo"
	"github.com/letterforge/docgen-service/pkg/logger"
)

var (
	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "docgenctl",
	Short: "Admin utilities for the document generation service",
	Long: `docgenctl manages user accounts of the document generation service
directly against MongoDB, without going through the HTTP API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		log = logger.Init(logger.Options{
			Level:   cfg.LogLevel,
			Pretty:  true,
			Service: "docgenctl",
		})
	},
}

var resetAdminCmd = &cobra.Command{
	Use:   "reset-admin",
	Short: "Wipe all user accounts and recreate the default admin",
	Long: `reset-admin removes every user account and recreates the protected
root admin with its default password. Use it to recover a locked-out
deployment; every other account has to be recreated afterwards.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUserService(cmd.Context(), func(ctx context.Context, auth *service.AuthService, users *mongodb.UserRepository) error {
			removed, err := users.DeleteAll(ctx)
			if err != nil {
				return err
			}
			if err := auth.EnsureAdmin(ctx); err != nil {
				return err
			}
			fmt.Printf("Users collection cleared (%d removed) and new admin created!\n", removed)
			return nil
		})
	},
}

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create a user account",
	Example: `  docgenctl create-user --username carla --password s3cret! --role hr
  docgenctl create-user --username audit-bot --password t0ken --role staff`,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		role, _ := cmd.Flags().GetString("role")

		return withUserService(cmd.Context(), func(ctx context.Context, auth *service.AuthService, _ *mongodb.UserRepository) error {
			user, err := auth.CreateUser(ctx, username, password, role)
			if err != nil {
				return err
			}
			fmt.Printf("User '%s' created successfully! (role %s, id %s)\n", user.Username, user.Role, user.ID)
			return nil
		})
	},
}

// withUserService connects to MongoDB, hands the auth service and the raw
// user repository to fn, and disconnects afterwards.
func withUserService(ctx context.Context, fn func(ctx context.Context, auth *service.AuthService, users *mongodb.UserRepository) error) error {
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	users := mongodb.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}
	auth := service.NewAuthService(users, cfg.JWTSecret, 24*time.Hour, log)

	return fn(ctx, auth, users)
}

func init() {
	createUserCmd.Flags().String("username", "", "account name (required)")
	createUserCmd.Flags().String("password", "", "account password (required)")
	createUserCmd.Flags().String("role", "staff", "access tier: admin, hr or staff")
	_ = createUserCmd.MarkFlagRequired("username")
	_ = createUserCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(resetAdminCmd)
	rootCmd.AddCommand(createUserCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
