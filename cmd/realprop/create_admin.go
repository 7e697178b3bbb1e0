// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/realprop/realprop/internal/auth"
	authpg "github.com/realprop/realprop/internal/auth/postgres"
	"github.com/realprop/realprop/internal/store"
)

// createAdminConfig holds configuration for the create-admin command.
type createAdminConfig struct {
	email   string
	timeout time.Duration
}

// NewCreateAdminCmd creates the create-admin subcommand. The password is
// read from ADMIN_PASSWORD rather than a flag so it never lands in shell
// history or process listings.
func NewCreateAdminCmd() *cobra.Command {
	cfg := &createAdminConfig{}

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account",
		Long: `Creates an admin account for the console. The password is taken from
the ADMIN_PASSWORD environment variable.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCreateAdmin(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.email, "email", "", "admin email address")
	cmd.Flags().DurationVar(&cfg.timeout, "timeout", defaultSeedTimeout, "timeout for database operations")
	//nolint:errcheck // flag is registered above
	cmd.MarkFlagRequired("email")

	return cmd
}

func runCreateAdmin(cmd *cobra.Command, cfg *createAdminConfig) error {
	databaseURL, err := databaseURLFromEnv()
	if err != nil {
		return err
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		return oops.Code("CONFIG_INVALID").Errorf("ADMIN_PASSWORD environment variable is required")
	}
	if err := auth.ValidateEmail(cfg.email); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.timeout)
	defer cancel()

	db, err := store.Open(ctx, databaseURL)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	defer db.Close()

	hash, err := auth.NewArgon2idHasher().Hash(password)
	if err != nil {
		return err
	}

	admin := &auth.Admin{
		ID:           ulid.Make(),
		Email:        cfg.email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := authpg.NewAdminRepository(db.Pool()).Create(ctx, admin); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			cmd.Printf("Admin %s already exists, skipping\n", cfg.email)
			return nil
		}
		return oops.Code("ADMIN_CREATE_FAILED").With("email", cfg.email).Wrap(err)
	}

	cmd.Printf("Created admin %s (%s)\n", cfg.email, admin.ID.String())
	return nil
}
