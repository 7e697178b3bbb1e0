// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/samber/oops"
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var envFile string

// NewRootCmd creates the root command for the realprop CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "realprop",
		Short: "Realprop - property listing platform",
		Long: `Realprop serves a property listing catalog with filtered search,
a cookie-authenticated admin console, and PostgreSQL persistence.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return loadEnvFile(envFile)
		},
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "environment file path")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewCreateAdminCmd())

	return cmd
}

// loadEnvFile loads the environment file if it exists. A missing default
// file is fine; a missing explicitly-flagged file is an error.
func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if os.IsNotExist(err) && path == ".env" {
			return nil
		}
		return oops.Code("CONFIG_INVALID").With("env_file", path).Wrapf(err, "loading environment file")
	}
	return nil
}

// databaseURLFromEnv reads the required DATABASE_URL setting.
func databaseURLFromEnv() (string, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return "", oops.Code("CONFIG_INVALID").Errorf("DATABASE_URL environment variable is required")
	}
	return databaseURL, nil
}
