// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/realprop/realprop/internal/catalog"
	catpg "github.com/realprop/realprop/internal/catalog/postgres"
	"github.com/realprop/realprop/internal/settings"
	"github.com/realprop/realprop/internal/store"
)

// Default timeout for seed command.
const defaultSeedTimeout = 30 * time.Second

// seedConfig holds configuration for the seed command.
type seedConfig struct {
	timeout time.Duration
}

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd() *cobra.Command {
	cfg := &seedConfig{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the catalog with sample listings and site settings",
		Long: `Creates sample listings and default site settings for local development.
This command is idempotent - existing rows are left untouched.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, cfg)
		},
	}

	cmd.Flags().DurationVar(&cfg.timeout, "timeout", defaultSeedTimeout, "timeout for database operations (e.g., 30s, 1m)")

	return cmd
}

func runSeed(cmd *cobra.Command, cfg *seedConfig) error {
	databaseURL, err := databaseURLFromEnv()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.timeout)
	defer cancel()

	cmd.Println("Connecting to database...")
	if err := applyMigrations(databaseURL); err != nil {
		return err
	}

	db, err := store.Open(ctx, databaseURL)
	if err != nil {
		return oops.Code("DB_CONNECT_FAILED").With("operation", "connect to database").Wrap(err)
	}
	defer db.Close()

	catalogSvc, err := catalog.NewService(catpg.NewPropertyRepository(db.Pool()))
	if err != nil {
		return err
	}

	created := 0
	for _, p := range sampleListings() {
		// Probe by slug so reruns skip existing rows instead of
		// accumulating suffixed duplicates.
		probe := catalog.Slugify(p.Title)
		_, getErr := catalogSvc.GetBySlug(ctx, probe)
		if getErr == nil {
			continue
		}
		if !errors.Is(getErr, catalog.ErrNotFound) {
			return oops.Code("SEED_FAILED").With("slug", probe).Wrap(getErr)
		}

		listing := p
		if createErr := catalogSvc.Create(ctx, &listing); createErr != nil {
			return oops.Code("SEED_FAILED").With("title", p.Title).Wrap(createErr)
		}
		created++
		slog.Info("created sample listing", "id", listing.ID.String(), "slug", listing.Slug)
	}
	cmd.Printf("Created %d sample listings\n", created)

	settingsRepo := settings.NewPostgresRepository(db.Pool())
	if _, getErr := settingsRepo.Get(ctx); getErr != nil {
		if !errors.Is(getErr, settings.ErrNotFound) {
			return oops.Code("SEED_FAILED").With("operation", "get site settings").Wrap(getErr)
		}
		if upsertErr := settingsRepo.Upsert(ctx, defaultSettings()); upsertErr != nil {
			return oops.Code("SEED_FAILED").With("operation", "seed site settings").Wrap(upsertErr)
		}
		cmd.Println("Created default site settings")
	} else {
		cmd.Println("Site settings already exist, skipping")
	}

	cmd.Println("Seeding complete!")
	return nil
}

func intPtr(n int) *int { return &n }

func sampleListings() []catalog.Property {
	return []catalog.Property{
		{
			Title:           "3 BHK Flat in Gomti Nagar",
			UsageType:       catalog.UsageResidential,
			PropertySubtype: "apartment",
			AreaName:        "Gomti Nagar",
			City:            "Lucknow",
			PriceInr:        9_500_000,
			SizeSqft:        1650,
			Bedrooms:        intPtr(3),
			Bathrooms:       intPtr(2),
			Parking:         "covered",
			Amenities:       []string{"lift", "power-backup", "gated-security", "park"},
			IsPublished:     true,
			IsFeatured:      true,
		},
		{
			Title:           "2 BHK Flat in Indira Nagar",
			UsageType:       catalog.UsageResidential,
			PropertySubtype: "apartment",
			AreaName:        "Indira Nagar",
			City:            "Lucknow",
			PriceInr:        5_200_000,
			SizeSqft:        1100,
			Bedrooms:        intPtr(2),
			Bathrooms:       intPtr(2),
			Parking:         "open",
			Amenities:       []string{"lift", "power-backup"},
			IsPublished:     true,
		},
		{
			Title:           "Showroom Space on Faizabad Road",
			UsageType:       catalog.UsageCommercial,
			PropertySubtype: "showroom",
			AreaName:        "Faizabad Road",
			City:            "Lucknow",
			PriceInr:        18_000_000,
			SizeSqft:        2400,
			Parking:         "open",
			Amenities:       []string{"power-backup", "road-facing"},
			IsPublished:     true,
		},
	}
}

func defaultSettings() *settings.SiteSettings {
	return &settings.SiteSettings{
		ID:               settings.DefaultID,
		BrandName:        "Realprop",
		Tagline:          "Homes and commercial spaces in Lucknow",
		City:             "Lucknow",
		WhatsAppNumber:   "+911234567890",
		PhoneNumber:      "+911234567890",
		WhatsAppTemplate: "Hi, I am interested in {title} ({url})",
		AmenitiesVocabulary: []string{
			"lift", "power-backup", "gated-security", "park",
			"road-facing", "water-supply", "vastu-compliant",
		},
	}
}
