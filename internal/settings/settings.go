// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

// Package settings stores the site-wide configuration row: branding,
// contact details, and the amenities vocabulary offered by the filter UI.
package settings

import (
	"context"
	"errors"
	"time"
)

// DefaultID is the primary key of the singleton settings row.
const DefaultID = "default"

// ErrNotFound is returned when the settings row has not been seeded yet.
var ErrNotFound = errors.New("not found")

// SiteSettings is the singleton site configuration.
type SiteSettings struct {
	ID                  string
	BrandName           string
	Tagline             string
	City                string
	WhatsAppNumber      string
	PhoneNumber         string
	WhatsAppTemplate    string
	AmenitiesVocabulary []string
	UpdatedAt           time.Time
}

// Repository manages site settings persistence.
type Repository interface {
	// Get retrieves the singleton settings row.
	Get(ctx context.Context) (*SiteSettings, error)

	// Upsert creates or replaces the singleton settings row.
	Upsert(ctx context.Context, s *SiteSettings) error
}
