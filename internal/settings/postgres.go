// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package settings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/realprop/realprop/internal/catalog"
)

// poolIface is the slice of pgxpool.Pool the repository uses; pgxmock
// satisfies it in unit tests.
type poolIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	pool poolIface
}

// NewPostgresRepository creates a new PostgreSQL settings repository.
func NewPostgresRepository(pool poolIface) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Get retrieves the singleton settings row.
func (r *PostgresRepository) Get(ctx context.Context) (*SiteSettings, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, brand_name, tagline, city, whatsapp_number, phone_number,
		       whatsapp_template, amenities_vocabulary, updated_at
		FROM site_settings WHERE id = $1
	`, DefaultID)

	var s SiteSettings
	var vocab string
	err := row.Scan(&s.ID, &s.BrandName, &s.Tagline, &s.City, &s.WhatsAppNumber,
		&s.PhoneNumber, &s.WhatsAppTemplate, &vocab, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("SETTINGS_NOT_FOUND").Wrap(ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("SETTINGS_GET_FAILED").Wrap(err)
	}

	s.AmenitiesVocabulary = catalog.DecodeTags(vocab)
	return &s, nil
}

// Upsert creates or replaces the singleton settings row.
func (r *PostgresRepository) Upsert(ctx context.Context, s *SiteSettings) error {
	vocab, err := catalog.EncodeTags(s.AmenitiesVocabulary)
	if err != nil {
		return oops.Code("SETTINGS_UPSERT_FAILED").
			With("operation", "encode vocabulary").
			Wrap(err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO site_settings (
			id, brand_name, tagline, city, whatsapp_number, phone_number,
			whatsapp_template, amenities_vocabulary, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (id) DO UPDATE SET
			brand_name = $2, tagline = $3, city = $4, whatsapp_number = $5,
			phone_number = $6, whatsapp_template = $7,
			amenities_vocabulary = $8, updated_at = now()
	`, DefaultID, s.BrandName, s.Tagline, s.City, s.WhatsAppNumber,
		s.PhoneNumber, s.WhatsAppTemplate, vocab)
	if err != nil {
		return oops.Code("SETTINGS_UPSERT_FAILED").
			With("operation", "upsert settings").
			Wrap(err)
	}
	return nil
}

// Compile-time interface check.
var _ Repository = (*PostgresRepository)(nil)
