// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package settings

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var settingsColumns = []string{
	"id", "brand_name", "tagline", "city", "whatsapp_number", "phone_number",
	"whatsapp_template", "amenities_vocabulary", "updated_at",
}

func TestPostgresRepositoryGet(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		now := time.Now().UTC()
		mock.ExpectQuery(`SELECT (.+) FROM site_settings WHERE id = \$1`).
			WithArgs(DefaultID).
			WillReturnRows(pgxmock.NewRows(settingsColumns).
				AddRow(DefaultID, "Realprop", "Homes in Lucknow", "Lucknow",
					"+911234567890", "+911234567890", "Hi, I am interested in {title}",
					`["lift","park"]`, now))

		repo := NewPostgresRepository(mock)
		got, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Realprop", got.BrandName)
		assert.Equal(t, []string{"lift", "park"}, got.AmenitiesVocabulary)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("legacy junk vocabulary decodes empty", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT (.+) FROM site_settings WHERE id = \$1`).
			WithArgs(DefaultID).
			WillReturnRows(pgxmock.NewRows(settingsColumns).
				AddRow(DefaultID, "Realprop", "", "", "", "", "", "lift,park", time.Now().UTC()))

		repo := NewPostgresRepository(mock)
		got, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Empty(t, got.AmenitiesVocabulary)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent row maps to ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT (.+) FROM site_settings WHERE id = \$1`).
			WithArgs(DefaultID).
			WillReturnError(pgx.ErrNoRows)

		repo := NewPostgresRepository(mock)
		_, getErr := repo.Get(ctx)
		require.Error(t, getErr)
		assert.ErrorIs(t, getErr, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresRepositoryUpsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := &SiteSettings{
		ID:                  DefaultID,
		BrandName:           "Realprop",
		Tagline:             "Homes in Lucknow",
		City:                "Lucknow",
		WhatsAppNumber:      "+911234567890",
		PhoneNumber:         "+911234567890",
		WhatsAppTemplate:    "Hi, I am interested in {title}",
		AmenitiesVocabulary: []string{"lift", "park"},
	}

	mock.ExpectExec(`INSERT INTO site_settings`).
		WithArgs(DefaultID, s.BrandName, s.Tagline, s.City, s.WhatsAppNumber,
			s.PhoneNumber, s.WhatsAppTemplate, `["lift","park"]`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewPostgresRepository(mock)
	require.NoError(t, repo.Upsert(context.Background(), s))
	assert.NoError(t, mock.ExpectationsWereMet())
}
