// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realprop/realprop/internal/auth"
)

func TestAdminRepositoryCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	admin := &auth.Admin{
		ID:           ulid.Make(),
		Email:        "admin@example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	mock.ExpectExec(`INSERT INTO admins`).
		WithArgs(admin.ID.String(), admin.Email, admin.PasswordHash, admin.CreatedAt, admin.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewAdminRepository(mock)
	require.NoError(t, repo.Create(context.Background(), admin))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepositoryGetByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		id := ulid.Make()
		now := time.Now().UTC()
		mock.ExpectQuery(`SELECT id, email, password_hash, created_at, updated_at\s+FROM admins\s+WHERE LOWER\(email\) = LOWER\(\$1\)`).
			WithArgs("Admin@Example.com").
			WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash", "created_at", "updated_at"}).
				AddRow(id.String(), "admin@example.com", "hash", now, now))

		repo := NewAdminRepository(mock)
		got, err := repo.GetByEmail(ctx, "Admin@Example.com")
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, "admin@example.com", got.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent maps to ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT id, email, password_hash, created_at, updated_at`).
			WithArgs("nobody@example.com").
			WillReturnError(pgx.ErrNoRows)

		repo := NewAdminRepository(mock)
		_, getErr := repo.GetByEmail(ctx, "nobody@example.com")
		require.Error(t, getErr)
		assert.ErrorIs(t, getErr, auth.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAdminRepositoryUpdatePassword(t *testing.T) {
	ctx := context.Background()
	id := ulid.Make()

	t.Run("updates existing admin", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`UPDATE admins SET password_hash = \$2`).
			WithArgs(id.String(), "newhash").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := NewAdminRepository(mock)
		require.NoError(t, repo.UpdatePassword(ctx, id, "newhash"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows affected maps to ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec(`UPDATE admins SET password_hash = \$2`).
			WithArgs(id.String(), "newhash").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := NewAdminRepository(mock)
		err = repo.UpdatePassword(ctx, id, "newhash")
		require.Error(t, err)
		assert.ErrorIs(t, err, auth.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
