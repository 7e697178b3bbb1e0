// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

// Package postgres implements auth repositories using PostgreSQL.
package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/realprop/realprop/internal/auth"
)

// poolIface is the slice of pgxpool.Pool the repository uses; pgxmock
// satisfies it in unit tests.
type poolIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AdminRepository implements auth.AdminRepository using PostgreSQL.
type AdminRepository struct {
	pool poolIface
}

// NewAdminRepository creates a new AdminRepository.
func NewAdminRepository(pool poolIface) *AdminRepository {
	return &AdminRepository{pool: pool}
}

// Create stores a new admin.
func (r *AdminRepository) Create(ctx context.Context, admin *auth.Admin) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO admins (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		admin.ID.String(), admin.Email, admin.PasswordHash,
		admin.CreatedAt, admin.UpdatedAt,
	)
	if err != nil {
		return oops.Code("ADMIN_CREATE_FAILED").
			With("operation", "insert admin").
			With("email", admin.Email).
			Wrap(err)
	}
	return nil
}

// GetByEmail retrieves an admin by email (case-insensitive).
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*auth.Admin, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at, updated_at
		FROM admins
		WHERE LOWER(email) = LOWER($1)
	`, email)

	var admin auth.Admin
	var idStr string
	err := row.Scan(&idStr, &admin.Email, &admin.PasswordHash, &admin.CreatedAt, &admin.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ADMIN_NOT_FOUND").
			With("email", email).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ADMIN_GET_FAILED").
			With("operation", "get admin by email").
			With("email", email).
			Wrap(err)
	}

	admin.ID, err = ulid.Parse(idStr)
	if err != nil {
		return nil, oops.With("operation", "parse admin id").With("id", idStr).Wrap(err)
	}
	return &admin, nil
}

// UpdatePassword replaces the password hash for an admin.
func (r *AdminRepository) UpdatePassword(ctx context.Context, id ulid.ULID, passwordHash string) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE admins SET password_hash = $2, updated_at = now() WHERE id = $1
	`, id.String(), passwordHash)
	if err != nil {
		return oops.Code("ADMIN_UPDATE_FAILED").
			With("operation", "update password").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("ADMIN_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	return nil
}

// Compile-time interface check.
var _ auth.AdminRepository = (*AdminRepository)(nil)
