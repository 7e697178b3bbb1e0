// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

// Package auth provides admin authentication and cookie sessions for the
// listing console.
package auth

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// ErrNotFound is returned when a requested identity does not exist.
var ErrNotFound = errors.New("not found")

// Admin is an administrator identity. Admins are provisioned out of band
// (the create-admin command); no user-facing flow creates them.
type Admin struct {
	ID           ulid.ULID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidateEmail checks that an email address is plausible before it is
// stored or looked up.
func ValidateEmail(email string) error {
	if email == "" {
		return oops.Code("AUTH_INVALID_EMAIL").Errorf("email cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return oops.Code("AUTH_INVALID_EMAIL").With("email", email).Wrap(err)
	}
	return nil
}

// AdminRepository manages admin identity persistence.
type AdminRepository interface {
	// Create stores a new admin.
	Create(ctx context.Context, admin *Admin) error

	// GetByEmail retrieves an admin by email (case-insensitive).
	// Returns ErrNotFound if no admin has the given email.
	GetByEmail(ctx context.Context, email string) (*Admin, error)

	// UpdatePassword replaces the password hash for an admin.
	UpdatePassword(ctx context.Context, id ulid.ULID, passwordHash string) error
}
