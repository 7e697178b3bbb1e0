// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/samber/oops"
)

// dummyPasswordHash is verified when no admin matches the email, so the
// unknown-email path performs the same hash work as the wrong-password
// path. This is NOT a credential; it can never match any password.
//
//nolint:gosec // G101: intentionally fake hash, not a credential.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// Service is the authentication gate: it issues sessions on login,
// validates them on protected requests, and clears them on logout.
type Service struct {
	admins AdminRepository
	codec  SessionCodec
	hasher PasswordHasher
	logger *slog.Logger
}

// NewService creates the authentication Service.
func NewService(admins AdminRepository, codec SessionCodec, hasher PasswordHasher) (*Service, error) {
	return NewServiceWithLogger(admins, codec, hasher, slog.Default())
}

// NewServiceWithLogger creates the authentication Service with an
// explicit logger.
func NewServiceWithLogger(admins AdminRepository, codec SessionCodec, hasher PasswordHasher, logger *slog.Logger) (*Service, error) {
	if admins == nil {
		return nil, oops.Errorf("admin repository is required")
	}
	if codec == nil {
		return nil, oops.Errorf("session codec is required")
	}
	if hasher == nil {
		return nil, oops.Errorf("password hasher is required")
	}
	if logger == nil {
		return nil, oops.Errorf("logger is required")
	}
	return &Service{admins: admins, codec: codec, hasher: hasher, logger: logger}, nil
}

// Login authenticates an admin and returns the session record plus its
// sealed cookie value. Unknown email and wrong password collapse into the
// same AUTH_INVALID_CREDENTIALS error; the response must not reveal which
// one happened.
func (s *Service) Login(ctx context.Context, email, password string) (SessionRecord, string, error) {
	admin, lookupErr := s.admins.GetByEmail(ctx, email)

	targetHash := dummyPasswordHash
	adminExists := false
	switch {
	case lookupErr == nil:
		targetHash = admin.PasswordHash
		adminExists = true
	case errors.Is(lookupErr, ErrNotFound):
		// Fall through to the dummy verification below.
	default:
		return SessionRecord{}, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "get admin by email").
			Wrap(lookupErr)
	}

	valid, verifyErr := s.hasher.Verify(password, targetHash)
	if verifyErr != nil {
		if !adminExists {
			return SessionRecord{}, "", invalidCredentials()
		}
		return SessionRecord{}, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "verify password").
			Wrap(verifyErr)
	}
	if !adminExists || !valid {
		s.logger.Warn("admin login rejected", "email", email)
		return SessionRecord{}, "", invalidCredentials()
	}

	// Migrate legacy bcrypt hashes on successful login. Best effort: the
	// login succeeds even if the rewrite fails.
	if s.hasher.NeedsUpgrade(admin.PasswordHash) {
		if newHash, hashErr := s.hasher.Hash(password); hashErr == nil {
			if updErr := s.admins.UpdatePassword(ctx, admin.ID, newHash); updErr != nil {
				s.logger.Warn("password hash upgrade failed", "admin_id", admin.ID.String(), "error", updErr)
			}
		}
	}

	rec := SessionRecord{
		UserID:     admin.ID.String(),
		Email:      admin.Email,
		IsLoggedIn: true,
	}
	value, err := s.codec.Encode(rec)
	if err != nil {
		return SessionRecord{}, "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "encode session").
			Wrap(err)
	}

	s.logger.Info("admin logged in", "admin_id", admin.ID.String())
	return rec, value, nil
}

// Authorize validates the session cookie on a protected request. Missing,
// malformed, undecryptable, and logged-out cookies all fail closed with
// the same AUTH_UNAUTHORIZED error. Read-only: no side effects.
func (s *Service) Authorize(r *http.Request) (SessionRecord, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return SessionRecord{}, unauthorized()
	}

	rec, err := s.codec.Decode(cookie.Value)
	if err != nil {
		return SessionRecord{}, unauthorized()
	}
	if !rec.IsLoggedIn {
		return SessionRecord{}, unauthorized()
	}
	return rec, nil
}

func invalidCredentials() error {
	return oops.Code("AUTH_INVALID_CREDENTIALS").Errorf("invalid email or password")
}

func unauthorized() error {
	return oops.Code("AUTH_UNAUTHORIZED").Errorf("unauthorized")
}
