// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package auth

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/samber/oops"
	"golang.org/x/crypto/pbkdf2"
)

// Key derivation parameters. The server secret is stretched once at
// startup into independent signing and encryption keys.
const (
	kdfSalt       = "realprop/session/v1"
	kdfIterations = 4096
	kdfKeyLen     = 64 // 32 bytes HMAC key + 32 bytes AES-256 key
)

// MinSessionSecretLen rejects secrets too short to bother deriving from.
const MinSessionSecretLen = 32

// CookieCodec implements SessionCodec with securecookie: AES-encrypted,
// HMAC-signed values decodable only with the server-held secret.
type CookieCodec struct {
	sc     *securecookie.SecureCookie
	secure bool
}

// NewCookieCodec derives cookie keys from the server secret. secure
// controls the cookie's Secure attribute and should be true in
// production.
func NewCookieCodec(secret string, secure bool) (*CookieCodec, error) {
	if len(secret) < MinSessionSecretLen {
		return nil, oops.Code("CONFIG_INVALID").
			With("min_length", MinSessionSecretLen).
			Errorf("session secret must be at least %d characters", MinSessionSecretLen)
	}

	keys := pbkdf2.Key([]byte(secret), []byte(kdfSalt), kdfIterations, kdfKeyLen, sha256.New)
	sc := securecookie.New(keys[:32], keys[32:])
	sc.SetSerializer(securecookie.JSONEncoder{})
	sc.MaxAge(int(SessionMaxAge.Seconds()))

	return &CookieCodec{sc: sc, secure: secure}, nil
}

// Encode seals the record into a cookie value.
func (c *CookieCodec) Encode(rec SessionRecord) (string, error) {
	value, err := c.sc.Encode(SessionCookieName, rec)
	if err != nil {
		return "", oops.Code("SESSION_ENCODE_FAILED").Wrap(err)
	}
	return value, nil
}

// Decode opens and verifies a cookie value. Expired values fail here too:
// securecookie embeds the issue timestamp and enforces MaxAge.
func (c *CookieCodec) Decode(value string) (SessionRecord, error) {
	var rec SessionRecord
	if err := c.sc.Decode(SessionCookieName, value, &rec); err != nil {
		return SessionRecord{}, oops.Code("SESSION_DECODE_FAILED").Wrap(err)
	}
	return rec, nil
}

// NewSessionCookie builds the Set-Cookie carrying a sealed session.
func (c *CookieCodec) NewSessionCookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredSessionCookie builds the Set-Cookie that clears the session.
// Clearing an absent cookie is harmless, which keeps logout idempotent.
func (c *CookieCodec) ExpiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Compile-time interface check.
var _ SessionCodec = (*CookieCodec)(nil)
