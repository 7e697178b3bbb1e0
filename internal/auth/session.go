// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package auth

import "time"

// Session cookie configuration. The session lives entirely client-side in
// an encrypted, signed cookie; there is no server-side session table.
const (
	// SessionCookieName is the single fixed cookie carrying the session.
	SessionCookieName = "realprop_session"

	// SessionMaxAge is the cookie lifetime: one week.
	SessionMaxAge = 7 * 24 * time.Hour
)

// SessionRecord is the authenticated-session payload sealed into the
// cookie. IsLoggedIn is checked explicitly on every protected request; a
// decoded record with IsLoggedIn=false is treated the same as no cookie.
type SessionRecord struct {
	UserID     string `json:"userId"`
	Email      string `json:"email"`
	IsLoggedIn bool   `json:"isLoggedIn"`
}

// SessionCodec seals a SessionRecord into a cookie value and opens it
// again. Implementations must authenticate the value: a tampered or
// truncated cookie fails to decode.
type SessionCodec interface {
	// Encode seals the record into a cookie value.
	Encode(rec SessionRecord) (string, error)

	// Decode opens and verifies a cookie value. Any integrity or
	// decryption failure returns an error; it never returns a partial
	// record.
	Decode(value string) (SessionRecord, error)
}
