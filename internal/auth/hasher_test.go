// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestArgon2idHasherRoundTrip(t *testing.T) {
	h := NewArgon2idHasher()

	hash, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	t.Run("correct password verifies", func(t *testing.T) {
		ok, err := h.Verify("correct horse battery staple", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("wrong password fails without error", func(t *testing.T) {
		ok, err := h.Verify("wrong password", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("salts differ between hashes", func(t *testing.T) {
		other, err := h.Hash("correct horse battery staple")
		require.NoError(t, err)
		assert.NotEqual(t, hash, other)
	})
}

func TestArgon2idHasherEmptyPassword(t *testing.T) {
	h := NewArgon2idHasher()
	_, err := h.Hash("")
	require.ErrorIs(t, err, ErrEmptyPassword)
}

func TestArgon2idHasherInvalidHash(t *testing.T) {
	h := NewArgon2idHasher()

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"wrong algorithm", "$scrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"missing sections", "$argon2id$v=19$m=65536"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Verify("password", tt.hash)
			require.Error(t, err)
		})
	}
}

func TestArgon2idHasherBcryptFallback(t *testing.T) {
	h := NewArgon2idHasher()

	legacy, err := bcrypt.GenerateFromPassword([]byte("legacy password"), bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("legacy bcrypt hash verifies", func(t *testing.T) {
		ok, err := h.Verify("legacy password", string(legacy))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("wrong password against bcrypt fails cleanly", func(t *testing.T) {
		ok, err := h.Verify("wrong", string(legacy))
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestNeedsUpgrade(t *testing.T) {
	h := NewArgon2idHasher()

	argonHash, err := h.Hash("password")
	require.NoError(t, err)

	assert.False(t, h.NeedsUpgrade(argonHash))
	assert.True(t, h.NeedsUpgrade("$2a$10$abcdefghijklmnopqrstuv"))
	assert.True(t, h.NeedsUpgrade("plaintext-oops"))
}
