// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package store

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMigrate records calls and returns scripted results.
type fakeMigrate struct {
	upErr      error
	downErr    error
	versionVal uint
	dirty      bool
	versionErr error
	forceErr   error
	forcedTo   int
	srcErr     error
	dbErr      error
}

func (f *fakeMigrate) Up() error   { return f.upErr }
func (f *fakeMigrate) Down() error { return f.downErr }
func (f *fakeMigrate) Version() (uint, bool, error) {
	return f.versionVal, f.dirty, f.versionErr
}
func (f *fakeMigrate) Force(version int) error {
	f.forcedTo = version
	return f.forceErr
}
func (f *fakeMigrate) Close() (error, error) { return f.srcErr, f.dbErr }

func TestMigratorUp(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{}}
		require.NoError(t, m.Up())
	})

	t.Run("no change is not an error", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{upErr: migrate.ErrNoChange}}
		require.NoError(t, m.Up())
	})

	t.Run("real failure propagates", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{upErr: errors.New("syntax error")}}
		err := m.Up()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "syntax error")
	})
}

func TestMigratorDown(t *testing.T) {
	t.Run("no change is not an error", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{downErr: migrate.ErrNoChange}}
		require.NoError(t, m.Down())
	})
}

func TestMigratorVersion(t *testing.T) {
	t.Run("reports version and dirty state", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{versionVal: 3, dirty: true}}
		version, dirty, err := m.Version()
		require.NoError(t, err)
		assert.Equal(t, uint(3), version)
		assert.True(t, dirty)
	})

	t.Run("nil version reads as zero", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{versionErr: migrate.ErrNilVersion}}
		version, dirty, err := m.Version()
		require.NoError(t, err)
		assert.Zero(t, version)
		assert.False(t, dirty)
	})
}

func TestMigratorForce(t *testing.T) {
	t.Run("negative version rejected before the driver", func(t *testing.T) {
		fake := &fakeMigrate{}
		m := &Migrator{m: fake}
		require.Error(t, m.Force(-1))
		assert.Zero(t, fake.forcedTo)
	})

	t.Run("valid version passes through", func(t *testing.T) {
		fake := &fakeMigrate{}
		m := &Migrator{m: fake}
		require.NoError(t, m.Force(2))
		assert.Equal(t, 2, fake.forcedTo)
	})
}

func TestMigratorClose(t *testing.T) {
	t.Run("clean close", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{}}
		require.NoError(t, m.Close())
	})

	t.Run("source error surfaces", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{srcErr: errors.New("source busted")}}
		err := m.Close()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "source busted")
	})

	t.Run("both errors surface", func(t *testing.T) {
		m := &Migrator{m: &fakeMigrate{srcErr: errors.New("src"), dbErr: errors.New("db")}}
		err := m.Close()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "src")
		assert.Contains(t, err.Error(), "db")
	})
}

func TestNewMigratorURLRewrite(t *testing.T) {
	// NewMigrator against an unreachable database still validates the URL
	// scheme rewrite: an unknown scheme fails immediately with a driver
	// lookup error rather than a connection error.
	_, err := NewMigrator("mysql://localhost/realprop")
	require.Error(t, err)
}
