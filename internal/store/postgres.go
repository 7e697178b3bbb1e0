// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

// Package store provides the PostgreSQL connection pool and schema management.
package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
)

// DB owns the process-lifetime connection pool to the catalog database.
// It is constructed once at startup, injected into repositories, and
// closed only at shutdown.
type DB struct {
	pool *pgxpool.Pool
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, oops.Code("DB_CONNECT_FAILED").With("operation", "create pool").Wrap(err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, oops.Code("DB_CONNECT_FAILED").With("operation", "ping").Wrap(err)
	}
	return &DB{pool: pool}, nil
}

// Pool returns the underlying connection pool for repository construction.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

// Ready reports whether the database is reachable. Used by the readiness probe.
func (db *DB) Ready(ctx context.Context) bool {
	return db.pool.Ping(ctx) == nil
}

// Close tears down the connection pool.
func (db *DB) Close() {
	db.pool.Close()
}
