// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package catalog

import (
	"context"

	"github.com/oklog/ulid/v2"
)

// Repository manages property persistence.
type Repository interface {
	// Create stores a new property. A duplicate slug surfaces as the
	// store's unique constraint violation.
	Create(ctx context.Context, p *Property) error

	// GetByID retrieves a property by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id ulid.ULID) (*Property, error)

	// GetBySlug retrieves a property by exact slug match.
	// Returns ErrNotFound if absent.
	GetBySlug(ctx context.Context, slug string) (*Property, error)

	// Search returns properties matching the push-down filter, newest
	// first (created_at descending, store order on ties).
	Search(ctx context.Context, f StoreFilter) ([]*Property, error)

	// SearchAdmin returns all properties whose title or area name
	// contains the query substring, newest first. An empty query
	// returns the whole catalog, published or not.
	SearchAdmin(ctx context.Context, query string) ([]*Property, error)

	// Update modifies an existing property. Returns ErrNotFound if absent.
	Update(ctx context.Context, p *Property) error

	// Delete removes a property by ID. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id ulid.ULID) error

	// Count returns the total number of properties.
	Count(ctx context.Context) (int64, error)

	// DistinctAreas returns the sorted distinct area names of published
	// properties.
	DistinctAreas(ctx context.Context) ([]string, error)
}
