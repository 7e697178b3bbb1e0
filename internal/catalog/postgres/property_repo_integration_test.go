// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realprop/realprop/internal/catalog"
	"github.com/realprop/realprop/internal/catalog/postgres"
)

func newListing(title string) *catalog.Property {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &catalog.Property{
		ID:        ulid.Make(),
		Title:     title,
		UsageType: catalog.UsageResidential,
		AreaName:  "Gomti Nagar",
		City:      "Lucknow",
		PriceInr:  5_000_000,
		SizeSqft:  1200,
		Amenities: []string{"lift", "park"},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPropertyRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewPropertyRepository(testPool)
	svc, err := catalog.NewService(repo)
	require.NoError(t, err)

	p := newListing("Integration Flat")
	require.NoError(t, svc.Create(ctx, p))
	t.Cleanup(func() { _ = repo.Delete(ctx, p.ID) })

	got, err := repo.GetBySlug(ctx, "integration-flat")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, []string{"lift", "park"}, got.Amenities)
}

// TestConcurrentCreatesGetDistinctSlugs drives the slug race through a
// real unique constraint: many goroutines create listings with the same
// title, and every one must end up with its own slug.
func TestConcurrentCreatesGetDistinctSlugs(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewPropertyRepository(testPool)
	svc, err := catalog.NewService(repo)
	require.NoError(t, err)

	const racers = 4
	var wg sync.WaitGroup
	results := make([]*catalog.Property, racers)
	errs := make([]error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := newListing("Contested Villa")
			errs[i] = svc.Create(ctx, p)
			results[i] = p
		}(i)
	}
	wg.Wait()

	slugs := map[string]bool{}
	for i := 0; i < racers; i++ {
		require.NoError(t, errs[i], "racer %d", i)
		assert.False(t, slugs[results[i].Slug], "slug %q claimed twice", results[i].Slug)
		slugs[results[i].Slug] = true
		t.Cleanup(func() { _ = repo.Delete(ctx, results[i].ID) })
	}
}
