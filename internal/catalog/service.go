// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/realprop/realprop/internal/observability"
)

// maxSlugInsertAttempts bounds how many times a creation re-resolves its
// slug after losing an insert race before surfacing a conflict.
const maxSlugInsertAttempts = 5

// Service provides catalog operations over a property repository.
type Service struct {
	repo Repository
}

// NewService creates a catalog Service.
func NewService(repo Repository) (*Service, error) {
	if repo == nil {
		return nil, oops.Errorf("property repository is required")
	}
	return &Service{repo: repo}, nil
}

// List returns published properties satisfying every supplied criterion,
// newest first. Scalar criteria are pushed down to the store; the amenity
// superset test runs in memory over each candidate's deserialized tag
// list. Store failures propagate whole; partial results are never
// returned.
func (s *Service) List(ctx context.Context, c Criteria) ([]*Property, error) {
	filter, required := c.Partition()

	candidates, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, oops.Code("CATALOG_UNAVAILABLE").
			With("operation", "search properties").
			Wrap(err)
	}

	if len(required) == 0 {
		return candidates, nil
	}

	matched := make([]*Property, 0, len(candidates))
	for _, p := range candidates {
		if HasAllTags(p.Amenities, required) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Get retrieves a property by ID.
func (s *Service) Get(ctx context.Context, id ulid.ULID) (*Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetBySlug retrieves a published or unpublished property by slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*Property, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// SearchAdmin returns properties for the admin index, optionally narrowed
// by a title/area substring.
func (s *Service) SearchAdmin(ctx context.Context, query string) ([]*Property, error) {
	props, err := s.repo.SearchAdmin(ctx, query)
	if err != nil {
		return nil, oops.Code("CATALOG_UNAVAILABLE").
			With("operation", "admin search").
			Wrap(err)
	}
	return props, nil
}

// Create stores a new listing. The slug is resolved to a unique value
// before the insert; the store's unique constraint is the final race
// arbiter, and a lost race triggers re-resolution with an incremented
// suffix before a conflict is surfaced.
func (s *Service) Create(ctx context.Context, p *Property) error {
	if p.ID.IsZero() {
		p.ID = ulid.Make()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	p.TourEmbedURL = NormalizeTourEmbed(p.TourEmbedURL)
	if err := p.Validate(); err != nil {
		return err
	}

	requested := p.Slug
	startSuffix := 0
	for attempt := 0; attempt < maxSlugInsertAttempts; attempt++ {
		slug, suffix, err := ResolveSlug(ctx, s.repo, p.Title, requested, startSuffix)
		if err != nil {
			return err
		}
		p.Slug = slug

		err = s.repo.Create(ctx, p)
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err) {
			return err
		}

		// Lost the race: another creation claimed the slug between our
		// probe and the insert. Resume probing past the taken suffix.
		observability.RecordSlugCollision()
		startSuffix = suffix + 1
	}

	return oops.Code("CATALOG_SLUG_CONFLICT").
		With("slug", p.Slug).
		With("attempts", maxSlugInsertAttempts).
		Errorf("could not claim a unique slug for %q", p.Title)
}

// Update applies an explicit field-level update to an existing listing.
// A changed slug is re-slugified and resolved against the store.
func (s *Service) Update(ctx context.Context, id ulid.ULID, u FieldUpdate) (*Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldSlug := p.Slug
	u.Apply(p)

	if u.Slug != nil && Slugify(*u.Slug) != oldSlug {
		slug, _, err := ResolveSlug(ctx, s.repo, p.Title, *u.Slug, 0)
		if err != nil {
			return nil, err
		}
		p.Slug = slug
	} else {
		p.Slug = oldSlug
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		if isUniqueViolation(err) {
			return nil, oops.Code("CATALOG_SLUG_CONFLICT").
				With("slug", p.Slug).
				Wrap(err)
		}
		return nil, err
	}
	return p, nil
}

// Delete removes a listing.
func (s *Service) Delete(ctx context.Context, id ulid.ULID) error {
	return s.repo.Delete(ctx, id)
}

// Count returns the catalog size.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Areas returns the distinct published area names for the filter facet.
func (s *Service) Areas(ctx context.Context) ([]string, error) {
	areas, err := s.repo.DistinctAreas(ctx)
	if err != nil {
		return nil, oops.Code("CATALOG_UNAVAILABLE").
			With("operation", "distinct areas").
			Wrap(err)
	}
	return areas, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique
// constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
