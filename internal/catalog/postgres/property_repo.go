// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

// Package postgres implements catalog repositories using PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/realprop/realprop/internal/catalog"
)

// poolIface is the slice of pgxpool.Pool the repository uses; pgxmock
// satisfies it in unit tests.
type poolIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const propertyColumns = `id, title, slug, usage_type, property_subtype, area_name, city,
	       price_inr, size_sqft, bedrooms, bathrooms, parking, amenities,
	       image_urls, tour_embed_url, is_published, is_featured, created_at, updated_at`

// PropertyRepository implements catalog.Repository using PostgreSQL.
type PropertyRepository struct {
	pool poolIface
}

// NewPropertyRepository creates a new PropertyRepository.
func NewPropertyRepository(pool poolIface) *PropertyRepository {
	return &PropertyRepository{pool: pool}
}

// Create stores a new property. A duplicate slug surfaces as the unique
// constraint violation so the service layer can arbitrate the race.
func (r *PropertyRepository) Create(ctx context.Context, p *catalog.Property) error {
	amenities, err := catalog.EncodeTags(p.Amenities)
	if err != nil {
		return oops.Code("PROPERTY_CREATE_FAILED").
			With("operation", "encode amenities").
			Wrap(err)
	}
	images, err := catalog.EncodeTags(p.ImageURLs)
	if err != nil {
		return oops.Code("PROPERTY_CREATE_FAILED").
			With("operation", "encode image urls").
			Wrap(err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO properties (
			id, title, slug, usage_type, property_subtype, area_name, city,
			price_inr, size_sqft, bedrooms, bathrooms, parking, amenities,
			image_urls, tour_embed_url, is_published, is_featured, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`,
		p.ID.String(), p.Title, p.Slug, string(p.UsageType), p.PropertySubtype,
		p.AreaName, p.City, p.PriceInr, p.SizeSqft, p.Bedrooms, p.Bathrooms,
		p.Parking, amenities, images, p.TourEmbedURL, p.IsPublished, p.IsFeatured,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		// The pgconn error stays in the chain: the service unwraps it to
		// detect slug unique violations.
		return oops.Code("PROPERTY_CREATE_FAILED").
			With("operation", "insert property").
			With("slug", p.Slug).
			Wrap(err)
	}
	return nil
}

// GetByID retrieves a property by ID.
func (r *PropertyRepository) GetByID(ctx context.Context, id ulid.ULID) (*catalog.Property, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+propertyColumns+`
		FROM properties WHERE id = $1
	`, id.String())

	p, err := scanProperty(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("PROPERTY_NOT_FOUND").
			With("id", id.String()).
			Wrap(catalog.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("PROPERTY_GET_FAILED").
			With("operation", "get property by id").
			With("id", id.String()).
			Wrap(err)
	}
	return p, nil
}

// GetBySlug retrieves a property by exact slug match.
func (r *PropertyRepository) GetBySlug(ctx context.Context, slug string) (*catalog.Property, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+propertyColumns+`
		FROM properties WHERE slug = $1
	`, slug)

	p, err := scanProperty(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("PROPERTY_NOT_FOUND").
			With("slug", slug).
			Wrap(catalog.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("PROPERTY_GET_FAILED").
			With("operation", "get property by slug").
			With("slug", slug).
			Wrap(err)
	}
	return p, nil
}

// Search returns properties matching the push-down filter, newest first.
// Only the store-expressible predicates appear here; amenity membership
// is the caller's residual filter.
func (r *PropertyRepository) Search(ctx context.Context, f catalog.StoreFilter) ([]*catalog.Property, error) {
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.PublishedOnly {
		conds = append(conds, "is_published = TRUE")
	}
	if f.UsageType != nil {
		conds = append(conds, "usage_type = "+arg(string(*f.UsageType)))
	}
	if f.AreaName != nil {
		conds = append(conds, "area_name = "+arg(*f.AreaName))
	}
	if f.MinPrice != nil {
		conds = append(conds, "price_inr >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		conds = append(conds, "price_inr <= "+arg(*f.MaxPrice))
	}
	if f.MinSize != nil {
		conds = append(conds, "size_sqft >= "+arg(*f.MinSize))
	}
	if f.MaxSize != nil {
		conds = append(conds, "size_sqft <= "+arg(*f.MaxSize))
	}

	query := `SELECT ` + propertyColumns + ` FROM properties`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, oops.Code("PROPERTY_SEARCH_FAILED").
			With("operation", "search properties").
			Wrap(err)
	}
	defer rows.Close()

	return scanProperties(rows)
}

// SearchAdmin returns properties whose title or area name contains the
// query substring, newest first. Empty query returns everything.
func (r *PropertyRepository) SearchAdmin(ctx context.Context, query string) ([]*catalog.Property, error) {
	sql := `SELECT ` + propertyColumns + ` FROM properties`
	var args []any
	if query != "" {
		sql += ` WHERE title ILIKE $1 OR area_name ILIKE $1`
		args = append(args, "%"+query+"%")
	}
	sql += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, oops.Code("PROPERTY_SEARCH_FAILED").
			With("operation", "admin search").
			With("query", query).
			Wrap(err)
	}
	defer rows.Close()

	return scanProperties(rows)
}

// Update modifies an existing property.
func (r *PropertyRepository) Update(ctx context.Context, p *catalog.Property) error {
	amenities, err := catalog.EncodeTags(p.Amenities)
	if err != nil {
		return oops.Code("PROPERTY_UPDATE_FAILED").
			With("operation", "encode amenities").
			Wrap(err)
	}
	images, err := catalog.EncodeTags(p.ImageURLs)
	if err != nil {
		return oops.Code("PROPERTY_UPDATE_FAILED").
			With("operation", "encode image urls").
			Wrap(err)
	}

	result, err := r.pool.Exec(ctx, `
		UPDATE properties SET
			title = $2, slug = $3, usage_type = $4, property_subtype = $5,
			area_name = $6, city = $7, price_inr = $8, size_sqft = $9,
			bedrooms = $10, bathrooms = $11, parking = $12, amenities = $13,
			image_urls = $14, tour_embed_url = $15, is_published = $16,
			is_featured = $17, updated_at = $18
		WHERE id = $1
	`,
		p.ID.String(), p.Title, p.Slug, string(p.UsageType), p.PropertySubtype,
		p.AreaName, p.City, p.PriceInr, p.SizeSqft, p.Bedrooms, p.Bathrooms,
		p.Parking, amenities, images, p.TourEmbedURL, p.IsPublished, p.IsFeatured,
		p.UpdatedAt,
	)
	if err != nil {
		return oops.Code("PROPERTY_UPDATE_FAILED").
			With("operation", "update property").
			With("id", p.ID.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("PROPERTY_NOT_FOUND").
			With("id", p.ID.String()).
			Wrap(catalog.ErrNotFound)
	}
	return nil
}

// Delete removes a property by ID.
func (r *PropertyRepository) Delete(ctx context.Context, id ulid.ULID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id.String())
	if err != nil {
		return oops.Code("PROPERTY_DELETE_FAILED").
			With("operation", "delete property").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("PROPERTY_NOT_FOUND").
			With("id", id.String()).
			Wrap(catalog.ErrNotFound)
	}
	return nil
}

// Count returns the total number of properties.
func (r *PropertyRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM properties`).Scan(&n); err != nil {
		return 0, oops.Code("PROPERTY_COUNT_FAILED").Wrap(err)
	}
	return n, nil
}

// DistinctAreas returns the sorted distinct area names of published
// properties.
func (r *PropertyRepository) DistinctAreas(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT area_name FROM properties
		WHERE is_published = TRUE ORDER BY area_name
	`)
	if err != nil {
		return nil, oops.Code("PROPERTY_AREAS_FAILED").Wrap(err)
	}
	defer rows.Close()

	areas := make([]string, 0)
	for rows.Next() {
		var area string
		if err := rows.Scan(&area); err != nil {
			return nil, oops.Code("PROPERTY_AREAS_FAILED").
				With("operation", "scan area row").
				Wrap(err)
		}
		areas = append(areas, area)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("PROPERTY_AREAS_FAILED").
			With("operation", "iterate areas").
			Wrap(err)
	}
	return areas, nil
}

// propertyScanFields holds intermediate scan values for property parsing.
type propertyScanFields struct {
	idStr     string
	usageType string
	amenities string
	imageURLs string
}

func scanProperty(row pgx.Row) (*catalog.Property, error) {
	var p catalog.Property
	var f propertyScanFields

	err := row.Scan(
		&f.idStr, &p.Title, &p.Slug, &f.usageType, &p.PropertySubtype,
		&p.AreaName, &p.City, &p.PriceInr, &p.SizeSqft, &p.Bedrooms,
		&p.Bathrooms, &p.Parking, &f.amenities, &f.imageURLs,
		&p.TourEmbedURL, &p.IsPublished, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := parsePropertyFromFields(&f, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func parsePropertyFromFields(f *propertyScanFields, p *catalog.Property) error {
	var err error
	p.ID, err = ulid.Parse(f.idStr)
	if err != nil {
		return oops.With("operation", "parse property id").With("id", f.idStr).Wrap(err)
	}
	p.UsageType = catalog.UsageType(f.usageType)
	p.Amenities = catalog.DecodeTags(f.amenities)
	p.ImageURLs = catalog.DecodeTags(f.imageURLs)
	return nil
}

func scanProperties(rows pgx.Rows) ([]*catalog.Property, error) {
	properties := make([]*catalog.Property, 0)
	for rows.Next() {
		var p catalog.Property
		var f propertyScanFields

		if err := rows.Scan(
			&f.idStr, &p.Title, &p.Slug, &f.usageType, &p.PropertySubtype,
			&p.AreaName, &p.City, &p.PriceInr, &p.SizeSqft, &p.Bedrooms,
			&p.Bathrooms, &p.Parking, &f.amenities, &f.imageURLs,
			&p.TourEmbedURL, &p.IsPublished, &p.IsFeatured, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, oops.With("operation", "scan property").Wrap(err)
		}

		if err := parsePropertyFromFields(&f, &p); err != nil {
			return nil, err
		}
		properties = append(properties, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, oops.With("operation", "iterate properties").Wrap(err)
	}
	return properties, nil
}

// Compile-time interface check.
var _ catalog.Repository = (*PropertyRepository)(nil)
