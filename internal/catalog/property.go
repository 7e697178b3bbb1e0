// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

// Package catalog provides the property listing domain model, search
// filtering, and slug resolution.
package catalog

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// UsageType classifies a property as residential or commercial.
type UsageType string

// Supported usage types.
const (
	UsageResidential UsageType = "residential"
	UsageCommercial  UsageType = "commercial"
)

// Valid reports whether the usage type is one of the supported values.
func (u UsageType) Valid() bool {
	return u == UsageResidential || u == UsageCommercial
}

// Property is a catalog listing. ID is immutable after creation; Slug is
// globally unique, enforced by the store. Amenities is an ordered tag list
// serialized into a single column; duplicates are not actively prevented.
type Property struct {
	ID              ulid.ULID
	Title           string
	Slug            string
	UsageType       UsageType
	PropertySubtype string
	AreaName        string
	City            string
	PriceInr        int64
	SizeSqft        int64
	Bedrooms        *int
	Bathrooms       *int
	Parking         string
	Amenities       []string
	ImageURLs       []string
	TourEmbedURL    string
	IsPublished     bool
	IsFeatured      bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks the invariants a property must satisfy before it
// reaches the store.
func (p *Property) Validate() error {
	if p.Title == "" {
		return oops.Code("PROPERTY_INVALID").Errorf("title cannot be empty")
	}
	if !p.UsageType.Valid() {
		return oops.Code("PROPERTY_INVALID").
			With("usage_type", string(p.UsageType)).
			Errorf("usage type must be residential or commercial")
	}
	if p.AreaName == "" {
		return oops.Code("PROPERTY_INVALID").Errorf("area name cannot be empty")
	}
	if p.PriceInr < 0 {
		return oops.Code("PROPERTY_INVALID").With("price_inr", p.PriceInr).Errorf("price cannot be negative")
	}
	if p.SizeSqft < 0 {
		return oops.Code("PROPERTY_INVALID").With("size_sqft", p.SizeSqft).Errorf("size cannot be negative")
	}
	return nil
}
