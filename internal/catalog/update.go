// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package catalog

// FieldUpdate enumerates the mutable fields of a property. Nil fields are
// left untouched. ID and CreatedAt are immutable and deliberately absent.
//
// Bedrooms and Bathrooms are doubly indirect so callers can distinguish
// "leave alone" (nil) from "clear" (*pointer to nil).
type FieldUpdate struct {
	Title           *string
	Slug            *string
	UsageType       *UsageType
	PropertySubtype *string
	AreaName        *string
	City            *string
	PriceInr        *int64
	SizeSqft        *int64
	Bedrooms        **int
	Bathrooms       **int
	Parking         *string
	Amenities       *[]string
	ImageURLs       *[]string
	TourEmbedURL    *string
	IsPublished     *bool
	IsFeatured      *bool
}

// Apply copies the set fields onto the property. The tour embed URL is
// normalized on the way in so pasted vendor markup never reaches the store.
func (u FieldUpdate) Apply(p *Property) {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Slug != nil {
		p.Slug = *u.Slug
	}
	if u.UsageType != nil {
		p.UsageType = *u.UsageType
	}
	if u.PropertySubtype != nil {
		p.PropertySubtype = *u.PropertySubtype
	}
	if u.AreaName != nil {
		p.AreaName = *u.AreaName
	}
	if u.City != nil {
		p.City = *u.City
	}
	if u.PriceInr != nil {
		p.PriceInr = *u.PriceInr
	}
	if u.SizeSqft != nil {
		p.SizeSqft = *u.SizeSqft
	}
	if u.Bedrooms != nil {
		p.Bedrooms = *u.Bedrooms
	}
	if u.Bathrooms != nil {
		p.Bathrooms = *u.Bathrooms
	}
	if u.Parking != nil {
		p.Parking = *u.Parking
	}
	if u.Amenities != nil {
		p.Amenities = *u.Amenities
	}
	if u.ImageURLs != nil {
		p.ImageURLs = *u.ImageURLs
	}
	if u.TourEmbedURL != nil {
		p.TourEmbedURL = NormalizeTourEmbed(*u.TourEmbedURL)
	}
	if u.IsPublished != nil {
		p.IsPublished = *u.IsPublished
	}
	if u.IsFeatured != nil {
		p.IsFeatured = *u.IsFeatured
	}
}
