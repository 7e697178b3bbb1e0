// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package httpapi

import (
	"encoding/json"
	"io"
	"time"

	"github.com/samber/oops"

	"github.com/realprop/realprop/internal/catalog"
	"github.com/realprop/realprop/internal/settings"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	UserID     string `json:"userId"`
	Email      string `json:"email"`
	IsLoggedIn bool   `json:"isLoggedIn"`
}

type propertyResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Slug            string    `json:"slug"`
	UsageType       string    `json:"usageType"`
	PropertySubtype string    `json:"propertySubtype"`
	AreaName        string    `json:"areaName"`
	City            string    `json:"city"`
	PriceInr        int64     `json:"priceInr"`
	SizeSqft        int64     `json:"sizeSqft"`
	Bedrooms        *int      `json:"bedrooms"`
	Bathrooms       *int      `json:"bathrooms"`
	Parking         string    `json:"parking"`
	Amenities       []string  `json:"amenities"`
	ImageURLs       []string  `json:"imageUrls"`
	TourEmbedURL    string    `json:"tourEmbedUrl"`
	IsPublished     bool      `json:"isPublished"`
	IsFeatured      bool      `json:"isFeatured"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toPropertyResponse(p *catalog.Property) propertyResponse {
	amenities := p.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	images := p.ImageURLs
	if images == nil {
		images = []string{}
	}
	return propertyResponse{
		ID:              p.ID.String(),
		Title:           p.Title,
		Slug:            p.Slug,
		UsageType:       string(p.UsageType),
		PropertySubtype: p.PropertySubtype,
		AreaName:        p.AreaName,
		City:            p.City,
		PriceInr:        p.PriceInr,
		SizeSqft:        p.SizeSqft,
		Bedrooms:        p.Bedrooms,
		Bathrooms:       p.Bathrooms,
		Parking:         p.Parking,
		Amenities:       amenities,
		ImageURLs:       images,
		TourEmbedURL:    p.TourEmbedURL,
		IsPublished:     p.IsPublished,
		IsFeatured:      p.IsFeatured,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toPropertyResponses(props []*catalog.Property) []propertyResponse {
	out := make([]propertyResponse, 0, len(props))
	for _, p := range props {
		out = append(out, toPropertyResponse(p))
	}
	return out
}

type createPropertyRequest struct {
	Title           string   `json:"title"`
	Slug            string   `json:"slug"`
	UsageType       string   `json:"usageType"`
	PropertySubtype string   `json:"propertySubtype"`
	AreaName        string   `json:"areaName"`
	City            string   `json:"city"`
	PriceInr        int64    `json:"priceInr"`
	SizeSqft        int64    `json:"sizeSqft"`
	Bedrooms        *int     `json:"bedrooms"`
	Bathrooms       *int     `json:"bathrooms"`
	Parking         string   `json:"parking"`
	Amenities       []string `json:"amenities"`
	ImageURLs       []string `json:"imageUrls"`
	TourEmbedURL    string   `json:"tourEmbedUrl"`
	IsPublished     bool     `json:"isPublished"`
	IsFeatured      bool     `json:"isFeatured"`
}

func (r createPropertyRequest) toProperty() *catalog.Property {
	return &catalog.Property{
		Title:           r.Title,
		Slug:            r.Slug,
		UsageType:       catalog.UsageType(r.UsageType),
		PropertySubtype: r.PropertySubtype,
		AreaName:        r.AreaName,
		City:            r.City,
		PriceInr:        r.PriceInr,
		SizeSqft:        r.SizeSqft,
		Bedrooms:        r.Bedrooms,
		Bathrooms:       r.Bathrooms,
		Parking:         r.Parking,
		Amenities:       r.Amenities,
		ImageURLs:       r.ImageURLs,
		TourEmbedURL:    r.TourEmbedURL,
		IsPublished:     r.IsPublished,
		IsFeatured:      r.IsFeatured,
	}
}

type filterMetaResponse struct {
	Areas               []string `json:"areas"`
	AmenitiesVocabulary []string `json:"amenitiesVocabulary"`
}

type settingsResponse struct {
	BrandName           string    `json:"brandName"`
	Tagline             string    `json:"tagline"`
	City                string    `json:"city"`
	WhatsAppNumber      string    `json:"whatsappNumber"`
	PhoneNumber         string    `json:"phoneNumber"`
	WhatsAppTemplate    string    `json:"whatsappTemplate"`
	AmenitiesVocabulary []string  `json:"amenitiesVocabulary"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

func toSettingsResponse(s *settings.SiteSettings) settingsResponse {
	vocab := s.AmenitiesVocabulary
	if vocab == nil {
		vocab = []string{}
	}
	return settingsResponse{
		BrandName:           s.BrandName,
		Tagline:             s.Tagline,
		City:                s.City,
		WhatsAppNumber:      s.WhatsAppNumber,
		PhoneNumber:         s.PhoneNumber,
		WhatsAppTemplate:    s.WhatsAppTemplate,
		AmenitiesVocabulary: vocab,
		UpdatedAt:           s.UpdatedAt,
	}
}

type updateSettingsRequest struct {
	BrandName           string   `json:"brandName"`
	Tagline             string   `json:"tagline"`
	City                string   `json:"city"`
	WhatsAppNumber      string   `json:"whatsappNumber"`
	PhoneNumber         string   `json:"phoneNumber"`
	WhatsAppTemplate    string   `json:"whatsappTemplate"`
	AmenitiesVocabulary []string `json:"amenitiesVocabulary"`
}

func (r updateSettingsRequest) toSettings() *settings.SiteSettings {
	return &settings.SiteSettings{
		ID:                  settings.DefaultID,
		BrandName:           r.BrandName,
		Tagline:             r.Tagline,
		City:                r.City,
		WhatsAppNumber:      r.WhatsAppNumber,
		PhoneNumber:         r.PhoneNumber,
		WhatsAppTemplate:    r.WhatsAppTemplate,
		AmenitiesVocabulary: r.AmenitiesVocabulary,
	}
}

func decodeBody(r io.Reader, dst any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return oops.Code("REQUEST_MALFORMED").Wrapf(err, "decoding request body")
	}
	return nil
}

// decodeFieldUpdate reads a partial property payload, distinguishing
// absent keys from explicit nulls so that bedrooms and bathrooms can be
// cleared as well as changed.
func decodeFieldUpdate(r io.Reader) (catalog.FieldUpdate, error) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return catalog.FieldUpdate{}, oops.Code("REQUEST_MALFORMED").Wrapf(err, "decoding request body")
	}

	var upd catalog.FieldUpdate
	for key, val := range raw {
		var err error
		switch key {
		case "title":
			err = assign(val, &upd.Title)
		case "slug":
			err = assign(val, &upd.Slug)
		case "usageType":
			var s string
			if err = json.Unmarshal(val, &s); err == nil {
				ut := catalog.UsageType(s)
				upd.UsageType = &ut
			}
		case "propertySubtype":
			err = assign(val, &upd.PropertySubtype)
		case "areaName":
			err = assign(val, &upd.AreaName)
		case "city":
			err = assign(val, &upd.City)
		case "priceInr":
			err = assign(val, &upd.PriceInr)
		case "sizeSqft":
			err = assign(val, &upd.SizeSqft)
		case "bedrooms":
			var n *int
			if err = json.Unmarshal(val, &n); err == nil {
				upd.Bedrooms = &n
			}
		case "bathrooms":
			var n *int
			if err = json.Unmarshal(val, &n); err == nil {
				upd.Bathrooms = &n
			}
		case "parking":
			err = assign(val, &upd.Parking)
		case "amenities":
			err = assign(val, &upd.Amenities)
		case "imageUrls":
			err = assign(val, &upd.ImageURLs)
		case "tourEmbedUrl":
			err = assign(val, &upd.TourEmbedURL)
		case "isPublished":
			err = assign(val, &upd.IsPublished)
		case "isFeatured":
			err = assign(val, &upd.IsFeatured)
		default:
			return catalog.FieldUpdate{}, oops.Code("REQUEST_MALFORMED").
				With("field", key).Errorf("unknown field in property update")
		}
		if err != nil {
			return catalog.FieldUpdate{}, oops.Code("REQUEST_MALFORMED").
				With("field", key).Wrapf(err, "decoding property update field")
		}
	}
	return upd, nil
}

func assign[T any](raw json.RawMessage, dst **T) error {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	*dst = &v
	return nil
}
