// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package httpapi

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/oops"
	"github.com/stretchr/testify/require"

	"github.com/realprop/realprop/internal/auth"
	"github.com/realprop/realprop/internal/catalog"
	"github.com/realprop/realprop/internal/observability"
	"github.com/realprop/realprop/internal/settings"
)

const testSessionSecret = "0123456789abcdef0123456789abcdef"

// memPropertyRepo is an in-memory catalog.Repository for handler tests.
type memPropertyRepo struct {
	byID map[ulid.ULID]*catalog.Property
}

func newMemPropertyRepo() *memPropertyRepo {
	return &memPropertyRepo{byID: make(map[ulid.ULID]*catalog.Property)}
}

func (m *memPropertyRepo) Create(_ context.Context, p *catalog.Property) error {
	for _, existing := range m.byID {
		if existing.Slug == p.Slug {
			return oops.Errorf("duplicate slug %q", p.Slug)
		}
	}
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memPropertyRepo) GetByID(_ context.Context, id ulid.ULID) (*catalog.Property, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, oops.Code("PROPERTY_NOT_FOUND").Wrap(catalog.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (m *memPropertyRepo) GetBySlug(_ context.Context, slug string) (*catalog.Property, error) {
	for _, p := range m.byID {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, oops.Code("PROPERTY_NOT_FOUND").Wrap(catalog.ErrNotFound)
}

func (m *memPropertyRepo) Search(_ context.Context, f catalog.StoreFilter) ([]*catalog.Property, error) {
	var out []*catalog.Property
	for _, p := range m.byID {
		if f.PublishedOnly && !p.IsPublished {
			continue
		}
		if f.UsageType != nil && p.UsageType != *f.UsageType {
			continue
		}
		if f.AreaName != nil && p.AreaName != *f.AreaName {
			continue
		}
		if f.MinPrice != nil && p.PriceInr < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.PriceInr > *f.MaxPrice {
			continue
		}
		if f.MinSize != nil && p.SizeSqft < *f.MinSize {
			continue
		}
		if f.MaxSize != nil && p.SizeSqft > *f.MaxSize {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memPropertyRepo) SearchAdmin(_ context.Context, query string) ([]*catalog.Property, error) {
	var out []*catalog.Property
	q := strings.ToLower(query)
	for _, p := range m.byID {
		if q == "" || strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.AreaName), q) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memPropertyRepo) Update(_ context.Context, p *catalog.Property) error {
	if _, ok := m.byID[p.ID]; !ok {
		return oops.Code("PROPERTY_NOT_FOUND").Wrap(catalog.ErrNotFound)
	}
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memPropertyRepo) Delete(_ context.Context, id ulid.ULID) error {
	if _, ok := m.byID[id]; !ok {
		return oops.Code("PROPERTY_NOT_FOUND").Wrap(catalog.ErrNotFound)
	}
	delete(m.byID, id)
	return nil
}

func (m *memPropertyRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.byID)), nil
}

func (m *memPropertyRepo) DistinctAreas(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	for _, p := range m.byID {
		if p.IsPublished {
			seen[p.AreaName] = true
		}
	}
	areas := make([]string, 0, len(seen))
	for a := range seen {
		areas = append(areas, a)
	}
	sort.Strings(areas)
	return areas, nil
}

var _ catalog.Repository = (*memPropertyRepo)(nil)

// memAdminRepo holds one admin account.
type memAdminRepo struct {
	admin *auth.Admin
}

func (m *memAdminRepo) Create(_ context.Context, admin *auth.Admin) error {
	m.admin = admin
	return nil
}

func (m *memAdminRepo) GetByEmail(_ context.Context, email string) (*auth.Admin, error) {
	if m.admin == nil || !strings.EqualFold(m.admin.Email, email) {
		return nil, oops.Code("ADMIN_NOT_FOUND").Wrap(auth.ErrNotFound)
	}
	cp := *m.admin
	return &cp, nil
}

func (m *memAdminRepo) UpdatePassword(_ context.Context, _ ulid.ULID, hash string) error {
	m.admin.PasswordHash = hash
	return nil
}

var _ auth.AdminRepository = (*memAdminRepo)(nil)

// memSettingsRepo holds the singleton settings row.
type memSettingsRepo struct {
	settings *settings.SiteSettings
}

func (m *memSettingsRepo) Get(_ context.Context) (*settings.SiteSettings, error) {
	if m.settings == nil {
		return nil, oops.Code("SETTINGS_NOT_FOUND").Wrap(settings.ErrNotFound)
	}
	cp := *m.settings
	return &cp, nil
}

func (m *memSettingsRepo) Upsert(_ context.Context, s *settings.SiteSettings) error {
	cp := *s
	cp.UpdatedAt = time.Now().UTC()
	m.settings = &cp
	return nil
}

var _ settings.Repository = (*memSettingsRepo)(nil)

// testEnv bundles the wired server and its backing fakes.
type testEnv struct {
	server    *Server
	props     *memPropertyRepo
	admins    *memAdminRepo
	siteCfg   *memSettingsRepo
	codec     *auth.CookieCodec
	adminPass string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	props := newMemPropertyRepo()
	admins := &memAdminRepo{}
	siteCfg := &memSettingsRepo{}

	hasher := auth.NewArgon2idHasher()
	const password = "s3cret-pass"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	admins.admin = &auth.Admin{
		ID:           ulid.Make(),
		Email:        "admin@example.com",
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	codec, err := auth.NewCookieCodec(testSessionSecret, false)
	require.NoError(t, err)
	authSvc, err := auth.NewService(admins, codec, hasher)
	require.NoError(t, err)
	catalogSvc, err := catalog.NewService(props)
	require.NoError(t, err)

	server, err := NewServer(Config{
		Addr:     "127.0.0.1:0",
		Catalog:  catalogSvc,
		Auth:     authSvc,
		Settings: siteCfg,
		Codec:    codec,
		Metrics:  observability.NewMetrics(prometheus.NewRegistry()),
	})
	require.NoError(t, err)

	return &testEnv{
		server:    server,
		props:     props,
		admins:    admins,
		siteCfg:   siteCfg,
		codec:     codec,
		adminPass: password,
	}
}

func (e *testEnv) seedProperty(t *testing.T, title, slug, area string, published bool, amenities []string) *catalog.Property {
	t.Helper()
	p := &catalog.Property{
		ID:          ulid.Make(),
		Title:       title,
		Slug:        slug,
		UsageType:   catalog.UsageResidential,
		AreaName:    area,
		City:        "Lucknow",
		PriceInr:    5_000_000,
		SizeSqft:    1200,
		Amenities:   amenities,
		IsPublished: published,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	require.NoError(t, e.props.Create(context.Background(), p))
	return p
}

// sessionCookie returns a valid sealed admin session cookie.
func (e *testEnv) sessionCookie(t *testing.T) string {
	t.Helper()
	value, err := e.codec.Encode(auth.SessionRecord{
		UserID:     e.admins.admin.ID.String(),
		Email:      e.admins.admin.Email,
		IsLoggedIn: true,
	})
	require.NoError(t, err)
	return value
}
