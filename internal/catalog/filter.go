// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/oops"
)

// Criteria is the full set of listing filters a caller may supply.
// Absent fields impose no constraint. Amenities carries AND semantics:
// every listed tag must be present on a matching property.
type Criteria struct {
	UsageType *UsageType
	AreaName  *string
	MinPrice  *int64
	MaxPrice  *int64
	MinSize   *int64
	MaxSize   *int64
	Amenities []string
}

// StoreFilter is the store-expressible part of Criteria: scalar equality
// and inclusive ranges the catalog store can evaluate. The amenities
// constraint cannot be pushed down because the column holds a serialized
// list; it stays behind as the residual in-memory predicate.
type StoreFilter struct {
	UsageType     *UsageType
	AreaName      *string
	MinPrice      *int64
	MaxPrice      *int64
	MinSize       *int64
	MaxSize       *int64
	PublishedOnly bool
}

// Partition splits the criteria into the push-down filter and the residual
// amenity set.
func (c Criteria) Partition() (StoreFilter, []string) {
	return StoreFilter{
		UsageType:     c.UsageType,
		AreaName:      c.AreaName,
		MinPrice:      c.MinPrice,
		MaxPrice:      c.MaxPrice,
		MinSize:       c.MinSize,
		MaxSize:       c.MaxSize,
		PublishedOnly: true,
	}, c.Amenities
}

// ParseCriteria builds Criteria from request query parameters. Parameter
// names follow the site's listing page: use, area, minPrice, maxPrice,
// minSize, maxSize, amenities (comma separated).
func ParseCriteria(q url.Values) (Criteria, error) {
	var c Criteria

	if v := q.Get("use"); v != "" {
		u := UsageType(v)
		if !u.Valid() {
			return Criteria{}, oops.Code("FILTER_MALFORMED").
				With("use", v).
				Errorf("unknown usage type %q", v)
		}
		c.UsageType = &u
	}
	if v := q.Get("area"); v != "" {
		c.AreaName = &v
	}

	bounds := []struct {
		name string
		dst  **int64
	}{
		{"minPrice", &c.MinPrice},
		{"maxPrice", &c.MaxPrice},
		{"minSize", &c.MinSize},
		{"maxSize", &c.MaxSize},
	}
	for _, b := range bounds {
		v := q.Get(b.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Criteria{}, oops.Code("FILTER_MALFORMED").
				With("param", b.name).
				With("value", v).
				Errorf("%s must be an integer", b.name)
		}
		*b.dst = &n
	}

	if v := q.Get("amenities"); v != "" {
		for _, tag := range strings.Split(v, ",") {
			if tag != "" {
				c.Amenities = append(c.Amenities, tag)
			}
		}
	}

	return c, nil
}
