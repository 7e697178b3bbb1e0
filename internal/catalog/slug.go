// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package catalog

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/oops"
)

// nonAlnumRuns matches every run of characters outside [a-z0-9] after
// lower-casing; each run collapses to a single hyphen.
var nonAlnumRuns = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from arbitrary text: lower-case,
// collapse non-alphanumeric runs to single hyphens, trim edge hyphens.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = nonAlnumRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// slugProber is the slice of the repository the resolver needs.
type slugProber interface {
	GetBySlug(ctx context.Context, slug string) (*Property, error)
}

// ResolveSlug returns a slug not currently present in the store, derived
// from the caller-supplied slug if non-empty, else from the title. The base
// is probed first; collisions append "-1", "-2", ... until a free slot is
// found. Each probe is a synchronous store round-trip; the store's unique
// constraint remains the final arbiter under concurrency.
//
// startSuffix skips suffixes already known to collide; the first call
// passes 0, insert-race retries pass the last attempted suffix plus one.
func ResolveSlug(ctx context.Context, probe slugProber, title, requested string, startSuffix int) (slug string, suffix int, err error) {
	base := Slugify(requested)
	if base == "" {
		base = Slugify(title)
	}
	if base == "" {
		return "", 0, oops.Code("PROPERTY_INVALID").Errorf("title yields an empty slug")
	}

	for n := startSuffix; ; n++ {
		candidate := base
		if n > 0 {
			candidate = fmt.Sprintf("%s-%d", base, n)
		}
		_, err := probe.GetBySlug(ctx, candidate)
		if errors.Is(err, ErrNotFound) {
			return candidate, n, nil
		}
		if err != nil {
			return "", 0, err
		}
	}
}
