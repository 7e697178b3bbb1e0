// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package catalog

import "encoding/json"

// EncodeTags serializes an ordered tag list for storage in a text column.
// A nil list encodes as the empty JSON array.
func EncodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeTags deserializes a stored tag list. Unparseable or empty input
// decodes to an empty list rather than an error; the column predates
// strict validation and legacy rows may hold junk.
func DecodeTags(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return []string{}
	}
	if tags == nil {
		return []string{}
	}
	return tags
}

// HasAllTags reports whether have contains every tag in want.
// An empty want set is trivially satisfied.
func HasAllTags(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(have))
	for _, t := range have {
		set[t] = struct{}{}
	}
	for _, t := range want {
		if _, ok := set[t]; !ok {
			return false
		}
	}
	return true
}
