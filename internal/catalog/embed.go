// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package catalog

import (
	"regexp"
	"strings"
)

// TeleportMe's published embed snippet carries the attribute as
// data-teliportme (their typo); both spellings are accepted.
var (
	teleportMeAttr = regexp.MustCompile(`data-teli?portme=["']([^"']+)["']`)
	iframeSrcAttr  = regexp.MustCompile(`src=["']([^"']+)["']`)
)

// NormalizeTourEmbed extracts a canonical embeddable URL from pasted
// tour-embed input. Bare URLs pass through untouched; vendor script tags
// and iframes yield their embedded URL; anything else is returned as-is.
// Best effort, never an error.
func NormalizeTourEmbed(input string) string {
	if strings.HasPrefix(input, "http") && !strings.Contains(input, "<") {
		return input
	}
	if m := teleportMeAttr.FindStringSubmatch(input); m != nil {
		return m[1]
	}
	if m := iframeSrcAttr.FindStringSubmatch(input); m != nil {
		return m[1]
	}
	return input
}
