// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package catalog

import "errors"

// ErrNotFound is returned when a requested listing does not exist.
var ErrNotFound = errors.New("not found")
