// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Realprop Contributors

package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestSetupAddsServiceIdentity(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("realprop", "1.2.3", "json", &buf)

	logger.Info("startup complete", "addr", ":8080")

	entry := logLine(t, &buf)
	assert.Equal(t, "realprop", entry["service"])
	assert.Equal(t, "1.2.3", entry["version"])
	assert.Equal(t, "startup complete", entry["msg"])
	assert.Equal(t, ":8080", entry["addr"])
}

func TestSetupTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("realprop", "dev", "text", &buf)

	logger.Info("hello")

	out := buf.String()
	assert.Contains(t, out, "service=realprop")
	assert.Contains(t, out, "version=dev")
}

func TestLogErrorIncludesCodeAndContext(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("realprop", "dev", "json", &buf)

	err := oops.Code("CATALOG_UNAVAILABLE").With("slug", "3bhk-flat").Errorf("query failed")
	LogError(logger, "list properties failed", err)

	entry := logLine(t, &buf)
	assert.Equal(t, "list properties failed", entry["msg"])
	assert.Equal(t, "CATALOG_UNAVAILABLE", entry["code"])
	assert.Contains(t, entry["error"], "query failed")

	ctx, ok := entry["context"].(map[string]any)
	require.True(t, ok, "context should be a map")
	assert.Equal(t, "3bhk-flat", ctx["slug"])
}

func TestLogErrorPlainError(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup("realprop", "dev", "json", &buf)

	LogError(logger, "shutdown failed", assert.AnError)

	entry := logLine(t, &buf)
	assert.Equal(t, "shutdown failed", entry["msg"])
	assert.Equal(t, assert.AnError.Error(), entry["error"])
	_, hasCode := entry["code"]
	assert.False(t, hasCode)
}
