// Package dataio loads hierarchy definitions, entity tables and name
// lookups from disk, and writes ranking exports. Loaders are pure:
// loading the same file twice yields equal results and never mutates
// shared state.
package dataio

import (
	"path/filepath"
	"strings"
)

// formatOf returns the lowercased file extension used for format dispatch.
func formatOf(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
