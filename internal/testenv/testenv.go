// Package testenv provides environment isolation helpers for tests.
// This package intentionally has no dependencies on other internal packages
// to avoid import cycles.
package testenv

import (
	"testing"
)

// SetDataDir points JUNIOR_DATA_DIR at a temp directory to isolate tests
// from the production ~/.junior. This is preferred over setting HOME
// because JUNIOR_DATA_DIR takes precedence in config.DataDir(). Returns
// the temp directory path. Cleanup is automatic via t.Setenv.
func SetDataDir(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	t.Setenv("JUNIOR_DATA_DIR", tmpDir)
	return tmpDir
}
