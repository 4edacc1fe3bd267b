package store

import (
	"path/filepath"
	"testing"
)

// MustTempStore returns a Store backed by a temporary file for testing. The
// Store is closed when the test is done.
func MustTempStore(t testing.TB) DBStore {
	st, err := NewStore(filepath.Join(t.TempDir(), "db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}
