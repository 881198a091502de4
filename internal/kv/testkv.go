package kv

import "testing"

// NewTestDB creates a fresh in-memory key/value store.
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}
