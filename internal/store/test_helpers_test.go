package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

// createTestStore creates a new file-backed store in a temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// mustCreateDeck creates a deck owned by owner, failing the test on error.
func mustCreateDeck(t *testing.T, s *Store, owner, name string) {
	t.Helper()
	if _, err := s.CreateDeck(context.Background(), owner, owner, name); err != nil {
		t.Fatalf("CreateDeck(%q, %q) failed: %v", owner, name, err)
	}
}

// mustReadSlides reads a deck, failing the test on error.
func mustReadSlides(t *testing.T, s *Store, owner, name string) []string {
	t.Helper()
	slides, err := s.ReadSlides(context.Background(), owner, name)
	if err != nil {
		t.Fatalf("ReadSlides(%q, %q) failed: %v", owner, name, err)
	}
	return slides
}

// tableSnapshot is the full contents of the three segment tables, in a
// deterministic order. Used to prove rejected calls leave state untouched.
type tableSnapshot struct {
	Owners []string
	Decks  []string
	Slides []string
}

func snapshotTables(t *testing.T, db *sql.DB) tableSnapshot {
	t.Helper()
	return tableSnapshot{
		Owners: queryStrings(t, db, `SELECT owner_key || '|' || bucket_key FROM owners ORDER BY owner_key`),
		Decks:  queryStrings(t, db, `SELECT bucket_key || '|' || deck_name || '|' || sequence_key || '|' || position FROM decks ORDER BY bucket_key, position`),
		Slides: queryStrings(t, db, `SELECT sequence_key || '|' || idx || '|' || slide_id FROM slides ORDER BY sequence_key, idx`),
	}
}

func queryStrings(t *testing.T, db *sql.DB, query string) []string {
	t.Helper()
	rows, err := db.Query(query)
	if err != nil {
		t.Fatalf("query %q failed: %v", query, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			t.Fatalf("scan failed: %v", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("iterate failed: %v", err)
	}
	return out
}
