// ABOUTME: Tests for the Badger-backed record store.
// ABOUTME: Covers CRUD, index scans, unique constraints, sequences, and meta.
package kv

import (
	"errors"
	"testing"
)

// note is a minimal record type for exercising the store.
type note struct {
	ID    uint64 `json:"id"`
	Book  string `json:"book"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

func (n *note) RecordID() uint64      { return n.ID }
func (n *note) SetRecordID(id uint64) { n.ID = id }

func testTables() []Table {
	return []Table{
		{
			Name: "notes",
			Indices: []Index{
				{Name: "by_book", Value: func(r Record) string { return r.(*note).Book }},
				{Name: "by_slug", Unique: true, Value: func(r Record) string { return r.(*note).Slug }},
			},
		},
		{Name: "tags"},
	}
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(t.TempDir(), testTables())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAssignsSequentialKeys(t *testing.T) {
	s := setupTestStore(t)

	first := &note{Book: "a", Title: "one", Slug: "one"}
	second := &note{Book: "a", Title: "two", Slug: "two"}

	id1, err := s.Add("notes", first)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	id2, err := s.Add("notes", second)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if id1 != 1 || id2 != 2 {
		t.Errorf("key mismatch: got %d, %d, want 1, 2", id1, id2)
	}
	if first.ID != 1 || second.ID != 2 {
		t.Errorf("records not stamped with assigned keys: %d, %d", first.ID, second.ID)
	}
}

func TestGetRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.Add("notes", &note{Book: "b", Title: "hello", Slug: "hello"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, err := Get[note](s, "notes", id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for existing key")
	}
	if got.ID != id || got.Title != "hello" {
		t.Errorf("record mismatch: got %+v", got)
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	s := setupTestStore(t)

	got, err := Get[note](s, "notes", 42)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing key, got %+v", got)
	}
}

func TestPutWithExplicitKeyAdvancesSequence(t *testing.T) {
	s := setupTestStore(t)

	if err := s.Put("notes", &note{ID: 10, Book: "a", Title: "ten", Slug: "ten"}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	id, err := s.Add("notes", &note{Book: "a", Title: "next", Slug: "next"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if id <= 10 {
		t.Errorf("sequence did not advance past explicit key: got %d", id)
	}
}

func TestDelete(t *testing.T) {
	s := setupTestStore(t)

	id, err := s.Add("notes", &note{Book: "a", Title: "gone", Slug: "gone"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := s.Delete("notes", id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	got, err := Get[note](s, "notes", id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("record survived delete: %+v", got)
	}

	// Index entries must be unlinked too.
	matches, err := GetAllByIndex[note](s, "notes", "by_book", "a")
	if err != nil {
		t.Fatalf("GetAllByIndex failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("index entry survived delete: %d matches", len(matches))
	}

	// Deleting a missing key is a no-op.
	if err := s.Delete("notes", 999); err != nil {
		t.Fatalf("Delete of missing key failed: %v", err)
	}
}

func TestGetAllByIndex(t *testing.T) {
	s := setupTestStore(t)

	for _, n := range []*note{
		{Book: "go", Title: "a", Slug: "a"},
		{Book: "go", Title: "b", Slug: "b"},
		{Book: "rust", Title: "c", Slug: "c"},
	} {
		if _, err := s.Add("notes", n); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	matches, err := GetAllByIndex[note](s, "notes", "by_book", "go")
	if err != nil {
		t.Fatalf("GetAllByIndex failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("match count mismatch: got %d, want 2", len(matches))
	}
	for _, m := range matches {
		if m.Book != "go" {
			t.Errorf("wrong record in index scan: %+v", m)
		}
	}

	none, err := GetAllByIndex[note](s, "notes", "by_book", "python")
	if err != nil {
		t.Fatalf("GetAllByIndex failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no matches, got %d", len(none))
	}
}

func TestPutMovesIndexEntries(t *testing.T) {
	s := setupTestStore(t)

	n := &note{Book: "go", Title: "moved", Slug: "moved"}
	if _, err := s.Add("notes", n); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	n.Book = "rust"
	if err := s.Put("notes", n); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	old, err := GetAllByIndex[note](s, "notes", "by_book", "go")
	if err != nil {
		t.Fatalf("GetAllByIndex failed: %v", err)
	}
	if len(old) != 0 {
		t.Errorf("stale index entry survived update: %d matches", len(old))
	}

	cur, err := GetAllByIndex[note](s, "notes", "by_book", "rust")
	if err != nil {
		t.Fatalf("GetAllByIndex failed: %v", err)
	}
	if len(cur) != 1 || cur[0].ID != n.ID {
		t.Errorf("updated index entry missing: %+v", cur)
	}
}

func TestUniqueIndexViolation(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.Add("notes", &note{Book: "a", Title: "one", Slug: "dup"}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	_, err := s.Add("notes", &note{Book: "b", Title: "two", Slug: "dup"})
	if !errors.Is(err, ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}

	// Updating the same record with its own unique value is fine.
	n := &note{Book: "a", Title: "one", Slug: "solo"}
	if _, err := s.Add("notes", n); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	n.Title = "renamed"
	if err := s.Put("notes", n); err != nil {
		t.Fatalf("Put of same record with unchanged unique value failed: %v", err)
	}
}

func TestUniqueIndexLookup(t *testing.T) {
	s := setupTestStore(t)

	n := &note{Book: "a", Title: "findme", Slug: "findme"}
	if _, err := s.Add("notes", n); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	matches, err := GetAllByIndex[note](s, "notes", "by_slug", "findme")
	if err != nil {
		t.Fatalf("GetAllByIndex failed: %v", err)
	}
	if len(matches) != 1 || matches[0].ID != n.ID {
		t.Fatalf("unique lookup mismatch: %+v", matches)
	}
}

func TestClearAllPreservesSequences(t *testing.T) {
	s := setupTestStore(t)

	for i := 0; i < 3; i++ {
		if _, err := s.Add("notes", &note{Book: "a", Title: "n", Slug: Uint64Key(uint64(i))}); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}
	if err := s.MetaSet("flag", "1"); err != nil {
		t.Fatalf("MetaSet failed: %v", err)
	}

	if err := s.ClearAll(); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}

	all, err := GetAll[note](s, "notes")
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("records survived clear: %d", len(all))
	}

	if _, ok, err := s.MetaGet("flag"); err != nil || ok {
		t.Errorf("meta survived clear: ok=%v err=%v", ok, err)
	}

	// The key generator keeps counting from where it left off.
	id, err := s.Add("notes", &note{Book: "a", Title: "after", Slug: "after"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if id != 4 {
		t.Errorf("sequence reset by clear: got %d, want 4", id)
	}
}

func TestMetaRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	if _, ok, err := s.MetaGet("missing"); err != nil || ok {
		t.Fatalf("missing meta: ok=%v err=%v", ok, err)
	}

	if err := s.MetaSet("theme", "dark"); err != nil {
		t.Fatalf("MetaSet failed: %v", err)
	}
	value, ok, err := s.MetaGet("theme")
	if err != nil {
		t.Fatalf("MetaGet failed: %v", err)
	}
	if !ok || value != "dark" {
		t.Errorf("meta mismatch: got %q ok=%v, want \"dark\" true", value, ok)
	}

	entries, err := s.MetaAll()
	if err != nil {
		t.Fatalf("MetaAll failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Key != "theme" || entries[0].Value != "dark" {
		t.Errorf("MetaAll mismatch: %+v", entries)
	}
}

func TestSchemaVersion(t *testing.T) {
	s := setupTestStore(t)

	version, err := s.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("fresh store version mismatch: got %d, want 0", version)
	}

	if err := s.SetSchemaVersion(3); err != nil {
		t.Fatalf("SetSchemaVersion failed: %v", err)
	}
	version, err = s.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != 3 {
		t.Errorf("version mismatch: got %d, want 3", version)
	}
}

func TestUpdateRollsBackOnError(t *testing.T) {
	s := setupTestStore(t)

	sentinel := errors.New("boom")
	err := s.Update(func(tx *Tx) error {
		if _, err := tx.Add("notes", &note{Book: "a", Title: "doomed", Slug: "doomed"}); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	all, err := GetAll[note](s, "notes")
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("aborted transaction leaked records: %d", len(all))
	}
}
