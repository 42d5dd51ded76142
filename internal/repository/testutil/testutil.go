// Package testutil opens throwaway databases and seeds rows for
// repository and handler tests.
package testutil

import (
	"database/sql"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"noteful/backend/internal/db"
	"noteful/backend/internal/snowflake"
)

var snowflakeOnce sync.Once

// NewTestDB opens a migrated database in a per-test temp dir and closes
// it when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	snowflakeOnce.Do(func() {
		if err := snowflake.Init(1); err != nil {
			panic(err)
		}
	})

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})
	return database
}

// SeedFolder inserts a folder row and returns its id.
func SeedFolder(t *testing.T, database *sql.DB, name string) int64 {
	t.Helper()

	id := snowflake.NextID()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := database.Exec(
		`INSERT INTO folders (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id, name, now, now,
	)
	if err != nil {
		t.Fatalf("seed folder: %v", err)
	}
	return id
}

// SeedTag inserts a tag row and returns its id.
func SeedTag(t *testing.T, database *sql.DB, name string) int64 {
	t.Helper()

	id := snowflake.NextID()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := database.Exec(
		`INSERT INTO tags (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		id, name, now, now,
	)
	if err != nil {
		t.Fatalf("seed tag: %v", err)
	}
	return id
}

// SeedNote inserts a note row plus its tag references and returns the
// note id.
func SeedNote(t *testing.T, database *sql.DB, title string, content *string, folderID *int64, tagIDs ...int64) int64 {
	t.Helper()

	id := snowflake.NextID()
	now := time.Now().UTC().Format(time.RFC3339)
	var contentArg interface{}
	if content != nil {
		contentArg = *content
	}
	var folderArg interface{}
	if folderID != nil {
		folderArg = *folderID
	}
	_, err := database.Exec(
		`INSERT INTO notes (id, title, content, folder_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, title, contentArg, folderArg, now, now,
	)
	if err != nil {
		t.Fatalf("seed note: %v", err)
	}
	for _, tagID := range tagIDs {
		if _, err := database.Exec(`INSERT INTO note_tags (note_id, tag_id) VALUES (?, ?)`, id, tagID); err != nil {
			t.Fatalf("seed note tag ref: %v", err)
		}
	}
	return id
}
