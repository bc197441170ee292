// Package integration exercises the public rewind API end to end against a
// real database file.
package integration

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// openDB opens a fresh database on a single connection so session pragmas
// apply to every statement.
func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "rewind.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

// seedProjectSchema creates a projects/tasks pair with a cascading foreign
// key and turns enforcement on.
func seedProjectSchema(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(`CREATE TABLE projects (project_id TEXT PRIMARY KEY, name TEXT NOT NULL);`)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE tasks (
    task_id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    title TEXT NOT NULL,
    FOREIGN KEY (project_id) REFERENCES projects(project_id) ON DELETE CASCADE
);`)
	require.NoError(t, err)
	_, err = db.Exec(`PRAGMA foreign_keys = ON;`)
	require.NoError(t, err)
}

// newID generates a UUID v7 row identity, falling back to v4.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// countRows returns the row count of a table.
func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table+`;`).Scan(&n))
	return n
}
