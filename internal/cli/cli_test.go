package cli

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// runCommand executes the root command with args and returns its stdout.
// The config directory is isolated so a developer's .rewind is never read.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	if os.Getenv("REWIND_CONFIG_DIR") == "" {
		t.Setenv("REWIND_CONFIG_DIR", t.TempDir())
	}
	defer func() { flags = rootFlags{} }()

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// seedNotesDB creates a database file with a notes table and returns its path.
func seedNotesDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()
	_, err = db.Exec(`CREATE TABLE notes (note_id TEXT, body TEXT);`)
	require.NoError(t, err)
	return path
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "rewind v")
	assert.Contains(t, out, modulePath)
}

func TestTriggersCommand(t *testing.T) {
	path := seedNotesDB(t)

	out, err := runCommand(t, "triggers", "--db", path, "--tables", "notes")
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE TABLE undo_log")
	assert.Contains(t, out, `CREATE TRIGGER "undo_notes_insert"`)
	assert.Contains(t, out, `CREATE TRIGGER "undo_notes_update"`)
	assert.Contains(t, out, `CREATE TRIGGER "undo_notes_delete"`)
}

func TestTriggersCommandRequiresTables(t *testing.T) {
	path := seedNotesDB(t)

	_, err := runCommand(t, "triggers", "--db", path)
	assert.Error(t, err)
}

func TestStatusCommandReportsAbsentLog(t *testing.T) {
	path := seedNotesDB(t)

	out, err := runCommand(t, "status", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "absent")
}

func TestCommandsRequireDBPath(t *testing.T) {
	t.Setenv("REWIND_CONFIG_DIR", t.TempDir())

	_, err := runCommand(t, "status")
	assert.Error(t, err)
}
