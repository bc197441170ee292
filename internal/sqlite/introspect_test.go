package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/rewind/pkg/types"
)

func TestTableColumns(t *testing.T) {
	db := openTestDB(t)

	t.Run("columns in schema order", func(t *testing.T) {
		cols, err := tableColumns(db, "notes")
		require.NoError(t, err)
		assert.Equal(t, []string{"note_id", "body", "score"}, cols)
	})

	t.Run("missing table is fatal", func(t *testing.T) {
		_, err := tableColumns(db, "ghosts")
		assert.ErrorContains(t, err, "table not found")
	})

	t.Run("invalid identifier is rejected", func(t *testing.T) {
		_, err := tableColumns(db, "notes; DROP TABLE notes")
		assert.ErrorIs(t, err, types.ErrInvalidIdentifier)
	})
}

func TestNewManagerValidation(t *testing.T) {
	db := openTestDB(t)

	t.Run("empty scope", func(t *testing.T) {
		_, err := NewManager(db, nil, "")
		assert.ErrorIs(t, err, types.ErrNoTables)
	})

	t.Run("invalid prefix", func(t *testing.T) {
		_, err := NewManager(db, []string{"notes"}, "bad prefix")
		assert.ErrorIs(t, err, types.ErrInvalidIdentifier)
	})

	t.Run("duplicate tables collapse", func(t *testing.T) {
		m, err := NewManager(db, []string{"notes", "notes"}, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"notes"}, m.Tables())
	})
}
