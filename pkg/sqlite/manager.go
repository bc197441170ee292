// Package sqlite provides the public constructor for the SQLite undo/redo
// manager while keeping implementation details internal.
// See docs/ARCHITECTURE.md § Public API.
package sqlite

import (
	"database/sql"

	"github.com/mesh-intelligence/rewind/internal/sqlite"
	"github.com/mesh-intelligence/rewind/pkg/types"
)

// NewManager constructs a Manager observing the given tables on db, with an
// optional name prefix scoping its log table and trigger names so several
// instances with disjoint scopes can share one database. The manager starts
// inactive; call Activate to begin capture.
//
// Example:
//
//	m, err := sqlite.NewManager(db, []string{"notes", "tags"}, "")
//	if err != nil {
//	    return err
//	}
//	if err := m.Activate(); err != nil {
//	    return err
//	}
//	defer m.Deactivate()
func NewManager(db *sql.DB, tables []string, prefix string) (types.Manager, error) {
	return sqlite.NewManager(db, tables, prefix)
}
