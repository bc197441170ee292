package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/rewind/pkg/types"
)

// validateScope rejects scopes with foreign-key edges crossing the scope
// boundary. An engine-level cascade into an unobserved table would run
// outside the capture triggers and silently corrupt the history, so
// construction and activation fail instead. Skipped when enforcement is off:
// without enforcement no cascade can fire.
func (m *Manager) validateScope() error {
	var enabled int
	if err := m.db.QueryRow(`PRAGMA foreign_keys;`).Scan(&enabled); err != nil {
		return fmt.Errorf("read foreign_keys pragma: %w", err)
	}
	if enabled == 0 {
		return nil
	}

	observed := make(map[string]bool, len(m.tables))
	for _, t := range m.tables {
		observed[t.name] = true
	}

	all, err := m.allTables()
	if err != nil {
		return err
	}
	for _, from := range all {
		refs, err := m.referencedTables(from)
		if err != nil {
			return err
		}
		for _, to := range refs {
			if observed[from] != observed[to] {
				return fmt.Errorf("%w: %s references %s", types.ErrForeignKeyNotObserved, from, to)
			}
		}
	}
	return nil
}

// allTables lists every ordinary table in the database.
func (m *Manager) allTables() ([]string, error) {
	rows, err := m.db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%';`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("list tables: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return names, nil
}

// referencedTables lists the parent table of every foreign key on a table.
func (m *Manager) referencedTables(table string) ([]string, error) {
	rows, err := m.db.Query(`SELECT "table" FROM pragma_foreign_key_list(?);`, table)
	if err != nil {
		return nil, fmt.Errorf("foreign keys of %s: %w", table, err)
	}
	defer rows.Close()

	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, fmt.Errorf("foreign keys of %s: %w", table, err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("foreign keys of %s: %w", table, err)
	}
	return refs, nil
}
