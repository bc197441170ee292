// Package sqlite implements the trigger-based undo/redo manager for SQLite
// databases. Capture triggers append inverse statements to a per-scope log
// table; the manager groups log ranges into steps on undo and redo stacks.
// See docs/ARCHITECTURE.md § Undo Manager.
package sqlite

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/mesh-intelligence/rewind/pkg/types"
)

// notFrozen is the freeze cursor value of an unfrozen manager.
const notFrozen int64 = -1

// observedTable is one table in the manager's scope with its introspected
// column list in schema order.
type observedTable struct {
	name    string
	columns []string
}

// Manager implements types.Manager over a single *sql.DB handle.
// All state besides the log table itself lives in-process and is owned
// exclusively by the instance; the zero point of every field is restored on
// Deactivate. Not safe for concurrent use.
type Manager struct {
	db     *sql.DB
	prefix string
	tables []observedTable // sorted by name for deterministic DDL order

	active    bool
	freeze    int64 // notFrozen when not frozen
	firstLog  int64 // first sequence number of the open interval
	undoStack []types.Range
	redoStack []types.Range
}

// NewManager constructs a Manager observing the given tables, namespaced by
// an optional prefix. It introspects every table's column list and validates
// the scope against the foreign-key graph; either failure is fatal. The
// manager starts inactive.
func NewManager(db *sql.DB, tables []string, prefix string) (*Manager, error) {
	if len(tables) == 0 {
		return nil, types.ErrNoTables
	}
	if prefix != "" && !identRE.MatchString(prefix) {
		return nil, fmt.Errorf("%w: prefix %q", types.ErrInvalidIdentifier, prefix)
	}

	names := make([]string, len(tables))
	copy(names, tables)
	sort.Strings(names)

	m := &Manager{db: db, prefix: prefix, freeze: notFrozen}
	for i, name := range names {
		if i > 0 && name == names[i-1] {
			continue // duplicates collapse to one observation
		}
		cols, err := tableColumns(db, name)
		if err != nil {
			return nil, err
		}
		m.tables = append(m.tables, observedTable{name: name, columns: cols})
	}
	if err := m.validateScope(); err != nil {
		return nil, err
	}
	return m, nil
}

// Activate creates the undo log table and the capture triggers, clears both
// stacks, and opens a fresh capture interval. The scope is re-validated
// against the foreign-key graph first. Activating an active manager is a
// no-op.
func (m *Manager) Activate() error {
	if m.active {
		return nil
	}
	if err := m.validateScope(); err != nil {
		return err
	}

	// A same-named log table may linger from a session that never
	// deactivated; dropping it is best-effort.
	_, _ = m.db.Exec(dropLogTableSQL(m.prefix))
	if _, err := m.db.Exec(createLogTableSQL(m.prefix)); err != nil {
		return fmt.Errorf("create undo log: %w", err)
	}

	for _, t := range m.tables {
		for _, name := range triggerNames(m.prefix, t.name) {
			// Stale triggers from an earlier session.
			_, _ = m.db.Exec(dropTriggerSQL(name))
		}
		for _, ddl := range tableTriggers(m.prefix, t) {
			if _, err := m.db.Exec(ddl); err != nil {
				return fmt.Errorf("create triggers on %s: %w", t.name, err)
			}
		}
	}

	m.undoStack = nil
	m.redoStack = nil
	m.freeze = notFrozen
	m.active = true
	return m.startInterval()
}

// Deactivate drops the capture triggers and the log table and clears all
// history. Deactivating an inactive manager is a no-op.
func (m *Manager) Deactivate() error {
	if !m.active {
		return nil
	}
	for _, t := range m.tables {
		for _, name := range triggerNames(m.prefix, t.name) {
			if _, err := m.db.Exec(dropTriggerSQL(name)); err != nil {
				return fmt.Errorf("drop trigger %s: %w", name, err)
			}
		}
	}
	if _, err := m.db.Exec(dropLogTableSQL(m.prefix)); err != nil {
		return fmt.Errorf("drop undo log: %w", err)
	}
	m.undoStack = nil
	m.redoStack = nil
	m.freeze = notFrozen
	m.active = false
	return nil
}

// Freeze marks the current end of the log. Entries recorded past this point
// are excluded from barriers and purged on Unfreeze; capture itself
// continues. Steps performed while frozen are recorded past the mark too,
// so Unfreeze discards them along with their stack ranges. Freezing a
// frozen manager is a no-op.
func (m *Manager) Freeze() error {
	if !m.active {
		return types.ErrNotActive
	}
	if m.freeze != notFrozen {
		return nil
	}
	max, err := m.maxSeq(m.db)
	if err != nil {
		return err
	}
	m.freeze = max
	return nil
}

// Unfreeze deletes every entry recorded while frozen and resumes normal
// capture. Stack ranges lying past the freeze mark reference only purged
// entries, so they are dropped with them. Unfreezing an unfrozen manager
// is a no-op.
func (m *Manager) Unfreeze() error {
	if !m.active {
		return types.ErrNotActive
	}
	if m.freeze == notFrozen {
		return nil
	}
	if _, err := m.db.Exec(deleteAfterSQL(m.prefix), m.freeze); err != nil {
		return fmt.Errorf("purge frozen entries: %w", err)
	}
	m.undoStack = dropPastMark(m.undoStack, m.freeze)
	m.redoStack = dropPastMark(m.redoStack, m.freeze)
	m.freeze = notFrozen
	return nil
}

// dropPastMark removes ranges recorded past the freeze mark. Barrier clamps
// to the mark and Perform regenerates whole ranges above it, so a range
// never straddles the mark.
func dropPastMark(stack []types.Range, mark int64) []types.Range {
	kept := stack[:0]
	for _, r := range stack {
		if r.Begin <= mark {
			kept = append(kept, r)
		}
	}
	return kept
}

// Barrier closes the current step. The range of entries recorded since the
// previous barrier is pushed onto the undo stack and the redo history is
// invalidated. Returns false, leaving the stacks untouched, when no new
// non-excluded entries were captured.
func (m *Manager) Barrier() (bool, error) {
	if !m.active {
		return false, types.ErrNotActive
	}
	max, err := m.maxSeq(m.db)
	if err != nil {
		return false, err
	}
	end := max
	if m.freeze != notFrozen && end > m.freeze {
		end = m.freeze
	}
	if end < m.firstLog {
		return false, nil
	}
	m.undoStack = append(m.undoStack, types.Range{Begin: m.firstLog, End: end})
	m.redoStack = nil
	m.firstLog = max + 1
	return true, nil
}

// Perform pops the top range from the selected stack and replays its inverse
// statements newest-first inside one transaction, with foreign-key checks
// deferred to commit so cascading replays may be transiently inconsistent.
// The replay fires the capture triggers itself; the resulting fresh range is
// pushed onto the opposite stack as the complementary step. In-process state
// changes only after the transaction commits.
func (m *Manager) Perform(d types.Direction) error {
	if !m.active {
		return types.ErrNotActive
	}
	from, to := &m.undoStack, &m.redoStack
	if d == types.Redo {
		from, to = to, from
	}
	if len(*from) == 0 {
		return types.ErrEndOfStack
	}
	r := (*from)[len(*from)-1]

	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("begin %s: %w", d, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`PRAGMA defer_foreign_keys = ON;`); err != nil {
		return fmt.Errorf("defer foreign keys: %w", err)
	}

	stmts, err := m.selectRange(tx, r)
	if err != nil {
		return err
	}
	if len(stmts) == 0 {
		// The stacks claim a step the log no longer holds.
		return fmt.Errorf("%w: no log entries in range [%d, %d]",
			types.ErrInternalInconsistency, r.Begin, r.End)
	}
	if _, err := tx.Exec(deleteRangeSQL(m.prefix), r.Begin, r.End); err != nil {
		return fmt.Errorf("clear %s range: %w", d, err)
	}
	max, err := m.maxSeq(tx)
	if err != nil {
		return err
	}
	begin := max + 1

	// Newest first: later mutations may depend on row state produced by
	// earlier ones within the same step.
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("replay %s step: %w", d, err)
		}
	}

	end, err := m.maxSeq(tx)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", d, err)
	}

	*from = (*from)[:len(*from)-1]
	*to = append(*to, types.Range{Begin: begin, End: end})
	m.firstLog = end + 1
	return nil
}

// IsActive reports whether triggers exist and capture is enabled.
func (m *Manager) IsActive() bool { return m.active }

// IsFrozen reports whether the manager is active and frozen.
func (m *Manager) IsFrozen() bool { return m.active && m.freeze != notFrozen }

// CanUndo reports whether the undo stack is non-empty.
func (m *Manager) CanUndo() bool { return len(m.undoStack) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (m *Manager) CanRedo() bool { return len(m.redoStack) > 0 }

// Prefix returns the scope prefix of this instance.
func (m *Manager) Prefix() string { return m.prefix }

// Tables returns the observed table names in sorted order.
func (m *Manager) Tables() []string {
	names := make([]string, len(m.tables))
	for i, t := range m.tables {
		names[i] = t.name
	}
	return names
}

// querier is the subset of *sql.DB and *sql.Tx the cursor queries need.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

// maxSeq returns the largest sequence number in the log, zero when empty.
func (m *Manager) maxSeq(q querier) (int64, error) {
	var max int64
	if err := q.QueryRow(maxSeqSQL(m.prefix)).Scan(&max); err != nil {
		return 0, fmt.Errorf("read log cursor: %w", err)
	}
	return max, nil
}

// startInterval opens a new capture interval at the current end of the log.
func (m *Manager) startInterval() error {
	max, err := m.maxSeq(m.db)
	if err != nil {
		return err
	}
	m.firstLog = max + 1
	return nil
}

// selectRange fetches the inverse statements of a range, newest first.
func (m *Manager) selectRange(tx *sql.Tx, r types.Range) ([]string, error) {
	rows, err := tx.Query(selectRangeSQL(m.prefix), r.Begin, r.End)
	if err != nil {
		return nil, fmt.Errorf("select range: %w", err)
	}
	defer rows.Close()

	var stmts []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan log entry: %w", err)
		}
		stmts = append(stmts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select range: %w", err)
	}
	return stmts, nil
}
