// Read-only inspection helpers for the rewind CLI.
// See docs/ARCHITECTURE.md § CLI.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/rewind/pkg/types"
)

// TriggerDDL returns the DDL a manager would install for the given scope, in
// execution order: the log table first, then the three capture triggers per
// observed table. The database schema is not touched, but the scope is
// introspected and validated exactly as NewManager does.
func TriggerDDL(db *sql.DB, tables []string, prefix string) ([]string, error) {
	m, err := NewManager(db, tables, prefix)
	if err != nil {
		return nil, err
	}
	ddl := []string{createLogTableSQL(prefix)}
	for _, t := range m.tables {
		ddl = append(ddl, tableTriggers(prefix, t)...)
	}
	return ddl, nil
}

// ReadLog returns every entry of a scope's undo log in sequence order.
func ReadLog(db *sql.DB, prefix string) ([]types.LogEntry, error) {
	rows, err := db.Query(fmt.Sprintf(`SELECT seq, "sql" FROM %s ORDER BY seq;`, logTableName(prefix)))
	if err != nil {
		return nil, fmt.Errorf("read undo log: %w", err)
	}
	defer rows.Close()

	var entries []types.LogEntry
	for rows.Next() {
		var e types.LogEntry
		if err := rows.Scan(&e.Seq, &e.SQL); err != nil {
			return nil, fmt.Errorf("read undo log: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read undo log: %w", err)
	}
	return entries, nil
}

// LogStatus describes the persisted state of one scope's undo log.
type LogStatus struct {
	Table   string // log table name for the scope
	Exists  bool   // whether the log table exists
	Entries int64  // number of log entries
	MaxSeq  int64  // largest assigned sequence number, 0 when empty
}

// ReadStatus reports whether a scope's log table exists and, when it does,
// its entry count and max sequence number.
func ReadStatus(db *sql.DB, prefix string) (LogStatus, error) {
	status := LogStatus{Table: logTableName(prefix)}

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?;`, status.Table).Scan(&count)
	if err != nil {
		return status, fmt.Errorf("check undo log: %w", err)
	}
	if count == 0 {
		return status, nil
	}
	status.Exists = true

	err = db.QueryRow(fmt.Sprintf(`SELECT COUNT(*), COALESCE(MAX(seq), 0) FROM %s;`, status.Table)).
		Scan(&status.Entries, &status.MaxSeq)
	if err != nil {
		return status, fmt.Errorf("read undo log status: %w", err)
	}
	return status, nil
}
