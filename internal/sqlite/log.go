// Log table DDL and query shapes.
// See docs/ARCHITECTURE.md § Log Store.
package sqlite

import "fmt"

// logTableName returns the per-scope undo log table name.
func logTableName(prefix string) string {
	return prefix + "undo_log"
}

// createLogTableSQL builds the log table DDL. The seq column autoincrements
// so sequence numbers are never reused, even after Perform deletes a
// replayed range or Unfreeze purges excluded entries.
func createLogTableSQL(prefix string) string {
	return fmt.Sprintf(`CREATE TABLE %s (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    "sql" TEXT NOT NULL
);`, logTableName(prefix))
}

func dropLogTableSQL(prefix string) string {
	return fmt.Sprintf(`DROP TABLE IF EXISTS %s;`, logTableName(prefix))
}

func maxSeqSQL(prefix string) string {
	return fmt.Sprintf(`SELECT COALESCE(MAX(seq), 0) FROM %s;`, logTableName(prefix))
}

// selectRangeSQL orders newest first so later changes replay before the
// earlier ones they may depend on.
func selectRangeSQL(prefix string) string {
	return fmt.Sprintf(`SELECT "sql" FROM %s WHERE seq >= ? AND seq <= ? ORDER BY seq DESC;`, logTableName(prefix))
}

func deleteRangeSQL(prefix string) string {
	return fmt.Sprintf(`DELETE FROM %s WHERE seq >= ? AND seq <= ?;`, logTableName(prefix))
}

func deleteAfterSQL(prefix string) string {
	return fmt.Sprintf(`DELETE FROM %s WHERE seq > ?;`, logTableName(prefix))
}
