// Capture trigger synthesis. Pure builders from (prefix, table, columns) to
// DDL text; the generated statements embed values via SQLite's quote() so
// literal fidelity, including NULL, is the engine's responsibility. Table and
// column names are double-quoted, so identifiers that collide with SQL
// keywords stay usable.
// See docs/ARCHITECTURE.md § Trigger Generator.
package sqlite

import (
	"fmt"
	"strings"
)

// triggerNames returns the three capture trigger names for a table, in the
// order tableTriggers emits their DDL.
func triggerNames(prefix, table string) []string {
	base := prefix + "undo_" + table
	return []string{base + "_insert", base + "_update", base + "_delete"}
}

func dropTriggerSQL(name string) string {
	return fmt.Sprintf(`DROP TRIGGER IF EXISTS "%s";`, name)
}

// quoteIdent double-quotes an identifier for embedding in DDL and in the
// synthesized inverse statements. Names have already passed identRE, so no
// escaping is needed.
func quoteIdent(name string) string {
	return `"` + name + `"`
}

// tableTriggers builds the DDL for the three capture triggers of one table.
// Output is deterministic for a given prefix, table name, and column order.
func tableTriggers(prefix string, t observedTable) []string {
	return []string{
		insertTrigger(prefix, t),
		updateTrigger(prefix, t),
		deleteTrigger(prefix, t),
	}
}

// insertTrigger captures an insert as deletable: the logged statement removes
// the new row by its rowid.
func insertTrigger(prefix string, t observedTable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TRIGGER \"%sundo_%s_insert\" AFTER INSERT ON %s BEGIN\n", prefix, t.name, quoteIdent(t.name))
	fmt.Fprintf(&b, "  INSERT INTO %s(\"sql\") VALUES('DELETE FROM %s WHERE rowid='||new.rowid);\n", logTableName(prefix), quoteIdent(t.name))
	b.WriteString("END;")
	return b.String()
}

// updateTrigger restores every old column value keyed by rowid. The WHEN
// guard is a null-safe inequality over every column, so no-op updates leave
// no log entry.
func updateTrigger(prefix string, t observedTable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TRIGGER \"%sundo_%s_update\" AFTER UPDATE ON %s WHEN ", prefix, t.name, quoteIdent(t.name))
	for i, c := range t.columns {
		if i > 0 {
			b.WriteString(" OR ")
		}
		fmt.Fprintf(&b, "old.%s IS NOT new.%s", quoteIdent(c), quoteIdent(c))
	}
	b.WriteString(" BEGIN\n")
	fmt.Fprintf(&b, "  INSERT INTO %s(\"sql\") VALUES('UPDATE %s SET ", logTableName(prefix), quoteIdent(t.name))
	for i, c := range t.columns {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "\"%s\"='||quote(old.%s)||'", c, quoteIdent(c))
	}
	b.WriteString(" WHERE rowid='||old.rowid);\nEND;")
	return b.String()
}

// deleteTrigger re-inserts the row with its original rowid, so an undo
// recreates it under the identity other rows may reference.
func deleteTrigger(prefix string, t observedTable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TRIGGER \"%sundo_%s_delete\" BEFORE DELETE ON %s BEGIN\n", prefix, t.name, quoteIdent(t.name))
	fmt.Fprintf(&b, "  INSERT INTO %s(\"sql\") VALUES('INSERT INTO %s(rowid", logTableName(prefix), quoteIdent(t.name))
	for _, c := range t.columns {
		fmt.Fprintf(&b, ",\"%s\"", c)
	}
	b.WriteString(") VALUES('||old.rowid")
	for _, c := range t.columns {
		fmt.Fprintf(&b, "||','||quote(old.%s)", quoteIdent(c))
	}
	b.WriteString("||')');\nEND;")
	return b.String()
}
