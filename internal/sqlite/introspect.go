package sqlite

import (
	"database/sql"
	"fmt"
	"regexp"

	"github.com/mesh-intelligence/rewind/pkg/types"
)

// identRE matches plain SQL identifiers. Observed table and column names are
// embedded verbatim in trigger DDL, so anything else is rejected up front.
var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// tableColumns introspects the column list of a table in schema order.
// An empty result means the table does not exist, which is fatal.
func tableColumns(db *sql.DB, table string) ([]string, error) {
	if !identRE.MatchString(table) {
		return nil, fmt.Errorf("%w: table %q", types.ErrInvalidIdentifier, table)
	}
	rows, err := db.Query(`SELECT name FROM pragma_table_info(?) ORDER BY cid;`, table)
	if err != nil {
		return nil, fmt.Errorf("introspect %s: %w", table, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("introspect %s: %w", table, err)
		}
		if !identRE.MatchString(name) {
			return nil, fmt.Errorf("%w: column %s.%s", types.ErrInvalidIdentifier, table, name)
		}
		cols = append(cols, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("introspect %s: %w", table, err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("introspect %s: table not found", table)
	}
	return cols, nil
}
