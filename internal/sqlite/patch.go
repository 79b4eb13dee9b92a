// Additive schema patching. Databases created by older releases get columns
// introduced later without losing rows; there is no migration framework
// beyond these column checks.
package sqlite

import (
	"database/sql"
	"fmt"
)

// leadColumnPatches lists columns added to the leads table after the first
// release, with the DDL fragment used to add them. Order is the order the
// columns shipped in.
var leadColumnPatches = []struct {
	column string
	ddl    string
}{
	{"mobile", `ALTER TABLE leads ADD COLUMN mobile TEXT DEFAULT ''`},
	{"social_link", `ALTER TABLE leads ADD COLUMN social_link TEXT DEFAULT ''`},
	{"offer_link", `ALTER TABLE leads ADD COLUMN offer_link TEXT DEFAULT ''`},
}

// patchSchema inspects the leads table's column metadata and adds any missing
// columns. Idempotent and safe to run on every startup: columns already
// present in the CREATE TABLE statement are simply skipped.
func patchSchema(db *sql.DB) error {
	existing, err := tableColumns(db, "leads")
	if err != nil {
		return err
	}

	for _, patch := range leadColumnPatches {
		if existing[patch.column] {
			continue
		}
		if _, err := db.Exec(patch.ddl); err != nil {
			return fmt.Errorf("adding column %s: %w", patch.column, err)
		}
	}
	return nil
}

// tableColumns returns the set of column names for a table.
func tableColumns(db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("reading table info for %s: %w", table, err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return nil, fmt.Errorf("scanning table info: %w", err)
		}
		columns[name] = true
	}
	return columns, rows.Err()
}
