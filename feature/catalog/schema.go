package catalog

import (
	"fmt"
	"sort"
	"strings"

	"catalog-sync/core/database"

	"gorm.io/gorm"
)

// Markers emitted by DiffDDL.
const (
	noChangesMarker      = "-- No changes needed"
	offerAttributeMarker = "-- Offer attribute changes are handled through the offer_attributes table."
)

func dialectOf(db *gorm.DB) (string, error) {
	switch db.Dialector.Name() {
	case dialectMySQL:
		return dialectMySQL, nil
	case dialectSQLite:
		return dialectSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database dialect %q", db.Dialector.Name())
	}
}

// TableDDL renders the kind's creation statements for the given dialect.
func TableDDL(kind Kind, dialect string) (string, error) {
	spec, err := lookup(kind)
	if err != nil {
		return "", err
	}

	var statements []string
	for _, table := range spec.tables {
		ddl, ok := table.statements[dialect]
		if !ok {
			return "", fmt.Errorf("unsupported database dialect %q", dialect)
		}
		statements = append(statements, ddl...)
	}
	return strings.Join(statements, ";\n\n") + ";", nil
}

// ExpectedColumns returns the columns the kind's primary table is expected
// to carry, in sorted order.
func ExpectedColumns(kind Kind) ([]string, error) {
	spec, err := lookup(kind)
	if err != nil {
		return nil, err
	}
	columns := make([]string, len(spec.expectedColumns))
	copy(columns, spec.expectedColumns)
	sort.Strings(columns)
	return columns, nil
}

// EnsureTables creates the kind's tables when they are absent. Existing
// tables are left untouched even if their shape has drifted; drift is
// surfaced through DiffDDL, never repaired implicitly.
func EnsureTables(db *gorm.DB, kind Kind) error {
	spec, err := lookup(kind)
	if err != nil {
		return err
	}
	dialect, err := dialectOf(db)
	if err != nil {
		return err
	}

	for _, table := range spec.tables {
		exists, err := database.HasTable(db, table.name)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		for _, statement := range table.statements[dialect] {
			if err := db.Exec(statement).Error; err != nil {
				return fmt.Errorf("failed to create table %s: %w", table.name, err)
			}
		}
	}
	return nil
}

// DiffDDL compares the kind's primary table against its expected shape and
// renders the statements needed to reconcile it. A missing table yields the
// full creation DDL. Missing columns become ALTER TABLE statements; drifted
// columns are added as TEXT because the live type cannot be inferred from a
// name alone. Extra columns are reported but never dropped.
//
// Offers are the exception: their shape changes ride on the offer_attributes
// side table, so the diff is always the literal marker and the live table is
// never inspected.
func DiffDDL(db *gorm.DB, kind Kind) (string, error) {
	spec, err := lookup(kind)
	if err != nil {
		return "", err
	}
	if kind == KindOffer {
		return offerAttributeMarker, nil
	}
	dialect, err := dialectOf(db)
	if err != nil {
		return "", err
	}

	exists, err := database.HasTable(db, spec.table)
	if err != nil {
		return "", err
	}
	if !exists {
		return TableDDL(kind, dialect)
	}

	live, err := database.ColumnNames(db, spec.table)
	if err != nil {
		return "", err
	}
	present := make(map[string]bool, len(live))
	for _, name := range live {
		present[name] = true
	}

	expected := make(map[string]bool, len(spec.expectedColumns))
	var missing []string
	for _, name := range spec.expectedColumns {
		expected[name] = true
		if !present[name] {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)

	var extra []string
	for _, name := range live {
		if !expected[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)

	var b strings.Builder
	for _, name := range missing {
		fmt.Fprintf(&b, "ALTER TABLE %s\n    ADD COLUMN %s TEXT;\n", spec.table, name)
	}
	for _, name := range extra {
		fmt.Fprintf(&b, "-- Column %s.%s is not expected; dropping it is left to the operator.\n", spec.table, name)
	}
	if b.Len() == 0 {
		b.WriteString(noChangesMarker + "\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
