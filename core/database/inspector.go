package database

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo matches the output of SHOW COLUMNS.
type ColumnInfo struct {
	Field   string
	Type    string
	Null    string
	Key     string
	Default *string // Pointer because NULL default is possible
	Extra   string
}

// TableColumns retrieves the column definitions for a given table. Results
// always reflect the live schema; nothing is cached.
func TableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo
	if db.Dialector.Name() == "sqlite" {
		// SQLite uses PRAGMA table_info
		type sqliteColumn struct {
			Cid        int
			Name       string
			Type       string
			Notnull    int
			DefaultVal *string
			Pk         int
		}
		var sqliteCols []sqliteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&sqliteCols).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range sqliteCols {
			columns = append(columns, ColumnInfo{
				Field: strings.ToLower(col.Name),
				Type:  strings.ToLower(col.Type),
			})
		}
		return columns, nil
	}

	err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	// Normalize names and types to lowercase
	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
		columns[i].Field = strings.ToLower(columns[i].Field)
	}
	return columns, nil
}

// ColumnNames returns the lower-cased column names of a table in sorted
// order.
func ColumnNames(db *gorm.DB, tableName string) ([]string, error) {
	columns, err := TableColumns(db, tableName)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(columns))
	for _, col := range columns {
		names = append(names, col.Field)
	}
	sort.Strings(names)
	return names, nil
}

// HasTable reports whether the table exists in the current database.
func HasTable(db *gorm.DB, tableName string) (bool, error) {
	var count int64
	var err error
	if db.Dialector.Name() == "sqlite" {
		err = db.Raw("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", tableName).Scan(&count).Error
	} else {
		err = db.Raw("SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?", tableName).Scan(&count).Error
	}
	if err != nil {
		return false, fmt.Errorf("failed to check table %s: %w", tableName, err)
	}
	return count > 0, nil
}

// IsUniqueIndexMember reports whether the column belongs to a unique index
// on the table. The name comparison is case-insensitive.
func IsUniqueIndexMember(db *gorm.DB, tableName, columnName string) (bool, error) {
	if db.Dialector.Name() == "sqlite" {
		return sqliteUniqueMember(db, tableName, columnName)
	}

	type indexRow struct {
		NonUnique  int    `gorm:"column:Non_unique"`
		ColumnName string `gorm:"column:Column_name"`
	}
	var rows []indexRow
	if err := db.Raw(fmt.Sprintf("SHOW INDEX FROM `%s`", tableName)).Scan(&rows).Error; err != nil {
		return false, fmt.Errorf("failed to get indexes for table %s: %w", tableName, err)
	}
	for _, row := range rows {
		if row.NonUnique == 0 && strings.EqualFold(row.ColumnName, columnName) {
			return true, nil
		}
	}
	return false, nil
}

func sqliteUniqueMember(db *gorm.DB, tableName, columnName string) (bool, error) {
	// An INTEGER PRIMARY KEY is the rowid alias and never appears in
	// index_list, so primary key columns are checked through table_info.
	type tableColumn struct {
		Name string
		Pk   int
	}
	var cols []tableColumn
	if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&cols).Error; err != nil {
		return false, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for _, col := range cols {
		if col.Pk > 0 && strings.EqualFold(col.Name, columnName) {
			return true, nil
		}
	}

	type indexEntry struct {
		Name   string
		Unique int `gorm:"column:unique"`
	}
	var indexes []indexEntry
	if err := db.Raw(fmt.Sprintf("PRAGMA index_list('%s')", tableName)).Scan(&indexes).Error; err != nil {
		return false, fmt.Errorf("failed to get indexes for table %s: %w", tableName, err)
	}
	for _, idx := range indexes {
		if idx.Unique == 0 {
			continue
		}
		type indexColumn struct {
			Name string
		}
		var members []indexColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA index_info('%s')", idx.Name)).Scan(&members).Error; err != nil {
			return false, fmt.Errorf("failed to get index info for %s: %w", idx.Name, err)
		}
		for _, member := range members {
			if strings.EqualFold(member.Name, columnName) {
				return true, nil
			}
		}
	}
	return false, nil
}
