package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := Config{
		Driver: "sqlite",
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	assert.NoError(t, err)
	assert.NotNil(t, db)
	return db
}

func TestTableColumns(t *testing.T) {
	db := setupSQLite(t)

	err := db.Exec("CREATE TABLE test_items (id INTEGER PRIMARY KEY, name TEXT, description TEXT)").Error
	assert.NoError(t, err)

	columns, err := TableColumns(db, "test_items")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["name"])
	assert.Equal(t, "text", colMap["description"])

	// PRAGMA table_info returns an empty result for a non-existent table
	cols, err := TableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestColumnNames(t *testing.T) {
	db := setupSQLite(t)

	err := db.Exec("CREATE TABLE test_items (id INTEGER PRIMARY KEY, Name TEXT, DESCRIPTION TEXT)").Error
	assert.NoError(t, err)

	names, err := ColumnNames(db, "test_items")
	assert.NoError(t, err)
	// Lower-cased and sorted
	assert.Equal(t, []string{"description", "id", "name"}, names)
}

func TestHasTable(t *testing.T) {
	db := setupSQLite(t)

	exists, err := HasTable(db, "test_items")
	assert.NoError(t, err)
	assert.False(t, exists)

	err = db.Exec("CREATE TABLE test_items (id INTEGER PRIMARY KEY)").Error
	assert.NoError(t, err)

	exists, err = HasTable(db, "test_items")
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestIsUniqueIndexMember(t *testing.T) {
	db := setupSQLite(t)

	err := db.Exec(`CREATE TABLE test_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		code VARCHAR(10) UNIQUE,
		name TEXT
	)`).Error
	assert.NoError(t, err)
	err = db.Exec("CREATE INDEX idx_test_items_name ON test_items (name)").Error
	assert.NoError(t, err)

	// Primary key counts as a unique identifier
	ok, err := IsUniqueIndexMember(db, "test_items", "id")
	assert.NoError(t, err)
	assert.True(t, ok)

	// UNIQUE constraint creates an automatic unique index
	ok, err = IsUniqueIndexMember(db, "test_items", "code")
	assert.NoError(t, err)
	assert.True(t, ok)

	// Case-insensitive match
	ok, err = IsUniqueIndexMember(db, "test_items", "CODE")
	assert.NoError(t, err)
	assert.True(t, ok)

	// Non-unique index member is not an identifier
	ok, err = IsUniqueIndexMember(db, "test_items", "name")
	assert.NoError(t, err)
	assert.False(t, ok)

	ok, err = IsUniqueIndexMember(db, "test_items", "missing")
	assert.NoError(t, err)
	assert.False(t, ok)
}
