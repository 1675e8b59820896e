package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE test_sets (id TEXT PRIMARY KEY, name TEXT, total_cards INTEGER)").Error
	require.NoError(t, err)

	columns, err := TableColumns(db, "test_sets")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]ColumnInfo)
	for _, col := range columns {
		colMap[col.Field] = col
	}

	assert.Equal(t, "integer", colMap["total_cards"].Type)
	assert.Equal(t, "text", colMap["name"].Type)

	_, err = TableColumns(db, "non_existent")
	assert.Error(t, err)
}

func TestMissingColumns(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE cursors (id TEXT PRIMARY KEY, price_sync_progress INTEGER)").Error)

	missing, err := MissingColumns(db, "cursors", []string{"id", "price_sync_progress", "last_price_sync"})
	require.NoError(t, err)
	assert.Equal(t, []string{"last_price_sync"}, missing)
}
