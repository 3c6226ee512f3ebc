package iostore

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/huangsam/blamescope/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, dbPath, table string) bool {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var name string
	err = db.QueryRow(
		`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
	return err == nil && name == table
}

func TestMigrateUpAndDown(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	// Up to the latest version creates both export tables
	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, -1))
	assert.True(t, tableExists(t, dbPath, runsTable))
	assert.True(t, tableExists(t, dbPath, linesTable))

	// Down to zero rolls everything back
	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, 0))
	assert.False(t, tableExists(t, dbPath, runsTable))
	assert.False(t, tableExists(t, dbPath, linesTable))
}

func TestMigrateToSpecificVersion(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")

	require.NoError(t, Migrate(schema.SQLiteBackend, dbPath, 1))
	assert.True(t, tableExists(t, dbPath, runsTable))
	assert.False(t, tableExists(t, dbPath, linesTable))
}

func TestMigrateNoneBackend(t *testing.T) {
	err := Migrate(schema.NoneBackend, "", -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported")
}
