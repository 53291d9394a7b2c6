package database

import (
	"path/filepath"
	"testing"

	"github.com/sefazor/photoclub-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "app.db?_pragma=foreign_keys(1)", sqliteDSN("app.db"))
	assert.Equal(t, "app.db?cache=shared&_pragma=foreign_keys(1)", sqliteDSN("app.db?cache=shared"))
	assert.Equal(t, "app.db?_pragma=foreign_keys(0)", sqliteDSN("app.db?_pragma=foreign_keys(0)"))
}

func TestNewDatabase_SQLiteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photoclub.db")
	db, err := NewDatabase(config.DatabaseConfig{URL: "sqlite:" + path}, false)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", db.Dialector.Name())

	var enabled int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)
}

func TestNewDatabase_EmptyURL(t *testing.T) {
	_, err := NewDatabase(config.DatabaseConfig{}, false)
	assert.Error(t, err)
}
