package database

import (
	"path/filepath"
	"testing"

	"github.com/stardevs/community-backend/internal/config"
	"github.com/stardevs/community-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMemoryMigrate(t *testing.T) {
	db, err := OpenMemory()
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, Migrate(db))
	require.NoError(t, Ping(db))
	assert.True(t, db.Migrator().HasTable(&models.KVEntry{}))
	assert.True(t, db.Migrator().HasTable(&models.ActivityLog{}))
}

func TestConnectSQLiteCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := &config.Config{StoreDriver: "sqlite", DataDir: dir}

	db, err := Connect(cfg)
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, Migrate(db))
	assert.FileExists(t, filepath.Join(dir, "stardevs.sqlite"))
}

func TestConnectRejectsNonSQLDriver(t *testing.T) {
	_, err := Connect(&config.Config{StoreDriver: "badger"})
	assert.ErrorContains(t, err, "not SQL-backed")
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:", sqliteDSN(""))
	assert.Contains(t, sqliteDSN(t.TempDir()), "journal_mode(WAL)")
}
