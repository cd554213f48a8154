package database

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stardevs/community-backend/internal/config"
	"github.com/stardevs/community-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the gorm database for the configured SQL driver.
// SQLite runs in memory when no data directory is set.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.StoreDriver {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(sqliteDSN(cfg.DataDir)), gormCfg)
	default:
		return nil, fmt.Errorf("store driver %q is not SQL-backed", cfg.StoreDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.StoreDriver == "postgres" {
		sqlDB.SetMaxOpenConns(20)
		sqlDB.SetMaxIdleConns(10)
	} else {
		// SQLite serializes writers anyway
		sqlDB.SetMaxOpenConns(1)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected", "driver", cfg.StoreDriver)
	return db, nil
}

// OpenMemory opens a private in-memory SQLite database. Used by tests.
func OpenMemory() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// Every new connection would get its own empty database
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// Migrate runs AutoMigrate for the store and activity log tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.KVEntry{},
		&models.ActivityLog{},
	)
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func sqliteDSN(dataDir string) string {
	if dataDir == "" {
		return ":memory:"
	}
	if _, err := os.Stat(dataDir); err != nil && errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			slog.Warn("failed to create data dir, using in-memory database", "dir", dataDir, "error", err)
			return ":memory:"
		}
	}
	// WAL journal keeps readers from blocking the single writer
	return fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", filepath.Join(dataDir, "stardevs.sqlite"))
}
