package kvstore

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"
)

// Open builds the store for driver. SQL drivers require db; the others ignore it.
func Open(driver, dataDir string, db *gorm.DB, logger *slog.Logger) (Store, error) {
	switch driver {
	case "memory":
		return NewMemoryStore(), nil
	case "sqlite", "postgres":
		if db == nil {
			return nil, fmt.Errorf("store driver %q requires a database connection", driver)
		}
		return NewSQLStore(db)
	case "badger":
		return NewBadgerStore(WithBadgerDataDir(dataDir), WithBadgerLogger(logger))
	default:
		return nil, fmt.Errorf("unknown store driver: %q (must be memory, sqlite, postgres or badger)", driver)
	}
}
