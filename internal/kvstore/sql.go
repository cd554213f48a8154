package kvstore

import (
	"errors"
	"time"

	"github.com/stardevs/community-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLStore keeps values in the kv_entries table of a gorm database (SQLite or PostgreSQL).
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore migrates the kv_entries table and returns a store over it.
// The caller owns db; Close does not close it.
func NewSQLStore(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&models.KVEntry{}); err != nil {
		return nil, err
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Get(key string) ([]byte, error) {
	var entry models.KVEntry
	err := s.db.Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key}).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(entry.Value), nil
}

func (s *SQLStore) Set(key string, value []byte) error {
	entry := models.KVEntry{
		Key:       key,
		Value:     datatypes.JSON(value),
		UpdatedAt: time.Now().UTC(),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (s *SQLStore) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (s *SQLStore) Close() error { return nil }
