package activity

import (
	"fmt"
	"testing"
	"time"

	"github.com/stardevs/community-backend/internal/database"
	"github.com/stardevs/community-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// database/sql keeps a connection opener goroutine per open DB
		goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"),
	)
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func TestDBRecorderFlushesOnStop(t *testing.T) {
	db := openDB(t)
	rec, err := NewDBRecorder(db)
	require.NoError(t, err)

	rec.Record(models.ActivityLog{
		Timestamp:  time.Now().UTC(),
		Operation:  "create-report",
		Actor:      "milo",
		Parameters: datatypes.JSON(`{"category":"Phishing"}`),
		Success:    true,
	})
	rec.Stop()

	var logs []models.ActivityLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "create-report", logs[0].Operation)
	assert.NotEqual(t, "", logs[0].ID.String())
	assert.JSONEq(t, `{"category":"Phishing"}`, string(logs[0].Parameters))
}

func TestDBRecorderFlushesFullBatch(t *testing.T) {
	db := openDB(t)
	rec, err := NewDBRecorder(db)
	require.NoError(t, err)

	for i := 0; i < batchSize+3; i++ {
		rec.Record(models.ActivityLog{
			Timestamp: time.Now().UTC(),
			Operation: fmt.Sprintf("op-%d", i),
			Success:   true,
		})
	}
	rec.Stop()

	var count int64
	require.NoError(t, db.Model(&models.ActivityLog{}).Count(&count).Error)
	assert.Equal(t, int64(batchSize+3), count)
}

func TestPrune(t *testing.T) {
	db := openDB(t)
	require.NoError(t, db.AutoMigrate(&models.ActivityLog{}))

	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&[]models.ActivityLog{
		{Timestamp: now.AddDate(0, 0, -40), Operation: "old"},
		{Timestamp: now.AddDate(0, 0, -1), Operation: "recent"},
	}).Error)

	deleted, err := Prune(db, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var left []models.ActivityLog
	require.NoError(t, db.Find(&left).Error)
	require.Len(t, left, 1)
	assert.Equal(t, "recent", left[0].Operation)
}
