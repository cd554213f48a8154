package activity

import (
	"log/slog"
	"time"

	"github.com/stardevs/community-backend/internal/models"
	"gorm.io/gorm"
)

// StartCleanup runs a daily goroutine that deletes activity entries older than retention.
func StartCleanup(db *gorm.DB, retention time.Duration, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deleted, err := Prune(db, time.Now().Add(-retention))
				if err != nil {
					slog.Error("activity log cleanup failed", "error", err)
				} else if deleted > 0 {
					slog.Info("activity log cleanup completed", "deleted", deleted)
				}
			case <-done:
				return
			}
		}
	}()
}

// Prune deletes entries recorded before cutoff.
func Prune(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Where("timestamp < ?", cutoff).Delete(&models.ActivityLog{})
	return result.RowsAffected, result.Error
}
