// Package activity keeps an audit trail of bot API commands.
package activity

import (
	"log/slog"
	"sync"
	"time"

	"github.com/stardevs/community-backend/internal/models"
	"gorm.io/gorm"
)

const (
	batchSize     = 50
	flushInterval = 5 * time.Second
)

// Recorder accepts activity entries. Implementations must not block the caller on I/O.
type Recorder interface {
	Record(entry models.ActivityLog)
}

// DBRecorder batches entries into the bot_activity_logs table.
type DBRecorder struct {
	db     *gorm.DB
	mu     sync.Mutex
	buffer []models.ActivityLog
	ticker *time.Ticker
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewDBRecorder starts the background flush loop. Call Stop to flush and end it.
func NewDBRecorder(db *gorm.DB) (*DBRecorder, error) {
	if err := db.AutoMigrate(&models.ActivityLog{}); err != nil {
		return nil, err
	}
	r := &DBRecorder{
		db:     db,
		buffer: make([]models.ActivityLog, 0, batchSize),
		ticker: time.NewTicker(flushInterval),
		done:   make(chan struct{}),
	}
	r.wg.Add(1)
	go r.flushLoop()
	return r, nil
}

func (r *DBRecorder) flushLoop() {
	defer r.wg.Done()
	for {
		select {
		case <-r.ticker.C:
			r.Flush()
		case <-r.done:
			r.Flush()
			return
		}
	}
}

// Flush writes any buffered entries now.
func (r *DBRecorder) Flush() {
	r.mu.Lock()
	if len(r.buffer) == 0 {
		r.mu.Unlock()
		return
	}
	batch := r.buffer
	r.buffer = make([]models.ActivityLog, 0, batchSize)
	r.mu.Unlock()

	if err := r.db.CreateInBatches(batch, batchSize).Error; err != nil {
		slog.Error("failed to flush bot activity logs", "error", err, "count", len(batch))
	}
}

func (r *DBRecorder) Record(entry models.ActivityLog) {
	r.mu.Lock()
	r.buffer = append(r.buffer, entry)
	full := len(r.buffer) >= batchSize
	r.mu.Unlock()

	if full {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			r.Flush()
		}()
	}
}

// Stop flushes the buffer and waits for in-flight writes.
func (r *DBRecorder) Stop() {
	r.ticker.Stop()
	close(r.done)
	r.wg.Wait()
}

// LogRecorder writes entries to a logger. Used when the store has no SQL database.
type LogRecorder struct {
	Logger *slog.Logger
}

func (r LogRecorder) Record(entry models.ActivityLog) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("bot activity",
		"operation", entry.Operation,
		"actor", entry.Actor,
		"success", entry.Success,
		"error", entry.Error,
	)
}
