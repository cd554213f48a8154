// Package bootstrap assembles the store, services and bot façade from config.
// The HTTP server and the operator CLI share it.
package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/stardevs/community-backend/internal/activity"
	"github.com/stardevs/community-backend/internal/botapi"
	"github.com/stardevs/community-backend/internal/config"
	"github.com/stardevs/community-backend/internal/database"
	"github.com/stardevs/community-backend/internal/kvstore"
	"github.com/stardevs/community-backend/internal/metrics"
	"github.com/stardevs/community-backend/internal/services"
	"gorm.io/gorm"
)

type Runtime struct {
	DB      *gorm.DB // nil unless the store driver is SQL-backed
	Store   kvstore.Store
	Reports *services.ScamLogService
	Stats   *services.StatsService
	Facade  *botapi.Facade
	Metrics *metrics.Metrics

	recorder    *activity.DBRecorder
	cleanupDone chan struct{}
}

type Options struct {
	// Background starts the activity cleanup ticker.
	Background bool
	Metrics    *metrics.Metrics
}

// Open connects storage and wires the services. Call Close when done.
func Open(cfg *config.Config, logger *slog.Logger, opts Options) (*Runtime, error) {
	rt := &Runtime{Metrics: opts.Metrics}

	if cfg.UsesSQL() {
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(db); err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		rt.DB = db
	}

	store, err := kvstore.Open(cfg.StoreDriver, cfg.DataDir, rt.DB, logger)
	if err != nil {
		rt.closeDB()
		return nil, err
	}
	rt.Store = store

	keys := kvstore.NewKeys(cfg.StoreNamespace)
	clock := services.RealClock{}
	rt.Reports, err = services.NewScamLogService(store, keys, clock, logger)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	rt.Stats = services.NewStatsService(store, keys, clock)

	var recorder activity.Recorder = activity.LogRecorder{Logger: logger}
	if rt.DB != nil {
		dbRecorder, err := activity.NewDBRecorder(rt.DB)
		if err != nil {
			_ = rt.Close()
			return nil, fmt.Errorf("activity log setup failed: %w", err)
		}
		rt.recorder = dbRecorder
		recorder = dbRecorder

		if opts.Background {
			rt.cleanupDone = make(chan struct{})
			activity.StartCleanup(rt.DB, cfg.ActivityRetention, rt.cleanupDone)
		}
	}

	rt.Facade = botapi.New(rt.Reports, rt.Stats,
		botapi.WithRecorder(recorder),
		botapi.WithMetrics(opts.Metrics),
		botapi.WithLogger(logger),
	)
	return rt, nil
}

// Close stops background work, flushes the activity log and releases storage.
func (rt *Runtime) Close() error {
	if rt.cleanupDone != nil {
		close(rt.cleanupDone)
		rt.cleanupDone = nil
	}
	if rt.recorder != nil {
		rt.recorder.Stop()
		rt.recorder = nil
	}
	var errs []error
	if rt.Store != nil {
		if err := rt.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store close: %w", err))
		}
	}
	if err := rt.closeDB(); err != nil {
		errs = append(errs, fmt.Errorf("database close: %w", err))
	}
	return errors.Join(errs...)
}

func (rt *Runtime) closeDB() error {
	if rt.DB == nil {
		return nil
	}
	err := database.Close(rt.DB)
	rt.DB = nil
	return err
}
