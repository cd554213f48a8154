package kvstore

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/stardevs/community-backend/internal/logging"
)

// BadgerStore keeps values in an embedded badger database.
// With no data directory the database lives in memory only.
type BadgerStore struct {
	db         *badger.DB
	logger     *slog.Logger
	dataDir    string
	gcInterval time.Duration
	gcTicker   *time.Ticker
	gcStopCh   chan struct{}
	gcWg       sync.WaitGroup
}

type BadgerOptionFunc func(*BadgerStore)

// WithBadgerDataDir specifies the directory holding the database files
func WithBadgerDataDir(dataDir string) BadgerOptionFunc {
	return func(b *BadgerStore) {
		b.dataDir = dataDir
	}
}

func WithBadgerLogger(logger *slog.Logger) BadgerOptionFunc {
	return func(b *BadgerStore) {
		b.logger = logger
	}
}

// WithBadgerGCInterval sets how often the value log is garbage collected. Zero disables GC.
func WithBadgerGCInterval(interval time.Duration) BadgerOptionFunc {
	return func(b *BadgerStore) {
		b.gcInterval = interval
	}
}

func NewBadgerStore(opts ...BadgerOptionFunc) (*BadgerStore, error) {
	s := &BadgerStore{
		gcInterval: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrDiscard(s.logger)

	var badgerOpts badger.Options
	if s.dataDir == "" {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
		// Nothing to reclaim in memory
		s.gcInterval = 0
	} else {
		if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
		badgerOpts = badger.DefaultOptions(filepath.Join(s.dataDir, "kv"))
	}
	badgerOpts = badgerOpts.
		WithLogger(&badgerLogger{logger: s.logger}).
		// The default INFO logging is a bit verbose
		WithLoggingLevel(badger.WARNING)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, err
	}
	s.db = db

	if s.gcInterval > 0 {
		s.gcTicker = time.NewTicker(s.gcInterval)
		s.gcStopCh = make(chan struct{})
		s.gcWg.Add(1)
		go s.runGC()
	}
	return s, nil
}

func (s *BadgerStore) runGC() {
	defer s.gcWg.Done()
	for {
		select {
		case <-s.gcTicker.C:
			for {
				err := s.db.RunValueLogGC(0.5)
				if err == nil {
					// Rewrote a file, there may be more to reclaim
					continue
				}
				if !errors.Is(err, badger.ErrNoRewrite) {
					s.logger.Warn("badger value log GC failed", "component", "kvstore", "error", err)
				}
				break
			}
		case <-s.gcStopCh:
			return
		}
	}
}

func (s *BadgerStore) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *BadgerStore) Set(key string, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (s *BadgerStore) Ping() error {
	if s.db.IsClosed() {
		return errors.New("badger database is closed")
	}
	return nil
}

func (s *BadgerStore) Close() error {
	if s.gcTicker != nil {
		s.gcTicker.Stop()
		close(s.gcStopCh)
		s.gcWg.Wait()
		s.gcTicker = nil
	}
	return s.db.Close()
}

// badgerLogger routes badger's printf-style logging to slog.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...), "component", "badger")
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...), "component", "badger")
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Info(fmt.Sprintf(format, args...), "component", "badger")
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...), "component", "badger")
}
