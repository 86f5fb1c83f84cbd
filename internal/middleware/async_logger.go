package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/epq-service/internal/domain/model"
	"github.com/guttosm/epq-service/internal/logger"
)

// LogSink persists log entries.
type LogSink interface {
	CreateLog(ctx context.Context, entry *model.LogEntry) error
}

// AsyncLoggerConfig holds configuration for the async logger.
type AsyncLoggerConfig struct {
	// BufferSize is the size of the log entry channel buffer.
	BufferSize int
	// NumWorkers is the number of worker goroutines writing entries.
	NumWorkers int
	// WriteTimeout bounds a single write to the sink.
	WriteTimeout time.Duration
}

// DefaultAsyncLoggerConfig returns sensible defaults for the async logger.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		BufferSize:   1000,
		NumWorkers:   4,
		WriteTimeout: 5 * time.Second,
	}
}

// AsyncLogger writes log entries to a sink from a fixed worker pool. When
// the buffer is full entries are dropped rather than blocking requests.
// A nil *AsyncLogger discards everything.
type AsyncLogger struct {
	sink         LogSink
	entryCh      chan *model.LogEntry
	wg           sync.WaitGroup
	stopOnce     sync.Once
	writeTimeout time.Duration

	enqueued int64
	dropped  int64
	written  int64
	errors   int64
}

// AsyncLoggerStats is a snapshot of the logger counters.
type AsyncLoggerStats struct {
	Enqueued int64 `json:"enqueued"`
	Dropped  int64 `json:"dropped"`
	Written  int64 `json:"written"`
	Errors   int64 `json:"errors"`
}

// NewAsyncLogger starts the worker pool. It returns nil for a nil sink.
func NewAsyncLogger(sink LogSink, cfg AsyncLoggerConfig) *AsyncLogger {
	if sink == nil {
		return nil
	}
	def := DefaultAsyncLoggerConfig()
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = def.BufferSize
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = def.NumWorkers
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}

	al := &AsyncLogger{
		sink:         sink,
		entryCh:      make(chan *model.LogEntry, cfg.BufferSize),
		writeTimeout: cfg.WriteTimeout,
	}
	for i := 0; i < cfg.NumWorkers; i++ {
		al.wg.Add(1)
		go al.worker()
	}
	return al
}

func (al *AsyncLogger) worker() {
	defer al.wg.Done()
	for entry := range al.entryCh {
		al.write(entry)
	}
}

func (al *AsyncLogger) write(entry *model.LogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), al.writeTimeout)
	defer cancel()

	if err := al.sink.CreateLog(ctx, entry); err != nil {
		atomic.AddInt64(&al.errors, 1)
		log := logger.Logger()
		log.Warn().Err(err).Str("request_id", entry.RequestID).Msg("Failed to write async log entry")
		return
	}
	atomic.AddInt64(&al.written, 1)
}

// Log enqueues entry and reports whether it was accepted.
func (al *AsyncLogger) Log(entry *model.LogEntry) (accepted bool) {
	if al == nil || entry == nil {
		return false
	}
	defer func() {
		// Send on a closed channel after Stop.
		if recover() != nil {
			atomic.AddInt64(&al.dropped, 1)
			accepted = false
		}
	}()

	select {
	case al.entryCh <- entry:
		atomic.AddInt64(&al.enqueued, 1)
		return true
	default:
		atomic.AddInt64(&al.dropped, 1)
		return false
	}
}

// Stop drains buffered entries and waits for the workers.
func (al *AsyncLogger) Stop() {
	if al == nil {
		return
	}
	al.stopOnce.Do(func() {
		close(al.entryCh)
		al.wg.Wait()
	})
}

// Stats returns the current counters.
func (al *AsyncLogger) Stats() AsyncLoggerStats {
	if al == nil {
		return AsyncLoggerStats{}
	}
	return AsyncLoggerStats{
		Enqueued: atomic.LoadInt64(&al.enqueued),
		Dropped:  atomic.LoadInt64(&al.dropped),
		Written:  atomic.LoadInt64(&al.written),
		Errors:   atomic.LoadInt64(&al.errors),
	}
}
