package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/sale-pack-service/internal/domain/model"
	"github.com/guttosm/sale-pack-service/internal/logger"
	"github.com/guttosm/sale-pack-service/internal/metrics"
	"github.com/guttosm/sale-pack-service/internal/service"
)

// AuditWriterConfig holds configuration for the audit writer.
type AuditWriterConfig struct {
	// BufferSize is the number of entries that may wait for a flush.
	BufferSize int
	// BatchSize flushes as soon as this many entries are pending.
	BatchSize int
	// FlushInterval flushes pending entries at least this often.
	FlushInterval time.Duration
	// WriteTimeout bounds a single batch write.
	WriteTimeout time.Duration
}

// DefaultAuditWriterConfig returns the defaults used by the server.
func DefaultAuditWriterConfig() AuditWriterConfig {
	return AuditWriterConfig{
		BufferSize:    1000,
		BatchSize:     50,
		FlushInterval: time.Second,
		WriteTimeout:  5 * time.Second,
	}
}

// AuditWriterStats reports the counters of an audit writer.
type AuditWriterStats struct {
	Enqueued int64
	Dropped  int64
	Written  int64
	Failed   int64
}

// AuditWriter buffers log entries and stores them in batches from a single
// goroutine. Entries offered while the buffer is full are dropped.
type AuditWriter struct {
	loggingService service.LoggingService
	cfg            AuditWriterConfig
	entryCh        chan *model.LogEntry
	stopCh         chan struct{}
	done           chan struct{}
	stopOnce       sync.Once

	enqueued atomic.Int64
	dropped  atomic.Int64
	written  atomic.Int64
	failed   atomic.Int64
}

// NewAuditWriter starts an audit writer. It returns nil without a logging service.
func NewAuditWriter(loggingService service.LoggingService, cfg AuditWriterConfig) *AuditWriter {
	if loggingService == nil {
		return nil
	}
	def := DefaultAuditWriterConfig()
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = def.BufferSize
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = def.FlushInterval
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = def.WriteTimeout
	}

	w := &AuditWriter{
		loggingService: loggingService,
		cfg:            cfg,
		entryCh:        make(chan *model.LogEntry, cfg.BufferSize),
		stopCh:         make(chan struct{}),
		done:           make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *AuditWriter) run() {
	defer close(w.done)

	ticker := time.NewTicker(w.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]*model.LogEntry, 0, w.cfg.BatchSize)
	for {
		select {
		case entry := <-w.entryCh:
			batch = append(batch, entry)
			if len(batch) >= w.cfg.BatchSize {
				batch = w.flush(batch)
			}
		case <-ticker.C:
			batch = w.flush(batch)
		case <-w.stopCh:
			for {
				select {
				case entry := <-w.entryCh:
					batch = append(batch, entry)
				default:
					w.flush(batch)
					return
				}
			}
		}
	}
}

func (w *AuditWriter) flush(batch []*model.LogEntry) []*model.LogEntry {
	if len(batch) == 0 {
		return batch
	}
	ctx, cancel := context.WithTimeout(context.Background(), w.cfg.WriteTimeout)
	defer cancel()

	if err := w.loggingService.CreateLogs(ctx, batch); err != nil {
		w.failed.Add(int64(len(batch)))
		log := logger.Logger()
		log.Warn().Err(err).Int("entries", len(batch)).Msg("Failed to write audit entries")
	} else {
		w.written.Add(int64(len(batch)))
	}
	return make([]*model.LogEntry, 0, w.cfg.BatchSize)
}

// Log enqueues an entry. It reports false when the entry was dropped.
func (w *AuditWriter) Log(entry *model.LogEntry) bool {
	select {
	case <-w.stopCh:
		w.dropped.Add(1)
		return false
	default:
	}

	select {
	case w.entryCh <- entry:
		w.enqueued.Add(1)
		return true
	default:
		w.dropped.Add(1)
		metrics.RecordAuditEntryDropped()
		return false
	}
}

// Stop flushes pending entries and waits for the writer to exit.
func (w *AuditWriter) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	<-w.done
}

// Stats returns the current counters.
func (w *AuditWriter) Stats() AuditWriterStats {
	return AuditWriterStats{
		Enqueued: w.enqueued.Load(),
		Dropped:  w.dropped.Load(),
		Written:  w.written.Load(),
		Failed:   w.failed.Load(),
	}
}

var (
	globalAuditWriter   *AuditWriter
	globalAuditWriterMu sync.RWMutex
)

// InitAuditWriter replaces the process wide audit writer.
func InitAuditWriter(loggingService service.LoggingService, cfg AuditWriterConfig) {
	globalAuditWriterMu.Lock()
	defer globalAuditWriterMu.Unlock()

	if globalAuditWriter != nil {
		globalAuditWriter.Stop()
	}
	globalAuditWriter = NewAuditWriter(loggingService, cfg)
}

// GetAuditWriter returns the process wide audit writer, or nil.
func GetAuditWriter() *AuditWriter {
	globalAuditWriterMu.RLock()
	defer globalAuditWriterMu.RUnlock()
	return globalAuditWriter
}

// StopAuditWriter flushes and removes the process wide audit writer.
func StopAuditWriter() {
	globalAuditWriterMu.Lock()
	defer globalAuditWriterMu.Unlock()

	if globalAuditWriter != nil {
		globalAuditWriter.Stop()
		globalAuditWriter = nil
	}
}

// store hands the entry to the audit writer, or writes it from a goroutine
// when no writer runs.
func store(loggingService service.LoggingService, entry *model.LogEntry) {
	if w := GetAuditWriter(); w != nil {
		w.Log(entry)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = loggingService.CreateLog(ctx, entry)
	}()
}
