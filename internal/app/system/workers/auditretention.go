// internal/app/system/workers/auditretention.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/tasktracker/internal/app/store/audit"
	"go.uber.org/zap"
)

// DefaultRetentionInterval is how often expired audit events are purged.
const DefaultRetentionInterval = time.Hour

// AuditRetention is a background worker that deletes audit events older
// than a retention window.
type AuditRetention struct {
	events   *audit.Store
	log      *zap.Logger
	interval time.Duration
	maxAge   time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// NewAuditRetention creates a retention worker. It returns nil when
// maxAge is not positive; a nil worker's methods are no-ops.
func NewAuditRetention(events *audit.Store, logger *zap.Logger, interval, maxAge time.Duration) *AuditRetention {
	if maxAge <= 0 {
		return nil
	}
	if interval <= 0 {
		interval = DefaultRetentionInterval
	}
	return &AuditRetention{
		events:   events,
		log:      logger,
		interval: interval,
		maxAge:   maxAge,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start purges once, then keeps purging every interval until Stop.
func (w *AuditRetention) Start() {
	if w == nil {
		return
	}
	w.wg.Add(1)
	go w.run()
	w.log.Info("audit retention worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("max_age", w.maxAge))
}

// Stop signals the worker to stop and waits for it to finish. It is
// safe to call more than once.
func (w *AuditRetention) Stop() {
	if w == nil {
		return
	}
	w.once.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("audit retention worker stopped")
	})
}

func (w *AuditRetention) run() {
	defer w.wg.Done()

	w.Purge()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Purge()
		}
	}
}

// Purge deletes events older than the retention window and returns how
// many were removed.
func (w *AuditRetention) Purge() int64 {
	if w == nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := w.now().Add(-w.maxAge)
	count, err := w.events.DeleteBefore(ctx, cutoff)
	if err != nil {
		w.log.Error("failed to purge audit events", zap.Error(err))
		return 0
	}
	if count > 0 {
		w.log.Info("purged expired audit events",
			zap.Int64("count", count),
			zap.Time("cutoff", cutoff))
	}
	return count
}
