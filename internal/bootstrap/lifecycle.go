package bootstrap

import (
	"context"
	"io"
	"sync"
	"time"

	"sentinel/pkg/errors"
	"sentinel/pkg/logger"
)

// HTTPServer is the part of the API server the lifecycle needs
type HTTPServer interface {
	Shutdown(ctx context.Context) error
}

// WorkerScheduler is the part of the worker scheduler the lifecycle needs
type WorkerScheduler interface {
	Stop() error
}

// NamedCloser pairs a resource with the name used in shutdown logs
type NamedCloser struct {
	Name   string
	Closer io.Closer
}

// ShutdownTargets lists everything the lifecycle stops. Nil members are skipped.
type ShutdownTargets struct {
	WG              *sync.WaitGroup
	HTTPServer      HTTPServer
	WorkerScheduler WorkerScheduler
	Consumers       []NamedCloser
	KafkaProducer   io.Closer
	Databases       []NamedCloser
	ErrorTracker    errors.Tracker
}

// Lifecycle manages graceful startup and shutdown of components
type Lifecycle struct {
	shutdownTimeout time.Duration
	httpTimeout     time.Duration
	drainTimeout    time.Duration
}

// NewLifecycle creates a new lifecycle manager
func NewLifecycle() *Lifecycle {
	return &Lifecycle{
		shutdownTimeout: 60 * time.Second,
		httpTimeout:     5 * time.Second,
		drainTimeout:    5 * time.Second,
	}
}

// Shutdown performs coordinated cleanup in a fixed order:
// 1. No new requests accepted
// 2. Workers finish cleanly
// 3. Kafka consumers unblock before waiting for goroutines
// 4. Producer closes after consumers
// 5. Errors and logs flushed
// 6. Database connections last (other components may need them)
func (l *Lifecycle) Shutdown(t ShutdownTargets, log *logger.Logger) {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), l.shutdownTimeout)
	defer shutdownCancel()

	log.Info("[1/7] Stopping HTTP server...")
	if t.HTTPServer != nil {
		httpCtx, httpCancel := context.WithTimeout(shutdownCtx, l.httpTimeout)
		if err := t.HTTPServer.Shutdown(httpCtx); err != nil {
			log.Errorw("HTTP server shutdown failed", "error", err)
		} else {
			log.Info("✓ HTTP server stopped")
		}
		httpCancel()
	}

	log.Info("[2/7] Stopping background workers...")
	if t.WorkerScheduler != nil {
		if err := t.WorkerScheduler.Stop(); err != nil {
			log.Errorw("Workers shutdown failed", "error", err)
		} else {
			log.Info("✓ Workers stopped")
		}
	}

	log.Info("[3/7] Closing Kafka consumers...")
	l.closeAll(t.Consumers, "Kafka consumer", log)

	log.Info("[4/7] Waiting for goroutines...")
	if t.WG != nil {
		l.waitForGoroutines(t.WG, l.drainTimeout, log)
	}

	log.Info("[5/7] Closing Kafka producer...")
	if t.KafkaProducer != nil {
		if err := t.KafkaProducer.Close(); err != nil {
			log.Errorw("Kafka producer close failed", "error", err)
		} else {
			log.Info("✓ Kafka producer closed")
		}
	}

	log.Info("[6/7] Flushing error tracker and logs...")
	l.flushErrorTracker(shutdownCtx, t.ErrorTracker, log)
	if err := log.Sync(); err != nil {
		log.Debugw("Log sync completed with warnings", "error", err)
	}

	log.Info("[7/7] Closing database connections...")
	l.closeAll(t.Databases, "Database", log)

	log.Info("✅ Graceful shutdown complete")
}

// closeAll closes resources in order and reports every failure
func (l *Lifecycle) closeAll(targets []NamedCloser, kind string, log *logger.Logger) {
	merr := &errors.MultiError{}
	for _, target := range targets {
		if target.Closer == nil {
			continue
		}
		if err := target.Closer.Close(); err != nil {
			merr.Add(errors.Wrap(err, target.Name))
		}
	}

	if err := merr.ToError(); err != nil {
		log.Errorw(kind+" close errors", "error", err)
		return
	}
	if len(targets) > 0 {
		log.Infof("✓ %s connections closed", kind)
	}
}

// waitForGoroutines waits for all goroutines with a timeout
func (l *Lifecycle) waitForGoroutines(wg *sync.WaitGroup, timeout time.Duration, log *logger.Logger) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info("✓ All goroutines finished")
	case <-time.After(timeout):
		log.Warnw("⚠ Some goroutines did not finish within timeout", "timeout", timeout)
	}
}

// flushErrorTracker flushes the error tracker (Sentry, etc.)
func (l *Lifecycle) flushErrorTracker(ctx context.Context, tracker errors.Tracker, log *logger.Logger) {
	if tracker == nil {
		return
	}

	flushCtx, flushCancel := context.WithTimeout(ctx, 3*time.Second)
	defer flushCancel()

	if err := tracker.Flush(flushCtx); err != nil {
		log.Errorw("Error tracker flush failed", "error", err)
	} else {
		log.Info("✓ Error tracker flushed")
	}
}
