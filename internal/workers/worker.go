package workers

import (
	"context"
	"sync"
	"time"
)

// Worker is one periodic job. The scheduler runs it once on start, then every Interval.
type Worker interface {
	Name() string
	Run(ctx context.Context) error
	Interval() time.Duration
	Enabled() bool
}

// TrackedWorker keeps per-run outcomes the scheduler reports into
type TrackedWorker interface {
	Worker
	Health() Health
	Record(err error, duration time.Duration)
}

// Health summarizes the runs of one worker
type Health struct {
	LastRun     time.Time
	LastSuccess time.Time
	LastError   error
	Runs        int64
	Failures    int64
	AvgDuration time.Duration
}

// BaseWorker carries the fixed schedule of a worker and its run history.
// Embed it and implement Run.
type BaseWorker struct {
	name     string
	interval time.Duration
	enabled  bool

	mu     sync.RWMutex
	health Health
	total  time.Duration
}

func NewBaseWorker(name string, interval time.Duration, enabled bool) *BaseWorker {
	return &BaseWorker{name: name, interval: interval, enabled: enabled}
}

func (w *BaseWorker) Name() string            { return w.name }
func (w *BaseWorker) Interval() time.Duration { return w.interval }
func (w *BaseWorker) Enabled() bool           { return w.enabled }

// Health returns a copy of the run history
func (w *BaseWorker) Health() Health {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.health
}

// Record adds one run; a nil err counts as a success and clears LastError
func (w *BaseWorker) Record(err error, duration time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	w.health.LastRun = now
	w.health.LastError = err
	w.health.Runs++
	if err != nil {
		w.health.Failures++
	} else {
		w.health.LastSuccess = now
	}

	w.total += duration
	w.health.AvgDuration = w.total / time.Duration(w.health.Runs)
}
