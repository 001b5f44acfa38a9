package bootstrap

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	errnoop "sentinel/internal/adapters/errors/noop"
	"sentinel/pkg/errors"
	"sentinel/pkg/logger"
)

// recorder collects the order in which components were stopped
type recorder struct {
	mu    sync.Mutex
	steps []string
}

func (r *recorder) add(step string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, step)
}

type fakeServer struct{ r *recorder }

func (f fakeServer) Shutdown(context.Context) error {
	f.r.add("http")
	return nil
}

type fakeScheduler struct{ r *recorder }

func (f fakeScheduler) Stop() error {
	f.r.add("workers")
	return nil
}

type fakeCloser struct {
	name string
	r    *recorder
	err  error
}

func (f fakeCloser) Close() error {
	f.r.add(f.name)
	return f.err
}

func TestLifecycleShutdownOrder(t *testing.T) {
	r := &recorder{}
	l := NewLifecycle()

	l.Shutdown(ShutdownTargets{
		WG:              &sync.WaitGroup{},
		HTTPServer:      fakeServer{r},
		WorkerScheduler: fakeScheduler{r},
		Consumers:       []NamedCloser{{Name: "invalidation", Closer: fakeCloser{name: "consumer", r: r}}},
		KafkaProducer:   fakeCloser{name: "producer", r: r},
		Databases: []NamedCloser{
			{Name: "postgres", Closer: fakeCloser{name: "postgres", r: r}},
			{Name: "redis", Closer: fakeCloser{name: "redis", r: r}},
		},
		ErrorTracker: errnoop.New(),
	}, logger.New(zap.NewNop()))

	assert.Equal(t, []string{"http", "workers", "consumer", "producer", "postgres", "redis"}, r.steps)
}

func TestLifecycleShutdownSkipsMissingComponents(t *testing.T) {
	r := &recorder{}
	l := NewLifecycle()

	assert.NotPanics(t, func() {
		l.Shutdown(ShutdownTargets{
			Databases: []NamedCloser{{Name: "postgres", Closer: fakeCloser{name: "postgres", r: r}}},
		}, logger.New(zap.NewNop()))
	})
	assert.Equal(t, []string{"postgres"}, r.steps)
}

func TestLifecycleShutdownContinuesAfterCloseErrors(t *testing.T) {
	r := &recorder{}
	l := NewLifecycle()

	l.Shutdown(ShutdownTargets{
		Databases: []NamedCloser{
			{Name: "postgres", Closer: fakeCloser{name: "postgres", r: r, err: errors.ErrUnavailable}},
			{Name: "redis", Closer: fakeCloser{name: "redis", r: r}},
		},
	}, logger.New(zap.NewNop()))

	assert.Equal(t, []string{"postgres", "redis"}, r.steps)
}

func TestLifecycleWaitForGoroutinesTimesOut(t *testing.T) {
	l := NewLifecycle()
	l.drainTimeout = 10 * time.Millisecond

	var wg sync.WaitGroup
	wg.Add(1)
	release := make(chan struct{})
	go func() {
		<-release
		wg.Done()
	}()

	start := time.Now()
	l.Shutdown(ShutdownTargets{WG: &wg}, logger.New(zap.NewNop()))
	assert.Less(t, time.Since(start), time.Second)

	close(release)
}
