package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sentinel/internal/workers"
	"sentinel/pkg/errors"
	"sentinel/pkg/logger"
)

type mockRefresher struct {
	refreshFunc func(ctx context.Context) error
	calls       int
}

func (m *mockRefresher) Refresh(ctx context.Context) error {
	m.calls++
	if m.refreshFunc != nil {
		return m.refreshFunc(ctx)
	}
	return nil
}

func TestRefreshWorker_Run(t *testing.T) {
	refresher := &mockRefresher{}
	w := NewRefreshWorker(refresher, time.Minute, true)

	require.NoError(t, w.Run(context.Background()))
	assert.Equal(t, 1, refresher.calls)
	assert.Equal(t, "catalog_refresh", w.Name())
	assert.Equal(t, time.Minute, w.Interval())
	assert.True(t, w.Enabled())
}

func TestRefreshWorker_RunPropagatesFailure(t *testing.T) {
	refresher := &mockRefresher{refreshFunc: func(context.Context) error {
		return errors.Wrap(errors.ErrFetchFailed, "connection refused")
	}}
	w := NewRefreshWorker(refresher, time.Minute, true)

	err := w.Run(context.Background())
	assert.ErrorIs(t, err, errors.ErrFetchFailed)
}

func TestRefreshWorker_UnderScheduler(t *testing.T) {
	done := make(chan struct{}, 1)
	refresher := &mockRefresher{refreshFunc: func(context.Context) error {
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	}}

	scheduler := workers.NewScheduler(logger.New(zap.NewNop()))
	w := NewRefreshWorker(refresher, time.Hour, true)
	scheduler.RegisterWorker(w)

	require.NoError(t, scheduler.Start(context.Background()))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresh worker did not run on start")
	}
	require.NoError(t, scheduler.Stop())

	assert.Equal(t, int64(1), w.Health().Runs)
	assert.NoError(t, w.Health().LastError)
}
