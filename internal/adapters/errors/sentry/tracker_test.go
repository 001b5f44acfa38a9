package sentry

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel/pkg/errors"
)

type recordingTransport struct {
	mu     sync.Mutex
	events []*sentry.Event
}

func (r *recordingTransport) Configure(sentry.ClientOptions) {}

func (r *recordingTransport) SendEvent(event *sentry.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingTransport) Flush(time.Duration) bool { return true }

func (r *recordingTransport) Close() {}

func newTestTracker(t *testing.T) (*Tracker, *recordingTransport) {
	t.Helper()
	transport := &recordingTransport{}
	tracker, err := New(Options{
		DSN:         "https://public@sentry.example.com/1",
		Environment: "test",
		Transport:   transport,
	})
	require.NoError(t, err)
	return tracker, transport
}

func TestCaptureErrorCarriesTags(t *testing.T) {
	tracker, transport := newTestTracker(t)

	err := tracker.CaptureError(context.Background(), errors.ErrFetchFailed, map[string]string{
		"operation":  "refresh",
		"session_id": "abc",
	})
	require.NoError(t, err)

	require.Len(t, transport.events, 1)
	event := transport.events[0]
	assert.Equal(t, "refresh", event.Tags["operation"])
	assert.Equal(t, "abc", event.User.ID)
	assert.Equal(t, "test", event.Environment)
}

func TestCaptureMessageLevel(t *testing.T) {
	tracker, transport := newTestTracker(t)

	require.NoError(t, tracker.CaptureMessage(context.Background(), "catalog empty", errors.LevelWarning, nil))

	require.Len(t, transport.events, 1)
	assert.Equal(t, "catalog empty", transport.events[0].Message)
	assert.Equal(t, sentry.LevelWarning, transport.events[0].Level)
}

func TestBreadcrumbsAttachToLaterErrors(t *testing.T) {
	tracker, transport := newTestTracker(t)

	tracker.AddBreadcrumb(context.Background(), "select_company", "dashboard", errors.LevelInfo, map[string]interface{}{"company_id": 7})
	require.NoError(t, tracker.CaptureError(context.Background(), errors.ErrNotFound, nil))

	require.Len(t, transport.events, 1)
	require.Len(t, transport.events[0].Breadcrumbs, 1)
	assert.Equal(t, "select_company", transport.events[0].Breadcrumbs[0].Message)
}

func TestFlush(t *testing.T) {
	tracker, _ := newTestTracker(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, tracker.Flush(ctx))
}
