package consumers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	kafkaadapter "sentinel/internal/adapters/kafka"
	"sentinel/internal/events"
	"sentinel/pkg/errors"
	"sentinel/pkg/logger"
)

// replaySource hands a fixed list of messages to the handler, then waits for cancellation
type replaySource struct {
	messages []kafka.Message
	errs     []error
	closed   bool
}

func (s *replaySource) Consume(ctx context.Context, handler kafkaadapter.MessageHandler) error {
	for _, msg := range s.messages {
		s.errs = append(s.errs, handler(ctx, msg))
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *replaySource) Close() error {
	s.closed = true
	return nil
}

type countingRefresher struct {
	calls int
	err   error
}

func (r *countingRefresher) Refresh(context.Context) error {
	r.calls++
	return r.err
}

func message(t *testing.T, event interface{}) kafka.Message {
	t.Helper()
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return kafka.Message{Value: data}
}

func TestCatalogInvalidationConsumer_RefreshesOnInvalidation(t *testing.T) {
	source := &replaySource{messages: []kafka.Message{
		message(t, events.CatalogInvalidatedEvent{
			Base:   events.NewBaseEvent(events.TypeCatalogInvalidated, "loader"),
			Reason: "nightly import",
		}),
	}}
	refresher := &countingRefresher{}

	c := NewCatalogInvalidationConsumer(source, refresher, "catalog.invalidations", logger.New(zap.NewNop()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, c.Start(ctx))
	assert.Equal(t, 1, refresher.calls)
	require.Len(t, source.errs, 1)
	assert.NoError(t, source.errs[0])
}

func TestCatalogInvalidationConsumer_SkipsOtherEvents(t *testing.T) {
	source := &replaySource{messages: []kafka.Message{
		message(t, events.CatalogRefreshedEvent{
			Base:  events.NewBaseEvent(events.TypeCatalogRefreshed, "sentinel"),
			Count: 3,
		}),
	}}
	refresher := &countingRefresher{}

	c := NewCatalogInvalidationConsumer(source, refresher, "catalog.invalidations", logger.New(zap.NewNop()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, c.Start(ctx))
	assert.Equal(t, 0, refresher.calls)
	assert.NoError(t, source.errs[0])
}

func TestCatalogInvalidationConsumer_MalformedPayload(t *testing.T) {
	source := &replaySource{messages: []kafka.Message{{Value: []byte("not json")}}}
	refresher := &countingRefresher{}

	c := NewCatalogInvalidationConsumer(source, refresher, "catalog.invalidations", logger.New(zap.NewNop()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, c.Start(ctx))
	assert.Equal(t, 0, refresher.calls)
	assert.ErrorIs(t, source.errs[0], errors.ErrInvalidInput)
}

func TestCatalogInvalidationConsumer_RefreshFailure(t *testing.T) {
	source := &replaySource{messages: []kafka.Message{
		message(t, events.CatalogInvalidatedEvent{Base: events.NewBaseEvent(events.TypeCatalogInvalidated, "loader")}),
	}}
	refresher := &countingRefresher{err: errors.ErrFetchFailed}

	c := NewCatalogInvalidationConsumer(source, refresher, "catalog.invalidations", logger.New(zap.NewNop()))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, c.Start(ctx))
	assert.ErrorIs(t, source.errs[0], errors.ErrFetchFailed)
}

func TestCatalogInvalidationConsumer_Close(t *testing.T) {
	source := &replaySource{}
	c := NewCatalogInvalidationConsumer(source, &countingRefresher{}, "t", logger.New(zap.NewNop()))

	require.NoError(t, c.Close())
	assert.True(t, source.closed)
}
