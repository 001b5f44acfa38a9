package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sentinel/pkg/errors"
	"sentinel/pkg/logger"
)

type recordedMessage struct {
	topic string
	key   string
	event interface{}
}

type mockProducer struct {
	messages []recordedMessage
	err      error
}

func (m *mockProducer) Publish(_ context.Context, topic, key string, event interface{}) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, recordedMessage{topic: topic, key: key, event: event})
	return nil
}

func newTestPublisher(p Producer) *Publisher {
	return NewPublisher(p, "catalog.events", "sentinel", logger.New(zap.NewNop()))
}

func TestPublishCatalogRefreshed(t *testing.T) {
	producer := &mockProducer{}
	pub := newTestPublisher(producer)

	err := pub.PublishCatalogRefreshed(context.Background(), CatalogRefreshedEvent{SnapshotVersion: 3, Count: 12})
	require.NoError(t, err)
	require.Len(t, producer.messages, 1)

	msg := producer.messages[0]
	assert.Equal(t, "catalog.events", msg.topic)
	assert.Equal(t, TypeCatalogRefreshed, msg.key)

	event := msg.event.(CatalogRefreshedEvent)
	assert.Equal(t, 12, event.Count)
	assert.Equal(t, "sentinel", event.Base.Source)
	assert.NotEmpty(t, event.Base.ID)
}

func TestPublishCatalogRefreshFailedSanitizesError(t *testing.T) {
	producer := &mockProducer{}
	pub := newTestPublisher(producer)

	require.NoError(t, pub.PublishCatalogRefreshFailed(context.Background(), errors.New("bad\xff bytes")))

	data, err := json.Marshal(producer.messages[0].event)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"error":"bad bytes"`)
}

func TestPublishWrapsProducerError(t *testing.T) {
	producer := &mockProducer{err: errors.ErrUnavailable}
	pub := newTestPublisher(producer)

	err := pub.PublishCatalogInvalidated(context.Background(), "manual")
	assert.ErrorIs(t, err, errors.ErrUnavailable)
}
