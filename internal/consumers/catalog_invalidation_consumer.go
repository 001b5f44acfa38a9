// Package consumers holds the Kafka consumers that feed the dashboard.
package consumers

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	kafkaadapter "sentinel/internal/adapters/kafka"
	"sentinel/internal/events"
	"sentinel/internal/metrics"
	"sentinel/pkg/errors"
	"sentinel/pkg/logger"
)

// MessageSource delivers raw messages to a handler until ctx is done
type MessageSource interface {
	Consume(ctx context.Context, handler kafkaadapter.MessageHandler) error
	Close() error
}

// Refresher reloads the company catalog
type Refresher interface {
	Refresh(ctx context.Context) error
}

// CatalogInvalidationConsumer reloads the catalog whenever a loader announces new records
type CatalogInvalidationConsumer struct {
	source  MessageSource
	catalog Refresher
	topic   string
	log     *logger.Logger
}

// NewCatalogInvalidationConsumer creates a new invalidation consumer
func NewCatalogInvalidationConsumer(source MessageSource, catalog Refresher, topic string, log *logger.Logger) *CatalogInvalidationConsumer {
	return &CatalogInvalidationConsumer{
		source:  source,
		catalog: catalog,
		topic:   topic,
		log:     log.With("component", "catalog_invalidation_consumer"),
	}
}

// Start consumes invalidations until ctx is cancelled
func (c *CatalogInvalidationConsumer) Start(ctx context.Context) error {
	c.log.Infow("Subscribed to catalog invalidations", "topic", c.topic)

	err := c.source.Consume(ctx, c.handleMessage)
	if ctx.Err() != nil {
		c.log.Info("Catalog invalidation consumer stopped")
		return nil
	}
	return err
}

func (c *CatalogInvalidationConsumer) handleMessage(ctx context.Context, msg kafka.Message) error {
	err := c.route(ctx, msg.Value)
	metrics.RecordKafkaMessage(c.topic, "consumed", err)
	return err
}

// route dispatches on the event type; other event types on the topic are skipped
func (c *CatalogInvalidationConsumer) route(ctx context.Context, data []byte) error {
	var envelope struct {
		Base events.BaseEvent `json:"base"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, "malformed event payload")
	}

	if envelope.Base.Type != events.TypeCatalogInvalidated {
		c.log.Debugw("Skipping event", "type", envelope.Base.Type)
		return nil
	}

	var event events.CatalogInvalidatedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, "malformed invalidation event")
	}

	c.log.Infow("Catalog invalidated, refreshing",
		"event_id", event.Base.ID,
		"source", event.Base.Source,
		"reason", event.Reason,
	)

	if err := c.catalog.Refresh(ctx); err != nil {
		return errors.Wrap(err, "refresh after invalidation")
	}
	return nil
}

// Close closes the underlying reader
func (c *CatalogInvalidationConsumer) Close() error {
	return c.source.Close()
}

var _ MessageSource = (*kafkaadapter.Consumer)(nil)
