package events

import (
	"context"

	"sentinel/pkg/errors"
	"sentinel/pkg/logger"
)

// Producer is the transport the publisher writes to; *kafka.Producer satisfies it
type Producer interface {
	Publish(ctx context.Context, topic string, key string, event interface{}) error
}

// Publisher publishes catalog events to one topic
type Publisher struct {
	producer Producer
	topic    string
	source   string
	log      *logger.Logger
}

// NewPublisher creates a new event publisher
func NewPublisher(producer Producer, topic, source string, log *logger.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		source:   source,
		log:      log.With("component", "event_publisher", "topic", topic),
	}
}

// PublishCatalogRefreshed publishes a catalog refreshed event
func (p *Publisher) PublishCatalogRefreshed(ctx context.Context, event CatalogRefreshedEvent) error {
	event.Base = NewBaseEvent(TypeCatalogRefreshed, p.source)
	return p.publish(ctx, event.Base, event)
}

// PublishCatalogRefreshFailed publishes a refresh failure event
func (p *Publisher) PublishCatalogRefreshFailed(ctx context.Context, cause error) error {
	event := CatalogRefreshFailedEvent{
		Base:  NewBaseEvent(TypeCatalogRefreshFailed, p.source),
		Error: SanitizeUTF8(cause.Error()),
	}
	return p.publish(ctx, event.Base, event)
}

// PublishCatalogInvalidated publishes an invalidation request
func (p *Publisher) PublishCatalogInvalidated(ctx context.Context, reason string) error {
	event := CatalogInvalidatedEvent{
		Base:   NewBaseEvent(TypeCatalogInvalidated, p.source),
		Reason: reason,
	}
	return p.publish(ctx, event.Base, event)
}

func (p *Publisher) publish(ctx context.Context, base BaseEvent, event interface{}) error {
	if err := p.producer.Publish(ctx, p.topic, base.Type, event); err != nil {
		p.log.Errorw("Failed to publish event",
			"type", base.Type,
			"error", err,
		)
		return errors.Wrap(err, "send to kafka")
	}

	p.log.Debugw("Event published",
		"type", base.Type,
		"id", base.ID,
	)

	return nil
}
