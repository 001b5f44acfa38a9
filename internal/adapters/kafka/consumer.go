package kafka

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"

	"sentinel/pkg/logger"
	"sentinel/pkg/reconnect"
)

// Consumer handles Kafka message consumption
type Consumer struct {
	reader  *kafka.Reader
	backoff *reconnect.Manager
	log     *logger.Logger
}

// ConsumerConfig holds consumer configuration
type ConsumerConfig struct {
	Brokers  []string
	GroupID  string
	Topic    string
	MinBytes int
	MaxBytes int
}

// NewConsumer creates a new Kafka consumer
func NewConsumer(cfg ConsumerConfig) *Consumer {
	if cfg.MinBytes == 0 {
		cfg.MinBytes = 1
	}
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = 1e6 // 1MB
	}

	log := logger.Get().With("component", "kafka_consumer", "topic", cfg.Topic)

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Topic:       cfg.Topic,
		MinBytes:    cfg.MinBytes,
		MaxBytes:    cfg.MaxBytes,
		StartOffset: kafka.LastOffset,
	})

	log.Infow("Kafka consumer created",
		"brokers", cfg.Brokers,
		"group_id", cfg.GroupID,
	)

	return &Consumer{
		reader:  reader,
		backoff: reconnect.NewManager(reconnect.Config{MaxBackoff: 30 * time.Second}, log),
		log:     log,
	}
}

// MessageHandler processes one message
type MessageHandler func(ctx context.Context, msg kafka.Message) error

// Consume reads messages until ctx is cancelled. Handler failures are logged and skipped;
// read failures back off before the next read.
func (c *Consumer) Consume(ctx context.Context, handler MessageHandler) error {
	c.log.Info("Starting consumer...")

	for {
		msg, err := c.readMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.log.Info("Consumer stopped")
				return ctx.Err()
			}
			c.log.Errorw("Failed to read message", "error", err)
			c.backoff.RecordFailure()
			if err := c.backoff.Wait(ctx); err != nil {
				c.log.Info("Consumer stopped")
				return err
			}
			continue
		}
		c.backoff.RecordSuccess()

		c.log.Debugw("Received message", "key", string(msg.Key))

		if err := handler(ctx, msg); err != nil {
			c.log.Errorw("Failed to handle message", "key", string(msg.Key), "error", err)
		}
	}
}

// readMessage checks for shutdown before blocking on the reader
func (c *Consumer) readMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	default:
	}

	msg, err := c.reader.ReadMessage(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return kafka.Message{}, ctx.Err()
		}
		return kafka.Message{}, err
	}

	return msg, nil
}

// Close closes the consumer
func (c *Consumer) Close() error {
	return c.reader.Close()
}
