package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// WatermillPublisher sends events as JSON messages through any watermill publisher
type WatermillPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
}

// NewPublisher picks Kafka when brokers are configured. Otherwise events go to
// an in-process channel and are only written to the log.
func NewPublisher(brokers []string, logger *slog.Logger) (*WatermillPublisher, error) {
	if len(brokers) == 0 {
		logger.Warn("KAFKA_BROKERS not set, events stay in process and are only logged")
		pub, sub := NewInProcessPublisher(logger)
		if err := LogEvents(context.Background(), sub, logger, Topics...); err != nil {
			pub.Close()
			return nil, err
		}
		return pub, nil
	}
	return NewKafkaPublisher(brokers, logger)
}

func NewKafkaPublisher(brokers []string, logger *slog.Logger) (*WatermillPublisher, error) {
	publisher, err := kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka publisher: %w", err)
	}

	logger.Info("Kafka event publisher ready", "brokers", brokers)
	return &WatermillPublisher{publisher: publisher, logger: logger}, nil
}

// NewInProcessPublisher returns a publisher backed by a go channel pub/sub.
// The returned subscriber sees every published event.
func NewInProcessPublisher(logger *slog.Logger) (*WatermillPublisher, message.Subscriber) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, watermill.NewSlogLogger(logger))
	return &WatermillPublisher{publisher: pubSub, logger: logger}, pubSub
}

// LogEvents consumes topics from sub and logs each event. The consumers stop
// when ctx is cancelled or the subscriber is closed.
func LogEvents(ctx context.Context, sub message.Subscriber, logger *slog.Logger, topics ...string) error {
	for _, topic := range topics {
		messages, err := sub.Subscribe(ctx, topic)
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
		}
		go func() {
			for msg := range messages {
				logger.Info("Event received", "topic", topic, "event_id", msg.UUID,
					"source", msg.Metadata.Get("source"), "payload", string(msg.Payload))
				msg.Ack()
			}
		}()
	}
	return nil
}

func (p *WatermillPublisher) Publish(ctx context.Context, event *Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.Metadata.Set("event_type", event.Type)
	msg.Metadata.Set("source", event.Source)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(event.Type, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	p.logger.Debug("Event published", "event_id", event.ID, "type", event.Type)
	return nil
}

func (p *WatermillPublisher) Close() error {
	return p.publisher.Close()
}

// PublishSafe publishes and logs failures. Events are best-effort and never
// fail the operation that produced them.
func PublishSafe(ctx context.Context, publisher EventPublisher, logger *slog.Logger, event *Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("Failed to publish event", "type", event.Type, "error", err)
	}
}
