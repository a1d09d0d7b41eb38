// Package events publishes catalogue and order change notifications so other
// instances and consumers can drop views that depend on the changed data.
package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Event types emitted on mutations.
const (
	TypeProductCreated   = "product.created"
	TypeProductRestocked = "product.restocked"
	TypeProductDeleted   = "product.deleted"
	TypeOrderCreated     = "order.created"
)

// Event is the published payload, keyed on the wire by EntityID.
type Event struct {
	Type     string    `json:"type"`
	EntityID string    `json:"entity_id"`
	At       time.Time `json:"at"`
}

// Publisher emits change events. Publishing is best-effort: failures are
// logged and never surfaced to the caller, since a missed invalidation only
// delays a view refresh.
type Publisher interface {
	Publish(ctx context.Context, event Event)
	Close() error
}

// kafkaPublisher writes events to a single Kafka topic.
type kafkaPublisher struct {
	writer *kafka.Writer
	logger zerolog.Logger
}

// NewKafkaPublisher creates a publisher over the comma-separated broker list.
// An empty list yields a no-op publisher.
func NewKafkaPublisher(brokersCSV, topic string, logger zerolog.Logger) Publisher {
	var brokers []string
	for _, b := range strings.Split(brokersCSV, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	if len(brokers) == 0 {
		logger.Info().Msg("no kafka brokers configured, event publishing disabled")
		return NewNopPublisher()
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info().
		Strs("brokers", brokers).
		Str("topic", topic).
		Msg("kafka event publisher initialised")

	return &kafkaPublisher{
		writer: writer,
		logger: logger.With().Str("component", "event-publisher").Logger(),
	}
}

// Publish marshals and writes one event.
func (p *kafkaPublisher) Publish(ctx context.Context, event Event) {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Error().Err(err).Str("type", event.Type).Msg("failed to marshal event")
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EntityID),
		Value: data,
		Time:  event.At,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Warn().
			Err(err).
			Str("type", event.Type).
			Str("entity_id", event.EntityID).
			Msg("failed to publish event")
		return
	}

	p.logger.Debug().
		Str("type", event.Type).
		Str("entity_id", event.EntityID).
		Msg("event published")
}

// Close flushes and closes the underlying writer.
func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

// nopPublisher drops all events.
type nopPublisher struct{}

// NewNopPublisher returns a publisher that discards everything.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, Event) {}
func (nopPublisher) Close() error                   { return nil }
