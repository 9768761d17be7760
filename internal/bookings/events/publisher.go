package events

import (
	"context"
	"fmt"
	"time"

	"srimurugan/pkg/kafka"
	"srimurugan/pkg/logger"
	"srimurugan/pkg/middleware"
	"srimurugan/pkg/model"
)

const (
	BookingCreated   = "booking.created"
	BookingUpdated   = "booking.updated"
	BookingCancelled = "booking.cancelled"

	SchemaVersion = "1"
)

// BookingEvent is the payload of every booking message.
type BookingEvent struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Booking    *model.Booking `json:"booking"`
}

type Publisher interface {
	Publish(ctx context.Context, eventType string, booking *model.Booking) error
}

// MessagePublisher is satisfied by *kafka.Producer.
type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type kafkaPublisher struct {
	producer MessagePublisher
	source   string
	log      *logger.Logger
	now      func() time.Time
}

// NewKafkaPublisher keys every message by bus name so one bus's events stay
// on one partition in order.
func NewKafkaPublisher(producer MessagePublisher, source string, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		source:   source,
		log:      log,
		now:      time.Now,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, eventType string, booking *model.Booking) error {
	builder := kafka.NewMessage().
		WithKey(booking.BusName).
		WithValue(BookingEvent{Type: eventType, OccurredAt: p.now().UTC(), Booking: booking}).
		WithEventID("").
		WithEventType(eventType).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source)
	if requestID := middleware.RequestIDFrom(ctx); requestID != "" {
		builder = builder.WithCorrelationID(requestID)
	}

	msg, err := builder.BuildE()
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", eventType, err)
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event for booking %s: %w", eventType, booking.ID, err)
	}
	return nil
}

type noopPublisher struct{}

// NewNoopPublisher is used when Kafka is disabled.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, string, *model.Booking) error {
	return nil
}
