package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"srimurugan/pkg/calendar"
	"srimurugan/pkg/kafka"
	"srimurugan/pkg/logger"
	"srimurugan/pkg/middleware"
	"srimurugan/pkg/model"
)

type recordingProducer struct {
	messages []kafka.Message
	err      error
}

func (p *recordingProducer) Publish(_ context.Context, msg kafka.Message) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, msg)
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	producer := &recordingProducer{}
	pub := NewKafkaPublisher(producer, "bookings-service", logger.Nop())

	booking := &model.Booking{
		ID:           "665f1c2e8b3e4a0012345678",
		BusName:      "Dheeran",
		BookingDate:  calendar.MustNew(2024, time.June, 10),
		NumberOfDays: 2,
		To:           "Kodaikanal",
	}
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")

	if err := pub.Publish(ctx, BookingCreated, booking); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(producer.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(producer.messages))
	}

	msg := producer.messages[0]
	if msg.Key != "Dheeran" {
		t.Errorf("Key = %q, want Dheeran", msg.Key)
	}
	if msg.GetEventType() != BookingCreated {
		t.Errorf("event type = %q", msg.GetEventType())
	}
	if msg.GetCorrelationID() != "req-42" {
		t.Errorf("correlation id = %q", msg.GetCorrelationID())
	}
	if msg.GetEventID() == "" {
		t.Error("expected generated event id")
	}
	if msg.Headers[kafka.HeaderSource] != "bookings-service" {
		t.Errorf("source = %q", msg.Headers[kafka.HeaderSource])
	}

	var event BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if event.Type != BookingCreated || event.Booking.ID != booking.ID {
		t.Errorf("unexpected payload %+v", event)
	}
	if event.Booking.BookingDate != booking.BookingDate {
		t.Errorf("booking date = %v", event.Booking.BookingDate)
	}
}

func TestKafkaPublisher_NoCorrelationWithoutRequest(t *testing.T) {
	producer := &recordingProducer{}
	pub := NewKafkaPublisher(producer, "bookings-service", logger.Nop())

	if err := pub.Publish(context.Background(), BookingCancelled, &model.Booking{BusName: "Maaran"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := producer.messages[0].Headers[kafka.HeaderCorrelationID]; ok {
		t.Error("expected no correlation header")
	}
}

func TestKafkaPublisher_WrapsProducerError(t *testing.T) {
	sentinel := errors.New("broker down")
	pub := NewKafkaPublisher(&recordingProducer{err: sentinel}, "bookings-service", logger.Nop())

	err := pub.Publish(context.Background(), BookingUpdated, &model.Booking{BusName: "Veeran"})
	if !errors.Is(err, sentinel) {
		t.Errorf("expected wrapped broker error, got %v", err)
	}
}

func TestNoopPublisher(t *testing.T) {
	if err := NewNoopPublisher().Publish(context.Background(), BookingCreated, &model.Booking{}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
