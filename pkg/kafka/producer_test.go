package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func header(m kafka.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestProducer_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriters(w, nil, "bookings.events", "")

	msg := NewMessage().
		WithKey("Vettaiyan").
		WithValue(map[string]string{"to": "Madurai"}).
		WithEventType("booking.created").
		Build()

	if err := p.Publish(context.Background(), msg); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if len(w.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.messages))
	}
	got := w.messages[0]
	if string(got.Key) != "Vettaiyan" {
		t.Errorf("key = %s", got.Key)
	}
	if header(got, HeaderEventType) != "booking.created" {
		t.Errorf("event type header = %q", header(got, HeaderEventType))
	}
	if header(got, HeaderEventID) == "" {
		t.Error("event id header missing")
	}
}

func TestProducer_RejectsInvalidMessages(t *testing.T) {
	p := NewProducerWithWriters(&fakeWriter{}, nil, "t", "")

	if err := p.Publish(context.Background(), Message{Value: []byte("{}")}); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("expected ErrEmptyKey, got %v", err)
	}
	if err := p.Publish(context.Background(), Message{Key: "k"}); !errors.Is(err, ErrEmptyValue) {
		t.Errorf("expected ErrEmptyValue, got %v", err)
	}
}

func TestProducer_FailedWriteGoesToDLQ(t *testing.T) {
	writeErr := errors.New("broker down")
	main := &fakeWriter{err: writeErr}
	dlq := &fakeWriter{}
	p := NewProducerWithWriters(main, dlq, "bookings.events", "bookings.events.dlq")

	msg := NewMessage().WithKey("Maaran").WithValue("x").Build()
	err := p.Publish(context.Background(), msg)
	if !errors.Is(err, writeErr) {
		t.Fatalf("expected original error, got %v", err)
	}
	if len(dlq.messages) != 1 {
		t.Fatalf("expected 1 DLQ message, got %d", len(dlq.messages))
	}
	if header(dlq.messages[0], HeaderOriginalTopic) != "bookings.events" {
		t.Errorf("original topic header = %q", header(dlq.messages[0], HeaderOriginalTopic))
	}
	if header(dlq.messages[0], HeaderDLQError) != "broker down" {
		t.Errorf("dlq error header = %q", header(dlq.messages[0], HeaderDLQError))
	}
	if _, ok := msg.Headers[HeaderDLQError]; ok {
		t.Error("caller's message headers were mutated")
	}
}

func TestProducer_MiddlewareOrder(t *testing.T) {
	p := NewProducerWithWriters(&fakeWriter{}, nil, "t", "")

	var order []string
	for _, name := range []string{"outer", "inner"} {
		name := name
		p.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
			order = append(order, name)
			return next(ctx, msg)
		})
	}

	if err := p.Publish(context.Background(), NewMessage().WithKey("k").WithValue(1).Build()); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("middleware order = %v", order)
	}
}

func TestProducer_Close(t *testing.T) {
	w := &fakeWriter{}
	p := NewProducerWithWriters(w, nil, "t", "")

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !w.closed {
		t.Error("writer not closed")
	}
	err := p.Publish(context.Background(), NewMessage().WithKey("k").WithValue(1).Build())
	if !errors.Is(err, ErrProducerClosed) {
		t.Errorf("expected ErrProducerClosed, got %v", err)
	}
}

func TestMessageBuilder_EncodingError(t *testing.T) {
	_, err := NewMessage().WithKey("k").WithValue(make(chan int)).BuildE()
	if err == nil {
		t.Error("expected encoding error for channel value")
	}
}
