package kafka_middleware

import (
	"context"
	"sync/atomic"
	"time"

	"srimurugan/pkg/kafka"
)

// PublishMetrics counts booking event publishes. Safe for concurrent use.
type PublishMetrics struct {
	published     atomic.Int64
	failed        atomic.Int64
	totalDuration atomic.Int64
}

type MetricsSnapshot struct {
	Published       int64         `json:"published"`
	Failed          int64         `json:"failed"`
	AverageDuration time.Duration `json:"average_duration"`
}

func NewPublishMetrics() *PublishMetrics {
	return &PublishMetrics{}
}

// Middleware records the outcome and duration of every publish.
func (m *PublishMetrics) Middleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)
		m.totalDuration.Add(int64(time.Since(start)))
		if err != nil {
			m.failed.Add(1)
			return err
		}
		m.published.Add(1)
		return nil
	}
}

func (m *PublishMetrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Published: m.published.Load(),
		Failed:    m.failed.Load(),
	}
	if total := s.Published + s.Failed; total > 0 {
		s.AverageDuration = time.Duration(m.totalDuration.Load() / total)
	}
	return s
}
