package kafka_middleware

import (
	"context"
	"sync/atomic"
	"time"

	"rentpilot/pkg/kafka"
)

// Metrics holds producer counters. Safe for concurrent use.
type Metrics struct {
	published    atomic.Int64
	failed       atomic.Int64
	durationNano atomic.Int64
}

type MetricsSnapshot struct {
	Published       int64         `json:"published"`
	Failed          int64         `json:"failed"`
	AvgPublishDelay time.Duration `json:"avg_publish_delay_ns"`
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	published := m.published.Load()
	s := MetricsSnapshot{
		Published: published,
		Failed:    m.failed.Load(),
	}
	if published > 0 {
		s.AvgPublishDelay = time.Duration(m.durationNano.Load() / published)
	}
	return s
}

// MetricsProducerMiddleware counts publish outcomes into m.
func MetricsProducerMiddleware(m *Metrics) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)
		if err != nil {
			m.failed.Add(1)
			return err
		}
		m.published.Add(1)
		m.durationNano.Add(time.Since(start).Nanoseconds())
		return nil
	}
}
