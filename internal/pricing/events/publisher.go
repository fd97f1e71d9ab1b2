// Package events publishes pricing domain events to Kafka.
package events

import (
	"context"
	"fmt"

	"rentpilot/pkg/kafka"
	kafka_config "rentpilot/pkg/kafka/config"
	kafka_middleware "rentpilot/pkg/kafka/middleware"
	"rentpilot/pkg/logger"
	"rentpilot/pkg/model"
)

const (
	EventTypePriceApplied = "pricing.price_applied"
	SchemaVersion         = "1"
)

type PriceEventPublisher interface {
	PublishPriceApplied(ctx context.Context, event model.PriceAppliedEvent, correlationID string) error
	Close() error
}

type publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	producer publisher
	source   string
}

// NewPublisher returns a Kafka-backed publisher, or a no-op one when no
// price events topic is configured.
func NewPublisher(cfg *kafka_config.Config, source string, metrics *kafka_middleware.Metrics, log *logger.Logger) (PriceEventPublisher, error) {
	if !cfg.Enabled() {
		return NoopPublisher{}, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	producer, err := kafka.NewProducer(cfg, cfg.PriceEventsTopic, cfg.PriceEventsDLQTopic, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create price events producer: %w", err)
	}

	if cfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(log))
		if metrics != nil {
			producer.Use(kafka_middleware.MetricsProducerMiddleware(metrics))
		}
	}

	return &kafkaPublisher{producer: producer, source: source}, nil
}

func (p *kafkaPublisher) PublishPriceApplied(ctx context.Context, event model.PriceAppliedEvent, correlationID string) error {
	msg, err := NewPriceAppliedMessage(event, p.source, correlationID)
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, msg)
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

// NewPriceAppliedMessage keys the message by tenant and property so updates
// to one property stay ordered on a single partition.
func NewPriceAppliedMessage(event model.PriceAppliedEvent, source, correlationID string) (kafka.Message, error) {
	msg, err := kafka.NewMessage().
		WithKey(event.TenantID+":"+event.PropertyID).
		WithValue(event).
		WithEventID("").
		WithEventType(EventTypePriceApplied).
		WithSchemaVersion(SchemaVersion).
		WithSource(source).
		WithTenantID(event.TenantID).
		WithCorrelationID(correlationID).
		WithTimestamp(event.AppliedAt).
		Build()
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to build price applied message: %w", err)
	}
	return msg, nil
}

type NoopPublisher struct{}

func (NoopPublisher) PublishPriceApplied(context.Context, model.PriceAppliedEvent, string) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
