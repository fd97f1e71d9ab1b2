package events

import (
	"context"
	"testing"
	"time"

	"rentpilot/pkg/kafka"
	kafka_config "rentpilot/pkg/kafka/config"
	"rentpilot/pkg/logger"
	"rentpilot/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProducer struct {
	mock.Mock
}

func (m *mockProducer) Publish(ctx context.Context, msg kafka.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockProducer) Close() error {
	return m.Called().Error(0)
}

func TestNewPriceAppliedMessage(t *testing.T) {
	prev := 100.0
	event := model.PriceAppliedEvent{
		TenantID:      "acme",
		PropertyID:    "p1",
		PreviousPrice: &prev,
		NewPrice:      127,
		Reason:        model.ReasonHighSeason,
		AppliedAt:     time.Date(2024, 7, 5, 10, 0, 0, 0, time.UTC),
	}

	msg, err := NewPriceAppliedMessage(event, "pricing", "req-1")
	require.NoError(t, err)

	assert.Equal(t, "acme:p1", msg.Key)
	assert.Equal(t, EventTypePriceApplied, msg.GetEventType())
	assert.Equal(t, "req-1", msg.GetCorrelationID())
	assert.Equal(t, "acme", msg.Headers[kafka.HeaderTenantID])
	assert.Equal(t, "2024-07-05T10:00:00Z", msg.Headers[kafka.HeaderTimestamp])
	assert.NotEmpty(t, msg.GetEventID())

	var decoded model.PriceAppliedEvent
	require.NoError(t, msg.DecodeValue(&decoded))
	assert.Equal(t, event.NewPrice, decoded.NewPrice)
	assert.Equal(t, 100.0, *decoded.PreviousPrice)
}

func TestKafkaPublisher_Publishes(t *testing.T) {
	producer := &mockProducer{}
	producer.On("Publish", mock.Anything, mock.MatchedBy(func(msg kafka.Message) bool {
		_, hasCorrelation := msg.GetHeader(kafka.HeaderCorrelationID)
		return msg.Key == "acme:p1" && !hasCorrelation
	})).Return(nil).Once()
	producer.On("Close").Return(nil).Once()

	p := &kafkaPublisher{producer: producer, source: "pricing"}

	err := p.PublishPriceApplied(context.Background(), model.PriceAppliedEvent{TenantID: "acme", PropertyID: "p1", NewPrice: 90}, "")
	require.NoError(t, err)
	require.NoError(t, p.Close())

	producer.AssertExpectations(t)
}

func TestKafkaPublisher_PropagatesProducerError(t *testing.T) {
	producer := &mockProducer{}
	producer.On("Publish", mock.Anything, mock.Anything).Return(kafka.ErrProducerClosed)

	p := &kafkaPublisher{producer: producer, source: "pricing"}

	err := p.PublishPriceApplied(context.Background(), model.PriceAppliedEvent{TenantID: "acme", PropertyID: "p1"}, "req-1")
	assert.ErrorIs(t, err, kafka.ErrProducerClosed)
}

func TestNewPublisher_DisabledWithoutTopic(t *testing.T) {
	p, err := NewPublisher(&kafka_config.Config{}, "pricing", nil, logger.Discard())
	require.NoError(t, err)
	assert.IsType(t, NoopPublisher{}, p)
	assert.NoError(t, p.PublishPriceApplied(context.Background(), model.PriceAppliedEvent{}, ""))
}
