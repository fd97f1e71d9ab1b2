package kafka_config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DisabledByDefault(t *testing.T) {
	cfg := Load()
	assert.False(t, cfg.Enabled())
	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, "k1:9092, k2:9092")
	t.Setenv(EnvKafkaPriceEventsTopic, "pricing.price_applied")
	t.Setenv(EnvKafkaPriceEventsDLQTopic, "pricing.price_applied.dlq")

	cfg := Load()
	assert.True(t, cfg.Enabled())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Brokers)
	require.NoError(t, cfg.Validate())
}

func TestValidate_Errors(t *testing.T) {
	cfg := Load()
	cfg.PriceEventsTopic = "t"
	cfg.PriceEventsDLQTopic = "t"
	cfg.ProducerCompression = "brotli"
	cfg.ProducerRequireAcks = 2

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PriceEventsDLQTopic must differ")
	assert.Contains(t, err.Error(), "ProducerCompression must be one of")
	assert.Contains(t, err.Error(), "ProducerRequireAcks must be -1, 0, or 1")
}
