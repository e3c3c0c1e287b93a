package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnv_Defaults(t *testing.T) {
	cfg := LoadEnv()

	assert.Equal(t, "omnipos_catalog", cfg.Postgres.DBName)
	assert.Equal(t, 5, cfg.Postgres.TxMaxRetries)
	assert.Equal(t, "stock.events", cfg.Kafka.Topic)
	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.Basket.IdempotentCreate)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("POSTGRES_TX_MAX_RETRIES", "9")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_LIST_TTL_SECONDS", "120")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("BASKET_IDEMPOTENT_CREATE", "1")
	t.Setenv("GRPC_PORT", "not-an-int-but-a-string-is-fine")
	t.Setenv("POSTGRES_MAX_OPEN_CONNS", "many")

	cfg := LoadEnv()

	assert.Equal(t, 9, cfg.Postgres.TxMaxRetries)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 120, cfg.Redis.ListTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Basket.IdempotentCreate)
	assert.Equal(t, "not-an-int-but-a-string-is-fine", cfg.Server.GRPCPort)
	assert.Equal(t, 10, cfg.Postgres.MaxOpenConns)
}
