package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CATALOG_SOURCE", CatalogPostgres)
	t.Setenv("PAYMENT_DELAY_MS", "250")
	t.Setenv("FLOW_TTL_MINUTES", "5")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("STATUS_URL", "http://detector.local/status")

	cfg := Load()
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, CatalogPostgres, cfg.CatalogSource)
	assert.Equal(t, 250*time.Millisecond, cfg.PaymentDelay)
	assert.Equal(t, 5*time.Minute, cfg.FlowTTL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "http://detector.local/status", cfg.StatusURL)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("STATUS_SLOT_COUNT", "zero")
	t.Setenv("PAYMENT_DELAY_MS", "2s")
	t.Setenv("FLOW_TTL_MINUTES", "thirty")
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	cfg := Load()
	assert.Equal(t, 9, cfg.StatusSlotCount)
	assert.Equal(t, 2*time.Second, cfg.PaymentDelay)
	assert.Equal(t, 30*time.Minute, cfg.FlowTTL)
	assert.Equal(t, 10, cfg.DBMaxOpenConns)

	t.Setenv("STATUS_SLOT_COUNT", "-4")
	t.Setenv("PAYMENT_DELAY_MS", "0")
	t.Setenv("FLOW_TTL_MINUTES", "-1")
	cfg = Load()
	assert.Equal(t, 9, cfg.StatusSlotCount)
	assert.Equal(t, 2*time.Second, cfg.PaymentDelay)
	assert.Equal(t, 30*time.Minute, cfg.FlowTTL)

	t.Setenv("STATUS_SLOT_COUNT", "12")
	t.Setenv("DB_CONN_MAX_IDLE_MINUTES", "7")
	cfg = Load()
	assert.Equal(t, 12, cfg.StatusSlotCount)
	assert.Equal(t, 7*time.Minute, cfg.DBConnMaxIdle)
}

func TestGetEnv(t *testing.T) {
	t.Setenv("PARKING_TEST_KEY", "value")
	assert.Equal(t, "value", getEnv("PARKING_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", getEnv("PARKING_TEST_KEY_UNSET_7f3a", "fallback"))
}
