package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("KAFKA_TOPIC", "")
	t.Setenv("MENU_CACHE_TTL", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("ANALYTICS_HTTP_ADDR", "")
	t.Setenv("STATS_TTL", "")

	cfg := Load()

	assert.Equal(t, ":8081", cfg.HTTPAddr)
	assert.Equal(t, ":8083", cfg.AnalyticsAddr)
	assert.Equal(t, 30*24*time.Hour, cfg.StatsTTL)
	assert.Equal(t, "dining-events", cfg.KafkaTopic)
	assert.Equal(t, 5*time.Minute, cfg.MenuCacheTTL)
	assert.Equal(t, 5*time.Minute, cfg.OrderCancelWindow)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("MENU_CACHE_TTL", "30s")
	t.Setenv("ORDER_CANCEL_WINDOW", "120")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("KAFKA_BROKER", "kafka:9092")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Second, cfg.MenuCacheTTL)
	assert.Equal(t, 2*time.Minute, cfg.OrderCancelWindow)
	assert.True(t, cfg.RedisEnabled())
	assert.True(t, cfg.KafkaEnabled())
}

func TestGetDuration_Invalid(t *testing.T) {
	t.Setenv("SOME_TTL", "soon")
	assert.Equal(t, time.Minute, getDuration("SOME_TTL", time.Minute))
}

func TestPostgresDSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "n", DBSSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.PostgresDSN())
}

func TestLocation(t *testing.T) {
	assert.Equal(t, time.Local, Config{Timezone: "Local"}.Location())
	assert.Equal(t, "UTC", Config{Timezone: "UTC"}.Location().String())
	assert.Equal(t, time.Local, Config{Timezone: "Mars/Olympus"}.Location())
}
