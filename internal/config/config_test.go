package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("AUTH_USERS", "")
	t.Setenv("USE_CACHE", "")

	cfg := Load()

	assert.Equal(t, "8082", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 7, cfg.ExpiryWindowDays)
	assert.Equal(t, 10, cfg.TokenTTLMinutes)
	assert.False(t, cfg.UseCache)
	assert.Equal(t, map[string]string{"admin@example.com": "admin123"}, cfg.AuthUsers)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("EXPIRY_WINDOW_DAYS", "14")
	t.Setenv("USE_CACHE", "1")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092 ,")
	t.Setenv("AUTH_USERS", "Ana@Example.com:secret1,broken,ops@example.com:pw:with:colons")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 14, cfg.ExpiryWindowDays)
	assert.True(t, cfg.UseCache)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, map[string]string{
		"ana@example.com": "secret1",
		"ops@example.com": "pw:with:colons",
	}, cfg.AuthUsers)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")

	cfg := Load()

	assert.Equal(t, 60, cfg.CacheTTL)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "n", DBSSLMode: "disable"}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.PostgresDSN())
}
