package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "JWT_TTL", "MAIL_SEND_ENABLED", "APP_ENV", "DB_MAX_CONNS", "DB_MIN_CONNS", "HOUSE_CACHE_TTL"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "4000", cfg.Port)
	assert.Zero(t, cfg.JWTTTL)
	assert.Equal(t, time.Minute, cfg.HouseCacheTTL)
	assert.False(t, cfg.MailSendEnabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_TTL", "24h")
	t.Setenv("ELASTICSEARCH_ADDRS", " http://a:9200, ,http://b:9200 ")
	t.Setenv("RATE_LIMIT_TRUSTED_CIDRS", "10.0.0.0/8")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"http://a:9200", "http://b:9200"}, cfg.ESAddrs())
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.RateLimitTrusted())
}

func TestLoadReportsEveryBadValue(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_MAX_CONNS", "ten")
	t.Setenv("HTTP_LOG_ENABLED", "sometimes")
	t.Setenv("JWT_TTL", "-1h")
	t.Setenv("MAIL_SEND_ENABLED", "true")
	t.Setenv("RABBITMQ_URL", "")

	cfg, err := Load()
	require.Error(t, err)
	for _, key := range []string{"DB_MAX_CONNS", "HTTP_LOG_ENABLED", "JWT_TTL", "JWT_SECRET", "RABBITMQ_URL"} {
		assert.Contains(t, err.Error(), key)
	}
	assert.Equal(t, int32(10), cfg.DBMaxConns, "bad values fall back to defaults")
	assert.Zero(t, cfg.JWTTTL)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p@ss", DBHost: "h", DBPort: "5432", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@h:5432/d?sslmode=disable", cfg.PostgresDSN())
}
