package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENV", "DATABASE_DRIVER", "DATABASE_URL", "JWT_SECRET", "ALLOWED_ORIGINS", "SUMMARY_CACHE_TTL", "MONGODB_URI", "MONGO_URI", "REDIS_URI", "ADMIN_EMAIL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "calsum.db", cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Empty(t, cfg.AdminEmail)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 10*time.Minute, cfg.SummaryCacheTTL)
	assert.Empty(t, cfg.RedisURI)
	assert.Empty(t, cfg.MongoURI)
	assert.True(t, cfg.UsesDefaultSecret())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ENV", " Production ")
	t.Setenv("DATABASE_DRIVER", "POSTGRES")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("SUMMARY_CACHE_TTL", "90s")
	t.Setenv("REQUEST_TIMEOUT", "not-a-duration")
	t.Setenv("ADMIN_EMAIL", " root@example.com ")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.False(t, cfg.UsesDefaultSecret())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 90*time.Second, cfg.SummaryCacheTTL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "root@example.com", cfg.AdminEmail)
}
