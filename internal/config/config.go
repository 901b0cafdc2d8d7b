package config

import (
	"os"
	"strings"
	"time"
)

// DefaultJWTSecret is used when JWT_SECRET is unset. main logs a warning for it.
const DefaultJWTSecret = "your-secret-key-change-in-production"

type Config struct {
	DatabaseDriver  string // "sqlite" or "postgres"
	DatabaseURL     string // file path for sqlite, connection URI for postgres
	RedisURI        string // empty disables the summary cache
	MongoURI        string // empty disables the audit trail
	MongoDatabase   string
	JWTSecret       string
	AdminUsername   string   // account created with the admin role
	AdminEmail      string   // when set, the admin account must also register with this email
	Port            string
	StaticDir       string   // compiled client bundle
	AllowedOrigins  []string // CORS: from ALLOWED_ORIGINS, "*" when unset
	Environment     string   // ENV: production, development, etc.
	SummaryCacheTTL time.Duration
	RequestTimeout  time.Duration
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	return &Config{
		DatabaseDriver:  strings.ToLower(getEnv("DATABASE_DRIVER", "sqlite")),
		DatabaseURL:     getEnv("DATABASE_URL", "calsum.db"),
		RedisURI:        getEnv("REDIS_URI", ""),
		MongoURI:        getEnv("MONGODB_URI", getEnv("MONGO_URI", "")),
		MongoDatabase:   getEnv("MONGODB_DATABASE", "calsum"),
		JWTSecret:       getEnv("JWT_SECRET", DefaultJWTSecret),
		AdminUsername:   getEnv("ADMIN_USERNAME", "admin"),
		AdminEmail:      strings.TrimSpace(getEnv("ADMIN_EMAIL", "")),
		Port:            getEnv("PORT", "8080"),
		StaticDir:       getEnv("STATIC_DIR", "dist"),
		AllowedOrigins:  allowedOrigins,
		Environment:     env,
		SummaryCacheTTL: getDuration("SUMMARY_CACHE_TTL", 10*time.Minute),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 30*time.Second),
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

// UsesDefaultSecret reports whether tokens are signed with the built-in fallback secret.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
