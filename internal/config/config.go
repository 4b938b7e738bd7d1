package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// DefaultTokenTTL is the token lifetime when JWT_TTL is not set.
const DefaultTokenTTL = 24 * time.Hour

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Env         string
	Port        string
	PostgresDSN string
	JWTSecret   string
	TokenTTL    time.Duration
	LogLevel    string
	LogFormat   string
}

// Load reads configuration from the environment, consulting a local .env
// file when present. A missing JWT_SECRET is fatal outside development:
// falling back to a guessable constant would make every issued token
// forgeable. In development a random per-process secret is generated
// instead, so restarts invalidate outstanding tokens but the secret is
// never predictable.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:         getenv("APP_ENV", "production"),
		Port:        getenv("PORT", "8080"),
		PostgresDSN: getenv("POSTGRES_DSN", ""),
		JWTSecret:   getenv("JWT_SECRET", ""),
		TokenTTL:    DefaultTokenTTL,
		LogLevel:    getenv("LOG_LEVEL", "info"),
		LogFormat:   getenv("LOG_FORMAT", "json"),
	}

	if ttl := os.Getenv("JWT_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("parse JWT_TTL: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("JWT_TTL must be positive, got %s", d)
		}
		cfg.TokenTTL = d
	}

	if cfg.JWTSecret == "" {
		if cfg.Env != "development" {
			return nil, errors.New("JWT_SECRET must be set outside development")
		}
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("generate dev secret: %w", err)
		}
		cfg.JWTSecret = secret
	}

	return cfg, nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
