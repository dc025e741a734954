package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMySQL  = "mysql"
	StoreMemory = "memory"
)

type Config struct {
	Port          string
	GinMode       string
	StoreDriver   string
	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool
	RedisURL      string
	UploadDir     string
	AdminEmail    string
	AdminUsername string
	AdminPassword string
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] .env not found; continuing with environment variables")
	}

	cfg := &Config{
		Port:          envOrDefault("PORT", "8080"),
		GinMode:       envOrDefault("GIN_MODE", "release"),
		StoreDriver:   strings.ToLower(envOrDefault("STORE_DRIVER", StoreMySQL)),
		SessionSecret: strings.TrimSpace(os.Getenv("SESSION_SECRET")),
		RedisURL:      strings.TrimSpace(os.Getenv("REDIS_URL")),
		UploadDir:     envOrDefault("UPLOAD_DIR", "uploads"),
		AdminEmail:    strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		AdminUsername: strings.TrimSpace(os.Getenv("ADMIN_USERNAME")),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.StoreDriver != StoreMySQL && cfg.StoreDriver != StoreMemory {
		return nil, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreMySQL, StoreMemory, cfg.StoreDriver)
	}

	ttl, err := time.ParseDuration(envOrDefault("SESSION_TTL", "24h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL: %q", os.Getenv("SESSION_TTL"))
	}
	cfg.SessionTTL = ttl

	if raw := strings.TrimSpace(os.Getenv("COOKIE_SECURE")); raw != "" {
		secure, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid COOKIE_SECURE: %q", raw)
		}
		cfg.CookieSecure = secure
	}

	if cfg.SessionSecret == "" {
		if cfg.StoreDriver == StoreMySQL {
			return nil, fmt.Errorf("SESSION_SECRET is required with STORE_DRIVER=%s", StoreMySQL)
		}
		cfg.SessionSecret = "local-dev-secret"
		log.Println("[config] SESSION_SECRET not set, using a development secret")
	}
	return cfg, nil
}
