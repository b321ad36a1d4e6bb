package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Upstream UpstreamConfig
	Session  SessionConfig
	Cache    CacheConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	ClientURL          string
	RedisURL           string
}

// UpstreamConfig points at the workflow-automation backend. BaseURL covers the
// REST surface (login, userinfo, executions), WebhookURL the webhook-style
// business endpoints (content storage, documents, chat, editor).
type UpstreamConfig struct {
	BaseURL    string
	WebhookURL string
	Timeout    time.Duration
}

type SessionConfig struct {
	CookieName   string
	Secret       string
	TTL          time.Duration
	CookieSecure bool
}

type CacheConfig struct {
	Backend string // "memory" or "redis"
	TTL     time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/console.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Upstream: UpstreamConfig{
			BaseURL:    getEnv("UPSTREAM_BASE_URL", "http://localhost:5678/rest"),
			WebhookURL: getEnv("UPSTREAM_WEBHOOK_URL", "http://localhost:5678/webhook"),
			Timeout:    getEnvAsDuration("UPSTREAM_TIMEOUT", 15*time.Second),
		},
		Session: SessionConfig{
			CookieName:   getEnv("SESSION_COOKIE_NAME", "wingsuite_session"),
			Secret:       getEnv("SESSION_SECRET", ""),
			TTL:          getEnvAsDuration("SESSION_TTL", 12*time.Hour),
			CookieSecure: getEnv("GO_ENV", "development") == "production",
		},
		Cache: CacheConfig{
			Backend: getEnv("CACHE_BACKEND", "memory"),
			TTL:     getEnvAsDuration("CACHE_TTL", 30*time.Second),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
