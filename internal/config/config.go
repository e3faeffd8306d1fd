// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
// A .env file in the working directory, when present, is loaded first and never
// overrides variables that are already set.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Store and session backends.
const (
	BackendMemory   = "memory"
	BackendValkey   = "valkey"
	BackendPostgres = "postgres"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host   string
	Port   string
	Env    string // "development", "production", "testing"
	Locale string // BCP 47 tag used for file dates and last-modified stamps

	// Persistence
	StoreBackend         string // "memory", "valkey", "postgres"
	StorePrefix          string
	SessionBackend       string // "memory", "valkey"
	AdminDefaultPassword string

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// AI provider settings
	AIProvider     string // "gemini", "openai", "claude", "mistral"
	OpenAIKey      string
	OpenAIModel    string
	OpenAIBaseURL  string
	GeminiKey      string
	GeminiModel    string
	GeminiBaseURL  string
	ClaudeKey      string
	ClaudeModel    string
	ClaudeBaseURL  string
	MistralKey     string
	MistralModel   string
	MistralBaseURL string

	// Chat messages accepted per minute per client IP.
	ChatRateLimit int
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode or a backend name is unknown.
func Load() (*Config, error) {
	// A missing .env file is the normal case outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		Host:   envOrDefault("APP_HOST", "0.0.0.0"),
		Port:   envOrDefault("APP_PORT", "8080"),
		Env:    envOrDefault("APP_ENV", "development"),
		Locale: envOrDefault("APP_LOCALE", "ar-EG"),

		StoreBackend:         envOrDefault("STORE_BACKEND", BackendMemory),
		StorePrefix:          envOrDefault("STORE_PREFIX", "tero_"),
		SessionBackend:       envOrDefault("SESSION_BACKEND", BackendMemory),
		AdminDefaultPassword: envOrDefault("ADMIN_DEFAULT_PASSWORD", "01005275052"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "terolib"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "terolib"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		AIProvider:     envOrDefault("AI_PROVIDER", "gemini"),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    envOrDefault("OPENAI_MODEL", "gpt-4o"),
		OpenAIBaseURL:  envOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		GeminiKey:      os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    envOrDefault("GEMINI_MODEL", "gemini-3-flash-preview"),
		GeminiBaseURL:  envOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		ClaudeKey:      os.Getenv("CLAUDE_API_KEY"),
		ClaudeModel:    envOrDefault("CLAUDE_MODEL", "claude-sonnet-4-6"),
		ClaudeBaseURL:  envOrDefault("CLAUDE_BASE_URL", "https://api.anthropic.com"),
		MistralKey:     os.Getenv("MISTRAL_API_KEY"),
		MistralModel:   envOrDefault("MISTRAL_MODEL", "mistral-large-latest"),
		MistralBaseURL: envOrDefault("MISTRAL_BASE_URL", "https://api.mistral.ai/v1"),
	}

	limit, err := strconv.Atoi(envOrDefault("CHAT_RATE_LIMIT", "20"))
	if err != nil || limit <= 0 {
		return nil, fmt.Errorf("CHAT_RATE_LIMIT must be a positive integer")
	}
	cfg.ChatRateLimit = limit

	switch cfg.StoreBackend {
	case BackendMemory, BackendValkey, BackendPostgres:
	default:
		return nil, fmt.Errorf("STORE_BACKEND %q is not one of memory, valkey, postgres", cfg.StoreBackend)
	}
	switch cfg.SessionBackend {
	case BackendMemory, BackendValkey:
	default:
		return nil, fmt.Errorf("SESSION_BACKEND %q is not one of memory, valkey", cfg.SessionBackend)
	}

	if cfg.Env == "production" && cfg.StoreBackend == BackendPostgres {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// NeedsValkey reports whether any configured backend talks to Valkey.
func (c *Config) NeedsValkey() bool {
	return c.StoreBackend == BackendValkey || c.SessionBackend == BackendValkey
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
