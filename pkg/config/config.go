package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Server
	Port    string
	AppName string

	// Storage
	DataDir string

	// Embedding
	EmbeddingDimension int

	// Search
	MaxTopK     int
	DefaultTopK int

	// Frontend (admin console origin for CORS)
	FrontendURL string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:    envOrDefault("PORT", "8000"),
		AppName: envOrDefault("APP_NAME", "ReviewLens"),

		DataDir: envOrDefault("DATA_DIR", "data"),

		EmbeddingDimension: envOrDefaultInt("EMBEDDING_DIMENSION", 4096),

		MaxTopK:     envOrDefaultInt("MAX_TOP_K", 100),
		DefaultTopK: envOrDefaultInt("DEFAULT_TOP_K", 5),

		FrontendURL: envOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return fallback
}
