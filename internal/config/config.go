// Package config loads application configuration from environment variables
// and an optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// Qdrant
	QdrantURL        string
	QdrantAPIKey     string
	QdrantCollection string
	VectorSize       int

	// Google embedding service
	GoogleAPIKey     string
	EmbeddingBaseURL string
	EmbeddingModel   string

	// Chunking
	ChunkSize    int
	ChunkOverlap int
	MinChunkSize int

	// Retrieval
	TopK           int
	ScoreThreshold float64

	// Service
	DBPath    string
	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables, applying defaults for
// optional fields and failing fast on missing required credentials.
// If a .env file exists in the current directory or an ancestor (up to the
// project root), it is loaded first; variables already set in the
// environment take precedence.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		QdrantURL:        getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantAPIKey:     getEnv("QDRANT_API_KEY", ""),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "voicekb"),
		GoogleAPIKey:     getEnv("GOOGLE_API_KEY", ""),
		EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", "https://generativelanguage.googleapis.com"),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "models/text-embedding-004"),
		DBPath:           getEnv("DB_PATH", "./data/voicekb.db"),
		APIPort:          getEnv("API_PORT", "9000"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.VectorSize, err = getEnvInt("VECTOR_SIZE", 768); err != nil {
		return nil, err
	}
	if cfg.ChunkSize, err = getEnvInt("CHUNK_SIZE", 500); err != nil {
		return nil, err
	}
	if cfg.ChunkOverlap, err = getEnvInt("CHUNK_OVERLAP", 50); err != nil {
		return nil, err
	}
	if cfg.MinChunkSize, err = getEnvInt("MIN_CHUNK_SIZE", 50); err != nil {
		return nil, err
	}
	if cfg.TopK, err = getEnvInt("TOP_K", 3); err != nil {
		return nil, err
	}
	if cfg.ScoreThreshold, err = getEnvFloat("SCORE_THRESHOLD", 0.3); err != nil {
		return nil, err
	}
	if cfg.LogLevel, err = parseLogLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}

	// Required credentials fail fast rather than silently defaulting.
	if cfg.GoogleAPIKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY is required")
	}
	if cfg.VectorSize <= 0 {
		return nil, fmt.Errorf("VECTOR_SIZE must be greater than 0")
	}
	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("CHUNK_SIZE must be greater than 0")
	}

	// Create the data directory for the catalog database.
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// loadDotEnv loads a .env file from the current directory or the nearest
// ancestor that has one, ignoring missing files.
func loadDotEnv() {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return parsed, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return parsed, nil
}

func parseLogLevel(value string) (slog.Level, error) {
	switch value {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error; got %q", value)
	}
}
