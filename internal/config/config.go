// Package config handles application configuration.
//
// Go Pattern: Configuration via environment variables with sensible defaults.
// In Go, we typically use structs to hold configuration, and a function to
// load values from environment variables. This is different from Python's
// module-level globals or dotenv magic — Go keeps it explicit.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Port    string
	GinMode string // "debug", "release", or "test"

	// Storage locations
	DataDir string // Flat JSON documents (users, history, activity, chat)
	PDFDir  string // Uploaded/selectable PDF files

	// OpenRouter AI settings (chat completions for study content)
	OpenRouterAPIKey string
	OpenRouterModel  string

	// Embedding settings for the multi-document vector index.
	// If GeminiAPIKey is set, embeddings come from the Gemini API;
	// otherwise the OpenAI-compatible embeddings endpoint is used.
	GeminiAPIKey     string
	GeminiEmbedModel string
	EmbeddingBaseURL string
	EmbeddingAPIKey  string
	EmbeddingModel   string

	// JWT Authentication
	JWTSecret string

	// Rate limiting (requests per hour per user)
	DefaultRateLimit int

	// CORS
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
//
// Go Pattern: Functions that can fail return (value, error). This is Go's
// alternative to exceptions — the caller MUST handle the error.
func Load() (*Config, error) {
	cfg := &Config{
		// Server defaults
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		// Storage — both directories are created on demand
		DataDir: getEnv("DATA_DIR", "users"),
		PDFDir:  getEnv("PDF_DIR", "pdfs"),

		// OpenRouter AI
		OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterModel:  getEnv("OPENROUTER_MODEL", "openai/gpt-4o-mini"),

		// Embeddings
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiEmbedModel: getEnv("GEMINI_EMBED_MODEL", "gemini-embedding-001"),
		EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", "https://api.openai.com/v1"),
		EmbeddingAPIKey:  getEnv("EMBEDDING_API_KEY", ""),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),

		// JWT Authentication
		JWTSecret: getEnv("JWT_SECRET", "dev-jwt-secret-change-in-production"),

		// Rate limiting
		DefaultRateLimit: getEnvInt("DEFAULT_RATE_LIMIT", 100),

		// CORS — in production, set this to your frontend URL
		AllowedOrigins: []string{
			getEnv("CORS_ORIGIN", "http://localhost:5173"),
		},
	}

	// Security: JWT secret MUST be set in production mode.
	// In release mode, we refuse to start with the default secret.
	if cfg.GinMode == "release" && cfg.JWTSecret == "dev-jwt-secret-change-in-production" {
		return nil, fmt.Errorf("JWT_SECRET must be set in production; refusing to start with default secret")
	}

	return cfg, nil
}

// getEnv reads an environment variable with a fallback default.
// Go Pattern: Small helper functions are idiomatic. Go favors simple,
// composable functions over complex frameworks.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getEnvInt reads an integer environment variable with a fallback.
func getEnvInt(key string, fallback int) int {
	str := getEnv(key, "")
	if str == "" {
		return fallback
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return fallback
	}
	return val
}
