// Package config provides environment configuration for the API server.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration

	// Backend commerce API
	APIBaseURL  string
	ToolTimeout time.Duration

	// Intent model artifacts (required)
	VectorizerPath  string
	IntentModelPath string

	// Suggestion model artifacts (optional; rule-only mode when absent)
	SuggestionVectorizerPath string
	SuggestionModelPath      string
	SuggestionBinarizerPath  string
	SuggestionTopK           int

	// Session context store
	RedisURL   string
	SessionTTL time.Duration

	// Dialogue event publishing
	NATSURL       string
	EventsSubject string

	// Rate limiting
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Logging
	LogLevel string

	// Tracing
	TracingEndpoint string
	TracingEnabled  bool

	// Service identity
	ServiceName string
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		// Server
		ServerPort:         getEnv("PORT", "5000"),
		ServerReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
		ServerWriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),

		// Backend API
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:3001/api"),
		ToolTimeout: getDurationEnv("TOOL_TIMEOUT", 5*time.Second),

		// Intent model
		VectorizerPath:  getEnv("VECTORIZER_PATH", "models/vectorizer.json"),
		IntentModelPath: getEnv("INTENT_MODEL_PATH", "models/intent_model.json"),

		// Suggestion model
		SuggestionVectorizerPath: getEnv("SUGGESTION_VECTORIZER_PATH", "models/suggestion_vectorizer.json"),
		SuggestionModelPath:      getEnv("SUGGESTION_MODEL_PATH", "models/suggestion_model.json"),
		SuggestionBinarizerPath:  getEnv("SUGGESTION_BINARIZER_PATH", "models/suggestion_binarizer.json"),
		SuggestionTopK:           getIntEnv("SUGGESTION_TOP_K", 4),

		// Sessions
		RedisURL:   getEnv("REDIS_URL", ""),
		SessionTTL: getDurationEnv("SESSION_TTL", 30*time.Minute),

		// Events
		NATSURL:       getEnv("NATS_URL", ""),
		EventsSubject: getEnv("EVENTS_SUBJECT", "dialogue.events"),

		// Rate limiting
		RateLimitRequests: getIntEnv("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:   getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Tracing
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4318"),
		TracingEnabled:  getBoolEnv("TRACING_ENABLED", false),

		// Service identity
		ServiceName: getEnv("SERVICE_NAME", "nlp-service"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
