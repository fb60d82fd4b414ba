package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string

	// Text-generation back end; the service runs on the deterministic
	// fallback responder when BaseURL is empty.
	GenAIBaseURL string
	GenAIAPIKey  string
	GenAIModel   string

	AnalyzerInterval     time.Duration
	AnalyzerStartupDelay time.Duration
}

func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}

	return Config{
		Port:                 envOr("PORT", "8080"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		GenAIBaseURL:         os.Getenv("GENAI_URL"),
		GenAIAPIKey:          os.Getenv("GENAI_API_KEY"),
		GenAIModel:           envOr("GENAI_MODEL", "ibm/granite-3-8b-instruct"),
		AnalyzerInterval:     durationOr("ANALYZER_INTERVAL", time.Hour),
		AnalyzerStartupDelay: durationOr("ANALYZER_STARTUP_DELAY", 15*time.Second),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("invalid duration, using default", "key", key, "value", v)
		return fallback
	}
	return d
}
