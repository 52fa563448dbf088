// Package config loads runtime settings from the environment, with
// .env discovery in the working directory and the user's config
// directories. Settings are resolved once at startup into an explicit
// struct and handed to the components that need them.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Defaults applied when the environment does not say otherwise.
const (
	DefaultProvider  = "gemini"
	DefaultModel     = "gemini-3-flash-preview"
	DefaultOllamaURL = "http://localhost:11434"
	DefaultTimeout   = 5 * time.Minute
)

// Config carries every runtime setting the CLI needs.
type Config struct {
	Provider     string
	Model        string
	GeminiAPIKey string
	GroqAPIKey   string
	OllamaURL    string

	// Timeout bounds one model request including client-side retries.
	Timeout time.Duration
}

// Load reads .env files and the environment. A .env in the working
// directory wins; otherwise the first readable file among EnvPaths is
// used. Variables already present in the environment are never
// overridden by file contents.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		for _, path := range EnvPaths() {
			if err := godotenv.Load(path); err == nil {
				break
			}
		}
	}

	return &Config{
		Provider:     envOr("PROVIDER", DefaultProvider),
		Model:        envOr("MODEL", DefaultModel),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GroqAPIKey:   os.Getenv("GROQ_API_KEY"),
		OllamaURL:    envOr("OLLAMA_URL", DefaultOllamaURL),
		Timeout:      DefaultTimeout,
	}
}

// EnvPaths lists the fallback .env locations in priority order.
func EnvPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".clio-ai", ".env"),
		filepath.Join(home, ".ai-cli", ".env"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
