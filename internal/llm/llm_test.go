package llm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GenAICloudDevOps/clio-ai/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewResponder(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		wantType string
		wantErr  string
	}{
		{
			name:     "gemini with key",
			cfg:      config.Config{Provider: "gemini", Model: "gemini-2.5-flash", GeminiAPIKey: "test-key", Timeout: time.Minute},
			wantType: "*llm.GeminiClient",
		},
		{
			name:    "gemini without key",
			cfg:     config.Config{Provider: "gemini", Model: "gemini-2.5-flash"},
			wantErr: "GEMINI_API_KEY environment variable is not set",
		},
		{
			name:     "groq with key",
			cfg:      config.Config{Provider: "groq", Model: "compound-beta", GroqAPIKey: "test-key", Timeout: time.Minute},
			wantType: "*llm.GroqClient",
		},
		{
			name:    "groq without key",
			cfg:     config.Config{Provider: "groq", Model: "compound-beta"},
			wantErr: "GROQ_API_KEY environment variable is not set",
		},
		{
			name:     "ollama needs no key",
			cfg:      config.Config{Provider: "ollama", Model: "llama3.2", OllamaURL: "http://localhost:11434", Timeout: time.Minute},
			wantType: "*llm.OllamaClient",
		},
		{
			name:    "unsupported provider",
			cfg:     config.Config{Provider: "bedrock", Model: "claude"},
			wantErr: "unsupported provider: bedrock",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			responder, err := NewResponder(context.Background(), tt.cfg, testLogger())
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, fmt.Sprintf("%T", responder))
		})
	}
}
