package llm

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"
)

func TestGeminiClientAsk(t *testing.T) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY environment variable is not set")
	}

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))
	defer func() {
		if logBuf.Len() > 0 {
			t.Logf("log output:\n%s", logBuf.String())
		}
	}()

	ctx := context.Background()
	client, err := NewGeminiClient(ctx, apiKey, "gemini-2.5-flash-lite", time.Minute, logger)
	if err != nil {
		t.Fatalf("Failed to create Gemini client: %v", err)
	}

	got, err := client.Ask(ctx, "You are a helpful assistant. Answer in a single word.", "What is the capital of France?")
	if err != nil {
		t.Fatalf("Ask returned error: %v", err)
	}
	if strings.TrimSpace(got) == "" {
		t.Error("Ask returned empty text")
	}
	t.Logf("model said: %s", got)
}
