package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"google.golang.org/genai"
)

const (
	geminiTemperature = 0.7
	geminiMaxTries    = 3
)

// GeminiClient calls the Gemini API through the official SDK.
type GeminiClient struct {
	client     *genai.Client
	model      string
	maxElapsed time.Duration
	logger     *slog.Logger
}

// NewGeminiClient builds a Gemini client. The timeout bounds the whole
// retry window of a single Ask, not each attempt.
func NewGeminiClient(ctx context.Context, apiKey, model string, timeout time.Duration, logger *slog.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{
		client:     client,
		model:      model,
		maxElapsed: timeout,
		logger:     logger,
	}, nil
}

// Ask implements Responder. Failed calls are retried with exponential
// backoff up to geminiMaxTries attempts.
func (c *GeminiClient) Ask(ctx context.Context, system, user string) (string, error) {
	c.logger.Debug("calling gemini", "model", c.model)

	operation := func() (string, error) {
		resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(user), &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
			Temperature:       genai.Ptr[float32](geminiTemperature),
		})
		if err != nil {
			return "", err
		}
		text := resp.Text()
		if text == "" {
			return "", fmt.Errorf("no response from Gemini")
		}
		return text, nil
	}

	text, err := backoff.Retry(ctx, operation,
		backoff.WithMaxTries(geminiMaxTries),
		backoff.WithMaxElapsedTime(c.maxElapsed),
	)
	if err != nil {
		return "", fmt.Errorf("Gemini request failed: %w", err)
	}
	return text, nil
}
