package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// OllamaClient calls the generate endpoint of a local Ollama server.
type OllamaClient struct {
	client  *resty.Client
	baseURL string
	model   string
	logger  *slog.Logger
}

// NewOllamaClient builds a client for the Ollama server at baseURL.
func NewOllamaClient(baseURL, model string, timeout time.Duration, logger *slog.Logger) *OllamaClient {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetRetryCount(3)
	client.SetRetryWaitTime(1 * time.Second)
	client.SetRetryMaxWaitTime(5 * time.Second)
	return &OllamaClient{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		logger:  logger,
	}
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	System string `json:"system"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

// Ask implements Responder. Ollama only takes a single prompt string, so
// the system context rides in the dedicated system field and the full
// response is requested in one shot with streaming off.
func (c *OllamaClient) Ask(ctx context.Context, system, user string) (string, error) {
	c.logger.Debug("calling ollama", "model", c.model, "url", c.baseURL)

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(ollamaGenerateRequest{
			Model:  c.model,
			Prompt: user,
			System: system,
			Stream: false,
		}).
		Post(c.baseURL + "/api/generate")
	if err != nil {
		return "", fmt.Errorf("Ollama connection error: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("Ollama error: HTTP %d", resp.StatusCode())
	}

	var result ollamaGenerateResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse Ollama response: %w", err)
	}
	if result.Response == "" {
		return "", fmt.Errorf("Ollama returned empty response")
	}
	return result.Response, nil
}
