package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	groqBaseURL     = "https://api.groq.com/openai/v1/"
	groqTemperature = 0.7
	groqMaxRetries  = 3
)

// GroqClient calls Groq's OpenAI-compatible chat completions API.
type GroqClient struct {
	client openai.Client
	model  string
	logger *slog.Logger
}

// NewGroqClient builds a Groq client. An empty baseURL selects the public
// Groq endpoint.
func NewGroqClient(apiKey, model, baseURL string, timeout time.Duration, logger *slog.Logger) *GroqClient {
	if baseURL == "" {
		baseURL = groqBaseURL
	}
	// The SDK joins paths directly, so the base URL needs a trailing "/".
	if !strings.HasSuffix(baseURL, "/") {
		baseURL = baseURL + "/"
	}
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(groqMaxRetries),
		option.WithRequestTimeout(timeout),
	)
	return &GroqClient{client: client, model: model, logger: logger}
}

// Ask implements Responder.
func (c *GroqClient) Ask(ctx context.Context, system, user string) (string, error) {
	c.logger.Debug("calling groq", "model", c.model)

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(groqTemperature),
	})
	if err != nil {
		return "", fmt.Errorf("Groq request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from Groq")
	}
	return resp.Choices[0].Message.Content, nil
}
