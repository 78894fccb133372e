package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"ArticleGate/internal/config"
	"ArticleGate/internal/ports"
)

const defaultTimeout = 120 * time.Second

// OpenAIGenerator implements ports.StructuredGenerator backed by OpenAI-compatible APIs.
type OpenAIGenerator struct {
	client      *openai.Client
	model       string
	temperature float32
}

var _ ports.StructuredGenerator = (*OpenAIGenerator)(nil)

// NewOpenAIGenerator builds a generator from configuration.
func NewOpenAIGenerator(cfg config.OpenAIConfig) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" || cfg.Model == "" {
		return nil, fmt.Errorf("openai generator misconfigured")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	clientCfg.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIGenerator{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

// Generate requests a strict JSON-schema completion and returns the raw JSON object.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt ports.StructuredPrompt) ([]byte, error) {
	if g == nil || g.client == nil {
		return nil, fmt.Errorf("openai generator is nil")
	}

	req := openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   safeName(prompt.Name),
				Schema: prompt.Shape,
				Strict: true,
			},
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	choice := resp.Choices[0]
	if choice.Message.Refusal != "" {
		return nil, fmt.Errorf("model refused: %s", choice.Message.Refusal)
	}
	content := strings.TrimSpace(choice.Message.Content)
	if content == "" {
		return nil, fmt.Errorf("chat completion returned empty content (finish reason %s)", choice.FinishReason)
	}

	return []byte(content), nil
}

func safeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "result"
	}
	return name
}
