package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"ariatravel/app/config"

	"github.com/samber/do"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Client talks to an OpenAI compatible chat completion endpoint.
type Client struct {
	model       llms.Model
	maxTokens   int
	temperature float64
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)
	if cfg.OpenAI.Token == "" {
		return nil, nil
	}

	return New(cfg.OpenAI)
}

func New(cfg config.OpenAI) (*Client, error) {
	model, err := openai.New(
		openai.WithToken(cfg.Token),
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithModel(cfg.Model),
		openai.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		openai.WithCallback(LogCallbackHandler{}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai client: %w", err)
	}

	return &Client{
		model:       model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

func (c *Client) Generate(ctx context.Context, systemContext, userQuery string) (string, error) {
	resp, err := c.model.GenerateContent(
		ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, systemContext),
			llms.TextParts(llms.ChatMessageTypeHuman, userQuery),
		},
		llms.WithMaxTokens(c.maxTokens),
		llms.WithTemperature(c.temperature),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no chat completion found")
	}

	result := strings.TrimSpace(resp.Choices[0].Content)
	if result == "" {
		return "", fmt.Errorf("empty chat completion")
	}

	return result, nil
}
