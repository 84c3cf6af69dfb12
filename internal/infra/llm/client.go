// Package llm отвечает на свободные вопросы клиентов через
// OpenAI-совместимый chat completion (по умолчанию роутер Hugging Face).
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/fellowfy-fy/SnapCeilingBot/internal/domain"
)

const (
	DefaultBaseURL = "https://router.huggingface.co/v1"
	DefaultModel   = "openai/gpt-oss-120b"

	temperature = 0.3
	maxTokens   = 220
)

// Client реализует usecase.Assistant.
type Client struct {
	client openai.Client
	model  string
	system string
}

func NewClient(apiKey, baseURL, model string, opts ...option.RequestOption) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithBaseURL(baseURL)}
	reqOpts = append(reqOpts, opts...)
	return &Client{
		client: openai.NewClient(reqOpts...),
		model:  model,
		system: systemPrompt(snapCeilings),
	}
}

func (c *Client) Answer(ctx context.Context, question string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.system),
			openai.UserMessage(question),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", domain.ErrEmptyAnswer
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", domain.ErrEmptyAnswer
	}
	return answer, nil
}
