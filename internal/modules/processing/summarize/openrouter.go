package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/biulino/ai-summary-plugin/internal/models"
	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterClient speaks the OpenAI-compatible chat-completions API of
// OpenRouter through the openai-go SDK, with retries disabled.
type OpenRouterClient struct{}

func (c *OpenRouterClient) Name() string { return models.ProviderOpenRouter }

func (c *OpenRouterClient) Generate(ctx context.Context, prompt string, cfg ProviderConfig) (string, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return "", fmt.Errorf("%w: api key is empty", ErrConfiguration)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openRouterBaseURL
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(requestTimeout),
	}
	if cfg.Referer != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", cfg.Referer))
	}
	if cfg.Title != "" {
		opts = append(opts, option.WithHeader("X-Title", cfg.Title))
	}

	client := openai.NewClient(opts...)
	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens:   openai.Int(int64(cfg.MaxTokens)),
		Temperature: openai.Float(cfg.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("%w: openrouter: %v", ErrGenerationFailed, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openrouter response has no choices", ErrGenerationFailed)
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: openrouter returned empty content", ErrGenerationFailed)
	}
	return content, nil
}
