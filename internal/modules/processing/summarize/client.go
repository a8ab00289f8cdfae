package summarize

import (
	"context"
	"fmt"
	"time"

	"github.com/biulino/ai-summary-plugin/internal/models"
)

// requestTimeout bounds every provider call. A timeout is treated exactly
// like any other transport failure.
const requestTimeout = 30 * time.Second

// ProviderConfig is the per-call provider configuration, resolved from
// settings by the pipeline. Read-only at generation time.
type ProviderConfig struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int

	// Referer and Title identify the caller to OpenRouter.
	Referer string
	Title   string

	// BaseURL overrides the provider endpoint; used by tests.
	BaseURL string
}

// Client is a single LLM backend. Implementations make exactly one attempt
// and collapse every failure into ErrGenerationFailed.
type Client interface {
	Name() string
	Generate(ctx context.Context, prompt string, cfg ProviderConfig) (string, error)
}

// NewClient returns the client for a configured provider name. The provider
// table is static; an unknown name is a configuration error and no call is
// attempted.
func NewClient(provider string) (Client, error) {
	switch provider {
	case models.ProviderOpenRouter:
		return &OpenRouterClient{}, nil
	case models.ProviderGemini:
		return &GeminiClient{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrConfiguration, provider)
	}
}

// BuildPrompt embeds the target language and normalized text into a single
// user-turn instruction.
func BuildPrompt(language, text string) string {
	if language == "" {
		language = "English"
	}
	return fmt.Sprintf(
		"Please provide a concise summary of the following text in %s. Focus on the main points and key information:\n\n%s",
		language, text,
	)
}
