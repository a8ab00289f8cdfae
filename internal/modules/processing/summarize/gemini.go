package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"

	"github.com/biulino/ai-summary-plugin/internal/models"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com"

// GeminiClient speaks the generate-content API directly over net/http; the
// wire format is small enough that an SDK would add more surface than it
// saves.
type GeminiClient struct{}

func (c *GeminiClient) Name() string { return models.ProviderGemini }

func (c *GeminiClient) Generate(ctx context.Context, prompt string, cfg ProviderConfig) (string, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return "", fmt.Errorf("%w: api key is empty", ErrConfiguration)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = geminiBaseURL
	}

	body, _ := json.Marshal(map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]interface{}{
			"maxOutputTokens": cfg.MaxTokens,
			"temperature":     cfg.Temperature,
		},
	})

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(baseURL, "/"), cfg.Model, neturl.QueryEscape(cfg.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", ErrGenerationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: requestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", ErrGenerationFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: gemini returned status %d", ErrGenerationFailed, resp.StatusCode)
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("%w: gemini: unparseable response", ErrGenerationFailed)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: gemini response has no candidates", ErrGenerationFailed)
	}

	text := strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("%w: gemini returned empty text", ErrGenerationFailed)
	}
	return text, nil
}
