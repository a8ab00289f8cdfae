package settings

// Settings is the runtime configuration blob persisted in the options table.
type Settings struct {
	Site SiteSettings `json:"site"`
	AI   AISettings   `json:"ai"`
}

// SiteSettings feeds the publisher/url fields of the JSON-LD output.
type SiteSettings struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// AISettings is the provider configuration, read-only at generation time.
type AISettings struct {
	Provider        string  `json:"provider"` // "openrouter" | "gemini"
	APIKey          string  `json:"api_key"`
	OpenRouterModel string  `json:"openrouter_model"`
	GeminiModel     string  `json:"gemini_model"`
	Temperature     float64 `json:"temperature"`
	MaxTokens       int     `json:"max_tokens"`
	Language        string  `json:"language"`
	AutoGenerate    bool    `json:"auto_generate"`
	RobotsAllow     bool    `json:"robots_allow"`
}

// Default returns the settings used before an administrator configures anything.
func Default() Settings {
	return Settings{
		Site: SiteSettings{
			Name: "AI Summary",
			URL:  "http://localhost:2330",
		},
		AI: AISettings{
			Provider:        "openrouter",
			OpenRouterModel: "meta-llama/llama-3.1-8b-instruct:free",
			GeminiModel:     "gemini-1.5-flash",
			Temperature:     0.7,
			MaxTokens:       150,
			Language:        "English",
			AutoGenerate:    false,
			RobotsAllow:     true,
		},
	}
}
