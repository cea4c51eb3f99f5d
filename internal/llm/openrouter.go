package llm

import "fmt"

// OpenRouterProvider targets the OpenRouter API. OpenRouter speaks the
// OpenAI chat completions protocol, so the OpenAI adapter does the work;
// model names are passed through untouched.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultConfig().OpenRouter.BaseURL
	}

	inner := newOpenAIClient(cfg.APIKey, baseURL, cfg.Model)
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
