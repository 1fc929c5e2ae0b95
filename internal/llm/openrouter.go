package llm

import "fmt"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouter attribution headers. See https://openrouter.ai/docs/api-reference/overview.
const (
	openRouterReferer = "https://github.com/abhisek/thoughtchain"
	openRouterTitle   = "thoughtchain"
)

// NewOpenRouterProvider creates a provider for the OpenRouter API, which
// speaks the OpenAI chat protocol. Model IDs are vendor-qualified
// ("microsoft/phi-3-mini-128k-instruct") and sent unchanged.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("openrouter model is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	return newChatCompletionProvider(chatEndpoint{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		model:   cfg.Model,
		headers: map[string]string{
			"HTTP-Referer": openRouterReferer,
			"X-Title":      openRouterTitle,
		},
	}), nil
}
