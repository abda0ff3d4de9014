package llm

import "time"

// CustomProvider points at a self-hosted OpenAI-compatible server. The API
// key is optional.
type CustomProvider struct {
	*OpenAIProvider
}

func NewCustomProvider(baseURL, apiKey, model string, timeout time.Duration) *CustomProvider {
	return &CustomProvider{
		OpenAIProvider: newOpenAICompatible("custom", baseURL, apiKey, model, timeout),
	}
}
