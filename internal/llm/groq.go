package llm

import "time"

const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqProvider is the hosted Groq backend (OpenAI-compatible).
type GroqProvider struct {
	*OpenAIProvider
}

func NewGroqProvider(apiKey, model string, timeout time.Duration) *GroqProvider {
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}
	return &GroqProvider{
		OpenAIProvider: newOpenAICompatible("groq", groqBaseURL, apiKey, model, timeout),
	}
}
