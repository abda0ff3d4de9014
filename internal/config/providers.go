package config

type ProviderInfo struct {
	ID           string
	Name         string
	Description  string
	NeedsAPIKey  bool
	EnvKey       string
	SignupURL    string
	DefaultModel string
}

var Providers = []ProviderInfo{
	{
		ID:          "mock",
		Name:        "Mock",
		Description: "Deterministic offline model, no network",
	},
	{
		ID:           "groq",
		Name:         "Groq",
		Description:  "Hosted, very fast",
		NeedsAPIKey:  true,
		EnvKey:       "GROQ_API_KEY",
		SignupURL:    "https://console.groq.com/keys",
		DefaultModel: "llama-3.3-70b-versatile",
	},
	{
		ID:           "ollama",
		Name:         "Ollama",
		Description:  "Local, free, private",
		DefaultModel: "llama3.1:8b",
	},
	{
		ID:           "openai",
		Name:         "OpenAI",
		Description:  "Hosted GPT models",
		NeedsAPIKey:  true,
		EnvKey:       "OPENAI_API_KEY",
		SignupURL:    "https://platform.openai.com/api-keys",
		DefaultModel: "gpt-4o-mini",
	},
	{
		ID:           "anthropic",
		Name:         "Anthropic",
		Description:  "Hosted Claude models",
		NeedsAPIKey:  true,
		EnvKey:       "ANTHROPIC_API_KEY",
		SignupURL:    "https://console.anthropic.com/",
		DefaultModel: "claude-3-5-haiku-20241022",
	},
	{
		ID:           "openrouter",
		Name:         "OpenRouter",
		Description:  "Access all models",
		NeedsAPIKey:  true,
		EnvKey:       "OPENROUTER_API_KEY",
		SignupURL:    "https://openrouter.ai/keys",
		DefaultModel: "meta-llama/llama-3.1-70b-instruct",
	},
	{
		ID:          "custom",
		Name:        "Custom",
		Description: "Any OpenAI-compatible endpoint (needs base_url)",
	},
}

func GetProvider(id string) *ProviderInfo {
	for _, p := range Providers {
		if p.ID == id {
			return &p
		}
	}
	return nil
}

// ProviderIDs returns the enumerated backend names in display order.
func ProviderIDs() []string {
	ids := make([]string, len(Providers))
	for i, p := range Providers {
		ids[i] = p.ID
	}
	return ids
}
