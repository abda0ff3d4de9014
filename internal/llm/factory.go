package llm

import (
	"fmt"

	"github.com/sant0-9/pact/internal/config"
)

// NewGateway creates the backend named by cfg.Provider.
func NewGateway(cfg *config.Config) (Gateway, error) {
	info := config.GetProvider(cfg.Provider)
	if info == nil {
		return nil, gatewayErr(cfg.Provider, "configure", fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider))
	}
	if info.NeedsAPIKey && cfg.APIKey == "" {
		return nil, gatewayErr(cfg.Provider, "configure", fmt.Errorf("%w (set %s)", ErrMissingAPIKey, info.EnvKey))
	}

	model := cfg.Model
	if model == "" {
		model = info.DefaultModel
	}

	switch cfg.Provider {
	case "mock":
		return NewMockProvider(), nil

	case "groq":
		g := NewGroqProvider(cfg.APIKey, model, cfg.Timeout)
		if cfg.BaseURL != "" {
			g.baseURL = cfg.BaseURL
		}
		return g, nil

	case "ollama":
		return NewOllamaProvider(cfg.BaseURL, model, cfg.Timeout), nil

	case "openai":
		o := NewOpenAIProvider(cfg.APIKey, model, cfg.Timeout)
		if cfg.BaseURL != "" {
			o.baseURL = cfg.BaseURL
		}
		return o, nil

	case "anthropic":
		a := NewAnthropicProvider(cfg.APIKey, model, cfg.Timeout)
		if cfg.BaseURL != "" {
			a.baseURL = cfg.BaseURL
		}
		return a, nil

	case "openrouter":
		return NewOpenRouterProvider(cfg.APIKey, model, cfg.Timeout), nil

	case "custom":
		if cfg.BaseURL == "" {
			return nil, gatewayErr("custom", "configure", fmt.Errorf("custom provider requires base_url"))
		}
		return NewCustomProvider(cfg.BaseURL, cfg.APIKey, model, cfg.Timeout), nil

	default:
		return nil, gatewayErr(cfg.Provider, "configure", fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider))
	}
}
