package llm

import (
	"context"
	"net/http"
	"time"
)

type AnthropicProvider struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewAnthropicProvider(apiKey, model string, timeout time.Duration) *AnthropicProvider {
	if model == "" {
		model = "claude-3-5-haiku-20241022"
	}
	return &AnthropicProvider{
		apiKey:     apiKey,
		model:      model,
		baseURL:    "https://api.anthropic.com/v1",
		httpClient: newHTTPClient(timeout),
	}
}

func (a *AnthropicProvider) Name() string {
	return "anthropic"
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float64            `json:"temperature"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func (a *AnthropicProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if a.apiKey == "" {
		return "", gatewayErr(a.Name(), "configure", ErrMissingAPIKey)
	}

	apiReq := anthropicRequest{
		Model:     a.model,
		MaxTokens: 1024,
		System:    extractionSystemPrompt,
		Messages:  []anthropicMessage{{Role: "user", Content: prompt}},
	}
	headers := map[string]string{
		"x-api-key":         a.apiKey,
		"anthropic-version": "2023-06-01",
	}

	var apiResp anthropicResponse
	if err := postJSON(ctx, a.httpClient, a.Name(), a.baseURL+"/messages", headers, apiReq, &apiResp); err != nil {
		return "", err
	}

	for _, block := range apiResp.Content {
		if block.Text != "" {
			return block.Text, nil
		}
	}
	return "", gatewayErr(a.Name(), "decode", ErrEmptyResponse)
}
