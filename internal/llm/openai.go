package llm

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// OpenAIProvider talks to any OpenAI-compatible chat completions endpoint.
type OpenAIProvider struct {
	name       string
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewOpenAIProvider(apiKey, model string, timeout time.Duration) *OpenAIProvider {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return newOpenAICompatible("openai", "https://api.openai.com/v1", apiKey, model, timeout)
}

func newOpenAICompatible(name, baseURL, apiKey, model string, timeout time.Duration) *OpenAIProvider {
	return &OpenAIProvider{
		name:       name,
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: newHTTPClient(timeout),
	}
}

func (o *OpenAIProvider) Name() string {
	return o.name
}

// OpenAI-compatible request/response types (shared with groq, openrouter, custom)
type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	Stream      bool            `json:"stream"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []struct {
		Message      openAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
}

func (o *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	headers := map[string]string{}
	if o.apiKey != "" {
		headers["Authorization"] = "Bearer " + o.apiKey
	} else if o.name != "custom" {
		return "", gatewayErr(o.name, "configure", ErrMissingAPIKey)
	}

	apiReq := openAIRequest{
		Model: o.model,
		Messages: []openAIMessage{
			{Role: "system", Content: extractionSystemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0,
	}

	var apiResp openAIResponse
	if err := postJSON(ctx, o.httpClient, o.name, o.baseURL+"/chat/completions", headers, apiReq, &apiResp); err != nil {
		return "", err
	}

	if len(apiResp.Choices) == 0 {
		return "", gatewayErr(o.name, "decode", ErrEmptyResponse)
	}
	return apiResp.Choices[0].Message.Content, nil
}
