package llm

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// OllamaProvider calls a local Ollama server through /api/generate.
type OllamaProvider struct {
	host       string
	model      string
	httpClient *http.Client
}

func NewOllamaProvider(host, model string, timeout time.Duration) *OllamaProvider {
	if host == "" {
		host = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.1:8b"
	}
	return &OllamaProvider{
		host:       strings.TrimRight(host, "/"),
		model:      model,
		httpClient: newHTTPClient(timeout),
	}
}

func (o *OllamaProvider) Name() string {
	return "ollama"
}

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Format  string         `json:"format,omitempty"`
	Options *ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
}

type ollamaGenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (o *OllamaProvider) Generate(ctx context.Context, prompt string) (string, error) {
	apiReq := ollamaGenerateRequest{
		Model:   o.model,
		Prompt:  "Return valid JSON for legal intake extraction. No markdown, no explanations.\n\nInput:\n" + prompt,
		Stream:  false,
		Options: &ollamaOptions{Temperature: 0},
	}

	var apiResp ollamaGenerateResponse
	if err := postJSON(ctx, o.httpClient, o.Name(), o.host+"/api/generate", nil, apiReq, &apiResp); err != nil {
		return "", err
	}
	return apiResp.Response, nil
}
