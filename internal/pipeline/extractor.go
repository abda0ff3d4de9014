package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sant0-9/pact/internal/llm"
	"github.com/sant0-9/pact/internal/prompts"
)

// Extractor prompts the gateway for intake fields.
type Extractor struct {
	gateway  llm.Gateway
	provider string
	timeout  time.Duration
}

func NewExtractor(gateway llm.Gateway, provider string, timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = llm.DefaultTimeout
	}
	return &Extractor{
		gateway:  gateway,
		provider: provider,
		timeout:  timeout,
	}
}

// Extract returns the raw model text. Every failure is a *llm.GatewayError.
func (e *Extractor) Extract(ctx context.Context, userText string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.gateway.Generate(ctx, prompts.BuildExtractionPrompt(userText))
	if err != nil {
		var ge *llm.GatewayError
		if !errors.As(err, &ge) {
			err = &llm.GatewayError{Provider: e.provider, Op: "generate", Err: err}
		}
		return "", fmt.Errorf("extraction failed: %w", err)
	}
	return raw, nil
}
