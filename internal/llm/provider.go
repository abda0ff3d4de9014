// Package llm is the model gateway: one capability, Generate, implemented
// per backend. The pipeline depends only on the Gateway interface.
package llm

import (
	"context"
	"time"
)

// Gateway turns a prompt into model text.
type Gateway interface {
	// Generate returns the completion for prompt. Failures are *GatewayError.
	Generate(ctx context.Context, prompt string) (string, error)
}

// GatewayFunc adapts a plain function to Gateway.
type GatewayFunc func(ctx context.Context, prompt string) (string, error)

func (f GatewayFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// NameOf returns the backend name when the gateway exposes one.
func NameOf(g Gateway) string {
	if named, ok := g.(interface{ Name() string }); ok {
		return named.Name()
	}
	return "custom"
}

// DefaultTimeout bounds a single HTTP round trip to a backend.
const DefaultTimeout = 30 * time.Second

const extractionSystemPrompt = "Extract structured legal intake JSON only."
