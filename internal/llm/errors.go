package llm

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey     = errors.New("api key is required")
	ErrUnknownProvider   = errors.New("unknown provider")
	ErrEmptyResponse     = errors.New("empty response from model")
	ErrUpstreamStatus    = errors.New("unexpected upstream status")
	ErrMalformedResponse = errors.New("malformed upstream response")
)

// GatewayError wraps every failure of a backend call. It is fatal to a run.
type GatewayError struct {
	Provider   string
	Op         string
	StatusCode int
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: status %d: %v", e.Provider, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

func gatewayErr(provider, op string, err error) *GatewayError {
	return &GatewayError{Provider: provider, Op: op, Err: err}
}

// IsGatewayError reports whether err carries a *GatewayError.
func IsGatewayError(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}
