package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// postJSON sends body to url and decodes a 200 response into out.
func postJSON(ctx context.Context, client *http.Client, provider, url string, headers map[string]string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return gatewayErr(provider, "encode", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return gatewayErr(provider, "request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return gatewayErr(provider, "request", fmt.Errorf("%s request failed: %w", provider, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &GatewayError{
			Provider:   provider,
			Op:         "generate",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: %s", ErrUpstreamStatus, bytes.TrimSpace(data)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return gatewayErr(provider, "decode", fmt.Errorf("%w: %v", ErrMalformedResponse, err))
	}
	return nil
}
