package translation

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

// maxBodySize caps how much of a gateway response is read.
const maxBodySize = 1 << 20

// Gateway is an upstream translation service.
type Gateway interface {
	// Name identifies the gateway in logs and payloads
	Name() string

	// Translate issues exactly one request for req and returns the translated
	// text together with the raw payload. Errors are *Error values.
	Translate(ctx context.Context, req Request) (*Result, error)
}

// Payload is the raw, provider-specific response body. Its shape depends on
// the gateway that produced it and is probed with gjson paths.
type Payload struct {
	Gateway string
	Raw     []byte
}

// Root parses the whole payload.
func (p Payload) Root() gjson.Result {
	return gjson.ParseBytes(p.Raw)
}

// Get looks up a gjson path, e.g. "0.1.3" or "info.pronunciation".
func (p Payload) Get(path string) gjson.Result {
	return gjson.GetBytes(p.Raw, path)
}

// IsEmpty reports whether the payload carries no data at all.
func (p Payload) IsEmpty() bool {
	return len(p.Raw) == 0
}

// Result is a successful resolution.
type Result struct {
	Text    string
	Payload Payload
}

// fetch performs a GET and returns the body of a 2xx response. Transport
// failures and non-2xx statuses are mapped to *Error.
func fetch(ctx context.Context, client *http.Client, gateway, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: MsgRetry, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, transportError(gateway, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, transportError(gateway, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, upstreamError(gateway, resp.StatusCode, body)
	}

	return body, nil
}
