package testutil

import (
	"context"
	"sync"

	"codeberg.org/snonux/yiwen/internal/translation"
)

// MockGateway mocks a translation gateway and records every request
type MockGateway struct {
	GatewayName string
	Result      *translation.Result
	Err         error

	mu    sync.Mutex
	Calls []translation.Request
}

// Name returns the mocked gateway name
func (m *MockGateway) Name() string {
	if m.GatewayName == "" {
		return "mock"
	}
	return m.GatewayName
}

// Translate records the request and returns the configured result
func (m *MockGateway) Translate(ctx context.Context, req translation.Request) (*translation.Result, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result == nil {
		return &translation.Result{Text: "mock translation of " + req.Text}, nil
	}
	// Copy so callers cannot mutate the fixture between calls
	res := *m.Result
	return &res, nil
}

// CallCount returns the number of recorded requests
func (m *MockGateway) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// MockTranscriber mocks a pinyin transcription backend
type MockTranscriber struct {
	Output string
	Err    error

	mu    sync.Mutex
	Calls []string
}

// Name returns the mocked backend name
func (m *MockTranscriber) Name() string {
	return "mock"
}

// Transcribe records the text and returns the configured output
func (m *MockTranscriber) Transcribe(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, text)
	m.mu.Unlock()

	if m.Err != nil {
		return "", m.Err
	}
	return m.Output, nil
}

// CallCount returns the number of recorded transcriptions
func (m *MockTranscriber) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// GtxPayload wraps a raw gtx body as a payload
func GtxPayload(raw string) translation.Payload {
	return translation.Payload{Gateway: translation.BestEffortGatewayName, Raw: []byte(raw)}
}

// LingvaPayload wraps a raw Lingva body as a payload
func LingvaPayload(raw string) translation.Payload {
	return translation.Payload{Gateway: translation.GenericGatewayName, Raw: []byte(raw)}
}
