package testutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// GatewayServer is a fake upstream gateway that answers every request with a
// fixed status and body and records what it received
type GatewayServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []*http.Request
}

// NewGatewayServer starts a fake gateway that is closed when the test ends
func NewGatewayServer(t *testing.T, status int, body string) *GatewayServer {
	t.Helper()

	gs := &GatewayServer{}
	gs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gs.mu.Lock()
		gs.requests = append(gs.requests, r.Clone(r.Context()))
		gs.mu.Unlock()

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(gs.Close)

	return gs
}

// Hits returns the number of requests received
func (gs *GatewayServer) Hits() int {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return len(gs.requests)
}

// LastRequest returns the most recent request, or nil
func (gs *GatewayServer) LastRequest() *http.Request {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	if len(gs.requests) == 0 {
		return nil
	}
	return gs.requests[len(gs.requests)-1]
}
