package translation_test

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"codeberg.org/snonux/yiwen/internal/testutil"
	"codeberg.org/snonux/yiwen/internal/translation"
)

func newTestResolver(t *testing.T, generic, bestEffort translation.Gateway, route string) *translation.Resolver {
	t.Helper()

	r, err := translation.NewResolverWithGateways(generic, bestEffort, route, zap.NewNop())
	if err != nil {
		t.Fatalf("NewResolverWithGateways failed: %v", err)
	}
	return r
}

func TestNewResolverWithGateways_Validation(t *testing.T) {
	generic := &testutil.MockGateway{}

	if _, err := translation.NewResolverWithGateways(nil, generic, translation.RouteGeneric, nil); err == nil {
		t.Error("Expected error for missing generic gateway")
	}
	if _, err := translation.NewResolverWithGateways(generic, nil, translation.RouteBestEffort, nil); err == nil {
		t.Error("Expected error for missing best-effort gateway")
	}
	if _, err := translation.NewResolverWithGateways(generic, generic, "deepl", nil); err == nil {
		t.Error("Expected error for unknown route")
	}
	if _, err := translation.NewResolverWithGateways(generic, nil, translation.RouteGeneric, nil); err != nil {
		t.Errorf("Unexpected error for generic-only resolver: %v", err)
	}
}

func TestResolve_InvalidInputMakesNoCalls(t *testing.T) {
	tests := []struct {
		name    string
		req     translation.Request
		wantMsg string
	}{
		{"empty text", translation.NewRequest("", "en", "zh"), translation.MsgEmptyText},
		{"whitespace only", translation.NewRequest("   \n\t", "auto", "zh"), translation.MsgEmptyText},
		{"same language zh", translation.NewRequest("你好", "zh", "zh"), translation.MsgSameLanguage},
		{"same language en", translation.NewRequest("hello", "en", "en"), translation.MsgSameLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generic := &testutil.MockGateway{GatewayName: "generic"}
			bestEffort := &testutil.MockGateway{GatewayName: "besteffort"}
			r := newTestResolver(t, generic, bestEffort, translation.RouteBestEffort)

			_, err := r.Resolve(context.Background(), tt.req)

			var e *translation.Error
			if !errors.As(err, &e) {
				t.Fatalf("Expected *translation.Error, got %v", err)
			}
			if e.Kind != translation.KindInvalidInput {
				t.Errorf("Expected invalid input, got %s", e.Kind)
			}
			if e.Message != tt.wantMsg {
				t.Errorf("Expected message %q, got %q", tt.wantMsg, e.Message)
			}
			if calls := generic.CallCount() + bestEffort.CallCount(); calls != 0 {
				t.Errorf("Expected 0 gateway calls, got %d", calls)
			}
		})
	}
}

func TestResolve_GatewaySelection(t *testing.T) {
	tests := []struct {
		name        string
		route       string
		target      string
		wantGateway string
	}{
		{"zh via best effort", translation.RouteBestEffort, "zh", "besteffort"},
		{"zh-TW via best effort", translation.RouteBestEffort, "zh-TW", "besteffort"},
		{"zh via generic route", translation.RouteGeneric, "zh", "generic"},
		{"de always generic", translation.RouteBestEffort, "de", "generic"},
		{"en always generic", translation.RouteGeneric, "en", "generic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generic := &testutil.MockGateway{GatewayName: "generic"}
			bestEffort := &testutil.MockGateway{GatewayName: "besteffort"}
			r := newTestResolver(t, generic, bestEffort, tt.route)

			if _, err := r.Resolve(context.Background(), translation.NewRequest("hello", "auto", tt.target)); err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}

			used := map[string]int{"generic": generic.CallCount(), "besteffort": bestEffort.CallCount()}
			for name, calls := range used {
				want := 0
				if name == tt.wantGateway {
					want = 1
				}
				if calls != want {
					t.Errorf("Expected %d calls to %s, got %d", want, name, calls)
				}
			}
			if got := r.Gateway(tt.target).Name(); got != tt.wantGateway {
				t.Errorf("Gateway(%q) = %s, want %s", tt.target, got, tt.wantGateway)
			}
		})
	}
}

func TestResolve_BestEffortHelloExample(t *testing.T) {
	srv := testutil.NewGatewayServer(t, http.StatusOK, `[[["你好",null,null,"nǐ hǎo"]]]`)

	cfg := translation.DefaultConfig()
	cfg.GenericURL = "http://127.0.0.1:1"
	cfg.BestEffortURL = srv.URL
	r, err := translation.NewResolver(cfg, nil)
	if err != nil {
		t.Fatalf("NewResolver failed: %v", err)
	}

	res, err := r.Resolve(context.Background(), translation.NewRequest("hello", "en", "zh"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Text != "你好" {
		t.Errorf("Expected '你好', got %q", res.Text)
	}
	if got := res.Payload.Get("0.0.3").String(); got != "nǐ hǎo" {
		t.Errorf("Expected payload to keep the pinyin hint, got %q", got)
	}
	if srv.Hits() != 1 {
		t.Errorf("Expected exactly 1 request, got %d", srv.Hits())
	}
}

func TestResolve_GenericPassesTextThrough(t *testing.T) {
	srv := testutil.NewGatewayServer(t, http.StatusOK, `{"translation":"  Guten Tag!  "}`)

	cfg := translation.DefaultConfig()
	cfg.GenericURL = srv.URL + "/api/v1"
	r, err := translation.NewResolver(cfg, nil)
	if err != nil {
		t.Fatalf("NewResolver failed: %v", err)
	}

	res, err := r.Resolve(context.Background(), translation.NewRequest("good day", "en", "de"))
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if res.Text != "  Guten Tag!  " {
		t.Errorf("Expected provider text unchanged, got %q", res.Text)
	}
	if path := srv.LastRequest().URL.Path; path != "/api/v1/en/de/good day" {
		t.Errorf("Unexpected request path %q", path)
	}
}

func TestResolve_FailureKinds(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind translation.ErrorKind
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, translation.KindUpstream},
		{"not found", http.StatusNotFound, `not found`, translation.KindUpstream},
		{"not json", http.StatusOK, `<html>captcha</html>`, translation.KindUnexpectedResponse},
		{"missing field", http.StatusOK, `{"result":"你好"}`, translation.KindUnexpectedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testutil.NewGatewayServer(t, tt.status, tt.body)
			core, logs := observer.New(zapcore.WarnLevel)

			cfg := translation.DefaultConfig()
			cfg.GenericURL = srv.URL
			cfg.ChineseRoute = translation.RouteGeneric
			r, err := translation.NewResolver(cfg, zap.New(core))
			if err != nil {
				t.Fatalf("NewResolver failed: %v", err)
			}

			_, err = r.Resolve(context.Background(), translation.NewRequest("hello", "en", "zh"))

			var e *translation.Error
			if !errors.As(err, &e) {
				t.Fatalf("Expected *translation.Error, got %v", err)
			}
			if e.Kind != tt.wantKind {
				t.Errorf("Expected kind %s, got %s", tt.wantKind, e.Kind)
			}
			if e.Message != translation.MsgRetry {
				t.Errorf("Expected generic retry message, got %q", e.Message)
			}
			if logs.Len() != 1 {
				t.Fatalf("Expected 1 warning logged, got %d", logs.Len())
			}
			if tt.wantKind == translation.KindUpstream {
				fields := logs.All()[0].ContextMap()
				if fields["body"] != tt.body {
					t.Errorf("Expected raw body %q to be logged, got %v", tt.body, fields["body"])
				}
			}
		})
	}
}

func TestResolve_TransportError(t *testing.T) {
	cfg := translation.DefaultConfig()
	cfg.GenericURL = "http://127.0.0.1:1"
	cfg.Timeout = time.Second
	r, err := translation.NewResolver(cfg, nil)
	if err != nil {
		t.Fatalf("NewResolver failed: %v", err)
	}

	_, err = r.Resolve(context.Background(), translation.NewRequest("hello", "en", "fr"))
	if translation.KindOf(err) != translation.KindTransport {
		t.Errorf("Expected transport error, got %v", err)
	}
}

func TestResolve_ForeignGatewayErrorIsNormalized(t *testing.T) {
	generic := &testutil.MockGateway{Err: errors.New("socket closed")}
	r := newTestResolver(t, generic, nil, translation.RouteGeneric)

	_, err := r.Resolve(context.Background(), translation.NewRequest("hello", "en", "fr"))
	if translation.KindOf(err) != translation.KindTransport {
		t.Errorf("Expected transport error, got %v", err)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	srv := testutil.NewGatewayServer(t, http.StatusOK, `[[["你好",null,null,"nǐ hǎo"]]]`)

	cfg := translation.DefaultConfig()
	cfg.BestEffortURL = srv.URL
	r, err := translation.NewResolver(cfg, nil)
	if err != nil {
		t.Fatalf("NewResolver failed: %v", err)
	}

	req := translation.NewRequest("hello", "en", "zh")
	first, err1 := r.Resolve(context.Background(), req)
	second, err2 := r.Resolve(context.Background(), req)

	if err1 != nil || err2 != nil {
		t.Fatalf("Resolve failed: %v / %v", err1, err2)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical results, got %+v and %+v", first, second)
	}
}

func TestResolve_RepeatedUpstreamFailureKeepsKind(t *testing.T) {
	srv := testutil.NewGatewayServer(t, http.StatusInternalServerError, `{"error":"boom"}`)

	cfg := translation.DefaultConfig()
	cfg.GenericURL = srv.URL
	r, err := translation.NewResolver(cfg, nil)
	if err != nil {
		t.Fatalf("NewResolver failed: %v", err)
	}

	req := translation.NewRequest("hello", "en", "de")
	calls := int(cfg.Breaker.ConsecutiveFailures) + 2
	for i := 0; i < calls; i++ {
		_, err := r.Resolve(context.Background(), req)
		if kind := translation.KindOf(err); kind != translation.KindUpstream {
			t.Fatalf("Call %d: expected %s, got %s (%v)", i+1, translation.KindUpstream, kind, err)
		}
	}

	if hits := srv.Hits(); hits != int(cfg.Breaker.ConsecutiveFailures) {
		t.Errorf("Expected open breaker to skip requests after %d hits, got %d", cfg.Breaker.ConsecutiveFailures, hits)
	}
}
