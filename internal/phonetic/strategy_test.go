package phonetic

import (
	"context"
	"errors"
	"testing"

	"codeberg.org/snonux/yiwen/internal/testutil"
	"codeberg.org/snonux/yiwen/internal/translation"
)

func TestInlineBlock(t *testing.T) {
	tests := []struct {
		name    string
		payload translation.Payload
		want    string
		wantOK  bool
	}{
		{"block present", testutil.GtxPayload(`[[["你好"]],[["nǐ hǎo"]]]`), "nǐ hǎo", true},
		{"block is null", testutil.GtxPayload(`[[["你好"]],null,"en"]`), "", false},
		{"block holds number", testutil.GtxPayload(`[[["你好"]],[[7]]]`), "", false},
		{"block holds empty string", testutil.GtxPayload(`[[["你好"]],[["  "]]]`), "", false},
		{"block is flat", testutil.GtxPayload(`[[["你好"]],["nǐ hǎo"]]`), "", false},
		{"object payload", testutil.LingvaPayload(`{"1":[["nǐ hǎo"]]}`), "", false},
		{"empty payload", translation.Payload{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := InlineBlock(context.Background(), "你好", tt.payload)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("InlineBlock() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPerSegment(t *testing.T) {
	tests := []struct {
		name    string
		payload translation.Payload
		want    string
		wantOK  bool
	}{
		{
			name:    "single segment",
			payload: testutil.GtxPayload(`[[["你好",null,null,"nǐ hǎo"]]]`),
			want:    "nǐ hǎo",
			wantOK:  true,
		},
		{
			name: "three segments keep order",
			payload: testutil.GtxPayload(`[[` +
				`["我","I",null,"wǒ"],` +
				`["爱","love",null,"ài"],` +
				`["你","you",null,"nǐ"]]]`),
			want:   "wǒ ài nǐ",
			wantOK: true,
		},
		{
			name:    "segments without hints are skipped",
			payload: testutil.GtxPayload(`[[["你好","hello",null,"nǐ hǎo"],["。",".",null,null],["世界","world",null,"shìjiè"]]]`),
			want:    "nǐ hǎo shìjiè",
			wantOK:  true,
		},
		{
			name:    "no hints",
			payload: testutil.GtxPayload(`[[["你好","hello"]]]`),
			wantOK:  false,
		},
		{
			name:    "primary block not an array",
			payload: testutil.GtxPayload(`["你好"]`),
			wantOK:  false,
		},
		{
			name:    "object payload",
			payload: testutil.LingvaPayload(`{"translation":"你好"}`),
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PerSegment(context.Background(), "", tt.payload)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("PerSegment() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMetadata(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"syllables array", `{"translation":"你好","pronunciation":{"syllables":["nǐ","hǎo"]}}`, "nǐ hǎo", true},
		{"romanization", `{"pronunciation":{"romanization":"nǐ hǎo"}}`, "nǐ hǎo", true},
		{"generic text", `{"pronunciation":{"translation":"Nǐ hǎo"}}`, "Nǐ hǎo", true},
		{"syllables win over romanization", `{"pronunciation":{"romanization":"ni hao","syllables":["nǐ","hǎo"]}}`, "nǐ hǎo", true},
		{"empty syllables fall through", `{"pronunciation":{"syllables":[],"romanization":"nǐ hǎo"}}`, "nǐ hǎo", true},
		{"lingva info section", `{"translation":"你好","info":{"pronunciation":{"translation":"Nǐ hǎo"}}}`, "Nǐ hǎo", true},
		{"top-level section first", `{"pronunciation":{"romanization":"a"},"info":{"pronunciation":{"translation":"b"}}}`, "a", true},
		{"empty section", `{"pronunciation":{}}`, "", false},
		{"section is a string", `{"pronunciation":"nǐ hǎo"}`, "", false},
		{"no section", `{"translation":"你好"}`, "", false},
		{"array payload", `[[["你好"]]]`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Metadata(context.Background(), "你好", testutil.LingvaPayload(tt.raw))
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Metadata() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func readyCapability(t *testing.T, tr Transcriber) *Capability {
	t.Helper()

	c := NewCapability(func(context.Context) (Transcriber, error) { return tr, nil }, nil)
	if err := c.Init(context.Background()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return c
}

func TestLibrary(t *testing.T) {
	payload := testutil.GtxPayload(`[[["你好"]]]`)

	t.Run("ready capability", func(t *testing.T) {
		mock := &testutil.MockTranscriber{Output: " nǐ hǎo "}
		got, ok := Library(readyCapability(t, mock))(context.Background(), "你好", payload)
		if !ok || got != "nǐ hǎo" {
			t.Errorf("Library() = (%q, %v), want (\"nǐ hǎo\", true)", got, ok)
		}
		if len(mock.Calls) != 1 || mock.Calls[0] != "你好" {
			t.Errorf("Expected one call with the translated text, got %v", mock.Calls)
		}
	})

	t.Run("failed capability", func(t *testing.T) {
		c := NewCapability(func(context.Context) (Transcriber, error) { return nil, errors.New("no script") }, nil)
		if _, ok := Library(c)(context.Background(), "你好", payload); ok {
			t.Error("Expected no result from a failed capability")
		}
		if c.State() != StateFailed {
			t.Errorf("Expected failed state, got %s", c.State())
		}
	})

	t.Run("nil capability", func(t *testing.T) {
		if _, ok := Library(nil)(context.Background(), "你好", payload); ok {
			t.Error("Expected no result from a nil capability")
		}
	})

	t.Run("transcriber error", func(t *testing.T) {
		mock := &testutil.MockTranscriber{Err: errors.New("quota")}
		if _, ok := Library(readyCapability(t, mock))(context.Background(), "你好", payload); ok {
			t.Error("Expected no result when transcription fails")
		}
	})

	t.Run("blank output", func(t *testing.T) {
		mock := &testutil.MockTranscriber{Output: "   "}
		if _, ok := Library(readyCapability(t, mock))(context.Background(), "你好", payload); ok {
			t.Error("Expected no result for blank output")
		}
	})
}
