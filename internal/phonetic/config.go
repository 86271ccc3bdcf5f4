package phonetic

import (
	"context"
	"fmt"
)

// Transcription backends.
const (
	BackendLibrary = "library"
	BackendOpenAI  = "openai"
	BackendGemini  = "gemini"
	BackendNone    = "none"
)

// Config selects and configures the transcription backend.
type Config struct {
	Backend string // "library", "openai", "gemini" or "none"

	// OpenAI-specific settings
	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string // optional, for OpenAI-compatible servers

	// Gemini-specific settings
	GeminiKey   string
	GeminiModel string
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Backend:     BackendLibrary,
		OpenAIModel: "gpt-4o-mini",
		GeminiModel: "gemini-2.0-flash",
	}
}

// NewLoader returns the loader for the configured backend.
func NewLoader(config *Config) (Loader, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Backend {
	case BackendLibrary, "":
		return func(context.Context) (Transcriber, error) {
			return NewLibraryTranscriber(), nil
		}, nil

	case BackendOpenAI:
		return func(ctx context.Context) (Transcriber, error) {
			return LoadOpenAITranscriber(ctx, config)
		}, nil

	case BackendGemini:
		return func(ctx context.Context) (Transcriber, error) {
			return LoadGeminiTranscriber(ctx, config)
		}, nil

	case BackendNone:
		return func(context.Context) (Transcriber, error) {
			return nil, ErrDisabled
		}, nil

	default:
		return nil, fmt.Errorf("unknown pinyin backend: %s", config.Backend)
	}
}
