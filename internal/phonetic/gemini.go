package phonetic

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiTranscriber asks a Gemini model for pinyin.
type GeminiTranscriber struct {
	client *genai.Client
	model  string
}

// LoadGeminiTranscriber builds the client and checks that the model exists.
func LoadGeminiTranscriber(ctx context.Context, config *Config) (Transcriber, error) {
	if config.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini API key not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if _, err := client.Models.Get(ctx, config.GeminiModel, nil); err != nil {
		return nil, fmt.Errorf("Gemini model %s unavailable: %w", config.GeminiModel, err)
	}

	return &GeminiTranscriber{client: client, model: config.GeminiModel}, nil
}

// Name returns the backend name
func (g *GeminiTranscriber) Name() string {
	return "gemini:" + g.model
}

// Transcribe requests a pinyin rendering of text.
func (g *GeminiTranscriber) Transcribe(ctx context.Context, text string) (string, error) {
	temperature := float32(0)
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(text), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(transcriptionInstruction, genai.RoleUser),
		Temperature:       &temperature,
		MaxOutputTokens:   int32(maxOutputTokens(text)),
	})
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return "", fmt.Errorf("no transcription returned")
	}
	return out, nil
}
