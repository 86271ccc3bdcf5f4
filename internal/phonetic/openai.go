package phonetic

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAITranscriber asks an OpenAI chat model for pinyin.
type OpenAITranscriber struct {
	client *openai.Client
	model  string
}

// NewOpenAITranscriber creates a transcriber for an existing client.
func NewOpenAITranscriber(client *openai.Client, model string) *OpenAITranscriber {
	return &OpenAITranscriber{client: client, model: model}
}

// LoadOpenAITranscriber builds the client and verifies the key by listing
// models, so a bad key fails initialization instead of every request.
func LoadOpenAITranscriber(ctx context.Context, config *Config) (Transcriber, error) {
	if config.OpenAIKey == "" {
		return nil, fmt.Errorf("OpenAI API key not configured")
	}

	clientConfig := openai.DefaultConfig(config.OpenAIKey)
	if config.OpenAIBaseURL != "" {
		clientConfig.BaseURL = config.OpenAIBaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	if _, err := client.ListModels(ctx); err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	return NewOpenAITranscriber(client, config.OpenAIModel), nil
}

// Name returns the backend name
func (o *OpenAITranscriber) Name() string {
	return "openai:" + o.model
}

// Transcribe requests a pinyin rendering of text.
func (o *OpenAITranscriber) Transcribe(ctx context.Context, text string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: transcriptionInstruction,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		MaxTokens:   maxOutputTokens(text),
		Temperature: 0,
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no transcription returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
