package phonetic

import (
	"context"
	"errors"
	"strings"

	"github.com/mozillazg/go-pinyin"
)

// LibraryTranscriber renders pinyin locally with go-pinyin.
type LibraryTranscriber struct {
	args pinyin.Args
}

// NewLibraryTranscriber returns a transcriber using tone marks and dropping
// every non-Han character.
func NewLibraryTranscriber() *LibraryTranscriber {
	args := pinyin.NewArgs()
	args.Style = pinyin.Tone
	args.Fallback = func(r rune, a pinyin.Args) []string { return nil }
	return &LibraryTranscriber{args: args}
}

// Name returns the backend name
func (l *LibraryTranscriber) Name() string {
	return "go-pinyin"
}

// Transcribe returns space-separated syllables, e.g. "nǐ hǎo" for "你好".
func (l *LibraryTranscriber) Transcribe(_ context.Context, text string) (string, error) {
	syllables := pinyin.LazyPinyin(text, l.args)
	if len(syllables) == 0 {
		return "", errors.New("no Chinese characters to transcribe")
	}
	return strings.Join(syllables, " "), nil
}
