package phonetic

import (
	"context"
	"strings"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"codeberg.org/snonux/yiwen/internal/translation"
)

// Strategy names, in default priority order.
const (
	StrategyInlineBlock = "inline-block"
	StrategyPerSegment  = "per-segment"
	StrategyLibrary     = "library"
	StrategyMetadata    = "metadata"
)

// StrategyFunc derives a transcription for text. ok is false when the source
// has nothing to offer.
type StrategyFunc func(ctx context.Context, text string, payload translation.Payload) (pinyin string, ok bool)

// Strategy is one named entry in the annotation chain.
type Strategy struct {
	Name  string
	Apply StrategyFunc
}

// DefaultStrategies returns the full chain. capability may be nil, in which
// case the library strategy never matches.
func DefaultStrategies(capability *Capability) []Strategy {
	return []Strategy{
		{Name: StrategyInlineBlock, Apply: InlineBlock},
		{Name: StrategyPerSegment, Apply: PerSegment},
		{Name: StrategyLibrary, Apply: Library(capability)},
		{Name: StrategyMetadata, Apply: Metadata},
	}
}

// InlineBlock reads a whole-text transcription from a secondary top-level
// array, i.e. [1][0][0].
func InlineBlock(_ context.Context, _ string, payload translation.Payload) (string, bool) {
	if !payload.Root().IsArray() {
		return "", false
	}
	block := payload.Get("1")
	if !block.IsArray() || !block.Get("0").IsArray() {
		return "", false
	}
	return nonEmptyString(block.Get("0.0"))
}

// PerSegment collects the hint at index 3 of every segment under [0] and
// joins them with a single space. Segments without a string hint are skipped.
func PerSegment(_ context.Context, _ string, payload translation.Payload) (string, bool) {
	if !payload.Root().IsArray() {
		return "", false
	}
	segments := payload.Get("0")
	if !segments.IsArray() {
		return "", false
	}

	var hints []string
	for _, segment := range segments.Array() {
		if !segment.IsArray() {
			continue
		}
		if hint, ok := nonEmptyString(segment.Get("3")); ok {
			hints = append(hints, hint)
		}
	}
	if len(hints) == 0 {
		return "", false
	}
	return strings.Join(hints, " "), true
}

// Library asks the capability's transcriber, provided it is Ready.
func Library(capability *Capability) StrategyFunc {
	return func(ctx context.Context, text string, _ translation.Payload) (string, bool) {
		transcriber, ok := capability.Get(ctx)
		if !ok {
			return "", false
		}

		out, err := transcriber.Transcribe(ctx, text)
		if err != nil {
			capability.logger.Info("transcription failed",
				zap.String("backend", transcriber.Name()), zap.Error(err))
			return "", false
		}
		out = strings.TrimSpace(out)
		return out, out != ""
	}
}

// metadataSections are probed by Metadata, in order.
var metadataSections = []string{"pronunciation", "info.pronunciation"}

// Metadata probes a dedicated pronunciation section: an array of syllables,
// then a romanization string, then a generic phonetic text string.
func Metadata(_ context.Context, _ string, payload translation.Payload) (string, bool) {
	if !payload.Root().IsObject() {
		return "", false
	}

	for _, path := range metadataSections {
		section := payload.Get(path)
		if !section.IsObject() {
			continue
		}

		if syllables := joinStrings(section.Get("syllables")); syllables != "" {
			return syllables, true
		}
		if s, ok := nonEmptyString(section.Get("romanization")); ok {
			return s, true
		}
		if s, ok := nonEmptyString(section.Get("translation")); ok {
			return s, true
		}
	}
	return "", false
}

func nonEmptyString(r gjson.Result) (string, bool) {
	if r.Type != gjson.String {
		return "", false
	}
	s := strings.TrimSpace(r.Str)
	return s, s != ""
}

func joinStrings(r gjson.Result) string {
	if !r.IsArray() {
		return ""
	}
	var parts []string
	for _, item := range r.Array() {
		if s, ok := nonEmptyString(item); ok {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
