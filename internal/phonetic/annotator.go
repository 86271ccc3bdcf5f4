package phonetic

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"codeberg.org/snonux/yiwen/internal/translation"
)

// Annotator runs the strategy chain for Chinese targets.
type Annotator struct {
	strategies []Strategy
	logger     *zap.Logger
}

// NewAnnotator creates an annotator trying strategies in order.
func NewAnnotator(strategies []Strategy, logger *zap.Logger) *Annotator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Annotator{
		strategies: strategies,
		logger:     logger.Named("annotator"),
	}
}

// Annotate returns the first transcription any strategy produces. Targets
// other than Chinese, and empty text, return absent without consulting any
// strategy.
func (a *Annotator) Annotate(ctx context.Context, text, targetLang string, payload translation.Payload) (string, bool) {
	if !translation.IsChinese(targetLang) || strings.TrimSpace(text) == "" {
		return "", false
	}

	for _, s := range a.strategies {
		if ctx.Err() != nil {
			return "", false
		}
		if pinyin, ok := s.Apply(ctx, text, payload); ok {
			a.logger.Debug("pinyin resolved",
				zap.String("strategy", s.Name),
				zap.String("gateway", payload.Gateway))
			return pinyin, true
		}
	}

	a.logger.Info("no pinyin available", zap.String("gateway", payload.Gateway))
	return "", false
}
