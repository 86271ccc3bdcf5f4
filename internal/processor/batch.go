package processor

import (
	"context"

	"codeberg.org/snonux/yiwen/internal/batch"
	"codeberg.org/snonux/yiwen/internal/translation"
)

// Summary counts the outcomes of a batch run.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	// NoPinyin counts Chinese translations without pinyin
	NoPinyin int
}

// ProcessBatch translates entries one after another, calling emit for each
// outcome. Entries without a target override use targetLang. It stops early
// when ctx is canceled.
func (p *Processor) ProcessBatch(ctx context.Context, entries []batch.Entry, sourceLang, targetLang string, emit func(batch.Entry, Outcome)) Summary {
	var summary Summary

	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}

		target := targetLang
		if entry.TargetLang != "" {
			target = entry.TargetLang
		}

		outcome := p.Translate(ctx, translation.NewRequest(entry.Text, sourceLang, target))
		summary.Total++
		if outcome.OK() {
			summary.Succeeded++
			if outcome.Success.Notice != "" {
				summary.NoPinyin++
			}
		} else {
			summary.Failed++
		}

		if emit != nil {
			emit(entry, outcome)
		}
	}

	return summary
}
