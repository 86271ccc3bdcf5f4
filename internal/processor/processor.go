package processor

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"codeberg.org/snonux/yiwen/internal/translation"
)

// Resolver produces a translation for a request.
type Resolver interface {
	Resolve(ctx context.Context, req translation.Request) (*translation.Result, error)
}

// Annotator produces optional pinyin for a translation.
type Annotator interface {
	Annotate(ctx context.Context, text, targetLang string, payload translation.Payload) (string, bool)
}

// Processor runs one resolution at a time. Starting a new one cancels the
// request still in flight.
type Processor struct {
	resolver  Resolver
	annotator Annotator
	logger    *zap.Logger

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
}

// NewProcessor creates a new processor
func NewProcessor(resolver Resolver, annotator Annotator, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		resolver:  resolver,
		annotator: annotator,
		logger:    logger.Named("processor"),
	}
}

// Translate resolves req and annotates the result. It always returns exactly
// one outcome; a call superseded by a newer one returns a canceled Failure.
func (p *Processor) Translate(ctx context.Context, req translation.Request) Outcome {
	ctx, id := p.begin(ctx)
	defer p.end(id)

	result, err := p.resolver.Resolve(ctx, req)
	if err != nil {
		if !p.current(id) {
			return canceled()
		}
		return failure(err)
	}

	annotation, ok := p.annotator.Annotate(ctx, result.Text, req.TargetLang, result.Payload)
	if !p.current(id) || ctx.Err() != nil {
		return canceled()
	}

	success := &Success{Translation: result.Text}
	switch {
	case ok:
		success.Annotation = annotation
	case translation.IsChinese(req.TargetLang) && result.Text != "":
		success.Notice = NoticePinyinUnavailable
	}

	p.logger.Debug("translation complete",
		zap.String("target", req.TargetLang),
		zap.Bool("pinyin", ok))

	return Outcome{Success: success}
}

func (p *Processor) begin(parent context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.logger.Debug("superseding in-flight translation", zap.Uint64("request", p.seq))
		p.cancel()
	}
	p.seq++
	p.cancel = cancel
	return ctx, p.seq
}

func (p *Processor) end(id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.seq == id && p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Processor) current(id uint64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seq == id
}
