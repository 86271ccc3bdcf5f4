package translation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerSettings configures the circuit breaker placed in front of a gateway.
type BreakerSettings struct {
	// ConsecutiveFailures opens the breaker; zero disables the breaker
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again
	OpenTimeout time.Duration
}

// breakerGateway short-circuits a gateway that keeps failing. It never
// retries: each Translate is still at most one upstream request. While open it
// skips the request and repeats the kind and message of the last failure.
type breakerGateway struct {
	next Gateway
	cb   *gobreaker.CircuitBreaker

	mu   sync.Mutex
	last *Error
}

// WithBreaker wraps g in a circuit breaker. Only transport and upstream
// errors count as failures.
func WithBreaker(g Gateway, settings BreakerSettings) Gateway {
	if settings.ConsecutiveFailures == 0 {
		return g
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        g.Name(),
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			switch KindOf(err) {
			case KindTransport, KindUpstream:
				return false
			default:
				return true
			}
		},
	})

	return &breakerGateway{next: g, cb: cb}
}

func (b *breakerGateway) Name() string {
	return b.next.Name()
}

func (b *breakerGateway) Translate(ctx context.Context, req Request) (*Result, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		result, err := b.next.Translate(ctx, req)
		if err != nil {
			b.record(err)
		}
		return result, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, b.shortCircuit(err)
		}
		return nil, err
	}
	return out.(*Result), nil
}

// record keeps the last failure that counts against the breaker.
func (b *breakerGateway) record(err error) {
	var e *Error
	if !errors.As(err, &e) {
		return
	}
	switch e.Kind {
	case KindTransport, KindUpstream:
		b.mu.Lock()
		b.last = e
		b.mu.Unlock()
	}
}

func (b *breakerGateway) shortCircuit(err error) *Error {
	b.mu.Lock()
	last := b.last
	b.mu.Unlock()

	if last == nil {
		return &Error{Kind: KindTransport, Message: MsgRetry, Err: fmt.Errorf("%s: %w", b.Name(), err)}
	}
	return &Error{
		Kind:    last.Kind,
		Message: last.Message,
		Err:     fmt.Errorf("%s: %w: last failure: %w", b.Name(), err, last.Err),
	}
}

// State exposes the breaker state for diagnostics.
func (b *breakerGateway) State() gobreaker.State {
	return b.cb.State()
}
