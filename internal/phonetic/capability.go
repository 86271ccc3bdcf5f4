package phonetic

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Transcriber converts Chinese text into tone-marked pinyin: diacritic tone
// marks, one space between syllables, no Chinese characters in the output.
type Transcriber interface {
	// Name identifies the backend in logs
	Name() string

	// Transcribe returns the pinyin rendering of text
	Transcribe(ctx context.Context, text string) (string, error)
}

// Loader initializes a transcription backend.
type Loader func(ctx context.Context) (Transcriber, error)

// State is the capability lifecycle: Unloaded, then Ready or Failed.
type State int32

const (
	StateUnloaded State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrDisabled is returned by the loader of the "none" backend.
var ErrDisabled = errors.New("pinyin transcription disabled")

// Capability is a lazily initialized handle to an optional transcription
// backend. Initialization runs at most once; afterwards the handle is
// read-only. A failed initialization only disables the library strategy.
type Capability struct {
	load   Loader
	logger *zap.Logger

	once        sync.Once
	done        chan struct{}
	state       atomic.Int32
	transcriber Transcriber
	err         error
}

// NewCapability creates an Unloaded capability.
func NewCapability(load Loader, logger *zap.Logger) *Capability {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Capability{
		load:   load,
		logger: logger.Named("phonetic"),
		done:   make(chan struct{}),
	}
}

// Init loads the backend once. Concurrent and later calls wait for the first
// one and return its error.
func (c *Capability) Init(ctx context.Context) error {
	c.once.Do(func() {
		defer close(c.done)

		if c.load == nil {
			c.fail(ErrDisabled)
			return
		}

		t, err := c.load(ctx)
		if err == nil && t == nil {
			err = errors.New("loader returned no transcriber")
		}
		if err != nil {
			c.fail(err)
			return
		}

		c.transcriber = t
		c.state.Store(int32(StateReady))
		c.logger.Debug("transcription backend ready", zap.String("backend", t.Name()))
	})
	return c.err
}

func (c *Capability) fail(err error) {
	c.err = err
	c.state.Store(int32(StateFailed))
	if errors.Is(err, ErrDisabled) {
		c.logger.Debug("transcription backend disabled")
		return
	}
	c.logger.Warn("transcription backend unavailable", zap.Error(err))
}

// Wait blocks until initialization has finished or ctx is done. It does not
// start initialization.
func (c *Capability) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State returns the current lifecycle state.
func (c *Capability) State() State {
	if c == nil {
		return StateFailed
	}
	return State(c.state.Load())
}

// Get initializes the capability on first use and returns the transcriber
// when it is Ready. A nil capability is never ready.
func (c *Capability) Get(ctx context.Context) (Transcriber, bool) {
	if c == nil {
		return nil, false
	}

	select {
	case <-c.done:
	default:
		// Initialization outlives the request that triggered it.
		go c.Init(context.WithoutCancel(ctx))
		if err := c.Wait(ctx); err != nil && ctx.Err() != nil {
			return nil, false
		}
	}

	if c.State() != StateReady {
		return nil, false
	}
	return c.transcriber, true
}

var (
	processOnce       sync.Once
	processCapability *Capability
)

// ProcessCapability returns the process-wide capability, creating it from
// config on the first call. Later calls return the same handle and ignore
// their arguments.
func ProcessCapability(config *Config, logger *zap.Logger) *Capability {
	processOnce.Do(func() {
		load, err := NewLoader(config)
		if err != nil {
			load = func(context.Context) (Transcriber, error) { return nil, err }
		}
		processCapability = NewCapability(load, logger)
	})
	return processCapability
}
