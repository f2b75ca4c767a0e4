package animation

import (
	"context"
	"sync"
	"time"
)

// Config contains fade timing values.
type Config struct {
	FadeOut       time.Duration
	FadeIn        time.Duration
	FrameInterval time.Duration
}

// Engine drives opacity fades for the timer view.
type Engine struct {
	mu     sync.Mutex
	config Config
	apply  func(alpha float64)
	cancel context.CancelFunc
}

// New creates a new animation engine. apply receives opacity values in [0, 1].
func New(config Config, apply func(alpha float64)) *Engine {
	if config.FrameInterval <= 0 {
		config.FrameInterval = DefaultConfig().FrameInterval
	}
	return &Engine{
		config: config,
		apply:  apply,
	}
}

// Fade dims the view to transparent, calls midpoint, and brings it back.
// A running fade is cancelled first. The returned channel closes when the
// fade finishes or is cancelled.
func (engine *Engine) Fade(ctx context.Context, midpoint func()) <-chan struct{} {
	return engine.start(ctx, func(runCtx context.Context) {
		if !engine.ramp(runCtx, 1, 0, engine.config.FadeOut) {
			return
		}
		if midpoint != nil {
			midpoint()
		}
		engine.ramp(runCtx, 0, 1, engine.config.FadeIn)
	})
}

// Stop terminates any active fade and restores full opacity.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
	engine.mu.Unlock()
	engine.apply(1)
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) <-chan struct{} {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()
		run(runCtx)
	}()
	return done
}

// ramp moves opacity from one value to another over duration, one frame at a time.
func (engine *Engine) ramp(ctx context.Context, from, to float64, duration time.Duration) bool {
	frames := int(duration / engine.config.FrameInterval)
	if frames < 1 {
		frames = 1
	}
	for frame := 1; frame <= frames; frame++ {
		if !sleepWithContext(ctx, engine.config.FrameInterval) {
			return false
		}
		engine.apply(from + (to-from)*float64(frame)/float64(frames))
	}
	return true
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
