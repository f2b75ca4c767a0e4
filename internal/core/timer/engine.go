package timer

import (
	"log/slog"
	"sync"
	"time"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/settings"
)

// Config contains runtime options for Engine.
type Config struct {
	TickInterval time.Duration
	Scheduler    Scheduler
	ResetPolicy  ResetPolicy
	Logger       *slog.Logger
}

// Engine is the pomodoro state machine. It counts down the current mode,
// moves between work and break phases, and counts completed work cycles.
type Engine struct {
	mu          sync.Mutex
	store       *settings.Store
	options     Config
	mode        model.Mode
	remaining   int
	running     bool
	paused      bool
	completed   int
	generation  uint64
	cancelTick  func()
	events      []chan Event
	unsubscribe func()
	closed      bool
}

// New creates an Engine idle in Work mode with the store's work duration.
func New(store *settings.Store, options Config) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Scheduler == nil {
		options.Scheduler = SystemScheduler
	}
	if options.ResetPolicy == "" {
		options.ResetPolicy = ResetRestartSession
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	engine := &Engine{
		store:     store,
		options:   options,
		mode:      model.ModeWork,
		remaining: store.Get().WorkSeconds,
		paused:    true,
	}
	engine.unsubscribe = store.Subscribe(engine.onSettingsChanged)
	return engine
}

// Subscribe registers a new observer channel.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		close(ch)
		return ch
	}
	engine.events = append(engine.events, ch)
	return ch
}

// Start begins or resumes the countdown. It does nothing while already ticking.
func (engine *Engine) Start() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.startLocked()
}

// TogglePlayPause starts an idle timer, or flips pause on a started one.
func (engine *Engine) TogglePlayPause() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return
	}
	if !engine.running {
		engine.startLocked()
		return
	}

	if engine.paused {
		engine.paused = false
		engine.scheduleLocked()
	} else {
		engine.paused = true
		engine.cancelLocked()
	}
	engine.options.Logger.Debug("timer toggled", "mode", engine.mode, "paused", engine.paused)
	engine.emitLocked(EventStateChange, "")
}

// Reset stops the countdown and refills it according to the reset policy.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return
	}
	engine.stopLocked()
	if engine.options.ResetPolicy == ResetRestartSession {
		engine.mode = model.ModeWork
		engine.completed = 0
	}
	engine.remaining = engine.durationForLocked(engine.mode)
	engine.options.Logger.Debug("timer reset", "mode", engine.mode, "policy", engine.options.ResetPolicy)
	engine.emitLocked(EventStateChange, "")
}

// Skip ends the current phase immediately and stops on the next one.
func (engine *Engine) Skip() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return
	}
	engine.advanceLocked()
	engine.stopLocked()
	engine.emitLocked(EventStateChange, "")
}

// Tick advances the countdown by one second. It does nothing unless the timer
// is running and not paused. The tick that brings the countdown to zero moves
// to the next phase and stops the timer.
func (engine *Engine) Tick() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.tickLocked()
}

// Snapshot returns a copy of the current state.
func (engine *Engine) Snapshot() Snapshot {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.snapshotLocked()
}

// Mode returns the current phase.
func (engine *Engine) Mode() model.Mode {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.mode
}

// RemainingSeconds returns the countdown value.
func (engine *Engine) RemainingSeconds() int {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.remaining
}

// IsRunning reports whether the timer has been started.
func (engine *Engine) IsRunning() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.running
}

// IsPaused reports whether the countdown is halted.
func (engine *Engine) IsPaused() bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.paused
}

// CompletedCycles returns the work phases finished since the last long break or reset.
func (engine *Engine) CompletedCycles() int {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.completed
}

// Settings returns the settings the engine currently runs on.
func (engine *Engine) Settings() model.Settings {
	return engine.store.Get()
}

// Close stops ticking, detaches from the settings store and closes observers.
func (engine *Engine) Close() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.closed = true
	engine.cancelLocked()
	unsubscribe := engine.unsubscribe
	engine.unsubscribe = nil
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	for _, ch := range events {
		close(ch)
	}
}

func (engine *Engine) startLocked() {
	if engine.closed || (engine.running && !engine.paused) {
		return
	}
	engine.running = true
	engine.paused = false
	engine.scheduleLocked()
	engine.options.Logger.Debug("timer started", "mode", engine.mode, "remaining", engine.remaining)
	engine.emitLocked(EventStateChange, "")
}

func (engine *Engine) tickLocked() {
	if engine.closed || !engine.running || engine.paused {
		return
	}

	if engine.remaining > 0 {
		engine.remaining--
	}
	if engine.remaining > 0 {
		engine.emitLocked(EventProgress, "")
		return
	}

	finished := engine.mode
	engine.advanceLocked()
	engine.stopLocked()
	engine.options.Logger.Info("phase complete", "finished", finished, "next", engine.mode, "completed_cycles", engine.completed)
	engine.emitLocked(EventPhaseComplete, finished)
}

func (engine *Engine) scheduledTick(generation uint64) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if generation != engine.generation {
		return
	}
	engine.tickLocked()
}

func (engine *Engine) advanceLocked() {
	current := engine.store.Get()
	next, completed := NextPhase(engine.mode, engine.completed, current.CyclesBeforeLongBreak)
	engine.options.Logger.Debug("phase transition", "from", engine.mode, "to", next, "completed_cycles", completed)
	engine.mode = next
	engine.completed = completed
	engine.remaining = current.SecondsFor(next)
}

func (engine *Engine) stopLocked() {
	engine.running = false
	engine.paused = true
	engine.cancelLocked()
}

func (engine *Engine) scheduleLocked() {
	engine.cancelLocked()
	generation := engine.generation
	engine.cancelTick = engine.options.Scheduler.Every(engine.options.TickInterval, func() {
		engine.scheduledTick(generation)
	})
}

func (engine *Engine) cancelLocked() {
	engine.generation++
	if engine.cancelTick != nil {
		engine.cancelTick()
		engine.cancelTick = nil
	}
}

func (engine *Engine) onSettingsChanged(next model.Settings) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.closed {
		return
	}

	total := next.SecondsFor(engine.mode)
	switch {
	case !engine.running && engine.remaining != total:
		engine.remaining = total
	case engine.running && engine.remaining > total:
		engine.remaining = total
	default:
		return
	}
	engine.options.Logger.Debug("settings applied", "mode", engine.mode, "remaining", engine.remaining)
	engine.emitLocked(EventStateChange, "")
}

func (engine *Engine) durationForLocked(mode model.Mode) int {
	return engine.store.Get().SecondsFor(mode)
}

func (engine *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Mode:             engine.mode,
		RemainingSeconds: engine.remaining,
		TotalSeconds:     engine.durationForLocked(engine.mode),
		Running:          engine.running,
		Paused:           engine.paused,
		CompletedCycles:  engine.completed,
	}
}

func (engine *Engine) emitLocked(eventType EventType, completed model.Mode) {
	event := Event{
		Type:      eventType,
		Completed: completed,
		Snapshot:  engine.snapshotLocked(),
		At:        time.Now(),
	}
	for _, ch := range engine.events {
		select {
		case ch <- event:
		default:
		}
	}
}
