package settings

import (
	"errors"
	"fmt"
	"sync"

	"pomodoro/internal/core/model"
)

// ErrInvalidSettingValue indicates a duration or cycle count outside the accepted range.
var ErrInvalidSettingValue = errors.New("invalid setting value")

const (
	MinSeconds = 1
	MaxSeconds = MaxMinutes*60 + MaxSecondsPart
	MinCycles  = 1
	MaxCycles  = 20
)

// Store holds the current settings and notifies listeners on change.
type Store struct {
	mu        sync.Mutex
	settings  model.Settings
	listeners map[int]func(model.Settings)
	nextID    int
}

// NewStore creates a store seeded with initial. Invalid fields fall back to defaults.
func NewStore(initial model.Settings) *Store {
	defaults := model.DefaultSettings()
	if validateSeconds(initial.WorkSeconds) != nil {
		initial.WorkSeconds = defaults.WorkSeconds
	}
	if validateSeconds(initial.ShortBreakSeconds) != nil {
		initial.ShortBreakSeconds = defaults.ShortBreakSeconds
	}
	if validateSeconds(initial.LongBreakSeconds) != nil {
		initial.LongBreakSeconds = defaults.LongBreakSeconds
	}
	if validateCycles(initial.CyclesBeforeLongBreak) != nil {
		initial.CyclesBeforeLongBreak = defaults.CyclesBeforeLongBreak
	}
	return &Store{
		settings:  initial,
		listeners: make(map[int]func(model.Settings)),
	}
}

// Get returns the latest settings.
func (store *Store) Get() model.Settings {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.settings
}

// SetWorkSeconds updates the work duration.
func (store *Store) SetWorkSeconds(seconds int) error {
	if err := validateSeconds(seconds); err != nil {
		return fmt.Errorf("work duration: %w", err)
	}
	store.update(func(settings *model.Settings) { settings.WorkSeconds = seconds })
	return nil
}

// SetShortBreakSeconds updates the short break duration.
func (store *Store) SetShortBreakSeconds(seconds int) error {
	if err := validateSeconds(seconds); err != nil {
		return fmt.Errorf("short break duration: %w", err)
	}
	store.update(func(settings *model.Settings) { settings.ShortBreakSeconds = seconds })
	return nil
}

// SetLongBreakSeconds updates the long break duration.
func (store *Store) SetLongBreakSeconds(seconds int) error {
	if err := validateSeconds(seconds); err != nil {
		return fmt.Errorf("long break duration: %w", err)
	}
	store.update(func(settings *model.Settings) { settings.LongBreakSeconds = seconds })
	return nil
}

// SetCyclesBeforeLongBreak updates how many work phases precede a long break.
func (store *Store) SetCyclesBeforeLongBreak(cycles int) error {
	if err := validateCycles(cycles); err != nil {
		return fmt.Errorf("cycles before long break: %w", err)
	}
	store.update(func(settings *model.Settings) { settings.CyclesBeforeLongBreak = cycles })
	return nil
}

// Apply replaces every field at once. Nothing is stored if any field is invalid.
func (store *Store) Apply(next model.Settings) error {
	if err := Validate(next); err != nil {
		return err
	}
	store.update(func(settings *model.Settings) { *settings = next })
	return nil
}

// Subscribe registers a listener called with the new settings after each change.
// The returned function removes the listener.
func (store *Store) Subscribe(listener func(model.Settings)) func() {
	store.mu.Lock()
	id := store.nextID
	store.nextID++
	store.listeners[id] = listener
	store.mu.Unlock()

	return func() {
		store.mu.Lock()
		delete(store.listeners, id)
		store.mu.Unlock()
	}
}

func (store *Store) update(mutate func(*model.Settings)) {
	store.mu.Lock()
	before := store.settings
	mutate(&store.settings)
	current := store.settings
	if current == before {
		store.mu.Unlock()
		return
	}
	listeners := make([]func(model.Settings), 0, len(store.listeners))
	for _, listener := range store.listeners {
		listeners = append(listeners, listener)
	}
	store.mu.Unlock()

	for _, listener := range listeners {
		listener(current)
	}
}

// Validate checks every field of settings against the accepted ranges.
func Validate(settings model.Settings) error {
	if err := validateSeconds(settings.WorkSeconds); err != nil {
		return fmt.Errorf("work duration: %w", err)
	}
	if err := validateSeconds(settings.ShortBreakSeconds); err != nil {
		return fmt.Errorf("short break duration: %w", err)
	}
	if err := validateSeconds(settings.LongBreakSeconds); err != nil {
		return fmt.Errorf("long break duration: %w", err)
	}
	if err := validateCycles(settings.CyclesBeforeLongBreak); err != nil {
		return fmt.Errorf("cycles before long break: %w", err)
	}
	return nil
}

func validateSeconds(seconds int) error {
	if seconds < MinSeconds || seconds > MaxSeconds {
		return fmt.Errorf("%w: %d seconds not in [%d, %d]", ErrInvalidSettingValue, seconds, MinSeconds, MaxSeconds)
	}
	return nil
}

func validateCycles(cycles int) error {
	if cycles < MinCycles || cycles > MaxCycles {
		return fmt.Errorf("%w: %d cycles not in [%d, %d]", ErrInvalidSettingValue, cycles, MinCycles, MaxCycles)
	}
	return nil
}

// ValidSeconds reports whether seconds is an accepted phase duration.
func ValidSeconds(seconds int) bool {
	return validateSeconds(seconds) == nil
}

// ValidCycles reports whether cycles is an accepted cycle count.
func ValidCycles(cycles int) bool {
	return validateCycles(cycles) == nil
}
