package timer

import (
	"time"

	"pomodoro/internal/core/model"
)

// EventType defines the type of Engine event.
type EventType string

const (
	EventStateChange   EventType = "state_change"
	EventProgress      EventType = "progress"
	EventPhaseComplete EventType = "phase_complete"
)

// Event represents an Engine update for observers.
type Event struct {
	Type EventType
	// Completed is the mode that just finished; set only for EventPhaseComplete.
	Completed model.Mode
	Snapshot  Snapshot
	At        time.Time
}

// Snapshot is a read-only copy of the timer state.
type Snapshot struct {
	Mode             model.Mode
	RemainingSeconds int
	TotalSeconds     int
	Running          bool
	Paused           bool
	CompletedCycles  int
}

// Ticking reports whether the countdown is advancing.
func (snapshot Snapshot) Ticking() bool {
	return snapshot.Running && !snapshot.Paused
}

// Progress returns the fraction of the phase still remaining, in [0, 1].
func (snapshot Snapshot) Progress() float64 {
	if snapshot.TotalSeconds <= 0 {
		return 0
	}
	progress := float64(snapshot.RemainingSeconds) / float64(snapshot.TotalSeconds)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}
