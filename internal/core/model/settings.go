package model

import "time"

const (
	DefaultWorkSeconds           = 25 * 60
	DefaultShortBreakSeconds     = 5 * 60
	DefaultLongBreakSeconds      = 15 * 60
	DefaultCyclesBeforeLongBreak = 4
)

// Settings contains the durations and cycle count the timer runs on.
type Settings struct {
	WorkSeconds           int
	ShortBreakSeconds     int
	LongBreakSeconds      int
	CyclesBeforeLongBreak int
}

// DefaultSettings returns the classic 25/5/15 schedule with a long break every fourth cycle.
func DefaultSettings() Settings {
	return Settings{
		WorkSeconds:           DefaultWorkSeconds,
		ShortBreakSeconds:     DefaultShortBreakSeconds,
		LongBreakSeconds:      DefaultLongBreakSeconds,
		CyclesBeforeLongBreak: DefaultCyclesBeforeLongBreak,
	}
}

// SecondsFor returns the full duration of the given mode in seconds.
func (settings Settings) SecondsFor(mode Mode) int {
	switch mode {
	case ModeShortBreak:
		return settings.ShortBreakSeconds
	case ModeLongBreak:
		return settings.LongBreakSeconds
	default:
		return settings.WorkSeconds
	}
}

// DurationFor is SecondsFor as a time.Duration.
func (settings Settings) DurationFor(mode Mode) time.Duration {
	return time.Duration(settings.SecondsFor(mode)) * time.Second
}
