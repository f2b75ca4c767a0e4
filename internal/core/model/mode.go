package model

// Mode is the current phase of the pomodoro cycle.
type Mode string

const (
	ModeWork       Mode = "work"
	ModeShortBreak Mode = "short_break"
	ModeLongBreak  Mode = "long_break"
)

// Label returns the upper-case display name of the mode.
func (mode Mode) Label() string {
	switch mode {
	case ModeShortBreak:
		return "SHORT BREAK"
	case ModeLongBreak:
		return "LONG BREAK"
	default:
		return "WORK"
	}
}

// Color returns the accent colour for the mode as a hex string.
func (mode Mode) Color() string {
	switch mode {
	case ModeShortBreak:
		return "#8B5CF6"
	case ModeLongBreak:
		return "#6366F1"
	default:
		return "#2DD4BF"
	}
}

// IsBreak reports whether the mode is one of the break phases.
func (mode Mode) IsBreak() bool {
	return mode == ModeShortBreak || mode == ModeLongBreak
}

// ParseMode converts a string form back into a Mode.
func ParseMode(value string) (Mode, bool) {
	switch Mode(value) {
	case ModeWork, ModeShortBreak, ModeLongBreak:
		return Mode(value), true
	}
	return "", false
}
