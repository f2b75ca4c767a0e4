package timer

import (
	"fmt"

	"pomodoro/internal/core/model"
)

// ResetPolicy selects what Reset restores besides stopping the countdown.
type ResetPolicy string

const (
	// ResetRestartSession returns to Work and clears the completed cycle count.
	ResetRestartSession ResetPolicy = "restart_session"
	// ResetKeepPhase refills the current mode and keeps the cycle count.
	ResetKeepPhase ResetPolicy = "keep_phase"
)

// ParseResetPolicy converts a config value to a ResetPolicy.
func ParseResetPolicy(value string) (ResetPolicy, error) {
	switch ResetPolicy(value) {
	case ResetRestartSession, ResetKeepPhase:
		return ResetPolicy(value), nil
	case "":
		return ResetRestartSession, nil
	}
	return "", fmt.Errorf("unknown reset policy %q", value)
}

// NextPhase returns the mode that follows current and the updated completed
// cycle count. The count resets to zero when a long break is entered.
func NextPhase(current model.Mode, completed, cyclesBeforeLongBreak int) (model.Mode, int) {
	if current.IsBreak() {
		return model.ModeWork, completed
	}
	if cyclesBeforeLongBreak < 1 {
		cyclesBeforeLongBreak = 1
	}
	completed++
	if completed >= cyclesBeforeLongBreak {
		return model.ModeLongBreak, 0
	}
	return model.ModeShortBreak, completed
}

// CyclesUntilLongBreak returns how many more work phases end before the next long break.
func CyclesUntilLongBreak(completed, cyclesBeforeLongBreak int) int {
	remaining := cyclesBeforeLongBreak - completed
	if remaining < 1 {
		return 1
	}
	return remaining
}

// FormatClock renders seconds as MM:SS, flooring negatives at zero.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
