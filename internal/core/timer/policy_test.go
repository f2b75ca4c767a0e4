package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
)

func TestNextPhase(t *testing.T) {
	tests := []struct {
		name          string
		mode          model.Mode
		completed     int
		cycles        int
		wantMode      model.Mode
		wantCompleted int
	}{
		{"first work", model.ModeWork, 0, 4, model.ModeShortBreak, 1},
		{"penultimate work", model.ModeWork, 2, 4, model.ModeShortBreak, 3},
		{"last work", model.ModeWork, 3, 4, model.ModeLongBreak, 0},
		{"single cycle", model.ModeWork, 0, 1, model.ModeLongBreak, 0},
		{"counter past threshold", model.ModeWork, 7, 4, model.ModeLongBreak, 0},
		{"zero cycles treated as one", model.ModeWork, 0, 0, model.ModeLongBreak, 0},
		{"short break", model.ModeShortBreak, 2, 4, model.ModeWork, 2},
		{"long break", model.ModeLongBreak, 0, 4, model.ModeWork, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, completed := NextPhase(tt.mode, tt.completed, tt.cycles)
			assert.Equal(t, tt.wantMode, mode)
			assert.Equal(t, tt.wantCompleted, completed)
		})
	}
}

func TestCyclesUntilLongBreak(t *testing.T) {
	assert.Equal(t, 4, CyclesUntilLongBreak(0, 4))
	assert.Equal(t, 1, CyclesUntilLongBreak(3, 4))
	assert.Equal(t, 1, CyclesUntilLongBreak(9, 4))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "25:00", FormatClock(1500))
	assert.Equal(t, "00:09", FormatClock(9))
	assert.Equal(t, "99:59", FormatClock(99*60+59))
	assert.Equal(t, "00:00", FormatClock(-3))
}

func TestParseResetPolicy(t *testing.T) {
	policy, err := ParseResetPolicy("keep_phase")
	require.NoError(t, err)
	assert.Equal(t, ResetKeepPhase, policy)

	policy, err = ParseResetPolicy("")
	require.NoError(t, err)
	assert.Equal(t, ResetRestartSession, policy)

	_, err = ParseResetPolicy("sometimes")
	assert.Error(t, err)
}

func TestSnapshotProgress(t *testing.T) {
	assert.Equal(t, 0.5, Snapshot{RemainingSeconds: 150, TotalSeconds: 300}.Progress())
	assert.Equal(t, 0.0, Snapshot{RemainingSeconds: 10}.Progress())
	assert.Equal(t, 1.0, Snapshot{RemainingSeconds: 400, TotalSeconds: 300}.Progress())
}
