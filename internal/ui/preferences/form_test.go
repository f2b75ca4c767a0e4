package preferences

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/settings"
)

func TestFormFromSettings(t *testing.T) {
	form := FormFromSettings(model.Settings{
		WorkSeconds:           1530,
		ShortBreakSeconds:     300,
		LongBreakSeconds:      59,
		CyclesBeforeLongBreak: 3,
	})

	assert.Equal(t, Form{
		WorkMinutes:  "25",
		WorkSeconds:  "30",
		ShortMinutes: "5",
		ShortSeconds: "0",
		LongMinutes:  "0",
		LongSeconds:  "59",
		Cycles:       "3",
	}, form)
}

func TestResolve_RoundTrip(t *testing.T) {
	current := model.Settings{WorkSeconds: 61, ShortBreakSeconds: 120, LongBreakSeconds: 5999, CyclesBeforeLongBreak: 20}

	resolved, err := FormFromSettings(current).Resolve()

	require.NoError(t, err)
	assert.Equal(t, current, resolved)
}

func TestResolve_ZeroFallsBackToDefaults(t *testing.T) {
	resolved, err := Form{
		WorkMinutes:  "0",
		WorkSeconds:  "0",
		ShortMinutes: "",
		ShortSeconds: "",
		LongMinutes:  "0",
		LongSeconds:  "",
		Cycles:       "",
	}.Resolve()

	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), resolved)
}

func TestResolve_SecondsOnly(t *testing.T) {
	resolved, err := Form{WorkSeconds: "3", ShortSeconds: "2", LongSeconds: "1", Cycles: "1"}.Resolve()

	require.NoError(t, err)
	assert.Equal(t, model.Settings{WorkSeconds: 3, ShortBreakSeconds: 2, LongBreakSeconds: 1, CyclesBeforeLongBreak: 1}, resolved)
}

func TestResolve_ReportsEveryBadField(t *testing.T) {
	_, err := Form{
		WorkMinutes:  "100",
		ShortSeconds: "60",
		LongMinutes:  "x",
		Cycles:       "0",
	}.Resolve()

	require.Error(t, err)
	assert.ErrorIs(t, err, settings.ErrInvalidSettingValue)
	assert.Contains(t, err.Error(), "work duration")
	assert.Contains(t, err.Error(), "short break duration")
	assert.Contains(t, err.Error(), "long break duration")
	assert.Contains(t, err.Error(), "cycles before long break")
}

func TestResolve_CyclesOutOfRange(t *testing.T) {
	_, err := Form{Cycles: "21"}.Resolve()
	assert.ErrorIs(t, err, settings.ErrInvalidSettingValue)
}
