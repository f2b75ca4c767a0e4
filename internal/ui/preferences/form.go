package preferences

import (
	"errors"
	"fmt"
	"strconv"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/settings"
)

// Form holds the raw text of the settings fields.
type Form struct {
	WorkMinutes  string
	WorkSeconds  string
	ShortMinutes string
	ShortSeconds string
	LongMinutes  string
	LongSeconds  string
	Cycles       string
}

// FormFromSettings fills every field from current.
func FormFromSettings(current model.Settings) Form {
	workMinutes, workSeconds := settings.SplitDuration(current.WorkSeconds)
	shortMinutes, shortSeconds := settings.SplitDuration(current.ShortBreakSeconds)
	longMinutes, longSeconds := settings.SplitDuration(current.LongBreakSeconds)
	return Form{
		WorkMinutes:  strconv.Itoa(workMinutes),
		WorkSeconds:  strconv.Itoa(workSeconds),
		ShortMinutes: strconv.Itoa(shortMinutes),
		ShortSeconds: strconv.Itoa(shortSeconds),
		LongMinutes:  strconv.Itoa(longMinutes),
		LongSeconds:  strconv.Itoa(longSeconds),
		Cycles:       strconv.Itoa(current.CyclesBeforeLongBreak),
	}
}

// Resolve validates every field and builds settings. A duration whose
// minutes and seconds add up to zero, or an empty cycles field, falls back
// to the default value.
func (form Form) Resolve() (model.Settings, error) {
	defaults := model.DefaultSettings()

	work, errWork := resolveDuration("work", form.WorkMinutes, form.WorkSeconds, defaults.WorkSeconds)
	short, errShort := resolveDuration("short break", form.ShortMinutes, form.ShortSeconds, defaults.ShortBreakSeconds)
	long, errLong := resolveDuration("long break", form.LongMinutes, form.LongSeconds, defaults.LongBreakSeconds)

	cycles, errCycles := settings.ParseCycles(form.Cycles)
	if errCycles != nil {
		errCycles = fmt.Errorf("cycles before long break: %w", errCycles)
	}
	if cycles == 0 {
		cycles = defaults.CyclesBeforeLongBreak
	}

	if err := errors.Join(errWork, errShort, errLong, errCycles); err != nil {
		return model.Settings{}, err
	}
	return model.Settings{
		WorkSeconds:           work,
		ShortBreakSeconds:     short,
		LongBreakSeconds:      long,
		CyclesBeforeLongBreak: cycles,
	}, nil
}

func resolveDuration(field, minutesText, secondsText string, fallback int) (int, error) {
	minutes, err := settings.ParseMinutes(minutesText)
	if err != nil {
		return 0, fmt.Errorf("%s duration: %w", field, err)
	}
	seconds, err := settings.ParseSeconds(secondsText)
	if err != nil {
		return 0, fmt.Errorf("%s duration: %w", field, err)
	}
	return settings.ComposeDuration(minutes, seconds, fallback), nil
}
