package settings

import (
	"fmt"
	"strconv"
	"strings"
)

// Ranges accepted by the minutes/seconds/cycles input fields.
const (
	MaxMinutes     = 99
	MaxSecondsPart = 59
)

// ParseMinutes parses a minutes field. Empty input is zero.
func ParseMinutes(text string) (int, error) {
	return parseBounded(text, 0, MaxMinutes, "minutes")
}

// ParseSeconds parses a seconds field. Empty input is zero.
func ParseSeconds(text string) (int, error) {
	return parseBounded(text, 0, MaxSecondsPart, "seconds")
}

// ParseCycles parses the cycles field. Empty input is zero, which callers treat as unset.
func ParseCycles(text string) (int, error) {
	value, err := parseBounded(text, 0, MaxCycles, "cycles")
	if err != nil {
		return 0, err
	}
	if value == 0 && strings.TrimSpace(text) != "" {
		return 0, fmt.Errorf("%w: cycles must be at least %d", ErrInvalidSettingValue, MinCycles)
	}
	return value, nil
}

// ComposeDuration joins a minutes/seconds pair into seconds, returning fallback
// when the pair adds up to zero.
func ComposeDuration(minutes, seconds, fallback int) int {
	total := minutes*60 + seconds
	if total <= 0 {
		return fallback
	}
	return total
}

// SplitDuration is the inverse of ComposeDuration for populating input fields.
func SplitDuration(totalSeconds int) (minutes, seconds int) {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return totalSeconds / 60, totalSeconds % 60
}

func parseBounded(text string, minValue, maxValue int, field string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", ErrInvalidSettingValue, field, text)
	}
	if value < minValue || value > maxValue {
		return 0, fmt.Errorf("%w: %s %d not in [%d, %d]", ErrInvalidSettingValue, field, value, minValue, maxValue)
	}
	return value, nil
}
