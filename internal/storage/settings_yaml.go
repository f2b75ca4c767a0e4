package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/settings"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	WorkMinutes           int `yaml:"work_minutes"`
	WorkSeconds           int `yaml:"work_seconds"`
	ShortBreakMinutes     int `yaml:"short_break_minutes"`
	ShortBreakSeconds     int `yaml:"short_break_seconds"`
	LongBreakMinutes      int `yaml:"long_break_minutes"`
	LongBreakSeconds      int `yaml:"long_break_seconds"`
	CyclesBeforeLongBreak int `yaml:"cycles_before_long_break"`
}

// DefaultSettingsPath returns <user config dir>/<appName>/settings.yaml.
func DefaultSettingsPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads timer settings from YAML.
// If the file does not exist, default settings are returned.
// Fields that are missing or out of range keep their defaults.
func LoadSettings(path string) (model.Settings, error) {
	loaded := model.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return loaded, nil
		}
		return loaded, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return loaded, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&loaded, fileData)
	return loaded, nil
}

// SaveSettings writes timer settings to YAML, replacing the file atomically.
func SaveSettings(path string, current model.Settings) error {
	if err := settings.Validate(current); err != nil {
		return fmt.Errorf("refusing to save settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	var fileData yamlSettings
	fileData.WorkMinutes, fileData.WorkSeconds = settings.SplitDuration(current.WorkSeconds)
	fileData.ShortBreakMinutes, fileData.ShortBreakSeconds = settings.SplitDuration(current.ShortBreakSeconds)
	fileData.LongBreakMinutes, fileData.LongBreakSeconds = settings.SplitDuration(current.LongBreakSeconds)
	fileData.CyclesBeforeLongBreak = current.CyclesBeforeLongBreak

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	return writeAtomic(path, serialized)
}

func writeAtomic(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	return nil
}

func applyYamlSettings(target *model.Settings, fileData yamlSettings) {
	if seconds := fileData.WorkMinutes*60 + fileData.WorkSeconds; settings.ValidSeconds(seconds) {
		target.WorkSeconds = seconds
	}
	if seconds := fileData.ShortBreakMinutes*60 + fileData.ShortBreakSeconds; settings.ValidSeconds(seconds) {
		target.ShortBreakSeconds = seconds
	}
	if seconds := fileData.LongBreakMinutes*60 + fileData.LongBreakSeconds; settings.ValidSeconds(seconds) {
		target.LongBreakSeconds = seconds
	}
	if settings.ValidCycles(fileData.CyclesBeforeLongBreak) {
		target.CyclesBeforeLongBreak = fileData.CyclesBeforeLongBreak
	}
}
