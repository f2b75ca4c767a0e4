// Package config resolves process options from the config file, environment and defaults.
package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"pomodoro/internal/core/timer"
)

const (
	AppName   = "pomodoro"
	EnvPrefix = "POMODORO"

	KeyLogLevel       = "log_level"
	KeyResetPolicy    = "reset_policy"
	KeyTickInterval   = "tick_interval"
	KeyNotifications  = "notifications"
	KeySingleInstance = "single_instance"
	KeySettingsPath   = "settings_path"
)

// Config holds the resolved process options.
type Config struct {
	LogLevel       slog.Level
	ResetPolicy    timer.ResetPolicy
	TickInterval   time.Duration
	Notifications  bool
	SingleInstance bool
	SettingsPath   string
}

// Key describes a config key for display purposes.
type Key struct {
	Name   string
	EnvVar string
}

// Keys lists every supported key with its environment override.
var Keys = []Key{
	{Name: KeyLogLevel, EnvVar: EnvPrefix + "_LOG_LEVEL"},
	{Name: KeyResetPolicy, EnvVar: EnvPrefix + "_RESET_POLICY"},
	{Name: KeyTickInterval, EnvVar: EnvPrefix + "_TICK_INTERVAL"},
	{Name: KeyNotifications, EnvVar: EnvPrefix + "_NOTIFICATIONS"},
	{Name: KeySingleInstance, EnvVar: EnvPrefix + "_SINGLE_INSTANCE"},
	{Name: KeySettingsPath, EnvVar: EnvPrefix + "_SETTINGS_PATH"},
}

// SetDefaults registers defaults relative to configDir.
func SetDefaults(v *viper.Viper, configDir string) {
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyResetPolicy, string(timer.ResetRestartSession))
	v.SetDefault(KeyTickInterval, time.Second)
	v.SetDefault(KeyNotifications, true)
	v.SetDefault(KeySingleInstance, true)
	v.SetDefault(KeySettingsPath, filepath.Join(configDir, "settings.yaml"))
}

// Load reads every key from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	level, err := ParseLogLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return Config{}, err
	}
	policy, err := timer.ParseResetPolicy(v.GetString(KeyResetPolicy))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", KeyResetPolicy, err)
	}
	tick := v.GetDuration(KeyTickInterval)
	if tick <= 0 {
		return Config{}, fmt.Errorf("%s must be positive, got %q", KeyTickInterval, v.GetString(KeyTickInterval))
	}

	return Config{
		LogLevel:       level,
		ResetPolicy:    policy,
		TickInterval:   tick,
		Notifications:  v.GetBool(KeyNotifications),
		SingleInstance: v.GetBool(KeySingleInstance),
		SettingsPath:   v.GetString(KeySettingsPath),
	}, nil
}

// ParseLogLevel accepts debug, info, warn/warning and error.
func ParseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%s: unknown level %q", KeyLogLevel, value)
}
