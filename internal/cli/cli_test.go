package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/config"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/settings"
	"pomodoro/internal/output"
	"pomodoro/internal/storage"
)

// testEnv sets up isolated config dir, viper, and output for testing.
func testEnv(t *testing.T) (string, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()

	origFunc := configDirFunc
	configDirFunc = func() (string, error) { return dir, nil }
	t.Cleanup(func() { configDirFunc = origFunc })

	viper.Reset()
	config.SetDefaults(viper.GetViper(), dir)
	t.Cleanup(viper.Reset)

	var out bytes.Buffer
	ui = &output.UI{Out: &out, ErrOut: &out}

	return dir, &out
}

func newSettingsSetCmd(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "set"}
	addSettingsSetFlags(cmd)
	for name, value := range flags {
		require.NoError(t, cmd.Flags().Set(name, value))
	}
	return cmd
}

func TestSettingsShow_Defaults(t *testing.T) {
	_, out := testEnv(t)

	require.NoError(t, settingsShowRun())

	assert.Contains(t, out.String(), "settings.yaml")
	assert.Contains(t, out.String(), "25:00")
	assert.Contains(t, out.String(), "05:00")
	assert.Contains(t, out.String(), "15:00")
}

func TestSettingsSet_Persists(t *testing.T) {
	dir, out := testEnv(t)

	cmd := newSettingsSetCmd(t, map[string]string{"work": "50m", "cycles": "3"})
	require.NoError(t, settingsSetRun(cmd))

	loaded, err := storage.LoadSettings(filepath.Join(dir, "settings.yaml"))
	require.NoError(t, err)
	assert.Equal(t, model.Settings{WorkSeconds: 3000, ShortBreakSeconds: 300, LongBreakSeconds: 900, CyclesBeforeLongBreak: 3}, loaded)
	assert.Contains(t, out.String(), "Settings saved")
	assert.Contains(t, out.String(), "50:00")
}

func TestSettingsSet_RejectsOutOfRange(t *testing.T) {
	dir, _ := testEnv(t)

	cmd := newSettingsSetCmd(t, map[string]string{"short": "100m"})
	err := settingsSetRun(cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, settings.ErrInvalidSettingValue)
	assert.Contains(t, err.Error(), "--short")
	assert.NoFileExists(t, filepath.Join(dir, "settings.yaml"))
}

func TestSettingsSet_RejectsFractionalSeconds(t *testing.T) {
	testEnv(t)

	err := settingsSetRun(newSettingsSetCmd(t, map[string]string{"work": "1500ms"}))

	assert.ErrorIs(t, err, settings.ErrInvalidSettingValue)
}

func TestSettingsSet_RejectsZeroCycles(t *testing.T) {
	testEnv(t)

	err := settingsSetRun(newSettingsSetCmd(t, map[string]string{"cycles": "0"}))

	assert.ErrorIs(t, err, settings.ErrInvalidSettingValue)
}

func TestSettingsSet_NothingToChange(t *testing.T) {
	testEnv(t)

	err := settingsSetRun(newSettingsSetCmd(t, nil))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to change")
}

func TestConfigInit_CreatesFile(t *testing.T) {
	dir, _ := testEnv(t)

	require.NoError(t, configInitRun())

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "pomodoro configuration")
	assert.Contains(t, string(data), "reset_policy: restart_session")
	assert.Contains(t, string(data), "tick_interval: 1s")
}

func TestConfigInit_RefusesOverwrite(t *testing.T) {
	dir, _ := testEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("existing"), 0o644))

	configForce = false
	err := configInitRun()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestConfigInit_ForceOverwrite(t *testing.T) {
	dir, _ := testEnv(t)
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("existing"), 0o644))

	configForce = true
	t.Cleanup(func() { configForce = false })
	require.NoError(t, configInitRun())

	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pomodoro configuration")
}

func TestConfigShow_ListsKeys(t *testing.T) {
	_, out := testEnv(t)

	require.NoError(t, configShowRun())

	assert.Contains(t, out.String(), "Config file: (none)")
	for _, key := range config.Keys {
		assert.Contains(t, out.String(), key.Name)
	}
	assert.Contains(t, out.String(), "(default)")
}

func TestConfigShow_InvalidValueWarns(t *testing.T) {
	_, out := testEnv(t)
	viper.Set(config.KeyResetPolicy, "sometimes")

	require.NoError(t, configShowRun())

	assert.Contains(t, out.String(), "unknown reset policy")
}

func TestDetectSource(t *testing.T) {
	fileValues := map[string]bool{"log_level": true}

	t.Setenv("POMODORO_TEST_KEY", "val")
	assert.Contains(t, detectSource("test_key", "POMODORO_TEST_KEY", fileValues), "env")
	assert.Contains(t, detectSource("log_level", "POMODORO_NOT_SET_ANYWHERE", fileValues), "file")
	assert.Contains(t, detectSource("tick_interval", "POMODORO_NOT_SET_ANYWHERE", fileValues), "default")
}

func TestReadConfigFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\nnotifications: false\n"), 0o644))

	values := readConfigFileValues(path)

	assert.True(t, values["log_level"])
	assert.True(t, values["notifications"])
	assert.False(t, values["reset_policy"])
	assert.Empty(t, readConfigFileValues(filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestLoadRuntime_UsesSavedSettings(t *testing.T) {
	dir, _ := testEnv(t)
	saved := model.Settings{WorkSeconds: 60, ShortBreakSeconds: 30, LongBreakSeconds: 90, CyclesBeforeLongBreak: 2}
	require.NoError(t, storage.SaveSettings(filepath.Join(dir, "settings.yaml"), saved))

	cfg, store, err := loadRuntime()

	require.NoError(t, err)
	assert.Equal(t, saved, store.Get())
	assert.Equal(t, filepath.Join(dir, "settings.yaml"), cfg.SettingsPath)
}

func TestLoadRuntime_BadConfig(t *testing.T) {
	testEnv(t)
	viper.Set(config.KeyTickInterval, "0s")

	_, _, err := loadRuntime()

	require.Error(t, err)
	assert.Contains(t, err.Error(), config.KeyTickInterval)
}

func TestRunRun_QuitsOnCommand(t *testing.T) {
	_, out := testEnv(t)

	err := runRun(context.Background(), strings.NewReader("q\n"))

	require.NoError(t, err)
	assert.Contains(t, out.String(), "WORK")
	assert.Contains(t, out.String(), "25:00")
}

func TestVersionCmd(t *testing.T) {
	buildVersion, buildCommit, buildDate = "1.2.3", "abc123", "2026-01-01"
	t.Cleanup(func() { buildVersion, buildCommit, buildDate = "dev", "none", "unknown" })

	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	assert.Equal(t, "pomodoro 1.2.3 (commit abc123, built 2026-01-01)\n", out.String())
}
