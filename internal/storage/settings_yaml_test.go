package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/settings"
)

func TestLoadSettings_MissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	got, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), got)
}

func TestSaveSettings_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	want := model.Settings{WorkSeconds: 50*60 + 30, ShortBreakSeconds: 45, LongBreakSeconds: 20 * 60, CyclesBeforeLongBreak: 3}

	require.NoError(t, SaveSettings(path, want))

	got, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "work_minutes: 50")
	assert.Contains(t, string(raw), "work_seconds: 30")
	assert.Contains(t, string(raw), "cycles_before_long_break: 3")
}

func TestSaveSettings_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	require.NoError(t, SaveSettings(path, model.DefaultSettings()))
	require.NoError(t, SaveSettings(path, model.DefaultSettings()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "settings.yaml", entries[0].Name())
}

func TestSaveSettings_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	err := SaveSettings(path, model.Settings{WorkSeconds: 0, ShortBreakSeconds: 60, LongBreakSeconds: 60, CyclesBeforeLongBreak: 1})
	assert.ErrorIs(t, err, settings.ErrInvalidSettingValue)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoadSettings_InvalidFieldsKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := `work_minutes: 0
work_seconds: 0
short_break_minutes: 10
long_break_minutes: 500
cycles_before_long_break: 99
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultWorkSeconds, got.WorkSeconds)
	assert.Equal(t, 600, got.ShortBreakSeconds)
	assert.Equal(t, model.DefaultLongBreakSeconds, got.LongBreakSeconds)
	assert.Equal(t, model.DefaultCyclesBeforeLongBreak, got.CyclesBeforeLongBreak)
}

func TestLoadSettings_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("work_minutes: [oops"), 0o644))

	got, err := LoadSettings(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse settings yaml")
	assert.Equal(t, model.DefaultSettings(), got)
}

func TestDefaultSettingsPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	path, err := DefaultSettingsPath("pomodoro")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, filepath.Join("pomodoro", "settings.yaml")), path)
}
