package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pomodoro/internal/config"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/settings"
	"pomodoro/internal/core/timer"
	"pomodoro/internal/output"
	"pomodoro/internal/storage"
)

var (
	settingsWork   time.Duration
	settingsShort  time.Duration
	settingsLong   time.Duration
	settingsCycles int
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change timer durations",
	Long: `Show or change timer durations.

Running bare 'pomodoro settings' is the same as 'pomodoro settings show'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return settingsShowRun()
	},
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the saved timer settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return settingsShowRun()
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change and save timer settings",
	Example: `  pomodoro settings set --work 50m --short 10m
  pomodoro settings set --long 20m --cycles 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return settingsSetRun(cmd)
	},
}

func init() {
	addSettingsSetFlags(settingsSetCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func addSettingsSetFlags(cmd *cobra.Command) {
	cmd.Flags().DurationVar(&settingsWork, "work", 0, "Work session length (e.g. 25m, 90s)")
	cmd.Flags().DurationVar(&settingsShort, "short", 0, "Short break length")
	cmd.Flags().DurationVar(&settingsLong, "long", 0, "Long break length")
	cmd.Flags().IntVar(&settingsCycles, "cycles", 0, "Work sessions before a long break")
}

func settingsPath() string {
	return viper.GetString(config.KeySettingsPath)
}

func settingsShowRun() error {
	path := settingsPath()
	current, err := storage.LoadSettings(path)
	if err != nil {
		return err
	}

	ui.Info("Settings file: %s", path)
	fmt.Fprintln(ui.Out)
	return renderSettings(current)
}

func renderSettings(current model.Settings) error {
	table := ui.Table([]string{"Setting", "Value"})
	rows := [][]string{
		{output.ModeColor(model.ModeWork, "work"), timer.FormatClock(current.WorkSeconds)},
		{output.ModeColor(model.ModeShortBreak, "short break"), timer.FormatClock(current.ShortBreakSeconds)},
		{output.ModeColor(model.ModeLongBreak, "long break"), timer.FormatClock(current.LongBreakSeconds)},
		{"cycles before long break", strconv.Itoa(current.CyclesBeforeLongBreak)},
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("render settings: %w", err)
		}
	}
	return table.Render()
}

func settingsSetRun(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if !flags.Changed("work") && !flags.Changed("short") && !flags.Changed("long") && !flags.Changed("cycles") {
		return fmt.Errorf("nothing to change: pass --work, --short, --long or --cycles")
	}

	path := settingsPath()
	current, err := storage.LoadSettings(path)
	if err != nil {
		return err
	}
	store := settings.NewStore(current)

	if flags.Changed("work") {
		if err := setDuration(store.SetWorkSeconds, settingsWork, "work"); err != nil {
			return err
		}
	}
	if flags.Changed("short") {
		if err := setDuration(store.SetShortBreakSeconds, settingsShort, "short"); err != nil {
			return err
		}
	}
	if flags.Changed("long") {
		if err := setDuration(store.SetLongBreakSeconds, settingsLong, "long"); err != nil {
			return err
		}
	}
	if flags.Changed("cycles") {
		if err := store.SetCyclesBeforeLongBreak(settingsCycles); err != nil {
			return fmt.Errorf("--cycles: %w", err)
		}
	}

	if err := storage.SaveSettings(path, store.Get()); err != nil {
		return err
	}
	ui.Success("Settings saved: %s", path)
	fmt.Fprintln(ui.Out)
	return renderSettings(store.Get())
}

func setDuration(set func(int) error, value time.Duration, flag string) error {
	if value%time.Second != 0 {
		return fmt.Errorf("--%s: %w: %s is not a whole number of seconds", flag, settings.ErrInvalidSettingValue, value)
	}
	if err := set(int(value / time.Second)); err != nil {
		return fmt.Errorf("--%s: %w", flag, err)
	}
	return nil
}
