package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"pomodoro/internal/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or manage configuration",
	Long: `Show or manage pomodoro configuration.

Running bare 'pomodoro config' is the same as 'pomodoro config show'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowRun()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create config file with commented defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		return configInitRun()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration with sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowRun()
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

const configTemplate = `# pomodoro configuration
# See: pomodoro config show (for effective values and sources)

# Log level: debug, info, warn, error. Reloaded while the timer runs.
log_level: {{ .LogLevel }}

# What reset does: restart_session goes back to the first work session,
# keep_phase refills the current phase.
reset_policy: {{ .ResetPolicy }}

# Countdown step.
tick_interval: {{ .TickInterval }}

# Desktop notification when a phase ends.
notifications: {{ .Notifications }}

# Refuse to open a second desktop timer.
single_instance: {{ .SingleInstance }}

# Timer durations file, edited with 'pomodoro settings set'.
settings_path: {{ .SettingsPath }}
`

type configTemplateData struct {
	LogLevel       string
	ResetPolicy    string
	TickInterval   string
	Notifications  bool
	SingleInstance bool
	SettingsPath   string
}

func configFilePath() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		return used, nil
	}
	dir, err := configDirFunc()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func configInitRun() error {
	cfgPath, err := configFilePath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfgPath); err == nil {
		if !configForce {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", cfgPath)
		}
		ui.Warning("Overwriting existing config file")
	}

	data := configTemplateData{
		LogLevel:       viper.GetString(config.KeyLogLevel),
		ResetPolicy:    viper.GetString(config.KeyResetPolicy),
		TickInterval:   viper.GetDuration(config.KeyTickInterval).String(),
		Notifications:  viper.GetBool(config.KeyNotifications),
		SingleInstance: viper.GetBool(config.KeySingleInstance),
		SettingsPath:   viper.GetString(config.KeySettingsPath),
	}

	tmpl, err := template.New("config").Parse(configTemplate)
	if err != nil {
		return fmt.Errorf("template parse error: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("template execute error: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(cfgPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	ui.Success("Config file created: %s", cfgPath)
	fmt.Fprintln(ui.Out)
	fmt.Fprint(ui.Out, buf.String())
	return nil
}

func configShowRun() error {
	cfgPath, err := configFilePath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfgPath); err == nil {
		ui.Info("Config file: %s", cfgPath)
	} else {
		ui.Info("Config file: (none)")
	}
	fmt.Fprintln(ui.Out)

	fileValues := readConfigFileValues(cfgPath)

	table := ui.Table([]string{"Key", "Value", "Source"})
	for _, key := range config.Keys {
		row := []string{key.Name, fmt.Sprint(viper.Get(key.Name)), detectSource(key.Name, key.EnvVar, fileValues)}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("render config: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render config: %w", err)
	}

	if _, err := config.Load(viper.GetViper()); err != nil {
		ui.Warning("%v", err)
	}
	return nil
}

// readConfigFileValues reads the raw YAML file and returns the keys present in it.
func readConfigFileValues(path string) map[string]bool {
	result := make(map[string]bool)

	data, err := os.ReadFile(path)
	if err != nil {
		return result
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return result
	}
	for key := range parsed {
		result[key] = true
	}
	return result
}

// detectSource determines where a config value is coming from.
func detectSource(key, envVar string, fileValues map[string]bool) string {
	if _, ok := os.LookupEnv(envVar); ok {
		return fmt.Sprintf("(env: %s)", envVar)
	}
	if fileValues[key] {
		return "(file)"
	}
	return "(default)"
}
