// Package cli implements the pomodoro command line.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pomodoro/internal/config"
	"pomodoro/internal/core/settings"
	"pomodoro/internal/output"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/shell"
)

// Package-level shared dependencies, initialized in cobra.OnInitialize.
var (
	ui       *output.UI
	logger   = slog.Default()
	logLevel = new(slog.LevelVar)

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pomodoro",
	Short: "Pomodoro timer",
	Long: `pomodoro alternates focused work sessions with short breaks,
and takes a long break after a configurable number of work sessions.

Running bare 'pomodoro' opens the desktop timer. Use 'pomodoro run'
for the terminal timer.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return desktopRun(cmd.Context())
	},
}

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initDeps)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default <user config dir>/pomodoro/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	dotenvErr := godotenv.Load()

	configDir, err := configDirFunc()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot find config directory: %v\n", err)
		os.Exit(1)
	}

	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()
	config.SetDefaults(viper.GetViper(), configDir)

	// Read config file if it exists (optional)
	_ = viper.ReadInConfig()

	initLogger()
	if dotenvErr != nil {
		logger.Debug("no .env file loaded", "error", dotenvErr)
	}
}

func initDeps() {
	ui = output.New()
	ui.Verbose = verbose
}

func initLogger() {
	level, err := config.ParseLogLevel(viper.GetString(config.KeyLogLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
	}
	logLevel.Set(level)
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
}

// watchConfig reapplies the log level whenever the config file changes.
func watchConfig() {
	if viper.ConfigFileUsed() == "" {
		return
	}
	viper.OnConfigChange(func(event fsnotify.Event) {
		level, err := config.ParseLogLevel(viper.GetString(config.KeyLogLevel))
		if err != nil {
			logger.Warn("config reload", "file", event.Name, "error", err)
			return
		}
		logLevel.Set(level)
		logger.Info("config reloaded", "file", event.Name, "log_level", level)
	})
	viper.WatchConfig()
}

// loadRuntime resolves config and the settings store for long-running commands.
func loadRuntime() (config.Config, *settings.Store, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	logLevel.Set(cfg.LogLevel)

	loaded, err := storage.LoadSettings(cfg.SettingsPath)
	if err != nil {
		logger.Warn("using default settings", "path", cfg.SettingsPath, "error", err)
	}
	return cfg, settings.NewStore(loaded), nil
}

func desktopRun(ctx context.Context) error {
	cfg, store, err := loadRuntime()
	if err != nil {
		return err
	}
	watchConfig()
	return shell.Run(ctx, store, cfg, logger)
}

// configDirFunc returns the config directory path, replaceable in tests.
var configDirFunc = defaultConfigDir

func defaultConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, config.AppName), nil
}
