package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"pomodoro/internal/core/timer"
	"pomodoro/internal/term"
)

var runStart bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the timer in the terminal",
	Long: `Run the timer in the terminal, reading one command per line:

  [enter] or p   start, pause or resume
  r              reset
  s              skip to the next phase
  q              quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRun(cmd.Context(), cmd.InOrStdin())
	},
}

func init() {
	runCmd.Flags().BoolVar(&runStart, "start", false, "Start the countdown immediately")
	rootCmd.AddCommand(runCmd)
}

func runRun(ctx context.Context, in io.Reader) error {
	cfg, store, err := loadRuntime()
	if err != nil {
		return err
	}
	watchConfig()

	engine := timer.New(store, timer.Config{
		TickInterval: cfg.TickInterval,
		ResetPolicy:  cfg.ResetPolicy,
		Logger:       logger,
	})
	defer engine.Close()

	ui.VerboseLog("settings: %s", cfg.SettingsPath)
	ui.VerboseLog("reset policy: %s", cfg.ResetPolicy)
	return term.NewRunner(engine, ui, in, logger).Run(ctx, runStart)
}
