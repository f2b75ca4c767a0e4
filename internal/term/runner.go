// Package term runs the timer in a terminal, reading one command per line.
package term

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timer"
	"pomodoro/internal/output"
)

const helpText = "commands: [enter]/p play-pause  r reset  s skip  q quit  ? help"

// Runner drives an Engine from line-based input and renders it to a terminal.
type Runner struct {
	engine *timer.Engine
	ui     *output.UI
	in     io.Reader
	logger *slog.Logger
}

// NewRunner creates a Runner reading commands from in.
func NewRunner(engine *timer.Engine, ui *output.UI, in io.Reader, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		engine: engine,
		ui:     ui,
		in:     in,
		logger: logger,
	}
}

// Run blocks until the user quits, input ends, or ctx is cancelled.
func (runner *Runner) Run(ctx context.Context, autoStart bool) error {
	events := runner.engine.Subscribe(16)
	commands := make(chan string)
	readErr := make(chan error, 1)
	go runner.readCommands(ctx, commands, readErr)

	runner.ui.Info(helpText)
	if autoStart {
		runner.engine.Start()
	}
	runner.render(runner.engine.Snapshot())

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-readErr:
			return fmt.Errorf("read commands: %w", err)
		case line, ok := <-commands:
			if !ok {
				return nil
			}
			if runner.handle(line) {
				return nil
			}
		case event, ok := <-events:
			if !ok {
				return nil
			}
			runner.renderEvent(event)
		}
	}
}

func (runner *Runner) readCommands(ctx context.Context, commands chan<- string, readErr chan<- error) {
	defer close(commands)
	scanner := bufio.NewScanner(runner.in)
	for scanner.Scan() {
		select {
		case commands <- strings.TrimSpace(scanner.Text()):
		case <-ctx.Done():
			return
		}
	}
	if err := scanner.Err(); err != nil {
		readErr <- err
	}
}

// handle applies one command and reports whether the runner should exit.
func (runner *Runner) handle(command string) bool {
	switch strings.ToLower(command) {
	case "", "p", "play", "pause":
		runner.engine.TogglePlayPause()
	case "r", "reset":
		runner.engine.Reset()
	case "s", "skip":
		runner.engine.Skip()
	case "q", "quit", "exit":
		runner.logger.Debug("terminal runner quit")
		return true
	case "?", "h", "help":
		runner.ui.Info(helpText)
		return false
	default:
		runner.ui.Warning("unknown command %q (%s)", command, helpText)
		return false
	}
	runner.render(runner.engine.Snapshot())
	return false
}

func (runner *Runner) renderEvent(event timer.Event) {
	switch event.Type {
	case timer.EventProgress:
		runner.render(event.Snapshot)
	case timer.EventPhaseComplete:
		runner.ui.Bell()
		runner.ui.Success("%s finished, next up %s", event.Completed.Label(), event.Snapshot.Mode.Label())
		runner.render(event.Snapshot)
	}
}

func (runner *Runner) render(snapshot timer.Snapshot) {
	fmt.Fprintln(runner.ui.Out, StatusLine(snapshot, runner.engine.Settings()))
}

// StatusLine renders the mode, clock, run state and cycle counters on one line.
func StatusLine(snapshot timer.Snapshot, current model.Settings) string {
	state := "idle"
	switch {
	case snapshot.Ticking():
		state = "running"
	case snapshot.Running:
		state = "paused"
	}
	cycles := fmt.Sprintf("completed %d, next long break in %d",
		snapshot.CompletedCycles,
		timer.CyclesUntilLongBreak(snapshot.CompletedCycles, current.CyclesBeforeLongBreak))

	return fmt.Sprintf("%s %s  %-7s  %s",
		output.ModeColor(snapshot.Mode, fmt.Sprintf("%-11s", snapshot.Mode.Label())),
		output.ModeColor(snapshot.Mode, timer.FormatClock(snapshot.RemainingSeconds)),
		state,
		output.Dim(cycles))
}
