// Package shell wires the timer engine and settings store into the Fyne desktop UI.
package shell

import (
	"context"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"

	"pomodoro/internal/config"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/settings"
	"pomodoro/internal/core/timer"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/animation"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/timerview"
	"pomodoro/internal/ui/tray"
	"pomodoro/resources"
)

const appID = "com.pomodoro.app"

// Host owns the desktop windows and forwards engine events to them.
type Host struct {
	app        fyne.App
	engine     *timer.Engine
	store      *settings.Store
	options    config.Config
	logger     *slog.Logger
	view       *timerview.Window
	prefs      *preferences.Window
	tray       *tray.Manager
	trayApp    desktop.App
	activeIcon fyne.Resource
	pausedIcon fyne.Resource
	ticking    bool
}

// Run starts the desktop application and blocks until it quits.
func Run(ctx context.Context, store *settings.Store, options config.Config, logger *slog.Logger) error {
	if options.SingleInstance {
		guard, err := platform.AcquireSingleInstance(config.AppName)
		if err != nil {
			return fmt.Errorf("single instance: %w", err)
		}
		defer func() {
			_ = guard.Release()
		}()
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.IconApp))

	engine := timer.New(store, timer.Config{
		TickInterval: options.TickInterval,
		ResetPolicy:  options.ResetPolicy,
		Logger:       logger,
	})
	defer engine.Close()

	host := New(fyneApp, engine, store, options, logger)
	go host.forward(ctx, engine.Subscribe(16))
	go func() {
		<-ctx.Done()
		fyne.Do(fyneApp.Quit)
	}()

	host.view.Show()
	fyneApp.Run()
	return nil
}

// New builds the windows and tray for engine. It must be called on the UI goroutine.
func New(fyneApp fyne.App, engine *timer.Engine, store *settings.Store, options config.Config, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	host := &Host{
		app:     fyneApp,
		engine:  engine,
		store:   store,
		options: options,
		logger:  logger,
	}

	host.view = timerview.New(fyneApp, "Pomodoro", timerview.Callbacks{
		OnPlayPause: engine.TogglePlayPause,
		OnReset:     engine.Reset,
		OnSkip:      engine.Skip,
		OnSettings:  host.showSettings,
	})
	host.view.SetEngine(animation.New(animation.DefaultConfig(), func(alpha float64) {
		fyne.Do(func() {
			host.view.SetAlpha(alpha)
		})
	}))

	host.prefs = preferences.New(fyneApp, store.Get(), host.saveSettings)

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		host.trayApp = desktopApp
		host.activeIcon = resources.MustIcon(resources.IconTrayActive)
		host.pausedIcon = resources.MustIcon(resources.IconTrayPaused)
		desktopApp.SetSystemTrayIcon(host.pausedIcon)
		host.view.Window().SetCloseIntercept(host.view.Window().Hide)
	} else {
		host.view.Window().SetMaster()
	}
	host.tray = tray.New(host.trayApp, tray.Callbacks{
		OnShow:      host.view.Show,
		OnPlayPause: engine.TogglePlayPause,
		OnReset:     engine.Reset,
		OnSkip:      engine.Skip,
		OnSettings:  host.showSettings,
		OnQuit:      fyneApp.Quit,
	})

	host.render(engine.Snapshot())
	return host
}

func (host *Host) forward(ctx context.Context, events <-chan timer.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			fyne.Do(func() {
				host.handleEvent(event)
			})
		}
	}
}

func (host *Host) handleEvent(event timer.Event) {
	if event.Type == timer.EventPhaseComplete {
		host.notify(event)
	}
	host.render(event.Snapshot)
}

func (host *Host) render(snapshot timer.Snapshot) {
	host.view.Update(snapshot, host.store.Get())
	host.tray.SetStatus(snapshot)

	ticking := snapshot.Ticking()
	if host.trayApp != nil && ticking != host.ticking {
		if ticking {
			host.trayApp.SetSystemTrayIcon(host.activeIcon)
		} else {
			host.trayApp.SetSystemTrayIcon(host.pausedIcon)
		}
	}
	host.ticking = ticking
}

func (host *Host) notify(event timer.Event) {
	if !host.options.Notifications {
		return
	}
	host.app.SendNotification(fyne.NewNotification(
		completionTitle(event.Completed),
		"Next up: "+event.Snapshot.Mode.Label()+" ("+timer.FormatClock(event.Snapshot.RemainingSeconds)+")",
	))
}

func (host *Host) showSettings() {
	host.prefs.UpdateSettings(host.store.Get())
	host.prefs.Show()
}

func (host *Host) saveSettings(updated model.Settings) {
	if err := host.store.Apply(updated); err != nil {
		host.logger.Warn("settings rejected", "error", err)
		return
	}
	if host.options.SettingsPath == "" {
		return
	}
	if err := storage.SaveSettings(host.options.SettingsPath, host.store.Get()); err != nil {
		host.logger.Error("save settings", "path", host.options.SettingsPath, "error", err)
		return
	}
	host.logger.Info("settings saved", "path", host.options.SettingsPath)
}

func completionTitle(completed model.Mode) string {
	if completed.IsBreak() {
		return "Break over"
	}
	return "Work session complete"
}
