package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"pomodoro/internal/core/timer"
)

const menuTitle = "Pomodoro"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow      func()
	OnPlayPause func()
	OnReset     func()
	OnSkip      func()
	OnSettings  func()
	OnQuit      func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	statusItem *fyne.MenuItem
	playItem   *fyne.MenuItem
	resetItem  *fyne.MenuItem
	skipItem   *fyne.MenuItem
	menu       *fyne.Menu
	callbacks  Callbacks
	ticking    bool
}

// New creates a tray manager. A nil app keeps the menu state without
// publishing it, which is what platforms without a tray get.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: idle", nil)
	manager.statusItem.Disabled = true

	manager.playItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnPlayPause != nil {
			manager.callbacks.OnPlayPause()
		}
	})
	manager.resetItem = fyne.NewMenuItem("Reset", func() {
		if manager.callbacks.OnReset != nil {
			manager.callbacks.OnReset()
		}
	})
	manager.skipItem = fyne.NewMenuItem("Skip", func() {
		if manager.callbacks.OnSkip != nil {
			manager.callbacks.OnSkip()
		}
	})

	manager.refreshMenu()
	return manager
}

// SetStatus updates the status line and play item from snapshot.
func (manager *Manager) SetStatus(snapshot timer.Snapshot) {
	state := "idle"
	switch {
	case snapshot.Ticking():
		state = timer.FormatClock(snapshot.RemainingSeconds)
	case snapshot.Running:
		state = timer.FormatClock(snapshot.RemainingSeconds) + " paused"
	}
	manager.statusItem.Label = fmt.Sprintf("%s: %s", snapshot.Mode.Label(), state)

	ticking := snapshot.Ticking()
	relabel := ticking != manager.ticking
	manager.ticking = ticking
	if ticking {
		manager.playItem.Label = "Pause"
	} else {
		manager.playItem.Label = "Start"
	}

	if relabel {
		manager.refreshMenu()
		return
	}
	manager.refreshItems()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

// PlayLabel returns the label of the play/pause item.
func (manager *Manager) PlayLabel() string {
	return manager.playItem.Label
}

func (manager *Manager) refreshItems() {
	if manager.app == nil {
		return
	}
	manager.menu.Refresh()
}

func (manager *Manager) refreshMenu() {
	manager.menu = fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show timer", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		manager.playItem,
		manager.resetItem,
		manager.skipItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings", func() {
			if manager.callbacks.OnSettings != nil {
				manager.callbacks.OnSettings()
			}
		}),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	)
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}
