package tray

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timer"
)

func TestSetStatus_Labels(t *testing.T) {
	manager := New(nil, Callbacks{})
	assert.Equal(t, "Status: idle", manager.Status())
	assert.Equal(t, "Start", manager.PlayLabel())

	manager.SetStatus(timer.Snapshot{Mode: model.ModeWork, RemainingSeconds: 1499, TotalSeconds: 1500, Running: true})
	assert.Equal(t, "WORK: 24:59", manager.Status())
	assert.Equal(t, "Pause", manager.PlayLabel())

	manager.SetStatus(timer.Snapshot{Mode: model.ModeWork, RemainingSeconds: 1499, TotalSeconds: 1500, Running: true, Paused: true})
	assert.Equal(t, "WORK: 24:59 paused", manager.Status())
	assert.Equal(t, "Start", manager.PlayLabel())

	manager.SetStatus(timer.Snapshot{Mode: model.ModeLongBreak, RemainingSeconds: 900, TotalSeconds: 900, Paused: true})
	assert.Equal(t, "LONG BREAK: idle", manager.Status())
}

func TestMenuItems_InvokeCallbacks(t *testing.T) {
	var calls []string
	manager := New(nil, Callbacks{
		OnShow:      func() { calls = append(calls, "show") },
		OnPlayPause: func() { calls = append(calls, "play") },
		OnReset:     func() { calls = append(calls, "reset") },
		OnSkip:      func() { calls = append(calls, "skip") },
		OnSettings:  func() { calls = append(calls, "settings") },
		OnQuit:      func() { calls = append(calls, "quit") },
	})

	for _, item := range manager.menu.Items {
		if item.Action != nil {
			item.Action()
		}
	}

	assert.Equal(t, []string{"show", "play", "reset", "skip", "settings", "quit"}, calls)
}

func TestMenuItems_NilCallbacksAreSafe(t *testing.T) {
	manager := New(nil, Callbacks{})
	assert.NotPanics(t, func() {
		for _, item := range manager.menu.Items {
			if item.Action != nil {
				item.Action()
			}
		}
	})
}
