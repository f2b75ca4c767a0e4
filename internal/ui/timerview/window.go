package timerview

import (
	"context"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timer"
	"pomodoro/internal/ui/animation"
)

// Callbacks defines timer window action handlers.
type Callbacks struct {
	OnPlayPause func()
	OnReset     func()
	OnSkip      func()
	OnSettings  func()
}

// Window renders timer snapshots. Its methods must run on the Fyne UI goroutine.
type Window struct {
	window         fyne.Window
	modeLabel      *canvas.Text
	clockLabel     *canvas.Text
	progress       *widget.ProgressBar
	completedLabel *widget.Label
	nextLongLabel  *widget.Label
	playButton     *widget.Button
	resetButton    *widget.Button
	skipButton     *widget.Button
	settingsButton *widget.Button
	callbacks      Callbacks
	engine         *animation.Engine
	cancelFade     context.CancelFunc
	shownMode      model.Mode
	latest         timer.Snapshot
	latestSettings model.Settings
	fading         bool
	alpha          float64
}

// New creates the main timer window.
func New(app fyne.App, title string, callbacks Callbacks) *Window {
	window := app.NewWindow(title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	modeLabel := canvas.NewText(model.ModeWork.Label(), modeColor(model.ModeWork, 1))
	modeLabel.Alignment = fyne.TextAlignCenter
	modeLabel.TextStyle = fyne.TextStyle{Bold: true}
	modeLabel.TextSize = 20

	clockLabel := canvas.NewText("--:--", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	clockLabel.Alignment = fyne.TextAlignCenter
	clockLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	clockLabel.TextSize = 64

	progress := widget.NewProgressBar()
	progress.Min = 0
	progress.Max = 1
	progress.TextFormatter = func() string { return "" }

	completedLabel := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})
	nextLongLabel := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})

	view := &Window{
		window:         window,
		modeLabel:      modeLabel,
		clockLabel:     clockLabel,
		progress:       progress,
		completedLabel: completedLabel,
		nextLongLabel:  nextLongLabel,
		callbacks:      callbacks,
		shownMode:      model.ModeWork,
		alpha:          1,
	}

	view.playButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		if view.callbacks.OnPlayPause != nil {
			view.callbacks.OnPlayPause()
		}
	})
	view.playButton.Importance = widget.HighImportance
	view.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), func() {
		if view.callbacks.OnReset != nil {
			view.callbacks.OnReset()
		}
	})
	view.skipButton = widget.NewButtonWithIcon("Skip", theme.MediaSkipNextIcon(), func() {
		if view.callbacks.OnSkip != nil {
			view.callbacks.OnSkip()
		}
	})
	view.settingsButton = widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		if view.callbacks.OnSettings != nil {
			view.callbacks.OnSettings()
		}
	})

	header := container.NewHBox(layout.NewSpacer(), view.settingsButton)
	buttons := container.NewHBox(layout.NewSpacer(), view.playButton, view.resetButton, view.skipButton, layout.NewSpacer())
	body := container.NewVBox(
		modeLabel,
		clockLabel,
		progress,
		completedLabel,
		nextLongLabel,
		buttons,
	)

	window.SetContent(container.NewBorder(header, nil, nil, nil, container.NewCenter(body)))
	window.Resize(fyne.NewSize(360, 420))
	return view
}

// SetEngine attaches the animation engine used to fade between modes.
func (view *Window) SetEngine(engine *animation.Engine) {
	view.engine = engine
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Window exposes the underlying Fyne window.
func (view *Window) Window() fyne.Window {
	return view.window
}

// Update renders snapshot. A mode change fades out and back in when an engine
// is attached; snapshots arriving mid-fade are held until the midpoint.
func (view *Window) Update(snapshot timer.Snapshot, current model.Settings) {
	view.latest = snapshot
	view.latestSettings = current
	if view.fading {
		return
	}
	if snapshot.Mode != view.shownMode && view.engine != nil {
		view.stopFade()
		view.fading = true
		ctx, cancel := context.WithCancel(context.Background())
		view.cancelFade = cancel
		view.engine.Fade(ctx, func() {
			fyne.Do(view.finishFade)
		})
		return
	}
	view.shownMode = snapshot.Mode
	view.render(snapshot, current)
}

// SetAlpha scales the opacity of the mode and clock text.
func (view *Window) SetAlpha(alpha float64) {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	view.alpha = alpha
	view.modeLabel.Color = modeColor(view.shownMode, alpha)
	view.clockLabel.Color = color.NRGBA{R: 255, G: 255, B: 255, A: uint8(alpha * 255)}
	view.modeLabel.Refresh()
	view.clockLabel.Refresh()
}

// Close stops animations and closes the window.
func (view *Window) Close() {
	view.stopFade()
	view.window.Close()
}

func (view *Window) render(snapshot timer.Snapshot, current model.Settings) {
	view.modeLabel.Text = snapshot.Mode.Label()
	view.modeLabel.Color = modeColor(snapshot.Mode, view.alpha)
	view.modeLabel.Refresh()

	view.clockLabel.Text = timer.FormatClock(snapshot.RemainingSeconds)
	view.clockLabel.Refresh()

	view.progress.SetValue(snapshot.Progress())

	view.completedLabel.SetText("Completed: " + pluralCycles(snapshot.CompletedCycles))
	view.nextLongLabel.SetText("Next long break in: " +
		pluralCycles(timer.CyclesUntilLongBreak(snapshot.CompletedCycles, current.CyclesBeforeLongBreak)))

	if snapshot.Ticking() {
		view.playButton.SetText("Pause")
		view.playButton.SetIcon(theme.MediaPauseIcon())
	} else {
		view.playButton.SetText("Start")
		view.playButton.SetIcon(theme.MediaPlayIcon())
	}
}

func (view *Window) finishFade() {
	view.fading = false
	view.shownMode = view.latest.Mode
	view.render(view.latest, view.latestSettings)
}

func (view *Window) stopFade() {
	if view.cancelFade != nil {
		view.cancelFade()
		view.cancelFade = nil
	}
	view.fading = false
}

func pluralCycles(count int) string {
	if count == 1 {
		return "1 cycle"
	}
	return fmt.Sprintf("%d cycles", count)
}

func modeColor(mode model.Mode, alpha float64) color.NRGBA {
	accent := parseHexColor(mode.Color())
	accent.A = uint8(alpha * 255)
	return accent
}

// parseHexColor reads #RRGGBB. Malformed input yields opaque white.
func parseHexColor(hex string) color.NRGBA {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return white
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return white
	}
	return color.NRGBA{
		R: uint8(value >> 16),
		G: uint8(value >> 8),
		B: uint8(value),
		A: 255,
	}
}
