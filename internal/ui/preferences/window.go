package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/settings"
)

// Window handles the settings UI.
type Window struct {
	window       fyne.Window
	onSave       func(model.Settings)
	onCancel     func()
	workMinutes  *widget.Entry
	workSeconds  *widget.Entry
	shortMinutes *widget.Entry
	shortSeconds *widget.Entry
	longMinutes  *widget.Entry
	longSeconds  *widget.Entry
	cycles       *widget.Entry
	saveButton   *widget.Button
	cancelButton *widget.Button
}

// New creates a settings window populated from current.
func New(app fyne.App, current model.Settings, onSave func(model.Settings)) *Window {
	window := app.NewWindow("Pomodoro Settings")

	prefs := &Window{
		window:       window,
		onSave:       onSave,
		workMinutes:  newEntry("min", settings.ParseMinutes),
		workSeconds:  newEntry("sec", settings.ParseSeconds),
		shortMinutes: newEntry("min", settings.ParseMinutes),
		shortSeconds: newEntry("sec", settings.ParseSeconds),
		longMinutes:  newEntry("min", settings.ParseMinutes),
		longSeconds:  newEntry("sec", settings.ParseSeconds),
		cycles:       newEntry("cycles", settings.ParseCycles),
	}
	prefs.UpdateSettings(current)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Durations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		durationRow("Work", prefs.workMinutes, prefs.workSeconds),
		durationRow("Short break", prefs.shortMinutes, prefs.shortSeconds),
		durationRow("Long break", prefs.longMinutes, prefs.longSeconds),
		widget.NewLabelWithStyle("Cycles", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewGridWithColumns(2, widget.NewLabel("Work cycles before long break"), prefs.cycles),
	)

	prefs.saveButton = widget.NewButton("Save", prefs.handleSave)
	prefs.saveButton.Importance = widget.HighImportance
	prefs.cancelButton = widget.NewButton("Cancel", func() {
		window.Hide()
		if prefs.onCancel != nil {
			prefs.onCancel()
		}
	})
	buttons := container.NewHBox(prefs.cancelButton, layout.NewSpacer(), prefs.saveButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.SetCloseIntercept(window.Hide)
	window.Resize(fyne.NewSize(420, 320))
	return prefs
}

// SetOnCancel registers a handler for the cancel button.
func (prefs *Window) SetOnCancel(onCancel func()) {
	prefs.onCancel = onCancel
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces the field values.
func (prefs *Window) UpdateSettings(current model.Settings) {
	prefs.apply(FormFromSettings(current))
}

// Form returns the current field text.
func (prefs *Window) Form() Form {
	return Form{
		WorkMinutes:  prefs.workMinutes.Text,
		WorkSeconds:  prefs.workSeconds.Text,
		ShortMinutes: prefs.shortMinutes.Text,
		ShortSeconds: prefs.shortSeconds.Text,
		LongMinutes:  prefs.longMinutes.Text,
		LongSeconds:  prefs.longSeconds.Text,
		Cycles:       prefs.cycles.Text,
	}
}

func (prefs *Window) apply(form Form) {
	prefs.workMinutes.SetText(form.WorkMinutes)
	prefs.workSeconds.SetText(form.WorkSeconds)
	prefs.shortMinutes.SetText(form.ShortMinutes)
	prefs.shortSeconds.SetText(form.ShortSeconds)
	prefs.longMinutes.SetText(form.LongMinutes)
	prefs.longSeconds.SetText(form.LongSeconds)
	prefs.cycles.SetText(form.Cycles)
}

func (prefs *Window) handleSave() {
	resolved, err := prefs.Form().Resolve()
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}
	prefs.UpdateSettings(resolved)
	if prefs.onSave != nil {
		prefs.onSave(resolved)
	}
	prefs.window.Hide()
}

func newEntry(placeholder string, parse func(string) (int, error)) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(placeholder)
	entry.Validator = func(text string) error {
		_, err := parse(text)
		return err
	}
	return entry
}

func durationRow(title string, minutes, seconds *widget.Entry) fyne.CanvasObject {
	return container.NewGridWithColumns(5,
		widget.NewLabel(title),
		minutes, widget.NewLabel("min"),
		seconds, widget.NewLabel("sec"),
	)
}
