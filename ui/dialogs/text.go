// Package dialogs provides application dialogs.
package dialogs

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// TextDialog collects the content and font size for a new text annotation.
type TextDialog struct {
	window fyne.Window

	textEntry *widget.Entry
	sizeEntry *widget.Entry
	defaults  float64

	onConfirm func(text string, fontSize float64)
}

// NewTextDialog creates a text annotation dialog. fontSize seeds the size
// field; onConfirm receives the entered text and the parsed size.
func NewTextDialog(window fyne.Window, fontSize float64, onConfirm func(string, float64)) *TextDialog {
	return &TextDialog{
		window:    window,
		onConfirm: onConfirm,
		defaults:  fontSize,
	}
}

// Show displays the dialog.
func (d *TextDialog) Show() {
	d.textEntry = widget.NewEntry()
	d.textEntry.SetPlaceHolder("Text")
	d.sizeEntry = widget.NewEntry()
	d.sizeEntry.SetText(strconv.FormatFloat(d.defaults, 'f', -1, 64))

	form := container.NewVBox(
		widget.NewForm(
			widget.NewFormItem("Text", d.textEntry),
			widget.NewFormItem("Font size", d.sizeEntry),
		),
	)

	dlg := dialog.NewCustomConfirm("Add Text", "Add", "Cancel", form,
		func(ok bool) {
			if !ok || d.onConfirm == nil {
				return
			}
			size, err := strconv.ParseFloat(d.sizeEntry.Text, 64)
			if err != nil || size <= 0 {
				size = d.defaults
			}
			d.onConfirm(d.textEntry.Text, size)
		}, d.window)
	dlg.Resize(fyne.NewSize(360, 180))
	dlg.Show()
}
