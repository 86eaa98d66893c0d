// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"

	"sketchpad/internal/annotation"
	"sketchpad/internal/app"
	"sketchpad/internal/editor"
	"sketchpad/pkg/colorutil"
	"sketchpad/pkg/geometry"
	"sketchpad/ui/canvas"
	"sketchpad/ui/dialogs"
	"sketchpad/ui/prefs"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	xdraw "golang.org/x/image/draw"
)

const (
	paletteSize = 12

	// Imported images larger than this are downscaled so a photo drop
	// does not dwarf the canvas.
	maxImportDim = 1024

	// Inserted content lands here, clear of the toolbar.
	insertX = 40.0
	insertY = 40.0
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs

	canvas    *canvas.DrawingCanvas
	statusBar *widget.Label

	toolButtons map[editor.Tool]*widget.Button
	shapeSelect *widget.Select
	undoButton  *widget.Button
	redoButton  *widget.Button
}

// shapeNames maps the shape picker labels to shape kinds, in menu order.
var shapeNames = []struct {
	label string
	kind  annotation.ShapeKind
}{
	{"Rectangle", annotation.ShapeRectangle},
	{"Ellipse", annotation.ShapeEllipse},
	{"Line", annotation.ShapeLine},
	{"Polygon", annotation.ShapePolygon},
	{"Polyline", annotation.ShapePolyline},
	{"Bezier", annotation.ShapeBezier},
}

// New creates the main window and restores tool settings from preferences.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Sketchpad")

	mw := &MainWindow{
		Window:      win,
		app:         fyneApp,
		state:       state,
		prefs:       p,
		toolButtons: make(map[editor.Tool]*widget.Button),
	}

	mw.restorePreferences()
	mw.setupUI()
	mw.setupMenus()
	mw.setupShortcuts()
	mw.setupEventHandlers()

	w := prefs.FloatOr(p.WindowWidth, 1024)
	h := prefs.FloatOr(p.WindowHeight, 720)
	win.Resize(fyne.NewSize(float32(w), float32(h)))

	return mw
}

func (mw *MainWindow) restorePreferences() {
	ed := mw.state.Editor
	ed.SetColor(mw.prefs.DrawColor())
	ed.SetStrokeWidth(prefs.FloatOr(mw.prefs.StrokeWidth, editor.DefaultStrokeWidth))
	ed.SetEraserSize(prefs.FloatOr(mw.prefs.EraserSize, editor.DefaultEraserSize))
	ed.SetFontSize(prefs.FloatOr(mw.prefs.FontSize, editor.DefaultFontSize))
}

// SavePreferences captures the current tool settings and window size.
func (mw *MainWindow) SavePreferences() {
	ed := mw.state.Editor
	mw.prefs.SetDrawColor(ed.Color())
	mw.prefs.StrokeWidth = ed.StrokeWidth()
	mw.prefs.EraserSize = ed.EraserSize()
	mw.prefs.FontSize = ed.FontSize()
	size := mw.Canvas().Size()
	mw.prefs.WindowWidth = float64(size.Width)
	mw.prefs.WindowHeight = float64(size.Height)
	if err := mw.prefs.Save(); err != nil {
		log.Printf("Saving preferences: %v", err)
	}
}

func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.New(mw.state.Editor)
	mw.canvas.OnTextClick = mw.onTextClick
	mw.statusBar = widget.NewLabel("Ready")

	content := container.NewBorder(
		mw.createToolbar(),                // top
		container.NewPadded(mw.statusBar), // bottom
		nil, nil,
		container.NewScroll(mw.canvas),
	)
	mw.SetContent(content)
}

func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	tools := []struct {
		label string
		tool  editor.Tool
	}{
		{"Select", editor.ToolSelect},
		{"Brush", editor.ToolBrush},
		{"Shape", editor.ToolShape},
		{"Text", editor.ToolText},
		{"Eraser", editor.ToolEraser},
	}
	toolBox := container.NewHBox()
	for _, t := range tools {
		tool := t.tool
		btn := widget.NewButton(t.label, func() {
			mw.selectTool(tool)
		})
		mw.toolButtons[tool] = btn
		toolBox.Add(btn)
	}

	labels := make([]string, len(shapeNames))
	for i, s := range shapeNames {
		labels[i] = s.label
	}
	mw.shapeSelect = widget.NewSelect(labels, func(label string) {
		for _, s := range shapeNames {
			if s.label == label {
				mw.state.Editor.SetShapeKind(s.kind)
				return
			}
		}
	})
	mw.shapeSelect.SetSelectedIndex(0)

	widthSlider := widget.NewSlider(1, 20)
	widthSlider.SetValue(mw.state.Editor.StrokeWidth())
	widthSlider.OnChanged = func(v float64) {
		mw.state.Editor.SetStrokeWidth(v)
	}

	eraserSlider := widget.NewSlider(5, 80)
	eraserSlider.SetValue(mw.state.Editor.EraserSize())
	eraserSlider.OnChanged = func(v float64) {
		mw.state.Editor.SetEraserSize(v)
	}

	mw.undoButton = widget.NewButton("Undo", mw.onUndo)
	mw.redoButton = widget.NewButton("Redo", mw.onRedo)

	return container.NewVBox(
		container.NewHBox(
			toolBox,
			widget.NewSeparator(),
			mw.shapeSelect,
			widget.NewSeparator(),
			mw.undoButton,
			mw.redoButton,
		),
		container.NewHBox(
			mw.createPalette(),
			widget.NewSeparator(),
			widget.NewLabel("Width"),
			widthSlider,
			widget.NewLabel("Eraser"),
			eraserSlider,
		),
	)
}

// createPalette builds the color swatch row from the generated palette
// plus black and white.
func (mw *MainWindow) createPalette() fyne.CanvasObject {
	colors := append(colorutil.Palette(paletteSize), colorutil.Black, colorutil.White)
	box := container.NewHBox()
	for _, c := range colors {
		c := c
		box.Add(newSwatch(c, func() {
			mw.state.Editor.SetColor(c)
		}))
	}
	return box
}

func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Import Image...", mw.onImportImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear Canvas", mw.onClearCanvas),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			mw.SavePreferences()
			mw.app.Quit()
		}),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", mw.onUndo),
		fyne.NewMenuItem("Redo", mw.onRedo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Duplicate", mw.state.Editor.Duplicate),
		fyne.NewMenuItem("Delete", mw.state.Editor.Delete),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() { dialogs.ShowAbout(mw.Window) }),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, helpMenu))
}

func (mw *MainWindow) setupShortcuts() {
	ctrl := func(key fyne.KeyName) *desktop.CustomShortcut {
		return &desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierControl}
	}

	mw.Canvas().AddShortcut(ctrl(fyne.KeyZ), func(fyne.Shortcut) { mw.onUndo() })
	mw.Canvas().AddShortcut(ctrl(fyne.KeyY), func(fyne.Shortcut) { mw.onRedo() })
	mw.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyZ,
		Modifier: fyne.KeyModifierControl | fyne.KeyModifierShift,
	}, func(fyne.Shortcut) { mw.onRedo() })
	mw.Canvas().AddShortcut(ctrl(fyne.KeyD), func(fyne.Shortcut) { mw.state.Editor.Duplicate() })

	mw.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDelete, fyne.KeyBackspace:
			mw.state.Editor.Delete()
		case fyne.KeyEscape:
			mw.state.Editor.Cancel()
		}
	})
}

func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventCanvasChanged, func(interface{}) {
		mw.canvas.Refresh()
		mw.updateStatus()
	})
	mw.updateStatus()
}

func (mw *MainWindow) updateStatus() {
	ed := mw.state.Editor
	status := fmt.Sprintf("Tool: %s    Annotations: %d", ed.Tool(), len(ed.Annotations()))
	if n := len(ed.SelectedIDs()); n > 0 {
		status += fmt.Sprintf("    Selected: %d", n)
	}
	mw.statusBar.SetText(status)

	if ed.CanUndo() {
		mw.undoButton.Enable()
	} else {
		mw.undoButton.Disable()
	}
	if ed.CanRedo() {
		mw.redoButton.Enable()
	} else {
		mw.redoButton.Disable()
	}

	for tool, btn := range mw.toolButtons {
		if tool == ed.Tool() {
			btn.Importance = widget.HighImportance
		} else {
			btn.Importance = widget.MediumImportance
		}
		btn.Refresh()
	}
}

func (mw *MainWindow) selectTool(t editor.Tool) {
	mw.state.Editor.SetTool(t)
	mw.updateStatus()
}

func (mw *MainWindow) onUndo() { mw.state.Editor.Undo() }
func (mw *MainWindow) onRedo() { mw.state.Editor.Redo() }

func (mw *MainWindow) onClearCanvas() {
	dialog.ShowConfirm("Clear Canvas", "Remove all annotations?", func(ok bool) {
		if ok {
			mw.state.Editor.ClearAll()
		}
	}, mw.Window)
}

// onTextClick opens the text dialog for a click with the text tool.
func (mw *MainWindow) onTextClick(p geometry.Point2D) {
	dlg := dialogs.NewTextDialog(mw.Window, mw.state.Editor.FontSize(),
		func(text string, fontSize float64) {
			mw.state.Editor.SetFontSize(fontSize)
			mw.state.Editor.InsertText(p, text)
		})
	dlg.Show()
}

// onImportImage opens a file picker, decodes the chosen image, downscales
// oversized photos, and inserts the result as an image annotation.
func (mw *MainWindow) onImportImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		img, _, err := image.Decode(reader)
		if err != nil {
			dialog.ShowError(fmt.Errorf("decoding %s: %w", reader.URI().Name(), err), mw.Window)
			return
		}
		if err := mw.state.Editor.InsertImage(
			geometry.Point2D{X: insertX, Y: insertY}, downscale(img)); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".gif"}))
	fd.Show()
}

// downscale shrinks an image so its longest side fits maxImportDim,
// preserving aspect ratio. Small images pass through untouched.
func downscale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxImportDim && h <= maxImportDim {
		return img
	}
	scale := float64(maxImportDim) / float64(w)
	if h > w {
		scale = float64(maxImportDim) / float64(h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}

// swatch is a small clickable color rectangle for the toolbar palette.
type swatch struct {
	widget.BaseWidget
	rect  *fynecanvas.Rectangle
	onTap func()
}

func newSwatch(c color.RGBA, onTap func()) *swatch {
	s := &swatch{
		rect:  fynecanvas.NewRectangle(c),
		onTap: onTap,
	}
	s.rect.SetMinSize(fyne.NewSize(22, 22))
	s.ExtendBaseWidget(s)
	return s
}

func (s *swatch) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.rect)
}

func (s *swatch) Tapped(*fyne.PointEvent) {
	if s.onTap != nil {
		s.onTap()
	}
}
