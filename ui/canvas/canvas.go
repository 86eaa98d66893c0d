// Package canvas provides the drawing surface widget. It forwards pointer
// and keyboard events to the annotation engine and paints the engine's
// state into a raster on every refresh.
package canvas

import (
	"image"

	"sketchpad/internal/editor"
	"sketchpad/internal/transform"
	"sketchpad/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// DrawingCanvas is the interactive annotation surface.
type DrawingCanvas struct {
	fyne.CanvasObject

	editor *editor.Editor

	// OnTextClick is invoked with the click position when the text tool is
	// active; the engine does not handle text clicks itself.
	OnTextClick func(p geometry.Point2D)

	// Modifier state from the last mouse event; drag events do not carry
	// modifiers, so the last observed state is reused during a drag.
	shift bool
}

// interactiveRaster is the widget that actually receives events. A plain
// raster cannot, so the canvas wraps one.
type interactiveRaster struct {
	widget.BaseWidget
	owner  *DrawingCanvas
	raster *fynecanvas.Raster
}

func (r *interactiveRaster) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(r.raster)
}

var (
	_ desktop.Mouseable   = (*interactiveRaster)(nil)
	_ desktop.Hoverable   = (*interactiveRaster)(nil)
	_ desktop.Cursorable  = (*interactiveRaster)(nil)
	_ fyne.Draggable      = (*interactiveRaster)(nil)
	_ fyne.DoubleTappable = (*interactiveRaster)(nil)
	_ fyne.Tappable       = (*interactiveRaster)(nil)
)

// New creates a drawing canvas bound to the annotation engine. The caller
// is responsible for refreshing the canvas when the engine changes.
func New(ed *editor.Editor) *DrawingCanvas {
	dc := &DrawingCanvas{editor: ed}

	r := &interactiveRaster{owner: dc}
	r.raster = fynecanvas.NewRaster(dc.draw)
	r.raster.ScaleMode = fynecanvas.ImageScalePixels
	r.raster.SetMinSize(fyne.NewSize(640, 480))
	r.ExtendBaseWidget(r)
	dc.CanvasObject = r
	return dc
}

// Refresh regenerates the raster and repaints the canvas.
func (dc *DrawingCanvas) Refresh() {
	if r, ok := dc.CanvasObject.(*interactiveRaster); ok {
		r.raster.Refresh()
	}
	dc.CanvasObject.Refresh()
}

func (dc *DrawingCanvas) mods() editor.Modifiers {
	return editor.Modifiers{Shift: dc.shift}
}

func point(p fyne.Position) geometry.Point2D {
	return geometry.Point2D{X: float64(p.X), Y: float64(p.Y)}
}

// draw renders the engine state; invoked by the raster on refresh.
func (dc *DrawingCanvas) draw(w, h int) image.Image {
	return render(dc.editor, w, h)
}

func (r *interactiveRaster) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	r.owner.shift = ev.Modifier&fyne.KeyModifierShift != 0
	if r.owner.editor.Tool() == editor.ToolText && r.owner.OnTextClick != nil {
		r.owner.OnTextClick(point(ev.Position))
		return
	}
	r.owner.editor.PointerDown(point(ev.Position), r.owner.mods())
}

func (r *interactiveRaster) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	r.owner.editor.PointerUp(point(ev.Position), r.owner.mods())
}

func (r *interactiveRaster) MouseIn(ev *desktop.MouseEvent) {}

// MouseMoved drives hover tracking; the engine ignores it mid-gesture
// because drags arrive through Dragged instead.
func (r *interactiveRaster) MouseMoved(ev *desktop.MouseEvent) {
	r.owner.shift = ev.Modifier&fyne.KeyModifierShift != 0
	if ev.Button == 0 {
		r.owner.editor.PointerMove(point(ev.Position), r.owner.mods())
	}
}

func (r *interactiveRaster) MouseOut() {}

func (r *interactiveRaster) Dragged(ev *fyne.DragEvent) {
	r.owner.editor.PointerMove(point(ev.Position), r.owner.mods())
}

func (r *interactiveRaster) DragEnd() {}

// Tapped is required for DoubleTapped delivery; MouseDown/MouseUp already
// cover the click itself.
func (r *interactiveRaster) Tapped(ev *fyne.PointEvent) {}

func (r *interactiveRaster) DoubleTapped(ev *fyne.PointEvent) {
	r.owner.editor.DoubleClick(point(ev.Position), r.owner.mods())
}

// Cursor reflects the hovered resize handle. Fyne's desktop driver has no
// diagonal resize cursors, so corner handles show the pointer cursor.
func (r *interactiveRaster) Cursor() desktop.Cursor {
	anchor, ok := r.owner.editor.HoveredAnchor()
	if !ok {
		return desktop.DefaultCursor
	}
	switch transform.CursorForAnchor(anchor) {
	case transform.CursorResizeN, transform.CursorResizeS:
		return desktop.VResizeCursor
	case transform.CursorResizeE, transform.CursorResizeW:
		return desktop.HResizeCursor
	default:
		return desktop.PointerCursor
	}
}
