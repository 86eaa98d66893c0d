package editor

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/google/uuid"

	"sketchpad/internal/annotation"
	"sketchpad/internal/transform"
	"sketchpad/pkg/geometry"
)

// duplicateOffset is the fixed translation applied to duplicated
// annotations so the copy is visibly distinct from the original.
const duplicateOffset = 20.0

// ErrNilImage is returned when an image insertion is attempted without
// decoded pixel data.
var ErrNilImage = errors.New("editor: nil image")

// SetTool switches the active tool, finalizing or discarding any
// in-progress accumulation first so no partial shape is orphaned.
func (e *Editor) SetTool(t Tool) {
	if t == e.tool {
		return
	}
	e.finalizePending()
	e.tool = t
	if t != ToolSelect {
		e.clearSelection()
	}
	e.clearHover()
	e.notify()
}

// SetShapeKind switches the shape sub-tool, finalizing or discarding any
// in-progress accumulation first.
func (e *Editor) SetShapeKind(k annotation.ShapeKind) {
	if k == e.shapeKind {
		return
	}
	e.finalizePending()
	e.shapeKind = k
	e.notify()
}

// finalizePending resolves an in-progress accumulation when the tool or
// shape kind is switched away: polylines with enough points commit,
// polygons and unfinished beziers are discarded because they require an
// explicit close.
func (e *Editor) finalizePending() {
	g, ok := e.gesture.(*accumGesture)
	if !ok {
		e.gesture = nil
		return
	}
	if g.kind == annotation.ShapePolyline && len(g.points) >= 2 {
		e.commitAccum(g)
	}
	e.gesture = nil
}

// Cancel aborts the in-progress gesture (Escape). In-place mutations
// (drag, resize, point edit) are rolled back to the last committed
// snapshot; accumulations and previews are discarded. Point-edit mode is
// exited.
func (e *Editor) Cancel() {
	switch e.gesture.(type) {
	case *dragGesture, *resizeGesture, *pointEditGesture, *eraseGesture:
		e.annotations = e.log.Current()
	}
	e.gesture = nil
	for _, a := range e.annotations {
		a.Common().Editing = false
	}
	e.clearHover()
	e.notify()
}

// Undo replaces the working collection with the previous snapshot. Any
// in-progress gesture is cancelled first.
func (e *Editor) Undo() {
	if e.gesture != nil {
		e.Cancel()
	}
	if restored, ok := e.log.Undo(); ok {
		e.annotations = restored
		e.clearHover()
	}
	e.notify()
}

// Redo replaces the working collection with the next snapshot.
func (e *Editor) Redo() {
	if e.gesture != nil {
		e.Cancel()
	}
	if restored, ok := e.log.Redo(); ok {
		e.annotations = restored
		e.clearHover()
	}
	e.notify()
}

// Delete removes all selected annotations as a single undo step.
func (e *Editor) Delete() {
	var kept []annotation.Annotation
	removed := false
	for _, a := range e.annotations {
		if a.Common().Selected {
			removed = true
			continue
		}
		kept = append(kept, a)
	}
	if !removed {
		return
	}
	e.annotations = kept
	e.clearHover()
	e.commit()
	e.notify()
}

// Duplicate clones the selected annotations with fresh IDs and a fixed
// +20,+20 offset. The clones become the new selection.
func (e *Editor) Duplicate() {
	sel := e.selected()
	if len(sel) == 0 {
		return
	}
	e.clearSelection()
	for _, a := range sel {
		clone := a.Clone()
		attrs := clone.Common()
		attrs.ID = uuid.NewString()
		attrs.Selected = true
		attrs.Editing = false
		transform.Translate(clone, duplicateOffset, duplicateOffset)
		e.annotations = append(e.annotations, clone)
	}
	e.commit()
	e.notify()
}

// SetColor changes the drawing color. When a selection exists the color
// is applied to it and committed as one undo step.
func (e *Editor) SetColor(c color.RGBA) {
	e.color = c
	if sel := e.selected(); len(sel) > 0 {
		for _, a := range sel {
			a.Common().Color = c
		}
		e.commit()
	}
	e.notify()
}

// SetStrokeWidth changes the stroke width, applying it to the selection
// as one undo step when a selection exists.
func (e *Editor) SetStrokeWidth(w float64) {
	if w <= 0 {
		return
	}
	e.strokeWidth = w
	if sel := e.selected(); len(sel) > 0 {
		for _, a := range sel {
			a.Common().StrokeWidth = w
		}
		e.commit()
	}
	e.notify()
}

// SetEraserSize changes the eraser radius.
func (e *Editor) SetEraserSize(r float64) {
	if r > 0 {
		e.eraserSize = r
	}
}

// SetFontSize changes the font size for new text annotations.
func (e *Editor) SetFontSize(s float64) {
	if s > 0 {
		e.fontSize = s
	}
}

// InsertText commits a text annotation at p. Empty text is discarded.
// The box is sized from the font metrics approximation used by the
// renderer.
func (e *Editor) InsertText(p geometry.Point2D, text string) {
	if text == "" {
		return
	}
	width := float64(len([]rune(text))) * e.fontSize * 0.6
	height := e.fontSize * 1.4
	e.annotations = append(e.annotations,
		annotation.NewText(p.X, p.Y, width, height, text, e.fontSize, e.color))
	e.commit()
	e.notify()
}

// InsertImage commits an image annotation at p from decoded pixels.
// A nil image is rejected so no partial annotation can enter the
// collection.
func (e *Editor) InsertImage(p geometry.Point2D, img image.Image) error {
	if img == nil {
		return ErrNilImage
	}
	rgba, ok := img.(*image.RGBA)
	if !ok {
		b := img.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	e.annotations = append(e.annotations, annotation.NewImage(p.X, p.Y, rgba))
	e.commit()
	e.notify()
	return nil
}

// ClearAll removes every annotation as a single undo step.
func (e *Editor) ClearAll() {
	if len(e.annotations) == 0 {
		return
	}
	e.annotations = nil
	e.clearHover()
	e.gesture = nil
	e.commit()
	e.notify()
}
