// Package editor implements the interaction state machine of the drawing
// surface: it owns the working annotation collection, tracks the current
// tool and the single in-progress gesture, and commits completed gestures
// to history. All mutation happens synchronously on the pointer/keyboard
// event path; renderers read the editor's state between events.
package editor

import (
	"image/color"

	"sketchpad/internal/annotation"
	"sketchpad/internal/history"
	"sketchpad/internal/transform"
	"sketchpad/pkg/geometry"
)

// Tool identifies the active interaction tool.
type Tool int

const (
	ToolSelect Tool = iota
	ToolBrush
	ToolShape
	ToolText
	ToolEraser
)

// String returns the tool name.
func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolBrush:
		return "brush"
	case ToolShape:
		return "shape"
	case ToolText:
		return "text"
	case ToolEraser:
		return "eraser"
	}
	return "unknown"
}

// Modifiers carries the modifier-key state delivered with pointer events.
// Shift extends the selection on click and constrains proportions while
// dragging shapes.
type Modifiers struct {
	Shift bool
}

// Default tool settings.
const (
	DefaultStrokeWidth = 2.0
	DefaultEraserSize  = 20.0
	DefaultFontSize    = 16.0
)

// Editor is the annotation engine. It is not safe for concurrent use; all
// events and commands must be delivered from a single goroutine.
type Editor struct {
	annotations []annotation.Annotation
	log         *history.Log

	tool        Tool
	shapeKind   annotation.ShapeKind
	color       color.RGBA
	strokeWidth float64
	eraserSize  float64
	fontSize    float64

	// At most one gesture is in progress at any time; nil means idle.
	gesture gesture

	hoveredID     string
	hoveredAnchor transform.Anchor
	anchorHovered bool

	onChange func()
}

// New creates an editor with an empty canvas and default tool settings.
func New() *Editor {
	return &Editor{
		log:         history.New(),
		tool:        ToolSelect,
		shapeKind:   annotation.ShapeRectangle,
		color:       color.RGBA{A: 255},
		strokeWidth: DefaultStrokeWidth,
		eraserSize:  DefaultEraserSize,
		fontSize:    DefaultFontSize,
	}
}

// SetOnChange registers a callback invoked after every state change, used
// by the UI layer to schedule a repaint.
func (e *Editor) SetOnChange(fn func()) { e.onChange = fn }

func (e *Editor) notify() {
	if e.onChange != nil {
		e.onChange()
	}
}

// Annotations returns the working collection in draw order. Callers must
// treat the result as read-only.
func (e *Editor) Annotations() []annotation.Annotation { return e.annotations }

// Tool returns the active tool.
func (e *Editor) Tool() Tool { return e.tool }

// ShapeKind returns the active shape kind for the shape tool.
func (e *Editor) ShapeKind() annotation.ShapeKind { return e.shapeKind }

// Color returns the current drawing color.
func (e *Editor) Color() color.RGBA { return e.color }

// StrokeWidth returns the current stroke width.
func (e *Editor) StrokeWidth() float64 { return e.strokeWidth }

// EraserSize returns the eraser radius.
func (e *Editor) EraserSize() float64 { return e.eraserSize }

// FontSize returns the font size for new text annotations.
func (e *Editor) FontSize() float64 { return e.fontSize }

// SelectedIDs returns the IDs of all selected annotations in draw order.
func (e *Editor) SelectedIDs() []string {
	var ids []string
	for _, a := range e.annotations {
		if a.Common().Selected {
			ids = append(ids, a.Common().ID)
		}
	}
	return ids
}

// HoveredID returns the ID of the annotation under the pointer, or ""
// when none.
func (e *Editor) HoveredID() string { return e.hoveredID }

// HoveredAnchor returns the resize handle under the pointer for the
// single selected annotation. The second result is false when none.
func (e *Editor) HoveredAnchor() (transform.Anchor, bool) {
	return e.hoveredAnchor, e.anchorHovered
}

// SelectionBounds returns the bounding box of the single selected
// annotation, used to place resize handles. The second result is false
// unless exactly one annotation is selected.
func (e *Editor) SelectionBounds() (geometry.Rect, bool) {
	sel := e.selected()
	if len(sel) != 1 {
		return geometry.Rect{}, false
	}
	return annotation.Bounds(sel[0]), true
}

// CanUndo reports whether an undo step is available.
func (e *Editor) CanUndo() bool { return e.log.CanUndo() }

// CanRedo reports whether a redo step is available.
func (e *Editor) CanRedo() bool { return e.log.CanRedo() }

// selected returns the selected annotations in draw order.
func (e *Editor) selected() []annotation.Annotation {
	var out []annotation.Annotation
	for _, a := range e.annotations {
		if a.Common().Selected {
			out = append(out, a)
		}
	}
	return out
}

// byID returns the annotation with the given ID and its index, or -1.
func (e *Editor) byID(id string) (annotation.Annotation, int) {
	for i, a := range e.annotations {
		if a.Common().ID == id {
			return a, i
		}
	}
	return nil, -1
}

// hitAt returns the first annotation hit at p in collection order, or nil.
// Fixed iteration order makes hit-test ambiguity deterministic.
func (e *Editor) hitAt(p geometry.Point2D) annotation.Annotation {
	for _, a := range e.annotations {
		if annotation.HitTest(p, a, annotation.HitThreshold) {
			return a
		}
	}
	return nil
}

func (e *Editor) clearSelection() {
	for _, a := range e.annotations {
		a.Common().Selected = false
		a.Common().Editing = false
	}
}

func (e *Editor) clearHover() {
	e.hoveredID = ""
	e.anchorHovered = false
}

// updateHover refreshes the hovered annotation and hovered resize handle
// for an idle pointer move. Anchor positions are derived from the current
// selection bounds on every call.
func (e *Editor) updateHover(p geometry.Point2D) {
	e.hoveredID = ""
	if hit := e.hitAt(p); hit != nil {
		e.hoveredID = hit.Common().ID
	}

	e.anchorHovered = false
	if b, ok := e.SelectionBounds(); ok {
		if a, ok := transform.HoveredAnchor(p, b); ok {
			e.hoveredAnchor = a
			e.anchorHovered = true
		}
	}
}

// commit records the working collection as one undo step.
func (e *Editor) commit() {
	e.log.Commit(e.annotations)
}
