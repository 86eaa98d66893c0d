package editor

import (
	"math"

	"sketchpad/internal/annotation"
	"sketchpad/internal/transform"
	"sketchpad/pkg/geometry"
)

// lineSnapStep is the angle quantum for shift-constrained lines.
const lineSnapStep = math.Pi / 4

// gesture is the closed set of in-progress interaction states. Exactly
// zero or one gesture exists at a time, which makes the mutual-exclusion
// invariant structural rather than conventional.
type gesture interface{ isGesture() }

// freehandGesture accumulates brush points between down and up.
type freehandGesture struct {
	points []geometry.Point2D
}

// shapeDragGesture tracks a two-corner drag for rectangle, ellipse, and
// line shapes.
type shapeDragGesture struct {
	kind      annotation.ShapeKind
	start     geometry.Point2D
	current   geometry.Point2D
	constrain bool
}

// accumGesture tracks multi-click vertex accumulation for polygon,
// polyline, and bezier shapes. It survives pointer-up and ends on an
// explicit close, tool switch, or cancellation.
type accumGesture struct {
	kind       annotation.ShapeKind
	points     []geometry.Point2D
	current    geometry.Point2D
	hasCurrent bool
}

// marqueeGesture tracks a rubber-band selection rectangle.
type marqueeGesture struct {
	start   geometry.Point2D
	current geometry.Point2D
}

// dragGesture tracks a body drag of the selected annotations.
type dragGesture struct {
	last  geometry.Point2D
	moved bool
}

// resizeGesture tracks an anchor drag. original is an immutable snapshot
// of the pre-resize annotation; every move recomputes the live geometry
// from it so the result is independent of the drag path.
type resizeGesture struct {
	id       string
	anchor   transform.Anchor
	original annotation.Annotation
	moved    bool
}

// pointEditGesture tracks dragging a single control point.
type pointEditGesture struct {
	id    string
	index int
	moved bool
}

// eraseGesture tracks a held eraser drag; removals are immediate and the
// whole drag commits as one undo step.
type eraseGesture struct {
	removed bool
}

func (*freehandGesture) isGesture()  {}
func (*shapeDragGesture) isGesture() {}
func (*accumGesture) isGesture()     {}
func (*marqueeGesture) isGesture()   {}
func (*dragGesture) isGesture()      {}
func (*resizeGesture) isGesture()    {}
func (*pointEditGesture) isGesture() {}
func (*eraseGesture) isGesture()     {}

// PointerDown begins or extends a gesture at p.
func (e *Editor) PointerDown(p geometry.Point2D, mods Modifiers) {
	switch e.tool {
	case ToolBrush:
		e.gesture = &freehandGesture{points: []geometry.Point2D{p}}
	case ToolShape:
		e.shapeDown(p)
	case ToolEraser:
		g := &eraseGesture{}
		g.removed = e.eraseAt(p)
		e.gesture = g
	case ToolSelect:
		e.selectDown(p, mods)
	case ToolText:
		// Text entry is driven by the UI layer through InsertText.
	}
	e.notify()
}

// PointerMove advances the active gesture, or updates hover state when
// idle. Hover queries never mutate the annotation collection.
func (e *Editor) PointerMove(p geometry.Point2D, mods Modifiers) {
	switch g := e.gesture.(type) {
	case nil:
		e.updateHover(p)
	case *freehandGesture:
		g.points = append(g.points, p)
	case *shapeDragGesture:
		g.current = p
		g.constrain = mods.Shift
	case *accumGesture:
		g.current = p
		g.hasCurrent = true
	case *marqueeGesture:
		g.current = p
	case *dragGesture:
		dx, dy := p.X-g.last.X, p.Y-g.last.Y
		for _, a := range e.selected() {
			transform.Translate(a, dx, dy)
		}
		g.last = p
		g.moved = true
	case *resizeGesture:
		if _, i := e.byID(g.id); i >= 0 {
			resized := transform.Resize(g.original, g.anchor, p)
			e.annotations[i] = resized
			g.moved = true
		}
	case *pointEditGesture:
		if a, _ := e.byID(g.id); a != nil {
			points := annotation.ControlPoints(a)
			if g.index >= 0 && g.index < len(points) {
				points[g.index] = p
				g.moved = true
			}
		}
	case *eraseGesture:
		if e.eraseAt(p) {
			g.removed = true
		}
	}
	e.notify()
}

// PointerUp completes the active gesture. Multi-click accumulation
// survives pointer-up; everything else finalizes here.
func (e *Editor) PointerUp(p geometry.Point2D, mods Modifiers) {
	switch g := e.gesture.(type) {
	case *freehandGesture:
		if len(g.points) > 0 {
			e.annotations = append(e.annotations,
				annotation.NewStroke(g.points, e.color, e.strokeWidth))
			e.commit()
		}
		e.gesture = nil
	case *shapeDragGesture:
		g.current = p
		e.commitShapeDrag(g)
		e.gesture = nil
	case *marqueeGesture:
		r := geometry.NormalizedRect(g.start, g.current)
		for _, a := range e.annotations {
			a.Common().Selected = annotation.ContainedInRect(a, r)
			a.Common().Editing = false
		}
		e.gesture = nil
	case *dragGesture:
		if g.moved {
			e.commit()
		}
		e.gesture = nil
	case *resizeGesture:
		if g.moved {
			e.commit()
		}
		e.gesture = nil
	case *pointEditGesture:
		if g.moved {
			e.commit()
		}
		e.gesture = nil
	case *eraseGesture:
		if g.removed {
			e.commit()
		}
		e.gesture = nil
	case *accumGesture:
		// Accumulation continues across clicks.
	}
	e.notify()
}

// DoubleClick closes an in-progress polyline, or enters point-edit mode
// on a point-based annotation under the select tool.
func (e *Editor) DoubleClick(p geometry.Point2D, mods Modifiers) {
	if g, ok := e.gesture.(*accumGesture); ok && g.kind == annotation.ShapePolyline {
		if len(g.points) == 0 || g.points[len(g.points)-1] != p {
			g.points = append(g.points, p)
		}
		if len(g.points) >= 2 {
			e.annotations = append(e.annotations,
				annotation.NewPointShape(annotation.ShapePolyline, g.points, e.color, e.strokeWidth))
			e.commit()
		}
		e.gesture = nil
		e.notify()
		return
	}

	if e.tool == ToolSelect && e.gesture == nil {
		if hit := e.hitAt(p); hit != nil && annotation.ControlPoints(hit) != nil {
			e.clearSelection()
			hit.Common().Selected = true
			hit.Common().Editing = true
			e.notify()
		}
	}
}

// VertexClick closes an in-progress polygon when its first vertex is
// clicked and at least three vertices have been accumulated.
func (e *Editor) VertexClick(index int) {
	g, ok := e.gesture.(*accumGesture)
	if !ok || g.kind != annotation.ShapePolygon {
		return
	}
	if index == 0 && len(g.points) >= 3 {
		e.commitAccum(g)
		e.gesture = nil
		e.notify()
	}
}

// shapeDown starts or extends a shape gesture depending on the shape kind.
func (e *Editor) shapeDown(p geometry.Point2D) {
	if g, ok := e.gesture.(*accumGesture); ok {
		switch g.kind {
		case annotation.ShapePolygon:
			// Clicking near the first vertex closes the polygon.
			if len(g.points) >= 3 && p.Distance(g.points[0]) < annotation.VertexThreshold {
				e.commitAccum(g)
				e.gesture = nil
				return
			}
			g.points = append(g.points, p)
		case annotation.ShapeBezier:
			g.points = append(g.points, p)
			if len(g.points) == 3 {
				e.commitAccum(g)
				e.gesture = nil
			}
		case annotation.ShapePolyline:
			g.points = append(g.points, p)
		}
		return
	}

	switch e.shapeKind {
	case annotation.ShapeRectangle, annotation.ShapeEllipse, annotation.ShapeLine:
		e.gesture = &shapeDragGesture{kind: e.shapeKind, start: p, current: p}
	default:
		e.gesture = &accumGesture{kind: e.shapeKind, points: []geometry.Point2D{p}}
	}
}

// selectDown resolves a pointer-down under the select tool. For a single
// selection, control-point grab, anchor grab, and body drag are mutually
// exclusive and checked in that priority order.
func (e *Editor) selectDown(p geometry.Point2D, mods Modifiers) {
	if sel := e.selected(); len(sel) == 1 {
		target := sel[0]
		if target.Common().Editing {
			if idx := annotation.HitControlPoint(p, target); idx >= 0 {
				e.gesture = &pointEditGesture{id: target.Common().ID, index: idx}
				return
			}
		}
		if anchor, ok := transform.HoveredAnchor(p, annotation.Bounds(target)); ok {
			e.gesture = &resizeGesture{
				id:       target.Common().ID,
				anchor:   anchor,
				original: target.Clone(),
			}
			return
		}
	}

	hit := e.hitAt(p)
	if hit == nil {
		e.clearSelection()
		e.gesture = &marqueeGesture{start: p, current: p}
		return
	}

	if mods.Shift {
		hit.Common().Selected = !hit.Common().Selected
		hit.Common().Editing = false
	} else if !hit.Common().Selected {
		e.clearSelection()
		hit.Common().Selected = true
	}
	if hit.Common().Selected {
		e.gesture = &dragGesture{last: p}
	}
}

// commitShapeDrag normalizes and commits a completed two-corner drag.
// Degenerate shapes are discarded, never committed.
func (e *Editor) commitShapeDrag(g *shapeDragGesture) {
	switch g.kind {
	case annotation.ShapeLine:
		end := g.current
		if g.constrain {
			end = geometry.SnapToAngle(g.start, end, lineSnapStep)
		}
		if g.start == end {
			return
		}
		e.annotations = append(e.annotations,
			annotation.NewPointShape(annotation.ShapeLine,
				[]geometry.Point2D{g.start, end}, e.color, e.strokeWidth))
	default:
		r := dragRect(g)
		if r.IsDegenerate() {
			return
		}
		e.annotations = append(e.annotations,
			annotation.NewRectShape(g.kind, r, e.color, e.strokeWidth))
	}
	e.commit()
}

// dragRect returns the normalized rectangle for a shape drag, forcing
// equal extents when constrained (square/circle).
func dragRect(g *shapeDragGesture) geometry.Rect {
	end := g.current
	if g.constrain {
		dx := end.X - g.start.X
		dy := end.Y - g.start.Y
		side := math.Max(math.Abs(dx), math.Abs(dy))
		end.X = g.start.X + math.Copysign(side, dx)
		end.Y = g.start.Y + math.Copysign(side, dy)
	}
	return geometry.NormalizedRect(g.start, end)
}

// commitAccum commits a completed multi-click shape.
func (e *Editor) commitAccum(g *accumGesture) {
	e.annotations = append(e.annotations,
		annotation.NewPointShape(g.kind, g.points, e.color, e.strokeWidth))
	e.commit()
}

// eraseAt removes the first annotation intersecting the eraser circle.
// Removal is immediate and destructive; the commit happens once at
// gesture end.
func (e *Editor) eraseAt(p geometry.Point2D) bool {
	for i, a := range e.annotations {
		if annotation.IntersectsCircle(p, e.eraserSize, a) {
			e.annotations = append(e.annotations[:i], e.annotations[i+1:]...)
			if e.hoveredID == a.Common().ID {
				e.hoveredID = ""
			}
			return true
		}
	}
	return false
}

// Marquee returns the active rubber-band rectangle, if any.
func (e *Editor) Marquee() (geometry.Rect, bool) {
	if g, ok := e.gesture.(*marqueeGesture); ok {
		return geometry.NormalizedRect(g.start, g.current), true
	}
	return geometry.Rect{}, false
}

// Preview returns a transient annotation for the in-progress drawing
// gesture, for display only; it is not part of the collection. Returns
// nil when nothing is being drawn.
func (e *Editor) Preview() annotation.Annotation {
	switch g := e.gesture.(type) {
	case *freehandGesture:
		return annotation.NewStroke(g.points, e.color, e.strokeWidth)
	case *shapeDragGesture:
		if g.kind == annotation.ShapeLine {
			end := g.current
			if g.constrain {
				end = geometry.SnapToAngle(g.start, end, lineSnapStep)
			}
			return annotation.NewPointShape(annotation.ShapeLine,
				[]geometry.Point2D{g.start, end}, e.color, e.strokeWidth)
		}
		return annotation.NewRectShape(g.kind, dragRect(g), e.color, e.strokeWidth)
	case *accumGesture:
		points := g.points
		if g.hasCurrent {
			points = append(clonePoints(points), g.current)
		}
		kind := g.kind
		if kind == annotation.ShapeBezier && len(points) != 3 {
			// An unfinished bezier previews as its control polyline.
			kind = annotation.ShapePolyline
		}
		return annotation.NewPointShape(kind, points, e.color, e.strokeWidth)
	}
	return nil
}

func clonePoints(points []geometry.Point2D) []geometry.Point2D {
	out := make([]geometry.Point2D, len(points))
	copy(out, points)
	return out
}
