// Package transform implements interactive geometry transforms: the
// rate-based 8-anchor resize, body-drag translation, and anchor hit
// testing for the resize handles around a selection.
package transform

import (
	"sketchpad/internal/annotation"
	"sketchpad/pkg/geometry"
)

// Anchor identifies one of the eight resize handles, indexed clockwise
// from the top-left corner.
type Anchor int

const (
	AnchorTopLeft Anchor = iota
	AnchorTop
	AnchorTopRight
	AnchorRight
	AnchorBottomRight
	AnchorBottom
	AnchorBottomLeft
	AnchorLeft

	// AnchorCount is the number of resize handles.
	AnchorCount = 8
)

// AnchorHitRadius is the pixel radius of the circular hit area around
// each resize handle.
const AnchorHitRadius = 12.0

// AnchorPositions returns the world positions of the eight handles for a
// bounding box, indexed by Anchor. Positions are computed fresh from the
// bounds on every call and never cached.
func AnchorPositions(b geometry.Rect) [AnchorCount]geometry.Point2D {
	midX := b.X + b.Width/2
	midY := b.Y + b.Height/2
	return [AnchorCount]geometry.Point2D{
		AnchorTopLeft:     {X: b.X, Y: b.Y},
		AnchorTop:         {X: midX, Y: b.Y},
		AnchorTopRight:    {X: b.X + b.Width, Y: b.Y},
		AnchorRight:       {X: b.X + b.Width, Y: midY},
		AnchorBottomRight: {X: b.X + b.Width, Y: b.Y + b.Height},
		AnchorBottom:      {X: midX, Y: b.Y + b.Height},
		AnchorBottomLeft:  {X: b.X, Y: b.Y + b.Height},
		AnchorLeft:        {X: b.X, Y: midY},
	}
}

// HoveredAnchor returns the handle whose hit circle contains p, testing
// in anchor index order. The second result is false when no handle is hit.
func HoveredAnchor(p geometry.Point2D, b geometry.Rect) (Anchor, bool) {
	for i, pos := range AnchorPositions(b) {
		if p.Distance(pos) <= AnchorHitRadius {
			return Anchor(i), true
		}
	}
	return 0, false
}

// fixedPoint returns the point that must not move while the given anchor
// is dragged: the diagonally opposite corner for corner anchors, and the
// corresponding corner of the opposite edge for edge anchors (the
// non-resizing axis is then neutralized by a rate of 1).
func fixedPoint(anchor Anchor, b geometry.Rect) geometry.Point2D {
	switch anchor {
	case AnchorTopLeft:
		return b.BottomRight()
	case AnchorTop, AnchorTopRight:
		return b.BottomLeft()
	case AnchorRight, AnchorBottomRight, AnchorBottom:
		return b.TopLeft()
	case AnchorBottomLeft, AnchorLeft:
		return b.TopRight()
	}
	return b.TopLeft()
}

// rates computes the signed width and height scale factors for dragging
// the anchor to the pointer position. A negative rate represents an
// inverted (flipped) shape. A zero original extent yields a rate of 1 on
// that axis so degenerate geometry never produces NaN or Inf.
func rates(anchor Anchor, b geometry.Rect, fixed, pointer geometry.Point2D) (widthRate, heightRate float64) {
	widthRate, heightRate = 1, 1

	if b.Width != 0 {
		switch anchor {
		case AnchorTopLeft, AnchorBottomLeft, AnchorLeft:
			widthRate = (fixed.X - pointer.X) / b.Width
		case AnchorTopRight, AnchorRight, AnchorBottomRight:
			widthRate = (pointer.X - fixed.X) / b.Width
		}
	}
	if b.Height != 0 {
		switch anchor {
		case AnchorTopLeft, AnchorTop, AnchorTopRight:
			heightRate = (fixed.Y - pointer.Y) / b.Height
		case AnchorBottomRight, AnchorBottom, AnchorBottomLeft:
			heightRate = (pointer.Y - fixed.Y) / b.Height
		}
	}
	return widthRate, heightRate
}

// Resize recomputes an annotation's geometry for a drag of the given
// anchor to the pointer position. It is a pure function of the original
// pre-resize annotation, the anchor, and the pointer: callers re-invoke
// it from the same immutable original on every pointer move, so the
// result is independent of the drag path.
//
// Rectangle-like annotations are normalized back to a top-left origin
// with non-negative extents; point-based annotations scale every control
// point about the fixed corner.
func Resize(original annotation.Annotation, anchor Anchor, pointer geometry.Point2D) annotation.Annotation {
	b := annotation.Bounds(original)
	fixed := fixedPoint(anchor, b)
	widthRate, heightRate := rates(anchor, b, fixed, pointer)
	scale := geometry.ScalingAround(fixed, widthRate, heightRate)

	out := original.Clone()
	switch v := out.(type) {
	case *annotation.Stroke:
		v.Points = scale.ApplyAll(v.Points)
	case *annotation.Shape:
		if v.Kind.IsPointBased() {
			v.Points = scale.ApplyAll(v.Points)
			if len(v.Points) > 0 {
				v.X = v.Points[0].X
				v.Y = v.Points[0].Y
			}
		} else {
			r := resizeRect(geometry.NewRect(v.X, v.Y, v.Width, v.Height), scale)
			v.X, v.Y, v.Width, v.Height = r.X, r.Y, r.Width, r.Height
		}
	case *annotation.Text:
		r := resizeRect(geometry.NewRect(v.X, v.Y, v.Width, v.Height), scale)
		v.X, v.Y, v.Width, v.Height = r.X, r.Y, r.Width, r.Height
	case *annotation.Image:
		r := resizeRect(geometry.NewRect(v.X, v.Y, v.Width, v.Height), scale)
		v.X, v.Y, v.Width, v.Height = r.X, r.Y, r.Width, r.Height
	}
	return out
}

func resizeRect(r geometry.Rect, scale geometry.AffineTransform) geometry.Rect {
	return geometry.NormalizedRect(scale.Apply(r.TopLeft()), scale.Apply(r.BottomRight()))
}

// Translate moves an annotation by the given delta, mutating it in place.
func Translate(a annotation.Annotation, dx, dy float64) {
	switch v := a.(type) {
	case *annotation.Stroke:
		translatePoints(v.Points, dx, dy)
	case *annotation.Shape:
		translatePoints(v.Points, dx, dy)
		v.X += dx
		v.Y += dy
	case *annotation.Text:
		v.X += dx
		v.Y += dy
	case *annotation.Image:
		v.X += dx
		v.Y += dy
	}
}

func translatePoints(points []geometry.Point2D, dx, dy float64) {
	for i := range points {
		points[i].X += dx
		points[i].Y += dy
	}
}
