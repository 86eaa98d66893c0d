package annotation

import (
	"math"

	"sketchpad/pkg/geometry"
)

// Pixel thresholds for pointer interaction.
const (
	// HitThreshold is the distance within which a click selects a stroke
	// or shape outline.
	HitThreshold = 10.0
	// VertexThreshold is the distance within which a click during polygon
	// drawing counts as hitting an existing vertex (used to close).
	VertexThreshold = 15.0
	// ControlPointThreshold is the distance within which a click in
	// point-edit mode grabs a control point.
	ControlPointThreshold = 8.0
)

// HitTest reports whether the pointer position hits the annotation.
//
// Strokes and line-based shapes hit within threshold of any segment.
// Rectangles hit only near their four edges; the unfilled interior does
// not count. Ellipses use a circular approximation with radius
// max(width, height)/2, which is imprecise for elongated ellipses but kept
// for consistency with the eraser test. Text and images hit anywhere
// inside their bounds.
func HitTest(p geometry.Point2D, a Annotation, threshold float64) bool {
	switch v := a.(type) {
	case *Stroke:
		return distanceToPoints(p, v.Points, false) < threshold
	case *Shape:
		switch v.Kind {
		case ShapeRectangle:
			return distanceToRectEdges(p, geometry.NewRect(v.X, v.Y, v.Width, v.Height)) < threshold
		case ShapeEllipse:
			center := geometry.NewRect(v.X, v.Y, v.Width, v.Height).Center()
			radius := math.Max(v.Width, v.Height) / 2
			return math.Abs(p.Distance(center)-radius) < threshold
		case ShapeLine, ShapePolyline:
			return distanceToPoints(p, v.Points, false) < threshold
		case ShapePolygon:
			return distanceToPoints(p, v.Points, true) < threshold
		case ShapeBezier:
			if len(v.Points) != 3 {
				return false
			}
			return geometry.DistanceToQuadBezier(p, v.Points[0], v.Points[1], v.Points[2]) < threshold
		}
		return false
	case *Text, *Image:
		return Bounds(a).Contains(p)
	}
	return false
}

// HitControlPoint returns the index of the control point within
// ControlPointThreshold of p, or -1 if none. The first match wins.
func HitControlPoint(p geometry.Point2D, a Annotation) int {
	for i, cp := range ControlPoints(a) {
		if p.Distance(cp) < ControlPointThreshold {
			return i
		}
	}
	return -1
}

// ContainedInRect reports whether the annotation falls inside a marquee
// rectangle. Strokes count if any defining point is inside; all other
// kinds count only if their origin point is inside, so a large shape
// overlapping the marquee with its origin outside is not selected.
func ContainedInRect(a Annotation, r geometry.Rect) bool {
	switch v := a.(type) {
	case *Stroke:
		for _, p := range v.Points {
			if r.Contains(p) {
				return true
			}
		}
		return false
	case *Shape:
		if v.Kind.IsPointBased() {
			if len(v.Points) == 0 {
				return false
			}
			return r.Contains(v.Points[0])
		}
		return r.Contains(geometry.NewPoint2D(v.X, v.Y))
	case *Text:
		return r.Contains(geometry.NewPoint2D(v.X, v.Y))
	case *Image:
		return r.Contains(geometry.NewPoint2D(v.X, v.Y))
	}
	return false
}

// IntersectsCircle reports whether the eraser circle touches the
// annotation. Segment-based kinds test segment distance against the
// radius; rectangles, text, and images test closest-point distance to
// their bounds; ellipses use a conservative bounding-circle test.
func IntersectsCircle(center geometry.Point2D, radius float64, a Annotation) bool {
	switch v := a.(type) {
	case *Stroke:
		return distanceToPoints(center, v.Points, false) < radius
	case *Shape:
		switch v.Kind {
		case ShapeRectangle:
			return geometry.DistanceToRect(center, geometry.NewRect(v.X, v.Y, v.Width, v.Height)) < radius
		case ShapeEllipse:
			ellipseCenter := geometry.NewRect(v.X, v.Y, v.Width, v.Height).Center()
			return center.Distance(ellipseCenter) < radius+math.Max(v.Width, v.Height)/2
		case ShapeLine, ShapePolyline:
			return distanceToPoints(center, v.Points, false) < radius
		case ShapePolygon:
			return distanceToPoints(center, v.Points, true) < radius
		case ShapeBezier:
			if len(v.Points) != 3 {
				return false
			}
			return geometry.DistanceToQuadBezier(center, v.Points[0], v.Points[1], v.Points[2]) < radius
		}
		return false
	case *Text, *Image:
		return geometry.DistanceToRect(center, Bounds(a)) < radius
	}
	return false
}

// distanceToPoints measures distance to a point chain, falling back to
// plain point distance for a single-point chain.
func distanceToPoints(p geometry.Point2D, points []geometry.Point2D, closed bool) float64 {
	if len(points) == 1 {
		return p.Distance(points[0])
	}
	return geometry.DistanceToPolyline(p, points, closed)
}

func distanceToRectEdges(p geometry.Point2D, r geometry.Rect) float64 {
	corners := []geometry.Point2D{r.TopLeft(), r.TopRight(), r.BottomRight(), r.BottomLeft()}
	return geometry.DistanceToPolyline(p, corners, true)
}
