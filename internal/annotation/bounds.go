package annotation

import "sketchpad/pkg/geometry"

// Bounds computes the axis-aligned bounding box of an annotation from its
// defining geometry. Bounds are recomputed on every call; no annotation
// carries a cached bounds field. Degenerate geometry yields the zero Rect.
func Bounds(a Annotation) geometry.Rect {
	switch v := a.(type) {
	case *Stroke:
		return geometry.BoundingBox(v.Points)
	case *Shape:
		if v.Kind.IsPointBased() {
			return geometry.BoundingBox(v.Points)
		}
		return geometry.NewRect(v.X, v.Y, v.Width, v.Height)
	case *Text:
		return geometry.NewRect(v.X, v.Y, v.Width, v.Height)
	case *Image:
		return geometry.NewRect(v.X, v.Y, v.Width, v.Height)
	}
	return geometry.Rect{}
}
