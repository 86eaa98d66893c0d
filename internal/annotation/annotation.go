// Package annotation defines the data model for drawable canvas objects:
// freehand strokes, geometric shapes, text, and raster images. Bounds are
// always derived from the defining geometry, never stored, so geometry and
// bounds cannot drift apart.
package annotation

import (
	"image"
	"image/color"

	"github.com/google/uuid"

	"sketchpad/pkg/geometry"
)

// ShapeKind identifies the geometric interpretation of a Shape.
type ShapeKind int

const (
	ShapeRectangle ShapeKind = iota
	ShapeEllipse
	ShapeLine
	ShapePolygon
	ShapePolyline
	ShapeBezier
)

// String returns the shape kind name.
func (k ShapeKind) String() string {
	switch k {
	case ShapeRectangle:
		return "rectangle"
	case ShapeEllipse:
		return "ellipse"
	case ShapeLine:
		return "line"
	case ShapePolygon:
		return "polygon"
	case ShapePolyline:
		return "polyline"
	case ShapeBezier:
		return "bezier"
	}
	return "unknown"
}

// IsPointBased reports whether the shape's authoritative geometry is its
// point list rather than its x/y/width/height fields.
func (k ShapeKind) IsPointBased() bool {
	return k != ShapeRectangle && k != ShapeEllipse
}

// Attrs holds the fields shared by every annotation kind.
//
// Editing is true only while the annotation is the single selected target
// of point-edit mode; Editing implies Selected and a selection set of one.
type Attrs struct {
	ID          string
	Color       color.RGBA
	StrokeWidth float64
	Selected    bool
	Editing     bool
}

// Annotation is the closed set of drawable object kinds. The only
// implementations are Stroke, Shape, Text, and Image in this package.
type Annotation interface {
	// Common returns the attributes shared by all kinds.
	Common() *Attrs
	// Clone returns a deep copy, preserving the ID.
	Clone() Annotation

	isAnnotation()
}

// Stroke is a freehand polyline accumulated during brush drawing.
type Stroke struct {
	Attrs
	Points []geometry.Point2D
}

// Shape is a geometric primitive. X/Y/Width/Height are authoritative for
// rectangle and ellipse only; point-based kinds (line, polygon, polyline,
// bezier) are defined entirely by Points.
type Shape struct {
	Attrs
	Kind   ShapeKind
	X      float64
	Y      float64
	Width  float64
	Height float64
	Points []geometry.Point2D
}

// Text is a positioned text box.
type Text struct {
	Attrs
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Text     string
	FontSize float64
}

// Image is a positioned raster image. Pixels is decoded, immutable pixel
// data owned by the annotation; it is never nil for an Image that has
// entered the collection.
type Image struct {
	Attrs
	X      float64
	Y      float64
	Width  float64
	Height float64
	Pixels *image.RGBA
}

func (s *Stroke) Common() *Attrs { return &s.Attrs }
func (s *Shape) Common() *Attrs  { return &s.Attrs }
func (t *Text) Common() *Attrs   { return &t.Attrs }
func (i *Image) Common() *Attrs  { return &i.Attrs }

func (s *Stroke) isAnnotation() {}
func (s *Shape) isAnnotation()  {}
func (t *Text) isAnnotation()   {}
func (i *Image) isAnnotation()  {}

// Clone returns a deep copy of the stroke.
func (s *Stroke) Clone() Annotation {
	c := *s
	c.Points = clonePoints(s.Points)
	return &c
}

// Clone returns a deep copy of the shape.
func (s *Shape) Clone() Annotation {
	c := *s
	c.Points = clonePoints(s.Points)
	return &c
}

// Clone returns a copy of the text annotation.
func (t *Text) Clone() Annotation {
	c := *t
	return &c
}

// Clone returns a copy of the image annotation. The pixel buffer is shared:
// decoded pixels are immutable for the annotation's lifetime.
func (i *Image) Clone() Annotation {
	c := *i
	return &c
}

func clonePoints(points []geometry.Point2D) []geometry.Point2D {
	if points == nil {
		return nil
	}
	out := make([]geometry.Point2D, len(points))
	copy(out, points)
	return out
}

func newAttrs(c color.RGBA, strokeWidth float64) Attrs {
	return Attrs{
		ID:          uuid.NewString(),
		Color:       c,
		StrokeWidth: strokeWidth,
	}
}

// NewStroke creates a stroke annotation from accumulated freehand points.
func NewStroke(points []geometry.Point2D, c color.RGBA, strokeWidth float64) *Stroke {
	return &Stroke{
		Attrs:  newAttrs(c, strokeWidth),
		Points: clonePoints(points),
	}
}

// NewRectShape creates a rectangle or ellipse shape from a normalized rect.
func NewRectShape(kind ShapeKind, r geometry.Rect, c color.RGBA, strokeWidth float64) *Shape {
	return &Shape{
		Attrs:  newAttrs(c, strokeWidth),
		Kind:   kind,
		X:      r.X,
		Y:      r.Y,
		Width:  r.Width,
		Height: r.Height,
	}
}

// NewPointShape creates a line, polygon, polyline, or bezier shape from its
// vertex list. The informational x/y fields are seeded from the first point.
func NewPointShape(kind ShapeKind, points []geometry.Point2D, c color.RGBA, strokeWidth float64) *Shape {
	s := &Shape{
		Attrs:  newAttrs(c, strokeWidth),
		Kind:   kind,
		Points: clonePoints(points),
	}
	if len(points) > 0 {
		s.X = points[0].X
		s.Y = points[0].Y
	}
	return s
}

// NewText creates a text annotation.
func NewText(x, y, width, height float64, text string, fontSize float64, c color.RGBA) *Text {
	return &Text{
		Attrs:    newAttrs(c, 1),
		X:        x,
		Y:        y,
		Width:    width,
		Height:   height,
		Text:     text,
		FontSize: fontSize,
	}
}

// NewImage creates an image annotation from decoded pixels. The display
// size defaults to the pixel dimensions.
func NewImage(x, y float64, pixels *image.RGBA) *Image {
	b := pixels.Bounds()
	return &Image{
		Attrs:  newAttrs(color.RGBA{A: 255}, 1),
		X:      x,
		Y:      y,
		Width:  float64(b.Dx()),
		Height: float64(b.Dy()),
		Pixels: pixels,
	}
}

// ControlPoints returns the independently editable vertices of an
// annotation, or nil for kinds without a point list.
func ControlPoints(a Annotation) []geometry.Point2D {
	switch v := a.(type) {
	case *Stroke:
		return v.Points
	case *Shape:
		if v.Kind.IsPointBased() {
			return v.Points
		}
	}
	return nil
}

// CloneAll deep-copies an annotation collection.
func CloneAll(annotations []Annotation) []Annotation {
	out := make([]Annotation, len(annotations))
	for i, a := range annotations {
		out[i] = a.Clone()
	}
	return out
}
