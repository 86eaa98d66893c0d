package transform

import (
	"image/color"
	"math"
	"reflect"
	"testing"

	"sketchpad/internal/annotation"
	"sketchpad/pkg/geometry"
)

var testColor = color.RGBA{R: 200, G: 40, B: 40, A: 255}

const epsilon = 1e-9

func newTestRect(x, y, w, h float64) *annotation.Shape {
	return annotation.NewRectShape(annotation.ShapeRectangle, geometry.NewRect(x, y, w, h), testColor, 2)
}

func rectOf(t *testing.T, a annotation.Annotation) geometry.Rect {
	t.Helper()
	s, ok := a.(*annotation.Shape)
	if !ok {
		t.Fatalf("expected *annotation.Shape, got %T", a)
	}
	return geometry.NewRect(s.X, s.Y, s.Width, s.Height)
}

// rectsClose compares rects within epsilon; the composed scaling
// transform accrues floating-point error, so exact equality is too strict.
func rectsClose(a, b geometry.Rect) bool {
	return math.Abs(a.X-b.X) < epsilon &&
		math.Abs(a.Y-b.Y) < epsilon &&
		math.Abs(a.Width-b.Width) < epsilon &&
		math.Abs(a.Height-b.Height) < epsilon
}

func TestResizeBottomRightGrows(t *testing.T) {
	original := newTestRect(0, 0, 100, 100)

	got := rectOf(t, Resize(original, AnchorBottomRight, geometry.Point2D{X: 150, Y: 150}))
	want := geometry.NewRect(0, 0, 150, 150)
	if !rectsClose(got, want) {
		t.Errorf("resize = %+v, want %+v", got, want)
	}
}

func TestResizeTopLeftInverts(t *testing.T) {
	// Dragging the top-left anchor past the opposite corner flips the
	// rectangle; the stored form stays normalized with positive extents.
	original := newTestRect(0, 0, 150, 150)

	got := rectOf(t, Resize(original, AnchorTopLeft, geometry.Point2D{X: 200, Y: 200}))
	want := geometry.NewRect(150, 150, 50, 50)
	if !rectsClose(got, want) {
		t.Errorf("inverted resize = %+v, want %+v", got, want)
	}
	if got.Width < 0 || got.Height < 0 {
		t.Error("negative extents must never be stored")
	}
}

func TestResizeEdgeAnchorsSingleAxis(t *testing.T) {
	tests := []struct {
		name    string
		anchor  Anchor
		pointer geometry.Point2D
		want    geometry.Rect
	}{
		{"top edge, height only", AnchorTop, geometry.Point2D{X: 999, Y: -20}, geometry.NewRect(10, -20, 100, 140)},
		{"bottom edge, height only", AnchorBottom, geometry.Point2D{X: -999, Y: 200}, geometry.NewRect(10, 20, 100, 180)},
		{"right edge, width only", AnchorRight, geometry.Point2D{X: 160, Y: 999}, geometry.NewRect(10, 20, 150, 100)},
		{"left edge, width only", AnchorLeft, geometry.Point2D{X: 0, Y: 999}, geometry.NewRect(0, 20, 110, 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := newTestRect(10, 20, 100, 100)
			got := rectOf(t, Resize(original, tt.anchor, tt.pointer))
			if !rectsClose(got, tt.want) {
				t.Errorf("resize = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResizeFixedPointInvariant(t *testing.T) {
	original := newTestRect(10, 20, 80, 60)
	b := annotation.Bounds(original)
	pointer := geometry.Point2D{X: 140, Y: -35}

	for anchor := Anchor(0); anchor < AnchorCount; anchor++ {
		fixed := fixedPoint(anchor, b)
		resized := Resize(original, anchor, pointer)
		nb := annotation.Bounds(resized)

		// The fixed point must still be a corner of the new bounds.
		corners := []geometry.Point2D{nb.TopLeft(), nb.TopRight(), nb.BottomLeft(), nb.BottomRight()}
		found := false
		for _, c := range corners {
			if math.Abs(c.X-fixed.X) < epsilon && math.Abs(c.Y-fixed.Y) < epsilon {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("anchor %d: fixed point %v not preserved in bounds %+v", anchor, fixed, nb)
		}
	}
}

func TestResizeDeterministic(t *testing.T) {
	original := annotation.NewPointShape(annotation.ShapePolygon, []geometry.Point2D{
		{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 30, Y: 70},
	}, testColor, 2)
	pointer := geometry.Point2D{X: 163, Y: -48}

	first := Resize(original, AnchorTopRight, pointer)
	second := Resize(original, AnchorTopRight, pointer)

	if !reflect.DeepEqual(first, second) {
		t.Error("resize from the same original and pointer must be identical")
	}
	// And intermediate drag positions must not influence the result.
	_ = Resize(original, AnchorTopRight, geometry.Point2D{X: 10, Y: 10})
	third := Resize(original, AnchorTopRight, pointer)
	if !reflect.DeepEqual(first, third) {
		t.Error("resize must not depend on the drag path")
	}
}

func TestResizePointShapeScalesEveryPoint(t *testing.T) {
	line := annotation.NewPointShape(annotation.ShapeLine, []geometry.Point2D{
		{X: 0, Y: 0}, {X: 100, Y: 50},
	}, testColor, 2)

	// Doubling via the bottom-right anchor scales about the top-left.
	resized := Resize(line, AnchorBottomRight, geometry.Point2D{X: 200, Y: 100}).(*annotation.Shape)

	want := []geometry.Point2D{{X: 0, Y: 0}, {X: 200, Y: 100}}
	for i, p := range resized.Points {
		if math.Abs(p.X-want[i].X) > epsilon || math.Abs(p.Y-want[i].Y) > epsilon {
			t.Errorf("point %d = %v, want %v", i, p, want[i])
		}
	}
}

func TestResizeStroke(t *testing.T) {
	stroke := annotation.NewStroke([]geometry.Point2D{
		{X: 0, Y: 0}, {X: 50, Y: 50}, {X: 100, Y: 0},
	}, testColor, 2)

	resized := Resize(stroke, AnchorRight, geometry.Point2D{X: 50, Y: 999}).(*annotation.Stroke)

	want := []geometry.Point2D{{X: 0, Y: 0}, {X: 25, Y: 50}, {X: 50, Y: 0}}
	for i, p := range resized.Points {
		if math.Abs(p.X-want[i].X) > epsilon || math.Abs(p.Y-want[i].Y) > epsilon {
			t.Errorf("point %d = %v, want %v", i, p, want[i])
		}
	}
}

func TestResizeZeroExtentGuard(t *testing.T) {
	// A vertical line has zero width; the width rate must fall back to 1
	// instead of dividing by zero.
	vertical := annotation.NewPointShape(annotation.ShapeLine, []geometry.Point2D{
		{X: 50, Y: 0}, {X: 50, Y: 100},
	}, testColor, 2)

	resized := Resize(vertical, AnchorBottomRight, geometry.Point2D{X: 80, Y: 200}).(*annotation.Shape)

	for i, p := range resized.Points {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			t.Fatalf("point %d = %v contains NaN/Inf", i, p)
		}
		if math.Abs(p.X-50) > epsilon {
			t.Errorf("point %d X = %v, want unchanged 50", i, p.X)
		}
	}
	if math.Abs(resized.Points[1].Y-200) > epsilon {
		t.Errorf("height did not follow pointer: %v", resized.Points[1].Y)
	}
}

func TestResizeDoesNotMutateOriginal(t *testing.T) {
	original := newTestRect(0, 0, 100, 100)
	Resize(original, AnchorBottomRight, geometry.Point2D{X: 300, Y: 300})

	if got := rectOf(t, original); got != (geometry.Rect{Width: 100, Height: 100}) {
		t.Errorf("original mutated: %+v", got)
	}
}

func TestAnchorPositions(t *testing.T) {
	b := geometry.NewRect(0, 0, 100, 50)
	pos := AnchorPositions(b)

	want := [AnchorCount]geometry.Point2D{
		{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 25},
		{X: 100, Y: 50}, {X: 50, Y: 50}, {X: 0, Y: 50}, {X: 0, Y: 25},
	}
	if pos != want {
		t.Errorf("AnchorPositions = %v, want %v", pos, want)
	}
}

func TestHoveredAnchor(t *testing.T) {
	b := geometry.NewRect(0, 0, 100, 100)

	tests := []struct {
		name   string
		p      geometry.Point2D
		want   Anchor
		wantOK bool
	}{
		{"on top-left", geometry.Point2D{X: 0, Y: 0}, AnchorTopLeft, true},
		{"within radius of bottom-right", geometry.Point2D{X: 108, Y: 108}, AnchorBottomRight, true},
		{"outside radius", geometry.Point2D{X: 120, Y: 120}, 0, false},
		{"near bottom-center", geometry.Point2D{X: 50, Y: 110}, AnchorBottom, true},
		{"center of box", geometry.Point2D{X: 50, Y: 50}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HoveredAnchor(tt.p, b)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("HoveredAnchor(%v) = (%v, %v), want (%v, %v)", tt.p, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTranslate(t *testing.T) {
	s := annotation.NewPointShape(annotation.ShapePolyline, []geometry.Point2D{
		{X: 1, Y: 2}, {X: 3, Y: 4},
	}, testColor, 2)
	Translate(s, 10, -5)

	if s.Points[0] != (geometry.Point2D{X: 11, Y: -3}) || s.Points[1] != (geometry.Point2D{X: 13, Y: -1}) {
		t.Errorf("points after translate: %v", s.Points)
	}
	if s.X != 11 || s.Y != -3 {
		t.Errorf("origin after translate: (%v, %v)", s.X, s.Y)
	}

	txt := annotation.NewText(5, 5, 10, 10, "x", 12, testColor)
	Translate(txt, -5, 5)
	if txt.X != 0 || txt.Y != 10 {
		t.Errorf("text after translate: (%v, %v)", txt.X, txt.Y)
	}
}

func TestCursorForAnchor(t *testing.T) {
	if CursorForAnchor(AnchorTopLeft) != CursorResizeNW {
		t.Error("top-left anchor cursor")
	}
	if CursorForAnchor(AnchorRight) != CursorResizeE {
		t.Error("right anchor cursor")
	}
	if CursorForAnchor(Anchor(99)) != CursorDefault {
		t.Error("out-of-range anchor must map to the default cursor")
	}
}
