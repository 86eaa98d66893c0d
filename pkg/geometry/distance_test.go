package geometry

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestDistanceToSegment(t *testing.T) {
	tests := []struct {
		name    string
		p, a, b Point2D
		want    float64
	}{
		{"on segment", Point2D{5, 0}, Point2D{0, 0}, Point2D{10, 0}, 0},
		{"above middle", Point2D{5, 3}, Point2D{0, 0}, Point2D{10, 0}, 3},
		{"beyond start", Point2D{-4, 3}, Point2D{0, 0}, Point2D{10, 0}, 5},
		{"beyond end", Point2D{13, 4}, Point2D{0, 0}, Point2D{10, 0}, 5},
		{"degenerate segment", Point2D{3, 4}, Point2D{0, 0}, Point2D{0, 0}, 5},
		{"diagonal", Point2D{0, 2}, Point2D{-1, -1}, Point2D{1, 1}, math.Sqrt(2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceToSegment(tt.p, tt.a, tt.b)
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("DistanceToSegment(%v, %v, %v) = %v, want %v", tt.p, tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDistanceToPolyline(t *testing.T) {
	square := []Point2D{{0, 0}, {10, 0}, {10, 10}, {0, 10}}

	tests := []struct {
		name   string
		p      Point2D
		points []Point2D
		closed bool
		want   float64
	}{
		{"near open side, open", Point2D{5, 12}, square, false, 2},
		{"near closing segment, closed", Point2D{-2, 5}, square, true, 2},
		{"near closing segment, open", Point2D{-2, 5}, square, false, math.Sqrt(4 + 25)},
		{"single point", Point2D{0, 0}, []Point2D{{3, 4}}, false, math.Inf(1)},
		{"empty", Point2D{0, 0}, nil, true, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceToPolyline(tt.p, tt.points, tt.closed)
			if math.IsInf(tt.want, 1) {
				if !math.IsInf(got, 1) {
					t.Errorf("DistanceToPolyline() = %v, want +Inf", got)
				}
				return
			}
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("DistanceToPolyline() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDistanceToQuadBezier(t *testing.T) {
	// Control points of a symmetric arch from (0,0) to (100,0) peaking at y=50.
	p0 := Point2D{0, 0}
	p1 := Point2D{50, 100}
	p2 := Point2D{100, 0}

	// The curve passes through (50, 50) at t=0.5.
	if d := DistanceToQuadBezier(Point2D{50, 50}, p0, p1, p2); d > 0.5 {
		t.Errorf("distance at curve apex = %v, want near 0", d)
	}
	// Endpoints are exact samples.
	if d := DistanceToQuadBezier(p0, p0, p1, p2); d != 0 {
		t.Errorf("distance at start point = %v, want 0", d)
	}
	// A far point keeps a large distance.
	if d := DistanceToQuadBezier(Point2D{50, -200}, p0, p1, p2); d < 190 {
		t.Errorf("distance to far point = %v, want >= 190", d)
	}
}

func TestDistanceToRect(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}

	tests := []struct {
		name string
		p    Point2D
		want float64
	}{
		{"inside", Point2D{5, 5}, 0},
		{"on edge", Point2D{10, 5}, 0},
		{"right of", Point2D{14, 5}, 4},
		{"corner diagonal", Point2D{13, 14}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceToRect(tt.p, r)
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("DistanceToRect(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestSnapToAngle(t *testing.T) {
	start := Point2D{0, 0}
	step := math.Pi / 4

	tests := []struct {
		name string
		end  Point2D
	}{
		{"already horizontal", Point2D{10, 0}},
		{"near horizontal snaps flat", Point2D{10, 1}},
		{"near diagonal snaps to 45", Point2D{10, 9}},
		{"coincident endpoints", Point2D{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SnapToAngle(start, tt.end, step)

			// Length is always preserved.
			if math.Abs(start.Distance(got)-start.Distance(tt.end)) > epsilon {
				t.Errorf("SnapToAngle changed length: got %v, want %v",
					start.Distance(got), start.Distance(tt.end))
			}
			// Resulting angle is a multiple of step.
			if got != start {
				angle := math.Atan2(got.Y-start.Y, got.X-start.X)
				rem := math.Mod(angle, step)
				if math.Abs(rem) > epsilon && math.Abs(math.Abs(rem)-step) > epsilon {
					t.Errorf("SnapToAngle angle %v is not a multiple of %v", angle, step)
				}
			}
		})
	}
}

func TestBoundingBox(t *testing.T) {
	tests := []struct {
		name   string
		points []Point2D
		want   Rect
	}{
		{"empty", nil, Rect{}},
		{"single point", []Point2D{{3, 4}}, Rect{X: 3, Y: 4}},
		{"spread", []Point2D{{5, 1}, {-2, 8}, {3, -4}}, Rect{X: -2, Y: -4, Width: 7, Height: 12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BoundingBox(tt.points)
			if got != tt.want {
				t.Errorf("BoundingBox(%v) = %+v, want %+v", tt.points, got, tt.want)
			}
		})
	}
}

func TestScalingAround(t *testing.T) {
	fixed := Point2D{10, 20}

	tests := []struct {
		name   string
		sx, sy float64
		p      Point2D
		want   Point2D
	}{
		{"fixed point is invariant", 2.5, -3, Point2D{10, 20}, Point2D{10, 20}},
		{"doubling", 2, 2, Point2D{11, 21}, Point2D{12, 22}},
		{"inversion", -1, 1, Point2D{12, 20}, Point2D{8, 20}},
		{"identity rates", 1, 1, Point2D{-4, 7}, Point2D{-4, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScalingAround(fixed, tt.sx, tt.sy).Apply(tt.p)
			if math.Abs(got.X-tt.want.X) > epsilon || math.Abs(got.Y-tt.want.Y) > epsilon {
				t.Errorf("ScalingAround(%v, %v, %v).Apply(%v) = %v, want %v",
					fixed, tt.sx, tt.sy, tt.p, got, tt.want)
			}
		})
	}
}

func TestNormalizedRect(t *testing.T) {
	got := NormalizedRect(Point2D{10, 2}, Point2D{-3, 8})
	want := Rect{X: -3, Y: 2, Width: 13, Height: 6}
	if got != want {
		t.Errorf("NormalizedRect = %+v, want %+v", got, want)
	}
}
