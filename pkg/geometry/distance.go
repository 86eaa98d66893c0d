package geometry

import "math"

// bezierSamples is the number of samples used to approximate distance to a
// quadratic bezier curve. At 50 samples the approximation error is well
// under typical on-screen hit-test thresholds.
const bezierSamples = 50

// DistanceToSegment returns the Euclidean distance from p to the closest
// point on the segment [a, b]. A degenerate segment (a == b) reduces to
// point distance.
func DistanceToSegment(p, a, b Point2D) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return p.Distance(a)
	}

	ap := p.Sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	closest := a.Add(ab.Scale(t))
	return p.Distance(closest)
}

// DistanceToPolyline returns the minimum distance from p to any segment of
// the open polyline through the given points. When closed is true a closing
// segment from the last point back to the first is included. Returns +Inf
// for fewer than two points.
func DistanceToPolyline(p Point2D, points []Point2D, closed bool) float64 {
	if len(points) < 2 {
		return math.Inf(1)
	}

	min := math.Inf(1)
	for i := 0; i < len(points)-1; i++ {
		if d := DistanceToSegment(p, points[i], points[i+1]); d < min {
			min = d
		}
	}
	if closed {
		if d := DistanceToSegment(p, points[len(points)-1], points[0]); d < min {
			min = d
		}
	}
	return min
}

// QuadBezierPoint evaluates the quadratic bezier with control points
// p0, p1, p2 at parameter t in [0, 1].
func QuadBezierPoint(p0, p1, p2 Point2D, t float64) Point2D {
	u := 1 - t
	return Point2D{
		X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
		Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
	}
}

// DistanceToQuadBezier returns the approximate minimum distance from p to
// the quadratic bezier through control points p0, p1, p2. The curve is
// sampled at a fixed resolution rather than solved in closed form.
func DistanceToQuadBezier(p, p0, p1, p2 Point2D) float64 {
	min := math.Inf(1)
	for i := 0; i <= bezierSamples; i++ {
		t := float64(i) / bezierSamples
		if d := p.Distance(QuadBezierPoint(p0, p1, p2, t)); d < min {
			min = d
		}
	}
	return min
}

// DistanceToRect returns the distance from p to the closest point of the
// rectangle. Points inside the rectangle have distance zero.
func DistanceToRect(p Point2D, r Rect) float64 {
	closest := Point2D{
		X: math.Max(r.X, math.Min(p.X, r.X+r.Width)),
		Y: math.Max(r.Y, math.Min(p.Y, r.Y+r.Height)),
	}
	return p.Distance(closest)
}

// SnapToAngle projects end onto the nearest multiple of step radians around
// start, preserving the segment length. Used for constrained line drawing.
func SnapToAngle(start, end Point2D, step float64) Point2D {
	if step <= 0 || start == end {
		return end
	}
	angle := math.Atan2(end.Y-start.Y, end.X-start.X)
	snapped := math.Round(angle/step) * step
	length := start.Distance(end)
	return Point2D{
		X: start.X + length*math.Cos(snapped),
		Y: start.Y + length*math.Sin(snapped),
	}
}
