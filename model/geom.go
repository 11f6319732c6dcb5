package model

import "math"

// Point is a position on the field in meters. The origin is the centre of the
// field, +x points at the enemy goal.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Vector is a displacement or velocity in field coordinates.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Angle is measured in radians, counter-clockwise from +x.
type Angle float64

func Degrees(d float64) Angle { return Angle(d * math.Pi / 180) }

func (a Angle) Radians() float64 { return float64(a) }
func (a Angle) Degrees() float64 { return float64(a) * 180 / math.Pi }

// Normalized wraps a into (-π, π].
func (a Angle) Normalized() Angle {
	r := math.Remainder(float64(a), 2*math.Pi)
	if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return Angle(r)
}

// Diff returns the absolute smallest angle between a and b.
func (a Angle) Diff(b Angle) Angle {
	return Angle(math.Abs(float64((a - b).Normalized())))
}

// Unit returns the unit vector pointing along a.
func (a Angle) Unit() Vector {
	return Vector{X: math.Cos(float64(a)), Y: math.Sin(float64(a))}
}

func (p Point) Add(v Vector) Point { return Point{X: p.X + v.X, Y: p.Y + v.Y} }
func (p Point) Sub(q Point) Vector { return Vector{X: p.X - q.X, Y: p.Y - q.Y} }
func (p Point) Minus(v Vector) Point { return Point{X: p.X - v.X, Y: p.Y - v.Y} }

// Dist returns the euclidean distance between two points.
func Dist(a, b Point) float64 { return a.Sub(b).Len() }

func (v Vector) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vector) Scale(k float64) Vector { return Vector{X: v.X * k, Y: v.Y * k} }
func (v Vector) Add(w Vector) Vector { return Vector{X: v.X + w.X, Y: v.Y + w.Y} }
func (v Vector) Dot(w Vector) float64 { return v.X*w.X + v.Y*w.Y }
func (v Vector) Orientation() Angle { return Angle(math.Atan2(v.Y, v.X)) }
func (v Vector) Perpendicular() Vector { return Vector{X: -v.Y, Y: v.X} }
func (v Vector) Negate() Vector { return Vector{X: -v.X, Y: -v.Y} }
func (v Vector) IsZero() bool { return v.X == 0 && v.Y == 0 }
func (v Vector) Cross(w Vector) float64 { return v.X*w.Y - v.Y*w.X }

// Normalize returns v rescaled to length l. The zero vector stays zero.
func (v Vector) Normalize(l float64) Vector {
	n := v.Len()
	if n == 0 {
		return Vector{}
	}
	return v.Scale(l / n)
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	XMin float64 `json:"xMin"`
	YMin float64 `json:"yMin"`
	XMax float64 `json:"xMax"`
	YMax float64 `json:"yMax"`
}

func (r Rect) Center() Point {
	return Point{X: (r.XMin + r.XMax) / 2, Y: (r.YMin + r.YMax) / 2}
}

func (r Rect) Width() float64 { return r.XMax - r.XMin }
func (r Rect) Height() float64 { return r.YMax - r.YMin }

func (r Rect) Contains(p Point) bool {
	return p.X >= r.XMin && p.X <= r.XMax && p.Y >= r.YMin && p.Y <= r.YMax
}

// Expand grows the rectangle by m on every side.
func (r Rect) Expand(m float64) Rect {
	return Rect{XMin: r.XMin - m, YMin: r.YMin - m, XMax: r.XMax + m, YMax: r.YMax + m}
}

// Clamp returns the point of r closest to p.
func (r Rect) Clamp(p Point) Point {
	return Point{X: Clamp(p.X, r.XMin, r.XMax), Y: Clamp(p.Y, r.YMin, r.YMax)}
}

// Segment is the straight line between Start and End.
type Segment struct {
	Start Point
	End   Point
}

// ClosestPoint returns the point on s nearest to p.
func (s Segment) ClosestPoint(p Point) Point {
	d := s.End.Sub(s.Start)
	l2 := d.Dot(d)
	if l2 == 0 {
		return s.Start
	}
	t := Clamp(p.Sub(s.Start).Dot(d)/l2, 0, 1)
	return s.Start.Add(d.Scale(t))
}

func (s Segment) DistanceTo(p Point) float64 {
	return Dist(p, s.ClosestPoint(p))
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sigmoid is a logistic curve centred at offset that goes from ~0.018 to
// ~0.982 across width.
func Sigmoid(v, offset, width float64) float64 {
	return 1 / (1 + math.Exp((offset-v)*(8/width)))
}

// RectSigmoid is close to 1 well inside r and close to 0 well outside it.
func RectSigmoid(r Rect, p Point, width float64) float64 {
	x := Sigmoid(p.X, r.XMin, width) * (1 - Sigmoid(p.X, r.XMax, width))
	y := Sigmoid(p.Y, r.YMin, width) * (1 - Sigmoid(p.Y, r.YMax, width))
	return x * y
}
