package gamepad

import "math"

// Point is a screen-space coordinate in pixels.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Distance returns the Euclidean distance from p to q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Angle returns the direction from p to q in radians, in (-π, π].
// Screen Y grows downwards, so -π/2 points up.
func (p Point) Angle(q Point) float64 {
	return math.Atan2(q.Y-p.Y, q.X-p.X)
}

// Screen reports the current display size used for sector classification.
type Screen interface {
	Size() (width, height float64)
}

// FixedScreen is a Screen of constant size.
type FixedScreen struct {
	Width, Height float64
}

func (s FixedScreen) Size() (float64, float64) {
	return s.Width, s.Height
}

// ScreenFunc adapts a function to the Screen interface.
type ScreenFunc func() (float64, float64)

func (f ScreenFunc) Size() (float64, float64) {
	return f()
}

// roundHalfUp rounds .5 towards +Inf, so -2.5 becomes -2.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// radToDeg keeps the multiply-then-divide order so the cardinal angles
// produced by atan2 map to exactly 0, 90, 180 and -90.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
