package gamepad

import "math"

// minPieSides is the smallest polygon a PieMask will draw.
const minPieSides = 3

// PieMask is the cooldown indicator over a button: a filled wedge that
// sweeps clockwise as the cooldown elapses.
type PieMask struct {
	Center   Point
	Radius   float64
	Rotation float64
	Sides    int
}

// NewPieMask builds a mask; sides below 3 are raised to 3.
func NewPieMask(radius float64, center Point, rotation float64, sides int) *PieMask {
	if sides < minPieSides {
		sides = minPieSides
	}
	return &PieMask{Center: center, Radius: radius, Rotation: rotation, Sides: sides}
}

// Polygon returns the outline of the wedge covering fraction pj of a full
// turn, starting and ending at the centre. The radius is stretched so the
// polygon fully covers a circle of Radius.
func (m *PieMask) Polygon(pj float64) []Point {
	sides := float64(m.Sides)
	radius := m.Radius / math.Cos(1/sides*math.Pi)
	sidesToDraw := int(math.Floor(pj * sides))

	pts := make([]Point, 0, sidesToDraw+3)
	pts = append(pts, m.Center)
	for i := 0; i <= sidesToDraw; i++ {
		pts = append(pts, m.vertex(float64(i)/sides*(math.Pi*2), radius))
	}
	if pj*sides != float64(sidesToDraw) {
		pts = append(pts, m.vertex(pj*(math.Pi*2), radius))
	}
	return pts
}

func (m *PieMask) vertex(rads, radius float64) Point {
	rads += m.Rotation
	return Point{
		X: math.Cos(rads)*radius + m.Center.X,
		Y: math.Sin(rads)*radius + m.Center.Y,
	}
}
