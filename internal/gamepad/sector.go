package gamepad

// Sector is the screen region an input surface listens to.
type Sector int

const (
	HalfLeft Sector = iota + 1
	HalfTop
	HalfRight
	HalfBottom
	TopLeft
	TopRight
	BottomRight
	BottomLeft
	All
)

var sectorNames = []string{
	HalfLeft:    "half_left",
	HalfTop:     "half_top",
	HalfRight:   "half_right",
	HalfBottom:  "half_bottom",
	TopLeft:     "top_left",
	TopRight:    "top_right",
	BottomRight: "bottom_right",
	BottomLeft:  "bottom_left",
	All:         "all",
}

func (s Sector) String() string {
	return enumName(sectorNames, int(s))
}

func (s Sector) MarshalText() ([]byte, error) {
	return marshalEnum("sector", sectorNames, int(s))
}

func (s *Sector) UnmarshalText(text []byte) error {
	return unmarshalEnum("sector", sectorNames, text, (*int)(s))
}

// InSector reports whether p lies inside sector s of a width×height screen.
//
// Both halves are strict: a point exactly on a midline is neither top nor
// bottom (or neither left nor right), so only All is guaranteed to match it.
func InSector(p Point, width, height float64, s Sector) bool {
	top := p.Y < height/2
	bottom := p.Y > height/2
	left := p.X < width/2
	right := p.X > width/2

	switch s {
	case All:
		return true
	case HalfLeft:
		return left
	case HalfRight:
		return right
	case HalfTop:
		return top
	case HalfBottom:
		return bottom
	case TopLeft:
		return top && left
	case TopRight:
		return top && right
	case BottomRight:
		return bottom && right
	case BottomLeft:
		return bottom && left
	}
	return false
}
