package gamepad

import "fmt"

// PointerKind is the phase of a pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	}
	return fmt.Sprintf("PointerKind(%d)", int(k))
}

// PointerEvent is one observation of a physical contact. IDs are chosen by
// the host and must stay stable for the lifetime of the contact.
type PointerEvent struct {
	Kind PointerKind
	ID   int
	X, Y float64
}

// Position returns the event coordinates as a Point.
func (e PointerEvent) Position() Point {
	return Point{X: e.X, Y: e.Y}
}

func (e PointerEvent) String() string {
	return fmt.Sprintf("%s#%d(%.0f,%.0f)", e.Kind, e.ID, e.X, e.Y)
}

// Session tracks one contact on an input surface: IDLE until a down event
// lands inside the sector, ENGAGED until the same pointer lifts.
type Session struct {
	sector  Sector
	screen  Screen
	engaged bool
	id      int
	origin  Point
	current Point
}

// NewSession returns an idle session admitting touches in sector.
func NewSession(sector Sector, screen Screen) *Session {
	return &Session{sector: sector, screen: screen}
}

func (s *Session) Sector() Sector { return s.sector }

// Admits reports whether a down at p would engage this session.
func (s *Session) Admits(p Point) bool {
	w, h := s.screen.Size()
	return InSector(p, w, h, s.sector)
}

// Begin engages the session on a down event inside the sector. A second
// finger landing in the same sector takes over the session.
func (s *Session) Begin(ev PointerEvent) bool {
	if ev.Kind != PointerDown || !s.Admits(ev.Position()) {
		return false
	}
	s.id = ev.ID
	s.origin = ev.Position()
	s.current = s.origin
	s.engaged = true
	return true
}

// Move records the latest position of the tracked pointer.
func (s *Session) Move(ev PointerEvent) bool {
	if !s.engaged || ev.ID != s.id {
		return false
	}
	s.current = ev.Position()
	return true
}

// End returns the session to IDLE if ev belongs to the tracked pointer.
// Origin and Current keep their last values until the next Begin.
func (s *Session) End(ev PointerEvent) bool {
	if !s.engaged || ev.ID != s.id {
		return false
	}
	s.current = ev.Position()
	s.engaged = false
	return true
}

// Reset drops the tracked pointer without waiting for its up event.
func (s *Session) Reset() {
	s.engaged = false
}

func (s *Session) Engaged() bool     { return s.engaged }
func (s *Session) PointerID() int    { return s.id }
func (s *Session) Origin() Point     { return s.origin }
func (s *Session) Current() Point    { return s.current }
func (s *Session) SetOrigin(p Point) { s.origin = p }

// Surface is one virtual control driven by the host loop: pointer events are
// handed to HandlePointer as they arrive, then Update runs once per frame.
type Surface interface {
	Enable()
	Disable()
	Active() bool
	HandlePointer(ev PointerEvent) bool
	Update()
}
