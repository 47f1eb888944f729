package gamepad

import (
	"math"
	"time"
)

// TouchType selects what a TouchInput reports.
type TouchType int

const (
	// TouchTap reports raw touch-down and release with hold time.
	TouchTap TouchType = iota + 1
	// TouchSwipe reports one cardinal swipe per gesture.
	TouchSwipe
)

var touchTypeNames = []string{
	TouchTap:   "touch",
	TouchSwipe: "swipe",
}

func (t TouchType) String() string { return enumName(touchTypeNames, int(t)) }

func (t TouchType) MarshalText() ([]byte, error) {
	return marshalEnum("touch type", touchTypeNames, int(t))
}

func (t *TouchType) UnmarshalText(text []byte) error {
	return unmarshalEnum("touch type", touchTypeNames, text, (*int)(t))
}

// DefaultSwipeThreshold is the minimum travel in pixels for a swipe.
const DefaultSwipeThreshold = 100

// SwipeResult holds the direction of the last completed swipe. At most one
// flag is set.
type SwipeResult struct {
	Up, Down, Left, Right bool
}

// TouchInput turns whole gestures inside a sector into taps or swipes.
type TouchInput struct {
	SwipeThreshold float64

	OnSwipeUp    func()
	OnSwipeDown  func()
	OnSwipeLeft  func()
	OnSwipeRight func()

	// OnTouchDown and OnTouchRelease are only used by TouchTap inputs.
	OnTouchDown    func()
	OnTouchRelease func(elapsedSeconds float64)

	session   *Session
	clock     Clock
	touchType TouchType
	active    bool
	started   time.Time
	swipe     SwipeResult
}

// NewTouchInput returns an enabled gesture surface.
func NewTouchInput(screen Screen, clock Clock, sector Sector, touchType TouchType) *TouchInput {
	if touchType == 0 {
		touchType = TouchSwipe
	}
	return &TouchInput{
		SwipeThreshold: DefaultSwipeThreshold,
		session:        NewSession(sector, screen),
		clock:          clock,
		touchType:      touchType,
		active:         true,
	}
}

func (t *TouchInput) Type() TouchType { return t.touchType }
func (t *TouchInput) Sector() Sector  { return t.session.Sector() }
func (t *TouchInput) Active() bool    { return t.active }

// Pressed reports whether a gesture is in progress.
func (t *TouchInput) Pressed() bool { return t.session.Engaged() }

// Swipe returns the flags computed for the last completed swipe.
func (t *TouchInput) Swipe() SwipeResult { return t.swipe }

func (t *TouchInput) Enable() { t.active = true }

func (t *TouchInput) Disable() {
	t.active = false
	t.session.Reset()
}

// Update is a no-op: gestures are resolved when the finger lifts.
func (t *TouchInput) Update() {}

// HandlePointer feeds one pointer event to the gesture recogniser.
func (t *TouchInput) HandlePointer(ev PointerEvent) bool {
	switch ev.Kind {
	case PointerDown:
		return t.startGesture(ev)
	case PointerMove:
		return t.session.Move(ev)
	case PointerUp:
		return t.endGesture(ev)
	}
	return false
}

func (t *TouchInput) startGesture(ev PointerEvent) bool {
	if !t.active || !t.session.Begin(ev) {
		return false
	}
	t.started = t.clock.Now()
	if t.touchType == TouchTap && t.OnTouchDown != nil {
		t.OnTouchDown()
	}
	return true
}

func (t *TouchInput) endGesture(ev PointerEvent) bool {
	if !t.session.End(ev) {
		return false
	}
	elapsed := elapsedSecondsSince(t.clock, t.started)
	if t.touchType == TouchTap {
		if t.OnTouchRelease != nil {
			t.OnTouchRelease(elapsed)
		}
		return true
	}

	t.swipe = SwipeResult{}
	swipe, ok := classifySwipe(t.session.Origin(), t.session.Current(), t.SwipeThreshold)
	if !ok {
		return true
	}
	t.swipe = swipe
	logger.Debugf("swipe %+v after %.2fs", swipe, elapsed)

	switch {
	case swipe.Up:
		call(t.OnSwipeUp)
	case swipe.Down:
		call(t.OnSwipeDown)
	case swipe.Left:
		call(t.OnSwipeLeft)
	case swipe.Right:
		call(t.OnSwipeRight)
	}
	return true
}

// classifySwipe locks the gesture to its dominant axis and names the
// direction by exact angle. ok is false when the travel is under threshold.
func classifySwipe(origin, current Point, threshold float64) (SwipeResult, bool) {
	if origin.Distance(current) < threshold {
		return SwipeResult{}, false
	}
	delta := current.Sub(origin)
	locked := current
	if math.Abs(delta.X) > math.Abs(delta.Y) {
		locked.Y = origin.Y
	} else {
		locked.X = origin.X
	}
	return swipeFromAngle(radToDeg(origin.Angle(locked))), true
}

func swipeFromAngle(deg float64) SwipeResult {
	return SwipeResult{
		Up:    deg == -90,
		Down:  deg == 90,
		Left:  deg == 180,
		Right: deg == 0,
	}
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
