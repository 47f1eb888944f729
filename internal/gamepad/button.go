package gamepad

import (
	"math"
	"time"
)

// ButtonType selects how a held button fires.
type ButtonType int

const (
	// ButtonSingle fires once on press.
	ButtonSingle ButtonType = iota + 1
	// ButtonTurbo fires on every update while held.
	ButtonTurbo
	// ButtonDelayedTurbo starts firing once held past TurboDelay.
	ButtonDelayedTurbo
	// ButtonSingleThenTurbo fires on press and again every update once held past TurboDelay.
	ButtonSingleThenTurbo
	// ButtonCustom never fires; the host polls Pressed.
	ButtonCustom
)

var buttonTypeNames = []string{
	ButtonSingle:          "single",
	ButtonTurbo:           "turbo",
	ButtonDelayedTurbo:    "delayed_turbo",
	ButtonSingleThenTurbo: "single_then_turbo",
	ButtonCustom:          "custom",
}

func (t ButtonType) String() string { return enumName(buttonTypeNames, int(t)) }

func (t ButtonType) MarshalText() ([]byte, error) {
	return marshalEnum("button type", buttonTypeNames, int(t))
}

func (t *ButtonType) UnmarshalText(text []byte) error {
	return unmarshalEnum("button type", buttonTypeNames, text, (*int)(t))
}

// DefaultTurboDelay is how long a delayed-turbo button must be held before it
// starts repeating.
const DefaultTurboDelay = 300 * time.Millisecond

type cooldown struct {
	enabled  bool
	seconds  float64
	lastFire time.Time
	progress float64
	atRest   bool
}

// Button is an on-screen touch button. X, Y is its bottom-right corner.
type Button struct {
	Name       string
	X, Y       float64
	Size       float64
	Scale      float64
	TurboDelay time.Duration

	clock      Clock
	buttonType ButtonType
	onPressed  func()
	active     bool

	pressed    bool
	holding    bool
	pointerID  int
	activateAt time.Time

	cooldown cooldown
	mask     *PieMask
}

// NewButton returns an enabled button of the given type. onPressed may be nil.
func NewButton(clock Clock, x, y, size float64, buttonType ButtonType, onPressed func()) *Button {
	if buttonType == 0 {
		buttonType = ButtonSingleThenTurbo
	}
	return &Button{
		X:          x,
		Y:          y,
		Size:       size,
		Scale:      1,
		TurboDelay: DefaultTurboDelay,
		clock:      clock,
		buttonType: buttonType,
		onPressed:  onPressed,
		active:     true,
		cooldown:   cooldown{atRest: true},
	}
}

func (b *Button) Type() ButtonType         { return b.buttonType }
func (b *Button) SetType(t ButtonType)     { b.buttonType = t }
func (b *Button) SetOnPressed(fn func())   { b.onPressed = fn }
func (b *Button) Active() bool             { return b.active }
func (b *Button) Pressed() bool            { return b.pressed }
func (b *Button) CooldownEnabled() bool    { return b.cooldown.enabled }
func (b *Button) CooldownSeconds() float64 { return b.cooldown.seconds }

// Progress is the elapsed fraction of the current cooldown, in [0,1).
func (b *Button) Progress() float64 { return b.cooldown.progress }

// AtRest reports whether the cooldown indicator shows a full button.
func (b *Button) AtRest() bool { return b.cooldown.atRest }

// Mask returns the cooldown indicator shape, or nil without a cooldown.
func (b *Button) Mask() *PieMask { return b.mask }

// Bounds returns the hit rectangle as min and max corners.
func (b *Button) Bounds() (Point, Point) {
	w := b.Size * b.Scale
	return Point{X: b.X - w, Y: b.Y - w}, Point{X: b.X, Y: b.Y}
}

// Center returns the middle of the hit rectangle.
func (b *Button) Center() Point {
	lo, hi := b.Bounds()
	return Point{X: (lo.X + hi.X) / 2, Y: (lo.Y + hi.Y) / 2}
}

// Contains reports whether p hits the button.
func (b *Button) Contains(p Point) bool {
	lo, hi := b.Bounds()
	return p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y
}

func (b *Button) Enable() { b.active = true }

func (b *Button) Disable() {
	b.active = false
	b.holding = false
	b.Release()
}

// EnableCooldown gates firing to once every seconds, starting now.
func (b *Button) EnableCooldown(seconds float64) {
	b.cooldown.enabled = true
	b.cooldown.seconds = seconds
	b.cooldown.lastFire = b.clock.Now()
	b.cooldown.progress = 0
	w := b.Size * b.Scale
	b.mask = NewPieMask(w/2, b.Center(), 0, 6)
}

// DisableCooldown removes the gate and shows the button at rest.
func (b *Button) DisableCooldown() {
	b.cooldown.enabled = false
	b.cooldown.progress = 0
	b.cooldown.atRest = true
}

// HandlePointer presses the button on a down inside its bounds and releases
// it when that same pointer lifts.
func (b *Button) HandlePointer(ev PointerEvent) bool {
	switch ev.Kind {
	case PointerDown:
		if !b.active || !b.Contains(ev.Position()) {
			return false
		}
		b.holding = true
		b.pointerID = ev.ID
		b.Press()
		return true
	case PointerUp:
		if !b.holding || ev.ID != b.pointerID {
			return false
		}
		b.holding = false
		b.Release()
		return true
	}
	return false
}

// Press applies the press behaviour of the button type.
func (b *Button) Press() {
	logger.Debugf("%s pressed (%s)", b.Name, b.buttonType)
	switch b.buttonType {
	case ButtonSingle:
		b.fire()
	case ButtonTurbo:
		b.pressed = true
	case ButtonDelayedTurbo:
		b.activateAt = b.clock.Now().Add(b.TurboDelay)
	case ButtonSingleThenTurbo:
		b.fire()
		b.activateAt = b.clock.Now().Add(b.TurboDelay)
	default:
		b.pressed = true
	}
}

// Release clears the pressed state and drops any pending delayed activation.
func (b *Button) Release() {
	b.pressed = false
	b.activateAt = time.Time{}
}

// Update runs the repeat-fire and cooldown logic. Call it once per frame.
func (b *Button) Update() {
	now := b.clock.Now()
	if !b.activateAt.IsZero() && !now.Before(b.activateAt) {
		b.pressed = true
		b.activateAt = time.Time{}
	}

	if !b.cooldown.enabled {
		if b.pressed {
			b.cooldown.lastFire = now
			b.repeat()
		}
		return
	}

	elapsed := now.Sub(b.cooldown.lastFire).Seconds()
	if elapsed > b.cooldown.seconds {
		if b.pressed {
			b.cooldown.lastFire = now
			b.repeat()
		}
		b.cooldown.progress = 0
		b.cooldown.atRest = true
		return
	}
	// Progress stays below 1: the indicator rests as soon as the cooldown
	// has elapsed, even though the gate opens only after it.
	if b.cooldown.seconds <= 0 || elapsed >= b.cooldown.seconds {
		b.cooldown.progress = 0
		b.cooldown.atRest = true
		return
	}
	b.cooldown.progress = math.Max(0, elapsed/b.cooldown.seconds)
	b.cooldown.atRest = false
}

// repeat fires for every type except ButtonCustom.
func (b *Button) repeat() {
	if b.buttonType != ButtonCustom {
		b.fire()
	}
}

func (b *Button) fire() {
	if b.onPressed != nil {
		b.onPressed()
	}
}
