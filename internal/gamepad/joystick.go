package gamepad

import "math"

// joystickLayers is the number of visual layers: base, segment, knob.
const joystickLayers = 3

// JoystickSettings tune a joystick. Set them before the first touch.
type JoystickSettings struct {
	MaxDistance     float64 `toml:"max_distance" yaml:"max_distance"`
	SingleDirection bool    `toml:"single_direction" yaml:"single_direction"`
	Float           bool    `toml:"float" yaml:"float"`
	Analog          bool    `toml:"analog" yaml:"analog"`
	TopSpeed        float64 `toml:"top_speed" yaml:"top_speed"`
}

// DefaultJoystickSettings returns a floating analog stick with a 60px radius.
func DefaultJoystickSettings() JoystickSettings {
	return JoystickSettings{
		MaxDistance:     60,
		SingleDirection: false,
		Float:           true,
		Analog:          true,
		TopSpeed:        200,
	}
}

// Cursors are the four directional flags of a stick.
type Cursors struct {
	Up, Down, Left, Right bool
}

// Any reports whether at least one flag is set.
func (c Cursors) Any() bool {
	return c.Up || c.Down || c.Left || c.Right
}

// Speed is the stick output in host units per second, rounded to integers.
type Speed struct {
	X, Y int
}

// Joystick is a floating touch stick. It appears where a finger lands inside
// its sector and reports direction flags and a speed vector every frame
// until that finger lifts.
type Joystick struct {
	Name string

	session  *Session
	settings JoystickSettings
	active   bool

	cursors Cursors
	speed   Speed
	layers  [joystickLayers]Point
	visible bool
}

// NewJoystick returns an enabled joystick with default settings.
func NewJoystick(screen Screen, sector Sector) *Joystick {
	return &Joystick{
		Name:     "stick-" + sector.String(),
		session:  NewSession(sector, screen),
		settings: DefaultJoystickSettings(),
		active:   true,
	}
}

func (j *Joystick) Settings() JoystickSettings     { return j.settings }
func (j *Joystick) SetSettings(s JoystickSettings) { j.settings = s }
func (j *Joystick) Sector() Sector                 { return j.session.Sector() }
func (j *Joystick) Cursors() Cursors               { return j.cursors }
func (j *Joystick) Speed() Speed                   { return j.speed }
func (j *Joystick) Engaged() bool                  { return j.session.Engaged() }
func (j *Joystick) Origin() Point                  { return j.session.Origin() }
func (j *Joystick) Active() bool                   { return j.active }

// Visible reports whether the stick graphics should be drawn.
func (j *Joystick) Visible() bool { return j.visible }

// Layers returns the base, segment and knob centres.
func (j *Joystick) Layers() [joystickLayers]Point { return j.layers }

// ReceivingInput reports whether any direction flag is set.
func (j *Joystick) ReceivingInput() bool {
	return j.cursors.Any()
}

// Enable starts accepting touches.
func (j *Joystick) Enable() {
	j.active = true
}

// Disable stops accepting touches and lets go of the current one.
func (j *Joystick) Disable() {
	j.active = false
	if j.session.Engaged() {
		j.session.Reset()
		j.release()
	}
}

// HandlePointer feeds one pointer event to the stick.
func (j *Joystick) HandlePointer(ev PointerEvent) bool {
	switch ev.Kind {
	case PointerDown:
		if !j.active || !j.session.Begin(ev) {
			return false
		}
		j.visible = true
		for i := range j.layers {
			j.layers[i] = j.session.Origin()
		}
		logger.Debugf("%s engaged by pointer %d at (%.0f,%.0f)", j.Name, ev.ID, ev.X, ev.Y)
		return true
	case PointerMove:
		return j.session.Move(ev)
	case PointerUp:
		if !j.session.End(ev) {
			return false
		}
		j.release()
		logger.Debugf("%s released by pointer %d", j.Name, ev.ID)
		return true
	}
	return false
}

// Update recomputes cursors and speed from the tracked pointer.
func (j *Joystick) Update() {
	if !j.session.Engaged() {
		return
	}
	j.setDirection()
}

func (j *Joystick) release() {
	j.visible = false
	j.cursors = Cursors{}
	j.speed = Speed{}
}

func (j *Joystick) setDirection() {
	if j.settings.SingleDirection {
		j.setSingleDirection()
		return
	}

	origin := j.session.Origin()
	current := j.session.Current()
	maxDist := j.settings.MaxDistance
	d := origin.Distance(current)
	delta := current.Sub(origin)

	if !j.settings.Analog && atRest(d, maxDist) {
		j.rest(delta)
		return
	}

	angle := origin.Angle(current)
	delta = j.clamp(d, angle, delta, current)

	// Analog speed scales with deflection and flags follow the sign of each
	// axis, so diagonals report two flags. Digital speed only depends on the
	// angle and flags need an exact cardinal push.
	if j.settings.Analog {
		j.speed.X = roundHalfUp(delta.X / maxDist * j.settings.TopSpeed)
		j.speed.Y = roundHalfUp(delta.Y / maxDist * j.settings.TopSpeed)
		j.cursors = Cursors{
			Up:    delta.Y < 0,
			Down:  delta.Y > 0,
			Left:  delta.X < 0,
			Right: delta.X > 0,
		}
	} else {
		j.speed.X = roundHalfUp(math.Cos(angle) * j.settings.TopSpeed)
		j.speed.Y = roundHalfUp(math.Sin(angle) * j.settings.TopSpeed)
		j.cursors = cardinalCursors(angle)
	}
	j.placeLayers(delta)
}

// setSingleDirection locks the push to its dominant axis, so exactly one
// cardinal flag lights up once the stick leaves its dead zone.
func (j *Joystick) setSingleDirection() {
	origin := j.session.Origin()
	current := j.session.Current()
	maxDist := j.settings.MaxDistance
	d := origin.Distance(current)
	delta := current.Sub(origin)

	if atRest(d, maxDist) {
		j.rest(delta)
		return
	}

	locked := current
	if math.Abs(delta.X) > math.Abs(delta.Y) {
		delta.Y = 0
		locked.Y = origin.Y
	} else {
		delta.X = 0
		locked.X = origin.X
	}

	angle := origin.Angle(locked)
	delta = j.clamp(d, angle, delta, current)

	j.speed.X = roundHalfUp(math.Cos(angle) * j.settings.TopSpeed)
	j.speed.Y = roundHalfUp(math.Sin(angle) * j.settings.TopSpeed)

	j.cursors = cardinalCursors(angle)
	j.placeLayers(delta)
}

// cardinalCursors sets a flag only when angle is exactly one of the four
// cardinal directions. A diagonal push sets nothing.
func cardinalCursors(angle float64) Cursors {
	deg := radToDeg(angle)
	return Cursors{
		Up:    deg == -90,
		Down:  deg == 90,
		Left:  deg == 180,
		Right: deg == 0,
	}
}

// reanchorSlack absorbs the rounding left by a float re-anchor, where the
// distance to the new origin can come back a hair under MaxDistance.
const reanchorSlack = 1e-9

func atRest(d, maxDist float64) bool {
	return d < maxDist-reanchorSlack
}

// clamp limits delta to the MaxDistance circle along angle. In float mode
// the origin is dragged along so the knob stays under the finger.
func (j *Joystick) clamp(d, angle float64, delta, current Point) Point {
	maxDist := j.settings.MaxDistance
	if d <= maxDist+reanchorSlack {
		return delta
	}
	delta = Point{X: math.Cos(angle) * maxDist, Y: math.Sin(angle) * maxDist}
	if j.settings.Float {
		j.session.SetOrigin(current.Sub(delta))
	}
	return delta
}

func (j *Joystick) rest(delta Point) {
	j.cursors = Cursors{}
	j.speed = Speed{}
	j.placeLayers(delta)
}

func (j *Joystick) placeLayers(delta Point) {
	origin := j.session.Origin()
	for i := range j.layers {
		j.layers[i] = origin.Add(delta.Scale(float64(i) / float64(joystickLayers-1)))
	}
}
