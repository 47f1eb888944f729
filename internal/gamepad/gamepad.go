package gamepad

// Layout is a preset combination of sticks, gestures and buttons.
type Layout int

const (
	SingleStick Layout = iota + 1
	DoubleStick
	StickButton
	CornerSticks
	GestureButton
	Gesture
)

var layoutNames = []string{
	SingleStick:   "single_stick",
	DoubleStick:   "double_stick",
	StickButton:   "stick_button",
	CornerSticks:  "corner_sticks",
	GestureButton: "gesture_button",
	Gesture:       "gesture",
}

func (l Layout) String() string { return enumName(layoutNames, int(l)) }

func (l Layout) MarshalText() ([]byte, error) {
	return marshalEnum("layout", layoutNames, int(l))
}

func (l *Layout) UnmarshalText(text []byte) error {
	return unmarshalEnum("layout", layoutNames, text, (*int)(l))
}

// HasButtons reports whether the layout includes a button pad.
func (l Layout) HasButtons() bool {
	return l == StickButton || l == GestureButton
}

// Gamepad composes the surfaces of one layout and drives them from the host
// loop: Dispatch every pointer event as it arrives, then Update once per frame.
type Gamepad struct {
	layout Layout
	screen Screen
	clock  Clock
	active bool

	sticks  []*Joystick
	touch   *TouchInput
	pad     *ButtonPad
	buttons []*Button
	regions []Surface // sticks and touch, in dispatch order
}

// New composes the gamepad described by cfg.
func New(screen Screen, clock Clock, cfg Config) *Gamepad {
	g := &Gamepad{
		layout: cfg.Layout,
		screen: screen,
		clock:  clock,
		active: true,
	}

	switch cfg.Layout {
	case SingleStick:
		g.addSticks(cfg, All)
	case DoubleStick:
		g.addSticks(cfg, HalfLeft, HalfRight)
	case StickButton:
		g.addSticks(cfg, HalfLeft)
		g.addPad(cfg)
	case CornerSticks:
		g.addSticks(cfg, BottomLeft, TopLeft, TopRight, BottomRight)
	case GestureButton:
		g.addTouch(cfg, HalfLeft)
		g.addPad(cfg)
	case Gesture:
		g.addTouch(cfg, All)
	}
	logger.Infof("composed %s gamepad: %d sticks, %d buttons, gesture=%v",
		cfg.Layout, len(g.sticks), len(g.buttons), g.touch != nil)
	return g
}

func (g *Gamepad) addSticks(cfg Config, sectors ...Sector) {
	for _, s := range sectors {
		j := NewJoystick(g.screen, s)
		j.SetSettings(cfg.Joystick)
		g.sticks = append(g.sticks, j)
		g.regions = append(g.regions, j)
	}
}

func (g *Gamepad) addTouch(cfg Config, sector Sector) {
	t := NewTouchInput(g.screen, g.clock, sector, cfg.Touch.Type)
	t.SwipeThreshold = cfg.Touch.SwipeThreshold
	g.touch = t
	g.regions = append(g.regions, t)
}

func (g *Gamepad) addPad(cfg Config) {
	g.pad = NewButtonPad(g.screen, g.clock, cfg.ButtonPad, cfg.ButtonSize)
	for _, b := range g.pad.Buttons() {
		b.SetType(cfg.Button.Type)
		b.TurboDelay = cfg.Button.TurboDelay()
		if cfg.Button.CooldownSeconds > 0 {
			b.EnableCooldown(cfg.Button.CooldownSeconds)
		}
		g.buttons = append(g.buttons, b)
	}
}

func (g *Gamepad) Layout() Layout { return g.layout }
func (g *Gamepad) Active() bool   { return g.active }

// Sticks returns the joysticks in sector order of the layout.
func (g *Gamepad) Sticks() []*Joystick { return g.sticks }

// Stick returns the i-th joystick (0-based) or nil.
func (g *Gamepad) Stick(i int) *Joystick {
	if i < 0 || i >= len(g.sticks) {
		return nil
	}
	return g.sticks[i]
}

// Touch returns the gesture surface, or nil for stick-only layouts.
func (g *Gamepad) Touch() *TouchInput { return g.touch }

// Pad returns the button pad, or nil for layouts without buttons.
func (g *Gamepad) Pad() *ButtonPad { return g.pad }

// Buttons returns the pad buttons.
func (g *Gamepad) Buttons() []*Button { return g.buttons }

// Surfaces returns every surface: buttons first, then sticks and gestures.
func (g *Gamepad) Surfaces() []Surface {
	out := make([]Surface, 0, len(g.buttons)+len(g.regions))
	for _, b := range g.buttons {
		out = append(out, b)
	}
	return append(out, g.regions...)
}

// Enable turns every surface back on.
func (g *Gamepad) Enable() {
	g.active = true
	for _, s := range g.Surfaces() {
		s.Enable()
	}
}

// Disable turns every surface off and drops any held contacts.
func (g *Gamepad) Disable() {
	g.active = false
	for _, s := range g.Surfaces() {
		s.Disable()
	}
}

// Dispatch routes a pointer event. A down that lands on a button belongs to
// that button alone; everything else is offered to every surface, which
// filter by sector and tracked pointer themselves.
func (g *Gamepad) Dispatch(ev PointerEvent) {
	if !g.active {
		return
	}
	if ev.Kind == PointerDown {
		for _, b := range g.buttons {
			if b.HandlePointer(ev) {
				return
			}
		}
	} else {
		for _, b := range g.buttons {
			b.HandlePointer(ev)
		}
	}
	for _, s := range g.regions {
		s.HandlePointer(ev)
	}
}

// Update advances every surface by one frame.
func (g *Gamepad) Update() {
	for _, s := range g.Surfaces() {
		s.Update()
	}
}

// Resize moves the button pad for a new screen size. Sectors always follow
// the live Screen, so sticks need nothing.
func (g *Gamepad) Resize(width, height float64) {
	if g.pad != nil {
		g.pad.Relayout(width, height)
	}
}
