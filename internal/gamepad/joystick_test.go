package gamepad

import (
	"math"
	"testing"
)

var testScreen = FixedScreen{Width: 800, Height: 480}

func newTestStick(sector Sector, mutate func(*JoystickSettings)) *Joystick {
	j := NewJoystick(testScreen, sector)
	s := DefaultJoystickSettings()
	if mutate != nil {
		mutate(&s)
	}
	j.SetSettings(s)
	return j
}

func down(id int, x, y float64) PointerEvent { return PointerEvent{Kind: PointerDown, ID: id, X: x, Y: y} }
func move(id int, x, y float64) PointerEvent { return PointerEvent{Kind: PointerMove, ID: id, X: x, Y: y} }
func up(id int, x, y float64) PointerEvent   { return PointerEvent{Kind: PointerUp, ID: id, X: x, Y: y} }

// drag presses at from, moves to to and runs one update.
func drag(j *Joystick, from, to Point) {
	j.HandlePointer(down(1, from.X, from.Y))
	j.HandlePointer(move(1, to.X, to.Y))
	j.Update()
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestJoystick_AnalogRightPush(t *testing.T) {
	j := newTestStick(All, nil)
	drag(j, Pt(100, 100), Pt(160, 100))

	if got := j.Speed(); got != (Speed{X: 200, Y: 0}) {
		t.Fatalf("speed = %+v, want {200 0}", got)
	}
	if got := j.Cursors(); got != (Cursors{Right: true}) {
		t.Fatalf("cursors = %+v, want right only", got)
	}
	if !j.ReceivingInput() {
		t.Fatal("stick should report input")
	}
}

func TestJoystick_AnalogDiagonalSetsTwoFlags(t *testing.T) {
	j := newTestStick(All, nil)
	drag(j, Pt(100, 100), Pt(130, 70))

	if got := j.Speed(); got != (Speed{X: 100, Y: -100}) {
		t.Fatalf("speed = %+v, want {100 -100}", got)
	}
	if got := j.Cursors(); got != (Cursors{Up: true, Right: true}) {
		t.Fatalf("cursors = %+v, want up+right", got)
	}
}

func TestJoystick_ClampFixedOrigin(t *testing.T) {
	j := newTestStick(All, func(s *JoystickSettings) { s.Float = false })
	drag(j, Pt(100, 100), Pt(200, 200))

	if j.Origin() != Pt(100, 100) {
		t.Fatalf("fixed stick moved its origin to %v", j.Origin())
	}
	knob := j.Layers()[2]
	if d := j.Origin().Distance(knob); !near(d, 60) {
		t.Fatalf("knob distance = %v, want 60", d)
	}
	if got := j.Speed(); got != (Speed{X: 141, Y: 141}) {
		t.Fatalf("speed = %+v, want {141 141}", got)
	}
}

func TestJoystick_ClampFloatingOrigin(t *testing.T) {
	j := newTestStick(All, nil)
	drag(j, Pt(100, 100), Pt(200, 200))

	if d := j.Origin().Distance(Pt(200, 200)); !near(d, 60) {
		t.Fatalf("floating origin %v is %v from the finger, want 60", j.Origin(), d)
	}
	if knob := j.Layers()[2]; !near(knob.X, 200) || !near(knob.Y, 200) {
		t.Fatalf("knob = %v, want under the finger", knob)
	}
}

func TestJoystick_FloatReanchorsThenRests(t *testing.T) {
	j := newTestStick(All, func(s *JoystickSettings) { s.Analog = false })
	drag(j, Pt(100, 100), Pt(200, 100))

	if j.Origin() != Pt(140, 100) {
		t.Fatalf("origin = %v, want (140,100)", j.Origin())
	}
	if got := j.Cursors(); got != (Cursors{Right: true}) {
		t.Fatalf("cursors = %+v, want right", got)
	}

	j.HandlePointer(move(1, 170, 100))
	j.Update()
	if j.Cursors().Any() || j.Speed() != (Speed{}) {
		t.Fatalf("digital stick inside its radius should rest, got %+v %+v", j.Cursors(), j.Speed())
	}
}

func TestJoystick_DigitalDiagonalHasNoFlags(t *testing.T) {
	j := newTestStick(All, func(s *JoystickSettings) { s.Analog = false })
	drag(j, Pt(100, 100), Pt(160, 160))

	if j.Cursors().Any() {
		t.Fatalf("45 degree push should set no flags, got %+v", j.Cursors())
	}
	if got := j.Speed(); got != (Speed{X: 141, Y: 141}) {
		t.Fatalf("speed = %+v, want {141 141}", got)
	}
}

func TestJoystick_DigitalCardinals(t *testing.T) {
	cases := []struct {
		name  string
		to    Point
		flags Cursors
		speed Speed
	}{
		{"up", Pt(100, 30), Cursors{Up: true}, Speed{0, -200}},
		{"down", Pt(100, 170), Cursors{Down: true}, Speed{0, 200}},
		{"left", Pt(30, 100), Cursors{Left: true}, Speed{-200, 0}},
		{"right", Pt(170, 100), Cursors{Right: true}, Speed{200, 0}},
	}
	for _, c := range cases {
		j := newTestStick(All, func(s *JoystickSettings) { s.Analog = false; s.Float = false })
		drag(j, Pt(100, 100), c.to)
		if j.Cursors() != c.flags {
			t.Fatalf("%s: cursors = %+v, want %+v", c.name, j.Cursors(), c.flags)
		}
		if j.Speed() != c.speed {
			t.Fatalf("%s: speed = %+v, want %+v", c.name, j.Speed(), c.speed)
		}
	}
}

func TestJoystick_SingleDirectionLocksAxis(t *testing.T) {
	j := newTestStick(All, func(s *JoystickSettings) { s.SingleDirection = true })
	drag(j, Pt(100, 100), Pt(180, 130))

	if got := j.Cursors(); got != (Cursors{Right: true}) {
		t.Fatalf("cursors = %+v, want right only", got)
	}
	if got := j.Speed(); got != (Speed{X: 200, Y: 0}) {
		t.Fatalf("speed = %+v, want {200 0}", got)
	}
	if j.Origin() != Pt(120, 130) {
		t.Fatalf("origin = %v, want (120,130)", j.Origin())
	}
}

func TestJoystick_SingleDirectionVertical(t *testing.T) {
	j := newTestStick(All, func(s *JoystickSettings) { s.SingleDirection = true; s.Float = false })
	drag(j, Pt(100, 100), Pt(90, 20))

	if got := j.Cursors(); got != (Cursors{Up: true}) {
		t.Fatalf("cursors = %+v, want up only", got)
	}
	if got := j.Speed(); got != (Speed{X: 0, Y: -200}) {
		t.Fatalf("speed = %+v, want {0 -200}", got)
	}
}

func TestJoystick_SingleDirectionDeadZone(t *testing.T) {
	j := newTestStick(All, func(s *JoystickSettings) { s.SingleDirection = true })
	drag(j, Pt(100, 100), Pt(130, 110))

	if j.ReceivingInput() || j.Speed() != (Speed{}) {
		t.Fatalf("push under MaxDistance should rest, got %+v %+v", j.Cursors(), j.Speed())
	}
}

func TestJoystick_UpdateIsIdempotent(t *testing.T) {
	j := newTestStick(All, nil)
	drag(j, Pt(100, 100), Pt(200, 100))
	speed, origin, layers := j.Speed(), j.Origin(), j.Layers()

	j.Update()
	if j.Speed() != speed || j.Origin() != origin || j.Layers() != layers {
		t.Fatalf("second update changed state: %+v %v -> %+v %v", speed, origin, j.Speed(), j.Origin())
	}
}

func TestJoystick_DigitalFloatHoldsPastRadius(t *testing.T) {
	for y := 101.0; y < 300; y++ {
		j := newTestStick(All, func(s *JoystickSettings) { s.Analog = false })
		drag(j, Pt(100, 100), Pt(237, y))
		speed, cursors := j.Speed(), j.Cursors()
		if speed == (Speed{}) {
			t.Fatalf("y=%v: push past the radius should report speed", y)
		}

		j.Update()
		if j.Speed() != speed || j.Cursors() != cursors {
			t.Fatalf("y=%v: held stick changed on update: %+v -> %+v (d=%v)",
				y, speed, j.Speed(), j.Origin().Distance(Pt(237, y)))
		}
	}
}

func TestJoystick_ReleaseClearsOutput(t *testing.T) {
	j := newTestStick(All, nil)
	drag(j, Pt(100, 100), Pt(160, 100))

	if j.HandlePointer(up(2, 160, 100)) {
		t.Fatal("up from an untracked pointer should be ignored")
	}
	if !j.Engaged() {
		t.Fatal("stick should stay engaged after a foreign up")
	}

	if !j.HandlePointer(up(1, 160, 100)) {
		t.Fatal("tracked up should be handled")
	}
	if j.Engaged() || j.Visible() || j.ReceivingInput() || j.Speed() != (Speed{}) {
		t.Fatal("release should clear the stick")
	}
	j.Update()
	if j.ReceivingInput() {
		t.Fatal("update after release should not produce input")
	}
}

func TestJoystick_SectorAdmission(t *testing.T) {
	j := newTestStick(HalfLeft, nil)
	if j.HandlePointer(down(1, 600, 100)) {
		t.Fatal("down in the right half should not engage a left stick")
	}
	if j.Engaged() {
		t.Fatal("stick engaged outside its sector")
	}
	if !j.HandlePointer(down(1, 200, 100)) {
		t.Fatal("down in the left half should engage")
	}
}

func TestJoystick_SecondFingerTakesOver(t *testing.T) {
	j := newTestStick(All, nil)
	j.HandlePointer(down(1, 100, 100))
	j.HandlePointer(down(2, 300, 300))

	if j.session.PointerID() != 2 || j.Origin() != Pt(300, 300) {
		t.Fatalf("second finger should re-target the stick, got id %d at %v", j.session.PointerID(), j.Origin())
	}
	if j.HandlePointer(up(1, 100, 100)) {
		t.Fatal("first finger no longer owns the stick")
	}
}

func TestJoystick_Layers(t *testing.T) {
	j := newTestStick(All, nil)
	j.HandlePointer(down(1, 100, 100))
	if !j.Visible() {
		t.Fatal("stick should be visible once touched")
	}
	for i, l := range j.Layers() {
		if l != Pt(100, 100) {
			t.Fatalf("layer %d = %v before update, want origin", i, l)
		}
	}

	j.HandlePointer(move(1, 130, 100))
	j.Update()
	want := [3]Point{Pt(100, 100), Pt(115, 100), Pt(130, 100)}
	if j.Layers() != want {
		t.Fatalf("layers = %v, want %v", j.Layers(), want)
	}
}

func TestJoystick_Disable(t *testing.T) {
	j := newTestStick(All, nil)
	drag(j, Pt(100, 100), Pt(160, 100))

	j.Disable()
	if j.Active() || j.Engaged() || j.ReceivingInput() {
		t.Fatal("disable should drop the contact and clear output")
	}
	if j.HandlePointer(down(3, 100, 100)) {
		t.Fatal("disabled stick accepted a touch")
	}
	j.Enable()
	if !j.HandlePointer(down(3, 100, 100)) {
		t.Fatal("re-enabled stick should accept touches")
	}
}
