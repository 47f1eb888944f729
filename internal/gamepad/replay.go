package gamepad

import (
	"sort"
	"time"
)

// DefaultFrame is the replay tick length, one frame at 60 FPS.
const DefaultFrame = time.Second / 60

// Step is a batch of pointer events delivered once replay time reaches At.
type Step struct {
	At     time.Duration
	Events []PointerEvent
}

// StickFrame is one joystick's output for a tick.
type StickFrame struct {
	Engaged bool
	Cursors Cursors
	Speed   Speed
}

// Frame is what the gamepad reported after one replay tick.
type Frame struct {
	Tick     int
	At       time.Duration
	Sticks   []StickFrame
	Pressed  []bool
	Touching bool
}

// SwipeCounts tallies completed swipes per direction.
type SwipeCounts struct {
	Up, Down, Left, Right int
}

// Total returns the number of swipes in any direction.
func (c SwipeCounts) Total() int { return c.Up + c.Down + c.Left + c.Right }

// Replay drives a gamepad from a script of timed pointer events on a manual
// clock. It needs no display and is fully deterministic.
type Replay struct {
	Pad   *Gamepad
	Clock *ManualClock

	// Fired counts onPressed callbacks per button.
	Fired []int
	// Swipes counts completed swipes; Taps and Holds record tap-mode gestures.
	Swipes SwipeCounts
	Taps   int
	Holds  []float64

	Frames []Frame

	width, height float64
	frame         time.Duration
	steps         []Step
	next          int
	tick          int
}

// ReplayOption configures a Replay before its gamepad is built.
type ReplayOption func(*Replay)

// WithScreen sets the virtual display size. Default 800×480.
func WithScreen(width, height float64) ReplayOption {
	return func(r *Replay) {
		r.width = width
		r.height = height
	}
}

// WithFrame sets the tick length.
func WithFrame(d time.Duration) ReplayOption {
	return func(r *Replay) {
		if d > 0 {
			r.frame = d
		}
	}
}

// WithSteps appends scripted steps. Order does not matter.
func WithSteps(steps ...Step) ReplayOption {
	return func(r *Replay) {
		r.steps = append(r.steps, steps...)
	}
}

// NewReplay composes the gamepad described by cfg and hooks counters onto its
// buttons and gesture surface.
func NewReplay(cfg Config, opts ...ReplayOption) *Replay {
	r := &Replay{
		width:  800,
		height: 480,
		frame:  DefaultFrame,
	}
	for _, o := range opts {
		o(r)
	}
	sort.SliceStable(r.steps, func(i, j int) bool { return r.steps[i].At < r.steps[j].At })

	r.Clock = NewManualClock(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC))
	r.Pad = New(FixedScreen{Width: r.width, Height: r.height}, r.Clock, cfg)

	r.Fired = make([]int, len(r.Pad.Buttons()))
	for i, b := range r.Pad.Buttons() {
		i := i
		b.SetOnPressed(func() { r.Fired[i]++ })
	}
	if t := r.Pad.Touch(); t != nil {
		t.OnSwipeUp = func() { r.Swipes.Up++ }
		t.OnSwipeDown = func() { r.Swipes.Down++ }
		t.OnSwipeLeft = func() { r.Swipes.Left++ }
		t.OnSwipeRight = func() { r.Swipes.Right++ }
		t.OnTouchDown = func() { r.Taps++ }
		t.OnTouchRelease = func(s float64) { r.Holds = append(r.Holds, s) }
	}
	return r
}

// Elapsed returns the replay time of the next tick.
func (r *Replay) Elapsed() time.Duration {
	return time.Duration(r.tick) * r.frame
}

// Done reports whether every scripted step has been delivered.
func (r *Replay) Done() bool { return r.next >= len(r.steps) }

// Tick delivers the steps that are due, updates the gamepad once and advances
// the clock by one frame.
func (r *Replay) Tick() Frame {
	now := r.Elapsed()
	for r.next < len(r.steps) && r.steps[r.next].At <= now {
		for _, ev := range r.steps[r.next].Events {
			r.Pad.Dispatch(ev)
		}
		r.next++
	}
	r.Pad.Update()

	f := r.snapshot(now)
	r.Frames = append(r.Frames, f)
	r.tick++
	r.Clock.Advance(r.frame)
	return f
}

// Run plays n ticks and returns every frame recorded so far.
func (r *Replay) Run(n int) []Frame {
	for i := 0; i < n; i++ {
		r.Tick()
	}
	return r.Frames
}

func (r *Replay) snapshot(at time.Duration) Frame {
	f := Frame{Tick: r.tick, At: at}
	for _, j := range r.Pad.Sticks() {
		f.Sticks = append(f.Sticks, StickFrame{
			Engaged: j.Engaged(),
			Cursors: j.Cursors(),
			Speed:   j.Speed(),
		})
	}
	for _, b := range r.Pad.Buttons() {
		f.Pressed = append(f.Pressed, b.Pressed())
	}
	if t := r.Pad.Touch(); t != nil {
		f.Touching = t.Pressed()
	}
	return f
}

// Tap scripts a finger held still at p for hold.
func Tap(id int, at time.Duration, p Point, hold time.Duration) []Step {
	return []Step{
		{At: at, Events: []PointerEvent{{Kind: PointerDown, ID: id, X: p.X, Y: p.Y}}},
		{At: at + hold, Events: []PointerEvent{{Kind: PointerUp, ID: id, X: p.X, Y: p.Y}}},
	}
}

// dragMoves is the number of move events a Drag spreads over its travel time.
const dragMoves = 4

// Drag scripts a finger landing on from, moving to to over the given time,
// then staying there for hold before lifting. A short drag with no hold is a
// swipe.
func Drag(id int, at time.Duration, from, to Point, over, hold time.Duration) []Step {
	steps := []Step{{At: at, Events: []PointerEvent{{Kind: PointerDown, ID: id, X: from.X, Y: from.Y}}}}
	for i := 1; i <= dragMoves; i++ {
		k := float64(i) / dragMoves
		p := from.Add(to.Sub(from).Scale(k))
		steps = append(steps, Step{
			At:     at + time.Duration(float64(over)*k),
			Events: []PointerEvent{{Kind: PointerMove, ID: id, X: p.X, Y: p.Y}},
		})
	}
	return append(steps, Step{
		At:     at + over + hold,
		Events: []PointerEvent{{Kind: PointerUp, ID: id, X: to.X, Y: to.Y}},
	})
}
