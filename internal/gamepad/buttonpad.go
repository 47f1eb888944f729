package gamepad

import (
	"fmt"
	"math"
)

// ButtonPadType is the arrangement of buttons in the bottom-right corner.
type ButtonPadType int

const (
	OneFixed ButtonPadType = iota + 1
	TwoInlineX
	TwoInlineY
	ThreeInlineX
	ThreeInlineY
	ThreeFan
	FourStack
	FourInlineX
	FourInlineY
	FourFan
	FiveFan
)

var buttonPadNames = []string{
	OneFixed:     "one_fixed",
	TwoInlineX:   "two_inline_x",
	TwoInlineY:   "two_inline_y",
	ThreeInlineX: "three_inline_x",
	ThreeInlineY: "three_inline_y",
	ThreeFan:     "three_fan",
	FourStack:    "four_stack",
	FourInlineX:  "four_inline_x",
	FourInlineY:  "four_inline_y",
	FourFan:      "four_fan",
	FiveFan:      "five_fan",
}

func (t ButtonPadType) String() string { return enumName(buttonPadNames, int(t)) }

func (t ButtonPadType) MarshalText() ([]byte, error) {
	return marshalEnum("button pad", buttonPadNames, int(t))
}

func (t *ButtonPadType) UnmarshalText(text []byte) error {
	return unmarshalEnum("button pad", buttonPadNames, text, (*int)(t))
}

const (
	buttonPadPadding = 10
	// DefaultButtonSize is the button edge used by the composed gamepads.
	DefaultButtonSize = 100

	fanStartDeg    = 175.0
	fanSpreadDeg   = 100.0
	fanRadiusRatio = 1.5
	fanSmallScale  = 0.7
	fanLargeScale  = 1.2
)

// slot is one computed button placement.
type slot struct {
	x, y  float64
	scale float64
}

// ButtonPad is a fixed arrangement of 1-5 buttons.
type ButtonPad struct {
	padType ButtonPadType
	size    float64
	buttons []*Button
}

// NewButtonPad lays out the buttons for padType on a width×height screen.
// Buttons default to ButtonSingleThenTurbo with no callback.
func NewButtonPad(screen Screen, clock Clock, padType ButtonPadType, size float64) *ButtonPad {
	w, h := screen.Size()
	slots := padSlots(padType, w, h, size)
	p := &ButtonPad{padType: padType, size: size}
	for i, s := range slots {
		b := NewButton(clock, s.x, s.y, size, ButtonSingleThenTurbo, nil)
		b.Scale = s.scale
		b.Name = fmt.Sprintf("button%d", i+1)
		p.buttons = append(p.buttons, b)
	}
	return p
}

func (p *ButtonPad) Type() ButtonPadType { return p.padType }

// Buttons returns the pad buttons, primary first.
func (p *ButtonPad) Buttons() []*Button { return p.buttons }

// Button returns the i-th button (0-based) or nil.
func (p *ButtonPad) Button(i int) *Button {
	if i < 0 || i >= len(p.buttons) {
		return nil
	}
	return p.buttons[i]
}

// Relayout moves the buttons for a new screen size, keeping their state.
func (p *ButtonPad) Relayout(width, height float64) {
	for i, s := range padSlots(p.padType, width, height, p.size) {
		b := p.buttons[i]
		b.X, b.Y, b.Scale = s.x, s.y, s.scale
		if b.mask != nil {
			b.mask.Center = b.Center()
		}
	}
}

func padSlots(padType ButtonPadType, w, h, size float64) []slot {
	right := w - buttonPadPadding
	bottom := h - buttonPadPadding
	step := size + buttonPadPadding

	switch padType {
	case OneFixed:
		return inlineSlots(1, right, bottom, -step, 0)
	case TwoInlineX:
		return inlineSlots(2, right, bottom, -step, 0)
	case ThreeInlineX:
		return inlineSlots(3, right, bottom, -step, 0)
	case FourInlineX:
		return inlineSlots(4, right, bottom, -step, 0)
	case TwoInlineY:
		return inlineSlots(2, right, bottom, 0, -step)
	case ThreeInlineY:
		return inlineSlots(3, right, bottom, 0, -step)
	case FourInlineY:
		return inlineSlots(4, right, bottom, 0, -step)
	case FourStack:
		return []slot{
			{right, bottom, 1},
			{right, bottom - step, 1},
			{right - step, bottom, 1},
			{right - step, bottom - step, 1},
		}
	case ThreeFan:
		return fanSlots(nil, w, h, size, 3, fanSpreadDeg/2)
	case FourFan:
		cx, cy := fanCenter(w, h)
		primary := &slot{cx - buttonPadPadding, cy - buttonPadPadding, fanLargeScale}
		return fanSlots(primary, w, h, size, 3, fanSpreadDeg/2)
	case FiveFan:
		cx, cy := fanCenter(w, h)
		primary := &slot{cx, cy, fanLargeScale}
		return fanSlots(primary, w, h, size, 4, fanSpreadDeg/3)
	}
	return nil
}

func inlineSlots(n int, x, y, dx, dy float64) []slot {
	out := make([]slot, n)
	for i := range out {
		out[i] = slot{x + dx*float64(i), y + dy*float64(i), 1}
	}
	return out
}

func fanCenter(w, h float64) (float64, float64) {
	return w - 3*buttonPadPadding, h - 3*buttonPadPadding
}

// fanSlots places n small buttons on an arc around the fan centre, after an
// optional large primary button.
func fanSlots(primary *slot, w, h, size float64, n int, stepDeg float64) []slot {
	cx, cy := fanCenter(w, h)
	radius := size * fanRadiusRatio
	angle := fanStartDeg * math.Pi / 180
	step := stepDeg * math.Pi / 180

	var out []slot
	if primary != nil {
		out = append(out, *primary)
	}
	for i := 0; i < n; i++ {
		a := angle + step*float64(i)
		out = append(out, slot{cx + math.Cos(a)*radius, cy + math.Sin(a)*radius, fanSmallScale})
	}
	return out
}
