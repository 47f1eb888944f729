package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Touch-Shooter/internal/gamepad"
)

var (
	stickBaseColor    = color.RGBA{R: 255, G: 255, B: 255, A: 40}
	stickEdgeColor    = color.RGBA{R: 255, G: 255, B: 255, A: 110}
	stickSegmentColor = color.RGBA{R: 255, G: 255, B: 255, A: 70}
	stickKnobColor    = color.RGBA{R: 240, G: 240, B: 255, A: 180}
	buttonColor       = color.RGBA{R: 200, G: 60, B: 60, A: 120}
	buttonDownColor   = color.RGBA{R: 255, G: 110, B: 80, A: 200}
	buttonEdgeColor   = color.RGBA{R: 255, G: 200, B: 200, A: 160}
	cooldownColor     = color.RGBA{R: 0, G: 0, B: 0, A: 140}
	gestureColor      = color.RGBA{R: 120, G: 200, B: 255, A: 30}
)

// drawGamepad renders every visible stick, the button pad with cooldown
// wedges, and a tint over an engaged gesture sector.
func drawGamepad(screen *ebiten.Image, pad *gamepad.Gamepad, screenW, screenH float64) {
	if t := pad.Touch(); t != nil && t.Pressed() {
		drawSector(screen, t.Sector(), screenW, screenH)
	}
	for _, j := range pad.Sticks() {
		if j.Visible() {
			drawStick(screen, j)
		}
	}
	for i, b := range pad.Buttons() {
		drawButton(screen, b, i)
	}
}

func drawStick(screen *ebiten.Image, j *gamepad.Joystick) {
	layers := j.Layers()
	base, segment, knob := layers[0], layers[1], layers[2]
	r := float32(j.Settings().MaxDistance)

	vector.FillCircle(screen, float32(base.X), float32(base.Y), r, stickBaseColor, true)
	vector.StrokeCircle(screen, float32(base.X), float32(base.Y), r, 2, stickEdgeColor, true)
	vector.StrokeLine(screen, float32(base.X), float32(base.Y), float32(knob.X), float32(knob.Y), 3, stickSegmentColor, true)
	vector.FillCircle(screen, float32(segment.X), float32(segment.Y), r/6, stickSegmentColor, true)
	vector.FillCircle(screen, float32(knob.X), float32(knob.Y), r/3, stickKnobColor, true)
}

func drawButton(screen *ebiten.Image, b *gamepad.Button, index int) {
	lo, hi := b.Bounds()
	c := b.Center()
	r := float32(hi.X-lo.X) / 2

	fill := buttonColor
	if b.Pressed() {
		fill = buttonDownColor
	}
	vector.FillCircle(screen, float32(c.X), float32(c.Y), r, fill, true)
	vector.StrokeCircle(screen, float32(c.X), float32(c.Y), r, 2, buttonEdgeColor, true)

	if m := b.Mask(); m != nil && !b.AtRest() {
		drawPie(screen, m.Polygon(1-b.Progress()))
	}
	ebitenutil.DebugPrintAt(screen, string(rune('A'+index)), int(c.X)-3, int(c.Y)-8)
}

// drawPie fills the cooldown wedge. The polygon starts and ends at the centre.
func drawPie(screen *ebiten.Image, pts []gamepad.Point) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()
	vector.FillPath(screen, &path, &vector.FillOptions{}, &vector.DrawPathOptions{AntiAlias: true, ColorScale: colorScale(cooldownColor)})
}

func drawSector(screen *ebiten.Image, s gamepad.Sector, w, h float64) {
	x, y, sw, sh := sectorRect(s, w, h)
	vector.FillRect(screen, x, y, sw, sh, gestureColor, false)
}

// sectorRect returns the screen area a sector covers.
func sectorRect(s gamepad.Sector, w, h float64) (x, y, sw, sh float32) {
	hw, hh := float32(w/2), float32(h/2)
	switch s {
	case gamepad.HalfLeft:
		return 0, 0, hw, float32(h)
	case gamepad.HalfRight:
		return hw, 0, hw, float32(h)
	case gamepad.TopLeft:
		return 0, 0, hw, hh
	case gamepad.TopRight:
		return hw, 0, hw, hh
	case gamepad.BottomLeft:
		return 0, hh, hw, hh
	case gamepad.BottomRight:
		return hw, hh, hw, hh
	}
	return 0, 0, float32(w), float32(h)
}

func colorScale(c color.RGBA) ebiten.ColorScale {
	var cs ebiten.ColorScale
	cs.ScaleWithColor(c)
	return cs
}
