package game

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	hudFontSize  = 18
	overFontSize = 44
	hudPad       = 8
)

var (
	hudTextColor  = color.RGBA{R: 235, G: 235, B: 235, A: 255}
	hudPanelColor = color.RGBA{R: 6, G: 10, B: 6, A: 170}
	overColor     = color.RGBA{R: 255, G: 80, B: 60, A: 255}
)

// hud draws score, lives and wave over the arena.
type hud struct {
	face *text.GoTextFace
	big  *text.GoTextFace
}

func newHUD() (*hud, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load hud font: %w", err)
	}
	return &hud{
		face: &text.GoTextFace{Source: src, Size: hudFontSize},
		big:  &text.GoTextFace{Source: src, Size: overFontSize},
	}, nil
}

// statusLine is the text shown in the top-left panel.
func statusLine(w *World) string {
	return fmt.Sprintf("SCORE %d   LIVES %d   WAVE %d", w.Score, w.Player.Lives, w.Wave)
}

func (h *hud) Draw(screen *ebiten.Image, w *World, layoutName string) {
	line := statusLine(w)
	tw, th := text.Measure(line, h.face, 0)
	vector.FillRect(screen, 4, 4, float32(tw)+2*hudPad, float32(th)+hudPad, hudPanelColor, false)
	h.drawText(screen, line, h.face, hudPad+4, 8, text.AlignStart, hudTextColor)

	h.drawText(screen, layoutName, h.face, w.Width-hudPad, 8, text.AlignEnd, hudTextColor)

	if !w.Over {
		return
	}
	cx, cy := w.Width/2, w.Height/2
	h.drawText(screen, "GAME OVER", h.big, cx, cy-overFontSize, text.AlignCenter, overColor)
	h.drawText(screen, fmt.Sprintf("score %d  -  tap to restart", w.Score), h.face, cx, cy+8, text.AlignCenter, hudTextColor)
}

func (h *hud) drawText(dst *ebiten.Image, s string, face text.Face, x, y float64, align text.Align, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.PrimaryAlign = align
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, face, op)
}
