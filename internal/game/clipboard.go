package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Touch-Shooter/internal/gamepad"
)

// setClipboardText copies text to the system clipboard.
func setClipboardText(s string) error {
	if s == "" {
		s = " "
	}
	if err := clipboard.WriteAll(s); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// stateSnapshot describes the gamepad and world for bug reports.
func stateSnapshot(tick int, pad *gamepad.Gamepad, w *World) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "tick %d layout %s active=%v\n", tick, pad.Layout(), pad.Active())
	for i, j := range pad.Sticks() {
		fmt.Fprintf(&sb, "stick %d %s engaged=%v speed=(%d,%d) cursors=%s\n",
			i, j.Sector(), j.Engaged(), j.Speed().X, j.Speed().Y, cursorString(j.Cursors()))
	}
	for i, b := range pad.Buttons() {
		fmt.Fprintf(&sb, "button %d %s pressed=%v progress=%.2f\n", i, b.Type(), b.Pressed(), b.Progress())
	}
	if t := pad.Touch(); t != nil {
		fmt.Fprintf(&sb, "touch %s %s pressed=%v\n", t.Type(), t.Sector(), t.Pressed())
	}
	fmt.Fprintf(&sb, "player (%.0f,%.0f) v=(%.0f,%.0f) lives=%d\n",
		w.Player.X, w.Player.Y, w.Player.VX, w.Player.VY, w.Player.Lives)
	fmt.Fprintf(&sb, "score %d kills %d shots %d wave %d monsters %d over=%v\n",
		w.Score, w.Kills, w.Shots, w.Wave, w.AliveMonsters(), w.Over)
	return sb.String()
}

// cursorString renders direction flags as a compact "UDLR" mask, '-' for unset.
func cursorString(c gamepad.Cursors) string {
	b := []byte("----")
	if c.Up {
		b[0] = 'U'
	}
	if c.Down {
		b[1] = 'D'
	}
	if c.Left {
		b[2] = 'L'
	}
	if c.Right {
		b[3] = 'R'
	}
	return string(b)
}
