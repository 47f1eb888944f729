package game

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Touch-Shooter/internal/gamepad"
)

// mousePointerID is the pointer ID used for the left mouse button. Ebiten
// touch IDs are never negative.
const mousePointerID = -1

// PointerInput turns polled mouse and touch state into gamepad pointer events.
type PointerInput struct {
	contacts map[int]gamepad.Point
	touchIDs []ebiten.TouchID
	events   []gamepad.PointerEvent
}

func NewPointerInput() *PointerInput {
	return &PointerInput{contacts: make(map[int]gamepad.Point)}
}

// Events returns the events produced by the last Update.
func (p *PointerInput) Events() []gamepad.PointerEvent { return p.events }

// Update polls Ebiten and emits down, move and up events for every contact
// that appeared, moved or vanished since the previous frame.
func (p *PointerInput) Update() []gamepad.PointerEvent {
	now := make(map[int]gamepad.Point, len(p.contacts)+1)
	if ebiten.IsFocused() {
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			mx, my := ebiten.CursorPosition()
			now[mousePointerID] = gamepad.Pt(float64(mx), float64(my))
		}
		p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
		for _, id := range p.touchIDs {
			tx, ty := ebiten.TouchPosition(id)
			now[int(id)] = gamepad.Pt(float64(tx), float64(ty))
		}
	}
	p.events = diffContacts(p.events[:0], p.contacts, now)
	p.contacts = now
	return p.events
}

// diffContacts appends the events that take prev to now. Downs and moves
// come first, then ups, each in ascending ID order.
func diffContacts(dst []gamepad.PointerEvent, prev, now map[int]gamepad.Point) []gamepad.PointerEvent {
	for _, id := range sortedIDs(now) {
		pos := now[id]
		last, held := prev[id]
		switch {
		case !held:
			dst = append(dst, gamepad.PointerEvent{Kind: gamepad.PointerDown, ID: id, X: pos.X, Y: pos.Y})
		case last != pos:
			dst = append(dst, gamepad.PointerEvent{Kind: gamepad.PointerMove, ID: id, X: pos.X, Y: pos.Y})
		}
	}
	for _, id := range sortedIDs(prev) {
		if _, held := now[id]; held {
			continue
		}
		pos := prev[id]
		dst = append(dst, gamepad.PointerEvent{Kind: gamepad.PointerUp, ID: id, X: pos.X, Y: pos.Y})
	}
	return dst
}

func sortedIDs(m map[int]gamepad.Point) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
