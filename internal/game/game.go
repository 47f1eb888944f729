package game

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/kataras/golog"

	"github.com/Garsondee/Touch-Shooter/internal/gamepad"
	"github.com/Garsondee/Touch-Shooter/internal/remote"
)

// Logical screen size. The window scales it.
const (
	ScreenWidth  = 800
	ScreenHeight = 480
)

// frame is the simulation step, one Ebiten tick at the default 60 TPS.
const frame = time.Second / 60

var logger = golog.Child("[game]")

// Options configure a Game.
type Options struct {
	Pad gamepad.Config
	// Bridge, when set, feeds pointer events from remote browsers.
	Bridge *remote.Bridge
	Seed   int64
}

// Game is the touch shooter host: it turns mouse, touch and remote pointers
// into gamepad input and drives the arena from the gamepad state.
type Game struct {
	pad      *gamepad.Gamepad
	world    *World
	pointers *PointerInput
	bridge   *remote.Bridge
	inputLog *InputLog
	hud      *hud
	tick     int

	showLog  bool
	prevKeys map[ebiten.Key]bool
	keys     gamepad.Cursors // keyboard movement, merged with the move stick
	keyFire  bool

	// Set by gamepad callbacks during dispatch, consumed by the next step.
	fireQueued bool
	dash       gamepad.SwipeResult
}

// New builds a game for the configured layout.
func New(opts Options) (*Game, error) {
	if err := opts.Pad.Validate(); err != nil {
		return nil, fmt.Errorf("gamepad config: %w", err)
	}
	g := newGame(opts, gamepad.SystemClock{})
	h, err := newHUD()
	if err != nil {
		return nil, err
	}
	g.hud = h
	return g, nil
}

func newGame(opts Options, clock gamepad.Clock) *Game {
	g := &Game{
		pad:      gamepad.New(gamepad.FixedScreen{Width: ScreenWidth, Height: ScreenHeight}, clock, opts.Pad),
		world:    NewWorld(ScreenWidth, ScreenHeight, opts.Seed),
		pointers: NewPointerInput(),
		bridge:   opts.Bridge,
		inputLog: NewInputLog(),
		prevKeys: make(map[ebiten.Key]bool),
	}
	g.world.OnEvent = func(msg string) {
		g.inputLog.Add(g.tick, SourceGame, msg)
	}
	g.bindGamepad()
	return g
}

// bindGamepad hooks every button to fire and the gesture surface to dash
// (swipes) or fire (taps).
func (g *Game) bindGamepad() {
	for _, b := range g.pad.Buttons() {
		b.SetOnPressed(func() { g.fireQueued = true })
	}
	t := g.pad.Touch()
	if t == nil {
		return
	}
	t.OnSwipeUp = func() { g.dash = gamepad.SwipeResult{Up: true} }
	t.OnSwipeDown = func() { g.dash = gamepad.SwipeResult{Down: true} }
	t.OnSwipeLeft = func() { g.dash = gamepad.SwipeResult{Left: true} }
	t.OnSwipeRight = func() { g.dash = gamepad.SwipeResult{Right: true} }
	t.OnTouchDown = func() { g.fireQueued = true }
	t.OnTouchRelease = func(held float64) {
		g.inputLog.Add(g.tick, SourceLocal, fmt.Sprintf("tap held %.2fs", held))
	}
}

func (g *Game) Update() error {
	g.handleInput()
	g.advance(g.pointers.Update())
	return nil
}

// advance runs one frame: local events, then remote events, then the
// gamepad update and one world step.
func (g *Game) advance(local []gamepad.PointerEvent) {
	for _, ev := range local {
		g.dispatch(SourceLocal, ev)
	}
	if g.bridge != nil {
		g.bridge.Drain(func(ev gamepad.PointerEvent) { g.dispatch(SourceRemote, ev) })
	}
	g.pad.Update()

	c := controlsFrom(g.pad, g.keys, g.fireQueued || g.keyFire, g.dash)
	g.world.Step(frame, c)
	g.fireQueued = false
	g.dash = gamepad.SwipeResult{}
	g.tick++
}

func (g *Game) dispatch(src InputSource, ev gamepad.PointerEvent) {
	if ev.Kind != gamepad.PointerMove {
		g.inputLog.Add(g.tick, src, ev.String())
	}
	if ev.Kind == gamepad.PointerDown && g.world.Over {
		g.world.Reset()
		g.inputLog.Add(g.tick, SourceGame, "restart")
	}
	g.pad.Dispatch(ev)
}

// controlsFrom reads the frame's intent from the live gamepad, OR'ing the
// keyboard into the move flags.
func controlsFrom(pad *gamepad.Gamepad, keys gamepad.Cursors, fire bool, dash gamepad.SwipeResult) Controls {
	f := gamepad.Frame{}
	for _, j := range pad.Sticks() {
		f.Sticks = append(f.Sticks, gamepad.StickFrame{Engaged: j.Engaged(), Cursors: j.Cursors(), Speed: j.Speed()})
	}
	c := FrameControls(f, fire, dash)
	c.Move = gamepad.Cursors{
		Up:    keys.Up || c.Move.Up,
		Down:  keys.Down || c.Move.Down,
		Left:  keys.Left || c.Move.Left,
		Right: keys.Right || c.Move.Right,
	}
	return c
}

// FrameControls maps gamepad output to world controls. The first stick
// moves the player; the last stick of a multi-stick layout aims.
func FrameControls(f gamepad.Frame, fire bool, dash gamepad.SwipeResult) Controls {
	c := Controls{Fire: fire, Dash: dash}
	if len(f.Sticks) > 0 {
		c.Move = f.Sticks[0].Cursors
	}
	if len(f.Sticks) > 1 {
		c.Aim = f.Sticks[len(f.Sticks)-1].Speed
	}
	return c
}

func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}

	// L: toggle the input log panel.
	if pressed(ebiten.KeyL) {
		g.showLog = !g.showLog
	}

	// C: copy a state snapshot to the clipboard.
	if pressed(ebiten.KeyC) {
		if err := setClipboardText(stateSnapshot(g.tick, g.pad, g.world)); err != nil {
			logger.Warnf("snapshot: %v", err)
		} else {
			g.inputLog.Add(g.tick, SourceGame, "state copied")
		}
	}

	// G: switch the on-screen gamepad off and on.
	if pressed(ebiten.KeyG) {
		if g.pad.Active() {
			g.pad.Disable()
		} else {
			g.pad.Enable()
		}
		g.inputLog.Add(g.tick, SourceGame, fmt.Sprintf("gamepad active=%v", g.pad.Active()))
	}

	if pressed(ebiten.KeyR) {
		g.world.Reset()
		g.inputLog.Add(g.tick, SourceGame, "restart")
	}

	// Keyboard fallback for desktop play: WASD or arrows, space to fire.
	g.keys = gamepad.Cursors{
		Up:    ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:  ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
	}
	g.keyFire = ebiten.IsKeyPressed(ebiten.KeySpace)

	g.prevKeys = currentKeys
}

var (
	backgroundColor = color.RGBA{R: 14, G: 18, B: 14, A: 255}
	gridColor       = color.RGBA{R: 255, G: 255, B: 255, A: 8}
	wallColor       = color.RGBA{R: 90, G: 96, B: 90, A: 255}
	wallEdgeColor   = color.RGBA{R: 130, G: 140, B: 130, A: 255}
	playerColor     = color.RGBA{R: 80, G: 200, B: 110, A: 255}
	monsterColor    = color.RGBA{R: 200, G: 70, B: 70, A: 255}
	rageColor       = color.RGBA{R: 255, G: 140, B: 40, A: 255}
)

var bulletColors = map[BulletKind]color.RGBA{
	BulletNormal: {R: 255, G: 240, B: 150, A: 255},
	BulletHollow: {R: 255, G: 160, B: 60, A: 255},
	BulletThin:   {R: 170, G: 230, B: 255, A: 255},
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	drawGrid(screen, ScreenWidth, ScreenHeight, 40, gridColor)
	g.drawArena(screen)

	drawGamepad(screen, g.pad, ScreenWidth, ScreenHeight)

	if g.hud != nil {
		g.hud.Draw(screen, g.world, g.pad.Layout().String())
	}
	if g.bridge != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("remote clients: %d", g.bridge.Clients()), 8, ScreenHeight-20)
	}
	if g.showLog {
		g.inputLog.Draw(screen, ScreenWidth-logPanelWidth, ScreenHeight)
	}
}

func (g *Game) drawArena(screen *ebiten.Image) {
	w := g.world
	for _, r := range w.Walls {
		vector.FillRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), wallColor, false)
		vector.StrokeRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), 1, wallEdgeColor, false)
	}

	mc := monsterColor
	if w.Kills >= rageKills {
		mc = rageColor
	}
	for _, m := range w.Monsters {
		if !m.Alive {
			continue
		}
		vector.FillCircle(screen, float32(m.X), float32(m.Y), monsterRadius, mc, true)
		// Health pips.
		for i := 0; i < m.Health && i < monsterHealth; i++ {
			vector.FillRect(screen, float32(m.X)-7+float32(i)*5, float32(m.Y)-monsterRadius-6, 4, 3, mc, false)
		}
	}

	for _, b := range w.Bullets {
		if b.Alive {
			vector.FillCircle(screen, float32(b.X), float32(b.Y), 3, bulletColors[b.Kind], true)
		}
	}

	p := w.Player
	vector.FillCircle(screen, float32(p.X), float32(p.Y), playerRadius, playerColor, true)
	mx := p.X + muzzleOffset*math.Cos(p.Rotation)
	my := p.Y + muzzleOffset*math.Sin(p.Rotation)
	vector.StrokeLine(screen, float32(p.X), float32(p.Y), float32(mx), float32(my), 3, playerColor, true)
}

func drawGrid(screen *ebiten.Image, w, h, spacing int, c color.Color) {
	for x := 0; x <= w; x += spacing {
		vector.StrokeLine(screen, float32(x), 0, float32(x), float32(h), 1.0, c, false)
	}
	for y := 0; y <= h; y += spacing {
		vector.StrokeLine(screen, 0, float32(y), float32(w), float32(y), 1.0, c, false)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Gamepad exposes the composed gamepad, mainly for tools and tests.
func (g *Game) Gamepad() *gamepad.Gamepad { return g.pad }

// World exposes the arena state.
func (g *Game) World() *World { return g.world }
