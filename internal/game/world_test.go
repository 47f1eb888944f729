package game

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/Garsondee/Touch-Shooter/internal/gamepad"
)

// newTestWorld returns an 800x480 arena whose only monster is a tough
// sentinel parked in the top-right corner, so no new wave spawns mid-test.
func newTestWorld() *World {
	w := NewWorld(800, 480, 1)
	w.Monsters = []*Monster{{X: 780, Y: 20, Health: 100, Alive: true}}
	return w
}

func loadBullet(w *World, kind BulletKind, x, y, vx, vy float64) *Bullet {
	for _, b := range w.Bullets {
		if !b.Alive {
			*b = Bullet{Kind: kind, X: x, Y: y, VX: vx, VY: vy, Alive: true}
			return b
		}
	}
	return nil
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestWorld_NewWorld(t *testing.T) {
	w := NewWorld(800, 480, 42)
	if w.Player.X != 400 || w.Player.Y != 240 || w.Player.Lives != startLives {
		t.Fatalf("unexpected player %+v", w.Player)
	}
	if len(w.Bullets) != magazineSize {
		t.Fatalf("expected %d bullets, got %d", magazineSize, len(w.Bullets))
	}
	for _, b := range w.Bullets {
		if b.Alive || b.Kind < BulletNormal || b.Kind > BulletThin {
			t.Fatalf("bad magazine bullet %+v", b)
		}
	}
	if w.Wave != 1 || w.AliveMonsters() != monstersPerWave {
		t.Fatalf("expected wave 1 with %d monsters, got wave %d with %d", monstersPerWave, w.Wave, w.AliveMonsters())
	}
	for i, m := range w.Monsters {
		if math.Hypot(m.X-w.Player.X, m.Y-w.Player.Y) < spawnClearance {
			t.Fatalf("monster %d spawned too close to the player: %+v", i, m)
		}
		if w.hitsWall(m.X, m.Y, monsterRadius) {
			t.Fatalf("monster %d spawned inside a wall: %+v", i, m)
		}
	}
}

func TestWorld_SameSeedSameArena(t *testing.T) {
	a, b := NewWorld(800, 480, 7), NewWorld(800, 480, 7)
	for i := range a.Monsters {
		if *a.Monsters[i] != *b.Monsters[i] {
			t.Fatalf("monster %d differs: %+v vs %+v", i, a.Monsters[i], b.Monsters[i])
		}
	}
}

func TestBulletKind_Table(t *testing.T) {
	cases := []struct {
		kind   BulletKind
		damage int
		speed  float64
		name   string
	}{
		{BulletNormal, 2, 800, "normal"},
		{BulletHollow, 3, 200, "hollow"},
		{BulletThin, 1, 1600, "thin"},
	}
	for _, c := range cases {
		if c.kind.Damage() != c.damage || c.kind.Speed() != c.speed || c.kind.String() != c.name {
			t.Fatalf("%v: got damage %d speed %v", c.kind, c.kind.Damage(), c.kind.Speed())
		}
	}
}

func TestBullet_StopsAtWall(t *testing.T) {
	w := newTestWorld()
	w.Walls = []rect{{x: 500, y: 200, w: 20, h: 80}}
	b := loadBullet(w, BulletNormal, 450, 240, 800, 0)

	w.moveBullets(0.1)
	if b.Alive {
		t.Fatalf("bullet should stop at the wall, now at (%.1f,%.1f)", b.X, b.Y)
	}
}

func TestBullet_LeavesArena(t *testing.T) {
	w := newTestWorld()
	w.Walls = nil
	b := loadBullet(w, BulletThin, 790, 400, 1600, 0)

	w.moveBullets(0.1)
	if b.Alive {
		t.Fatal("bullet past the right edge should be recycled")
	}
}

func TestBullet_KillsMonster(t *testing.T) {
	w := newTestWorld()
	w.Walls = nil
	var events []string
	w.OnEvent = func(msg string) { events = append(events, msg) }
	m := &Monster{X: 600, Y: 240, Health: monsterHealth, Alive: true}
	w.Monsters = append(w.Monsters, m)

	b := loadBullet(w, BulletNormal, 570, 240, 100, 0)
	w.moveBullets(0.1)
	if !b.Alive || m.Health != monsterHealth {
		t.Fatal("bullet 30px away should not hit yet")
	}
	w.moveBullets(0.1)
	if b.Alive {
		t.Fatal("bullet should be consumed by the hit")
	}
	if m.Health != 1 || !m.Alive {
		t.Fatalf("normal bullet should leave 1 health, got %d", m.Health)
	}

	loadBullet(w, BulletHollow, 590, 240, 200, 0)
	w.moveBullets(0.1)
	if m.Alive {
		t.Fatal("hollow bullet should finish the monster")
	}
	if w.Score != killScore || w.Kills != 1 {
		t.Fatalf("expected score %d and 1 kill, got %d/%d", killScore, w.Score, w.Kills)
	}
	if len(events) != 1 || !strings.Contains(events[0], "hollow") {
		t.Fatalf("expected one kill event naming the bullet, got %q", events)
	}
}

func TestPlayer_HitByMonster(t *testing.T) {
	w := newTestWorld()
	m := &Monster{X: 410, Y: 240, Health: monsterHealth, Alive: true}
	w.Monsters = append(w.Monsters, m)

	w.checkPlayerHits()
	if m.Alive || w.Player.Lives != startLives-1 || w.Over {
		t.Fatalf("expected monster gone and one life lost, lives=%d", w.Player.Lives)
	}

	w.Player.Lives = 1
	w.Monsters = append(w.Monsters, &Monster{X: 400, Y: 220, Health: monsterHealth, Alive: true})
	w.checkPlayerHits()
	if !w.Over || w.Player.Lives != 0 {
		t.Fatalf("last life lost should end the game, lives=%d over=%v", w.Player.Lives, w.Over)
	}

	before := w.Player
	w.Step(time.Second, Controls{Move: gamepad.Cursors{Right: true}})
	if w.Player != before {
		t.Fatal("a finished game must not step")
	}
}

func TestAim_ThresholdAndFireRate(t *testing.T) {
	w := newTestWorld()

	w.Step(100*time.Millisecond, Controls{Aim: gamepad.Speed{X: 10, Y: 10}})
	if w.Shots != 0 {
		t.Fatalf("a 20 unit push should not shoot, shots=%d", w.Shots)
	}

	up := Controls{Aim: gamepad.Speed{X: 0, Y: -200}}
	for i := 0; i < 3; i++ {
		w.Step(100*time.Millisecond, up)
	}
	if w.Shots != 2 {
		t.Fatalf("fire rate should allow 2 shots in 300ms, got %d", w.Shots)
	}
	if !near(w.Player.Rotation, -math.Pi/2) {
		t.Fatalf("player should face up, rotation=%v", w.Player.Rotation)
	}
}

func TestFire_Muzzle(t *testing.T) {
	w := newTestWorld()
	if !w.fire() {
		t.Fatal("first shot should fire")
	}
	b := w.Bullets[0]
	if !b.Alive || b.X != w.Player.X+muzzleOffset || b.Y != w.Player.Y {
		t.Fatalf("bullet should leave the muzzle, got %+v", b)
	}
	if b.VX != b.Kind.Speed() || b.VY != 0 {
		t.Fatalf("bullet velocity should match its kind, got %+v", b)
	}
	if w.fire() {
		t.Fatal("second shot inside the fire interval should be refused")
	}
}

func TestFire_EmptyMagazine(t *testing.T) {
	w := newTestWorld()
	for _, b := range w.Bullets {
		b.Alive = true
	}
	if w.fire() || w.Shots != 0 {
		t.Fatal("no free bullet means no shot")
	}
}

func TestFire_Button(t *testing.T) {
	w := newTestWorld()
	w.Player.Rotation = math.Pi
	w.Step(time.Second/60, Controls{Fire: true})
	if w.Shots != 1 {
		t.Fatalf("fire flag should shoot along the current heading, shots=%d", w.Shots)
	}
}

func TestPlayer_AccelerationAndDrag(t *testing.T) {
	w := newTestWorld()
	w.Walls = nil

	w.movePlayer(0.1, Controls{Move: gamepad.Cursors{Right: true}})
	if !near(w.Player.VX, 50) {
		t.Fatalf("expected vx 50 after 0.1s, got %v", w.Player.VX)
	}

	w.Player.VX = playerMaxSpeed
	w.Player.X = 400
	w.movePlayer(0.5, Controls{})
	if w.Player.VX != 100 || w.Player.X != 450 {
		t.Fatalf("drag should leave vx 100 at x 450, got vx %v x %v", w.Player.VX, w.Player.X)
	}
	w.movePlayer(0.5, Controls{})
	if w.Player.VX != 0 || w.Player.X != 450 {
		t.Fatalf("drag should stop at zero, got vx %v x %v", w.Player.VX, w.Player.X)
	}
}

func TestPlayer_SpeedCap(t *testing.T) {
	w := newTestWorld()
	w.Walls = nil
	for i := 0; i < 20; i++ {
		w.movePlayer(0.1, Controls{Move: gamepad.Cursors{Up: true}})
	}
	if w.Player.VY != -playerMaxSpeed {
		t.Fatalf("vy should cap at %v, got %v", -playerMaxSpeed, w.Player.VY)
	}
	if w.Player.Y != playerRadius {
		t.Fatalf("player should stop at the top edge, y=%v", w.Player.Y)
	}
}

func TestPlayer_SlidesAlongWall(t *testing.T) {
	w := newTestWorld()
	w.Walls = []rect{{x: 410, y: 0, w: 20, h: 480}}
	w.Player.X, w.Player.Y = 380, 240
	w.Player.VX, w.Player.VY = 400, 100

	w.movePlayer(0.1, Controls{})
	if w.Player.X != 380 || w.Player.VX != 0 {
		t.Fatalf("wall should stop horizontal motion, x=%v vx=%v", w.Player.X, w.Player.VX)
	}
	if w.Player.Y <= 240 {
		t.Fatalf("vertical motion should continue, y=%v", w.Player.Y)
	}
}

func TestPlayer_Dash(t *testing.T) {
	w := newTestWorld()
	w.Walls = nil
	w.movePlayer(1.0/60, Controls{Dash: gamepad.SwipeResult{Left: true}})
	if w.Player.VX >= 0 || w.Player.X >= 400 {
		t.Fatalf("left swipe should dash left, vx=%v x=%v", w.Player.VX, w.Player.X)
	}
}

func TestMonster_ReaimsAtWall(t *testing.T) {
	w := newTestWorld()
	w.Walls = []rect{{x: 300, y: 200, w: 20, h: 80}}
	m := &Monster{X: 335, Y: 240, Angle: math.Pi, Health: monsterHealth, Alive: true}
	w.Monsters = []*Monster{m}

	w.moveMonsters(0.1)
	if m.X != 335 {
		t.Fatalf("blocked monster should not move, x=%v", m.X)
	}
	if m.Angle != 0 {
		t.Fatalf("monster should turn towards the player, angle=%v", m.Angle)
	}
}

func TestMonster_ReaimsRandomlyWithoutSight(t *testing.T) {
	w := newTestWorld()
	w.Walls = []rect{
		{x: 300, y: 200, w: 20, h: 80},
		{x: 360, y: 200, w: 10, h: 80},
	}
	m := &Monster{X: 335, Y: 240, Angle: math.Pi, Health: monsterHealth, Alive: true}
	w.Monsters = []*Monster{m}

	w.moveMonsters(0.1)
	if m.Angle == math.Pi || m.Angle < 0 || m.Angle >= 2*math.Pi {
		t.Fatalf("expected a fresh heading in [0,2pi), got %v", m.Angle)
	}
}

func TestMonster_BlockedByMonster(t *testing.T) {
	w := newTestWorld()
	w.Walls = nil
	a := &Monster{X: 100, Y: 400, Angle: 0, Health: monsterHealth, Alive: true}
	b := &Monster{X: 130, Y: 400, Health: monsterHealth, Alive: true}
	w.Monsters = []*Monster{a, b}

	w.moveMonsters(0.1)
	if a.X != 100 {
		t.Fatalf("monster should not walk into another, x=%v", a.X)
	}
}

func TestMonster_RageSpeed(t *testing.T) {
	w := newTestWorld()
	for _, c := range []struct {
		kills int
		speed float64
	}{{0, 100}, {4, 100}, {5, 150}, {9, 150}, {10, 300}} {
		w.Kills = c.kills
		if got := w.monsterSpeed(); got != c.speed {
			t.Fatalf("kills %d: expected speed %v, got %v", c.kills, c.speed, got)
		}
	}
}

func TestWorld_NextWave(t *testing.T) {
	w := newTestWorld()
	w.Monsters[0].Alive = false

	w.Step(time.Second/60, Controls{})
	if w.Wave != 2 || w.AliveMonsters() != monstersPerWave {
		t.Fatalf("expected wave 2 with %d monsters, got wave %d with %d", monstersPerWave, w.Wave, w.AliveMonsters())
	}
}

func TestWorld_Reset(t *testing.T) {
	w := newTestWorld()
	w.Score, w.Kills, w.Wave = 120, 12, 4
	w.Player.Lives = 0
	w.Over = true
	loadBullet(w, BulletThin, 10, 10, 0, 0)

	w.Reset()
	if w.Over || w.Score != 0 || w.Kills != 0 || w.Wave != 1 || w.Player.Lives != startLives {
		t.Fatalf("reset left stale state: %+v", w)
	}
	if len(w.Bullets) != magazineSize {
		t.Fatalf("expected a full magazine, got %d", len(w.Bullets))
	}
	for _, b := range w.Bullets {
		if b.Alive {
			t.Fatal("reset magazine should hold no live bullets")
		}
	}
}
