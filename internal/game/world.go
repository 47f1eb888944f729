package game

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/Garsondee/Touch-Shooter/internal/gamepad"
)

const (
	playerAcceleration = 500.0
	playerMaxSpeed     = 400.0 // pixels/second, per axis
	playerDrag         = 600.0
	playerRadius       = 14.0
	startLives         = 3

	monsterSpeed    = 100.0
	monsterHealth   = 3
	monsterRadius   = 14.0
	monstersPerWave = 6
	spawnClearance  = 150.0 // no monster spawns this close to the player

	// Monsters get faster as the kill count grows.
	rageKills       = 5
	rageSpeedMild   = 50.0
	rageSpeedFierce = 200.0

	fireRate     = 200 * time.Millisecond
	magazineSize = 20
	muzzleOffset = playerRadius + 20
	aimThreshold = 20 // |sx|+|sy| of the aim stick needed to shoot
	killScore    = 10
)

// BulletKind trades damage against speed.
type BulletKind int

const (
	BulletNormal BulletKind = iota + 1
	BulletHollow
	BulletThin
)

func (k BulletKind) String() string {
	switch k {
	case BulletNormal:
		return "normal"
	case BulletHollow:
		return "hollow"
	case BulletThin:
		return "thin"
	}
	return fmt.Sprintf("BulletKind(%d)", int(k))
}

// Damage is the health a hit takes off a monster.
func (k BulletKind) Damage() int {
	switch k {
	case BulletHollow:
		return 3
	case BulletThin:
		return 1
	}
	return 2
}

// Speed is the muzzle velocity in pixels/second.
func (k BulletKind) Speed() float64 {
	switch k {
	case BulletHollow:
		return 200
	case BulletThin:
		return 1600
	}
	return 800
}

type Bullet struct {
	Kind   BulletKind
	X, Y   float64
	VX, VY float64
	Alive  bool
}

type Monster struct {
	X, Y   float64
	Angle  float64 // heading in radians
	Health int
	Alive  bool
}

type Player struct {
	X, Y     float64
	VX, VY   float64
	Rotation float64
	Lives    int
}

// Controls is the intent for one frame, read from the gamepad and keyboard.
type Controls struct {
	Move gamepad.Cursors
	Aim  gamepad.Speed
	Fire bool
	Dash gamepad.SwipeResult
}

// World is the shooter simulation. It has no Ebiten dependency so tests and
// the headless report can step it directly.
type World struct {
	Width, Height float64
	Walls         []rect

	Player   Player
	Monsters []*Monster
	Bullets  []*Bullet // fixed magazine, reused

	Score int
	Kills int
	Shots int
	Wave  int
	Over  bool

	// OnEvent receives one line per notable event (kills, hits, waves).
	OnEvent func(msg string)

	rng      *rand.Rand
	now      time.Duration
	nextFire time.Duration
}

// NewWorld builds the arena and spawns the first wave.
func NewWorld(width, height float64, seed int64) *World {
	w := &World{
		Width:  width,
		Height: height,
		rng:    rand.New(rand.NewSource(seed)), // #nosec G404 -- gameplay randomness
	}
	w.Walls = arenaWalls(width, height)
	w.Reset()
	return w
}

// arenaWalls places four pillars and two bars relative to the screen size.
func arenaWalls(width, height float64) []rect {
	cw, ch := int(width), int(height)
	const pillar = 40
	return []rect{
		{x: cw/4 - pillar/2, y: ch/4 - pillar/2, w: pillar, h: pillar},
		{x: 3*cw/4 - pillar/2, y: ch/4 - pillar/2, w: pillar, h: pillar},
		{x: cw/4 - pillar/2, y: 3*ch/4 - pillar/2, w: pillar, h: pillar},
		{x: 3*cw/4 - pillar/2, y: 3*ch/4 - pillar/2, w: pillar, h: pillar},
		{x: cw/2 - 80, y: ch / 8, w: 160, h: 16},
		{x: cw/2 - 80, y: 7*ch/8 - 16, w: 160, h: 16},
	}
}

// Reset starts a new game: full lives, empty score, fresh magazine and wave.
func (w *World) Reset() {
	w.Player = Player{X: w.Width / 2, Y: w.Height / 2, Lives: startLives}
	w.Score, w.Kills, w.Shots, w.Wave = 0, 0, 0, 0
	w.Over = false
	w.now, w.nextFire = 0, 0

	w.Bullets = w.Bullets[:0]
	for i := 0; i < magazineSize; i++ {
		w.Bullets = append(w.Bullets, &Bullet{Kind: BulletKind(1 + w.rng.Intn(3))})
	}
	w.Monsters = w.Monsters[:0]
	w.spawnWave()
}

// Step advances the world by dt.
func (w *World) Step(dt time.Duration, c Controls) {
	if w.Over {
		return
	}
	w.now += dt
	s := dt.Seconds()

	w.movePlayer(s, c)
	w.aim(c)
	w.moveMonsters(s)
	w.moveBullets(s)
	w.checkPlayerHits()

	if !w.Over && w.AliveMonsters() == 0 {
		w.spawnWave()
	}
}

// AliveMonsters counts monsters still in play.
func (w *World) AliveMonsters() int {
	n := 0
	for _, m := range w.Monsters {
		if m.Alive {
			n++
		}
	}
	return n
}

func (w *World) emit(format string, args ...any) {
	if w.OnEvent != nil {
		w.OnEvent(fmt.Sprintf(format, args...))
	}
}

func (w *World) spawnWave() {
	w.Wave++
	w.Monsters = w.Monsters[:0]
	for i := 0; i < monstersPerWave; i++ {
		w.Monsters = append(w.Monsters, w.spawnMonster())
	}
	w.emit("wave %d: %d monsters", w.Wave, monstersPerWave)
}

func (w *World) spawnMonster() *Monster {
	m := &Monster{
		X:      monsterRadius,
		Y:      monsterRadius,
		Angle:  w.rng.Float64() * 2 * math.Pi,
		Health: monsterHealth,
		Alive:  true,
	}
	for tries := 0; tries < 50; tries++ {
		x := monsterRadius + w.rng.Float64()*(w.Width-2*monsterRadius)
		y := monsterRadius + w.rng.Float64()*(w.Height-2*monsterRadius)
		if math.Hypot(x-w.Player.X, y-w.Player.Y) < spawnClearance || w.hitsWall(x, y, monsterRadius) {
			continue
		}
		m.X, m.Y = x, y
		break
	}
	return m
}

func (w *World) movePlayer(s float64, c Controls) {
	p := &w.Player
	switch {
	case c.Dash.Left:
		p.VX = -playerMaxSpeed
	case c.Dash.Right:
		p.VX = playerMaxSpeed
	case c.Dash.Up:
		p.VY = -playerMaxSpeed
	case c.Dash.Down:
		p.VY = playerMaxSpeed
	}

	var ax, ay float64
	if c.Move.Left {
		ax -= playerAcceleration
	}
	if c.Move.Right {
		ax += playerAcceleration
	}
	if c.Move.Up {
		ay -= playerAcceleration
	}
	if c.Move.Down {
		ay += playerAcceleration
	}
	p.VX = accelerate(p.VX, ax, s)
	p.VY = accelerate(p.VY, ay, s)

	// Axes move separately so the player slides along walls.
	nx := clampf(p.X+p.VX*s, playerRadius, w.Width-playerRadius)
	if w.hitsWall(nx, p.Y, playerRadius) {
		p.VX = 0
	} else {
		p.X = nx
	}
	ny := clampf(p.Y+p.VY*s, playerRadius, w.Height-playerRadius)
	if w.hitsWall(p.X, ny, playerRadius) {
		p.VY = 0
	} else {
		p.Y = ny
	}
}

// accelerate applies acceleration a, or drag when a is zero, then caps the speed.
func accelerate(v, a, s float64) float64 {
	switch {
	case a != 0:
		v += a * s
	case v > 0:
		v = math.Max(0, v-playerDrag*s)
	case v < 0:
		v = math.Min(0, v+playerDrag*s)
	}
	return clampf(v, -playerMaxSpeed, playerMaxSpeed)
}

func (w *World) aim(c Controls) {
	ax, ay := float64(c.Aim.X), float64(c.Aim.Y)
	if math.Abs(ax)+math.Abs(ay) > aimThreshold {
		w.Player.Rotation = math.Atan2(ay, ax)
		w.fire()
		return
	}
	if c.Fire {
		w.fire()
	}
}

// fire launches the next free bullet along the player's heading, at most
// once per fireRate.
func (w *World) fire() bool {
	if w.now < w.nextFire {
		return false
	}
	var b *Bullet
	for _, candidate := range w.Bullets {
		if !candidate.Alive {
			b = candidate
			break
		}
	}
	if b == nil {
		return false
	}
	p := w.Player
	cos, sin := math.Cos(p.Rotation), math.Sin(p.Rotation)
	b.X = p.X + cos*muzzleOffset
	b.Y = p.Y + sin*muzzleOffset
	b.VX = cos * b.Kind.Speed()
	b.VY = sin * b.Kind.Speed()
	b.Alive = true
	w.Shots++
	w.nextFire = w.now + fireRate
	return true
}

func (w *World) monsterSpeed() float64 {
	switch {
	case w.Kills >= 2*rageKills:
		return monsterSpeed + rageSpeedFierce
	case w.Kills >= rageKills:
		return monsterSpeed + rageSpeedMild
	}
	return monsterSpeed
}

func (w *World) moveMonsters(s float64) {
	speed := w.monsterSpeed()
	for _, m := range w.Monsters {
		if !m.Alive {
			continue
		}
		nx := m.X + math.Cos(m.Angle)*speed*s
		ny := m.Y + math.Sin(m.Angle)*speed*s
		if !w.inBounds(nx, ny, monsterRadius) || w.hitsWall(nx, ny, monsterRadius) || w.hitsMonster(m, nx, ny) {
			w.reaim(m)
			continue
		}
		m.X, m.Y = nx, ny
	}
}

// reaim points a blocked monster at the player, or somewhere random when a
// wall hides the player.
func (w *World) reaim(m *Monster) {
	p := w.Player
	if HasLineOfSight(m.X, m.Y, p.X, p.Y, w.Walls) {
		m.Angle = math.Atan2(p.Y-m.Y, p.X-m.X)
		return
	}
	m.Angle = w.rng.Float64() * 2 * math.Pi
}

func (w *World) moveBullets(s float64) {
	for _, b := range w.Bullets {
		if !b.Alive {
			continue
		}
		nx, ny := b.X+b.VX*s, b.Y+b.VY*s
		if _, hit := firstWallHit(b.X, b.Y, nx, ny, w.Walls); hit {
			b.Alive = false
			continue
		}
		if m := w.monsterOnPath(b.X, b.Y, nx, ny); m != nil {
			w.hitMonster(b, m)
			continue
		}
		b.X, b.Y = nx, ny
		if !w.inBounds(b.X, b.Y, 0) {
			b.Alive = false
		}
	}
}

// monsterOnPath returns the first live monster a bullet travelling a-b touches.
func (w *World) monsterOnPath(ax, ay, bx, by float64) *Monster {
	for _, m := range w.Monsters {
		if m.Alive && segmentDistance(ax, ay, bx, by, m.X, m.Y) < monsterRadius {
			return m
		}
	}
	return nil
}

func (w *World) hitMonster(b *Bullet, m *Monster) {
	b.Alive = false
	m.Health -= b.Kind.Damage()
	if m.Health > 0 {
		return
	}
	m.Alive = false
	w.Kills++
	w.Score += killScore
	w.emit("monster down by %s bullet, score %d", b.Kind, w.Score)
}

func (w *World) checkPlayerHits() {
	p := &w.Player
	for _, m := range w.Monsters {
		if !m.Alive || math.Hypot(m.X-p.X, m.Y-p.Y) >= monsterRadius+playerRadius {
			continue
		}
		m.Alive = false
		p.Lives--
		w.emit("player hit, %d lives left", p.Lives)
		if p.Lives <= 0 {
			p.Lives = 0
			w.Over = true
			w.emit("game over, score %d", w.Score)
			return
		}
	}
}

func (w *World) hitsWall(x, y, radius float64) bool {
	for _, r := range w.Walls {
		if r.overlapsCircle(x, y, radius) {
			return true
		}
	}
	return false
}

func (w *World) hitsMonster(self *Monster, x, y float64) bool {
	for _, m := range w.Monsters {
		if m != self && m.Alive && math.Hypot(m.X-x, m.Y-y) < 2*monsterRadius {
			return true
		}
	}
	return false
}

func (w *World) inBounds(x, y, radius float64) bool {
	return x >= radius && x <= w.Width-radius && y >= radius && y <= w.Height-radius
}
