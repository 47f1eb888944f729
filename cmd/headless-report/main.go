package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Touch-Shooter/internal/game"
	"github.com/Garsondee/Touch-Shooter/internal/gamepad"
)

const (
	screenW = game.ScreenWidth
	screenH = game.ScreenHeight
)

// scenario is a scripted input session for one gamepad layout.
type scenario struct {
	name   string
	layout gamepad.Layout
	script func(rng *rand.Rand, cfg gamepad.Config) []gamepad.Step
}

var scenarios = []scenario{
	{name: "dual-stick", layout: gamepad.DoubleStick, script: dualStickScript},
	{name: "turbo", layout: gamepad.StickButton, script: turboScript},
	{name: "swipes", layout: gamepad.Gesture, script: swipeScript},
	{name: "corner-sticks", layout: gamepad.CornerSticks, script: cornerScript},
}

type runStats struct {
	runIndex int
	seed     int64
	scenario string
	ticks    int

	engagedTicks []int // per stick
	peakSpeed    []int // per stick, |x|+|y|
	fired        []int // per button
	swipes       gamepad.SwipeCounts
	taps         int

	shots    int
	kills    int
	score    int
	lives    int
	travel   float64
	lastWave int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var name string
	var configPath string
	var copyReport bool

	flag.IntVar(&runs, "runs", 3, "number of runs per scenario")
	flag.IntVar(&ticks, "ticks", 300, "frames per run (60 per second)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.StringVar(&name, "scenario", "all", "scenario name: "+scenarioNames()+" or all")
	flag.StringVar(&configPath, "config", "", "gamepad config file (.toml or .yaml)")
	flag.BoolVar(&copyReport, "copy", false, "copy the report to the clipboard")
	flag.Parse()

	if runs <= 0 {
		log.Fatal("error: -runs must be > 0")
	}
	if ticks <= 0 {
		log.Fatal("error: -ticks must be > 0")
	}
	selected, err := selectScenarios(name)
	if err != nil {
		log.Fatal(err)
	}
	cfg := gamepad.DefaultConfig()
	if configPath != "" {
		if cfg, err = gamepad.LoadConfig(configPath); err != nil {
			log.Fatal(err)
		}
	}
	if cfg.LogLevel == "info" {
		cfg.LogLevel = "warn"
	}
	gamepad.SetLogLevel(cfg.LogLevel)

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Headless Gamepad Report ===\n")
	fmt.Fprintf(&sb, "scenario=%s runs=%d ticks=%d seed_base=%d\n\n", name, runs, ticks, seedBase)
	for _, sc := range selected {
		all := make([]runStats, 0, runs)
		for i := 0; i < runs; i++ {
			rs := runScenario(sc, cfg, i+1, seedBase+int64(i), ticks)
			all = append(all, rs)
			printRun(&sb, rs)
		}
		printAggregate(&sb, sc.name, all)
	}

	fmt.Print(sb.String())
	if copyReport {
		if err := clipboard.WriteAll(sb.String()); err != nil {
			log.Fatalf("copy report: %v", err)
		}
		fmt.Println("(report copied to clipboard)")
	}
}

func scenarioNames() string {
	names := make([]string, len(scenarios))
	for i, sc := range scenarios {
		names[i] = sc.name
	}
	return strings.Join(names, ", ")
}

func selectScenarios(name string) ([]scenario, error) {
	if name == "all" {
		return scenarios, nil
	}
	for _, sc := range scenarios {
		if sc.name == name {
			return []scenario{sc}, nil
		}
	}
	return nil, fmt.Errorf("unsupported scenario %q (supported: %s, all)", name, scenarioNames())
}

// runScenario replays the scenario's script against a fresh gamepad and
// drives the shooter world with what the gamepad reports each frame.
func runScenario(sc scenario, cfg gamepad.Config, runIndex int, seed int64, ticks int) runStats {
	cfg.Layout = sc.layout
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- reproducible jitter
	r := gamepad.NewReplay(cfg,
		gamepad.WithScreen(screenW, screenH),
		gamepad.WithSteps(sc.script(rng, cfg)...),
	)
	w := game.NewWorld(screenW, screenH, seed)

	rs := runStats{
		runIndex:     runIndex,
		seed:         seed,
		scenario:     sc.name,
		ticks:        ticks,
		engagedTicks: make([]int, len(r.Pad.Sticks())),
		peakSpeed:    make([]int, len(r.Pad.Sticks())),
	}

	prevFired := 0
	prevSwipes := r.Swipes
	for i := 0; i < ticks; i++ {
		f := r.Tick()
		for s, st := range f.Sticks {
			if st.Engaged {
				rs.engagedTicks[s]++
			}
			if v := abs(st.Speed.X) + abs(st.Speed.Y); v > rs.peakSpeed[s] {
				rs.peakSpeed[s] = v
			}
		}
		fired := sum(r.Fired) + r.Taps
		fire := fired > prevFired
		dash := swipeDelta(prevSwipes, r.Swipes)
		prevFired, prevSwipes = fired, r.Swipes

		x, y := w.Player.X, w.Player.Y
		w.Step(gamepad.DefaultFrame, game.FrameControls(f, fire, dash))
		rs.travel += math.Hypot(w.Player.X-x, w.Player.Y-y)
	}

	rs.fired = append(rs.fired, r.Fired...)
	rs.swipes = r.Swipes
	rs.taps = r.Taps
	rs.shots, rs.kills, rs.score = w.Shots, w.Kills, w.Score
	rs.lives, rs.lastWave = w.Player.Lives, w.Wave
	return rs
}

func dualStickScript(rng *rand.Rand, _ gamepad.Config) []gamepad.Step {
	move := jitter(rng, gamepad.Pt(200, 300), 20)
	aim := jitter(rng, gamepad.Pt(600, 260), 20)
	var steps []gamepad.Step
	steps = append(steps, gamepad.Drag(0, 100*time.Millisecond, move, move.Add(gamepad.Pt(60, 0)), 200*time.Millisecond, 2*time.Second)...)
	steps = append(steps, gamepad.Drag(1, 500*time.Millisecond, aim, aim.Add(gamepad.Pt(0, -60)), 100*time.Millisecond, 1500*time.Millisecond)...)
	// Second aim gesture: pull left.
	steps = append(steps, gamepad.Drag(1, 2500*time.Millisecond, aim, aim.Add(gamepad.Pt(-80, 0)), 100*time.Millisecond, time.Second)...)
	return steps
}

func turboScript(rng *rand.Rand, cfg gamepad.Config) []gamepad.Step {
	pad := gamepad.NewButtonPad(gamepad.FixedScreen{Width: screenW, Height: screenH}, gamepad.SystemClock{}, cfg.ButtonPad, cfg.ButtonSize)
	button := pad.Button(0).Center()
	move := jitter(rng, gamepad.Pt(150, 240), 20)

	var steps []gamepad.Step
	steps = append(steps, gamepad.Tap(4, 100*time.Millisecond, button, 1500*time.Millisecond)...)
	steps = append(steps, gamepad.Drag(0, 200*time.Millisecond, move, move.Add(gamepad.Pt(0, -60)), 100*time.Millisecond, time.Second)...)
	return steps
}

func swipeScript(rng *rand.Rand, _ gamepad.Config) []gamepad.Step {
	dirs := []gamepad.Point{gamepad.Pt(150, 0), gamepad.Pt(-150, 0), gamepad.Pt(0, -150), gamepad.Pt(0, 150)}
	var steps []gamepad.Step
	at := 100 * time.Millisecond
	for i, d := range dirs {
		from := jitter(rng, gamepad.Pt(400, 240), 40)
		steps = append(steps, gamepad.Drag(10+i, at, from, from.Add(d), 100*time.Millisecond, 0)...)
		at += 600 * time.Millisecond
	}
	// A short flick under the threshold is ignored.
	from := jitter(rng, gamepad.Pt(400, 240), 40)
	return append(steps, gamepad.Drag(20, at, from, from.Add(gamepad.Pt(30, 0)), 100*time.Millisecond, 0)...)
}

func cornerScript(rng *rand.Rand, _ gamepad.Config) []gamepad.Step {
	corners := []gamepad.Point{
		gamepad.Pt(150, 380), gamepad.Pt(150, 100), gamepad.Pt(650, 100), gamepad.Pt(650, 380),
	}
	var steps []gamepad.Step
	for i, c := range corners {
		from := jitter(rng, c, 30)
		steps = append(steps, gamepad.Drag(i, time.Duration(i)*300*time.Millisecond, from, from.Add(gamepad.Pt(-45, -45)), 200*time.Millisecond, time.Second)...)
	}
	return steps
}

// jitter moves p by up to r pixels on each axis.
func jitter(rng *rand.Rand, p gamepad.Point, r float64) gamepad.Point {
	return p.Add(gamepad.Pt((rng.Float64()*2-1)*r, (rng.Float64()*2-1)*r))
}

// swipeDelta names the direction of a swipe completed since prev.
func swipeDelta(prev, cur gamepad.SwipeCounts) gamepad.SwipeResult {
	return gamepad.SwipeResult{
		Up:    cur.Up > prev.Up,
		Down:  cur.Down > prev.Down,
		Left:  cur.Left > prev.Left,
		Right: cur.Right > prev.Right,
	}
}

func printRun(sb *strings.Builder, rs runStats) {
	fmt.Fprintf(sb, "--- %s run %d (seed=%d) ---\n", rs.scenario, rs.runIndex, rs.seed)
	fmt.Fprintf(sb, "sticks: engaged_ticks=%s peak_speed=%s\n", joinInts(rs.engagedTicks), joinInts(rs.peakSpeed))
	fmt.Fprintf(sb, "buttons: fired=%s taps=%d\n", joinInts(rs.fired), rs.taps)
	fmt.Fprintf(sb, "swipes: up=%d down=%d left=%d right=%d\n", rs.swipes.Up, rs.swipes.Down, rs.swipes.Left, rs.swipes.Right)
	fmt.Fprintf(sb, "world: shots=%d kills=%d score=%d lives=%d wave=%d travel=%.0fpx\n\n",
		rs.shots, rs.kills, rs.score, rs.lives, rs.lastWave, rs.travel)
}

func printAggregate(sb *strings.Builder, name string, all []runStats) {
	totalShots := 0
	totalKills := 0
	totalFired := 0
	totalSwipes := 0
	travel := make([]float64, 0, len(all))
	for _, rs := range all {
		totalShots += rs.shots
		totalKills += rs.kills
		totalFired += sum(rs.fired)
		totalSwipes += rs.swipes.Total()
		travel = append(travel, rs.travel)
	}
	sort.Float64s(travel)

	fmt.Fprintf(sb, "=== Aggregate: %s ===\n", name)
	fmt.Fprintf(sb, "runs=%d\n", len(all))
	fmt.Fprintf(sb, "avg_per_run: shots=%.1f kills=%.1f button_fires=%.1f swipes=%.1f\n",
		avg(totalShots, len(all)), avg(totalKills, len(all)), avg(totalFired, len(all)), avg(totalSwipes, len(all)))
	fmt.Fprintf(sb, "travel_px: min=%s median=%s max=%s\n\n", floatAt(travel, 0), median(travel), floatAt(travel, len(travel)-1))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// median expects sorted input.
func median(vals []float64) string {
	if len(vals) == 0 {
		return "n/a"
	}
	m := len(vals) / 2
	if len(vals)%2 == 1 {
		return fmt.Sprintf("%.0f", vals[m])
	}
	return fmt.Sprintf("%.0f", (vals[m-1]+vals[m])/2)
}

func floatAt(vals []float64, i int) string {
	if i < 0 || i >= len(vals) {
		return "n/a"
	}
	return fmt.Sprintf("%.0f", vals[i])
}

func joinInts(vals []int) string {
	if len(vals) == 0 {
		return "none"
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ",")
}

func sum(vals []int) int {
	n := 0
	for _, v := range vals {
		n += v
	}
	return n
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
