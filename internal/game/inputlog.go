package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	logPanelWidth = 320
	logMaxEntries = 60
	logLineHeight = 11
)

// InputSource tags where a log line came from.
type InputSource int

const (
	SourceLocal InputSource = iota
	SourceRemote
	SourceGame
)

func (s InputSource) String() string {
	switch s {
	case SourceLocal:
		return "local"
	case SourceRemote:
		return "remote"
	case SourceGame:
		return "game"
	}
	return fmt.Sprintf("InputSource(%d)", int(s))
}

// InputEntry is a single line in the input log.
type InputEntry struct {
	Tick    int
	Source  InputSource
	Message string
}

// InputLog is a ring buffer of pointer and game events rendered on-screen.
type InputLog struct {
	entries []InputEntry
	head    int
	count   int
}

// NewInputLog creates an input log with a fixed capacity.
func NewInputLog() *InputLog {
	return &InputLog{
		entries: make([]InputEntry, logMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (l *InputLog) Add(tick int, source InputSource, msg string) {
	l.entries[l.head] = InputEntry{
		Tick:    tick,
		Source:  source,
		Message: msg,
	}
	l.head = (l.head + 1) % logMaxEntries
	if l.count < logMaxEntries {
		l.count++
	}
}

// Len returns the number of entries held.
func (l *InputLog) Len() int { return l.count }

// Recent returns entries in chronological order (oldest first).
func (l *InputLog) Recent() []InputEntry {
	result := make([]InputEntry, l.count)
	for i := 0; i < l.count; i++ {
		idx := (l.head - l.count + i + logMaxEntries) % logMaxEntries
		result[i] = l.entries[idx]
	}
	return result
}

var sourceColors = map[InputSource]color.RGBA{
	SourceLocal:  {R: 90, G: 200, B: 120, A: 255},
	SourceRemote: {R: 80, G: 150, B: 230, A: 255},
	SourceGame:   {R: 230, G: 190, B: 70, A: 255},
}

// Draw renders the log as a panel on the right side of the screen.
func (l *InputLog) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 220}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "INPUT LOG  [L] hide  [C] copy", panelX+8, 2)

	entries := l.Recent()

	// Newest at the bottom.
	maxVisible := (panelH - 24) / logLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	const recent = 3
	y := 20
	for i, e := range entries {
		if i >= len(entries)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, sourceColors[e.Source], false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %s", e.Tick, e.Message), panelX+12, y)
		y += logLineHeight
	}
}
