package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"cosmic-playground/internal/playground"
)

const (
	fpsFontSize   = 20
	fpsPadding    = 12
	fpsLineHeight = fpsFontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

var (
	statsColor = rl.NewColor(200, 200, 210, 255)
	slowColor  = rl.NewColor(255, 105, 180, 255)
)

// Debug holds runtime overlays: FPS and memory (off by default) and the playground
// counters (on by default).
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowStats    bool
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastStats    playground.Stats
	statsText    string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with FPS and memory hidden and stats shown.
func New() *Debug {
	return &Debug{ShowStats: true}
}

// SetShowFPS sets whether the FPS counter is drawn (top-right, green).
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowMemAlloc sets whether the memory allocation counter is drawn (top-right, under FPS).
func (d *Debug) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
}

// Draw renders any enabled overlays. Call after scene and terminal in the draw loop.
// FPS and memory text is only recomputed every updateInterval frames; the stats
// line only when the counts change.
func (d *Debug) Draw(stats playground.Stats) {
	d.frameCount++
	update := (d.frameCount % updateInterval) == 0
	if d.ShowFPS && d.lastFpsText == "" {
		update = true
	}
	if d.ShowMemAlloc && d.lastMemText == "" {
		update = true
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(fpsPadding)

	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.lastFpsText, screenW, y, rl.Green)
		y += fpsLineHeight
	}

	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		drawRight(d.lastMemText, screenW, y, rl.Green)
	}

	if d.ShowStats {
		if d.statsText == "" || stats != d.lastStats {
			d.lastStats = stats
			d.statsText = fmt.Sprintf("Shapes: %d  Bursts: %d  Particles: %d", stats.Shapes, stats.Bursts, stats.Particles)
		}
		rl.DrawText(d.statsText, fpsPadding, fpsPadding, fpsFontSize, statsColor)
	}
	if stats.SlowMotion {
		rl.DrawText("SLOW MOTION", fpsPadding, fpsPadding+fpsLineHeight, fpsFontSize, slowColor)
	}
}

func drawRight(text string, screenW, y int32, col rl.Color) {
	if text == "" {
		return
	}
	w := rl.MeasureText(text, fpsFontSize)
	rl.DrawText(text, screenW-w-fpsPadding, y, fpsFontSize, col)
}
