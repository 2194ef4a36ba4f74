// Package audio synthesizes and plays the playground's sound effects.
package audio

import (
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"cosmic-playground/internal/random"
)

// SampleRate is the output rate handed to the speaker.
const SampleRate = beep.SampleRate(44100)

// DefaultGain is the pop volume as a linear gain.
const DefaultGain = 0.5

// Player plays a pop whenever a shape is destroyed. Until Init succeeds, or while
// muted, destroy events are ignored.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rng         *random.Source
	gain        float64
	initialized bool
	muted       bool
	played      int
}

// NewPlayer returns a silent player; call Init to open the audio device.
func NewPlayer(rng *random.Source) *Player {
	return &Player{
		mixer: &beep.Mixer{},
		rng:   rng,
		gain:  DefaultGain,
	}
}

// Init opens the speaker and starts the mixer. Calling it again is a no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// SetMuted turns playback off or on.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

// Muted reports whether playback is off.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Played returns how many pops have been queued.
func (p *Player) Played() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played
}

// OnShapeDestroyed queues a pop.
func (p *Player) OnShapeDestroyed(mgl32.Vec3, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized || p.muted {
		return
	}
	pop := NewPop(SampleRate, p.gain, p.rng)
	speaker.Lock()
	p.mixer.Add(pop)
	speaker.Unlock()
	p.played++
}

// Close stops all sounds and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
