package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"cosmic-playground/internal/random"
)

// Wave selects an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveNoise
)

// oscillator generates a fixed-length mono wave on both channels.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     Wave
	rate     beep.SampleRate
	rng      *random.Source
}

// NewOscillator returns a streamer producing duration worth of the wave. rng feeds
// WaveNoise and may be nil for other waves.
func NewOscillator(freq float64, duration time.Duration, wave Wave, rate beep.SampleRate, rng *random.Source) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rng,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}
		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveNoise:
			val = float64(o.rng.Range(-1, 1))
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope ramps a stream up over attack and down over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope shapes s with a linear attack and release inside duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if releaseStart := e.total - e.release; e.release > 0 && e.position >= releaseStart {
			vol = math.Min(vol, float64(e.total-e.position)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// withVolume scales s by a linear gain; gain <= 0 is silent.
func withVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// Pop timings.
const (
	PopDuration = 120 * time.Millisecond
	popAttack   = 2 * time.Millisecond
	popRelease  = 100 * time.Millisecond
	popThumpHz  = 90.0
)

// NewPop returns the sound of a shape bursting: a noise crack over a low thump.
func NewPop(rate beep.SampleRate, gain float64, rng *random.Source) beep.Streamer {
	crack := NewEnvelope(NewOscillator(0, PopDuration, WaveNoise, rate, rng), PopDuration, popAttack, popRelease, rate)
	thump := NewEnvelope(NewOscillator(popThumpHz, PopDuration, WaveSine, rate, nil), PopDuration, popAttack, popRelease, rate)
	return withVolume(beep.Mix(withVolume(crack, 0.6), withVolume(thump, 0.4)), gain)
}
