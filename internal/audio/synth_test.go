package audio

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gopxl/beep"

	"cosmic-playground/internal/random"
)

// drain streams s to completion and returns every sample.
func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for i := 0; i < 1000; i++ {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok || n == 0 {
			break
		}
	}
	return out
}

func TestOscillatorLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	tests := []struct {
		name string
		wave Wave
	}{
		{"sine", WaveSine},
		{"noise", WaveNoise},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			osc := NewOscillator(440, 50*time.Millisecond, tt.wave, rate, random.New(1))
			samples := drain(osc)
			if len(samples) != rate.N(50*time.Millisecond) {
				t.Errorf("got %d samples, want %d", len(samples), rate.N(50*time.Millisecond))
			}
			for i, s := range samples {
				if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
					t.Fatalf("sample %d = %v", i, s)
				}
			}
		})
	}
}

func TestEnvelopeRamps(t *testing.T) {
	rate := beep.SampleRate(1000)
	env := NewEnvelope(constant{}, 100*time.Millisecond, 10*time.Millisecond, 20*time.Millisecond, rate)
	samples := drain(env)
	if len(samples) != 100 {
		t.Fatalf("got %d samples, want 100", len(samples))
	}
	if samples[0][0] != 0 {
		t.Errorf("first sample = %v, want 0 (attack start)", samples[0][0])
	}
	if samples[50][0] != 1 {
		t.Errorf("sustain sample = %v, want 1", samples[50][0])
	}
	if last := samples[99][0]; last <= 0 || last > 0.1 {
		t.Errorf("last sample = %v, want a small positive release tail", last)
	}
}

type constant struct{}

func (constant) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		samples[i] = [2]float64{1, 1}
	}
	return len(samples), true
}

func (constant) Err() error { return nil }

func TestPopIsShortAndBounded(t *testing.T) {
	pop := NewPop(SampleRate, DefaultGain, random.New(5))
	samples := drain(pop)
	want := SampleRate.N(PopDuration)
	if len(samples) < want || len(samples) > want+512 {
		t.Fatalf("pop is %d samples, want about %d", len(samples), want)
	}
	peak := 0.0
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(s[0]))
	}
	if peak == 0 || peak > 1 {
		t.Errorf("peak = %v, want (0, 1]", peak)
	}
}

func TestSilentPop(t *testing.T) {
	for _, s := range drain(NewPop(SampleRate, 0, random.New(5))) {
		if s[0] != 0 {
			t.Fatalf("gain 0 pop produced %v", s[0])
		}
	}
}

func TestPlayerIgnoresEventsUntilInit(t *testing.T) {
	p := NewPlayer(random.New(1))
	p.OnShapeDestroyed(mgl32.Vec3{}, "#ff69b4")
	if p.Played() != 0 {
		t.Errorf("Played() = %d before Init", p.Played())
	}
	p.SetMuted(true)
	if !p.Muted() {
		t.Error("SetMuted(true) not reflected")
	}
	p.Close()
}
