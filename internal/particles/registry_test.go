package particles

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"cosmic-playground/internal/clock"
	"cosmic-playground/internal/random"
)

func TestRegistrySpawnAndReap(t *testing.T) {
	m := clock.NewMock(epoch)
	r := NewRegistry(Options{}, m, random.New(1))

	r.OnShapeDestroyed(mgl32.Vec3{1, 1, 1}, "#4fc3f7")
	m.Advance(400 * time.Millisecond)
	r.OnShapeDestroyed(mgl32.Vec3{2, 2, 2}, "#9c27b0")

	if r.Len() != 2 || r.ParticleCount() != 2*DefaultCount {
		t.Fatalf("Len() = %d, ParticleCount() = %d", r.Len(), r.ParticleCount())
	}

	m.Advance(600 * time.Millisecond)
	if n := r.Reap(m.Now()); n != 1 {
		t.Fatalf("Reap at 1000ms removed %d, want 1", n)
	}
	if r.Bursts()[0].Color != "#9c27b0" {
		t.Errorf("wrong burst survived: %s", r.Bursts()[0].Color)
	}

	m.Advance(399 * time.Millisecond)
	if n := r.Reap(m.Now()); n != 0 {
		t.Errorf("Reap removed %d before TTL", n)
	}
	m.Advance(time.Millisecond)
	if n := r.Reap(m.Now()); n != 1 || r.Len() != 0 {
		t.Errorf("Reap removed %d, Len() = %d", n, r.Len())
	}
}

func TestRegistryOptions(t *testing.T) {
	m := clock.NewMock(epoch)
	r := NewRegistry(Options{Count: 8, TTL: 250 * time.Millisecond, Color: "#ff69b4"}, m, random.New(1))
	b := r.Spawn(mgl32.Vec3{}, "#000000")

	if b.Len() != 8 {
		t.Errorf("Len() = %d, want 8", b.Len())
	}
	if b.Color != "#ff69b4" {
		t.Errorf("Color = %s, want override", b.Color)
	}
	if !b.Expired(epoch.Add(250 * time.Millisecond)) {
		t.Error("burst should expire at custom TTL")
	}
}

func TestRegistryTickMovesAllBursts(t *testing.T) {
	m := clock.NewMock(epoch)
	r := NewRegistry(Options{Count: 5}, m, random.New(3))
	a := r.Spawn(mgl32.Vec3{0, 10, 0}, "")
	b := r.Spawn(mgl32.Vec3{5, 10, 5}, "")

	r.Tick(0.1, 9.8)
	for _, burst := range []*Burst{a, b} {
		for i, p := range burst.Particles() {
			if p.Position == burst.Origin {
				t.Errorf("burst %d particle %d did not move", burst.ID, i)
			}
		}
	}
	if a.ID == b.ID {
		t.Error("burst ids must be unique")
	}
}
