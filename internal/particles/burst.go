// Package particles integrates explosion bursts: fixed-size sets of independent
// projectile particles under gravity and exponential drag. It does not touch the
// rigid-body engine.
package particles

import (
	"time"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"cosmic-playground/internal/random"
)

// Defaults for a burst.
const (
	DefaultCount = 50
	DefaultTTL   = 1000 * time.Millisecond
)

// Launch ranges. Each draw is in [min, max).
const (
	minSpeed = float32(2)
	maxSpeed = float32(5)
	minLift  = float32(4)
	maxLift  = float32(6)
	minDecay = float32(0.95)
	maxDecay = float32(0.98)
	fullTurn = 2 * math32.Pi
)

// ID identifies a burst within a Registry.
type ID uint64

// Particle is one projectile. Decay is the per-tick velocity multiplier.
type Particle struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Decay    float32
}

// Burst owns its particles from spawn until it is reaped. The particle count never
// changes; the position buffer is reused across ticks.
type Burst struct {
	ID        ID
	Origin    mgl32.Vec3
	Color     string
	CreatedAt time.Time
	TTL       time.Duration

	particles []Particle
	positions []float32
}

// Spawn creates a burst of count particles at origin. Every particle starts at origin
// with a random radial direction, a horizontal speed in [2,5), an upward speed in
// [4,6) and a decay factor in [0.95,0.98). count <= 0 uses DefaultCount.
func Spawn(id ID, origin mgl32.Vec3, color string, createdAt time.Time, count int, rng *random.Source) *Burst {
	if count <= 0 {
		count = DefaultCount
	}
	b := &Burst{
		ID:        id,
		Origin:    origin,
		Color:     color,
		CreatedAt: createdAt,
		TTL:       DefaultTTL,
		particles: make([]Particle, count),
		positions: make([]float32, count*3),
	}
	for i := range b.particles {
		angle := rng.Range(0, fullTurn)
		speed := rng.Range(minSpeed, maxSpeed)
		lift := rng.Range(minLift, maxLift)
		b.particles[i] = Particle{
			Position: origin,
			Velocity: mgl32.Vec3{math32.Cos(angle) * speed, lift, math32.Sin(angle) * speed},
			Decay:    rng.Range(minDecay, maxDecay),
		}
	}
	b.syncPositions()
	return b
}

// Tick advances every particle by dt seconds. The order is fixed: gravity on the
// velocity, then displacement, then drag. gravity is a positive magnitude.
func (b *Burst) Tick(dt, gravity float32) {
	for i := range b.particles {
		p := &b.particles[i]
		p.Velocity[1] -= gravity * dt
		p.Position = p.Position.Add(p.Velocity.Mul(dt))
		p.Velocity = p.Velocity.Mul(p.Decay)
	}
	b.syncPositions()
}

func (b *Burst) syncPositions() {
	for i, p := range b.particles {
		b.positions[i*3] = p.Position[0]
		b.positions[i*3+1] = p.Position[1]
		b.positions[i*3+2] = p.Position[2]
	}
}

// Expired reports whether the burst has lived for its full TTL. Particle motion is
// irrelevant: a burst still in flight is reaped on time.
func (b *Burst) Expired(now time.Time) bool {
	return now.Sub(b.CreatedAt) >= b.TTL
}

// Positions returns the flat xyz buffer, 3 floats per particle, refreshed by Tick.
// The slice is owned by the burst; callers must not keep it past the next tick.
func (b *Burst) Positions() []float32 {
	return b.positions
}

// Particles returns the live particle slice.
func (b *Burst) Particles() []Particle {
	return b.particles
}

// Len returns the particle count.
func (b *Burst) Len() int {
	return len(b.particles)
}
