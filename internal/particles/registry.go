package particles

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"cosmic-playground/internal/clock"
	"cosmic-playground/internal/random"
)

// Options configures a Registry. Zero fields fall back to package defaults.
type Options struct {
	Count int           // particles per burst
	TTL   time.Duration // burst lifetime
	Color string        // overrides the destroyed shape's color when set
}

// Registry tracks the live bursts. Bursts share no state, so each one is integrated
// on its own; iteration order carries no meaning.
type Registry struct {
	opts   Options
	time   clock.TimeProvider
	rng    *random.Source
	bursts []*Burst
	nextID ID
}

// NewRegistry returns an empty registry stamping bursts with tp and drawing launch
// parameters from rng.
func NewRegistry(opts Options, tp clock.TimeProvider, rng *random.Source) *Registry {
	if opts.Count <= 0 {
		opts.Count = DefaultCount
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	return &Registry{
		opts: opts,
		time: tp,
		rng:  rng,
	}
}

// OnShapeDestroyed spawns a burst at the destroyed shape's world position.
func (r *Registry) OnShapeDestroyed(position mgl32.Vec3, color string) {
	r.Spawn(position, color)
}

// Spawn creates and registers a burst stamped with the current time.
func (r *Registry) Spawn(origin mgl32.Vec3, color string) *Burst {
	if r.opts.Color != "" {
		color = r.opts.Color
	}
	r.nextID++
	b := Spawn(r.nextID, origin, color, r.time.Now(), r.opts.Count, r.rng)
	b.TTL = r.opts.TTL
	r.bursts = append(r.bursts, b)
	return b
}

// Tick integrates every live burst by dt under the given gravity magnitude.
func (r *Registry) Tick(dt, gravity float32) {
	for _, b := range r.bursts {
		b.Tick(dt, gravity)
	}
}

// Reap drops every burst expired at now and returns how many were dropped.
func (r *Registry) Reap(now time.Time) int {
	kept := r.bursts[:0]
	for _, b := range r.bursts {
		if !b.Expired(now) {
			kept = append(kept, b)
		}
	}
	removed := len(r.bursts) - len(kept)
	for i := len(kept); i < len(r.bursts); i++ {
		r.bursts[i] = nil
	}
	r.bursts = kept
	return removed
}

// Bursts returns the live bursts. The slice is valid until the next Spawn or Reap.
func (r *Registry) Bursts() []*Burst {
	return r.bursts
}

// Len returns the number of live bursts.
func (r *Registry) Len() int {
	return len(r.bursts)
}

// ParticleCount returns the total number of live particles.
func (r *Registry) ParticleCount() int {
	n := 0
	for _, b := range r.bursts {
		n += b.Len()
	}
	return n
}
