// Package interaction turns pointer and keyboard input into playground actions.
package interaction

import (
	"github.com/go-gl/mathgl/mgl32"

	"cosmic-playground/internal/clock"
	"cosmic-playground/internal/physics"
	"cosmic-playground/internal/random"
	"cosmic-playground/internal/shapes"
)

// Launch defaults for a primary click.
const (
	DefaultLaunchSpeed = float32(8)
	DefaultMaxSpin     = float32(3)
)

// KeySlowMotion is the key code that toggles slow motion.
const KeySlowMotion = "Space"

// Router dispatches input to the shape registry, the physics engine and the
// simulation clock.
type Router struct {
	shapes *shapes.Registry
	engine physics.Engine
	sim    *clock.Simulation
	rng    *random.Source

	LaunchSpeed float32
	MaxSpin     float32
}

// NewRouter returns a router with the default launch speed and spin.
func NewRouter(reg *shapes.Registry, engine physics.Engine, sim *clock.Simulation, rng *random.Source) *Router {
	return &Router{
		shapes:      reg,
		engine:      engine,
		sim:         sim,
		rng:         rng,
		LaunchSpeed: DefaultLaunchSpeed,
		MaxSpin:     DefaultMaxSpin,
	}
}

// PrimaryClick launches a live shape straight up with a random spin. It reports
// whether the shape was launched.
func (r *Router) PrimaryClick(id shapes.ID) bool {
	s, ok := r.shapes.Get(id)
	if !ok || s.Pending {
		return false
	}
	body := physics.BodyID(id)
	r.engine.SetVelocity(body, mgl32.Vec3{0, r.LaunchSpeed, 0})
	r.engine.SetAngularVelocity(body, mgl32.Vec3{
		r.rng.Range(0, r.MaxSpin),
		r.rng.Range(0, r.MaxSpin),
		r.rng.Range(0, r.MaxSpin),
	})
	return true
}

// SecondaryClick destroys the shape at the picked world position.
func (r *Router) SecondaryClick(id shapes.ID, position mgl32.Vec3) bool {
	return r.shapes.RemoveAt(id, position)
}

// KeyPressed handles a key code and reports whether it was consumed.
func (r *Router) KeyPressed(code string) bool {
	switch code {
	case KeySlowMotion:
		r.sim.ToggleSlowMotion()
		return true
	default:
		return false
	}
}
