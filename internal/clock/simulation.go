package clock

// Gravity constants for the two simulations. The rigid-body engine takes a signed
// Y component (negative = down); the particle integrator subtracts a positive magnitude.
const (
	RigidBodyGravityNormal = float32(-9.81)
	RigidBodyGravitySlow   = float32(-2.0)
	ParticleGravityNormal  = float32(9.8)
	ParticleGravitySlow    = float32(2.0)
)

// Simulation holds the slow-motion toggle shared by the rigid-body world and the
// particle integrator. Both read it every tick, so a toggle lands on the next step
// of each simulation at once. The zero value is normal speed.
type Simulation struct {
	slowMotion bool
}

// NewSimulation returns a clock running at normal speed.
func NewSimulation() *Simulation {
	return &Simulation{}
}

// ToggleSlowMotion flips slow motion and returns the new state.
func (s *Simulation) ToggleSlowMotion() bool {
	s.slowMotion = !s.slowMotion
	return s.slowMotion
}

// SetSlowMotion sets slow motion explicitly.
func (s *Simulation) SetSlowMotion(on bool) {
	s.slowMotion = on
}

// SlowMotion reports whether slow motion is active.
func (s *Simulation) SlowMotion() bool {
	return s.slowMotion
}

// RigidBodyGravity returns the Y gravity for the rigid-body world.
func (s *Simulation) RigidBodyGravity() float32 {
	if s.slowMotion {
		return RigidBodyGravitySlow
	}
	return RigidBodyGravityNormal
}

// ParticleGravity returns the gravity magnitude subtracted from particle Y velocity.
func (s *Simulation) ParticleGravity() float32 {
	if s.slowMotion {
		return ParticleGravitySlow
	}
	return ParticleGravityNormal
}
