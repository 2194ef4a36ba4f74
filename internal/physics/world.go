package physics

import "github.com/go-gl/mathgl/mgl32"

// Arena defaults: a floor at Y=0 and four walls at ±15 on X and Z.
const (
	DefaultFloorY             = float32(0)
	DefaultWallExtent         = float32(15)
	DefaultContactRestitution = float32(0.7)
	DefaultFriction           = float32(0.1)
	// restingSpeed: bounces slower than this stop instead of jittering on the floor.
	restingSpeed = float32(0.3)
)

// World holds a set of bodies and runs a simple 3D step: gravity, integration,
// arena contacts, then AABB contacts between bodies. Bodies are keyed by id and
// visited in creation order so steps are reproducible.
type World struct {
	Gravity            mgl32.Vec3
	FloorY             float32
	WallExtent         float32
	ContactRestitution float32
	Friction           float32

	bodies map[BodyID]*Body
	order  []BodyID
}

// NewWorld returns a world with gravity (0, -9.81, 0) and the default arena.
func NewWorld() *World {
	return &World{
		Gravity:            mgl32.Vec3{0, -9.81, 0},
		FloorY:             DefaultFloorY,
		WallExtent:         DefaultWallExtent,
		ContactRestitution: DefaultContactRestitution,
		Friction:           DefaultFriction,
		bodies:             make(map[BodyID]*Body),
	}
}

// SetGravity sets the gravity vector (e.g. (0, -9.81, 0) for down in -Y).
func (w *World) SetGravity(g mgl32.Vec3) {
	w.Gravity = g
}

// CreateBody adds a body. An existing body with the same id is replaced in place.
func (w *World) CreateBody(id BodyID, d BodyDesc) {
	if _, ok := w.bodies[id]; !ok {
		w.order = append(w.order, id)
	}
	w.bodies[id] = NewBody(id, d)
}

// RemoveBody drops a body. Unknown ids are ignored.
func (w *World) RemoveBody(id BodyID) {
	if _, ok := w.bodies[id]; !ok {
		return
	}
	delete(w.bodies, id)
	for i, v := range w.order {
		if v == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			return
		}
	}
}

// HasBody reports whether id is in the world.
func (w *World) HasBody(id BodyID) bool {
	_, ok := w.bodies[id]
	return ok
}

// Body returns the body for id, or nil.
func (w *World) Body(id BodyID) *Body {
	return w.bodies[id]
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// SetVelocity overwrites a body's linear velocity.
func (w *World) SetVelocity(id BodyID, v mgl32.Vec3) {
	if b, ok := w.bodies[id]; ok {
		b.Velocity = v
	}
}

// SetAngularVelocity overwrites a body's angular velocity (radians per second).
func (w *World) SetAngularVelocity(id BodyID, av mgl32.Vec3) {
	if b, ok := w.bodies[id]; ok {
		b.AngularVelocity = av
	}
}

// Transform returns the current position and rotation of a body.
func (w *World) Transform(id BodyID) (mgl32.Vec3, mgl32.Quat, bool) {
	b, ok := w.bodies[id]
	if !ok {
		return mgl32.Vec3{}, mgl32.QuatIdent(), false
	}
	return b.Position, b.Rotation, true
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float32) {
	if dt <= 0 {
		return
	}
	for _, id := range w.order {
		b := w.bodies[id]
		b.Velocity = b.Velocity.Add(w.Gravity.Mul(dt))
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
		integrateRotation(b, dt)
		w.resolveArena(b)
	}

	// Pairwise AABB contacts: push apart along the minimum penetration axis.
	for i := 0; i < len(w.order); i++ {
		bi := w.bodies[w.order[i]]
		for j := i + 1; j < len(w.order); j++ {
			w.resolvePair(bi, w.bodies[w.order[j]])
		}
	}
}

// integrateRotation turns the body by |ω|·dt around ω.
func integrateRotation(b *Body, dt float32) {
	speed := b.AngularVelocity.Len()
	if speed == 0 {
		return
	}
	axis := b.AngularVelocity.Mul(1 / speed)
	b.Rotation = mgl32.QuatRotate(speed*dt, axis).Mul(b.Rotation).Normalize()
}

// combinedRestitution mixes body and contact restitution by averaging.
func (w *World) combinedRestitution(b *Body) float32 {
	return (b.Restitution + w.ContactRestitution) * 0.5
}

// resolveArena keeps a body above the floor and inside the walls.
func (w *World) resolveArena(b *Body) {
	h := b.HalfExtents()
	e := w.combinedRestitution(b)

	if floor := w.FloorY + h[1]; b.Position[1] < floor {
		b.Position[1] = floor
		if b.Velocity[1] < 0 {
			b.Velocity[1] = -b.Velocity[1] * e
			if b.Velocity[1] < restingSpeed {
				b.Velocity[1] = 0
			}
		}
		keep := 1 - w.Friction
		b.Velocity[0] *= keep
		b.Velocity[2] *= keep
		b.AngularVelocity = b.AngularVelocity.Mul(keep)
	}

	for _, axis := range [2]int{0, 2} {
		limit := w.WallExtent - h[axis]
		switch {
		case b.Position[axis] > limit:
			b.Position[axis] = limit
			if b.Velocity[axis] > 0 {
				b.Velocity[axis] = -b.Velocity[axis] * e
			}
		case b.Position[axis] < -limit:
			b.Position[axis] = -limit
			if b.Velocity[axis] < 0 {
				b.Velocity[axis] = -b.Velocity[axis] * e
			}
		}
	}
}

// penetrationAxis returns the overlap amount and axis index (0=X, 1=Y, 2=Z) for the
// minimum penetration. If no overlap, returns (0, -1).
func penetrationAxis(aLo, aHi, bLo, bHi mgl32.Vec3) (depth float32, axis int) {
	axis = -1
	for k := 0; k < 3; k++ {
		overlap := min(aHi[k], bHi[k]) - max(aLo[k], bLo[k])
		if overlap <= 0 {
			return 0, -1
		}
		if axis < 0 || overlap < depth {
			depth, axis = overlap, k
		}
	}
	return depth, axis
}

// resolvePair separates two overlapping bodies by mass ratio and exchanges a
// restitution impulse along the contact axis.
func (w *World) resolvePair(a, b *Body) {
	aLo, aHi := a.Bounds()
	bLo, bHi := b.Bounds()
	depth, axis := penetrationAxis(aLo, aHi, bLo, bHi)
	if axis < 0 {
		return
	}
	// Normal points from a to b along the contact axis.
	sign := float32(1)
	if b.Position[axis] < a.Position[axis] {
		sign = -1
	}
	total := a.Mass + b.Mass
	a.Position[axis] -= sign * depth * (b.Mass / total)
	b.Position[axis] += sign * depth * (a.Mass / total)

	rel := (b.Velocity[axis] - a.Velocity[axis]) * sign
	if rel >= 0 {
		return // already separating
	}
	e := (a.Restitution + b.Restitution) * 0.5
	j := -(1 + e) * rel / (1/a.Mass + 1/b.Mass)
	a.Velocity[axis] -= sign * j / a.Mass
	b.Velocity[axis] += sign * j / b.Mass
}
