package physics

import "github.com/go-gl/mathgl/mgl32"

// BodyID keys a rigid body. The playground uses the owning shape's id.
type BodyID uint64

// Collider selects the collision volume of a body.
type Collider int

const (
	ColliderBox Collider = iota
	ColliderSphere
	ColliderCylinder
)

// BodyDesc describes a body to create. Scale is the uniform size: a box is
// Scale on each side, a sphere has radius Scale/2, a cylinder has radius Scale/2
// and height Scale.
type BodyDesc struct {
	Collider    Collider
	Position    mgl32.Vec3
	Scale       float32
	Mass        float32
	Restitution float32
}

// Body is a dynamic rigid body with orientation. Collision uses the axis-aligned
// box around the collider; rotation is visual only.
type Body struct {
	ID              BodyID
	Collider        Collider
	Position        mgl32.Vec3
	Velocity        mgl32.Vec3
	AngularVelocity mgl32.Vec3
	Rotation        mgl32.Quat
	Scale           float32
	Mass            float32
	Restitution     float32
}

// NewBody returns a body at rest with identity rotation. mass <= 0 becomes 1 and
// scale <= 0 becomes 1.
func NewBody(id BodyID, d BodyDesc) *Body {
	if d.Mass <= 0 {
		d.Mass = 1
	}
	if d.Scale <= 0 {
		d.Scale = 1
	}
	return &Body{
		ID:          id,
		Collider:    d.Collider,
		Position:    d.Position,
		Rotation:    mgl32.QuatIdent(),
		Scale:       d.Scale,
		Mass:        d.Mass,
		Restitution: d.Restitution,
	}
}

// HalfExtents returns the half size of the body's bounding box.
func (b *Body) HalfExtents() mgl32.Vec3 {
	h := b.Scale * 0.5
	return mgl32.Vec3{h, h, h}
}

// Bounds returns the min and max corners of the body's bounding box.
func (b *Body) Bounds() (lo, hi mgl32.Vec3) {
	h := b.HalfExtents()
	return b.Position.Sub(h), b.Position.Add(h)
}
