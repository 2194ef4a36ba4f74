// Package physics is the rigid-body boundary. Engine is the surface the playground
// calls into; World is the simple built-in implementation used by the host.
package physics

import "github.com/go-gl/mathgl/mgl32"

// Engine is the rigid-body engine as seen by the shape lifecycle and the
// interaction router. Calls naming an unknown id are no-ops.
type Engine interface {
	CreateBody(id BodyID, d BodyDesc)
	RemoveBody(id BodyID)
	HasBody(id BodyID) bool
	SetVelocity(id BodyID, v mgl32.Vec3)
	SetAngularVelocity(id BodyID, w mgl32.Vec3)
	SetGravity(g mgl32.Vec3)
	// Transform returns the body's current position and rotation.
	Transform(id BodyID) (position mgl32.Vec3, rotation mgl32.Quat, ok bool)
	Step(dt float32)
}
