package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"cosmic-playground/internal/interaction"
	"cosmic-playground/internal/primitives"
	"cosmic-playground/internal/shapes"
)

// Controller receives the input the scene resolves to shapes and key codes.
type Controller interface {
	PrimaryClick(id shapes.ID) bool
	SecondaryClick(id shapes.ID, position mgl32.Vec3) bool
	KeyPressed(code string) bool
}

// HandleInput moves the camera and forwards clicks and keys to c. Left click
// launches the shape under the cursor and right click destroys it.
func (s *Scene) HandleInput(views []shapes.View, c Controller) {
	s.Orbit()

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		if id, _, ok := s.Pick(views, rl.GetMousePosition()); ok {
			c.PrimaryClick(id)
		}
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		if id, pos, ok := s.Pick(views, rl.GetMousePosition()); ok {
			c.SecondaryClick(id, pos)
		}
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		c.KeyPressed(interaction.KeySlowMotion)
	}
}

// Pick casts a ray from the screen point and returns the nearest live shape it hits
// with that shape's current world position.
func (s *Scene) Pick(views []shapes.View, screen rl.Vector2) (shapes.ID, mgl32.Vec3, bool) {
	i := s.pick(views, screen)
	if i < 0 {
		return 0, mgl32.Vec3{}, false
	}
	return views[i].ID, views[i].Position, true
}

// Hovered returns the live shape under the mouse cursor.
func (s *Scene) Hovered(views []shapes.View) (shapes.View, bool) {
	i := s.pick(views, rl.GetMousePosition())
	if i < 0 {
		return shapes.View{}, false
	}
	return views[i], true
}

func (s *Scene) pick(views []shapes.View, screen rl.Vector2) int {
	ray := rl.GetScreenToWorldRay(screen, s.Camera)
	best := -1
	var bestD float32
	for i, v := range views {
		if v.Pending {
			continue
		}
		center := primitives.ToVector3(v.Position)
		var hit rl.RayCollision
		if v.Type == shapes.Sphere {
			hit = rl.GetRayCollisionSphere(ray, center, v.Scale/2)
		} else {
			h := v.Scale / 2
			hit = rl.GetRayCollisionBox(ray, rl.NewBoundingBox(
				rl.NewVector3(center.X-h, center.Y-h, center.Z-h),
				rl.NewVector3(center.X+h, center.Y+h, center.Z+h),
			))
		}
		if hit.Hit && (best < 0 || hit.Distance < bestD) {
			best, bestD = i, hit.Distance
		}
	}
	return best
}
