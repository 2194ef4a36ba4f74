package scene

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"cosmic-playground/internal/particles"
	"cosmic-playground/internal/physics"
	"cosmic-playground/internal/primitives"
	"cosmic-playground/internal/shapes"
)

const (
	gridExtent     = int(physics.DefaultWallExtent)
	gridMinorStep  = 1
	gridMajorStep  = 5
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220

	// Orbit camera limits.
	minDistance = 5
	maxDistance = 50
	minPitch    = 0.05
	maxPitch    = 1.45
	orbitSpeed  = 0.005
	zoomStep    = 2

	// DefaultParticleSize is the edge length of one drawn particle.
	DefaultParticleSize = 0.2
)

var (
	floorColor = rl.NewColor(28, 30, 38, 255)
	wallColor  = rl.NewColor(90, 90, 110, 160)
	lightDir   = [3]float32{0.4, 1, 0.3}
)

// Scene holds an orbit camera around the arena and draws shapes and bursts.
// Update runs camera and pointer logic; Draw renders between BeginMode3D and EndMode3D.
type Scene struct {
	Camera       rl.Camera3D
	GridVisible  bool
	ParticleSize float32

	yaw      float64
	pitch    float64
	distance float32
	prims    *primitives.Registry
}

// New returns a scene with a perspective camera looking at the origin from (10,10,10).
// Grid is visible by default.
func New() *Scene {
	s := &Scene{
		GridVisible:  true,
		ParticleSize: DefaultParticleSize,
		yaw:          math.Pi / 4,
		pitch:        math.Atan2(10, math.Hypot(10, 10)),
		distance:     float32(math.Sqrt(300)),
		prims:        primitives.NewRegistry(),
	}
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	s.placeCamera()
	return s
}

// SetGridVisible sets whether the floor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// placeCamera puts the camera on its orbit sphere around the target.
func (s *Scene) placeCamera() {
	d := float64(s.distance)
	t := s.Camera.Target
	s.Camera.Position = rl.NewVector3(
		t.X+float32(d*math.Cos(s.pitch)*math.Cos(s.yaw)),
		t.Y+float32(d*math.Sin(s.pitch)),
		t.Z+float32(d*math.Cos(s.pitch)*math.Sin(s.yaw)),
	)
}

// Orbit drags the camera around the target while the middle mouse button is held
// and zooms with the wheel, clamped to [5, 50].
func (s *Scene) Orbit() {
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		d := rl.GetMouseDelta()
		s.yaw += float64(d.X) * orbitSpeed
		s.pitch += float64(d.Y) * orbitSpeed
		s.pitch = math.Max(minPitch, math.Min(maxPitch, s.pitch))
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		s.distance -= wheel * zoomStep
		if s.distance < minDistance {
			s.distance = minDistance
		}
		if s.distance > maxDistance {
			s.distance = maxDistance
		}
	}
	s.placeCamera()
}

// Draw renders the arena, every shape and every burst. Call after ClearBackground
// and before 2D overlays (terminal, debug).
func (s *Scene) Draw(views []shapes.View, bursts []*particles.Burst) {
	p := s.Camera.Position
	s.prims.SetView([3]float32{p.X, p.Y, p.Z}, lightDir)

	rl.BeginMode3D(s.Camera)
	drawArena()
	if s.GridVisible {
		drawGrid()
	}
	for _, v := range views {
		col := primitives.ParseColor(v.Color)
		if v.Pending {
			col.A = 120
		}
		s.prims.Draw(v.Type, v.Position, v.Rotation, v.Scale, col)
	}
	s.drawBursts(bursts)
	rl.EndMode3D()
}

// drawBursts draws each particle as a small cube with additive blending so overlapping
// particles glow.
func (s *Scene) drawBursts(bursts []*particles.Burst) {
	if len(bursts) == 0 {
		return
	}
	size := rl.NewVector3(s.ParticleSize, s.ParticleSize, s.ParticleSize)
	rl.BeginBlendMode(rl.BlendAdditive)
	var pos rl.Vector3
	for _, b := range bursts {
		col := primitives.ParseColor(b.Color)
		buf := b.Positions()
		for i := 0; i+2 < len(buf); i += 3 {
			pos.X, pos.Y, pos.Z = buf[i], buf[i+1], buf[i+2]
			rl.DrawCubeV(pos, size, col)
		}
	}
	rl.EndBlendMode()
}

// drawArena draws the floor and the outline of the four walls.
func drawArena() {
	e := float32(physics.DefaultWallExtent)
	rl.DrawPlane(rl.NewVector3(0, 0, 0), rl.NewVector2(2*e, 2*e), floorColor)
	corners := []rl.Vector3{
		rl.NewVector3(-e, 0, -e),
		rl.NewVector3(e, 0, -e),
		rl.NewVector3(e, 0, e),
		rl.NewVector3(-e, 0, e),
	}
	for i, c := range corners {
		next := corners[(i+1)%len(corners)]
		top := rl.NewVector3(c.X, 2, c.Z)
		rl.DrawLine3D(c, next, wallColor)
		rl.DrawLine3D(c, top, wallColor)
		rl.DrawLine3D(top, rl.NewVector3(next.X, 2, next.Z), wallColor)
	}
}

// drawGrid draws a grid on the XZ plane with major/minor lines and axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	const y = 0.01 // just above the floor plane
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), y, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), y, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), y, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), y, float32(z)
		rl.DrawLine3D(start, end, c)
	}

	start.X, start.Y, start.Z = float32(-gridExtent), y, 0
	end.X, end.Y, end.Z = float32(gridExtent), y, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, y, float32(-gridExtent)
	end.X, end.Y, end.Z = 0, y, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}

// Unload releases GPU resources. Call before the window closes.
func (s *Scene) Unload() {
	s.prims.Unload()
}
