// Package playground wires the shape registry, burst registry, input router,
// simulation clock and task queue into one tickable world.
package playground

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"

	"cosmic-playground/internal/clock"
	"cosmic-playground/internal/config"
	"cosmic-playground/internal/interaction"
	"cosmic-playground/internal/logger"
	"cosmic-playground/internal/particles"
	"cosmic-playground/internal/physics"
	"cosmic-playground/internal/random"
	"cosmic-playground/internal/shapes"
	"cosmic-playground/internal/tasks"
)

// Deps are the collaborators a Playground can be given. Nil fields get defaults.
type Deps struct {
	Time   clock.TimeProvider // default clock.Real
	Engine physics.Engine     // default physics.NewWorld()
	Log    *logger.Logger     // default memory-only logger
}

// Playground owns every core subsystem. All methods must be called from the thread
// that calls Tick.
type Playground struct {
	cfg    config.Config
	log    *logger.Logger
	time   clock.TimeProvider
	queue  *tasks.Queue
	sim    *clock.Simulation
	engine physics.Engine
	shapes *shapes.Registry
	bursts *particles.Registry
	router *interaction.Router

	listeners []shapes.DestroyListener
	frame     []shapes.View
	reaper    tasks.ID
	closed    bool
}

// New validates cfg, builds every subsystem, populates the initial shapes and starts
// the burst reaper.
func New(cfg config.Config, deps Deps) (*Playground, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Time == nil {
		deps.Time = clock.Real{}
	}
	if deps.Engine == nil {
		deps.Engine = physics.NewWorld()
	}
	if deps.Log == nil {
		deps.Log = logger.NewFile("")
	}

	root := random.New(cfg.Seed)
	p := &Playground{
		cfg:    cfg,
		log:    deps.Log,
		time:   deps.Time,
		queue:  tasks.New(deps.Time),
		sim:    clock.NewSimulation(),
		engine: deps.Engine,
	}
	p.bursts = particles.NewRegistry(particles.Options{
		Count: cfg.Particles.Count,
		TTL:   cfg.Particles.TTL.Std(),
		Color: cfg.Particles.Color,
	}, deps.Time, root.Split())
	p.shapes = shapes.NewRegistry(cfg.ShapeOptions(), p.engine, p.queue, p, root.Split())
	p.router = interaction.NewRouter(p.shapes, p.engine, p.sim, root.Split())
	p.router.LaunchSpeed = cfg.Simulation.LaunchSpeed
	p.router.MaxSpin = cfg.Simulation.MaxSpin

	n := p.shapes.InitialPopulate()
	p.frame = p.shapes.Views()
	p.reaper = p.queue.Every(cfg.Simulation.ReapInterval.Std(), p.reap)
	p.log.Logf("playground ready: %d shapes, seed %d", n, cfg.Seed)
	return p, nil
}

// AddDestroyListener registers l to hear about every destroyed shape after the
// burst has been spawned.
func (p *Playground) AddDestroyListener(l shapes.DestroyListener) {
	p.listeners = append(p.listeners, l)
}

// OnShapeDestroyed fans a destruction out to the bursts and the extra listeners.
func (p *Playground) OnShapeDestroyed(position mgl32.Vec3, color string) {
	p.bursts.OnShapeDestroyed(position, color)
	for _, l := range p.listeners {
		l.OnShapeDestroyed(position, color)
	}
}

func (p *Playground) reap() {
	if n := p.bursts.Reap(p.time.Now()); n > 0 {
		p.log.Logf("reaped %d bursts", n)
	}
}

// Tick advances the world by dt seconds: due tasks run first, then the rigid-body
// engine steps under the current gravity, then every burst is integrated and the
// shape views are captured for Frame. dt is clamped to the configured max step.
func (p *Playground) Tick(dt float32) {
	if p.closed {
		return
	}
	if dt < 0 {
		dt = 0
	}
	if maxDt := float32(p.cfg.Simulation.MaxStep.Std().Seconds()); dt > maxDt {
		dt = maxDt
	}
	p.queue.RunDue()
	p.engine.SetGravity(mgl32.Vec3{0, p.sim.RigidBodyGravity(), 0})
	p.engine.Step(dt)
	p.bursts.Tick(dt, p.sim.ParticleGravity())
	p.frame = p.shapes.Views()
}

// Frame returns the shape views captured at the end of the last Tick. Renderers
// and pickers share it for the whole frame; use Shapes for a fresh read.
func (p *Playground) Frame() []shapes.View {
	return p.frame
}

// AddShape validates a UI request and registers the shape.
func (p *Playground) AddShape(typeName, color string, scale float32) (shapes.ID, error) {
	t, err := shapes.ParseType(typeName)
	if err != nil {
		return 0, err
	}
	hex, err := shapes.ParseColor(color)
	if err != nil {
		return 0, err
	}
	if err := shapes.ValidateScale(scale); err != nil {
		return 0, err
	}
	lo, hi := p.cfg.Shapes.MinAddScale, p.cfg.Shapes.MaxAddScale
	if scale < lo || scale > hi {
		return 0, fmt.Errorf("%w: %v outside [%v, %v]", shapes.ErrInvalidScale, scale, lo, hi)
	}
	id := p.shapes.Add(t, hex, scale)
	if id == 0 {
		return 0, ErrClosed
	}
	p.log.Logf("added %s #%d (%s, %.2f)", t, id, hex, scale)
	return id, nil
}

// DestroyShape destroys a shape at its current physics position.
func (p *Playground) DestroyShape(id shapes.ID) bool {
	if !p.shapes.Remove(id) {
		return false
	}
	p.log.Logf("destroyed #%d", id)
	return true
}

// PrimaryClick launches the clicked shape.
func (p *Playground) PrimaryClick(id shapes.ID) bool {
	return p.router.PrimaryClick(id)
}

// SecondaryClick destroys the clicked shape at the picked world position.
func (p *Playground) SecondaryClick(id shapes.ID, position mgl32.Vec3) bool {
	if !p.router.SecondaryClick(id, position) {
		return false
	}
	p.log.Logf("destroyed #%d", id)
	return true
}

// KeyPressed routes a key code and reports whether it was consumed.
func (p *Playground) KeyPressed(code string) bool {
	if !p.router.KeyPressed(code) {
		return false
	}
	if code == interaction.KeySlowMotion {
		p.log.Logf("slow motion %s", onOff(p.sim.SlowMotion()))
	}
	return true
}

// SetSlowMotion forces slow motion on or off.
func (p *Playground) SetSlowMotion(on bool) {
	p.sim.SetSlowMotion(on)
	p.log.Logf("slow motion %s", onOff(on))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Shapes returns every registered shape with its current transform.
func (p *Playground) Shapes() []shapes.View {
	return p.shapes.Views()
}

// Bursts returns the live bursts. The slice is valid until the next Tick.
func (p *Playground) Bursts() []*particles.Burst {
	return p.bursts.Bursts()
}

// Stats is a point-in-time summary for the debug overlay.
type Stats struct {
	Shapes     int
	Bursts     int
	Particles  int
	SlowMotion bool
}

// Stats returns the current counts.
func (p *Playground) Stats() Stats {
	return Stats{
		Shapes:     p.shapes.Live(),
		Bursts:     p.bursts.Len(),
		Particles:  p.bursts.ParticleCount(),
		SlowMotion: p.sim.SlowMotion(),
	}
}

// SlowMotion reports whether slow motion is on.
func (p *Playground) SlowMotion() bool {
	return p.sim.SlowMotion()
}

// Config returns a deep copy of the configuration the playground was built with.
func (p *Playground) Config() config.Config {
	var out config.Config
	if err := copier.CopyWithOption(&out, &p.cfg, copier.Option{DeepCopy: true}); err != nil {
		p.log.Logf("config copy: %v", err)
		out = p.cfg
		out.Shapes.Palette = append([]string(nil), p.cfg.Shapes.Palette...)
	}
	return out
}

// Close stops the reaper and every pending detachment. Later calls do nothing.
func (p *Playground) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.queue.Cancel(p.reaper)
	p.queue.Close()
	p.shapes.Close()
	p.log.Log("playground closed")
}
