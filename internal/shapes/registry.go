// Package shapes owns the set of live rigid-body shapes and their lifecycle:
// creation, initial population, and deferred removal sequenced after the
// destruction burst.
package shapes

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"cosmic-playground/internal/physics"
	"cosmic-playground/internal/random"
	"cosmic-playground/internal/tasks"
)

// ID is a shape's stable identity. The matching rigid body uses the same value.
type ID uint64

// DefaultPalette is the color set used by the initial population.
var DefaultPalette = []string{"#ff69b4", "#4fc3f7", "#9c27b0", "#64dd17", "#ff3d00", "#ffeb3b"}

// DefaultRemovalGrace is how long a destroyed shape stays attached so the
// interaction that destroyed it can finish dispatching.
const DefaultRemovalGrace = 50 * time.Millisecond

// Shape is a registered shape. Position is owned by the physics engine; SpawnPosition
// is only where it started.
type Shape struct {
	ID            ID
	Type          Type
	Color         string
	Scale         float32
	SpawnPosition mgl32.Vec3
	Restitution   float32
	// Pending is set once the shape is destroyed and waiting to be detached.
	Pending bool
}

// View is a shape plus its current transform, as handed to the renderer.
type View struct {
	Shape
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// DestroyListener is told where a shape was when it was destroyed.
type DestroyListener interface {
	OnShapeDestroyed(position mgl32.Vec3, color string)
}

// Scheduler defers work onto the tick thread. tasks.Queue satisfies it.
type Scheduler interface {
	After(d time.Duration, fn func()) tasks.ID
}

// Options configures spawn distributions and removal. Zero values use defaults.
type Options struct {
	Palette      []string
	HalfExtent   float32 // spawn square is [-HalfExtent, HalfExtent] on X and Z
	MinHeight    float32
	MaxHeight    float32
	ScaleMin     float32 // initial population scale range
	ScaleMax     float32
	InitialMin   int // initial population count per type
	InitialMax   int
	RemovalGrace time.Duration
	// MaxShapes caps live shapes added after the initial population; 0 means
	// unbounded. Over the cap the oldest live shape is destroyed the normal way.
	MaxShapes int
}

// DefaultOptions returns the stock distributions.
func DefaultOptions() Options {
	return Options{
		Palette:      DefaultPalette,
		HalfExtent:   5,
		MinHeight:    5,
		MaxHeight:    8,
		ScaleMin:     0.5,
		ScaleMax:     1.0,
		InitialMin:   1,
		InitialMax:   3,
		RemovalGrace: DefaultRemovalGrace,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if len(o.Palette) == 0 {
		o.Palette = d.Palette
	}
	if o.HalfExtent <= 0 {
		o.HalfExtent = d.HalfExtent
	}
	if o.MaxHeight <= o.MinHeight {
		o.MinHeight, o.MaxHeight = d.MinHeight, d.MaxHeight
	}
	if o.ScaleMax <= o.ScaleMin || o.ScaleMin <= 0 {
		o.ScaleMin, o.ScaleMax = d.ScaleMin, d.ScaleMax
	}
	if o.InitialMin <= 0 || o.InitialMax < o.InitialMin {
		o.InitialMin, o.InitialMax = d.InitialMin, d.InitialMax
	}
	if o.RemovalGrace <= 0 {
		o.RemovalGrace = d.RemovalGrace
	}
	if o.MaxShapes < 0 {
		o.MaxShapes = 0
	}
	return o
}

// Registry is the authoritative shape set. Every registered shape has exactly one
// rigid body in the engine for as long as it is registered. Not safe for
// concurrent use; all calls come from the tick thread.
type Registry struct {
	opts     Options
	engine   physics.Engine
	sched    Scheduler
	listener DestroyListener
	rng      *random.Source

	shapes    map[ID]*Shape
	order     []ID // creation order, oldest first
	nextID    ID
	pending   int
	populated bool
	closed    bool
}

// NewRegistry returns an empty registry. listener may be nil.
func NewRegistry(opts Options, engine physics.Engine, sched Scheduler, listener DestroyListener, rng *random.Source) *Registry {
	opts = opts.withDefaults()
	opts.Palette = append([]string(nil), opts.Palette...)
	return &Registry{
		opts:     opts,
		engine:   engine,
		sched:    sched,
		listener: listener,
		rng:      rng,
		shapes:   make(map[ID]*Shape),
	}
}

// Add registers a new shape at a random spawn position and creates its rigid body.
// The caller validates type, color and scale. A closed registry returns 0.
func (r *Registry) Add(t Type, color string, scale float32) ID {
	if r.closed {
		return 0
	}
	if r.opts.MaxShapes > 0 {
		for r.Live() >= r.opts.MaxShapes {
			if !r.evictOldest() {
				break
			}
		}
	}
	return r.add(t, color, scale)
}

// add registers the shape without applying MaxShapes.
func (r *Registry) add(t Type, color string, scale float32) ID {
	r.nextID++
	s := &Shape{
		ID:            r.nextID,
		Type:          t,
		Color:         color,
		Scale:         scale,
		SpawnPosition: r.spawnPosition(),
		Restitution:   t.Restitution(),
	}
	r.shapes[s.ID] = s
	r.order = append(r.order, s.ID)
	r.engine.CreateBody(physics.BodyID(s.ID), physics.BodyDesc{
		Collider:    t.Collider(),
		Position:    s.SpawnPosition,
		Scale:       scale,
		Mass:        1,
		Restitution: s.Restitution,
	})
	return s.ID
}

// spawnPosition draws X and Z in the spawn square and Y in the height band.
func (r *Registry) spawnPosition() mgl32.Vec3 {
	h := r.opts.HalfExtent
	return mgl32.Vec3{
		r.rng.Range(-h, h),
		r.rng.Range(r.opts.MinHeight, r.opts.MaxHeight),
		r.rng.Range(-h, h),
	}
}

// InitialPopulate spawns 1-3 shapes of every type with palette colors and random
// scales. MaxShapes does not apply here. Only the first call does anything; it
// returns the number spawned.
func (r *Registry) InitialPopulate() int {
	if r.populated || r.closed {
		return 0
	}
	r.populated = true
	n := 0
	for _, t := range Types {
		count := r.rng.IntRange(r.opts.InitialMin, r.opts.InitialMax)
		for i := 0; i < count; i++ {
			color := r.opts.Palette[r.rng.Intn(len(r.opts.Palette))]
			scale := r.rng.Range(r.opts.ScaleMin, r.opts.ScaleMax)
			r.add(t, color, scale)
			n++
		}
	}
	return n
}

// Remove destroys a shape at its current physics position. See RemoveAt.
func (r *Registry) Remove(id ID) bool {
	s, ok := r.shapes[id]
	if !ok || s.Pending {
		return false
	}
	pos, _, ok := r.engine.Transform(physics.BodyID(id))
	if !ok {
		pos = s.SpawnPosition
	}
	return r.RemoveAt(id, pos)
}

// RemoveAt destroys a shape whose current world position is already known.
// The listener hears about it first; the shape and its body are detached after the
// removal grace. Unknown or already destroyed ids are a silent no-op returning false.
func (r *Registry) RemoveAt(id ID, position mgl32.Vec3) bool {
	s, ok := r.shapes[id]
	if !ok || s.Pending {
		return false
	}
	s.Pending = true
	r.pending++
	if r.listener != nil {
		r.listener.OnShapeDestroyed(position, s.Color)
	}
	if r.sched.After(r.opts.RemovalGrace, func() { r.detach(id) }) == 0 {
		// Scheduler is closed (teardown); nothing will run later.
		r.detach(id)
	}
	return true
}

// detach drops the shape and its rigid body together.
func (r *Registry) detach(id ID) {
	s, ok := r.shapes[id]
	if !ok {
		return
	}
	if s.Pending {
		r.pending--
	}
	delete(r.shapes, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.engine.RemoveBody(physics.BodyID(id))
}

// evictOldest destroys the oldest shape not already pending.
func (r *Registry) evictOldest() bool {
	for _, id := range r.order {
		if !r.shapes[id].Pending {
			return r.Remove(id)
		}
	}
	return false
}

// Close stops the registry from accepting new shapes. Registered shapes stay
// until their pending detachments run or are dropped.
func (r *Registry) Close() {
	r.closed = true
}

// Get returns a copy of the shape.
func (r *Registry) Get(id ID) (Shape, bool) {
	s, ok := r.shapes[id]
	if !ok {
		return Shape{}, false
	}
	return *s, true
}

// Contains reports whether id is registered, pending or not.
func (r *Registry) Contains(id ID) bool {
	_, ok := r.shapes[id]
	return ok
}

// Len returns the number of registered shapes, including ones awaiting detachment.
func (r *Registry) Len() int {
	return len(r.shapes)
}

// Live returns the number of registered shapes not yet destroyed.
func (r *Registry) Live() int {
	return len(r.shapes) - r.pending
}

// List returns a copy of every registered shape in creation order.
func (r *Registry) List() []Shape {
	out := make([]Shape, len(r.order))
	for i, id := range r.order {
		out[i] = *r.shapes[id]
	}
	return out
}

// Options returns the options in effect, with defaults applied.
func (r *Registry) Options() Options {
	o := r.opts
	o.Palette = append([]string(nil), o.Palette...)
	return o
}

// Views returns every registered shape with its current transform, oldest first.
func (r *Registry) Views() []View {
	snap := r.List()
	views := make([]View, len(snap))
	for i, s := range snap {
		pos, rot, ok := r.engine.Transform(physics.BodyID(s.ID))
		if !ok {
			pos, rot = s.SpawnPosition, mgl32.QuatIdent()
		}
		views[i] = View{Shape: s, Position: pos, Rotation: rot}
	}
	return views
}
