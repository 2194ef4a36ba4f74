package shapes

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"cosmic-playground/internal/clock"
	"cosmic-playground/internal/physics"
	"cosmic-playground/internal/random"
	"cosmic-playground/internal/tasks"
)

type destroyed struct {
	position mgl32.Vec3
	color    string
}

type recordingListener struct {
	events []destroyed
}

func (l *recordingListener) OnShapeDestroyed(position mgl32.Vec3, color string) {
	l.events = append(l.events, destroyed{position, color})
}

type fixture struct {
	reg      *Registry
	world    *physics.World
	queue    *tasks.Queue
	clock    *clock.Mock
	listener *recordingListener
}

func newFixture(opts Options) *fixture {
	m := clock.NewMock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	f := &fixture{
		world:    physics.NewWorld(),
		queue:    tasks.New(m),
		clock:    m,
		listener: &recordingListener{},
	}
	f.reg = NewRegistry(opts, f.world, f.queue, f.listener, random.New(11))
	return f
}

// settle advances past the removal grace and runs due tasks.
func (f *fixture) settle() {
	f.clock.Advance(DefaultRemovalGrace)
	f.queue.RunDue()
}

func TestAddShapeWithinSpawnBounds(t *testing.T) {
	f := newFixture(Options{})
	id := f.reg.Add(Box, "#ff0000", 1.0)

	if f.reg.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", f.reg.Len())
	}
	s, ok := f.reg.Get(id)
	if !ok {
		t.Fatal("Get returned !ok for new shape")
	}
	if s.Type != Box || s.Color != "#ff0000" || s.Scale != 1.0 {
		t.Errorf("shape = %+v", s)
	}
	p := s.SpawnPosition
	if p[0] < -5 || p[0] > 5 || p[2] < -5 || p[2] > 5 || p[1] < 5 || p[1] > 8 {
		t.Errorf("spawn position %v out of bounds", p)
	}
	if !f.world.HasBody(physics.BodyID(id)) {
		t.Error("no rigid body created for shape")
	}
	if b := f.world.Body(physics.BodyID(id)); b.Restitution != 0.8 || b.Scale != 1 {
		t.Errorf("body restitution %v scale %v", b.Restitution, b.Scale)
	}
}

func TestIDsAreUnique(t *testing.T) {
	f := newFixture(Options{})
	seen := map[ID]bool{}
	for i := 0; i < 100; i++ {
		id := f.reg.Add(Sphere, "#4fc3f7", 0.5)
		if seen[id] || id == 0 {
			t.Fatalf("duplicate or zero id %d", id)
		}
		seen[id] = true
	}
}

func TestInitialPopulate(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		m := clock.NewMock(time.Now())
		w := physics.NewWorld()
		reg := NewRegistry(Options{}, w, tasks.New(m), nil, random.New(seed))

		n := reg.InitialPopulate()
		if n < 4 || n > 12 || reg.Len() != n {
			t.Fatalf("seed %d: populated %d (Len %d), want 4..12", seed, n, reg.Len())
		}
		perType := map[Type]int{}
		for _, s := range reg.List() {
			perType[s.Type]++
			if s.Scale < 0.5 || s.Scale >= 1.0 {
				t.Errorf("seed %d: scale %v out of [0.5,1.0)", seed, s.Scale)
			}
			found := false
			for _, c := range DefaultPalette {
				found = found || c == s.Color
			}
			if !found {
				t.Errorf("seed %d: color %s not in palette", seed, s.Color)
			}
		}
		for _, typ := range Types {
			if perType[typ] < 1 || perType[typ] > 3 {
				t.Errorf("seed %d: %v count = %d, want 1..3", seed, typ, perType[typ])
			}
		}
		if w.Len() != n {
			t.Errorf("seed %d: %d bodies for %d shapes", seed, w.Len(), n)
		}
		if reg.InitialPopulate() != 0 {
			t.Errorf("seed %d: second InitialPopulate spawned shapes", seed)
		}
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	f := newFixture(Options{})
	id := f.reg.Add(Cylinder, "#9c27b0", 1)
	pos := mgl32.Vec3{1, 2, 3}

	if !f.reg.RemoveAt(id, pos) {
		t.Fatal("first RemoveAt returned false")
	}
	if f.reg.RemoveAt(id, pos) || f.reg.Remove(id) {
		t.Error("repeat remove returned true")
	}
	if len(f.listener.events) != 1 {
		t.Fatalf("listener heard %d destroys, want 1", len(f.listener.events))
	}
	if ev := f.listener.events[0]; ev.position != pos || ev.color != "#9c27b0" {
		t.Errorf("destroy event = %+v", ev)
	}

	f.settle()
	if f.reg.Contains(id) || f.reg.Len() != 0 {
		t.Errorf("shape still registered after grace: Len() = %d", f.reg.Len())
	}
	if f.world.HasBody(physics.BodyID(id)) {
		t.Error("rigid body not removed with shape")
	}
	if len(f.listener.events) != 1 {
		t.Errorf("listener heard %d destroys after settle", len(f.listener.events))
	}
}

func TestRemoveDefersDetachment(t *testing.T) {
	f := newFixture(Options{})
	id := f.reg.Add(Box, "#ffeb3b", 1)
	f.reg.Remove(id)

	f.clock.Advance(DefaultRemovalGrace - time.Millisecond)
	f.queue.RunDue()
	s, ok := f.reg.Get(id)
	if !ok || !s.Pending {
		t.Fatal("shape detached before the grace delay")
	}
	if !f.world.HasBody(physics.BodyID(id)) {
		t.Fatal("body removed before the grace delay")
	}
	if f.reg.Live() != 0 || f.reg.Len() != 1 {
		t.Errorf("Live() = %d, Len() = %d", f.reg.Live(), f.reg.Len())
	}

	f.clock.Advance(time.Millisecond)
	f.queue.RunDue()
	if f.reg.Contains(id) {
		t.Error("shape still registered at the grace deadline")
	}
}

func TestRemoveUsesCurrentPhysicsPosition(t *testing.T) {
	f := newFixture(Options{})
	id := f.reg.Add(Sphere, "#64dd17", 1)
	spawn, _ := f.reg.Get(id)
	for i := 0; i < 30; i++ {
		f.world.Step(1.0 / 60)
	}
	current, _, _ := f.world.Transform(physics.BodyID(id))

	f.reg.Remove(id)
	got := f.listener.events[0].position
	if got != current {
		t.Errorf("burst origin = %v, want current %v", got, current)
	}
	if got == spawn.SpawnPosition {
		t.Error("burst origin used the spawn position")
	}
}

func TestRemoveUnknownIDIsNoop(t *testing.T) {
	f := newFixture(Options{})
	if f.reg.Remove(42) || f.reg.RemoveAt(42, mgl32.Vec3{}) {
		t.Error("removing unknown id returned true")
	}
	if len(f.listener.events) != 0 || f.queue.Pending() != 0 {
		t.Error("unknown id produced side effects")
	}
}

func TestRemoveAfterSchedulerClosedDetachesImmediately(t *testing.T) {
	f := newFixture(Options{})
	id := f.reg.Add(Pyramid, "#ff3d00", 1)
	f.queue.Close()

	if !f.reg.Remove(id) {
		t.Fatal("Remove returned false")
	}
	if f.reg.Contains(id) || f.world.HasBody(physics.BodyID(id)) {
		t.Error("shape should detach immediately once the scheduler is closed")
	}
}

func TestMaxShapesEvictsOldest(t *testing.T) {
	f := newFixture(Options{MaxShapes: 2})
	first := f.reg.Add(Box, "#ff0000", 1)
	second := f.reg.Add(Box, "#00ff00", 1)
	third := f.reg.Add(Box, "#0000ff", 1)

	if f.reg.Live() != 2 {
		t.Fatalf("Live() = %d, want 2", f.reg.Live())
	}
	if len(f.listener.events) != 1 || f.listener.events[0].color != "#ff0000" {
		t.Fatalf("expected the oldest shape to be destroyed, got %+v", f.listener.events)
	}
	f.settle()
	if f.reg.Contains(first) || !f.reg.Contains(second) || !f.reg.Contains(third) {
		t.Error("wrong shape evicted")
	}
}

func TestInitialPopulateIgnoresMaxShapes(t *testing.T) {
	f := newFixture(Options{MaxShapes: 2})
	n := f.reg.InitialPopulate()

	if f.reg.Live() != n || f.world.Len() != n {
		t.Fatalf("Live() = %d, bodies = %d, want %d", f.reg.Live(), f.world.Len(), n)
	}
	if len(f.listener.events) != 0 {
		t.Fatalf("populate destroyed %d shapes", len(f.listener.events))
	}
	perType := map[Type]int{}
	for _, s := range f.reg.List() {
		perType[s.Type]++
	}
	for _, typ := range Types {
		if perType[typ] == 0 {
			t.Errorf("no %v after populate", typ)
		}
	}
	if f.queue.Pending() != 0 {
		t.Errorf("populate scheduled %d detachments", f.queue.Pending())
	}

	// The cap applies again to later adds.
	f.reg.Add(Box, "#ff0000", 1)
	if f.reg.Live() != 2 {
		t.Errorf("Live() after Add = %d, want 2", f.reg.Live())
	}
}

func TestOptionsPaletteIsCopied(t *testing.T) {
	palette := []string{"#ff0000", "#00ff00"}
	f := newFixture(Options{Palette: palette})
	palette[0] = "#000000"
	got := f.reg.Options()
	if got.Palette[0] != "#ff0000" {
		t.Errorf("registry palette follows caller slice: %v", got.Palette)
	}
	got.Palette[1] = "#000000"
	if f.reg.Options().Palette[1] != "#00ff00" {
		t.Error("Options() aliases the registry palette")
	}
}

func TestViewsCarryTransform(t *testing.T) {
	f := newFixture(Options{})
	id := f.reg.Add(Box, "#ff69b4", 1)
	f.world.SetVelocity(physics.BodyID(id), mgl32.Vec3{0, 8, 0})
	f.world.Step(0.1)

	views := f.reg.Views()
	if len(views) != 1 || views[0].ID != id {
		t.Fatalf("views = %+v", views)
	}
	pos, _, _ := f.world.Transform(physics.BodyID(id))
	if views[0].Position != pos {
		t.Errorf("view position %v, want %v", views[0].Position, pos)
	}

	snap := f.reg.List()
	snap[0].Color = "#000000"
	if s, _ := f.reg.Get(id); s.Color != "#ff69b4" {
		t.Error("List aliases registry state")
	}
}

func TestAddAfterCloseIsNoop(t *testing.T) {
	f := newFixture(Options{})
	f.reg.Close()
	if id := f.reg.Add(Box, "#ff69b4", 1); id != 0 {
		t.Errorf("Add after Close = %d, want 0", id)
	}
	if f.reg.Len() != 0 || f.world.Len() != 0 {
		t.Error("closed registry created a shape")
	}
}
