package engineconfig

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName is the gdata application name; prefs live in the per-user data dir.
const AppName = "cosmic_playground"

const (
	prefsObject   = "engine"
	prefsProperty = "prefs"
)

// EnginePrefs holds engine-only preferences such as overlays and sound. Persisted across runs.
// Playground tuning is separate and lives in internal/config.
type EnginePrefs struct {
	ShowFPS      bool `yaml:"show_fps"`
	ShowMemAlloc bool `yaml:"show_memalloc"`
	GridVisible  bool `yaml:"grid_visible"`
	Muted        bool `yaml:"muted"`
	Overlay      bool `yaml:"overlay"`
}

// Default returns default engine preferences: counters off, grid and panels on, sound on.
func Default() EnginePrefs {
	return EnginePrefs{
		ShowFPS:      false,
		ShowMemAlloc: false,
		GridVisible:  true,
		Muted:        false,
		Overlay:      true,
	}
}

// Store loads and saves EnginePrefs through gdata. A Store with a nil manager
// keeps prefs in memory only.
type Store struct {
	data  *gdata.Manager
	prefs EnginePrefs
}

// Open opens the gdata store for AppName and loads saved prefs. If gdata cannot
// be opened the returned Store is memory-only and the error says why.
func Open() (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		return NewStore(nil), fmt.Errorf("failed to open prefs storage: %w", err)
	}
	s := NewStore(m)
	return s, s.Load()
}

// NewStore returns a Store with default prefs. m may be nil.
func NewStore(m *gdata.Manager) *Store {
	return &Store{data: m, prefs: Default()}
}

// Load reads saved prefs. Missing prefs leave the defaults; on a read or decode
// error the defaults are kept and the error returned.
func (s *Store) Load() error {
	s.prefs = Default()
	if s.data == nil || !s.data.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}
	raw, err := s.data.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("failed to load engine prefs: %w", err)
	}
	p := Default()
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("failed to unmarshal engine prefs: %w", err)
	}
	s.prefs = p
	return nil
}

// Save writes the current prefs. A memory-only Store saves nothing and returns nil.
func (s *Store) Save() error {
	if s.data == nil {
		return nil
	}
	raw, err := yaml.Marshal(s.prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal engine prefs: %w", err)
	}
	if err := s.data.SaveObjectProp(prefsObject, prefsProperty, raw); err != nil {
		return fmt.Errorf("failed to save engine prefs: %w", err)
	}
	return nil
}

// Prefs returns the current prefs.
func (s *Store) Prefs() EnginePrefs {
	return s.prefs
}

// Update applies fn to the prefs and saves them.
func (s *Store) Update(fn func(p *EnginePrefs)) error {
	fn(&s.prefs)
	return s.Save()
}

// Persistent reports whether prefs survive a restart.
func (s *Store) Persistent() bool {
	return s.data != nil
}
