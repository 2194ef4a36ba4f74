package engineconfig

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

func openTestManager(t *testing.T) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", dir)
	m, err := gdata.Open(gdata.Config{AppName: "test_engine_prefs"})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

func TestDefault(t *testing.T) {
	p := Default()
	if p.ShowFPS || p.ShowMemAlloc || !p.GridVisible || p.Muted || !p.Overlay {
		t.Errorf("Default() = %+v", p)
	}
}

func TestNilManagerIsMemoryOnly(t *testing.T) {
	s := NewStore(nil)
	if s.Persistent() {
		t.Error("nil manager store reports persistent")
	}
	if err := s.Load(); err != nil {
		t.Errorf("Load() = %v", err)
	}
	if err := s.Update(func(p *EnginePrefs) { p.Muted = true }); err != nil {
		t.Errorf("Update() = %v", err)
	}
	if !s.Prefs().Muted {
		t.Error("in-memory update lost")
	}
}

func TestSaveAndReload(t *testing.T) {
	m := openTestManager(t)
	s := NewStore(m)
	if err := s.Load(); err != nil {
		t.Fatalf("Load() on empty store = %v", err)
	}
	if s.Prefs() != Default() {
		t.Errorf("fresh prefs = %+v, want defaults", s.Prefs())
	}

	err := s.Update(func(p *EnginePrefs) {
		p.ShowFPS = true
		p.GridVisible = false
	})
	if err != nil {
		t.Fatalf("Update() = %v", err)
	}

	reloaded := NewStore(m)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() = %v", err)
	}
	got := reloaded.Prefs()
	if !got.ShowFPS || got.GridVisible || got.ShowMemAlloc {
		t.Errorf("reloaded prefs = %+v", got)
	}
}

func TestCorruptPrefsFallBackToDefaults(t *testing.T) {
	m := openTestManager(t)
	if err := m.SaveObjectProp(prefsObject, prefsProperty, []byte("show_fps: [")); err != nil {
		t.Fatal(err)
	}
	s := NewStore(m)
	if err := s.Load(); err == nil {
		t.Error("Load() of corrupt prefs returned nil")
	}
	if s.Prefs() != Default() {
		t.Errorf("prefs = %+v, want defaults", s.Prefs())
	}
}
