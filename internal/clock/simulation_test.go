package clock

import (
	"testing"
	"time"
)

func TestSimulationDefaultsToNormalSpeed(t *testing.T) {
	s := NewSimulation()
	if s.SlowMotion() {
		t.Fatal("new clock should not start in slow motion")
	}
	if g := s.RigidBodyGravity(); g != -9.81 {
		t.Errorf("RigidBodyGravity() = %v, want -9.81", g)
	}
	if g := s.ParticleGravity(); g != 9.8 {
		t.Errorf("ParticleGravity() = %v, want 9.8", g)
	}
}

func TestToggleSlowMotionTakesEffectImmediately(t *testing.T) {
	s := NewSimulation()
	tests := []struct {
		wantSlow      bool
		wantRigid     float32
		wantParticles float32
	}{
		{true, -2.0, 2.0},
		{false, -9.81, 9.8},
		{true, -2.0, 2.0},
	}
	for i, tt := range tests {
		if got := s.ToggleSlowMotion(); got != tt.wantSlow {
			t.Fatalf("toggle %d: got %v, want %v", i, got, tt.wantSlow)
		}
		if g := s.RigidBodyGravity(); g != tt.wantRigid {
			t.Errorf("toggle %d: RigidBodyGravity() = %v, want %v", i, g, tt.wantRigid)
		}
		if g := s.ParticleGravity(); g != tt.wantParticles {
			t.Errorf("toggle %d: ParticleGravity() = %v, want %v", i, g, tt.wantParticles)
		}
	}
}

func TestSetSlowMotion(t *testing.T) {
	var s Simulation
	s.SetSlowMotion(true)
	if !s.SlowMotion() || s.ParticleGravity() != ParticleGravitySlow {
		t.Fatal("SetSlowMotion(true) not applied")
	}
	s.SetSlowMotion(false)
	if s.SlowMotion() || s.RigidBodyGravity() != RigidBodyGravityNormal {
		t.Fatal("SetSlowMotion(false) not applied")
	}
}

func TestMockAdvance(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMock(start)
	m.Advance(1500 * time.Millisecond)
	if got := m.Now().Sub(start); got != 1500*time.Millisecond {
		t.Errorf("elapsed = %v, want 1.5s", got)
	}
	m.Set(start)
	if !m.Now().Equal(start) {
		t.Errorf("Set did not reset time")
	}
}
