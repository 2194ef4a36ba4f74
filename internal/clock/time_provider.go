package clock

import (
	"sync"
	"time"
)

// TimeProvider is the wall-clock source used for burst timestamps and scheduled tasks.
type TimeProvider interface {
	Now() time.Time
}

// Real reads the system monotonic clock.
type Real struct{}

// Now returns time.Now().
func (Real) Now() time.Time {
	return time.Now()
}

// Mock is a controllable time source for tests and replays.
type Mock struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMock returns a mock clock fixed at start.
func NewMock(start time.Time) *Mock {
	return &Mock{currentTime: start}
}

// Now returns the current mocked time.
func (m *Mock) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// Set moves the mock to t.
func (m *Mock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance moves the mock forward by d.
func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}
