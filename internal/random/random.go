// Package random provides the seedable random source each subsystem owns, so that
// particle trajectories and shape population can be replayed from a seed.
package random

import (
	"math"
	"math/rand"
	"time"
)

// Source wraps a private *rand.Rand. Not safe for concurrent use; every subsystem
// gets its own.
type Source struct {
	rng *rand.Rand
}

// New returns a source seeded with seed. Seed 0 uses a time-based seed.
func New(seed int64) *Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Float32 returns a value in [0, 1).
func (s *Source) Float32() float32 {
	return s.rng.Float32()
}

// Range returns a value in [lo, hi). Float32 rounding can land exactly on hi for
// draws close to 1, so that case is pulled back one ulp.
func (s *Source) Range(lo, hi float32) float32 {
	if hi <= lo {
		return lo
	}
	v := lo + s.rng.Float32()*(hi-lo)
	if v >= hi {
		v = math.Nextafter32(hi, lo)
	}
	return v
}

// Intn returns a value in [0, n). n <= 0 returns 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rng.Intn(n)
}

// IntRange returns a value in [lo, hi] inclusive.
func (s *Source) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo+1)
}

// Split returns a new source seeded from s, so one seed can fan out to several
// subsystems without them sharing a stream.
func (s *Source) Split() *Source {
	return New(s.rng.Int63() | 1)
}
