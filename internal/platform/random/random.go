// Package random provides the random sources threaded through the customer
// generator and the route builder.
//
// math/rand/v2 *Rand values are not safe for concurrent use. Seeded sources
// are meant to be owned by a single request; Global and Locked may be shared.
package random

import (
	"math/rand/v2"
	"sync"
)

// Global draws from the runtime's process-wide generator.
type Global struct{}

func (Global) Float64() float64 { return rand.Float64() }

func (Global) IntN(n int) int { return rand.IntN(n) }

// Seeded returns a deterministic source for one request.
func Seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, mix(seed)))
}

// Derive returns an independent deterministic stream for worker i of a
// seeded request, so parallel builders never share a generator.
func Derive(seed uint64, stream uint64) *rand.Rand {
	return Seeded(mix(seed ^ (stream + 0x9e3779b97f4a7c15)))
}

// Locked is a seeded source guarded by a mutex, used as a reproducible
// process-wide source when RANDOM_SEED is configured.
type Locked struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewLocked(seed uint64) *Locked {
	return &Locked{rng: Seeded(seed)}
}

func (l *Locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

func (l *Locked) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.IntN(n)
}

// SplitMix64 finalizer.
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
