package rand

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"github.com/seehuhn/mt19937"
)

// InsufficientDataError means a without-replacement draw requested more
// indices than the population holds. This is a configuration/precondition
// violation, not a transient condition.
type InsufficientDataError struct {
	Requested int
	Available int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("Requested sample of %d from only %d available points", e.Requested, e.Available)
}

// A Generator is an explicit randomness source based on the Mersenne
// twister. The underlying twister is guarded by a mutex, so a single
// Generator may be shared across goroutines; branches of a parallel fan-out
// should prefer Fork for an independently seeded child source.
type Generator struct {
	mu  sync.Mutex
	src *mt19937.MT19937
}

// NewGenerator starts a new PRNG based on the given seed
func NewGenerator(seed int64) (*Generator, error) {
	r := mt19937.New()
	r.Seed(seed)

	g := &Generator{
		src: r,
	}

	return g, nil
}

// Fork derives a new Generator whose seed is drawn from this one. Handing
// every branch its own fork keeps results reproducible per seed regardless
// of the order branches are executed in.
func (g *Generator) Fork() (*Generator, error) {
	return NewGenerator(g.Int63())
}

// Int63 provides the same interface as Go's math/rand.
func (g *Generator) Int63() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.src.Int63()
}

// Int63n is a copy of the current Go code
func (g *Generator) Int63n(n int64) int64 {
	if n <= 0 {
		panic("invalid argument to Int63n")
	}

	if n&(n-1) == 0 { // n is power of two, can mask
		return g.Int63() & (n - 1)
	}

	max := int64((1 << 63) - 1 - (1<<63)%uint64(n))
	v := g.Int63()
	for v > max {
		v = g.Int63()
	}

	return v % n
}

// Int31 is just a copy of the golang impl
func (g *Generator) Int31() int32 {
	return int32(g.Int63() >> 32)
}

// Int31n is just a copy of the golang impL
func (g *Generator) Int31n(n int32) int32 {
	if n <= 0 {
		panic("invalid argument to Int31n")
	}

	if n&(n-1) == 0 { // n is power of two, can mask
		return g.Int31() & (n - 1)
	}

	max := int32((1 << 31) - 1 - (1<<31)%uint32(n))
	v := g.Int31()

	for v > max {
		v = g.Int31()
	}

	return v % n
}

// Float64 uses the commented, simpler implmentation since we don't have the
// same support requirements for users
func (g *Generator) Float64() float64 {
	// See the Go lang comments for Rand Float64 implementation for details
	return float64(g.Int63n(1<<53)) / (1 << 53)
}

// SampleIndices draws m distinct indices uniformly at random, without
// replacement, from {0,...,n-1}. The population size is validated before any
// sampling happens: m > n fails with an InsufficientDataError.
func (g *Generator) SampleIndices(m int, n int) ([]int, error) {
	if m < 0 || n < 0 {
		return nil, errors.Errorf("Invalid sample request: m=%d, n=%d", m, n)
	}
	if m > n {
		return nil, &InsufficientDataError{Requested: m, Available: n}
	}

	// Partial Fisher-Yates: only the first m slots need shuffling
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := 0; i < m; i++ {
		j := i + int(g.Int63n(int64(n-i)))
		idx[i], idx[j] = idx[j], idx[i]
	}

	return idx[:m:m], nil
}
