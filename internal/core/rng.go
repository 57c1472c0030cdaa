package core

import "time"

// RandomSource is the only randomness the generator needs.
// Implementations must return a value in [0, n) and 0 when n <= 0.
type RandomSource interface {
	Intn(n int) int
}

// SimpleRNG is a deterministic pseudo-random number generator (xorshift64).
type SimpleRNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed uint64) *SimpleRNG {
	if seed == 0 {
		seed = 88172645463325252 // Default seed
	}
	return &SimpleRNG{state: seed}
}

// NewTimeRNG creates an RNG seeded from the wall clock.
func NewTimeRNG() *SimpleRNG {
	return NewRNG(uint64(time.Now().UnixNano()))
}

// Next returns the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Float returns a random float64 in [0, 1).
func (r *SimpleRNG) Float() float64 {
	return float64(r.Next()&0x7FFFFFFFFFFFFFFF) / float64(0x8000000000000000)
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}
