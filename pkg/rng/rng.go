// Package rng provides the seedable random source used by stochastic
// components. A Rand lives in the state registry like any other custom
// state, so reproducibility follows from seeding alone: same seed, same
// backend, same component tree, same run.
package rng

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"iter"
	mrand "math/rand/v2"

	"mosaic/pkg/state"
)

// Backend names understood by New. The name is recorded on the Rand so
// child streams can reuse it.
const (
	BackendPCG     = "pcg"
	BackendChaCha8 = "chacha8"
)

// ErrUnknownBackend is returned by New for an unrecognized backend name.
var ErrUnknownBackend = errors.New("rng: unknown backend")

// Rand is a reproducible pseudo-random stream identified by a seed and
// a backend name.
type Rand struct {
	state.Marker
	backend string
	seed    uint64
	src     *mrand.Rand
}

// New creates a stream with an explicit 64-bit seed.
func New(backend string, seed uint64) (*Rand, error) {
	src, err := newSource(backend, seed)
	if err != nil {
		return nil, err
	}
	return &Rand{backend: backend, seed: seed, src: src}, nil
}

// NewDefault creates a PCG stream seeded from the OS.
func NewDefault() *Rand {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand never fails on supported platforms; treat a
		// failure as the bug it is.
		panic(fmt.Sprintf("rng: reading OS entropy: %v", err))
	}
	r, _ := New(BackendPCG, binary.LittleEndian.Uint64(buf[:]))
	return r
}

func newSource(backend string, seed uint64) (*mrand.Rand, error) {
	switch backend {
	case BackendPCG:
		return mrand.New(mrand.NewPCG(seed, splitmix64(seed))), nil
	case BackendChaCha8:
		var key [32]byte
		s := seed
		for i := 0; i < 4; i++ {
			s = splitmix64(s)
			binary.LittleEndian.PutUint64(key[i*8:], s)
		}
		return mrand.New(mrand.NewChaCha8(key)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// splitmix64 decorrelates derived seeds from raw ones.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// Backend returns the backend name the stream was created with.
func (r *Rand) Backend() string { return r.backend }

// Seed returns the seed the stream was created with.
func (r *Rand) Seed() uint64 { return r.seed }

// Uint64 returns a uniformly distributed 64-bit value.
func (r *Rand) Uint64() uint64 { return r.src.Uint64() }

// Float64 returns a uniform value in [0, 1).
func (r *Rand) Float64() float64 { return r.src.Float64() }

// Range returns a uniform value in [lo, hi).
func (r *Rand) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.src.Float64()
}

// IntN returns a uniform value in [0, n).
func (r *Rand) IntN(n int) int { return r.src.IntN(n) }

// NormFloat64 returns a standard normal value.
func (r *Rand) NormFloat64() float64 { return r.src.NormFloat64() }

// Shuffle pseudo-randomizes the order of n elements via swap.
func (r *Rand) Shuffle(n int, swap func(i, j int)) { r.src.Shuffle(n, swap) }

// Perm returns a random permutation of [0, n).
func (r *Rand) Perm(n int) []int { return r.src.Perm(n) }

// Fork derives one child stream by draining 64 bits from r. The child
// reuses r's backend. Successive forks yield distinct, deterministic
// children.
func (r *Rand) Fork() *Rand {
	child, err := New(r.backend, r.Uint64())
	if err != nil {
		// The backend was validated when r was built.
		panic(fmt.Sprintf("rng: fork: %v", err))
	}
	return child
}

// Children yields an unbounded sequence of child streams, each seeded
// deterministically from r. External drivers use it to hand every
// parallel run its own stream.
func (r *Rand) Children() iter.Seq[*Rand] {
	return func(yield func(*Rand) bool) {
		for yield(r.Fork()) {
		}
	}
}
