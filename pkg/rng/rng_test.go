package rng

import (
	"errors"
	"testing"
)

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New("mersenne", 1)
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("err = %v, want ErrUnknownBackend", err)
	}
}

func TestRand_SameSeedSameStream(t *testing.T) {
	for _, backend := range []string{BackendPCG, BackendChaCha8} {
		a, err := New(backend, 42)
		if err != nil {
			t.Fatalf("New(%s): %v", backend, err)
		}
		b, _ := New(backend, 42)

		for i := 0; i < 100; i++ {
			if x, y := a.Uint64(), b.Uint64(); x != y {
				t.Fatalf("%s: streams diverge at draw %d: %d vs %d", backend, i, x, y)
			}
		}
	}
}

func TestRand_DifferentSeedsDiffer(t *testing.T) {
	a, _ := New(BackendPCG, 1)
	b, _ := New(BackendPCG, 2)

	same := 0
	for i := 0; i < 10; i++ {
		if a.Uint64() == b.Uint64() {
			same++
		}
	}
	if same == 10 {
		t.Error("seeds 1 and 2 produced identical streams")
	}
}

func TestRand_ChildrenDeterministic(t *testing.T) {
	parent1, _ := New(BackendPCG, 7)
	parent2, _ := New(BackendPCG, 7)

	take := func(r *Rand, n int) []*Rand {
		var out []*Rand
		for child := range r.Children() {
			out = append(out, child)
			if len(out) == n {
				break
			}
		}
		return out
	}

	kids1 := take(parent1, 5)
	kids2 := take(parent2, 5)

	for i := range kids1 {
		if kids1[i].Seed() != kids2[i].Seed() {
			t.Errorf("child %d seeds differ: %d vs %d", i, kids1[i].Seed(), kids2[i].Seed())
		}
		if kids1[i].Backend() != BackendPCG {
			t.Errorf("child %d backend = %s, want parent's pcg", i, kids1[i].Backend())
		}
		if x, y := kids1[i].Uint64(), kids2[i].Uint64(); x != y {
			t.Errorf("child %d streams diverge: %d vs %d", i, x, y)
		}
	}

	// Sibling children must not share a stream.
	if kids1[0].Seed() == kids1[1].Seed() {
		t.Error("sibling children share a seed")
	}
}

func TestRand_Range(t *testing.T) {
	r, _ := New(BackendPCG, 3)
	for i := 0; i < 1000; i++ {
		v := r.Range(-1, 1)
		if v < -1 || v >= 1 {
			t.Fatalf("Range(-1,1) = %v, out of bounds", v)
		}
	}
}

func TestNewDefault(t *testing.T) {
	r := NewDefault()
	if r.Backend() != BackendPCG {
		t.Errorf("default backend = %s, want pcg", r.Backend())
	}
}
