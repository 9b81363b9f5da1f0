// Package lens implements caller-parameterized addressing of state.
// A lens names a piece of state (or a projection of it) by type-level
// address so that a generic component can operate on "the iteration
// counter" or "the current temperature" without knowing where the value
// lives. Capabilities form a ladder: Get produces an owned value, View
// a scoped shared borrow, Modify a scoped exclusive borrow, Assign a
// write-back. Borrows are closure-scoped so guards cannot leak.
package lens

import (
	"mosaic/pkg/problem"
	"mosaic/pkg/state"
)

// Lens produces an owned Target from the registry.
type Lens[P problem.Problem, T any] interface {
	// Name identifies the addressed value, e.g. for log entries.
	Name() string
	Get(p P, s *state.State) (T, error)
}

// RefLens additionally exposes the target under a scoped shared borrow.
// fn must not mutate through the pointer.
type RefLens[P problem.Problem, T any] interface {
	Lens[P, T]
	View(p P, s *state.State, fn func(*T) error) error
}

// MutLens additionally exposes the target under a scoped exclusive
// borrow.
type MutLens[P problem.Problem, T any] interface {
	RefLens[P, T]
	Modify(p P, s *state.State, fn func(*T) error) error
}

// AssignLens additionally writes a whole target back.
type AssignLens[P problem.Problem, T any] interface {
	MutLens[P, T]
	Assign(p P, s *state.State, v T) error
}
