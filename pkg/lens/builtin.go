package lens

import (
	"reflect"

	"mosaic/pkg/problem"
	"mosaic/pkg/state"
)

// IdLens addresses a whole custom-state cell. It supports the full
// capability ladder because the cell is directly addressable.
type IdLens[P problem.Problem, T state.CustomState] struct{}

// Id returns the identity lens on T.
func Id[P problem.Problem, T state.CustomState]() IdLens[P, T] {
	return IdLens[P, T]{}
}

func (IdLens[P, T]) Name() string {
	return reflect.TypeFor[T]().String()
}

func (IdLens[P, T]) Get(_ P, s *state.State) (T, error) {
	ref, err := state.Borrow[T](s)
	if err != nil {
		var zero T
		return zero, err
	}
	defer ref.Release()
	return *ref.Get(), nil
}

func (IdLens[P, T]) View(_ P, s *state.State, fn func(*T) error) error {
	ref, err := state.Borrow[T](s)
	if err != nil {
		return err
	}
	defer ref.Release()
	return fn(ref.Get())
}

func (IdLens[P, T]) Modify(_ P, s *state.State, fn func(*T) error) error {
	ref, err := state.BorrowMut[T](s)
	if err != nil {
		return err
	}
	defer ref.Release()
	return fn(ref.Get())
}

func (IdLens[P, T]) Assign(_ P, s *state.State, v T) error {
	ref, err := state.BorrowMut[T](s)
	if err != nil {
		return err
	}
	defer ref.Release()
	*ref.Get() = v
	return nil
}

// ValueOfLens projects through a single-value wrapper state S to its
// inner value of type T. The wrapper's accessors make the projection
// invertible, so the full ladder is available even though the inner
// value has no stable address.
type ValueOfLens[P problem.Problem, S state.CustomState, T any, PS interface {
	*S
	state.Valued[T]
}] struct{}

// ValueOf returns the lens projecting S to its wrapped value.
func ValueOf[P problem.Problem, S state.CustomState, T any, PS interface {
	*S
	state.Valued[T]
}]() ValueOfLens[P, S, T, PS] {
	return ValueOfLens[P, S, T, PS]{}
}

func (ValueOfLens[P, S, T, PS]) Name() string {
	return reflect.TypeFor[S]().String()
}

func (ValueOfLens[P, S, T, PS]) Get(_ P, s *state.State) (T, error) {
	return state.GetValue[S, T, PS](s)
}

func (l ValueOfLens[P, S, T, PS]) View(p P, s *state.State, fn func(*T) error) error {
	v, err := l.Get(p, s)
	if err != nil {
		return err
	}
	return fn(&v)
}

func (ValueOfLens[P, S, T, PS]) Modify(_ P, s *state.State, fn func(*T) error) error {
	ref, err := state.BorrowMut[S](s)
	if err != nil {
		return err
	}
	defer ref.Release()
	v := PS(ref.Get()).Value()
	if err := fn(&v); err != nil {
		return err
	}
	PS(ref.Get()).SetValue(v)
	return nil
}

func (ValueOfLens[P, S, T, PS]) Assign(_ P, s *state.State, v T) error {
	return state.SetValue[S, T, PS](s, v)
}

// MapLens derives Get from a pure projection of a source state. It
// deliberately stops at the read-only capabilities: a non-invertible
// projection must not be written through.
type MapLens[P problem.Problem, S state.CustomState, T any] struct {
	name string
	fn   func(*S) T
}

// Map builds a read lens from a pure projection. Lens authors get Get
// and View for free; Modify and Assign stay unavailable.
func Map[P problem.Problem, S state.CustomState, T any](name string, fn func(*S) T) MapLens[P, S, T] {
	return MapLens[P, S, T]{name: name, fn: fn}
}

func (m MapLens[P, S, T]) Name() string { return m.name }

func (m MapLens[P, S, T]) Get(_ P, s *state.State) (T, error) {
	ref, err := state.Borrow[S](s)
	if err != nil {
		var zero T
		return zero, err
	}
	defer ref.Release()
	return m.fn(ref.Get()), nil
}

func (m MapLens[P, S, T]) View(p P, s *state.State, fn func(*T) error) error {
	v, err := m.Get(p, s)
	if err != nil {
		return err
	}
	return fn(&v)
}

// MapRefLens derives Get and View from a projection that returns a
// pointer into the source state.
type MapRefLens[P problem.Problem, S state.CustomState, T any] struct {
	name string
	fn   func(*S) *T
}

// MapRef builds a read lens whose View borrows the projected field in
// place instead of copying it.
func MapRef[P problem.Problem, S state.CustomState, T any](name string, fn func(*S) *T) MapRefLens[P, S, T] {
	return MapRefLens[P, S, T]{name: name, fn: fn}
}

func (m MapRefLens[P, S, T]) Name() string { return m.name }

func (m MapRefLens[P, S, T]) Get(_ P, s *state.State) (T, error) {
	ref, err := state.Borrow[S](s)
	if err != nil {
		var zero T
		return zero, err
	}
	defer ref.Release()
	return *m.fn(ref.Get()), nil
}

func (m MapRefLens[P, S, T]) View(_ P, s *state.State, fn func(*T) error) error {
	ref, err := state.Borrow[S](s)
	if err != nil {
		return err
	}
	defer ref.Release()
	return fn(m.fn(ref.Get()))
}
