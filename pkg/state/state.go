// Package state implements the heterogeneous, runtime-keyed registry
// shared by all components of a run. A State maps the reflect.Type of a
// custom state type to exactly one cell holding an instance of it. Cells
// enforce the shared-xor-exclusive borrow rule at runtime, and a State
// may have a parent whose entries are visible through the child.
package state

import "reflect"

// cell is one registry slot. value is always a *T for the keyed type T;
// shared counts active shared borrows, exclusive flags the single
// permitted exclusive borrow.
type cell struct {
	value     any
	shared    int
	exclusive bool
}

// State is the registry. It is not safe for concurrent use: a run is
// single-threaded, and whole registries move between goroutines rather
// than being shared.
type State struct {
	parent *State
	cells  map[reflect.Type]*cell
}

// New returns an empty root registry.
func New() *State {
	return &State{cells: make(map[reflect.Type]*cell)}
}

// Child opens a nested scope. Lookups that miss the child fall through
// to s; inserts and removes always target the child. Dropping the child
// (letting it go out of scope) leaves s untouched.
func (s *State) Child() *State {
	return &State{parent: s, cells: make(map[reflect.Type]*cell)}
}

// Parent returns the enclosing scope, or nil for a root registry.
func (s *State) Parent() *State { return s.parent }

// find resolves a key through the scope chain.
func (s *State) find(t reflect.Type) *cell {
	for cur := s; cur != nil; cur = cur.parent {
		if c, ok := cur.cells[t]; ok {
			return c
		}
	}
	return nil
}

func keyOf[T CustomState]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Insert stores v under the key given by its type. An existing entry at
// this level is replaced; an entry in a parent scope is shadowed, not
// touched.
func Insert[T CustomState](s *State, v T) {
	s.cells[keyOf[T]()] = &cell{value: &v}
}

// Contains reports whether T is present in s or any ancestor.
func Contains[T CustomState](s *State) bool {
	return s.find(keyOf[T]()) != nil
}

// Remove removes and returns the local entry for T. It fails with
// ErrNotFound if T is absent at this level (a parent entry does not
// count), and with ErrBorrowConflict while any borrow of the cell is
// active.
func Remove[T CustomState](s *State) (T, error) {
	var zero T
	t := keyOf[T]()
	c, ok := s.cells[t]
	if !ok {
		return zero, &NotFoundError{Type: t}
	}
	if c.exclusive || c.shared > 0 {
		return zero, &BorrowError{Type: t, Requested: Exclusive}
	}
	delete(s.cells, t)
	return *c.value.(*T), nil
}

// Ref is a shared borrow guard. Callers must not mutate through Get and
// must call Release before requesting an exclusive borrow of the same
// cell.
type Ref[T CustomState] struct {
	c *cell
	v *T
}

// Get returns the borrowed value. The pointer is only valid until
// Release.
func (r *Ref[T]) Get() *T { return r.v }

// Release returns the borrow. Releasing twice is a no-op.
func (r *Ref[T]) Release() {
	if r.c != nil {
		r.c.shared--
		r.c = nil
	}
}

// RefMut is an exclusive borrow guard.
type RefMut[T CustomState] struct {
	c *cell
	v *T
}

// Get returns the exclusively borrowed value for reading and writing.
func (r *RefMut[T]) Get() *T { return r.v }

// Release returns the borrow. Releasing twice is a no-op.
func (r *RefMut[T]) Release() {
	if r.c != nil {
		r.c.exclusive = false
		r.c = nil
	}
}

// Borrow acquires a shared borrow of T. It fails with ErrNotFound if T
// is absent and with ErrBorrowConflict if an exclusive borrow is active.
func Borrow[T CustomState](s *State) (*Ref[T], error) {
	t := keyOf[T]()
	c := s.find(t)
	if c == nil {
		return nil, &NotFoundError{Type: t}
	}
	if c.exclusive {
		return nil, &BorrowError{Type: t, Requested: Shared}
	}
	c.shared++
	return &Ref[T]{c: c, v: c.value.(*T)}, nil
}

// BorrowMut acquires an exclusive borrow of T. It fails with ErrNotFound
// if T is absent and with ErrBorrowConflict if any borrow is active.
func BorrowMut[T CustomState](s *State) (*RefMut[T], error) {
	t := keyOf[T]()
	c := s.find(t)
	if c == nil {
		return nil, &NotFoundError{Type: t}
	}
	if c.exclusive || c.shared > 0 {
		return nil, &BorrowError{Type: t, Requested: Exclusive}
	}
	c.exclusive = true
	return &RefMut[T]{c: c, v: c.value.(*T)}, nil
}

// GetValue reads the wrapped value of a single-value state such as a
// counter. It takes a transient shared borrow and fails with the same
// errors as Borrow.
func GetValue[S CustomState, T any, PS interface {
	*S
	Valued[T]
}](s *State) (T, error) {
	ref, err := Borrow[S](s)
	if err != nil {
		var zero T
		return zero, err
	}
	defer ref.Release()
	return PS(ref.Get()).Value(), nil
}

// SetValue writes the wrapped value of a single-value state. It takes a
// transient exclusive borrow and fails with the same errors as
// BorrowMut.
func SetValue[S CustomState, T any, PS interface {
	*S
	Valued[T]
}](s *State, v T) error {
	ref, err := BorrowMut[S](s)
	if err != nil {
		return err
	}
	defer ref.Release()
	PS(ref.Get()).SetValue(v)
	return nil
}
