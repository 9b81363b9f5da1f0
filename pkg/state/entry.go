package state

// EntryView is an occupied-or-vacant view of a single key, mirroring
// map-entry semantics. Occupancy is resolved through the scope chain;
// an insert made by a vacant view targets the local level.
type EntryView[T CustomState] struct {
	s   *State
	err error
}

// Entry returns an entry view for T on s.
func Entry[T CustomState](s *State) *EntryView[T] {
	return &EntryView[T]{s: s}
}

// AndModify applies fn to the value if the entry is occupied. A borrow
// conflict on the occupied cell is recorded and surfaced by the
// terminal Or* call.
func (e *EntryView[T]) AndModify(fn func(*T)) *EntryView[T] {
	if e.err != nil {
		return e
	}
	if !Contains[T](e.s) {
		return e
	}
	ref, err := BorrowMut[T](e.s)
	if err != nil {
		e.err = err
		return e
	}
	fn(ref.Get())
	ref.Release()
	return e
}

// OrInsert inserts v if the entry is vacant and returns any error
// recorded by a prior AndModify.
func (e *EntryView[T]) OrInsert(v T) error {
	return e.OrInsertWith(func() T { return v })
}

// OrInsertWith inserts the value produced by fn if the entry is vacant.
// fn is not called for an occupied entry.
func (e *EntryView[T]) OrInsertWith(fn func() T) error {
	if e.err != nil {
		return e.err
	}
	if !Contains[T](e.s) {
		Insert(e.s, fn())
	}
	return nil
}
