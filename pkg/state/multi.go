package state

import "reflect"

// Multi-borrow helpers: exclusive borrows of several distinct keys at
// once. Duplicate keys are rejected with ErrMultipleBorrowConflict
// before any borrow is taken, so a failed request never leaves a cell
// locked.

func duplicateKeys(types ...reflect.Type) error {
	for i := range types {
		for j := i + 1; j < len(types); j++ {
			if types[i] == types[j] {
				return &MultipleBorrowError{Types: types}
			}
		}
	}
	return nil
}

// BorrowMut2 exclusively borrows two distinct state types.
func BorrowMut2[A, B CustomState](s *State) (*RefMut[A], *RefMut[B], error) {
	if err := duplicateKeys(keyOf[A](), keyOf[B]()); err != nil {
		return nil, nil, err
	}
	a, err := BorrowMut[A](s)
	if err != nil {
		return nil, nil, err
	}
	b, err := BorrowMut[B](s)
	if err != nil {
		a.Release()
		return nil, nil, err
	}
	return a, b, nil
}

// BorrowMut3 exclusively borrows three distinct state types.
func BorrowMut3[A, B, C CustomState](s *State) (*RefMut[A], *RefMut[B], *RefMut[C], error) {
	if err := duplicateKeys(keyOf[A](), keyOf[B](), keyOf[C]()); err != nil {
		return nil, nil, nil, err
	}
	a, b, err := BorrowMut2[A, B](s)
	if err != nil {
		return nil, nil, nil, err
	}
	c, err := BorrowMut[C](s)
	if err != nil {
		a.Release()
		b.Release()
		return nil, nil, nil, err
	}
	return a, b, c, nil
}

// BorrowMut4 exclusively borrows four distinct state types.
func BorrowMut4[A, B, C, D CustomState](s *State) (*RefMut[A], *RefMut[B], *RefMut[C], *RefMut[D], error) {
	if err := duplicateKeys(keyOf[A](), keyOf[B](), keyOf[C](), keyOf[D]()); err != nil {
		return nil, nil, nil, nil, err
	}
	a, b, c, err := BorrowMut3[A, B, C](s)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	d, err := BorrowMut[D](s)
	if err != nil {
		a.Release()
		b.Release()
		c.Release()
		return nil, nil, nil, nil, err
	}
	return a, b, c, d, nil
}
