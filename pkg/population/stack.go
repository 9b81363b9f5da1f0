package population

import "mosaic/pkg/state"

// Stack is the LIFO of populations shared by all operators within a
// run. It lives in the state registry; access goes through the usual
// borrow discipline. Operators document their stack effects, and a loop
// body is expected to be stack-balanced unless stated otherwise.
type Stack[E any] struct {
	state.Marker
	pops []Population[E]
}

// Push places pop on top of the stack.
func (s *Stack[E]) Push(pop Population[E]) {
	s.pops = append(s.pops, pop)
}

// Pop removes and returns the top population. Popping an empty stack is
// an invariant violation.
func (s *Stack[E]) Pop() (Population[E], error) {
	if len(s.pops) == 0 {
		return nil, state.Invariantf("population: pop on empty stack")
	}
	top := s.pops[len(s.pops)-1]
	s.pops[len(s.pops)-1] = nil
	s.pops = s.pops[:len(s.pops)-1]
	return top, nil
}

// Current returns the top population for in-place use, or an invariant
// error when the stack is empty.
func (s *Stack[E]) Current() (*Population[E], error) {
	if len(s.pops) == 0 {
		return nil, state.Invariantf("population: current on empty stack")
	}
	return &s.pops[len(s.pops)-1], nil
}

// Peek returns the k-th population from the top; Peek(0) is the top.
func (s *Stack[E]) Peek(k int) (*Population[E], error) {
	if k < 0 || k >= len(s.pops) {
		return nil, state.Invariantf("population: peek %d on stack of %d", k, len(s.pops))
	}
	return &s.pops[len(s.pops)-1-k], nil
}

// Rotate cyclically shifts the top n populations by one: the top moves
// to the n-th position, everything in between moves up. Applying Rotate
// n times restores the original order.
func (s *Stack[E]) Rotate(n int) error {
	if n < 0 || n > len(s.pops) {
		return state.Invariantf("population: rotate %d on stack of %d", n, len(s.pops))
	}
	if n < 2 {
		return nil
	}
	top := s.pops[len(s.pops)-1]
	copy(s.pops[len(s.pops)-n+1:], s.pops[len(s.pops)-n:len(s.pops)-1])
	s.pops[len(s.pops)-n] = top
	return nil
}

// Len returns the number of populations on the stack.
func (s *Stack[E]) Len() int { return len(s.pops) }

// IsEmpty reports whether the stack holds no populations.
func (s *Stack[E]) IsEmpty() bool { return len(s.pops) == 0 }
