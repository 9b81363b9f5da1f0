package state

import "reflect"

// Requirements collects the preconditions declared by components during
// the require phase. Each entry names a state type and the component
// that needs it; Check verifies all of them against a registry after
// init completes, before anything executes.
type Requirements struct {
	wants []requirement
}

type requirement struct {
	needed reflect.Type
	by     string
}

// NewRequirements returns an empty requirement set.
func NewRequirements() *Requirements {
	return &Requirements{}
}

// Depend records that the component named by declares a dependency on T.
func Depend[T CustomState](r *Requirements, by string) {
	r.wants = append(r.wants, requirement{needed: keyOf[T](), by: by})
}

// Check verifies every recorded requirement against s. The first unmet
// requirement is reported as a RequiredMissingError.
func (r *Requirements) Check(s *State) error {
	for _, w := range r.wants {
		if s.find(w.needed) == nil {
			return &RequiredMissingError{Needed: w.needed, By: w.by}
		}
	}
	return nil
}
