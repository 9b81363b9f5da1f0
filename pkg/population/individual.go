// Package population holds the data model shared by selection,
// variation, and replacement components: individuals, populations, and
// the population stack that moves between operators inside a run.
package population

import (
	"fmt"
	"reflect"
	"slices"

	"mosaic/pkg/objective"
)

// Individual wraps an encoding with an optional objective value. It is
// either unevaluated or carries an objective; changing the encoding
// resets it to unevaluated.
type Individual[E any] struct {
	encoding E
	obj      objective.Objective
}

// New returns an unevaluated individual for enc.
func New[E any](enc E) Individual[E] {
	return Individual[E]{encoding: enc}
}

// NewEvaluated returns an individual that already carries an objective.
func NewEvaluated[E any](enc E, obj objective.Objective) Individual[E] {
	return Individual[E]{encoding: enc, obj: obj}
}

// Encoding returns the solution representation. For slice encodings the
// returned header aliases the individual's storage; operators that keep
// a copy must clone it.
func (in *Individual[E]) Encoding() E { return in.encoding }

// SetEncoding replaces the solution and resets the individual to
// unevaluated, since the old objective no longer describes it.
func (in *Individual[E]) SetEncoding(enc E) {
	in.encoding = enc
	in.obj = nil
}

// Evaluated reports whether the individual carries an objective.
func (in *Individual[E]) Evaluated() bool { return in.obj != nil }

// Objective returns the carried objective, or nil when unevaluated.
func (in *Individual[E]) Objective() objective.Objective { return in.obj }

// SetObjective records the objective for the current encoding.
func (in *Individual[E]) SetObjective(obj objective.Objective) { in.obj = obj }

// Value returns the single-objective scalar. The second return is false
// when the individual is unevaluated or carries a multi-objective
// vector.
func (in *Individual[E]) Value() (objective.Value, bool) {
	v, ok := in.obj.(objective.Value)
	return v, ok
}

// Vector returns the multi-objective vector, if that is what the
// individual carries.
func (in *Individual[E]) Vector() (objective.Vector, bool) {
	v, ok := in.obj.(objective.Vector)
	return v, ok
}

// EqualEncoding reports deep equality of the two encodings. Individuals
// are equatable by encoding; the objective does not participate.
func (in *Individual[E]) EqualEncoding(other *Individual[E]) bool {
	return reflect.DeepEqual(in.encoding, other.encoding)
}

func (in Individual[E]) String() string {
	if in.obj == nil {
		return fmt.Sprintf("%v (unevaluated)", in.encoding)
	}
	return fmt.Sprintf("%v = %v", in.encoding, in.obj)
}

// Population is an ordered sequence of individuals. Individuals are
// owned by the population they inhabit and move by value.
type Population[E any] []Individual[E]

// Clone returns a shallow copy of the population (individuals copied by
// value; slice encodings still alias).
func (p Population[E]) Clone() Population[E] {
	return slices.Clone(p)
}

// Best returns a pointer to the individual with the smallest
// single-objective value, or nil for an empty or unevaluated
// population.
func (p Population[E]) Best() *Individual[E] {
	var best *Individual[E]
	bestVal := objective.Worst()
	for i := range p {
		v, ok := p[i].Value()
		if !ok {
			continue
		}
		if best == nil || v.Less(bestVal) {
			best = &p[i]
			bestVal = v
		}
	}
	return best
}
