package objective

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Vector is a multi-objective value: a vector of finite scalars ordered
// by Pareto dominance.
type Vector struct {
	vs []float64
}

// NewVector wraps raw scalars, rejecting any non-finite component.
func NewVector(vs ...float64) (Vector, error) {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Vector{}, fmt.Errorf("%w: component %v", ErrIllegalObjective, v)
		}
	}
	return Vector{vs: slices.Clone(vs)}, nil
}

// Dominates reports whether v Pareto-dominates other: no component
// worse and at least one strictly better. Vectors of differing length
// are incomparable.
func (v Vector) Dominates(other Vector) bool {
	if len(v.vs) != len(other.vs) {
		return false
	}
	strict := false
	for i := range v.vs {
		if v.vs[i] > other.vs[i] {
			return false
		}
		if v.vs[i] < other.vs[i] {
			strict = true
		}
	}
	return strict
}

func (v Vector) Values() []float64 { return slices.Clone(v.vs) }

// Len returns the number of objectives.
func (v Vector) Len() int { return len(v.vs) }

func (v Vector) String() string {
	parts := make([]string, len(v.vs))
	for i, x := range v.vs {
		parts[i] = fmt.Sprintf("%g", x)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
