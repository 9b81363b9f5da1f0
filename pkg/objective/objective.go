// Package objective defines the value types an individual can carry: a
// totally ordered scalar for single-objective problems and a
// Pareto-ordered vector for multi-objective ones. Both exclude NaN, so
// comparisons never silently misbehave.
package objective

import (
	"errors"
	"fmt"
	"math"
)

// ErrIllegalObjective is returned when an objective is constructed from
// NaN or negative infinity.
var ErrIllegalObjective = errors.New("objective: illegal value")

// Objective is the common face of Value and Vector, letting an
// individual carry either without a second type parameter on the
// component tree.
type Objective interface {
	// Values returns the raw objective values; a scalar has length one.
	Values() []float64
	fmt.Stringer
}

// Value is a single-objective scalar. The zero value is +Inf, the worst
// possible objective, so an uninitialized best-so-far always loses.
type Value struct {
	set bool
	v   float64
}

// NewValue wraps a raw scalar. NaN and negative infinity are rejected;
// positive infinity is allowed as the identity of minimization.
func NewValue(v float64) (Value, error) {
	if math.IsNaN(v) || math.IsInf(v, -1) {
		return Value{}, fmt.Errorf("%w: %v", ErrIllegalObjective, v)
	}
	return Value{set: true, v: v}, nil
}

// Worst returns the +Inf objective.
func Worst() Value {
	return Value{set: true, v: math.Inf(1)}
}

// Float64 returns the wrapped scalar; +Inf for the zero Value.
func (v Value) Float64() float64 {
	if !v.set {
		return math.Inf(1)
	}
	return v.v
}

// Less reports whether v is strictly better (smaller) than other.
func (v Value) Less(other Value) bool {
	return v.Float64() < other.Float64()
}

// IsFinite reports whether the objective is a finite number.
func (v Value) IsFinite() bool {
	return !math.IsInf(v.Float64(), 0)
}

func (v Value) Values() []float64 { return []float64{v.Float64()} }

func (v Value) String() string {
	return fmt.Sprintf("%g", v.Float64())
}
