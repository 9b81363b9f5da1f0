// Package benchmarks provides standard continuous test functions as
// problems. They are single-objective, box-bounded, and know their
// optimum, which makes them the natural fixtures for end-to-end tests
// and demos.
package benchmarks

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"mosaic/pkg/objective"
	"mosaic/pkg/problem"
)

// Sphere is f(x) = Σ xᵢ² on [-1, 1]ᵈ by default; the optimum is 0 at
// the origin.
type Sphere struct {
	Dim    int
	Lower  float64
	Upper  float64
	Target float64
}

// NewSphere returns the sphere function on [-1, 1]^dim with a solved
// threshold of 1e-6.
func NewSphere(dim int) *Sphere {
	return &Sphere{Dim: dim, Lower: -1, Upper: 1, Target: 1e-6}
}

func (s *Sphere) Name() string { return fmt.Sprintf("sphere-%d", s.Dim) }

func (s *Sphere) Dimension() int { return s.Dim }

func (s *Sphere) Bounds() (lower, upper []float64) {
	lower = make([]float64, s.Dim)
	upper = make([]float64, s.Dim)
	for i := range lower {
		lower[i] = s.Lower
		upper[i] = s.Upper
	}
	return lower, upper
}

func (s *Sphere) Objective(x []float64) (objective.Value, error) {
	if len(x) != s.Dim {
		return objective.Value{}, fmt.Errorf("sphere: encoding of length %d for dimension %d", len(x), s.Dim)
	}
	return objective.NewValue(floats.Dot(x, x))
}

func (s *Sphere) Optimum() objective.Value {
	v, _ := objective.NewValue(0)
	return v
}

func (s *Sphere) TargetHit(v objective.Value) bool {
	return v.Float64() <= s.Target
}

// DefaultEvaluator lets configurations run without manual evaluator
// wiring.
func (s *Sphere) DefaultEvaluator() problem.Evaluator[*Sphere, []float64] {
	return problem.SequentialEvaluator[*Sphere, []float64]{}
}

// Rastrigin is the classic multimodal function
// f(x) = 10d + Σ (xᵢ² − 10 cos(2π xᵢ)) on [-5.12, 5.12]ᵈ; the optimum
// is 0 at the origin.
type Rastrigin struct {
	Dim    int
	Target float64
}

// NewRastrigin returns the rastrigin function on [-5.12, 5.12]^dim.
func NewRastrigin(dim int) *Rastrigin {
	return &Rastrigin{Dim: dim, Target: 1e-6}
}

func (r *Rastrigin) Name() string { return fmt.Sprintf("rastrigin-%d", r.Dim) }

func (r *Rastrigin) Dimension() int { return r.Dim }

func (r *Rastrigin) Bounds() (lower, upper []float64) {
	lower = make([]float64, r.Dim)
	upper = make([]float64, r.Dim)
	for i := range lower {
		lower[i] = -5.12
		upper[i] = 5.12
	}
	return lower, upper
}

func (r *Rastrigin) Objective(x []float64) (objective.Value, error) {
	if len(x) != r.Dim {
		return objective.Value{}, fmt.Errorf("rastrigin: encoding of length %d for dimension %d", len(x), r.Dim)
	}
	sum := 10 * float64(r.Dim)
	sum += floats.Dot(x, x)
	for _, xi := range x {
		sum -= 10 * math.Cos(2*math.Pi*xi)
	}
	return objective.NewValue(sum)
}

func (r *Rastrigin) Optimum() objective.Value {
	v, _ := objective.NewValue(0)
	return v
}

func (r *Rastrigin) TargetHit(v objective.Value) bool {
	return v.Float64() <= r.Target
}

// DefaultEvaluator lets configurations run without manual evaluator
// wiring.
func (r *Rastrigin) DefaultEvaluator() problem.Evaluator[*Rastrigin, []float64] {
	return problem.SequentialEvaluator[*Rastrigin, []float64]{}
}
