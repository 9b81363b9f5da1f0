// Package initialization provides components that create populations.
package initialization

import (
	"mosaic/pkg/component"
	"mosaic/pkg/population"
	"mosaic/pkg/problem"
	"mosaic/pkg/rng"
	"mosaic/pkg/state"
)

// RandomSpread pushes a population of Size individuals sampled
// uniformly inside the problem's bounds. Placed at the start of a
// configuration it seeds the initial population; placed inside a loop
// it resamples fresh candidates each iteration (random search).
// Stack effect: +1.
type RandomSpread[P interface {
	problem.Problem
	problem.Bounded
}] struct {
	component.Base[P]
	Size int
}

// NewRandomSpread returns the uniform sampler for size individuals.
func NewRandomSpread[P interface {
	problem.Problem
	problem.Bounded
}](size int) *RandomSpread[P] {
	return &RandomSpread[P]{Size: size}
}

func (*RandomSpread[P]) Name() string { return "random_spread" }

func (c *RandomSpread[P]) Require(_ P, r *state.Requirements) error {
	state.Depend[rng.Rand](r, c.Name())
	state.Depend[population.Stack[[]float64]](r, c.Name())
	return nil
}

func (c *RandomSpread[P]) Execute(p P, s *state.State) error {
	if c.Size <= 0 {
		return state.Invariantf("initialization: random_spread with size %d", c.Size)
	}
	random, stack, err := state.BorrowMut2[rng.Rand, population.Stack[[]float64]](s)
	if err != nil {
		return err
	}
	defer random.Release()
	defer stack.Release()

	lower, upper := p.Bounds()
	dim := p.Dimension()
	if len(lower) != dim || len(upper) != dim {
		return state.Invariantf("initialization: bounds of length %d/%d for dimension %d", len(lower), len(upper), dim)
	}

	pop := make(population.Population[[]float64], c.Size)
	for i := range pop {
		enc := make([]float64, dim)
		for d := 0; d < dim; d++ {
			enc[d] = random.Get().Range(lower[d], upper[d])
		}
		pop[i] = population.New(enc)
	}
	stack.Get().Push(pop)
	return nil
}

// Empty pushes an empty population, for configurations that fill the
// stack by other means. Stack effect: +1.
type Empty[P problem.Problem, E any] struct {
	component.Base[P]
}

// NewEmpty returns the empty-population component.
func NewEmpty[P problem.Problem, E any]() *Empty[P, E] {
	return &Empty[P, E]{}
}

func (*Empty[P, E]) Name() string { return "empty" }

func (c *Empty[P, E]) Require(_ P, r *state.Requirements) error {
	state.Depend[population.Stack[E]](r, c.Name())
	return nil
}

func (c *Empty[P, E]) Execute(_ P, s *state.State) error {
	ref, err := state.BorrowMut[population.Stack[E]](s)
	if err != nil {
		return err
	}
	defer ref.Release()
	ref.Get().Push(population.Population[E]{})
	return nil
}
