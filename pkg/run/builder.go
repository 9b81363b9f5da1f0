package run

import (
	"mosaic/pkg/component"
	"mosaic/pkg/evaluation"
	"mosaic/pkg/problem"
	"mosaic/pkg/state"
	"mosaic/pkg/tracking"
)

// Builder assembles a component tree step by step. Nested control flow
// takes a callback that fills a sub-builder, so the call structure of
// the program mirrors the shape of the resulting tree:
//
//	cfg := run.NewBuilder[P, E]().
//		Do(initialization.NewRandomSpread[P](30)).
//		Evaluate().
//		While(conditions.NewLessThanIterations[P](100), func(b *run.Builder[P, E]) {
//			b.Do(mutate).Evaluate().UpdateBestIndividual()
//		}).
//		Build()
type Builder[P problem.Problem, E any] struct {
	components []component.Component[P]
}

// NewBuilder returns an empty builder.
func NewBuilder[P problem.Problem, E any]() *Builder[P, E] {
	return &Builder[P, E]{}
}

// Do appends a component.
func (b *Builder[P, E]) Do(c component.Component[P]) *Builder[P, E] {
	b.components = append(b.components, c)
	return b
}

// While appends a loop that repeats the body built by fn while cond
// holds.
func (b *Builder[P, E]) While(cond component.Condition[P], fn func(*Builder[P, E])) *Builder[P, E] {
	return b.Do(component.NewLoop(cond, b.sub(fn)))
}

// If appends a branch that runs the body built by fn when cond holds.
func (b *Builder[P, E]) If(cond component.Condition[P], fn func(*Builder[P, E])) *Builder[P, E] {
	return b.Do(component.NewBranch(cond, b.sub(fn), nil))
}

// IfElse appends a branch with both arms.
func (b *Builder[P, E]) IfElse(cond component.Condition[P], then, otherwise func(*Builder[P, E])) *Builder[P, E] {
	return b.Do(component.NewBranch(cond, b.sub(then), b.sub(otherwise)))
}

// Scope appends a child-registry scope around the body built by fn.
// Custom state inserted inside the body stays local to it.
func (b *Builder[P, E]) Scope(fn func(*Builder[P, E])) *Builder[P, E] {
	return b.Do(component.NewScope(b.sub(fn)))
}

// ScopeWith is Scope with an init hook that seeds the child registry
// before each run of the body.
func (b *Builder[P, E]) ScopeWith(init func(*state.State) error, fn func(*Builder[P, E])) *Builder[P, E] {
	return b.Do(component.NewScopeWith(init, b.sub(fn)))
}

// Evaluate appends the objective evaluation step for encoding E.
func (b *Builder[P, E]) Evaluate() *Builder[P, E] {
	return b.Do(evaluation.NewEvaluate[P, E]())
}

// UpdateBestIndividual appends the best-so-far tracker.
func (b *Builder[P, E]) UpdateBestIndividual() *Builder[P, E] {
	return b.Do(evaluation.NewUpdateBestIndividual[P, E]())
}

// UpdateParetoFront appends the non-dominated set tracker.
func (b *Builder[P, E]) UpdateParetoFront() *Builder[P, E] {
	return b.Do(evaluation.NewUpdateParetoFront[P, E]())
}

// Log appends a logger. The logger fires the pairs configured in the
// registry's tracking.Config, typically seeded via OptimizeWith.
func (b *Builder[P, E]) Log() *Builder[P, E] {
	return b.Do(tracking.NewLogger[P]())
}

// BuildComponent closes the builder into a single block component,
// for nesting inside another builder.
func (b *Builder[P, E]) BuildComponent() component.Component[P] {
	if len(b.components) == 1 {
		return b.components[0]
	}
	return component.NewBlock(b.components...)
}

// Build closes the builder into a runnable Configuration.
func (b *Builder[P, E]) Build() *Configuration[P, E] {
	return &Configuration[P, E]{root: b.BuildComponent()}
}

func (b *Builder[P, E]) sub(fn func(*Builder[P, E])) component.Component[P] {
	if fn == nil {
		return nil
	}
	inner := NewBuilder[P, E]()
	fn(inner)
	return inner.BuildComponent()
}
