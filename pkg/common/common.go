// Package common defines the custom state types shared by the standard
// components: the iteration and evaluation counters, the best
// individual, and the Pareto front.
package common

import (
	"mosaic/pkg/objective"
	"mosaic/pkg/population"
	"mosaic/pkg/state"
)

// Iterations counts loop iterations. The loop combinator ensures it
// exists and increments it after each body execution.
type Iterations struct {
	state.Marker
	n int
}

func (it *Iterations) Value() int     { return it.n }
func (it *Iterations) SetValue(n int) { it.n = n }

// Evaluations counts objective function evaluations across the run.
type Evaluations struct {
	state.Marker
	n int
}

func (ev *Evaluations) Value() int     { return ev.n }
func (ev *Evaluations) SetValue(n int) { ev.n = n }

// Add increments the counter by n and returns the new total.
func (ev *Evaluations) Add(n int) int {
	ev.n += n
	return ev.n
}

// BestIndividual tracks the best single-objective individual seen so
// far. The zero value holds nothing and loses every comparison.
type BestIndividual[E any] struct {
	state.Marker
	ind   population.Individual[E]
	valid bool
}

// Get returns the tracked individual, or nil when none has been
// recorded yet.
func (b *BestIndividual[E]) Get() *population.Individual[E] {
	if !b.valid {
		return nil
	}
	return &b.ind
}

// Update replaces the tracked individual if in is strictly better. It
// reports whether a replacement happened. Unevaluated or
// multi-objective individuals never replace.
func (b *BestIndividual[E]) Update(in population.Individual[E]) bool {
	v, ok := in.Value()
	if !ok {
		return false
	}
	cur := objective.Worst()
	if b.valid {
		if c, ok := b.ind.Value(); ok {
			cur = c
		}
	}
	if !v.Less(cur) {
		return false
	}
	b.ind = in
	b.valid = true
	return true
}

// ParetoFront maintains the set of mutually nondominated individuals
// seen so far.
type ParetoFront[E any] struct {
	state.Marker
	front population.Population[E]
}

// Front returns the current nondominated set in insertion order.
func (f *ParetoFront[E]) Front() population.Population[E] {
	return f.front
}

// Update offers in to the front. A dominated offer is discarded; an
// accepted offer evicts every member it dominates. Update reports
// whether the offer was accepted.
func (f *ParetoFront[E]) Update(in population.Individual[E]) bool {
	v, ok := in.Vector()
	if !ok {
		return false
	}
	// In-place filter. Dominance is transitive, so once the offer
	// dominates any member, no member can still dominate the offer and
	// the early return below cannot fire after an eviction.
	kept := f.front[:0]
	for i := range f.front {
		m, _ := f.front[i].Vector()
		if m.Dominates(v) || equalVectors(m, v) {
			return false
		}
		if !v.Dominates(m) {
			kept = append(kept, f.front[i])
		}
	}
	f.front = append(kept, in)
	return true
}

func equalVectors(a, b objective.Vector) bool {
	av, bv := a.Values(), b.Values()
	if len(av) != len(bv) {
		return false
	}
	for i := range av {
		if av[i] != bv[i] {
			return false
		}
	}
	return true
}
