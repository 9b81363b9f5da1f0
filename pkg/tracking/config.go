package tracking

import (
	"mosaic/pkg/component"
	"mosaic/pkg/problem"
	"mosaic/pkg/state"
)

// Trigger decides when an extractor fires. Any condition works: the
// same types drive loops, branches, and logging.
type Trigger[P problem.Problem] = component.Condition[P]

// Extractor produces one named entry from state.
type Extractor[P problem.Problem] interface {
	// Name is the entry name; within one step the first write wins.
	Name() string
	Extract(p P, s *state.State) (any, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc[P problem.Problem] struct {
	EntryName string
	Fn        func(p P, s *state.State) (any, error)
}

// NewExtractorFunc wraps fn as an extractor emitting under name.
func NewExtractorFunc[P problem.Problem](name string, fn func(p P, s *state.State) (any, error)) ExtractorFunc[P] {
	return ExtractorFunc[P]{EntryName: name, Fn: fn}
}

func (e ExtractorFunc[P]) Name() string { return e.EntryName }

func (e ExtractorFunc[P]) Extract(p P, s *state.State) (any, error) { return e.Fn(p, s) }

// Pair couples a trigger with the extractor it gates.
type Pair[P problem.Problem] struct {
	Trigger   Trigger[P]
	Extractor Extractor[P]
}

// Config is the log configuration: the ordered list of pairs a Logger
// walks on every execution. It is ordinary custom state, so drivers
// insert or extend it before (or even during) a run.
type Config[P problem.Problem] struct {
	state.Marker
	pairs []Pair[P]
}

// With appends a pair and returns the config for chaining.
func (c *Config[P]) With(t Trigger[P], e Extractor[P]) *Config[P] {
	c.pairs = append(c.pairs, Pair[P]{Trigger: t, Extractor: e})
	return c
}

// Pairs returns the configured pairs in order.
func (c *Config[P]) Pairs() []Pair[P] { return c.pairs }
