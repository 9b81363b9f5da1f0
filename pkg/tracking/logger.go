package tracking

import (
	"mosaic/pkg/common"
	"mosaic/pkg/component"
	"mosaic/pkg/problem"
	"mosaic/pkg/state"
)

// Logger is the component that drives the log configuration. It
// observes state at its position in the component tree; several loggers
// may coexist, and placement decides what each one captures.
type Logger[P problem.Problem] struct {
	component.Base[P]
}

// NewLogger returns a logger component.
func NewLogger[P problem.Problem]() *Logger[P] {
	return &Logger[P]{}
}

func (*Logger[P]) Name() string { return "logger" }

// Init makes sure a log, a log configuration, and the iteration counter
// exist, then initializes the configured triggers. Existing state is
// left alone.
func (l *Logger[P]) Init(p P, s *state.State) error {
	if err := state.Entry[Log](s).OrInsert(Log{}); err != nil {
		return err
	}
	if err := state.Entry[Config[P]](s).OrInsert(Config[P]{}); err != nil {
		return err
	}
	if err := state.Entry[common.Iterations](s).OrInsert(common.Iterations{}); err != nil {
		return err
	}
	for _, pair := range l.pairs(s) {
		if err := pair.Trigger.Init(p, s); err != nil {
			return err
		}
	}
	return nil
}

// pairs snapshots the configured pairs so the Config borrow is released
// before triggers and extractors run.
func (l *Logger[P]) pairs(s *state.State) []Pair[P] {
	ref, err := state.Borrow[Config[P]](s)
	if err != nil {
		return nil
	}
	defer ref.Release()
	return ref.Get().Pairs()
}

// Execute opens a step, fires every pair whose trigger holds, and, if
// anything was recorded, prepends the iteration counter and appends the
// step to the log.
func (l *Logger[P]) Execute(p P, s *state.State) error {
	var step Step
	for _, pair := range l.pairs(s) {
		ok, err := pair.Trigger.Evaluate(p, s)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		v, err := pair.Extractor.Extract(p, s)
		if err != nil {
			return err
		}
		if v == nil {
			continue
		}
		step.Push(Entry{Name: pair.Extractor.Name(), Value: v})
	}
	if step.IsEmpty() {
		return nil
	}

	iteration, err := state.GetValue[common.Iterations, int](s)
	if err != nil {
		return err
	}
	step.prependIterations(iteration)

	ref, err := state.BorrowMut[Log](s)
	if err != nil {
		return err
	}
	defer ref.Release()
	ref.Get().Push(step)
	return nil
}
