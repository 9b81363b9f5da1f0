// Package tracking implements the triggered logging subsystem: a log of
// steps extracted from state during execution, driven by (trigger,
// extractor) pairs, plus compressed serialization of the result.
package tracking

import "mosaic/pkg/state"

// IterationsEntry is the name of the automatic first entry of every
// step: the iteration counter at the moment of emission.
const IterationsEntry = "iterations"

// Entry is a single named observation. Value must be serializable by
// encoding/json and cbor.
type Entry struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Step is one batch of entries emitted by one logger execution. Within
// a step, each name is recorded at most once.
type Step struct {
	entries []Entry
}

// Push appends e unless an entry with the same name exists; the first
// write wins. It reports whether the entry was recorded.
func (st *Step) Push(e Entry) bool {
	for _, have := range st.entries {
		if have.Name == e.Name {
			return false
		}
	}
	st.entries = append(st.entries, e)
	return true
}

// Entries returns the recorded entries in emission order.
func (st *Step) Entries() []Entry { return st.entries }

// IsEmpty reports whether nothing was recorded.
func (st *Step) IsEmpty() bool { return len(st.entries) == 0 }

// prependIterations places the iteration counter as the first entry,
// dropping any same-named entry emitted earlier in the step.
func (st *Step) prependIterations(iteration int) {
	entries := make([]Entry, 0, len(st.entries)+1)
	entries = append(entries, Entry{Name: IterationsEntry, Value: iteration})
	for _, e := range st.entries {
		if e.Name != IterationsEntry {
			entries = append(entries, e)
		}
	}
	st.entries = entries
}

// Log is the chronological sequence of steps of one run. It lives in
// the state registry and is append-only while the run executes.
type Log struct {
	state.Marker
	steps []Step
}

// Push appends a completed step.
func (l *Log) Push(st Step) { l.steps = append(l.steps, st) }

// Steps returns all recorded steps in order.
func (l *Log) Steps() []Step { return l.steps }

// Len returns the number of recorded steps.
func (l *Log) Len() int { return len(l.steps) }

// Find returns the values recorded under name across all steps, in
// order. Steps without the entry are skipped.
func (l *Log) Find(name string) []any {
	var out []any
	for _, st := range l.steps {
		for _, e := range st.entries {
			if e.Name == name {
				out = append(out, e.Value)
			}
		}
	}
	return out
}
