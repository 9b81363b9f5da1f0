package state

// CustomState marks a type as admissible into a State registry. The
// marker is opt-in: embed Marker in a struct to declare it as custom
// state. Nothing else can be inserted, which keeps the registry free
// of accidental keys (a bare int says nothing about what it means).
type CustomState interface {
	customState()
}

// Marker is the zero-size embed that opts a struct into CustomState.
type Marker struct{}

func (Marker) customState() {}

// Valued is implemented by custom state whose single purpose is to wrap
// one value, such as an iteration counter. GetValue, SetValue, and the
// value-of lens project through it.
type Valued[T any] interface {
	Value() T
	SetValue(T)
}
