package tracking

import (
	"encoding/json"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Compressed is the interchange form of a log: a symbol table of
// distinct entry names in order of first appearance, plus one map per
// step from symbol index to value. Entry names repeat every step in the
// naive encoding; the symbol table pays for itself after a handful of
// steps.
type Compressed struct {
	Names []string      `json:"names" cbor:"1,keyasint"`
	Steps []map[int]any `json:"steps" cbor:"2,keyasint"`
}

// Compress builds the interchange form of l.
func Compress(l *Log) Compressed {
	var c Compressed
	index := make(map[string]int)
	for _, st := range l.Steps() {
		step := make(map[int]any, len(st.Entries()))
		for _, e := range st.Entries() {
			i, ok := index[e.Name]
			if !ok {
				i = len(c.Names)
				index[e.Name] = i
				c.Names = append(c.Names, e.Name)
			}
			step[i] = e.Value
		}
		c.Steps = append(c.Steps, step)
	}
	return c
}

// Decompress rebuilds a log from its interchange form. Entry order
// within a step follows the symbol table, which preserves first-appearance
// order; in particular the iterations entry stays first.
func Decompress(c Compressed) (*Log, error) {
	l := &Log{}
	for _, step := range c.Steps {
		var st Step
		for i, name := range c.Names {
			v, ok := step[i]
			if !ok {
				continue
			}
			st.Push(Entry{Name: name, Value: v})
		}
		for i := range step {
			if i < 0 || i >= len(c.Names) {
				return nil, fmt.Errorf("tracking: step references symbol %d outside table of %d", i, len(c.Names))
			}
		}
		l.Push(st)
	}
	return l, nil
}

// MarshalJSON serializes the compressed form of l.
func MarshalJSON(l *Log) ([]byte, error) {
	return json.Marshal(Compress(l))
}

// UnmarshalJSON rebuilds a log serialized by MarshalJSON.
func UnmarshalJSON(data []byte) (*Log, error) {
	var c Compressed
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("tracking: decode log: %w", err)
	}
	return Decompress(c)
}

// MarshalCBOR serializes the compressed form of l as CBOR.
func MarshalCBOR(l *Log) ([]byte, error) {
	return cbor.Marshal(Compress(l))
}

// UnmarshalCBOR rebuilds a log serialized by MarshalCBOR.
func UnmarshalCBOR(data []byte) (*Log, error) {
	var c Compressed
	if err := cbor.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("tracking: decode log: %w", err)
	}
	return Decompress(c)
}
