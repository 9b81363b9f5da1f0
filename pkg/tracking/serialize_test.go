package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLog() *Log {
	l := &Log{}
	for i := 0; i < 3; i++ {
		var st Step
		st.Push(Entry{Name: IterationsEntry, Value: i})
		st.Push(Entry{Name: "best", Value: float64(10 - i)})
		if i == 2 {
			st.Push(Entry{Name: "late", Value: "only-once"})
		}
		l.Push(st)
	}
	return l
}

func TestCompress_SymbolTable(t *testing.T) {
	c := Compress(sampleLog())

	// Names in order of first appearance, each exactly once.
	assert.Equal(t, []string{IterationsEntry, "best", "late"}, c.Names)
	require.Len(t, c.Steps, 3)
	assert.Len(t, c.Steps[0], 2)
	assert.Len(t, c.Steps[2], 3)
	assert.Equal(t, 0, c.Steps[0][0])
	assert.Equal(t, "only-once", c.Steps[2][2])
}

func TestJSON_RoundTrip(t *testing.T) {
	data, err := MarshalJSON(sampleLog())
	require.NoError(t, err)

	got, err := UnmarshalJSON(data)
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())

	// The iterations entry stays first in every step.
	for i, st := range got.Steps() {
		entries := st.Entries()
		require.NotEmpty(t, entries, "step %d", i)
		assert.Equal(t, IterationsEntry, entries[0].Name, "step %d", i)
	}
	assert.Equal(t, []any{float64(10), float64(9), float64(8)}, got.Find("best"))
	assert.Equal(t, []any{"only-once"}, got.Find("late"))
}

func TestCBOR_RoundTrip(t *testing.T) {
	data, err := MarshalCBOR(sampleLog())
	require.NoError(t, err)

	got, err := UnmarshalCBOR(data)
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())
	assert.Equal(t, []any{"only-once"}, got.Find("late"))
}

func TestUnmarshalJSON_Malformed(t *testing.T) {
	_, err := UnmarshalJSON([]byte(`{"names": [`))
	assert.Error(t, err)
}
