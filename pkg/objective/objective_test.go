package objective

import (
	"errors"
	"math"
	"testing"
)

func TestNewValue_RejectsIllegal(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(-1)} {
		if _, err := NewValue(bad); !errors.Is(err, ErrIllegalObjective) {
			t.Errorf("NewValue(%v): err = %v, want ErrIllegalObjective", bad, err)
		}
	}
	if _, err := NewValue(math.Inf(1)); err != nil {
		t.Errorf("NewValue(+Inf) should be allowed: %v", err)
	}
}

func TestValue_ZeroIsWorst(t *testing.T) {
	var zero Value
	if !math.IsInf(zero.Float64(), 1) {
		t.Errorf("zero Value = %v, want +Inf", zero.Float64())
	}

	good, _ := NewValue(1.5)
	if !good.Less(zero) {
		t.Error("any finite value should beat the zero Value")
	}
	if zero.Less(good) {
		t.Error("+Inf must not beat a finite value")
	}
}

func TestValue_TotalOrder(t *testing.T) {
	a, _ := NewValue(1)
	b, _ := NewValue(2)
	if !a.Less(b) || b.Less(a) || a.Less(a) {
		t.Error("Less is not a strict total order on {1, 2}")
	}
}

func TestNewVector_RejectsNonFinite(t *testing.T) {
	for _, bad := range [][]float64{
		{1, math.NaN()},
		{math.Inf(1), 0},
		{0, math.Inf(-1)},
	} {
		if _, err := NewVector(bad...); !errors.Is(err, ErrIllegalObjective) {
			t.Errorf("NewVector(%v): err = %v, want ErrIllegalObjective", bad, err)
		}
	}
}

func TestVector_Dominates(t *testing.T) {
	mk := func(vs ...float64) Vector {
		v, err := NewVector(vs...)
		if err != nil {
			t.Fatalf("NewVector(%v): %v", vs, err)
		}
		return v
	}

	cases := []struct {
		name string
		a, b Vector
		want bool
	}{
		{"strictly better", mk(1, 1), mk(2, 2), true},
		{"better in one", mk(1, 2), mk(2, 2), true},
		{"equal", mk(1, 1), mk(1, 1), false},
		{"incomparable", mk(1, 3), mk(2, 2), false},
		{"worse", mk(3, 3), mk(1, 1), false},
		{"length mismatch", mk(1), mk(1, 1), false},
	}
	for _, tc := range cases {
		if got := tc.a.Dominates(tc.b); got != tc.want {
			t.Errorf("%s: %v dominates %v = %v, want %v", tc.name, tc.a, tc.b, got, tc.want)
		}
	}
}
