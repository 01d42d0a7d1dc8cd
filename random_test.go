package drops

import "testing"

func TestRandDeterministic(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			t.Fatal("equal seeds should produce equal sequences")
		}
	}
}

func TestRandRanges(t *testing.T) {
	r := NewRand(3)
	for i := 0; i < 1000; i++ {
		if v := r.Between(2, 5); v < 2 || v >= 5 {
			t.Fatalf("Between = %v", v)
		}
		if v := r.Signed(); v < -1 || v >= 1 {
			t.Fatalf("Signed = %v", v)
		}
		if v := r.Buffered(100, 2); v < 50 || v >= 100 {
			t.Fatalf("Buffered = %v", v)
		}
		if v := r.CurvingBuffered(100, 0.5, 2); v < 50 || v > 100 {
			t.Fatalf("CurvingBuffered = %v", v)
		}
		if v := r.IntN(4); v < 0 || v >= 4 {
			t.Fatalf("IntN = %v", v)
		}
	}
	if r.IntN(0) != 0 || r.IntN(-2) != 0 {
		t.Error("IntN of a non-positive bound should be 0")
	}
}

func TestCurvingBufferedSkewsLow(t *testing.T) {
	r := NewRand(9)
	const n = 4000
	low := 0
	for i := 0; i < n; i++ {
		if r.CurvingBuffered(100, 0.5, 2) < 75 {
			low++
		}
	}
	// With curve 0.5 the lower half of the range holds about 71% of draws.
	if low < n*6/10 {
		t.Errorf("only %d of %d draws in the lower half", low, n)
	}
}
