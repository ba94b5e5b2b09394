package random

import (
	"math"
	"testing"
)

func TestFloatRange(t *testing.T) {
	src := New(1)
	for i := 0; i < 10000; i++ {
		v := src.Float(1, 30)
		if v < 1 || v >= 30 {
			t.Fatalf("Float(1, 30) = %v, out of range", v)
		}
	}
}

func TestFloatMean(t *testing.T) {
	src := New(2)
	const n = 200000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += src.Float(0, 10)
	}
	if mean := sum / n; math.Abs(mean-5) > 0.05 {
		t.Errorf("expected mean near 5, got %v", mean)
	}
}

func TestFloatDegenerate(t *testing.T) {
	src := New(3)
	if v := src.Float(4, 4); v != 4 {
		t.Errorf("Float(4, 4) = %v, want 4", v)
	}
}

func TestIntValues(t *testing.T) {
	src := New(4)
	seen := map[int]int{}
	for i := 0; i < 10000; i++ {
		v := src.Int(0, 3)
		if v < 0 || v > 2 {
			t.Fatalf("Int(0, 3) = %d, out of range", v)
		}
		seen[v]++
	}
	if len(seen) != 3 {
		t.Errorf("expected all of {0,1,2}, saw %v", seen)
	}
}

func TestIntNegativeRangeFloors(t *testing.T) {
	src := New(5)
	for i := 0; i < 10000; i++ {
		v := src.Int(-20, 20)
		if v < -20 || v >= 20 {
			t.Fatalf("Int(-20, 20) = %d, out of range", v)
		}
	}
}

func TestChooseUniform(t *testing.T) {
	src := New(6)
	options := []string{"a", "b", "c", "d", "e"}
	counts := map[string]int{}
	const n = 50000
	for i := 0; i < n; i++ {
		counts[Choose(src, options)]++
	}

	expected := float64(n) / float64(len(options))
	chi := 0.0
	for _, o := range options {
		d := float64(counts[o]) - expected
		chi += d * d / expected
	}
	// 4 degrees of freedom, p = 0.001
	if chi > 18.47 {
		t.Errorf("chi-square %v too large, counts %v", chi, counts)
	}
}

func TestChooseSingle(t *testing.T) {
	src := New(7)
	for i := 0; i < 10; i++ {
		if v := Choose(src, []int{42}); v != 42 {
			t.Fatalf("expected 42, got %d", v)
		}
	}
}

func TestChooseEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on empty options")
		}
	}()
	Choose(New(8), []int{})
}

func TestSeedDeterminism(t *testing.T) {
	a, b := New(99), New(99)
	for i := 0; i < 100; i++ {
		if x, y := a.Float(0, 1), b.Float(0, 1); x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
	}
	if a.Seed() != 99 {
		t.Errorf("Seed() = %d, want 99", a.Seed())
	}
}

func TestFloat32StaysBelowMax(t *testing.T) {
	for _, max := range []float64{1, 4, 14, 20, 30, 40} {
		below := math.Nextafter(max, 0)
		if got := narrow(below, 0, max); got >= float32(max) {
			t.Errorf("narrow(%v) = %v, want below %v", below, got, max)
		}
	}
	if got := narrow(4, 4, 4); got != 4 {
		t.Errorf("narrow(4, 4, 4) = %v, want 4", got)
	}

	src := New(9)
	for i := 0; i < 10000; i++ {
		if v := src.Float32(1, 30); v < 1 || v >= 30 {
			t.Fatalf("Float32(1, 30) = %v, out of range", v)
		}
	}
}
