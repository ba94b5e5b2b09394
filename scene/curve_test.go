package scene

import (
	stdmath "math"
	"testing"

	"randscene/math"
)

func near(a, b, tol float32) bool {
	return stdmath.Abs(float64(a-b)) <= float64(tol)
}

func nearVec(a, b math.Vec3, tol float32) bool {
	return near(a.X, b.X, tol) && near(a.Y, b.Y, tol) && near(a.Z, b.Z, tol)
}

func TestSinePoint(t *testing.T) {
	s := Sine{Scale: 4, A: 5, B: 3, C: 2.5}

	p := s.Point(0)
	if !nearVec(p, math.NewVec3(-6, 0, 10), 1e-5) {
		t.Errorf("Point(0): expected (-6,0,10), got %v", p)
	}

	for _, tt := range []float32{0.1, 0.37, 0.8, 1} {
		p := s.Point(tt)
		if want := s.Scale * (tt*s.A - 1.5); !near(p.X, want, 1e-4) {
			t.Errorf("Point(%v).X = %v, want %v", tt, p.X, want)
		}
		if want := s.Scale * s.C; !near(p.Z, want, 1e-5) {
			t.Errorf("Point(%v).Z = %v, want %v", tt, p.Z, want)
		}
	}
}

func TestSineStartsOnAxis(t *testing.T) {
	for _, b := range []float32{0, 1.5, 7.9} {
		if y := (Sine{Scale: 9, A: 3, B: b, C: 2}).Point(0).Y; y != 0 {
			t.Errorf("B=%v: y(0) = %v, want 0", b, y)
		}
	}
}

func TestSinePeriodicity(t *testing.T) {
	s := Sine{Scale: 2, A: 4, B: 4, C: 3}
	period := 2 / s.B
	for _, tt := range []float32{0, 0.05, 0.2, 0.33} {
		a, b := s.Point(tt).Y, s.Point(tt+period).Y
		if !near(a, b, 1e-4) {
			t.Errorf("y(%v) = %v, y(%v) = %v", tt, a, tt+period, b)
		}
	}
}

func TestSineTangentIsUnit(t *testing.T) {
	s := Sine{Scale: 6, A: 7, B: 5, C: 4}
	for _, tt := range []float32{0, 0.25, 0.5, 1} {
		if l := s.Tangent(tt).Length(); !near(l, 1, 1e-3) {
			t.Errorf("|Tangent(%v)| = %v, want 1", tt, l)
		}
	}
}

func TestArcLengthStraightLine(t *testing.T) {
	// B = 0 flattens the wave into a segment of length Scale*A.
	arc := NewArcLength(Sine{Scale: 2, A: 5, B: 0, C: 3})
	if l := arc.Length(); !near(l, 10, 1e-3) {
		t.Errorf("Length() = %v, want 10", l)
	}
	for _, u := range []float32{0, 0.25, 0.5, 1} {
		if got := arc.UToT(u); !near(got, u, 1e-4) {
			t.Errorf("UToT(%v) = %v on a straight line", u, got)
		}
	}
}

func TestArcLengthMonotonic(t *testing.T) {
	arc := NewArcLength(Sine{Scale: 5, A: 3, B: 8, C: 2})
	prev := float32(-1)
	for i := 0; i <= 50; i++ {
		tt := arc.UToT(float32(i) / 50)
		if tt < prev {
			t.Fatalf("UToT not monotonic at step %d: %v < %v", i, tt, prev)
		}
		prev = tt
	}
	if prev != 1 {
		t.Errorf("UToT(1) = %v, want 1", prev)
	}
}

func TestFrenetFramesOrthonormal(t *testing.T) {
	for _, closed := range []bool{false, true} {
		f := ComputeFrenetFrames(Sine{Scale: 5, A: 6, B: 4, C: 3}, 60, closed)
		if len(f.Tangents) != 61 || len(f.Normals) != 61 || len(f.Binormals) != 61 {
			t.Fatalf("expected 61 frames, got %d/%d/%d", len(f.Tangents), len(f.Normals), len(f.Binormals))
		}
		for i := range f.Tangents {
			tan, n, b := f.Tangents[i], f.Normals[i], f.Binormals[i]
			if !near(tan.Length(), 1, 1e-3) || !near(n.Length(), 1, 1e-3) || !near(b.Length(), 1, 1e-3) {
				t.Fatalf("closed=%v frame %d not unit: %v %v %v", closed, i, tan, n, b)
			}
			if !near(tan.Dot(n), 0, 1e-3) || !near(tan.Dot(b), 0, 1e-3) || !near(n.Dot(b), 0, 1e-3) {
				t.Fatalf("closed=%v frame %d not orthogonal: %v %v %v", closed, i, tan, n, b)
			}
		}
	}
}
