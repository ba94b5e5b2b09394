package math

import (
	"math"
	"testing"
)

func approxVec(a, b Vec3, tol float64) bool {
	return math.Abs(float64(a.X-b.X)) <= tol &&
		math.Abs(float64(a.Y-b.Y)) <= tol &&
		math.Abs(float64(a.Z-b.Z)) <= tol
}

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	if got := v1.Add(v2); got != NewVec3(5, 7, 9) {
		t.Errorf("Add: expected (5,7,9), got %v", got)
	}
	if got := v2.Sub(v1); got != NewVec3(3, 3, 3) {
		t.Errorf("Sub: expected (3,3,3), got %v", got)
	}
	if got := v1.Mul(2); got != NewVec3(2, 4, 6) {
		t.Errorf("Mul: expected (2,4,6), got %v", got)
	}
	if dot := v1.Dot(v2); dot != 32 {
		t.Errorf("Dot: expected 32, got %v", dot)
	}
	if cross := Vec3Right.Cross(Vec3Up); cross != Vec3Front {
		t.Errorf("Cross: expected %v, got %v", Vec3Front, cross)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := NewVec3(3, 0, 4).Normalize()
	if !approxVec(n, NewVec3(0.6, 0, 0.8), 1e-6) {
		t.Errorf("Normalize: expected (0.6,0,0.8), got %v", n)
	}
	if zero := Vec3Zero.Normalize(); zero != Vec3Zero {
		t.Errorf("Normalize of zero vector should stay zero, got %v", zero)
	}
}

func TestApplyAxisAngle(t *testing.T) {
	got := Vec3Right.ApplyAxisAngle(Vec3Up, float32(math.Pi/2))
	if !approxVec(got, NewVec3(0, 0, -1), 1e-5) {
		t.Errorf("ApplyAxisAngle: expected (0,0,-1), got %v", got)
	}
}

func TestMat4Translation(t *testing.T) {
	m := Mat4Translation(NewVec3(1, 2, 3))
	if m[3][0] != 1 || m[3][1] != 2 || m[3][2] != 3 {
		t.Errorf("Translation: expected (1,2,3), got (%v,%v,%v)", m[3][0], m[3][1], m[3][2])
	}
	if got := m.TransformPoint(Vec3Zero); got != NewVec3(1, 2, 3) {
		t.Errorf("TransformPoint: expected (1,2,3), got %v", got)
	}
}

func TestQuaternionFromEuler(t *testing.T) {
	q := QuaternionFromEuler(NewVec3(0, float32(math.Pi/2), 0))
	if got := q.RotateVector(Vec3Right); !approxVec(got, NewVec3(0, 0, -1), 1e-5) {
		t.Errorf("yaw 90: expected (0,0,-1), got %v", got)
	}

	q = QuaternionFromEuler(NewVec3(float32(math.Pi/2), 0, 0))
	if got := q.RotateVector(Vec3Up); !approxVec(got, NewVec3(0, 0, 1), 1e-5) {
		t.Errorf("pitch 90: expected (0,0,1), got %v", got)
	}

	// Angles far outside one turn still produce a unit quaternion.
	q = QuaternionFromEuler(NewVec3(-19.5, 17.25, 12))
	l := math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W))
	if math.Abs(l-1) > 1e-5 {
		t.Errorf("expected unit quaternion, got length %v", l)
	}
}

func TestQuaternionMatrixAgreesWithRotateVector(t *testing.T) {
	q := QuaternionFromEuler(NewVec3(0.3, -1.2, 2.5))
	v := NewVec3(1, 2, 3)
	if a, b := q.RotateVector(v), q.ToMat4().TransformPoint(v); !approxVec(a, b, 1e-4) {
		t.Errorf("ToMat4 and RotateVector disagree: %v vs %v", a, b)
	}
}

func TestMat4TRS(t *testing.T) {
	m := Mat4TRS(NewVec3(1, 2, 3), QuaternionIdentity(), Splat(10))
	if got := m.TransformPoint(Vec3Right); !approxVec(got, NewVec3(11, 2, 3), 1e-5) {
		t.Errorf("TRS: expected (11,2,3), got %v", got)
	}

	m = Mat4TRS(NewVec3(1, 2, 3), QuaternionFromEuler(NewVec3(0, float32(math.Pi/2), 0)), Splat(10))
	if got := m.TransformPoint(Vec3Right); !approxVec(got, NewVec3(1, 2, -7), 1e-4) {
		t.Errorf("TRS with yaw: expected (1,2,-7), got %v", got)
	}
}

func TestMat4LookAt(t *testing.T) {
	eye := NewVec3(0, 0, 2000)
	m := Mat4LookAt(eye, Vec3Zero, Vec3Up)

	if got := m.TransformPoint(eye); !approxVec(got, Vec3Zero, 1e-3) {
		t.Errorf("LookAt: expected eye at origin, got %v", got)
	}
	// The target sits straight ahead on -Z in view space.
	if got := m.TransformPoint(Vec3Zero); !approxVec(got, NewVec3(0, 0, -2000), 1e-3) {
		t.Errorf("LookAt: expected target at (0,0,-2000), got %v", got)
	}
}

func TestMat4Perspective(t *testing.T) {
	m := Mat4Perspective(float32(50*math.Pi/180), 16.0/9.0, 1, 5000)

	near := m.TransformPoint(NewVec3(0, 0, -1))
	far := m.TransformPoint(NewVec3(0, 0, -5000))
	if math.Abs(float64(near.Z+1)) > 1e-4 {
		t.Errorf("near plane should map to NDC -1, got %v", near.Z)
	}
	if math.Abs(float64(far.Z-1)) > 1e-3 {
		t.Errorf("far plane should map to NDC 1, got %v", far.Z)
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4Identity()
	m2 := Mat4Identity()

	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}
