package scene

import (
	stdmath "math"
	"sort"

	"github.com/chewxy/math32"

	"randscene/math"
)

// Curve is a parametric path over t in [0, 1].
type Curve interface {
	Point(t float32) math.Vec3
	Tangent(t float32) math.Vec3
}

// Sine is the sweep path used by tube geometry: a sine wave along X,
// offset along Z, uniformly scaled.
type Sine struct {
	Scale float32 `yaml:"scale"`
	A     float32 `yaml:"a"`
	B     float32 `yaml:"b"`
	C     float32 `yaml:"c"`
}

func (s Sine) Point(t float32) math.Vec3 {
	return math.Vec3{
		X: t*s.A - 1.5,
		Y: math32.Sin(s.B * math32.Pi * t),
		Z: s.C,
	}.Mul(s.Scale)
}

func (s Sine) Tangent(t float32) math.Vec3 {
	return finiteTangent(s, t)
}

const tangentDelta = 0.0001

// finiteTangent estimates the unit tangent by a central difference clamped
// to the curve's domain.
func finiteTangent(c Curve, t float32) math.Vec3 {
	t1 := t - tangentDelta
	t2 := t + tangentDelta
	if t1 < 0 {
		t1 = 0
	}
	if t2 > 1 {
		t2 = 1
	}
	return c.Point(t2).Sub(c.Point(t1)).Normalize()
}

const arcLengthDivisions = 200

// ArcLength reparameterises a curve by distance travelled so that samples
// taken at evenly spaced u are evenly spaced along the path.
type ArcLength struct {
	curve   Curve
	lengths []float32
}

func NewArcLength(c Curve) *ArcLength {
	lengths := make([]float32, arcLengthDivisions+1)
	last := c.Point(0)
	for i := 1; i <= arcLengthDivisions; i++ {
		p := c.Point(float32(i) / arcLengthDivisions)
		lengths[i] = lengths[i-1] + p.Sub(last).Length()
		last = p
	}
	return &ArcLength{curve: c, lengths: lengths}
}

func (a *ArcLength) Length() float32 {
	return a.lengths[len(a.lengths)-1]
}

// UToT maps a normalised distance u to the curve parameter t.
func (a *ArcLength) UToT(u float32) float32 {
	n := len(a.lengths)
	target := u * a.Length()

	// last index whose accumulated length does not exceed target
	i := sort.Search(n, func(k int) bool { return a.lengths[k] > target }) - 1
	if i < 0 {
		return 0
	}
	if i >= n-1 || a.lengths[i] == target {
		return float32(i) / float32(n-1)
	}

	before := a.lengths[i]
	segment := a.lengths[i+1] - before
	if segment <= 0 {
		return float32(i) / float32(n-1)
	}
	return (float32(i) + (target-before)/segment) / float32(n-1)
}

func (a *ArcLength) PointAt(u float32) math.Vec3 {
	return a.curve.Point(a.UToT(u))
}

func (a *ArcLength) TangentAt(u float32) math.Vec3 {
	return a.curve.Tangent(a.UToT(u))
}

// FrenetFrames holds one orthonormal frame per sample along a curve.
type FrenetFrames struct {
	Tangents  []math.Vec3
	Normals   []math.Vec3
	Binormals []math.Vec3
}

// ComputeFrenetFrames samples segments+1 frames by parallel transport,
// avoiding the flips of the classical Frenet construction. When closed, the
// accumulated twist between the first and last frame is spread evenly.
func ComputeFrenetFrames(c Curve, segments int, closed bool) FrenetFrames {
	path := NewArcLength(c)
	f := FrenetFrames{
		Tangents:  make([]math.Vec3, segments+1),
		Normals:   make([]math.Vec3, segments+1),
		Binormals: make([]math.Vec3, segments+1),
	}

	for i := 0; i <= segments; i++ {
		f.Tangents[i] = path.TangentAt(float32(i) / float32(segments)).Normalize()
	}

	// Seed the first normal from the axis the tangent is least aligned with.
	t0 := f.Tangents[0]
	var smallest float32 = stdmath.MaxFloat32
	var seed math.Vec3
	if tx := math32.Abs(t0.X); tx <= smallest {
		smallest = tx
		seed = math.Vec3Right
	}
	if ty := math32.Abs(t0.Y); ty <= smallest {
		smallest = ty
		seed = math.Vec3Up
	}
	if tz := math32.Abs(t0.Z); tz <= smallest {
		seed = math.Vec3Front
	}
	axis := t0.Cross(seed).Normalize()
	f.Normals[0] = t0.Cross(axis)
	f.Binormals[0] = t0.Cross(f.Normals[0])

	for i := 1; i <= segments; i++ {
		f.Normals[i] = f.Normals[i-1]
		axis := f.Tangents[i-1].Cross(f.Tangents[i])
		if axis.Length() > 1e-7 {
			theta := math32.Acos(clamp(f.Tangents[i-1].Dot(f.Tangents[i]), -1, 1))
			f.Normals[i] = f.Normals[i].ApplyAxisAngle(axis.Normalize(), theta)
		}
		f.Binormals[i] = f.Tangents[i].Cross(f.Normals[i])
	}

	if closed {
		theta := math32.Acos(clamp(f.Normals[0].Dot(f.Normals[segments]), -1, 1)) / float32(segments)
		if f.Tangents[0].Dot(f.Normals[0].Cross(f.Normals[segments])) > 0 {
			theta = -theta
		}
		for i := 1; i <= segments; i++ {
			f.Normals[i] = f.Normals[i].ApplyAxisAngle(f.Tangents[i], theta*float32(i))
			f.Binormals[i] = f.Tangents[i].Cross(f.Normals[i])
		}
	}

	return f
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
