package scene

import (
	"testing"

	"github.com/chewxy/math32"

	"randscene/math"
)

func checkMesh(t *testing.T, m *Mesh) {
	t.Helper()
	if len(m.Vertices) == 0 || len(m.Indices) == 0 {
		t.Fatalf("%s: empty mesh", m.Name)
	}
	if len(m.Indices)%3 != 0 {
		t.Fatalf("%s: %d indices is not a triangle list", m.Name, len(m.Indices))
	}
	if m.IndexCount != uint32(len(m.Indices)) {
		t.Errorf("%s: IndexCount %d != %d", m.Name, m.IndexCount, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Fatalf("%s: index %d = %d out of range (%d vertices)", m.Name, i, idx, len(m.Vertices))
		}
	}
	for i, v := range m.Vertices {
		if !near(v.Normal.Length(), 1, 1e-3) {
			t.Fatalf("%s: vertex %d normal %v not unit", m.Name, i, v.Normal)
		}
	}
}

// checkOutward asserts every triangle of a convex mesh centred on the
// origin winds counter-clockwise when seen from outside.
func checkOutward(t *testing.T, m *Mesh) {
	t.Helper()
	for i := 0; i < len(m.Indices); i += 3 {
		a := m.Vertices[m.Indices[i]].Position
		b := m.Vertices[m.Indices[i+1]].Position
		c := m.Vertices[m.Indices[i+2]].Position
		n := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Mul(1.0 / 3)
		if n.Dot(centroid) <= 0 {
			t.Fatalf("%s: triangle %d winds inward", m.Name, i/3)
		}
	}
}

func TestCreateBox(t *testing.T) {
	m := CreateBox(4, 6, 8)
	checkMesh(t, m)
	checkOutward(t, m)

	if len(m.Vertices) != 24 || m.TriangleCount() != 12 {
		t.Errorf("expected 24 vertices / 12 triangles, got %d / %d", len(m.Vertices), m.TriangleCount())
	}
	want := AABB{Min: math.NewVec3(-2, -3, -4), Max: math.NewVec3(2, 3, 4)}
	if m.LocalAABB != want {
		t.Errorf("AABB: expected %v, got %v", want, m.LocalAABB)
	}
}

func TestCreateSphere(t *testing.T) {
	m := CreateSphere(7, 16, 12)
	checkMesh(t, m)
	checkOutward(t, m)

	if got, want := len(m.Vertices), 17*13; got != want {
		t.Errorf("expected %d vertices, got %d", want, got)
	}
	// Poles contribute one triangle per segment instead of two.
	if got, want := m.TriangleCount(), 2*16*(12-1); got != want {
		t.Errorf("expected %d triangles, got %d", want, got)
	}
	for i, v := range m.Vertices {
		if !near(v.Position.Length(), 7, 1e-3) {
			t.Fatalf("vertex %d at distance %v, want 7", i, v.Position.Length())
		}
	}
}

func TestCreateTetrahedron(t *testing.T) {
	m := CreateTetrahedron(5)
	checkMesh(t, m)
	checkOutward(t, m)

	if len(m.Vertices) != 12 || m.TriangleCount() != 4 {
		t.Errorf("expected 12 vertices / 4 triangles, got %d / %d", len(m.Vertices), m.TriangleCount())
	}
	for i, v := range m.Vertices {
		if !near(v.Position.Length(), 5, 1e-4) {
			t.Fatalf("vertex %d at distance %v, want 5", i, v.Position.Length())
		}
	}
	// flat shading: the three corners of a face share one normal
	for f := 0; f < 4; f++ {
		n0 := m.Vertices[3*f].Normal
		if m.Vertices[3*f+1].Normal != n0 || m.Vertices[3*f+2].Normal != n0 {
			t.Errorf("face %d normals differ", f)
		}
	}
}

func TestCreateCylinder(t *testing.T) {
	m := CreateCylinder(5, 12, 20, 16)
	checkMesh(t, m)
	checkOutward(t, m)

	if got, want := m.TriangleCount(), 4*16; got != want {
		t.Errorf("expected %d triangles, got %d", want, got)
	}
	if !near(m.LocalAABB.Max.Y, 10, 1e-5) || !near(m.LocalAABB.Min.Y, -10, 1e-5) {
		t.Errorf("expected height span [-10,10], got [%v,%v]", m.LocalAABB.Min.Y, m.LocalAABB.Max.Y)
	}
}

func TestCreateTorus(t *testing.T) {
	m := CreateTorus(15, 4, 12, 18, 2*math32.Pi)
	checkMesh(t, m)

	if got, want := len(m.Vertices), 13*19; got != want {
		t.Errorf("expected %d vertices, got %d", want, got)
	}
	if got, want := m.TriangleCount(), 2*12*18; got != want {
		t.Errorf("expected %d triangles, got %d", want, got)
	}
	if !near(m.LocalAABB.Max.X, 19, 1e-3) || !near(m.LocalAABB.Max.Z, 4, 1e-3) {
		t.Errorf("unexpected extent %v", m.LocalAABB)
	}
}

func TestCreateTorusPartialArc(t *testing.T) {
	m := CreateTorus(10, 2, 12, 12, math32.Pi/2)
	checkMesh(t, m)
	// a quarter ring stays in the +X/+Y quadrant, up to the tube radius
	if m.LocalAABB.Min.X < -2-1e-3 || m.LocalAABB.Min.Y < -2-1e-3 {
		t.Errorf("quarter torus extends past its arc: %v", m.LocalAABB)
	}
}

func TestCreateTube(t *testing.T) {
	path := Sine{Scale: 5, A: 4, B: 3, C: 2}
	m := CreateTube(path, 40, 2, 20, true)
	checkMesh(t, m)

	if got, want := len(m.Vertices), 41*21; got != want {
		t.Errorf("expected %d vertices, got %d", want, got)
	}
	if got, want := m.TriangleCount(), 2*40*20; got != want {
		t.Errorf("expected %d triangles, got %d", want, got)
	}

	arc := NewArcLength(path)
	for i := 0; i < 40; i++ {
		center := arc.PointAt(float32(i) / 40)
		for j := 0; j <= 20; j++ {
			v := m.Vertices[i*21+j].Position
			if d := v.Sub(center).Length(); !near(d, 2, 1e-2) {
				t.Fatalf("ring %d vertex %d at %v from path, want 2", i, j, d)
			}
		}
	}
	// closed: the last ring repeats the first
	for j := 0; j <= 20; j++ {
		if !nearVec(m.Vertices[j].Position, m.Vertices[40*21+j].Position, 1e-4) {
			t.Fatalf("closed tube seam differs at %d", j)
		}
	}
}

func TestNewGeometryKinds(t *testing.T) {
	cases := []GeometryParams{
		BoxParams{Width: 1, Height: 2, Depth: 3},
		SphereParams{Radius: 3, WidthSegments: 12, HeightSegments: 12},
		TubeParams{Path: Sine{Scale: 2, A: 3, B: 1, C: 2}, TubularSegments: 40, Radius: 1, RadialSegments: 20, Closed: true},
		TetrahedronParams{Radius: 3},
		TorusParams{Radius: 10, Tube: 12, RadialSegments: 12, TubularSegments: 12, Arc: 3},
		CylinderParams{RadiusTop: 5, RadiusBottom: 6, Height: 20, RadialSegments: 12},
	}
	for i, p := range cases {
		g, err := NewGeometry(p)
		if err != nil {
			t.Fatalf("%T: %v", p, err)
		}
		if g.Kind() != ShapeKinds[i] {
			t.Errorf("%T: kind %v, want %v", p, g.Kind(), ShapeKinds[i])
		}
		checkMesh(t, g.Mesh)
	}
}

func TestShapeKindText(t *testing.T) {
	for _, k := range ShapeKinds {
		text, _ := k.MarshalText()
		var back ShapeKind
		if err := back.UnmarshalText(text); err != nil || back != k {
			t.Errorf("%v: round trip gave %v, %v", k, back, err)
		}
	}
	var k ShapeKind
	if err := k.UnmarshalText([]byte("dodecahedron")); err == nil {
		t.Error("expected error for unknown kind")
	}
}
