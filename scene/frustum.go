package scene

import "randscene/math"

// Plane is the half-space Normal·p + D >= 0. Normal points inside.
type Plane struct {
	Normal math.Vec3
	D      float32
}

// DistanceTo returns the signed distance from pt to the plane.
func (p Plane) DistanceTo(pt math.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds the six clip planes of a view frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumFromVP extracts normalized clip planes from a view-projection matrix.
//
// Points are transformed as row vectors (see Mat4.TransformPoint), so clip
// component j is the dot product of (p, 1) with column j of the [col][row]
// storage read across the first index: vp[0][j], vp[1][j], vp[2][j], vp[3][j].
func FrustumFromVP(vp math.Mat4) Frustum {
	var c [4][4]float32
	for j := 0; j < 4; j++ {
		c[j] = [4]float32{vp[0][j], vp[1][j], vp[2][j], vp[3][j]}
	}
	x, y, z, w := c[0], c[1], c[2], c[3]

	var f Frustum
	f.Planes[0] = planeOf(w, x, 1)
	f.Planes[1] = planeOf(w, x, -1)
	f.Planes[2] = planeOf(w, y, 1)
	f.Planes[3] = planeOf(w, y, -1)
	f.Planes[4] = planeOf(w, z, 1)
	f.Planes[5] = planeOf(w, z, -1)
	return f
}

func planeOf(w, axis [4]float32, sign float32) Plane {
	n := math.Vec3{X: w[0] + sign*axis[0], Y: w[1] + sign*axis[1], Z: w[2] + sign*axis[2]}
	d := w[3] + sign*axis[3]
	l := n.Length()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: n.Mul(1 / l), D: d / l}
}

// IntersectsFrustum reports false only when the box is entirely outside one
// of the planes (positive-vertex test).
func (box AABB) IntersectsFrustum(f *Frustum) bool {
	for i := range f.Planes {
		p := f.Planes[i]
		pv := box.Max
		if p.Normal.X < 0 {
			pv.X = box.Min.X
		}
		if p.Normal.Y < 0 {
			pv.Y = box.Min.Y
		}
		if p.Normal.Z < 0 {
			pv.Z = box.Min.Z
		}
		if p.DistanceTo(pv) < 0 {
			return false
		}
	}
	return true
}

// WorldAABB transforms the mesh's local bounds by its eight corners.
func WorldAABB(mesh *Mesh, world math.Mat4) AABB {
	mn, mx := mesh.LocalAABB.Min, mesh.LocalAABB.Max
	out := AABB{Min: world.TransformPoint(mn)}
	out.Max = out.Min
	for i := 1; i < 8; i++ {
		corner := mn
		if i&1 != 0 {
			corner.X = mx.X
		}
		if i&2 != 0 {
			corner.Y = mx.Y
		}
		if i&4 != 0 {
			corner.Z = mx.Z
		}
		out.extend(world.TransformPoint(corner))
	}
	return out
}

func (box *AABB) extend(p math.Vec3) {
	if p.X < box.Min.X {
		box.Min.X = p.X
	}
	if p.Y < box.Min.Y {
		box.Min.Y = p.Y
	}
	if p.Z < box.Min.Z {
		box.Min.Z = p.Z
	}
	if p.X > box.Max.X {
		box.Max.X = p.X
	}
	if p.Y > box.Max.Y {
		box.Max.Y = p.Y
	}
	if p.Z > box.Max.Z {
		box.Max.Z = p.Z
	}
}
