package scene

import (
	"github.com/chewxy/math32"

	"randscene/core"
	"randscene/math"
)

// All generators emit counter-clockwise front faces with outward normals.

// CreateBox generates an axis-aligned box centred on the origin.
func CreateBox(width, height, depth float32) *Mesh {
	b := &meshBuilder{}
	// axis indices: 0 = x, 1 = y, 2 = z
	b.plane(2, 1, 0, -1, -1, depth, height, width)
	b.plane(2, 1, 0, 1, -1, depth, height, -width)
	b.plane(0, 2, 1, 1, 1, width, depth, height)
	b.plane(0, 2, 1, 1, -1, width, depth, -height)
	b.plane(0, 1, 2, 1, -1, width, height, depth)
	b.plane(0, 1, 2, -1, -1, width, height, -depth)
	return CreateMeshFromData("Box", b.vertices, b.indices)
}

// CreateSphere generates a UV-sphere. Degenerate triangles at the poles
// are skipped.
func CreateSphere(radius float32, widthSegments, heightSegments int) *Mesh {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	b := &meshBuilder{}
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			p := math.Vec3{
				X: -radius * math32.Cos(u*2*math32.Pi) * math32.Sin(v*math32.Pi),
				Y: radius * math32.Cos(v*math32.Pi),
				Z: radius * math32.Sin(u*2*math32.Pi) * math32.Sin(v*math32.Pi),
			}
			b.vertex(p, p.Normalize(), math.NewVec2(u, 1-v))
		}
	}

	stride := widthSegments + 1
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := iy*stride + ix + 1
			bb := iy*stride + ix
			c := (iy+1)*stride + ix
			d := (iy+1)*stride + ix + 1
			if iy != 0 {
				b.triangle(a, bb, d)
			}
			if iy != heightSegments-1 {
				b.triangle(bb, c, d)
			}
		}
	}
	return CreateMeshFromData("Sphere", b.vertices, b.indices)
}

// CreateTube sweeps a circle of the given radius along path.
func CreateTube(path Curve, tubularSegments int, radius float32, radialSegments int, closed bool) *Mesh {
	if tubularSegments < 1 {
		tubularSegments = 1
	}
	if radialSegments < 3 {
		radialSegments = 3
	}

	frames := ComputeFrenetFrames(path, tubularSegments, closed)
	arc := NewArcLength(path)
	b := &meshBuilder{}

	ring := func(i int) {
		p := arc.PointAt(float32(i) / float32(tubularSegments))
		n, bn := frames.Normals[i], frames.Binormals[i]
		for j := 0; j <= radialSegments; j++ {
			v := float32(j) / float32(radialSegments) * 2 * math32.Pi
			sin := math32.Sin(v)
			cos := -math32.Cos(v)
			normal := n.Mul(cos).Add(bn.Mul(sin)).Normalize()
			b.vertex(p.Add(normal.Mul(radius)), normal, math.Vec2{})
		}
	}
	for i := 0; i < tubularSegments; i++ {
		ring(i)
	}
	// A closed tube repeats the first ring so seams share positions.
	if closed {
		ring(0)
	} else {
		ring(tubularSegments)
	}

	for i := 0; i <= tubularSegments; i++ {
		for j := 0; j <= radialSegments; j++ {
			b.vertices[i*(radialSegments+1)+j].UV = math.Vec2{
				X: float32(i) / float32(tubularSegments),
				Y: float32(j) / float32(radialSegments),
			}
		}
	}

	stride := radialSegments + 1
	for j := 1; j <= tubularSegments; j++ {
		for i := 1; i <= radialSegments; i++ {
			a := stride*(j-1) + (i - 1)
			bb := stride*j + (i - 1)
			c := stride*j + i
			d := stride*(j-1) + i
			b.triangle(a, bb, d)
			b.triangle(bb, c, d)
		}
	}
	return CreateMeshFromData("Tube", b.vertices, b.indices)
}

var tetrahedronCorners = [4]math.Vec3{
	{X: 1, Y: 1, Z: 1},
	{X: -1, Y: -1, Z: 1},
	{X: -1, Y: 1, Z: -1},
	{X: 1, Y: -1, Z: -1},
}

var tetrahedronFaces = [4][3]int{
	{2, 1, 0},
	{0, 3, 2},
	{1, 3, 0},
	{2, 3, 1},
}

// CreateTetrahedron generates a regular tetrahedron inscribed in a sphere
// of the given radius, with flat per-face normals.
func CreateTetrahedron(radius float32) *Mesh {
	b := &meshBuilder{}
	for _, face := range tetrahedronFaces {
		pa := tetrahedronCorners[face[0]].Normalize().Mul(radius)
		pb := tetrahedronCorners[face[1]].Normalize().Mul(radius)
		pc := tetrahedronCorners[face[2]].Normalize().Mul(radius)
		normal := pc.Sub(pb).Cross(pa.Sub(pb)).Normalize()

		base := len(b.vertices)
		b.vertex(pa, normal, sphericalUV(pa))
		b.vertex(pb, normal, sphericalUV(pb))
		b.vertex(pc, normal, sphericalUV(pc))
		b.triangle(base, base+1, base+2)
	}
	return CreateMeshFromData("Tetrahedron", b.vertices, b.indices)
}

// CreateTorus generates a torus in the XY plane. arc limits the sweep of
// the ring around Z; less than 2π leaves the ends open.
func CreateTorus(radius, tube float32, radialSegments, tubularSegments int, arc float32) *Mesh {
	if radialSegments < 3 {
		radialSegments = 3
	}
	if tubularSegments < 3 {
		tubularSegments = 3
	}

	b := &meshBuilder{}
	for j := 0; j <= radialSegments; j++ {
		v := float32(j) / float32(radialSegments) * 2 * math32.Pi
		for i := 0; i <= tubularSegments; i++ {
			u := float32(i) / float32(tubularSegments) * arc
			p := math.Vec3{
				X: (radius + tube*math32.Cos(v)) * math32.Cos(u),
				Y: (radius + tube*math32.Cos(v)) * math32.Sin(u),
				Z: tube * math32.Sin(v),
			}
			center := math.Vec3{X: radius * math32.Cos(u), Y: radius * math32.Sin(u)}
			b.vertex(p, p.Sub(center).Normalize(), math.Vec2{
				X: float32(i) / float32(tubularSegments),
				Y: float32(j) / float32(radialSegments),
			})
		}
	}

	stride := tubularSegments + 1
	for j := 1; j <= radialSegments; j++ {
		for i := 1; i <= tubularSegments; i++ {
			a := stride*j + i - 1
			bb := stride*(j-1) + i - 1
			c := stride*(j-1) + i
			d := stride*j + i
			b.triangle(a, bb, d)
			b.triangle(bb, c, d)
		}
	}
	return CreateMeshFromData("Torus", b.vertices, b.indices)
}

// CreateCylinder generates a capped cylinder (or truncated cone) along Y.
func CreateCylinder(radiusTop, radiusBottom, height float32, radialSegments int) *Mesh {
	if radialSegments < 3 {
		radialSegments = 3
	}

	b := &meshBuilder{}
	halfHeight := height / 2
	slope := (radiusBottom - radiusTop) / height

	// torso: two rings, top (v = 0) then bottom (v = 1)
	for y := 0; y <= 1; y++ {
		v := float32(y)
		r := v*(radiusBottom-radiusTop) + radiusTop
		for x := 0; x <= radialSegments; x++ {
			u := float32(x) / float32(radialSegments)
			theta := u * 2 * math32.Pi
			sin, cos := math32.Sin(theta), math32.Cos(theta)
			b.vertex(
				math.Vec3{X: r * sin, Y: -v*height + halfHeight, Z: r * cos},
				math.Vec3{X: sin, Y: slope, Z: cos}.Normalize(),
				math.NewVec2(u, 1-v),
			)
		}
	}
	stride := radialSegments + 1
	for x := 0; x < radialSegments; x++ {
		a := x
		bb := stride + x
		c := stride + x + 1
		d := x + 1
		b.triangle(a, bb, d)
		b.triangle(bb, c, d)
	}

	b.cap(radiusTop, halfHeight, radialSegments, true)
	b.cap(radiusBottom, halfHeight, radialSegments, false)
	return CreateMeshFromData("Cylinder", b.vertices, b.indices)
}

type meshBuilder struct {
	vertices []core.Vertex
	indices  []uint32
}

func (b *meshBuilder) vertex(p, n math.Vec3, uv math.Vec2) {
	b.vertices = append(b.vertices, core.Vertex{Position: p, Normal: n, UV: uv})
}

func (b *meshBuilder) triangle(i0, i1, i2 int) {
	b.indices = append(b.indices, uint32(i0), uint32(i1), uint32(i2))
}

// plane emits one box face as a quad. u, v and w index the axes spanning
// the face and its normal; a negative depth flips the face to -w.
func (b *meshBuilder) plane(u, v, w int, udir, vdir, width, height, depth float32) {
	base := len(b.vertices)
	normalSign := float32(1)
	if depth < 0 {
		normalSign = -1
	}
	for iy := 0; iy <= 1; iy++ {
		y := float32(iy)*height - height/2
		for ix := 0; ix <= 1; ix++ {
			x := float32(ix)*width - width/2
			var p, n [3]float32
			p[u] = x * udir
			p[v] = y * vdir
			p[w] = depth / 2
			n[w] = normalSign
			b.vertex(
				math.Vec3{X: p[0], Y: p[1], Z: p[2]},
				math.Vec3{X: n[0], Y: n[1], Z: n[2]},
				math.NewVec2(float32(ix), 1-float32(iy)),
			)
		}
	}
	a := base
	bb := base + 2
	c := base + 3
	d := base + 1
	b.triangle(a, bb, d)
	b.triangle(bb, c, d)
}

func (b *meshBuilder) cap(radius, halfHeight float32, radialSegments int, top bool) {
	sign := float32(-1)
	if top {
		sign = 1
	}
	normal := math.Vec3{Y: sign}

	centerStart := len(b.vertices)
	for x := 1; x <= radialSegments; x++ {
		b.vertex(math.Vec3{Y: halfHeight * sign}, normal, math.NewVec2(0.5, 0.5))
	}
	centerEnd := len(b.vertices)

	for x := 0; x <= radialSegments; x++ {
		theta := float32(x) / float32(radialSegments) * 2 * math32.Pi
		sin, cos := math32.Sin(theta), math32.Cos(theta)
		b.vertex(
			math.Vec3{X: radius * sin, Y: halfHeight * sign, Z: radius * cos},
			normal,
			math.NewVec2(cos*0.5+0.5, sin*0.5*sign+0.5),
		)
	}

	for x := 0; x < radialSegments; x++ {
		c := centerStart + x
		i := centerEnd + x
		if top {
			b.triangle(i, i+1, c)
		} else {
			b.triangle(i+1, i, c)
		}
	}
}

func sphericalUV(p math.Vec3) math.Vec2 {
	n := p.Normalize()
	return math.Vec2{
		X: math32.Atan2(n.Z, -n.X)/(2*math32.Pi) + 0.5,
		Y: math32.Asin(clamp(n.Y, -1, 1))/math32.Pi + 0.5,
	}
}
