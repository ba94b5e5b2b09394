package generator

import (
	"math"

	"randscene/random"
	"randscene/scene"
)

// RandomGeometry picks a shape kind uniformly and builds it with random
// parameters.
func RandomGeometry(src *random.Source) (*scene.Geometry, error) {
	return RandomGeometryOf(src, random.Choose(src, scene.ShapeKinds))
}

// RandomGeometryOf builds a shape of the given kind. Parameters are drawn
// in declaration order so a seed always yields the same shape.
func RandomGeometryOf(src *random.Source, kind scene.ShapeKind) (*scene.Geometry, error) {
	return scene.NewGeometry(RandomParams(src, kind))
}

// RandomParams draws the parameters for kind. Unknown kinds yield nil.
func RandomParams(src *random.Source, kind scene.ShapeKind) scene.GeometryParams {
	switch kind {
	case scene.ShapeBox:
		return scene.BoxParams{
			Width:  src.Float32(1, 30),
			Height: src.Float32(1, 30),
			Depth:  src.Float32(1, 30),
		}
	case scene.ShapeSphere:
		return scene.SphereParams{
			Radius:         src.Float32(1, 20),
			WidthSegments:  src.Int(12, 50),
			HeightSegments: src.Int(12, 50),
		}
	case scene.ShapeTube:
		path := scene.Sine{
			Scale: src.Float32(2, 10),
			A:     src.Float32(3, 8),
			B:     src.Float32(0, 8),
			C:     src.Float32(2, 8),
		}
		return scene.TubeParams{
			Path:            path,
			TubularSegments: src.Int(40, 80),
			Radius:          src.Float32(1, 4),
			RadialSegments:  src.Int(20, 40),
			Closed:          true,
		}
	case scene.ShapeTetrahedron:
		return scene.TetrahedronParams{Radius: src.Float32(3, 14)}
	case scene.ShapeTorus:
		return scene.TorusParams{
			Radius:          src.Float32(10, 20),
			Tube:            src.Float32(10, 20),
			RadialSegments:  src.Int(12, 20),
			TubularSegments: src.Int(12, 20),
			Arc:             src.Float32(math.Pi/2, 2*math.Pi),
		}
	case scene.ShapeCylinder:
		return scene.CylinderParams{
			RadiusTop:      src.Float32(5, 12),
			RadiusBottom:   src.Float32(5, 12),
			Height:         src.Float32(20, 40),
			RadialSegments: src.Int(12, 36),
		}
	}
	return nil
}
