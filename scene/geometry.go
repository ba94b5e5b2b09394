package scene

import "fmt"

// ShapeKind enumerates the primitive families the generator can produce.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
	ShapeTube
	ShapeTetrahedron
	ShapeTorus
	ShapeCylinder
)

// ShapeKinds lists every kind in selection order.
var ShapeKinds = []ShapeKind{
	ShapeBox,
	ShapeSphere,
	ShapeTube,
	ShapeTetrahedron,
	ShapeTorus,
	ShapeCylinder,
}

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	case ShapeTube:
		return "tube"
	case ShapeTetrahedron:
		return "tetrahedron"
	case ShapeTorus:
		return "torus"
	case ShapeCylinder:
		return "cylinder"
	}
	return fmt.Sprintf("ShapeKind(%d)", int(k))
}

func (k ShapeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ShapeKind) UnmarshalText(text []byte) error {
	for _, kind := range ShapeKinds {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown shape kind %q", text)
}

// GeometryParams is implemented by the per-kind parameter structs.
type GeometryParams interface {
	Kind() ShapeKind
}

type BoxParams struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
	Depth  float32 `yaml:"depth"`
}

type SphereParams struct {
	Radius         float32 `yaml:"radius"`
	WidthSegments  int     `yaml:"width_segments"`
	HeightSegments int     `yaml:"height_segments"`
}

type TubeParams struct {
	Path            Sine    `yaml:"path"`
	TubularSegments int     `yaml:"tubular_segments"`
	Radius          float32 `yaml:"radius"`
	RadialSegments  int     `yaml:"radial_segments"`
	Closed          bool    `yaml:"closed"`
}

type TetrahedronParams struct {
	Radius float32 `yaml:"radius"`
}

type TorusParams struct {
	Radius          float32 `yaml:"radius"`
	Tube            float32 `yaml:"tube"`
	RadialSegments  int     `yaml:"radial_segments"`
	TubularSegments int     `yaml:"tubular_segments"`
	Arc             float32 `yaml:"arc"`
}

type CylinderParams struct {
	RadiusTop      float32 `yaml:"radius_top"`
	RadiusBottom   float32 `yaml:"radius_bottom"`
	Height         float32 `yaml:"height"`
	RadialSegments int     `yaml:"radial_segments"`
}

func (BoxParams) Kind() ShapeKind         { return ShapeBox }
func (SphereParams) Kind() ShapeKind      { return ShapeSphere }
func (TubeParams) Kind() ShapeKind        { return ShapeTube }
func (TetrahedronParams) Kind() ShapeKind { return ShapeTetrahedron }
func (TorusParams) Kind() ShapeKind       { return ShapeTorus }
func (CylinderParams) Kind() ShapeKind    { return ShapeCylinder }

// Geometry is an immutable triangle mesh together with the parameters it
// was built from.
type Geometry struct {
	Params GeometryParams
	Mesh   *Mesh
}

func (g *Geometry) Kind() ShapeKind {
	return g.Params.Kind()
}

// NewGeometry builds the mesh described by params.
func NewGeometry(params GeometryParams) (*Geometry, error) {
	var mesh *Mesh
	switch p := params.(type) {
	case BoxParams:
		mesh = CreateBox(p.Width, p.Height, p.Depth)
	case SphereParams:
		mesh = CreateSphere(p.Radius, p.WidthSegments, p.HeightSegments)
	case TubeParams:
		mesh = CreateTube(p.Path, p.TubularSegments, p.Radius, p.RadialSegments, p.Closed)
	case TetrahedronParams:
		mesh = CreateTetrahedron(p.Radius)
	case TorusParams:
		mesh = CreateTorus(p.Radius, p.Tube, p.RadialSegments, p.TubularSegments, p.Arc)
	case CylinderParams:
		mesh = CreateCylinder(p.RadiusTop, p.RadiusBottom, p.Height, p.RadialSegments)
	default:
		return nil, fmt.Errorf("unsupported geometry params %T", params)
	}
	return &Geometry{Params: params, Mesh: mesh}, nil
}
