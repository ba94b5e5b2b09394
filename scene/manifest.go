package scene

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"randscene/core"
	"randscene/math"
)

const manifestVersion = 1

// Manifest is the YAML description of a generated scene. It records enough
// to inspect a session or rebuild its geometry without re-running the
// random draws.
type Manifest struct {
	Version    int              `yaml:"version"`
	Seed       uint64           `yaml:"seed"`
	Texture    string           `yaml:"texture"`
	Background hexColor         `yaml:"background"`
	Camera     *cameraManifest  `yaml:"camera,omitempty"`
	Lights     []lightManifest  `yaml:"lights"`
	Objects    []objectManifest `yaml:"objects"`
}

type hexColor core.Color

func (c hexColor) MarshalYAML() (interface{}, error) {
	return core.Color(c).String(), nil
}

func (c *hexColor) UnmarshalYAML(node *yaml.Node) error {
	v, err := strconv.ParseUint(strings.TrimPrefix(node.Value, "#"), 16, 32)
	if err != nil {
		return fmt.Errorf("color %q: %w", node.Value, err)
	}
	*c = hexColor(core.ColorFromHex(uint32(v)))
	return nil
}

type vec3Manifest [3]float32

func toVec3Manifest(v math.Vec3) vec3Manifest { return vec3Manifest(v.Array()) }
func (v vec3Manifest) vec3() math.Vec3        { return math.NewVec3(v[0], v[1], v[2]) }

type cameraManifest struct {
	Position vec3Manifest `yaml:"position,flow"`
	Target   vec3Manifest `yaml:"target,flow"`
	FOV      float32      `yaml:"fov"`
	Aspect   float32      `yaml:"aspect"`
	Near     float32      `yaml:"near"`
	Far      float32      `yaml:"far"`
}

type lightManifest struct {
	Type      LightType    `yaml:"type"`
	Color     hexColor     `yaml:"color"`
	Intensity float32      `yaml:"intensity"`
	Position  vec3Manifest `yaml:"position,flow"`
}

type materialManifest struct {
	Color           hexColor  `yaml:"color"`
	EnvMap          string    `yaml:"env_map,omitempty"`
	Combine         CombineOp `yaml:"combine"`
	Reflectivity    float32   `yaml:"reflectivity"`
	RefractionRatio float32   `yaml:"refraction_ratio"`
}

type objectManifest struct {
	Name        string             `yaml:"name"`
	Kind        ShapeKind          `yaml:"kind"`
	Box         *BoxParams         `yaml:"box,omitempty"`
	Sphere      *SphereParams      `yaml:"sphere,omitempty"`
	Tube        *TubeParams        `yaml:"tube,omitempty"`
	Tetrahedron *TetrahedronParams `yaml:"tetrahedron,omitempty"`
	Torus       *TorusParams       `yaml:"torus,omitempty"`
	Cylinder    *CylinderParams    `yaml:"cylinder,omitempty"`
	Material    materialManifest   `yaml:"material"`
	Position    vec3Manifest       `yaml:"position,flow"`
	Rotation    vec3Manifest       `yaml:"rotation,flow"`
	Scale       vec3Manifest       `yaml:"scale,flow"`
}

func (o *objectManifest) setParams(p GeometryParams) {
	switch v := p.(type) {
	case BoxParams:
		o.Box = &v
	case SphereParams:
		o.Sphere = &v
	case TubeParams:
		o.Tube = &v
	case TetrahedronParams:
		o.Tetrahedron = &v
	case TorusParams:
		o.Torus = &v
	case CylinderParams:
		o.Cylinder = &v
	}
}

func (o *objectManifest) params() (GeometryParams, error) {
	var p GeometryParams
	switch o.Kind {
	case ShapeBox:
		if o.Box != nil {
			p = *o.Box
		}
	case ShapeSphere:
		if o.Sphere != nil {
			p = *o.Sphere
		}
	case ShapeTube:
		if o.Tube != nil {
			p = *o.Tube
		}
	case ShapeTetrahedron:
		if o.Tetrahedron != nil {
			p = *o.Tetrahedron
		}
	case ShapeTorus:
		if o.Torus != nil {
			p = *o.Torus
		}
	case ShapeCylinder:
		if o.Cylinder != nil {
			p = *o.Cylinder
		}
	}
	if p == nil {
		return nil, fmt.Errorf("object %q: missing %s parameters", o.Name, o.Kind)
	}
	return p, nil
}

// NewManifest captures s together with the seed and texture it came from.
func NewManifest(s *Scene, seed uint64, texture string) *Manifest {
	m := &Manifest{
		Version:    manifestVersion,
		Seed:       seed,
		Texture:    texture,
		Background: hexColor(s.Background),
	}

	if s.Camera != nil {
		m.Camera = &cameraManifest{
			Position: toVec3Manifest(s.Camera.Position),
			Target:   toVec3Manifest(s.Camera.Target),
			FOV:      s.Camera.FOV,
			Aspect:   s.Camera.AspectRatio,
			Near:     s.Camera.NearPlane,
			Far:      s.Camera.FarPlane,
		}
	}

	for _, l := range s.Lights {
		m.Lights = append(m.Lights, lightManifest{
			Type:      l.Type,
			Color:     hexColor(l.Color),
			Intensity: l.Intensity,
			Position:  toVec3Manifest(l.Position),
		})
	}

	for _, n := range s.Objects() {
		if n.Geometry == nil {
			continue
		}
		om := objectManifest{
			Name:     n.Name,
			Kind:     n.Geometry.Kind(),
			Position: toVec3Manifest(n.Transform.Position),
			Rotation: toVec3Manifest(n.Transform.Rotation),
			Scale:    toVec3Manifest(n.Transform.Scale),
		}
		om.setParams(n.Geometry.Params)
		if mat := n.Material; mat != nil {
			om.Material = materialManifest{
				Color:           hexColor(mat.Color),
				Combine:         mat.Combine,
				Reflectivity:    mat.Reflectivity,
				RefractionRatio: mat.RefractionRatio,
			}
			if mat.EnvMap != nil {
				om.Material.EnvMap = mat.EnvMap.Mapping.String()
			}
		}
		m.Objects = append(m.Objects, om)
	}
	return m
}

// Save writes the manifest as YAML.
func (m *Manifest) Save(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write manifest %q: %w", path, err)
	}
	return nil
}

// LoadManifest reads a manifest written by Save.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %q: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	if m.Version != manifestVersion {
		return nil, fmt.Errorf("manifest %q: unsupported version %d", path, m.Version)
	}
	return &m, nil
}

// Rebuild reconstructs the scene described by the manifest. Materials are
// bound to maps by their recorded mapping.
func (m *Manifest) Rebuild(maps EnvironmentMaps) (*Scene, error) {
	s := NewScene()
	s.Background = core.Color(m.Background)

	if m.Camera != nil {
		cam := NewCamera(m.Camera.FOV, m.Camera.Aspect, m.Camera.Near, m.Camera.Far)
		cam.SetPosition(m.Camera.Position.vec3())
		cam.LookAt(m.Camera.Target.vec3(), math.Vec3Up)
		s.SetCamera(cam)
	}

	for _, l := range m.Lights {
		s.AddLight(&Light{
			Type:      l.Type,
			Color:     core.Color(l.Color),
			Intensity: l.Intensity,
			Position:  l.Position.vec3(),
		})
	}

	for i := range m.Objects {
		om := &m.Objects[i]
		params, err := om.params()
		if err != nil {
			return nil, err
		}
		geo, err := NewGeometry(params)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", om.Name, err)
		}
		mat := &Material{
			Name:            om.Name,
			Color:           core.Color(om.Material.Color),
			Combine:         om.Material.Combine,
			Reflectivity:    om.Material.Reflectivity,
			RefractionRatio: om.Material.RefractionRatio,
		}
		switch om.Material.EnvMap {
		case CubeReflection.String():
			mat.EnvMap = maps.Reflection
		case CubeRefraction.String():
			mat.EnvMap = maps.Refraction
		}

		n := NewMeshNode(om.Name, geo, mat)
		n.Transform.Position = om.Position.vec3()
		n.Transform.Rotation = om.Rotation.vec3()
		n.Transform.Scale = om.Scale.vec3()
		s.AddNode(n)
	}
	return s, nil
}
