package scene

import (
	"fmt"

	"randscene/core"
	"randscene/math"
)

// Scene manages a collection of nodes, lights and the active camera.
type Scene struct {
	Root       *Node
	Camera     *Camera
	Lights     []*Light
	Background core.Color
}

type LightType int

const (
	LightAmbient LightType = iota
	LightPoint
)

func (t LightType) String() string {
	if t == LightPoint {
		return "point"
	}
	return "ambient"
}

func (t LightType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *LightType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "ambient":
		*t = LightAmbient
	case "point":
		*t = LightPoint
	default:
		return fmt.Errorf("unknown light type %q", text)
	}
	return nil
}

// Light is either uniform ambient light or a point light. Distance == 0
// means the point light does not fall off.
type Light struct {
	Type      LightType
	Position  math.Vec3
	Color     core.Color
	Intensity float32
	Distance  float32
}

func NewAmbientLight(color core.Color, intensity float32) *Light {
	return &Light{Type: LightAmbient, Color: color, Intensity: intensity}
}

func NewPointLight(color core.Color, intensity float32, position math.Vec3) *Light {
	return &Light{Type: LightPoint, Color: color, Intensity: intensity, Position: position}
}

func NewScene() *Scene {
	return &Scene{
		Root:       NewNode("Root"),
		Lights:     make([]*Light, 0),
		Background: core.ColorBlack,
	}
}

func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

func (s *Scene) AddNode(node *Node) {
	s.Root.AddChild(node)
}

func (s *Scene) AddLight(light *Light) {
	s.Lights = append(s.Lights, light)
}

// Objects returns the top-level nodes in insertion order.
func (s *Scene) Objects() []*Node {
	return s.Root.Children
}

// GetVisibleNodes returns all nodes with geometry that are visible
func (s *Scene) GetVisibleNodes() []*Node {
	var visible []*Node
	s.Root.Traverse(func(node *Node) {
		if node.Visible && node.Geometry != nil {
			visible = append(visible, node)
		}
	})
	return visible
}

// AmbientLight sums the ambient lights into one color scaled by intensity.
func (s *Scene) AmbientLight() core.Color {
	var c core.Color
	for _, l := range s.Lights {
		if l.Type == LightAmbient {
			lc := l.Color.Scale(l.Intensity)
			c.R += lc.R
			c.G += lc.G
			c.B += lc.B
		}
	}
	c.A = 1
	return c
}

// PointLights returns the point lights in insertion order.
func (s *Scene) PointLights() []*Light {
	var out []*Light
	for _, l := range s.Lights {
		if l.Type == LightPoint {
			out = append(out, l)
		}
	}
	return out
}

// EnvironmentMaps returns the distinct cube textures referenced by materials.
func (s *Scene) EnvironmentMaps() []*CubeTexture {
	seen := make(map[*CubeTexture]bool)
	var out []*CubeTexture
	s.Root.Traverse(func(node *Node) {
		if node.Material == nil || node.Material.EnvMap == nil || seen[node.Material.EnvMap] {
			return
		}
		seen[node.Material.EnvMap] = true
		out = append(out, node.Material.EnvMap)
	})
	return out
}

// NodesInFrustum returns the visible nodes whose world bounds intersect the
// frustum of the given view-projection matrix.
func (s *Scene) NodesInFrustum(viewProj math.Mat4) []*Node {
	f := FrustumFromVP(viewProj)
	var out []*Node
	for _, node := range s.GetVisibleNodes() {
		if node.Geometry.Mesh == nil {
			continue
		}
		if WorldAABB(node.Geometry.Mesh, node.GetWorldMatrix()).IntersectsFrustum(&f) {
			out = append(out, node)
		}
	}
	return out
}
