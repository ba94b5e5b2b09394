package scene

import (
	"fmt"

	"randscene/core"
)

// CombineOp selects how the environment sample is blended into the lit
// surface color.
type CombineOp int

const (
	// CombineMultiply scales the lit color by the environment sample.
	CombineMultiply CombineOp = iota
	// CombineMix linearly interpolates towards the environment sample.
	CombineMix
	// CombineAdd adds the environment sample on top.
	CombineAdd
)

func (c CombineOp) String() string {
	switch c {
	case CombineMix:
		return "mix"
	case CombineAdd:
		return "add"
	}
	return "multiply"
}

func (c CombineOp) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *CombineOp) UnmarshalText(text []byte) error {
	for _, op := range []CombineOp{CombineMultiply, CombineMix, CombineAdd} {
		if op.String() == string(text) {
			*c = op
			return nil
		}
	}
	return fmt.Errorf("unknown combine op %q", text)
}

// Material is a diffuse (Lambert) surface with an optional environment map.
// Reflectivity weights the environment contribution for every combine op.
// RefractionRatio only matters when EnvMap uses refraction mapping.
type Material struct {
	Name            string
	Color           core.Color
	EnvMap          *CubeTexture
	Combine         CombineOp
	Reflectivity    float32
	RefractionRatio float32
}

// NewLambertMaterial returns a material with the renderer defaults: multiply
// combine, full reflectivity and a refraction ratio of 0.98.
func NewLambertMaterial(name string, color core.Color) *Material {
	return &Material{
		Name:            name,
		Color:           color,
		Combine:         CombineMultiply,
		Reflectivity:    1,
		RefractionRatio: 0.98,
	}
}

// EnvironmentMaps are the two cube textures shared by every generated
// material.
type EnvironmentMaps struct {
	Reflection *CubeTexture
	Refraction *CubeTexture
}
