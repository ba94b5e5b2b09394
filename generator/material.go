package generator

import (
	"github.com/jinzhu/copier"

	"randscene/core"
	"randscene/random"
	"randscene/scene"
)

const (
	reflectionReflectivity = 0.3
	refractionRatio        = 0.95
)

// RandomMaterial picks a palette color, then one of two variants: a
// reflective material mixing 30% of the reflection map into the base
// color, or a refractive one multiplying the refraction map over it.
func RandomMaterial(src *random.Source, palette []core.Color, maps scene.EnvironmentMaps) *scene.Material {
	base := scene.NewLambertMaterial("lambert", random.Choose(src, palette))

	reflective := variant(base, "reflective")
	reflective.EnvMap = maps.Reflection
	reflective.Combine = scene.CombineMix
	reflective.Reflectivity = reflectionReflectivity

	refractive := variant(base, "refractive")
	refractive.EnvMap = maps.Refraction
	refractive.RefractionRatio = refractionRatio

	return random.Choose(src, []*scene.Material{reflective, refractive})
}

// variant copies the Lambert defaults of base into a new named material.
func variant(base *scene.Material, name string) *scene.Material {
	m := &scene.Material{}
	if err := copier.Copy(m, base); err != nil {
		// Material holds plain fields only.
		panic(err)
	}
	m.Name = name
	return m
}
