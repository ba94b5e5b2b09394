package generator

import (
	"fmt"

	"randscene/math"
	"randscene/random"
	"randscene/scene"
)

// RandomObject draws a geometry, a material, a position inside the scaled
// ranges and an Euler rotation, and wraps them in a node scaled by
// cfg.Scale.
func RandomObject(src *random.Source, cfg Config, maps scene.EnvironmentMaps, name string) (*scene.Node, error) {
	geo, err := RandomGeometry(src)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", name, err)
	}
	mat := RandomMaterial(src, cfg.materialPalette(), maps)

	node := scene.NewMeshNode(name, geo, mat)

	var pos math.Vec3
	pos.X = float32(src.Float(cfg.PositionX.Min*cfg.Scale, cfg.PositionX.Max*cfg.Scale))
	pos.Y = float32(src.Float(cfg.PositionY.Min*cfg.Scale, cfg.PositionY.Max*cfg.Scale))
	pos.Z = float32(src.Float(cfg.PositionZ.Min*cfg.Scale, cfg.PositionZ.Max*cfg.Scale))
	node.SetPosition(pos)

	// y before x before z
	var rot math.Vec3
	rot.Y = float32(src.Float(cfg.Rotation.Min, cfg.Rotation.Max))
	rot.X = float32(src.Float(cfg.Rotation.Min, cfg.Rotation.Max))
	rot.Z = float32(src.Float(cfg.Rotation.Min, cfg.Rotation.Max))
	node.SetRotation(rot)

	node.SetScale(math.Splat(float32(cfg.Scale)))
	return node, nil
}
