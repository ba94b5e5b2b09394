package generator

import (
	"fmt"

	"randscene/core"
	"randscene/math"
	"randscene/random"
	"randscene/scene"
)

// Generated is the outcome of one Build.
type Generated struct {
	Scene   *scene.Scene
	Maps    scene.EnvironmentMaps
	Texture string
	Seed    uint64
}

// Build assembles a complete random scene. Cube textures are requested
// from loader and may still be loading when Build returns.
func Build(src *random.Source, cfg Config, loader scene.CubeLoader) (*Generated, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	texture := random.Choose(src, cfg.Textures)
	faces := scene.RepeatFace(texture)
	maps := scene.EnvironmentMaps{
		Reflection: loader.LoadCube(faces, scene.CubeReflection),
		Refraction: loader.LoadCube(faces, scene.CubeRefraction),
	}

	s := scene.NewScene()
	lightColor := core.ColorFromHex(cfg.Light.Color)
	s.AddLight(scene.NewAmbientLight(lightColor, cfg.Light.AmbientIntensity))
	s.AddLight(scene.NewPointLight(lightColor, cfg.Light.PointIntensity, math.Vec3Zero))

	s.Background = random.Choose(src, cfg.backgroundPalette())

	for i := 0; i < cfg.ObjectCount; i++ {
		obj, err := RandomObject(src, cfg, maps, fmt.Sprintf("object-%d", i))
		if err != nil {
			return nil, err
		}
		s.AddNode(obj)
	}

	s.SetCamera(NewCamera(cfg.Camera, 1))

	return &Generated{
		Scene:   s,
		Maps:    maps,
		Texture: texture,
		Seed:    src.Seed(),
	}, nil
}

// NewCamera places a perspective camera on +Z looking at the origin.
func NewCamera(cfg CameraConfig, aspect float32) *scene.Camera {
	cam := scene.NewCamera(cfg.FOV, aspect, cfg.Near, cfg.Far)
	cam.SetPosition(math.NewVec3(0, 0, cfg.Distance))
	cam.LookAt(math.Vec3Zero, math.Vec3Up)
	return cam
}
