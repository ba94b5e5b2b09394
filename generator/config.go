// Package generator builds the random scene: it owns the tunable constants
// and the factories that turn random draws into geometry, materials and
// placed objects.
package generator

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"randscene/core"
)

// Range is a half-open interval [Min, Max).
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

type CameraConfig struct {
	// FOV is the vertical field of view in degrees.
	FOV      float32 `yaml:"fov"`
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
	Distance float32 `yaml:"distance"`
}

type LightConfig struct {
	Color            uint32  `yaml:"color"`
	AmbientIntensity float32 `yaml:"ambient_intensity"`
	PointIntensity   float32 `yaml:"point_intensity"`
}

// Config holds every process-wide constant of the generator.
type Config struct {
	// Scale multiplies the position ranges and is the uniform object scale.
	Scale            float64      `yaml:"scale"`
	ObjectCount      int          `yaml:"object_count"`
	MaterialColors   []uint32     `yaml:"material_colors"`
	BackgroundColors []uint32     `yaml:"background_colors"`
	Textures         []string     `yaml:"textures"`
	PositionX        Range        `yaml:"position_x"`
	PositionY        Range        `yaml:"position_y"`
	PositionZ        Range        `yaml:"position_z"`
	Rotation         Range        `yaml:"rotation"`
	Light            LightConfig  `yaml:"light"`
	Camera           CameraConfig `yaml:"camera"`
}

func DefaultConfig() Config {
	return Config{
		Scale:       10,
		ObjectCount: 9,
		MaterialColors: []uint32{
			0xffffff,
			0xffc1fa,
			0x4286f4,
			0x9bf7da,
		},
		BackgroundColors: []uint32{
			0xffc1fa,
			0x42f48f,
			0x3c0968,
			0xe2bbac,
			0xf43a3a,
		},
		Textures: []string{
			"assets/texture.jpg",
			"assets/texture2.jpg",
			"assets/texture3.jpg",
			"assets/texture4.jpg",
			"assets/texture5.jpg",
			"assets/texture7.jpg",
			"assets/texture8.jpg",
		},
		PositionX: Range{Min: -25, Max: 25},
		PositionY: Range{Min: -40, Max: 40},
		PositionZ: Range{Min: -50, Max: 50},
		// radians; many full turns, kept as-is
		Rotation: Range{Min: -20, Max: 20},
		Light: LightConfig{
			Color:            0xffffff,
			AmbientIntensity: 1,
			PointIntensity:   2,
		},
		Camera: CameraConfig{
			FOV:      50,
			Near:     1,
			Far:      5000,
			Distance: 2000,
		},
	}
}

// LoadConfig decodes a YAML file over DefaultConfig. Keys present in the
// file replace the defaults, zero values included; absent keys keep them.
// A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the factories cannot draw from.
func (c Config) Validate() error {
	if c.Scale <= 0 {
		return fmt.Errorf("scale must be positive, got %v", c.Scale)
	}
	if c.ObjectCount < 0 {
		return fmt.Errorf("object_count must not be negative, got %d", c.ObjectCount)
	}
	if len(c.MaterialColors) == 0 {
		return errors.New("material_colors is empty")
	}
	if len(c.BackgroundColors) == 0 {
		return errors.New("background_colors is empty")
	}
	if len(c.Textures) == 0 {
		return errors.New("textures is empty")
	}
	ranges := []struct {
		name string
		r    Range
	}{
		{"position_x", c.PositionX},
		{"position_y", c.PositionY},
		{"position_z", c.PositionZ},
		{"rotation", c.Rotation},
	}
	for _, nr := range ranges {
		if nr.r.Min > nr.r.Max {
			return fmt.Errorf("%s: min %v exceeds max %v", nr.name, nr.r.Min, nr.r.Max)
		}
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera clip range [%v, %v] is invalid", c.Camera.Near, c.Camera.Far)
	}
	return nil
}

func (c Config) materialPalette() []core.Color {
	return hexPalette(c.MaterialColors)
}

func (c Config) backgroundPalette() []core.Color {
	return hexPalette(c.BackgroundColors)
}

func hexPalette(hex []uint32) []core.Color {
	out := make([]core.Color, len(hex))
	for i, h := range hex {
		out[i] = core.ColorFromHex(h)
	}
	return out
}
