package core

import (
	"fmt"

	"randscene/math"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// ColorFromHex converts a 0xRRGGBB value into an opaque color.
func ColorFromHex(hex uint32) Color {
	return Color{
		R: float32((hex>>16)&0xff) / 255,
		G: float32((hex>>8)&0xff) / 255,
		B: float32(hex&0xff) / 255,
		A: 1,
	}
}

// Hex packs the color back into 0xRRGGBB, dropping alpha.
func (c Color) Hex() uint32 {
	to8 := func(v float32) uint32 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 0xff
		}
		return uint32(v*255 + 0.5)
	}
	return to8(c.R)<<16 | to8(c.G)<<8 | to8(c.B)
}

func (c Color) String() string {
	return fmt.Sprintf("#%06x", c.Hex())
}

// Scale multiplies the RGB channels by s, leaving alpha untouched.
func (c Color) Scale(s float32) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A}
}

type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
}

type Transform struct {
	Position math.Vec3
	// Rotation holds Euler angles in radians, applied X, then Y, then Z.
	Rotation math.Vec3
	Scale    math.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: math.Vec3Zero,
		Rotation: math.Vec3Zero,
		Scale:    math.Vec3One,
	}
}

func (t Transform) Quaternion() math.Quaternion {
	return math.QuaternionFromEuler(t.Rotation)
}

func (t Transform) GetMatrix() math.Mat4 {
	return math.Mat4TRS(t.Position, t.Quaternion(), t.Scale)
}
