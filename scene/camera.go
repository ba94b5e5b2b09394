package scene

import (
	"github.com/chewxy/math32"

	reMath "randscene/math"
)

// Camera is a perspective camera aimed at a fixed target.
type Camera struct {
	Position reMath.Vec3
	Target   reMath.Vec3
	Up       reMath.Vec3
	// FOV is the vertical field of view in degrees.
	FOV         float32
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32

	// Cached matrices
	viewMatrix       reMath.Mat4
	projectionMatrix reMath.Mat4
	viewProjMatrix   reMath.Mat4
	dirty            bool
}

func NewCamera(fov, aspectRatio, nearPlane, farPlane float32) *Camera {
	return &Camera{
		Position:    reMath.Vec3Zero,
		Target:      reMath.NewVec3(0, 0, -1),
		Up:          reMath.Vec3Up,
		FOV:         fov,
		AspectRatio: aspectRatio,
		NearPlane:   nearPlane,
		FarPlane:    farPlane,
		dirty:       true,
	}
}

func (c *Camera) UpdateAspectRatio(width, height float32) {
	if height > 0 {
		c.AspectRatio = width / height
		c.dirty = true
	}
}

func (c *Camera) SetPosition(pos reMath.Vec3) {
	c.Position = pos
	c.dirty = true
}

func (c *Camera) LookAt(target, up reMath.Vec3) {
	c.Target = target
	c.Up = up
	c.dirty = true
}

func (c *Camera) GetViewMatrix() reMath.Mat4 {
	if c.dirty {
		c.updateMatrices()
	}
	return c.viewMatrix
}

func (c *Camera) GetProjectionMatrix() reMath.Mat4 {
	if c.dirty {
		c.updateMatrices()
	}
	return c.projectionMatrix
}

func (c *Camera) GetViewProjectionMatrix() reMath.Mat4 {
	if c.dirty {
		c.updateMatrices()
	}
	return c.viewProjMatrix
}

func (c *Camera) updateMatrices() {
	c.viewMatrix = reMath.Mat4LookAt(c.Position, c.Target, c.Up)
	c.projectionMatrix = reMath.Mat4Perspective(c.FOV*math32.Pi/180, c.AspectRatio, c.NearPlane, c.FarPlane)
	c.viewProjMatrix = c.viewMatrix.Mul(c.projectionMatrix)
	c.dirty = false
}
