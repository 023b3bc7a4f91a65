package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a first-person camera: a world position plus yaw/pitch angles in
// degrees. Yaw 0 looks down negative Z.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float64
	Pitch    float64

	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32
}

// NewCamera creates a camera for a viewport of the given pixel size.
func NewCamera(width, height int) *Camera {
	return &Camera{
		AspectRatio: float32(width) / float32(height),
		FOV:         60,
		NearPlane:   0.1,
		FarPlane:    1000,
	}
}

// Rotate applies a look delta in degrees, clamping pitch short of the poles.
func (c *Camera) Rotate(dYaw, dPitch float64) {
	c.Yaw += dYaw
	c.Pitch += dPitch
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}
}

// Forward returns the unit view direction.
func (c *Camera) Forward() mgl32.Vec3 {
	yaw := mgl32.DegToRad(float32(c.Yaw))
	pitch := mgl32.DegToRad(float32(c.Pitch))
	return mgl32.Vec3{
		float32(math.Sin(float64(yaw)) * math.Cos(float64(pitch))),
		float32(math.Sin(float64(pitch))),
		float32(-math.Cos(float64(yaw)) * math.Cos(float64(pitch))),
	}.Normalize()
}

// Right returns the unit vector to the camera's right on the XZ plane.
func (c *Camera) Right() mgl32.Vec3 {
	yaw := mgl32.DegToRad(float32(c.Yaw))
	return mgl32.Vec3{
		float32(math.Cos(float64(yaw))),
		0,
		float32(math.Sin(float64(yaw))),
	}
}

// ViewMatrix returns the view transform for the current pose.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

// SetViewport updates the aspect ratio after a window resize.
func (c *Camera) SetViewport(width, height int) {
	if height > 0 {
		c.AspectRatio = float32(width) / float32(height)
	}
}
