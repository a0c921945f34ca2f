// Package camera provides the orbit camera used by the viewer.
package camera

import (
	gomath "math"

	"github.com/quellex/renderscene/pkg/math"
)

// OrbitCamera circles a center point at a fixed distance.
type OrbitCamera struct {
	Center   math.Vec3
	Distance float32
	Pitch    float32 // Vertical angle, radians
	Yaw      float32 // Horizontal angle, radians

	FovY float32
	Near float32
	Far  float32
}

// NewOrbitCamera creates an orbit camera with default settings.
func NewOrbitCamera(distance float32) *OrbitCamera {
	return &OrbitCamera{
		Distance: distance,
		Pitch:    0.4,
		FovY:     float32(gomath.Pi / 4),
		Near:     0.1,
		Far:      1000,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.Pitch))*gomath.Sin(float64(c.Yaw)))
	y := c.Distance * float32(gomath.Sin(float64(c.Pitch)))
	z := c.Distance * float32(gomath.Cos(float64(c.Pitch))*gomath.Cos(float64(c.Yaw)))
	return c.Center.Add(math.Vec3{X: x, Y: y, Z: z})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Center, up)
}

// ViewProjection returns the combined view-projection matrix for the given
// viewport aspect ratio (width / height).
func (c *OrbitCamera) ViewProjection(aspect float32) math.Mat4 {
	proj := math.Perspective(c.FovY, aspect, c.Near, c.Far)
	return proj.Mul(c.ViewMatrix())
}

// maxPitch keeps the camera away from the poles, where LookAt degenerates.
const maxPitch = float32(gomath.Pi/2) - 0.01

// Orbit advances the camera by delta radians: X is yaw, Y is pitch. Pitch
// is clamped short of straight up/down.
func (c *OrbitCamera) Orbit(delta math.Vec2) {
	c.Yaw += delta.X
	if c.Yaw > 2*gomath.Pi {
		c.Yaw -= 2 * gomath.Pi
	}
	c.Pitch += delta.Y
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
}
