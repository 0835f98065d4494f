// Package camera provides the ship chase rig and an orbit camera for
// inspecting objects. World space is Z-up.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var worldUp = mgl64.Vec3{0, 0, 1}

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	Center mgl64.Vec3

	// Spherical coordinates
	Distance float64
	Pitch    float64 // elevation above the XY plane, radians
	Yaw      float64 // heading around Z, radians

	// Constraints
	MinDistance float64
	MaxDistance float64
	MinPitch    float64
	MaxPitch    float64

	// Sensitivity
	DragSensitivity float64
	ZoomSensitivity float64
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        3000,
		Pitch:           0.5,
		MinDistance:     50,
		MaxDistance:     1e6,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl64.Vec3 {
	cp := math.Cos(c.Pitch)
	offset := mgl64.Vec3{
		c.Distance * cp * math.Cos(c.Yaw),
		c.Distance * cp * math.Sin(c.Yaw),
		c.Distance * math.Sin(c.Pitch),
	}
	return c.Center.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position(), c.Center, worldUp)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float64) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = mgl64.Clamp(c.Pitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float64) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = mgl64.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// SetCenter sets the camera's center point.
func (c *OrbitCamera) SetCenter(center mgl64.Vec3) {
	c.Center = center
}

// FitToBounds centers the camera on a bounding box and backs off far
// enough to frame all of it.
func (c *OrbitCamera) FitToBounds(min, max mgl64.Vec3) {
	c.Center = min.Add(max).Mul(0.5)

	halfDiagonal := max.Sub(min).Len() / 2
	c.Distance = mgl64.Clamp(halfDiagonal*2.5, c.MinDistance, c.MaxDistance)

	c.Pitch = 0.35
	c.Yaw = 0
}
