package component

import "github.com/go-gl/mathgl/mgl64"

// OrbitCamera is a third-person rig orbiting Focus at Radius. Its orientation
// lives in the entity's Transform.
type OrbitCamera struct {
	Focus     mgl64.Vec3
	Radius    float64
	MinRadius float64
	MaxRadius float64

	OrbitEnabled bool
	ZoomEnabled  bool

	CursorLockKey    Key
	TouchSensitivity float64
	ZoomSensitivity  float64
}

// ClampRadius keeps Radius inside [MinRadius, MaxRadius].
func (c *OrbitCamera) ClampRadius() {
	if c == nil {
		return
	}
	if c.Radius < c.MinRadius {
		c.Radius = c.MinRadius
	}
	if c.Radius > c.MaxRadius {
		c.Radius = c.MaxRadius
	}
}

var OrbitCameraComponent = NewComponent[OrbitCamera]()
