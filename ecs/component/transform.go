package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is a world-space pose. Local forward is -Z, right is +X, up is +Y.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// Forward returns the pose's forward direction.
func (t Transform) Forward() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{0, 0, -1})
}

// Right returns the pose's right direction.
func (t Transform) Right() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{1, 0, 0})
}

// Up returns the pose's up direction.
func (t Transform) Up() mgl64.Vec3 {
	return t.Rotation.Rotate(mgl64.Vec3{0, 1, 0})
}

var TransformComponent = NewComponent[Transform]()
