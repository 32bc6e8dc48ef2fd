package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// BodyType mirrors the physics backend's body kinds.
type BodyType int

const (
	BodyDynamic BodyType = iota
	BodyFixed
)

// RigidBody stores the body configuration plus the backend's runtime handle.
type RigidBody struct {
	Type         BodyType
	Mass         float64
	LockRotation bool

	// Body is owned by the physics system; nil until the first sync.
	Body *cp.Body
}

var RigidBodyComponent = NewComponent[RigidBody]()

// Collider is an axis-aligned box given by its half extents.
type Collider struct {
	HalfExtents mgl64.Vec3
}

var ColliderComponent = NewComponent[Collider]()

type Damping struct {
	Linear  float64
	Angular float64
}

var DampingComponent = NewComponent[Damping]()

// GravityScale scales world gravity for a dynamic body.
// 1.0 = normal gravity, 0.0 = no gravity.
type GravityScale struct {
	Scale float64
}

var GravityScaleComponent = NewComponent[GravityScale]()

// Velocity is the body's current velocity; set it before the first physics
// step to give a spawned body its initial velocity.
type Velocity struct {
	Linear  mgl64.Vec3
	Angular float64
}

var VelocityComponent = NewComponent[Velocity]()

// KinematicController carries the position delta requested this tick. The
// physics system applies and clears it.
type KinematicController struct {
	Translation mgl64.Vec3
}

var KinematicControllerComponent = NewComponent[KinematicController]()

// ExternalImpulse accumulates impulses requested this tick. The physics
// system applies and clears it.
type ExternalImpulse struct {
	Impulse mgl64.Vec3
}

var ExternalImpulseComponent = NewComponent[ExternalImpulse]()
