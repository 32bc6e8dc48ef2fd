package component

import "github.com/go-gl/mathgl/mgl64"

// JoystickID identifies an on-screen joystick.
type JoystickID int

const (
	JoystickMove JoystickID = iota
)

// JoystickEvent is reported for every tick a joystick is engaged.
type JoystickEvent struct {
	ID   JoystickID
	Axis mgl64.Vec2
}

var JoystickEvents = NewEvent[JoystickEvent]()

// DashEvent is emitted by the character controller when a dash fires.
type DashEvent struct {
	Character uint64 // ecs.Entity
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

var DashEvents = NewEvent[DashEvent]()
