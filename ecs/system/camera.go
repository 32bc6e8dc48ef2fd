package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/orbitdash/common"
	"github.com/milk9111/orbitdash/ecs"
	"github.com/milk9111/orbitdash/ecs/component"
	"go.uber.org/zap"
)

// pinchScale converts a pinch distance change in pixels into zoom input.
const pinchScale = 0.01

func rawInput(w *ecs.World) *component.RawInput {
	e, ok := ecs.First(w, component.RawInputComponent.Kind())
	if !ok {
		return nil
	}
	raw, _ := ecs.Get(w, e, component.RawInputComponent.Kind())
	return raw
}

// CameraZoomToggleSystem flips ZoomEnabled when the camera's lock key goes
// down.
type CameraZoomToggleSystem struct{}

func NewCameraZoomToggleSystem() *CameraZoomToggleSystem {
	return &CameraZoomToggleSystem{}
}

func (s *CameraZoomToggleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	raw := rawInput(w)
	if raw == nil {
		return
	}
	ecs.ForEach(w, component.OrbitCameraComponent.Kind(), func(e ecs.Entity, cam *component.OrbitCamera) {
		if cam.CursorLockKey == "" || !raw.JustPressed[cam.CursorLockKey] {
			return
		}
		cam.ZoomEnabled = !cam.ZoomEnabled
		common.Logger().Debug("camera zoom toggled", zap.Stringer("camera", e), zap.Bool("enabled", cam.ZoomEnabled))
	})
}

// OrbitJoystickArbiterSystem gives the movement joystick priority over camera
// orbit: orbit is off for any tick the joystick reports activity, on
// otherwise.
type OrbitJoystickArbiterSystem struct{}

func NewOrbitJoystickArbiterSystem() *OrbitJoystickArbiterSystem {
	return &OrbitJoystickArbiterSystem{}
}

func (s *OrbitJoystickArbiterSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	engaged := false
	for _, evt := range ecs.Read(w, component.JoystickEvents) {
		if evt.ID == component.JoystickMove {
			engaged = true
			break
		}
	}
	ecs.ForEach(w, component.OrbitCameraComponent.Kind(), func(_ ecs.Entity, cam *component.OrbitCamera) {
		cam.OrbitEnabled = !engaged
	})
}

// CameraZoomSystem applies scroll and pinch input to the orbit radius while
// zoom is enabled. The radius is clamped every tick.
type CameraZoomSystem struct{}

func NewCameraZoomSystem() *CameraZoomSystem {
	return &CameraZoomSystem{}
}

func (s *CameraZoomSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	raw := rawInput(w)
	ecs.ForEach(w, component.OrbitCameraComponent.Kind(), func(_ ecs.Entity, cam *component.OrbitCamera) {
		if cam.ZoomEnabled && raw != nil {
			cam.Radius -= raw.WheelY * cam.ZoomSensitivity
			cam.Radius -= PinchDelta(raw.Touches) * cam.ZoomSensitivity * pinchScale
		}
		cam.ClampRadius()
	})
}

// PinchDelta is the change in distance between the first two touches since
// the previous tick, or zero without two touches.
func PinchDelta(touches []component.Touch) float64 {
	if len(touches) < 2 {
		return 0
	}
	a, b := touches[0], touches[1]
	return a.Position.Sub(b.Position).Len() - a.Previous.Sub(b.Previous).Len()
}

// CameraOrbitSystem orbits the camera from the active drag and places it at
// focus + rotation*(0, 0, radius) every tick.
type CameraOrbitSystem struct{}

func NewCameraOrbitSystem() *CameraOrbitSystem {
	return &CameraOrbitSystem{}
}

func (s *CameraOrbitSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	raw := rawInput(w)
	ecs.ForEach2(w, component.OrbitCameraComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, cam *component.OrbitCamera, t *component.Transform) {
		// a second touch is a pinch, not an orbit
		if cam.OrbitEnabled && raw != nil && len(raw.Touches) == 1 {
			drag := raw.Touches[0].Delta().Mul(cam.TouchSensitivity)
			t.Rotation = Orbit(t.Rotation, drag, raw.Viewport)
		}
		t.Position = OrbitPosition(cam.Focus, t.Rotation, cam.Radius)
	})
}

// Orbit yaws rot about world up by the horizontal drag and pitches it about
// its local X by the vertical drag, each as a fraction of the viewport times
// π. The pitch is dropped if it would turn the camera's up vector downward.
func Orbit(rot mgl64.Quat, drag, viewport mgl64.Vec2) mgl64.Quat {
	if viewport.X() <= 0 || viewport.Y() <= 0 {
		return rot
	}
	yaw := mgl64.QuatRotate(-drag.X()/viewport.X()*math.Pi, common.WorldUp)
	pitch := mgl64.QuatRotate(-drag.Y()/viewport.Y()*math.Pi, mgl64.Vec3{1, 0, 0})

	rot = yaw.Mul(rot).Normalize()
	candidate := rot.Mul(pitch).Normalize()
	if candidate.Rotate(common.WorldUp).Y() > 0 {
		rot = candidate
	}
	return rot
}

func OrbitPosition(focus mgl64.Vec3, rot mgl64.Quat, radius float64) mgl64.Vec3 {
	return focus.Add(rot.Rotate(mgl64.Vec3{0, 0, radius}))
}
