package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/orbitdash/common"
	"github.com/milk9111/orbitdash/ecs"
	"github.com/milk9111/orbitdash/ecs/component"
	"go.uber.org/zap"
)

// CharacterControllerSystem turns the InputFrame into camera-relative
// movement, dash and jump impulses, and facing for the single character.
//
// A main camera must exist; startup validates it, so a missing camera here
// leaves the world untouched.
type CharacterControllerSystem struct {
	caster ShapeCaster
}

func NewCharacterControllerSystem(caster ShapeCaster) *CharacterControllerSystem {
	return &CharacterControllerSystem{caster: caster}
}

func (s *CharacterControllerSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	camEntity, ok := ecs.First(w, component.MainCameraTagComponent.Kind())
	if !ok {
		return
	}
	camTransform, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind())
	if !ok {
		return
	}

	var input component.InputFrame
	if e, ok := ecs.First(w, component.InputFrameComponent.Kind()); ok {
		if f, ok := ecs.Get(w, e, component.InputFrameComponent.Kind()); ok {
			input = *f
		}
	}

	e, ok := ecs.First(w, component.CharacterTagComponent.Kind())
	if !ok {
		return
	}
	character, ok := ecs.Get(w, e, component.CharacterComponent.Kind())
	if !ok {
		return
	}
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}

	dir := MoveDirection(input.Move, camTransform.Forward(), camTransform.Right())

	if kc, ok := ecs.Get(w, e, component.KinematicControllerComponent.Kind()); ok {
		kc.Translation = dir.Mul(character.MoveSpeed)
	}

	impulse, hasImpulse := ecs.Get(w, e, component.ExternalImpulseComponent.Kind())

	if input.DashRequested && !common.IsZero(dir) && hasImpulse {
		impulse.Impulse = impulse.Impulse.Add(dir.Mul(character.DashSpeed))
		ecs.Send(w, component.DashEvents, component.DashEvent{
			Character: uint64(e),
			Origin:    transform.Position,
			Direction: dir,
		})
		common.Logger().Debug("dash",
			zap.Stringer("character", e),
			zap.Float64s("direction", dir[:]),
		)
	}

	if input.JumpRequested && hasImpulse && IsGrounded(w, s.caster, e) {
		impulse.Impulse = impulse.Impulse.Add(common.WorldUp.Mul(character.JumpPower))
	}

	if !common.IsZero(dir) {
		transform.Rotation = TurnToward(transform.Rotation, dir, character.TurnRate*w.Time().DeltaSeconds())
	}
}

// MoveDirection projects a 2D input onto the camera's forward and right axes,
// flattens it onto the ground plane and normalizes it. Negligible input
// yields the zero vector.
func MoveDirection(move mgl64.Vec2, forward, right mgl64.Vec3) mgl64.Vec3 {
	dir := forward.Mul(move.Y()).Add(right.Mul(move.X()))
	return common.NormalizeOrZero(common.Flatten(dir))
}

// TurnToward rotates rot so its forward moves toward target by fraction t,
// keeping world up as the reference.
func TurnToward(rot mgl64.Quat, target mgl64.Vec3, t float64) mgl64.Quat {
	forward := common.NormalizeOrZero(rot.Rotate(mgl64.Vec3{0, 0, -1}))
	if common.IsZero(forward) {
		forward = target
	}
	next := common.SlerpDirection(forward, target, t)
	if q, ok := common.LookRotation(next, common.WorldUp); ok {
		return q
	}
	return rot
}
