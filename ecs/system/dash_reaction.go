package system

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/orbitdash/common"
	"github.com/milk9111/orbitdash/ecs"
	"github.com/milk9111/orbitdash/ecs/component"
	"go.uber.org/zap"
)

// debrisCone is the largest per-axis tilt applied to a debris velocity.
const debrisCone = math.Pi / 6

// EntitySpawner creates one entity from a prefab.
type EntitySpawner interface {
	Spawn(w *ecs.World) (ecs.Entity, error)
}

// DashReactionSystem bursts debris out behind every dash fired this frame.
type DashReactionSystem struct {
	rng    *rand.Rand
	debris EntitySpawner
}

func NewDashReactionSystem(rng *rand.Rand, debris EntitySpawner) *DashReactionSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(0, 0))
	}
	return &DashReactionSystem{rng: rng, debris: debris}
}

func (s *DashReactionSystem) Update(w *ecs.World) {
	if s == nil || s.debris == nil || w == nil {
		return
	}

	for _, evt := range ecs.Read(w, component.DashEvents) {
		character, ok := ecs.Get(w, ecs.Entity(evt.Character), component.CharacterComponent.Kind())
		if !ok {
			continue
		}

		count := int(math.Floor(character.DashSpeed))
		for i := 0; i < count; i++ {
			velocity := s.DebrisVelocity(evt.Direction, character.DashSpeed)
			if err := s.spawn(w, evt.Origin, velocity); err != nil {
				common.Logger().Error("dash reaction: spawn debris", zap.Error(err))
				break
			}
		}
	}
}

// DebrisVelocity scatters the reversed dash direction inside a cone of
// ±30° per axis and scales it to speed.
func (s *DashReactionSystem) DebrisVelocity(direction mgl64.Vec3, speed float64) mgl64.Vec3 {
	a := s.coneAngle()
	b := s.coneAngle()
	c := s.coneAngle()
	rot := mgl64.QuatRotate(a, mgl64.Vec3{1, 0, 0}).
		Mul(mgl64.QuatRotate(b, mgl64.Vec3{0, 1, 0})).
		Mul(mgl64.QuatRotate(c, mgl64.Vec3{0, 0, 1}))
	return common.NormalizeOrZero(rot.Rotate(direction.Mul(-1))).Mul(speed)
}

func (s *DashReactionSystem) coneAngle() float64 {
	return (s.rng.Float64()*2 - 1) * debrisCone
}

func (s *DashReactionSystem) spawn(w *ecs.World, origin, velocity mgl64.Vec3) error {
	e, err := s.debris.Spawn(w)
	if err != nil {
		return err
	}

	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{Rotation: mgl64.QuatIdent()}
	}
	t.Position = origin
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
		return fmt.Errorf("debris: add transform: %w", err)
	}

	v, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
	if !ok {
		v = &component.Velocity{}
	}
	v.Linear = velocity
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), v); err != nil {
		return fmt.Errorf("debris: add velocity: %w", err)
	}
	return nil
}
